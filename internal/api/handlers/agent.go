package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/tandemchat/tandem/internal/agent"
	"github.com/tandemchat/tandem/internal/domain"
	"github.com/tandemchat/tandem/internal/service"
)

type AgentHandler struct {
	agentService *service.AgentService
}

func NewAgentHandler(agentService *service.AgentService) *AgentHandler {
	return &AgentHandler{agentService: agentService}
}

type ChatRequest struct {
	Message   string `json:"message" validate:"required"`
	AgentType string `json:"agent_type"`
}

type SearchRequest struct {
	Query string `json:"query" validate:"required"`
}

func (h *AgentHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, "Message is required", http.StatusBadRequest)
		return
	}

	if req.AgentType == "" {
		req.AgentType = agent.TypeChat
	}

	result, err := h.agentService.Chat(r.Context(), req.Message, req.AgentType)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownAgent) {
			http.Error(w, "Unknown agent type", http.StatusBadRequest)
			return
		}
		// Dispatcher construction failures degrade to a failure payload,
		// never to a protocol error.
		log.Printf("ERROR [handlers.Agent] chat dispatch failed: %v", err)
		writeJSON(w, http.StatusOK, service.ChatResult{
			Success:      false,
			AgentType:    req.AgentType,
			Capabilities: []string{},
			Metadata:     map[string]any{},
			Error:        err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *AgentHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, "Query is required", http.StatusBadRequest)
		return
	}

	result, err := h.agentService.Search(r.Context(), req.Query)
	if err != nil {
		log.Printf("ERROR [handlers.Agent] search dispatch failed: %v", err)
		writeJSON(w, http.StatusOK, service.SearchResult{
			Success: false,
			Query:   req.Query,
			Error:   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *AgentHandler) Capabilities(w http.ResponseWriter, r *http.Request) {
	caps, err := h.agentService.Capabilities(r.Context())
	if err != nil {
		log.Printf("ERROR [handlers.Agent] capabilities failed: %v", err)
		writeJSON(w, http.StatusOK, map[string]any{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"capabilities": caps,
	})
}
