package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tandemchat/tandem/internal/api/middleware"
	"github.com/tandemchat/tandem/internal/domain"
	"github.com/tandemchat/tandem/internal/service"
)

type MessageHandler struct {
	messageService *service.MessageService
}

func NewMessageHandler(messageService *service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

type SendMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	chatID, err := uuid.Parse(chi.URLParam(r, "chatID"))
	if err != nil {
		http.Error(w, "Chat room not found", http.StatusNotFound)
		return
	}

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, "Content is required", http.StatusBadRequest)
		return
	}

	view, err := h.messageService.Send(r.Context(), chatID, user, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRoomNotFound):
			http.Error(w, "Chat room not found", http.StatusNotFound)
		case errors.Is(err, domain.ErrNotParticipant):
			http.Error(w, "You are not a participant in this chat", http.StatusForbidden)
		default:
			log.Printf("ERROR [handlers.Message] send failed: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, newMessageResponse(view))
}

func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	chatID, err := uuid.Parse(chi.URLParam(r, "chatID"))
	if err != nil {
		http.Error(w, "Chat room not found", http.StatusNotFound)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
	}

	var before *time.Time
	if raw := r.URL.Query().Get("before"); raw != "" {
		ts, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			http.Error(w, "Invalid before cursor", http.StatusBadRequest)
			return
		}
		before = &ts
	}

	views, err := h.messageService.List(r.Context(), chatID, user, limit, before)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRoomNotFound):
			http.Error(w, "Chat room not found", http.StatusNotFound)
		case errors.Is(err, domain.ErrNotParticipant):
			http.Error(w, "You are not a participant in this chat", http.StatusForbidden)
		default:
			log.Printf("ERROR [handlers.Message] list failed: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	messages := make([]MessageResponse, 0, len(views))
	for _, view := range views {
		messages = append(messages, newMessageResponse(view))
	}

	writeJSON(w, http.StatusOK, messages)
}
