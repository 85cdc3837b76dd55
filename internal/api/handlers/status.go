package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/tandemchat/tandem/internal/service"
)

type StatusHandler struct {
	statusService *service.StatusService
}

func NewStatusHandler(statusService *service.StatusService) *StatusHandler {
	return &StatusHandler{statusService: statusService}
}

type StatusCheckRequest struct {
	ClientName string `json:"client_name" validate:"required"`
}

func (h *StatusHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req StatusCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, "Client name is required", http.StatusBadRequest)
		return
	}

	check, err := h.statusService.Record(r.Context(), req.ClientName)
	if err != nil {
		log.Printf("ERROR [handlers.Status] record failed: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, check)
}

func (h *StatusHandler) List(w http.ResponseWriter, r *http.Request) {
	checks, err := h.statusService.List(r.Context())
	if err != nil {
		log.Printf("ERROR [handlers.Status] list failed: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, checks)
}
