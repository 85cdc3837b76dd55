package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tandemchat/tandem/internal/api/middleware"
	"github.com/tandemchat/tandem/internal/domain"
	"github.com/tandemchat/tandem/internal/service"
)

type RoomHandler struct {
	roomService *service.RoomService
}

func NewRoomHandler(roomService *service.RoomService) *RoomHandler {
	return &RoomHandler{roomService: roomService}
}

func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	room, err := h.roomService.CreateRoom(r.Context(), user)
	if err != nil {
		log.Printf("ERROR [handlers.Room] create failed: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, newChatRoomResponse(&service.RoomView{Room: room}))
}

func (h *RoomHandler) Join(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	inviteToken := chi.URLParam(r, "inviteToken")
	if inviteToken == "" {
		http.Error(w, "Invite token is required", http.StatusBadRequest)
		return
	}

	view, err := h.roomService.JoinRoom(r.Context(), inviteToken, user)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRoomNotFound):
			http.Error(w, "Chat room not found", http.StatusNotFound)
		case errors.Is(err, domain.ErrRoomFull):
			http.Error(w, "Chat room is full", http.StatusBadRequest)
		case errors.Is(err, domain.ErrAlreadyMember):
			http.Error(w, "You are already in this chat room", http.StatusBadRequest)
		default:
			log.Printf("ERROR [handlers.Room] join failed: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, newChatRoomResponse(view))
}

func (h *RoomHandler) MyChats(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	views, err := h.roomService.RoomsFor(r.Context(), user.ID)
	if err != nil {
		log.Printf("ERROR [handlers.Room] list failed: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	rooms := make([]ChatRoomResponse, 0, len(views))
	for _, view := range views {
		rooms = append(rooms, newChatRoomResponse(view))
	}

	writeJSON(w, http.StatusOK, rooms)
}
