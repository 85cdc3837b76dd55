package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/tandemchat/tandem/internal/domain"
	"github.com/tandemchat/tandem/internal/service"
)

// validate checks request DTO tags; shared across handlers.
var validate = validator.New()

type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}

type ChatRoomResponse struct {
	ID           string        `json:"id"`
	InviteToken  string        `json:"invite_token"`
	Participants []string      `json:"participants"`
	CreatedAt    time.Time     `json:"created_at"`
	IsActive     bool          `json:"is_active"`
	OtherUser    *UserResponse `json:"other_user,omitempty"`
}

type MessageResponse struct {
	ID             string    `json:"id"`
	ChatID         string    `json:"chat_id"`
	SenderID       string    `json:"sender_id"`
	SenderUsername string    `json:"sender_username"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

func newUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:       user.ID.String(),
		Username: user.Username,
		Email:    user.Email,
	}
}

func newTokenResponse(result *service.AuthResult) TokenResponse {
	return TokenResponse{
		AccessToken: result.AccessToken,
		TokenType:   "bearer",
		User:        newUserResponse(result.User),
	}
}

func newChatRoomResponse(view *service.RoomView) ChatRoomResponse {
	resp := ChatRoomResponse{
		ID:           view.Room.ID.String(),
		InviteToken:  view.Room.InviteToken,
		Participants: view.Room.Participants,
		CreatedAt:    view.Room.CreatedAt,
		IsActive:     view.Room.IsActive,
	}
	if view.OtherUser != nil {
		other := newUserResponse(view.OtherUser)
		resp.OtherUser = &other
	}
	return resp
}

func newMessageResponse(view *service.MessageView) MessageResponse {
	return MessageResponse{
		ID:             view.Message.ID.String(),
		ChatID:         view.Message.ChatID.String(),
		SenderID:       view.Message.SenderID.String(),
		SenderUsername: view.SenderUsername,
		Content:        view.Message.Content,
		CreatedAt:      view.Message.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
