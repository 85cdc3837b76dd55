package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tandemchat/tandem/internal/domain"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	username string
	email    string
	password string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		username: fmt.Sprintf("testuser_%s", suffix),
		email:    fmt.Sprintf("testuser_%s@example.com", suffix),
		password: "testpassword123",
	}
}

// WithUsername sets the username
func (b *UserBuilder) WithUsername(name string) *UserBuilder {
	b.username = name
	return b
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     b.username,
		Email:        b.email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now().UTC(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// AuthResponse matches the API auth response
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
	} `json:"user"`
}

// BuildAndAuthenticate creates a user via the signup API and returns the
// user and access token
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	reqBody := map[string]string{
		"username": b.username,
		"email":    b.email,
		"password": b.password,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.APIURL("/auth/signup"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to sign up user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var authResp AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	userID, _ := uuid.Parse(authResp.User.ID)
	user := &domain.User{
		ID:       userID,
		Username: authResp.User.Username,
		Email:    authResp.User.Email,
	}

	return user, authResp.AccessToken
}

// RoomBuilder creates test chat rooms with a builder pattern
type RoomBuilder struct {
	creator      *domain.User
	participants []*domain.User
}

// NewRoomBuilder creates a new RoomBuilder with default values
func NewRoomBuilder() *RoomBuilder {
	return &RoomBuilder{}
}

// WithCreator sets the room creator
func (b *RoomBuilder) WithCreator(user *domain.User) *RoomBuilder {
	b.creator = user
	return b
}

// WithParticipant adds a second participant
func (b *RoomBuilder) WithParticipant(user *domain.User) *RoomBuilder {
	b.participants = append(b.participants, user)
	return b
}

// Build creates the room in the database
func (b *RoomBuilder) Build(t *testing.T, db *gorm.DB) *domain.ChatRoom {
	t.Helper()

	if b.creator == nil {
		user, _ := NewUserBuilder().Build(t, db)
		b.creator = user
	}

	participants := datatypes.JSONSlice[string]{b.creator.ID.String()}
	for _, p := range b.participants {
		participants = append(participants, p.ID.String())
	}

	room := &domain.ChatRoom{
		ID:           uuid.New(),
		InviteToken:  uuid.New().String(),
		Participants: participants,
		CreatedBy:    b.creator.ID,
		CreatedAt:    time.Now().UTC(),
		IsActive:     true,
	}

	if err := db.Create(room).Error; err != nil {
		t.Fatalf("failed to create room: %v", err)
	}

	return room
}

// MessageBuilder creates test messages with a builder pattern
type MessageBuilder struct {
	chatID    uuid.UUID
	senderID  uuid.UUID
	content   string
	createdAt time.Time
}

// NewMessageBuilder creates a new MessageBuilder with default values
func NewMessageBuilder(chatID, senderID uuid.UUID) *MessageBuilder {
	return &MessageBuilder{
		chatID:    chatID,
		senderID:  senderID,
		content:   "test message",
		createdAt: time.Now().UTC(),
	}
}

// WithContent sets the message content
func (b *MessageBuilder) WithContent(content string) *MessageBuilder {
	b.content = content
	return b
}

// WithCreatedAt sets the message timestamp
func (b *MessageBuilder) WithCreatedAt(ts time.Time) *MessageBuilder {
	b.createdAt = ts
	return b
}

// Build creates the message in the database
func (b *MessageBuilder) Build(t *testing.T, db *gorm.DB) *domain.Message {
	t.Helper()

	message := &domain.Message{
		ID:        uuid.New(),
		ChatID:    b.chatID,
		SenderID:  b.senderID,
		Content:   b.content,
		CreatedAt: b.createdAt,
	}

	if err := db.Create(message).Error; err != nil {
		t.Fatalf("failed to create message: %v", err)
	}

	return message
}

// DoJSON issues an authenticated JSON request against the test server and
// returns the response.
func DoJSON(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewBuffer(payload)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	return resp
}
