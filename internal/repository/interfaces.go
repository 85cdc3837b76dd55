package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tandemchat/tandem/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

type RoomRepository interface {
	Create(ctx context.Context, room *domain.ChatRoom) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ChatRoom, error)
	GetByInviteToken(ctx context.Context, token string) (*domain.ChatRoom, error)
	// AppendParticipant atomically adds userID to the room's participant set,
	// but only while the set holds fewer than domain.MaxParticipants entries
	// and does not already contain userID. It reports whether the append
	// happened.
	AppendParticipant(ctx context.Context, roomID, userID uuid.UUID) (bool, error)
	GetByParticipant(ctx context.Context, userID uuid.UUID) ([]*domain.ChatRoom, error)
}

type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	// ListByChat returns up to limit messages of the room, newest first,
	// restricted to created_at strictly before the cursor when one is given.
	ListByChat(ctx context.Context, chatID uuid.UUID, limit int, before *time.Time) ([]*domain.Message, error)
}

type StatusCheckRepository interface {
	Create(ctx context.Context, check *domain.StatusCheck) error
	List(ctx context.Context, limit int) ([]*domain.StatusCheck, error)
}

type Repositories struct {
	User        UserRepository
	Room        RoomRepository
	Message     MessageRepository
	StatusCheck StatusCheckRepository
}
