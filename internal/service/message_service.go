package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tandemchat/tandem/internal/domain"
	"github.com/tandemchat/tandem/internal/repository"
)

// UnknownSender is substituted when a message's sender account no longer
// exists.
const UnknownSender = "Unknown"

const defaultMessageLimit = 100

type MessageService struct {
	messageRepo repository.MessageRepository
	roomRepo    repository.RoomRepository
	userRepo    repository.UserRepository
}

func NewMessageService(messageRepo repository.MessageRepository, roomRepo repository.RoomRepository, userRepo repository.UserRepository) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		roomRepo:    roomRepo,
		userRepo:    userRepo,
	}
}

// MessageView carries a message together with its sender's display name.
type MessageView struct {
	Message        *domain.Message
	SenderUsername string
}

func (s *MessageService) Send(ctx context.Context, chatID uuid.UUID, sender *domain.User, content string) (*MessageView, error) {
	room, err := s.roomFor(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !room.HasParticipant(sender.ID) {
		return nil, domain.ErrNotParticipant
	}

	message := &domain.Message{
		ID:        uuid.New(),
		ChatID:    chatID,
		SenderID:  sender.ID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	return &MessageView{Message: message, SenderUsername: sender.Username}, nil
}

// List returns up to limit messages of the room in chronological order.
// The store is queried newest-first so that limit trims the oldest entries,
// then the page is reversed: callers always render top-to-bottom in time
// order. A before cursor restricts results to strictly earlier messages.
func (s *MessageService) List(ctx context.Context, chatID uuid.UUID, requester *domain.User, limit int, before *time.Time) ([]*MessageView, error) {
	room, err := s.roomFor(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !room.HasParticipant(requester.ID) {
		return nil, domain.ErrNotParticipant
	}

	if limit <= 0 {
		limit = defaultMessageLimit
	}

	messages, err := s.messageRepo.ListByChat(ctx, chatID, limit, before)
	if err != nil {
		return nil, err
	}

	usernames := make(map[uuid.UUID]string)
	views := make([]*MessageView, 0, len(messages))
	for i := len(messages) - 1; i >= 0; i-- {
		msg := messages[i]
		name, ok := usernames[msg.SenderID]
		if !ok {
			name = UnknownSender
			if sender, err := s.userRepo.GetByID(ctx, msg.SenderID); err == nil {
				name = sender.Username
			}
			usernames[msg.SenderID] = name
		}
		views = append(views, &MessageView{Message: msg, SenderUsername: name})
	}

	return views, nil
}

func (s *MessageService) roomFor(ctx context.Context, chatID uuid.UUID) (*domain.ChatRoom, error) {
	room, err := s.roomRepo.GetByID(ctx, chatID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRoomNotFound
		}
		return nil, err
	}
	return room, nil
}
