package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tandemchat/tandem/internal/domain"
)

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *messageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *domain.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *messageRepository) ListByChat(ctx context.Context, chatID uuid.UUID, limit int, before *time.Time) ([]*domain.Message, error) {
	query := r.db.WithContext(ctx).Where("chat_id = ?", chatID)
	if before != nil {
		query = query.Where("created_at < ?", *before)
	}

	var messages []*domain.Message
	// Secondary sort on id keeps the order stable when timestamps collide.
	err := query.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
