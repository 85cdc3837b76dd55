package domain

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	ChatID    uuid.UUID `json:"chatId" gorm:"type:uuid;not null;index"`
	SenderID  uuid.UUID `json:"senderId" gorm:"type:uuid;not null"`
	Content   string    `json:"content" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
}

type StatusCheck struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	ClientName string    `json:"client_name" gorm:"not null"`
	Timestamp  time.Time `json:"timestamp"`
}
