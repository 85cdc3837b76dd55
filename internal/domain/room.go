package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MaxParticipants is the hard participant cap per room. Rooms pair exactly
// two users; the invite token admits the second one.
const MaxParticipants = 2

type ChatRoom struct {
	ID           uuid.UUID                   `json:"id" gorm:"type:uuid;primary_key"`
	InviteToken  string                      `json:"inviteToken" gorm:"uniqueIndex;not null"`
	Participants datatypes.JSONSlice[string] `json:"participants" gorm:"type:jsonb;not null;default:'[]'"`
	CreatedBy    uuid.UUID                   `json:"createdBy" gorm:"type:uuid;not null"`
	CreatedAt    time.Time                   `json:"createdAt"`
	IsActive     bool                        `json:"isActive" gorm:"not null;default:true"`
}

// HasParticipant reports whether the user may read or write this room. It is
// the single authorization predicate applied by every room and message
// operation.
func (r *ChatRoom) HasParticipant(userID uuid.UUID) bool {
	id := userID.String()
	for _, p := range r.Participants {
		if p == id {
			return true
		}
	}
	return false
}

// IsFull reports whether the participant set is closed to further joins.
func (r *ChatRoom) IsFull() bool {
	return len(r.Participants) >= MaxParticipants
}
