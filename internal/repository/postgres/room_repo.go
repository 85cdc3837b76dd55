package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tandemchat/tandem/internal/domain"
)

type roomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *roomRepository {
	return &roomRepository{db: db}
}

func (r *roomRepository) Create(ctx context.Context, room *domain.ChatRoom) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *roomRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ChatRoom, error) {
	var room domain.ChatRoom
	err := r.db.WithContext(ctx).First(&room, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) GetByInviteToken(ctx context.Context, token string) (*domain.ChatRoom, error) {
	var room domain.ChatRoom
	err := r.db.WithContext(ctx).First(&room, "invite_token = ?", token).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// AppendParticipant performs the capacity check and the append in a single
// conditional UPDATE so that two racing joiners can never push the set past
// the cap. Zero affected rows means the room filled up (or already contained
// the user) between the caller's read and this write.
func (r *roomRepository) AppendParticipant(ctx context.Context, roomID, userID uuid.UUID) (bool, error) {
	id := userID.String()
	res := r.db.WithContext(ctx).Exec(
		`UPDATE chat_rooms
		 SET participants = participants || to_jsonb(?::text)
		 WHERE id = ?
		   AND jsonb_array_length(participants) < ?
		   AND NOT participants @> to_jsonb(?::text)`,
		id, roomID, domain.MaxParticipants, id,
	)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *roomRepository) GetByParticipant(ctx context.Context, userID uuid.UUID) ([]*domain.ChatRoom, error) {
	var rooms []*domain.ChatRoom
	err := r.db.WithContext(ctx).
		Where("participants @> to_jsonb(?::text)", userID.String()).
		Order("created_at ASC").
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}
