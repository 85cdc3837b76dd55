package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tandemchat/tandem/internal/domain"
	"github.com/tandemchat/tandem/internal/repository"
)

type RoomService struct {
	roomRepo repository.RoomRepository
	userRepo repository.UserRepository
}

func NewRoomService(roomRepo repository.RoomRepository, userRepo repository.UserRepository) *RoomService {
	return &RoomService{
		roomRepo: roomRepo,
		userRepo: userRepo,
	}
}

// RoomView pairs a room with the resolved counterpart of the viewing user.
// OtherUser is nil while the room has a single participant, or when the
// counterpart's account no longer exists.
type RoomView struct {
	Room      *domain.ChatRoom
	OtherUser *domain.User
}

func (s *RoomService) CreateRoom(ctx context.Context, creator *domain.User) (*domain.ChatRoom, error) {
	room := &domain.ChatRoom{
		ID:           uuid.New(),
		InviteToken:  uuid.New().String(),
		Participants: datatypes.JSONSlice[string]{creator.ID.String()},
		CreatedBy:    creator.ID,
		CreatedAt:    time.Now().UTC(),
		IsActive:     true,
	}

	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, err
	}

	return room, nil
}

// JoinRoom admits the joiner through a one-room invite token. Re-opening an
// invite for a room the joiner already shares is an idempotent success; the
// creator re-using their own invite while alone is an error.
func (s *RoomService) JoinRoom(ctx context.Context, inviteToken string, joiner *domain.User) (*RoomView, error) {
	room, err := s.roomRepo.GetByInviteToken(ctx, inviteToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRoomNotFound
		}
		return nil, err
	}

	if room.IsFull() {
		if room.HasParticipant(joiner.ID) {
			return s.viewFor(ctx, room, joiner.ID), nil
		}
		return nil, domain.ErrRoomFull
	}

	if room.HasParticipant(joiner.ID) {
		return nil, domain.ErrAlreadyMember
	}

	appended, err := s.roomRepo.AppendParticipant(ctx, room.ID, joiner.ID)
	if err != nil {
		return nil, err
	}

	// Lost the append race: the room changed between our read and the
	// conditional update. Re-read to tell idempotent membership apart from
	// a genuinely full room.
	if !appended {
		room, err = s.roomRepo.GetByID(ctx, room.ID)
		if err != nil {
			return nil, err
		}
		if room.HasParticipant(joiner.ID) {
			return s.viewFor(ctx, room, joiner.ID), nil
		}
		return nil, domain.ErrRoomFull
	}

	room, err = s.roomRepo.GetByID(ctx, room.ID)
	if err != nil {
		return nil, err
	}

	return s.viewFor(ctx, room, joiner.ID), nil
}

// RoomsFor lists every room the user participates in, oldest first, each
// with the counterpart resolved when the room is paired up.
func (s *RoomService) RoomsFor(ctx context.Context, userID uuid.UUID) ([]*RoomView, error) {
	rooms, err := s.roomRepo.GetByParticipant(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]*RoomView, 0, len(rooms))
	for _, room := range rooms {
		views = append(views, s.viewFor(ctx, room, userID))
	}
	return views, nil
}

func (s *RoomService) GetRoom(ctx context.Context, id uuid.UUID) (*domain.ChatRoom, error) {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRoomNotFound
		}
		return nil, err
	}
	return room, nil
}

func (s *RoomService) viewFor(ctx context.Context, room *domain.ChatRoom, viewerID uuid.UUID) *RoomView {
	view := &RoomView{Room: room}

	if len(room.Participants) != domain.MaxParticipants {
		return view
	}

	otherID, found := lo.Find(room.Participants, func(p string) bool {
		return p != viewerID.String()
	})
	if !found {
		return view
	}

	id, err := uuid.Parse(otherID)
	if err != nil {
		return view
	}

	// A vanished counterpart is not an error; the view simply omits them.
	if other, err := s.userRepo.GetByID(ctx, id); err == nil {
		view.OtherUser = other
	}

	return view
}
