package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tandemchat/tandem/internal/domain"
	"github.com/tandemchat/tandem/internal/repository"
)

const statusListLimit = 1000

type StatusService struct {
	statusRepo repository.StatusCheckRepository
}

func NewStatusService(statusRepo repository.StatusCheckRepository) *StatusService {
	return &StatusService{statusRepo: statusRepo}
}

func (s *StatusService) Record(ctx context.Context, clientName string) (*domain.StatusCheck, error) {
	check := &domain.StatusCheck{
		ID:         uuid.New(),
		ClientName: clientName,
		Timestamp:  time.Now().UTC(),
	}

	if err := s.statusRepo.Create(ctx, check); err != nil {
		return nil, err
	}
	return check, nil
}

func (s *StatusService) List(ctx context.Context) ([]*domain.StatusCheck, error) {
	return s.statusRepo.List(ctx, statusListLimit)
}
