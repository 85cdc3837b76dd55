package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/tandemchat/tandem/internal/domain"
)

type statusCheckRepository struct {
	db *gorm.DB
}

func NewStatusCheckRepository(db *gorm.DB) *statusCheckRepository {
	return &statusCheckRepository{db: db}
}

func (r *statusCheckRepository) Create(ctx context.Context, check *domain.StatusCheck) error {
	return r.db.WithContext(ctx).Create(check).Error
}

func (r *statusCheckRepository) List(ctx context.Context, limit int) ([]*domain.StatusCheck, error) {
	var checks []*domain.StatusCheck
	err := r.db.WithContext(ctx).
		Order("timestamp ASC").
		Limit(limit).
		Find(&checks).Error
	if err != nil {
		return nil, err
	}
	return checks, nil
}
