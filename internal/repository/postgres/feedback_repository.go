package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"fairTune/business/recommender"
	"fairTune/domain"
)

type FeedbackRepository struct {
	DB *gorm.DB
}

var _ recommender.FeedbackRepository = (*FeedbackRepository)(nil)

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{
		DB: db,
	}
}

func (r *FeedbackRepository) SaveEvent(ctx context.Context, event domain.FeedbackEvent) error {
	if err := r.DB.WithContext(ctx).Create(&event).Error; err != nil {
		return fmt.Errorf("failed to insert feedback_events: %w", err)
	}

	return nil
}
