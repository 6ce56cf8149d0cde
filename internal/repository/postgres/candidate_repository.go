package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"fairTune/business/catalog"
	"fairTune/business/recommender"
	"fairTune/domain"
)

type CandidateRepository struct {
	DB *gorm.DB
}

var _ recommender.CandidateRepository = (*CandidateRepository)(nil)
var _ catalog.CandidateRepository = (*CandidateRepository)(nil)

func NewCandidateRepository(db *gorm.DB) *CandidateRepository {
	return &CandidateRepository{
		DB: db,
	}
}

// Get top-N candidates for a station ordered by base score DESC
func (r *CandidateRepository) GetByStation(
	ctx context.Context,
	station string,
	limit int,
) ([]domain.CandidateTrack, error) {

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if limit <= 0 {
		limit = 10
	}

	var rows []domain.CandidateTrack
	if err := r.DB.WithContext(ctx).
		Where("station = ?", station).
		Order("base_score DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query candidate_tracks: %w", err)
	}

	return rows, nil
}

// ReplaceStation swaps the station's whole candidate set in one
// transaction so a reader never sees a half-replaced pool.
func (r *CandidateRepository) ReplaceStation(
	ctx context.Context,
	station string,
	rows []domain.CandidateTrack,
) error {

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("station = ?", station).
			Delete(&domain.CandidateTrack{}).Error; err != nil {
			return fmt.Errorf("failed to clear candidate_tracks: %w", err)
		}

		if len(rows) == 0 {
			return nil
		}

		if err := tx.CreateInBatches(rows, 100).Error; err != nil {
			return fmt.Errorf("failed to insert candidate_tracks: %w", err)
		}

		return nil
	})
}
