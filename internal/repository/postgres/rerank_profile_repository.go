package postgres

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fairTune/business/recommender"
	"fairTune/domain"
)

type RerankProfileRepository struct {
	DB *gorm.DB
}

var _ recommender.ProfileRepository = (*RerankProfileRepository)(nil)

func NewRerankProfileRepository(db *gorm.DB) *RerankProfileRepository {
	return &RerankProfileRepository{DB: db}
}

func (r *RerankProfileRepository) GetProfile(ctx context.Context, station string) (domain.RerankProfile, bool, error) {
	var profile domain.RerankProfile

	err := r.DB.WithContext(ctx).
		Where("station = ?", station).
		First(&profile).Error
	if err == gorm.ErrRecordNotFound {
		return domain.RerankProfile{}, false, nil
	}
	if err != nil {
		return domain.RerankProfile{}, false, err
	}

	if len(profile.QuotasRaw) > 0 {
		_ = json.Unmarshal(profile.QuotasRaw, &profile.Quotas)
	}
	return profile, true, nil
}

func (r *RerankProfileRepository) UpsertProfile(ctx context.Context, profile domain.RerankProfile) error {
	// if Quotas map is set but QuotasRaw is empty, serialize it
	if len(profile.QuotasRaw) == 0 && len(profile.Quotas) > 0 {
		raw, _ := json.Marshal(profile.Quotas)
		profile.QuotasRaw = raw
	}
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "station"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"popularity_alpha",
				"penalty_strength",
				"diversity_weight",
				"novelty_weight",
				"novelty_boost",
				"w_popularity",
				"w_diversity",
				"w_novelty",
				"exploration_rate",
				"rating_play",
				"rating_like",
				"rating_save",
				"rating_skip",
				"rating_dislike",
				"quotas",
			}),
		}).
		Create(&profile).Error
}
