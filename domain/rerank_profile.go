package domain

// RerankProfile is the per-station tuning row. Zero-valued weights fall
// back to service defaults when the profile is resolved.
type RerankProfile struct {
	Station string `json:"station" gorm:"column:station;primaryKey"`

	PopularityAlpha float64 `json:"popularity_alpha" gorm:"column:popularity_alpha"`
	PenaltyStrength float64 `json:"penalty_strength" gorm:"column:penalty_strength"`
	DiversityWeight float64 `json:"diversity_weight" gorm:"column:diversity_weight"`
	NoveltyWeight   float64 `json:"novelty_weight" gorm:"column:novelty_weight"`
	NoveltyBoost    float64 `json:"novelty_boost" gorm:"column:novelty_boost"`

	//  fused-score weights
	WPopularity float64 `json:"w_popularity" gorm:"column:w_popularity"`
	WDiversity  float64 `json:"w_diversity" gorm:"column:w_diversity"`
	WNovelty    float64 `json:"w_novelty" gorm:"column:w_novelty"`

	ExplorationRate float64 `json:"exploration_rate" gorm:"column:exploration_rate"`

	//  implied ratings per feedback type
	RatingPlay    float64 `json:"rating_play" gorm:"column:rating_play"`
	RatingLike    float64 `json:"rating_like" gorm:"column:rating_like"`
	RatingSave    float64 `json:"rating_save" gorm:"column:rating_save"`
	RatingSkip    float64 `json:"rating_skip" gorm:"column:rating_skip"`
	RatingDislike float64 `json:"rating_dislike" gorm:"column:rating_dislike"`

	QuotasRaw []byte             `json:"-" gorm:"column:quotas"`
	Quotas    map[string]float64 `json:"quotas" gorm:"-"`
}

func (RerankProfile) TableName() string {
	return "rerank_profiles"
}
