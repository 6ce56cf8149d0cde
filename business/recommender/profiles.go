package recommender

import (
	"context"
	"encoding/json"
	"fmt"

	"fairTune/business/debias"
	"fairTune/domain"
)

// Profile is the resolved per-station tuning: stage config, the starting
// exploration rate for new sessions, implied ratings, and optional
// category quotas.
type Profile struct {
	Debias  debias.Config
	Rate    float64
	Ratings map[string]float64
	Quotas  map[string]float64
}

func defaultImpliedRatings() map[string]float64 {
	return map[string]float64{
		domain.FeedbackPlay:    0.6,
		domain.FeedbackLike:    0.9,
		domain.FeedbackSave:    1.0,
		domain.FeedbackSkip:    0.2,
		domain.FeedbackDislike: 0.0,
	}
}

// RatingForEvent resolves the effective rating of a feedback event. An
// explicit client rating wins (clamped to 0..1); otherwise the profile's
// implied rating for the feedback type applies.
func (p Profile) RatingForEvent(ev domain.FeedbackEvent) (float64, error) {
	if ev.Rating >= 0 {
		if ev.Rating > 1 {
			return 1, nil
		}
		return ev.Rating, nil
	}

	implied, ok := p.Ratings[ev.FeedbackType]
	if !ok {
		return 0, fmt.Errorf("unknown feedback type: %s", ev.FeedbackType)
	}

	return implied, nil
}

// loadProfile reads the station's stored profile, falling back to service
// defaults when no row exists or the repo is unavailable.
func (s *Service) loadProfile(ctx context.Context, station string) Profile {
	prof := Profile{
		Debias:  s.cfg.Debias,
		Rate:    s.cfg.ExplorationRate,
		Ratings: defaultImpliedRatings(),
	}
	if s.profileRepo == nil {
		return prof
	}

	row, ok, err := s.profileRepo.GetProfile(ctx, station)
	if err != nil || !ok {
		return prof
	}

	// zero-valued knobs keep their defaults; an admin row only overrides
	// what it actually sets
	if row.PopularityAlpha > 0 {
		prof.Debias.PopularityAlpha = row.PopularityAlpha
	}
	if row.PenaltyStrength > 0 {
		prof.Debias.PenaltyStrength = row.PenaltyStrength
	}
	if row.DiversityWeight > 0 {
		prof.Debias.DiversityWeight = row.DiversityWeight
	}
	if row.NoveltyWeight > 0 {
		prof.Debias.NoveltyWeight = row.NoveltyWeight
	}
	if row.NoveltyBoost > 0 {
		prof.Debias.NoveltyBoost = row.NoveltyBoost
	}
	if row.WPopularity > 0 || row.WDiversity > 0 || row.WNovelty > 0 {
		prof.Debias.WPopularity = row.WPopularity
		prof.Debias.WDiversity = row.WDiversity
		prof.Debias.WNovelty = row.WNovelty
	}
	if row.ExplorationRate > 0 {
		prof.Rate = row.ExplorationRate
	}

	// implied ratings come as a block: a row that sets any of them sets
	// the discouraged ones to zero on purpose
	if row.RatingPlay > 0 || row.RatingLike > 0 || row.RatingSave > 0 {
		prof.Ratings = map[string]float64{
			domain.FeedbackPlay:    row.RatingPlay,
			domain.FeedbackLike:    row.RatingLike,
			domain.FeedbackSave:    row.RatingSave,
			domain.FeedbackSkip:    row.RatingSkip,
			domain.FeedbackDislike: row.RatingDislike,
		}
	}

	if len(row.QuotasRaw) > 0 {
		quotas := map[string]float64{}
		if err := json.Unmarshal(row.QuotasRaw, &quotas); err == nil && len(quotas) > 0 {
			prof.Quotas = quotas
		}
	}

	return prof
}
