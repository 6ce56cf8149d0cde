package debias

import (
	"math"

	"fairTune/domain"
)

// PopularityDebiaser dampens the head of the popularity distribution so
// already-popular tracks stop compounding their advantage.
type PopularityDebiaser struct {
	alpha    float64
	strength float64
}

func NewPopularityDebiaser(alpha, strength float64) *PopularityDebiaser {
	if alpha <= 0 {
		alpha = DefaultPopularityAlpha
	}
	if strength <= 0 {
		strength = DefaultPenaltyStrength
	}

	return &PopularityDebiaser{alpha: alpha, strength: strength}
}

// Apply annotates every candidate with its popularity scores. Tracks are
// never dropped here, only re-weighted.
func (d *PopularityDebiaser) Apply(tracks []domain.ScoredTrack) []domain.ScoredTrack {
	if len(tracks) == 0 {
		return []domain.ScoredTrack{}
	}

	out := make([]domain.ScoredTrack, 0, len(tracks))
	for _, st := range tracks {
		st = st.Clone()
		p := float64(st.Track.Popularity) / 100.0

		// sub-linear compression keeps relative order but narrows the gap
		normalized := math.Pow(p, d.alpha)
		st.Scores[domain.ScoreNormalizedPopularity] = normalized
		st.Scores[domain.ScoreBiasReduction] = 1.0 - normalized

		st.Scores[domain.ScorePopularityPenalty] = d.penalty(p)
		st.Scores[domain.ScorePopularityAdjusted] = st.Track.BaseScore * (1.0 - st.Scores[domain.ScorePopularityPenalty])

		// alternative view boosting the long tail instead of punishing the head
		weight := 1.0 - p*0.5
		st.Scores[domain.ScorePopularityAware] = st.Track.BaseScore * (1.0 + weight*0.3)

		out = append(out, st)
	}

	return out
}

// penalty is tiered: the top popularity band pays steeply, the middle
// band mildly, the tail nothing.
func (d *PopularityDebiaser) penalty(p float64) float64 {
	switch {
	case p > 0.8:
		return d.strength * (p - 0.8) * 5
	case p > 0.6:
		return d.strength * (p - 0.6) * 2.5
	default:
		return 0
	}
}
