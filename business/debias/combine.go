package debias

import (
	"sort"

	"fairTune/domain"
)

// Combine fuses the per-stage adjusted scores into one debiased score and
// sorts descending. A component missing from the score map (its stage
// faulted or never ran) falls back to the base score, so a partial
// pipeline still produces a usable ranking.
func Combine(tracks []domain.ScoredTrack, cfg Config) []domain.ScoredTrack {
	if len(tracks) == 0 {
		return []domain.ScoredTrack{}
	}

	out := make([]domain.ScoredTrack, 0, len(tracks))
	for _, st := range tracks {
		st = st.Clone()

		pop := st.ScoreOr(domain.ScorePopularityAdjusted, st.Track.BaseScore)
		div := st.ScoreOr(domain.ScoreDiversityAdjusted, st.Track.BaseScore)
		nov := st.ScoreOr(domain.ScoreNoveltyAdjusted, st.Track.BaseScore)

		st.DebiasedScore = cfg.WPopularity*pop + cfg.WDiversity*div + cfg.WNovelty*nov
		out = append(out, st)
	}

	// stable: equal scores keep their incoming order
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DebiasedScore > out[j].DebiasedScore
	})

	return out
}
