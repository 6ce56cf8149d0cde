package debias

import "fairTune/domain"

// Familiarity discounts for items already in the listener's history.
// Hearing an artist again is less stale than hearing the exact track.
const (
	knownArtistNovelty = 0.3
	knownTrackNovelty  = 0.1

	artistNoveltyShare = 0.7
	trackNoveltyShare  = 0.3
)

// NoveltyScore rates how new a track is to a listener, scaled by the
// configured boost. With no history everything scores as fully new.
func NoveltyScore(t domain.Track, history domain.HistorySet, boost float64) float64 {
	if boost <= 0 {
		boost = DefaultNoveltyBoost
	}

	artistNovelty := 1.0
	if history.Contains(t.PrimaryArtistID()) {
		artistNovelty = knownArtistNovelty
	}

	trackNovelty := 1.0
	if history.Contains(t.ID) {
		trackNovelty = knownTrackNovelty
	}

	return (artistNovelty*artistNoveltyShare + trackNovelty*trackNoveltyShare) * boost
}

// NoveltyPromoter lifts tracks the listener has not heard before.
type NoveltyPromoter struct {
	weight float64
	boost  float64
}

func NewNoveltyPromoter(weight, boost float64) *NoveltyPromoter {
	if weight <= 0 {
		weight = DefaultNoveltyWeight
	}
	if boost <= 0 {
		boost = DefaultNoveltyBoost
	}

	return &NoveltyPromoter{weight: weight, boost: boost}
}

func (n *NoveltyPromoter) Apply(tracks []domain.ScoredTrack, history domain.HistorySet) []domain.ScoredTrack {
	if len(tracks) == 0 {
		return []domain.ScoredTrack{}
	}

	artistCounts := make(map[string]int, len(tracks))
	for _, st := range tracks {
		artistCounts[st.Track.PrimaryArtistID()]++
	}

	out := make([]domain.ScoredTrack, 0, len(tracks))
	for _, st := range tracks {
		st = st.Clone()

		novelty := NoveltyScore(st.Track, history, n.boost)
		st.Scores[domain.ScoreNovelty] = novelty
		st.Scores[domain.ScoreNoveltyAdjusted] = st.Track.BaseScore * (1.0 + novelty*n.weight)

		count := artistCounts[st.Track.PrimaryArtistID()]
		if count < 1 {
			count = 1
		}
		st.Scores[domain.ScoreArtistNoveltyBoost] = 1.0 / float64(count)

		out = append(out, st)
	}

	return out
}
