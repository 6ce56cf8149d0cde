package domain

// Score map keys attached by the debias stages. The raw model score
// arrives as ScoreBase; everything else is derived.
const (
	ScoreBase = "recommendation_score"

	ScoreNormalizedPopularity = "normalized_popularity"
	ScoreBiasReduction        = "popularity_bias_reduction"
	ScorePopularityPenalty    = "popularity_penalty"
	ScorePopularityAdjusted   = "popularity_adjusted_score"
	ScorePopularityAware      = "popularity_aware_score"

	ScoreDiversityBoost         = "diversity_boost"
	ScoreDiversityAdjusted      = "diversity_adjusted_score"
	ScoreGenreDiversityBoost    = "genre_diversity_boost"
	ScoreTemporalDiversityBoost = "temporal_diversity_boost"

	ScoreNovelty            = "novelty_score"
	ScoreNoveltyAdjusted    = "novelty_adjusted_score"
	ScoreArtistNoveltyBoost = "artist_novelty_boost"
)

// ScoredTrack is a candidate flowing through the re-ranking pipeline,
// carrying every derived score component alongside the track itself.
type ScoredTrack struct {
	Track         Track              `json:"track"`
	Scores        map[string]float64 `json:"scores"`
	DebiasedScore float64            `json:"debiased_score"`
	Exploration   bool               `json:"exploration"`
}

func NewScoredTrack(t Track) ScoredTrack {
	return ScoredTrack{
		Track:  t,
		Scores: map[string]float64{ScoreBase: t.BaseScore},
	}
}

// Clone copies the score map so a stage can annotate its own copy without
// mutating its input.
func (s ScoredTrack) Clone() ScoredTrack {
	scores := make(map[string]float64, len(s.Scores)+4)
	for k, v := range s.Scores {
		scores[k] = v
	}
	s.Scores = scores

	return s
}

// ScoreOr reads a score component, falling back when the stage that
// produces it never ran.
func (s ScoredTrack) ScoreOr(key string, fallback float64) float64 {
	if v, ok := s.Scores[key]; ok {
		return v
	}

	return fallback
}

// HistorySet holds the track and artist identifiers a listener has
// already heard. A nil set means no history, so everything reads as new.
type HistorySet map[string]struct{}

func NewHistorySet(ids ...string) HistorySet {
	h := make(HistorySet, len(ids))
	for _, id := range ids {
		h.Add(id)
	}

	return h
}

func (h HistorySet) Add(id string) {
	if id == "" {
		return
	}
	h[id] = struct{}{}
}

func (h HistorySet) Contains(id string) bool {
	if h == nil {
		return false
	}
	_, ok := h[id]

	return ok
}

// Recommendation is the served result of one recommend call.
type Recommendation struct {
	SessionID       string        `json:"session_id"`
	Station         string        `json:"station"`
	ExplorationRate float64       `json:"exploration_rate"`
	Tracks          []ScoredTrack `json:"tracks"`
}

// DebugTrack is the inspection view of one ranked candidate: the full
// score breakdown with no exploration noise applied.
type DebugTrack struct {
	TrackID       string             `json:"track_id"`
	Title         string             `json:"title"`
	Artist        string             `json:"artist"`
	Duration      string             `json:"duration"`
	BaseScore     float64            `json:"base_score"`
	DebiasedScore float64            `json:"debiased_score"`
	Scores        map[string]float64 `json:"scores"`
	Allocated     bool               `json:"allocated"`
}
