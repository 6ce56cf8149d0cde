package domain

import "time"

// MetricsSnapshot is one evaluated recommendation batch.
type MetricsSnapshot struct {
	Timestamp time.Time          `json:"timestamp"`
	Values    map[string]float64 `json:"values"`
}

// FeedbackRecord is the in-memory feedback trace kept by the evaluator.
// The persistent copy of the same event lives in feedback_events.
type FeedbackRecord struct {
	Timestamp    time.Time      `json:"timestamp"`
	TrackID      string         `json:"track_id"`
	FeedbackType string         `json:"feedback_type"`
	Rating       float64        `json:"rating"`
	Exploration  bool           `json:"is_exploration"`
	Context      map[string]any `json:"context,omitempty"`
}

type DiversityRecord struct {
	Timestamp        time.Time `json:"timestamp"`
	OverallDiversity float64   `json:"overall_diversity"`
	ArtistDiversity  float64   `json:"artist_diversity"`
	GenreDiversity   float64   `json:"genre_diversity"`
}

type NoveltyRecord struct {
	Timestamp        time.Time `json:"timestamp"`
	AvgNovelty       float64   `json:"avg_novelty"`
	AvgArtistNovelty float64   `json:"avg_artist_novelty"`
	NoveltyVariance  float64   `json:"novelty_variance"`
}

type SatisfactionRecord struct {
	Timestamp    time.Time      `json:"timestamp"`
	Rating       float64        `json:"rating"`
	FeedbackType string         `json:"feedback_type"`
	TrackID      string         `json:"track_id"`
	Context      map[string]any `json:"context,omitempty"`
}

// EvaluationArchive is the full serializable state of a session's
// evaluator: five append-only collections.
type EvaluationArchive struct {
	MetricsHistory   []MetricsSnapshot    `json:"metrics_history"`
	UserFeedback     []FeedbackRecord     `json:"user_feedback"`
	DiversityData    []DiversityRecord    `json:"diversity_data"`
	NoveltyData      []NoveltyRecord      `json:"novelty_data"`
	SatisfactionData []SatisfactionRecord `json:"satisfaction_data"`
}
