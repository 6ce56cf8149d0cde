package evaluation

import (
	"testing"
	"time"

	"fairTune/domain"
)

func featuredTrack(id, artistID string, popularity int, energy, valence float64) domain.ScoredTrack {
	return domain.NewScoredTrack(domain.Track{
		ID:         id,
		Title:      id,
		Artists:    []domain.Artist{{ID: artistID, Name: artistID}},
		Popularity: popularity,
		AudioFeatures: domain.AudioFeatures{
			"energy":  energy,
			"valence": valence,
		},
	})
}

func TestEvaluateFullMetricSet(t *testing.T) {
	e := NewEvaluator()
	ctx := &domain.ListeningContext{TimeCategory: domain.TimeMorning, Mood: "happy"}

	recs := []domain.ScoredTrack{
		featuredTrack("t1", "a1", 60, 0.8, 0.9),
		featuredTrack("t2", "a2", 40, 0.6, 0.7),
	}

	got := e.Evaluate(recs, domain.NewHistorySet("a1"), ctx)

	if !almostEqual(got["num_recommendations"], 2) {
		t.Errorf("num_recommendations = %v, want 2", got["num_recommendations"])
	}
	if !almostEqual(got["avg_popularity"], 50) {
		t.Errorf("avg_popularity = %v, want 50", got["avg_popularity"])
	}
	if !almostEqual(got["popularity_variance"], 100) {
		t.Errorf("popularity_variance = %v, want 100", got["popularity_variance"])
	}
	if !almostEqual(got["time_relevance"], 0.7) {
		t.Errorf("time_relevance = %v, want 0.7", got["time_relevance"])
	}
	if !almostEqual(got["mood_relevance"], 0.8) {
		t.Errorf("mood_relevance = %v, want 0.8", got["mood_relevance"])
	}

	for _, key := range []string{"artist_diversity", "genre_diversity", "overall_diversity",
		"avg_novelty", "avg_artist_novelty", "novelty_variance", "overall_quality_score"} {
		if _, ok := got[key]; !ok {
			t.Errorf("missing metric %s", key)
		}
	}

	if len(e.metricsHistory) != 1 {
		t.Fatalf("snapshot count = %d, want 1", len(e.metricsHistory))
	}
}

func TestEvaluateEmptyBatch(t *testing.T) {
	e := NewEvaluator()

	got := e.Evaluate(nil, nil, nil)

	if len(got) != 0 {
		t.Errorf("empty batch metrics = %v, want empty", got)
	}
	if len(e.metricsHistory) != 0 {
		t.Error("empty batch must not append a snapshot")
	}
}

func TestEvaluateWithoutHistorySkipsNovelty(t *testing.T) {
	e := NewEvaluator()

	got := e.Evaluate([]domain.ScoredTrack{featuredTrack("t1", "a1", 50, 0.5, 0.5)}, nil, nil)

	if _, ok := got["avg_novelty"]; ok {
		t.Error("novelty metrics computed without history")
	}
	if _, ok := got["time_relevance"]; ok {
		t.Error("relevance metrics computed without context")
	}
	if _, ok := got["artist_diversity"]; !ok {
		t.Error("diversity metrics must always be computed")
	}
}

func TestOverallQualityRenormalizes(t *testing.T) {
	metrics := map[string]float64{
		"artist_diversity": 1.0,
		"genre_diversity":  1.0,
	}

	if got := overallQuality(metrics); !almostEqual(got, 1.0) {
		t.Errorf("quality over partial metrics = %v, want 1.0", got)
	}

	if got := overallQuality(map[string]float64{}); got != 0 {
		t.Errorf("quality over no metrics = %v, want 0", got)
	}
}

func TestSummaryAveragesSnapshots(t *testing.T) {
	e := NewEvaluator()

	e.Evaluate([]domain.ScoredTrack{
		featuredTrack("t1", "a1", 50, 0.5, 0.5),
		featuredTrack("t2", "a2", 50, 0.5, 0.5),
	}, nil, nil)
	e.Evaluate([]domain.ScoredTrack{
		featuredTrack("t3", "a3", 50, 0.5, 0.5),
		featuredTrack("t4", "a4", 50, 0.5, 0.5),
		featuredTrack("t5", "a5", 50, 0.5, 0.5),
		featuredTrack("t6", "a6", 50, 0.5, 0.5),
	}, nil, nil)

	got := e.Summary(WindowAll)

	if !almostEqual(got["avg_num_recommendations"], 3) {
		t.Errorf("avg_num_recommendations = %v, want 3", got["avg_num_recommendations"])
	}
	if !almostEqual(got["std_num_recommendations"], 1) {
		t.Errorf("std_num_recommendations = %v, want 1", got["std_num_recommendations"])
	}
	if _, ok := got["avg_overall_quality_score"]; !ok {
		t.Error("missing avg_overall_quality_score")
	}
}

func TestSummaryIncludesFeedback(t *testing.T) {
	e := NewEvaluator()

	e.RecordFeedback(domain.FeedbackRecord{TrackID: "t1", FeedbackType: "like", Rating: 0.9})
	e.RecordFeedback(domain.FeedbackRecord{TrackID: "t2", FeedbackType: "skip", Rating: 0.1})

	got := e.Summary(WindowWeek)

	if !almostEqual(got["total_feedback"], 2) {
		t.Errorf("total_feedback = %v, want 2", got["total_feedback"])
	}
	if !almostEqual(got["avg_satisfaction"], 0.5) {
		t.Errorf("avg_satisfaction = %v, want 0.5", got["avg_satisfaction"])
	}
}

func TestRecordFeedbackFillsTimestamp(t *testing.T) {
	e := NewEvaluator()

	before := time.Now()
	e.RecordFeedback(domain.FeedbackRecord{TrackID: "t1", FeedbackType: "play", Rating: 0.6})

	if e.feedback[0].Timestamp.Before(before) {
		t.Error("zero timestamp was not defaulted to now")
	}
}

func TestArchiveRestoreRoundTrip(t *testing.T) {
	e := NewEvaluator()
	e.Evaluate([]domain.ScoredTrack{featuredTrack("t1", "a1", 50, 0.5, 0.5)}, domain.NewHistorySet("x"), nil)
	e.RecordFeedback(domain.FeedbackRecord{TrackID: "t1", FeedbackType: "like", Rating: 0.9})

	archive := e.Archive()

	restored := NewEvaluator()
	restored.Restore(archive)

	if len(restored.metricsHistory) != 1 {
		t.Errorf("restored metrics history length = %d, want 1", len(restored.metricsHistory))
	}
	if len(restored.feedback) != 1 {
		t.Errorf("restored feedback length = %d, want 1", len(restored.feedback))
	}

	original := e.Summary(WindowAll)
	roundTripped := restored.Summary(WindowAll)
	for key, want := range original {
		if got, ok := roundTripped[key]; !ok || !almostEqual(got, want) {
			t.Errorf("summary key %s = %v after restore, want %v", key, got, want)
		}
	}
}

func TestArchiveIsACopy(t *testing.T) {
	e := NewEvaluator()
	e.RecordFeedback(domain.FeedbackRecord{TrackID: "t1", FeedbackType: "like", Rating: 0.9})

	archive := e.Archive()
	e.RecordFeedback(domain.FeedbackRecord{TrackID: "t2", FeedbackType: "skip", Rating: 0.1})

	if len(archive.UserFeedback) != 1 {
		t.Errorf("archive grew with the evaluator: %d records", len(archive.UserFeedback))
	}
}
