package archive

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"fairTune/domain"
)

func sampleArchive() domain.EvaluationArchive {
	ts := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	return domain.EvaluationArchive{
		MetricsHistory: []domain.MetricsSnapshot{
			{
				Timestamp: ts,
				Values: map[string]float64{
					"num_recommendations": 10,
					"avg_popularity":      47.3,
					"artist_diversity":    0.8,
				},
			},
		},
		UserFeedback: []domain.FeedbackRecord{
			{
				Timestamp:    ts.Add(time.Minute),
				TrackID:      "track_1",
				FeedbackType: "like",
				Rating:       0.9,
				Exploration:  true,
				Context:      map[string]any{"time_category": "morning", "hour": float64(9)},
			},
		},
		DiversityData: []domain.DiversityRecord{
			{Timestamp: ts, OverallDiversity: 0.8, ArtistDiversity: 0.8, GenreDiversity: 0.5},
		},
		NoveltyData: []domain.NoveltyRecord{
			{Timestamp: ts, AvgNovelty: 1.2, AvgArtistNovelty: 0.7, NoveltyVariance: 0.05},
		},
		SatisfactionData: []domain.SatisfactionRecord{
			{Timestamp: ts.Add(time.Minute), Rating: 0.9, FeedbackType: "like", TrackID: "track_1"},
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	want := sampleArchive()
	if err := store.Save("evaluation_1_morning", want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, ok, err := store.Load("evaluation_1_morning")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !ok {
		t.Fatal("Load reported archive missing after Save")
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("round-tripped archive differs:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestSaveIsByteStable(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	if err := store.Save("stable", sampleArchive()); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	first, err := os.ReadFile(filepath.Join(dir, "stable.json"))
	if err != nil {
		t.Fatalf("read first: %v", err)
	}

	loaded, _, err := store.Load("stable")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := store.Save("stable", loaded); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	second, err := os.ReadFile(filepath.Join(dir, "stable.json"))
	if err != nil {
		t.Fatalf("read second: %v", err)
	}

	if string(first) != string(second) {
		t.Error("save -> load -> save produced different bytes")
	}
}

func TestLoadMissingArchive(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	_, ok, err := store.Load("never_saved")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ok {
		t.Error("missing archive reported as present")
	}
}

func TestLoadCorruptArchive(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	if _, _, err := store.Load("broken"); err == nil {
		t.Error("corrupt archive loaded without error")
	}
}

func TestRejectsPathyNames(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	if err := store.Save("../escape", sampleArchive()); err == nil {
		t.Error("path-traversal name accepted on save")
	}
	if _, _, err := store.Load("a/b"); err == nil {
		t.Error("path-traversal name accepted on load")
	}
}

func TestSaveOverwritesAtomically(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	if err := store.Save("session", sampleArchive()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	updated := sampleArchive()
	updated.UserFeedback = append(updated.UserFeedback, domain.FeedbackRecord{
		Timestamp:    time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC),
		TrackID:      "track_2",
		FeedbackType: "skip",
		Rating:       0.2,
	})
	if err := store.Save("session", updated); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	got, _, err := store.Load("session")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.UserFeedback) != 2 {
		t.Errorf("feedback records = %d, want 2", len(got.UserFeedback))
	}

	// no stray temp file left behind
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".tmp" {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}
