package explore

import (
	"fmt"
	"math"
	"testing"

	"fairTune/domain"
)

func poolTrack(id string, debiased, novelty float64, popularity int) domain.ScoredTrack {
	st := domain.NewScoredTrack(domain.Track{
		ID:         id,
		Title:      id,
		Artists:    []domain.Artist{{ID: "ar_" + id}},
		Popularity: popularity,
	})
	st.DebiasedScore = debiased
	st.Scores[domain.ScoreNovelty] = novelty
	return st
}

func buildPool(prefix string, size int) []domain.ScoredTrack {
	pool := make([]domain.ScoredTrack, 0, size)
	for i := 0; i < size; i++ {
		id := fmt.Sprintf("%s%d", prefix, i)
		pool = append(pool, poolTrack(id, 1.0-float64(i)*0.01, 1.0, 50))
	}
	return pool
}

func TestSelectSplitsByRate(t *testing.T) {
	s := NewSelector(0.3)

	out := s.Select(buildPool("exploit", 20), buildPool("explore", 20), 10)

	if len(out) != 10 {
		t.Fatalf("selected %d tracks, want 10", len(out))
	}

	explorationCount := 0
	for _, st := range out {
		if st.Exploration {
			explorationCount++
		}
	}
	if explorationCount != 3 {
		t.Errorf("exploration picks = %d, want 3", explorationCount)
	}
}

func TestSelectMembershipComesFromRightPools(t *testing.T) {
	s := NewSelector(0.3)
	exploit := buildPool("exploit", 20)
	explore := buildPool("explore", 20)

	exploitIDs := map[string]bool{}
	for _, st := range exploit {
		exploitIDs[st.Track.ID] = true
	}

	out := s.Select(exploit, explore, 10)
	for _, st := range out {
		fromExploit := exploitIDs[st.Track.ID]
		if st.Exploration && fromExploit {
			t.Errorf("exploration pick %s came from the exploit pool", st.Track.ID)
		}
		if !st.Exploration && !fromExploit {
			t.Errorf("exploitation pick %s came from the explore pool", st.Track.ID)
		}
	}
}

func TestSelectPrefersNovelLongTailForExploration(t *testing.T) {
	s := NewSelector(0.3)

	explore := []domain.ScoredTrack{
		poolTrack("stale_hit", 0.9, 0.2, 95),
		poolTrack("novel_obscure", 0.1, 1.5, 5),
		poolTrack("middling", 0.5, 0.5, 50),
	}

	// with an empty exploit pool only the 3 exploration picks fit
	out := s.Select(nil, explore, 10)
	if len(out) != 3 {
		t.Fatalf("selected %d tracks, want 3", len(out))
	}

	found := false
	for _, st := range out {
		if st.Track.ID == "novel_obscure" && st.Exploration {
			found = true
		}
	}
	if !found {
		t.Error("novel long-tail track missing from exploration picks")
	}
}

func TestSelectShortPools(t *testing.T) {
	s := NewSelector(0.3)

	out := s.Select(buildPool("exploit", 2), buildPool("explore", 1), 10)

	// 7 exploitation slots but only 2 tracks, 3 exploration slots but only 1
	if len(out) != 3 {
		t.Fatalf("selected %d tracks, want 3", len(out))
	}
}

func TestSelectZeroCount(t *testing.T) {
	s := NewSelector(0.3)
	if out := s.Select(buildPool("a", 5), buildPool("b", 5), 0); len(out) != 0 {
		t.Fatalf("n=0 selected %d tracks", len(out))
	}
}

func ratedEvent(rating float64, exploration bool) domain.FeedbackEvent {
	return domain.FeedbackEvent{
		TrackID:       "t",
		FeedbackType:  domain.FeedbackPlay,
		Rating:        rating,
		IsExploration: exploration,
	}
}

func TestUpdateRateAdapts(t *testing.T) {
	tests := []struct {
		name   string
		events []domain.FeedbackEvent
		want   float64
	}{
		{
			"positive exploration feedback widens",
			[]domain.FeedbackEvent{ratedEvent(0.9, true), ratedEvent(0.8, true)},
			0.35,
		},
		{
			"negative exploration feedback narrows",
			[]domain.FeedbackEvent{ratedEvent(0.1, true)},
			0.25,
		},
		{
			"neutral feedback holds",
			[]domain.FeedbackEvent{ratedEvent(0.5, true)},
			0.3,
		},
		{
			"non-exploration events are ignored",
			[]domain.FeedbackEvent{ratedEvent(1.0, false)},
			0.3,
		},
		{
			"empty batch holds",
			nil,
			0.3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSelector(0.3)
			s.UpdateRate(tt.events)
			if got := s.Rate(); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("rate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUpdateRateClamps(t *testing.T) {
	s := NewSelector(0.3)
	positive := []domain.FeedbackEvent{ratedEvent(1.0, true)}
	for i := 0; i < 10; i++ {
		s.UpdateRate(positive)
	}
	if got := s.Rate(); math.Abs(got-MaxRate) > 1e-9 {
		t.Errorf("rate after repeated positives = %v, want %v", got, MaxRate)
	}

	negative := []domain.FeedbackEvent{ratedEvent(0.0, true)}
	for i := 0; i < 20; i++ {
		s.UpdateRate(negative)
	}
	if got := s.Rate(); math.Abs(got-MinRate) > 1e-9 {
		t.Errorf("rate after repeated negatives = %v, want %v", got, MinRate)
	}
}

func TestNewSelectorClampsInitialRate(t *testing.T) {
	if got := NewSelector(0.9).Rate(); got != MaxRate {
		t.Errorf("initial rate 0.9 -> %v, want %v", got, MaxRate)
	}
	if got := NewSelector(0.01).Rate(); got != MinRate {
		t.Errorf("initial rate 0.01 -> %v, want %v", got, MinRate)
	}
	if got := NewSelector(0).Rate(); got != DefaultRate {
		t.Errorf("unset rate -> %v, want default %v", got, DefaultRate)
	}
}
