package explore

import (
	"math/rand"
	"sort"
	"sync"

	"fairTune/domain"
)

// Exploration rate bounds. The adaptive update never leaves this band.
const (
	MinRate     = 0.1
	MaxRate     = 0.5
	DefaultRate = 0.3

	rateStep          = 0.05
	positiveThreshold = 0.7
	negativeThreshold = 0.3
)

// Selector mixes exploitation picks with exploration picks and adapts
// its exploration rate from feedback. Safe for concurrent use.
type Selector struct {
	mu   sync.Mutex
	rate float64
}

func NewSelector(rate float64) *Selector {
	if rate <= 0 {
		rate = DefaultRate
	}

	return &Selector{rate: clampRate(rate)}
}

func clampRate(r float64) float64 {
	if r < MinRate {
		return MinRate
	}
	if r > MaxRate {
		return MaxRate
	}

	return r
}

func (s *Selector) Rate() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.rate
}

// Select fills n slots: floor(n*rate) exploration picks from the explore
// pool, the rest exploitation picks from the exploit pool. Exploration
// picks are flagged, and the merged list is shuffled so they are not
// telegraphed by position. Short pools just yield a shorter list.
func (s *Selector) Select(exploit, explore []domain.ScoredTrack, n int) []domain.ScoredTrack {
	if n <= 0 {
		return []domain.ScoredTrack{}
	}

	nExplore := int(float64(n) * s.Rate())
	nExploit := n - nExplore

	picks := topBy(exploit, nExploit, func(st domain.ScoredTrack) float64 {
		return st.DebiasedScore
	})

	explorePicks := topBy(explore, nExplore, exploreKey)
	for i := range explorePicks {
		explorePicks[i].Exploration = true
	}

	merged := make([]domain.ScoredTrack, 0, len(picks)+len(explorePicks))
	merged = append(merged, picks...)
	merged = append(merged, explorePicks...)

	rand.Shuffle(len(merged), func(i, j int) {
		merged[i], merged[j] = merged[j], merged[i]
	})

	return merged
}

// exploreKey ranks the exploration pool: mostly novelty, with a nudge
// toward the popularity long tail. Tracks without a novelty score read
// as neutral.
func exploreKey(st domain.ScoredTrack) float64 {
	novelty := st.ScoreOr(domain.ScoreNovelty, 0.5)
	return 0.7*novelty + 0.3*(1.0-float64(st.Track.Popularity)/100.0)
}

func topBy(tracks []domain.ScoredTrack, n int, key func(domain.ScoredTrack) float64) []domain.ScoredTrack {
	if n <= 0 || len(tracks) == 0 {
		return []domain.ScoredTrack{}
	}

	sorted := append([]domain.ScoredTrack(nil), tracks...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return key(sorted[i]) > key(sorted[j])
	})

	if n > len(sorted) {
		n = len(sorted)
	}

	return sorted[:n]
}

// UpdateRate adapts the exploration rate from a batch of feedback. Only
// rated exploration events count: a mean rating above the positive
// threshold widens exploration one step, below the negative threshold
// narrows it. An empty batch changes nothing.
func (s *Selector) UpdateRate(events []domain.FeedbackEvent) {
	sum := 0.0
	count := 0
	for _, ev := range events {
		if !ev.IsExploration {
			continue
		}
		sum += ev.Rating
		count++
	}
	if count == 0 {
		return
	}

	mean := sum / float64(count)

	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case mean > positiveThreshold:
		s.rate = clampRate(s.rate + rateStep)
	case mean < negativeThreshold:
		s.rate = clampRate(s.rate - rateStep)
	}
}
