package evaluation

import (
	"sort"
	"sync"
	"time"

	"fairTune/business/debias"
	"fairTune/domain"
)

// Summary windows.
const (
	WindowAll   = "all"
	WindowWeek  = "week"
	WindowMonth = "month"
)

// qualityWeights blends individual metrics into one quality score. Only
// metrics actually present contribute; the weights renormalize over them.
var qualityWeights = []struct {
	name   string
	weight float64
}{
	{"artist_diversity", 0.25},
	{"genre_diversity", 0.20},
	{"avg_novelty", 0.20},
	{"time_relevance", 0.15},
	{"mood_relevance", 0.10},
	{"popularity_variance", 0.10},
}

// Evaluator scores served recommendation batches and accumulates the
// quality trend of one session. Safe for concurrent use.
type Evaluator struct {
	mu             sync.Mutex
	noveltyBoost   float64
	metricsHistory []domain.MetricsSnapshot
	feedback       []domain.FeedbackRecord
	diversity      DiversityTracker
	novelty        NoveltyTracker
	satisfaction   SatisfactionTracker
}

func NewEvaluator() *Evaluator {
	return &Evaluator{noveltyBoost: debias.DefaultNoveltyBoost}
}

// Evaluate computes quality metrics for one served batch and appends a
// snapshot. Novelty metrics need listener history and relevance metrics
// need a listening context; either may be absent. An empty batch yields
// an empty result and no snapshot.
func (e *Evaluator) Evaluate(recs []domain.ScoredTrack, history domain.HistorySet, ctx *domain.ListeningContext) map[string]float64 {
	metrics := map[string]float64{}
	if len(recs) == 0 {
		return metrics
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	now := time.Now()

	metrics["num_recommendations"] = float64(len(recs))

	pops := make([]float64, 0, len(recs))
	for _, st := range recs {
		pops = append(pops, float64(st.Track.Popularity))
	}
	metrics["avg_popularity"] = mean(pops)
	metrics["popularity_variance"] = variance(pops)

	for k, v := range e.diversity.Observe(recs, now) {
		metrics[k] = v
	}
	if history != nil {
		for k, v := range e.novelty.Observe(recs, history, e.noveltyBoost, now) {
			metrics[k] = v
		}
	}
	if ctx != nil {
		for k, v := range contextRelevance(recs, *ctx) {
			metrics[k] = v
		}
	}

	metrics["overall_quality_score"] = overallQuality(metrics)

	values := make(map[string]float64, len(metrics))
	for k, v := range metrics {
		values[k] = v
	}
	e.metricsHistory = append(e.metricsHistory, domain.MetricsSnapshot{
		Timestamp: now,
		Values:    values,
	})

	return metrics
}

// contextRelevance scores how well the batch fits the moment: energetic
// tracks in the morning, acoustic ones at night, valence matched to the
// declared mood. Unmatched contexts read as neutral.
func contextRelevance(recs []domain.ScoredTrack, ctx domain.ListeningContext) map[string]float64 {
	timeScores := make([]float64, 0, len(recs))
	moodScores := make([]float64, 0, len(recs))
	for _, st := range recs {
		features := st.Track.AudioFeatures

		switch ctx.TimeCategory {
		case domain.TimeMorning:
			timeScores = append(timeScores, features.Get("energy", 0.5))
		case domain.TimeNight:
			timeScores = append(timeScores, features.Get("acousticness", 0.5))
		default:
			timeScores = append(timeScores, 0.5)
		}

		valence := features.Get("valence", 0.5)
		switch ctx.Mood {
		case "happy":
			moodScores = append(moodScores, valence)
		case "melancholic":
			moodScores = append(moodScores, 1.0-valence)
		default:
			moodScores = append(moodScores, 0.5)
		}
	}

	return map[string]float64{
		"time_relevance": mean(timeScores),
		"mood_relevance": mean(moodScores),
	}
}

func overallQuality(metrics map[string]float64) float64 {
	score := 0.0
	weightSum := 0.0
	for _, w := range qualityWeights {
		v, ok := metrics[w.name]
		if !ok {
			continue
		}
		score += v * w.weight
		weightSum += w.weight
	}
	if weightSum == 0 {
		return 0
	}

	return score / weightSum
}

// RecordFeedback folds one feedback event into the satisfaction history.
func (e *Evaluator) RecordFeedback(rec domain.FeedbackRecord) {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.feedback = append(e.feedback, rec)
	e.satisfaction.Observe(rec)
}

// Summary aggregates everything recorded inside the window: avg/std per
// evaluated metric plus the tracker summaries. Unknown windows read as
// all-time.
func (e *Evaluator) Summary(window string) map[string]float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	cutoff := windowCutoff(window)
	summary := map[string]float64{}

	series := map[string][]float64{}
	for _, snap := range e.metricsHistory {
		if !snap.Timestamp.After(cutoff) {
			continue
		}
		for k, v := range snap.Values {
			series[k] = append(series[k], v)
		}
	}

	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		summary["avg_"+name] = mean(series[name])
		summary["std_"+name] = stddev(series[name])
		summary["trend_"+name] = trendSlope(series[name])
	}

	for k, v := range e.satisfaction.Summary(cutoff) {
		summary[k] = v
	}
	for k, v := range e.diversity.Summary(cutoff) {
		summary[k] = v
	}
	for k, v := range e.novelty.Summary(cutoff) {
		summary[k] = v
	}

	return summary
}

// windowCutoff maps a window name to its lower time bound. The zero time
// covers everything.
func windowCutoff(window string) time.Time {
	switch window {
	case WindowWeek:
		return time.Now().AddDate(0, 0, -7)
	case WindowMonth:
		return time.Now().AddDate(0, 0, -30)
	default:
		return time.Time{}
	}
}
