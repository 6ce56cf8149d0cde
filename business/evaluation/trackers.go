package evaluation

import (
	"time"

	"fairTune/business/debias"
	"fairTune/domain"
)

// DiversityTracker keeps a time series of set-level diversity ratios.
type DiversityTracker struct {
	history []domain.DiversityRecord
}

// Observe computes the diversity ratios for one served batch, appends a
// record, and returns the values for the metrics snapshot.
func (t *DiversityTracker) Observe(recs []domain.ScoredTrack, now time.Time) map[string]float64 {
	artists := make(map[string]struct{}, len(recs))
	genres := make(map[string]struct{}, len(recs))
	for _, st := range recs {
		for _, a := range st.Track.Artists {
			artists[a.Key()] = struct{}{}
		}
		for _, g := range st.Track.Genres {
			genres[g] = struct{}{}
		}
	}

	n := float64(len(recs))
	artistDiversity := 0.0
	genreDiversity := 0.0
	if n > 0 {
		artistDiversity = float64(len(artists)) / n
		genreDiversity = float64(len(genres)) / n
	}

	t.history = append(t.history, domain.DiversityRecord{
		Timestamp:        now,
		OverallDiversity: artistDiversity,
		ArtistDiversity:  artistDiversity,
		GenreDiversity:   genreDiversity,
	})

	return map[string]float64{
		"artist_diversity":  artistDiversity,
		"genre_diversity":   genreDiversity,
		"overall_diversity": artistDiversity,
	}
}

// Summary aggregates records after the cutoff: average plus trend slope
// per tracked ratio.
func (t *DiversityTracker) Summary(cutoff time.Time) map[string]float64 {
	overall := make([]float64, 0, len(t.history))
	artist := make([]float64, 0, len(t.history))
	genre := make([]float64, 0, len(t.history))
	for _, r := range t.history {
		if !r.Timestamp.After(cutoff) {
			continue
		}
		overall = append(overall, r.OverallDiversity)
		artist = append(artist, r.ArtistDiversity)
		genre = append(genre, r.GenreDiversity)
	}
	if len(overall) == 0 {
		return map[string]float64{}
	}

	return map[string]float64{
		"avg_overall_diversity":   mean(overall),
		"trend_overall_diversity": trendSlope(overall),
		"avg_artist_diversity":    mean(artist),
		"trend_artist_diversity":  trendSlope(artist),
		"avg_genre_diversity":     mean(genre),
		"trend_genre_diversity":   trendSlope(genre),
	}
}

// NoveltyTracker keeps a time series of batch novelty statistics.
type NoveltyTracker struct {
	history []domain.NoveltyRecord
}

func (t *NoveltyTracker) Observe(recs []domain.ScoredTrack, history domain.HistorySet, boost float64, now time.Time) map[string]float64 {
	novelties := make([]float64, 0, len(recs))
	artistNovelties := make([]float64, 0, len(recs))
	for _, st := range recs {
		novelties = append(novelties, debias.NoveltyScore(st.Track, history, boost))

		artistNovelty := 1.0
		if history.Contains(st.Track.PrimaryArtistID()) {
			artistNovelty = 0.3
		}
		artistNovelties = append(artistNovelties, artistNovelty)
	}

	record := domain.NoveltyRecord{
		Timestamp:        now,
		AvgNovelty:       mean(novelties),
		AvgArtistNovelty: mean(artistNovelties),
		NoveltyVariance:  variance(novelties),
	}
	t.history = append(t.history, record)

	return map[string]float64{
		"avg_novelty":        record.AvgNovelty,
		"avg_artist_novelty": record.AvgArtistNovelty,
		"novelty_variance":   record.NoveltyVariance,
	}
}

func (t *NoveltyTracker) Summary(cutoff time.Time) map[string]float64 {
	avg := make([]float64, 0, len(t.history))
	artist := make([]float64, 0, len(t.history))
	varSeries := make([]float64, 0, len(t.history))
	for _, r := range t.history {
		if !r.Timestamp.After(cutoff) {
			continue
		}
		avg = append(avg, r.AvgNovelty)
		artist = append(artist, r.AvgArtistNovelty)
		varSeries = append(varSeries, r.NoveltyVariance)
	}
	if len(avg) == 0 {
		return map[string]float64{}
	}

	return map[string]float64{
		"avg_avg_novelty":          mean(avg),
		"trend_avg_novelty":        trendSlope(avg),
		"avg_avg_artist_novelty":   mean(artist),
		"trend_avg_artist_novelty": trendSlope(artist),
		"avg_novelty_variance":     mean(varSeries),
		"trend_novelty_variance":   trendSlope(varSeries),
	}
}

// SatisfactionTracker keeps every rated feedback event.
type SatisfactionTracker struct {
	history []domain.SatisfactionRecord
}

func (t *SatisfactionTracker) Observe(rec domain.FeedbackRecord) {
	feedbackType := rec.FeedbackType
	if feedbackType == "" {
		feedbackType = "general"
	}

	t.history = append(t.history, domain.SatisfactionRecord{
		Timestamp:    rec.Timestamp,
		Rating:       rec.Rating,
		FeedbackType: feedbackType,
		TrackID:      rec.TrackID,
		Context:      rec.Context,
	})
}

// Summary aggregates satisfaction after the cutoff: overall stats,
// positive/negative shares, and a per-feedback-type average.
func (t *SatisfactionTracker) Summary(cutoff time.Time) map[string]float64 {
	ratings := make([]float64, 0, len(t.history))
	byType := map[string][]float64{}
	positive := 0
	negative := 0
	for _, r := range t.history {
		if !r.Timestamp.After(cutoff) {
			continue
		}
		ratings = append(ratings, r.Rating)
		byType[r.FeedbackType] = append(byType[r.FeedbackType], r.Rating)
		if r.Rating > positiveThreshold {
			positive++
		}
		if r.Rating < negativeThreshold {
			negative++
		}
	}
	if len(ratings) == 0 {
		return map[string]float64{}
	}

	total := float64(len(ratings))
	summary := map[string]float64{
		"avg_satisfaction":       mean(ratings),
		"satisfaction_variance":  variance(ratings),
		"total_feedback":         total,
		"positive_feedback_rate": float64(positive) / total,
		"negative_feedback_rate": float64(negative) / total,
	}
	for feedbackType, values := range byType {
		summary["avg_satisfaction_"+feedbackType] = mean(values)
	}

	return summary
}

const (
	positiveThreshold = 0.7
	negativeThreshold = 0.3
)
