package debias

import (
	"github.com/prometheus/client_golang/prometheus"

	"fairTune/domain"
)

var (
	StageFaultsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "debias_stage_faults_total",
			Help: "Count of debias pipeline stages that panicked and were skipped.",
		},
		[]string{"stage"},
	)
)

func init() {
	prometheus.MustRegister(StageFaultsTotal)
}

// Metrics summarizes how debiased a candidate set looks: spread of
// artists, popularity profile, and average novelty.
func Metrics(tracks []domain.ScoredTrack) map[string]float64 {
	m := map[string]float64{
		"artist_diversity":    0,
		"avg_popularity":      0,
		"popularity_variance": 0,
		"avg_novelty":         0,
		"overall_diversity":   0,
	}
	if len(tracks) == 0 {
		return m
	}

	primaryArtists := make(map[string]struct{}, len(tracks))
	allArtists := make(map[string]struct{}, len(tracks))
	pops := make([]float64, 0, len(tracks))
	novelties := make([]float64, 0, len(tracks))

	for _, st := range tracks {
		primaryArtists[st.Track.PrimaryArtistID()] = struct{}{}
		for _, a := range st.Track.Artists {
			allArtists[a.Key()] = struct{}{}
		}
		pops = append(pops, float64(st.Track.Popularity))
		novelties = append(novelties, st.ScoreOr(domain.ScoreNovelty, 0))
	}

	n := float64(len(tracks))
	m["artist_diversity"] = float64(len(primaryArtists)) / n
	m["avg_popularity"] = mean(pops)
	m["popularity_variance"] = variance(pops)
	m["avg_novelty"] = mean(novelties)
	m["overall_diversity"] = float64(len(allArtists)) / n

	return m
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

// variance is the population variance.
func variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	m := mean(values)
	sum := 0.0
	for _, v := range values {
		d := v - m
		sum += d * d
	}

	return sum / float64(len(values))
}
