package recommender

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	FeedbackEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedback_events_total",
			Help: "Count of listener feedback events by station, feedback_type, and exploration flag.",
		},
		[]string{"station", "feedback_type", "exploration"},
	)

	ExplorationRateGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "exploration_rate",
			Help: "Current exploration rate of the most recently served session per station.",
		},
		[]string{"station"},
	)
)

func init() {
	prometheus.MustRegister(
		FeedbackEventsTotal,
		ExplorationRateGauge,
	)
}
