package debias

// Stage defaults. Stations may override any of these through their
// rerank profile.
const (
	DefaultPopularityAlpha = 0.7
	DefaultPenaltyStrength = 0.3
	DefaultDiversityWeight = 0.4
	DefaultNoveltyWeight   = 0.3
	DefaultNoveltyBoost    = 1.5

	DefaultWPopularity = 0.3
	DefaultWDiversity  = 0.3
	DefaultWNovelty    = 0.4
)

// Config carries the knobs for one pipeline run.
type Config struct {
	PopularityAlpha float64
	PenaltyStrength float64
	DiversityWeight float64
	NoveltyWeight   float64
	NoveltyBoost    float64

	// weights fusing the per-stage adjusted scores
	WPopularity float64
	WDiversity  float64
	WNovelty    float64

	// ReferenceYear anchors the track-age boost. Zero means the current
	// year, resolved when the pipeline is built.
	ReferenceYear int
}

func DefaultConfig() Config {
	return Config{
		PopularityAlpha: DefaultPopularityAlpha,
		PenaltyStrength: DefaultPenaltyStrength,
		DiversityWeight: DefaultDiversityWeight,
		NoveltyWeight:   DefaultNoveltyWeight,
		NoveltyBoost:    DefaultNoveltyBoost,
		WPopularity:     DefaultWPopularity,
		WDiversity:      DefaultWDiversity,
		WNovelty:        DefaultWNovelty,
	}
}
