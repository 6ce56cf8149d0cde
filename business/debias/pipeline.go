package debias

import (
	"fmt"
	"time"

	"fairTune/domain"
	"fairTune/pkg/logger"
)

// Pipeline chains the debiasing stages: popularity, diversity, novelty,
// then score fusion.
type Pipeline struct {
	cfg        Config
	popularity *PopularityDebiaser
	diversity  *DiversityPromoter
	novelty    *NoveltyPromoter
}

func NewPipeline(cfg Config) *Pipeline {
	if cfg.ReferenceYear <= 0 {
		cfg.ReferenceYear = time.Now().Year()
	}
	if cfg.WPopularity <= 0 && cfg.WDiversity <= 0 && cfg.WNovelty <= 0 {
		cfg.WPopularity = DefaultWPopularity
		cfg.WDiversity = DefaultWDiversity
		cfg.WNovelty = DefaultWNovelty
	}

	return &Pipeline{
		cfg:        cfg,
		popularity: NewPopularityDebiaser(cfg.PopularityAlpha, cfg.PenaltyStrength),
		diversity:  NewDiversityPromoter(cfg.DiversityWeight, cfg.ReferenceYear),
		novelty:    NewNoveltyPromoter(cfg.NoveltyWeight, cfg.NoveltyBoost),
	}
}

func (p *Pipeline) Config() Config {
	return p.cfg
}

// Apply runs every stage in order and returns the candidates sorted by
// debiased score. A faulting stage contributes nothing; the next stage
// continues from its unmodified input.
func (p *Pipeline) Apply(tracks []domain.ScoredTrack, history domain.HistorySet) []domain.ScoredTrack {
	if len(tracks) == 0 {
		return []domain.ScoredTrack{}
	}

	tracks = runStage("popularity", tracks, p.popularity.Apply)
	tracks = runStage("diversity", tracks, p.diversity.Apply)
	tracks = runStage("novelty", tracks, func(in []domain.ScoredTrack) []domain.ScoredTrack {
		return p.novelty.Apply(in, history)
	})
	tracks = runStage("combine", tracks, func(in []domain.ScoredTrack) []domain.ScoredTrack {
		return Combine(in, p.cfg)
	})

	return tracks
}

// runStage shields the pipeline from a panicking stage: the fault is
// logged and counted, and the stage's input passes through unchanged.
func runStage(name string, in []domain.ScoredTrack, fn func([]domain.ScoredTrack) []domain.ScoredTrack) (out []domain.ScoredTrack) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("debias_stage_failed", "stage", name, "fault", fmt.Sprint(r))
			StageFaultsTotal.WithLabelValues(name).Inc()
			out = in
		}
	}()

	return fn(in)
}
