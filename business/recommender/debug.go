package recommender

import (
	"context"
	"fmt"

	"fairTune/business/debias"
	"fairTune/domain"
	"fairTune/pkg/logger"
)

// DebugRecommend runs the full debias and fairness stages and returns
// every ranked candidate with its score breakdown. No exploration noise
// and no session state: pure inspection of what the stages did.
func (s *Service) DebugRecommend(
	ctx context.Context,
	listenerID uint,
	station string,
	limit int,
	reqCtx map[string]any,
) ([]domain.DebugTrack, error) {

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 {
		limit = s.cfg.DefaultCount
	}

	candidates, limit, err := s.loadCandidates(ctx, station, limit)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return []domain.DebugTrack{}, nil
	}

	prof := s.loadProfile(ctx, station)

	history, err := s.historyRepo.GetHistorySet(ctx, listenerID)
	if err != nil {
		logger.Warn("listener_history_unavailable", "listener_id", listenerID, "error", err)
		history = domain.HistorySet{}
	}

	candidates = s.filterEligible(ctx, listenerID, station, candidates)

	ranked := debias.NewPipeline(prof.Debias).Apply(candidates, history)

	allocated := make(map[string]struct{}, limit)
	for _, st := range s.allocate(ranked, limit, prof) {
		allocated[st.Track.ID] = struct{}{}
	}

	out := make([]domain.DebugTrack, 0, len(ranked))
	for _, st := range ranked {
		_, picked := allocated[st.Track.ID]
		out = append(out, domain.DebugTrack{
			TrackID:       st.Track.ID,
			Title:         st.Track.Title,
			Artist:        st.Track.PrimaryArtistName(),
			Duration:      st.Track.FormatDuration(),
			BaseScore:     st.Track.BaseScore,
			DebiasedScore: st.DebiasedScore,
			Scores:        st.Scores,
			Allocated:     picked,
		})
	}

	return out, nil
}
