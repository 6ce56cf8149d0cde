package recommender

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"gorm.io/datatypes"

	"fairTune/business/debias"
	"fairTune/domain"
	"fairTune/pkg/logger"
)

// ---- Repository interfaces ----

type CandidateRepository interface {
	GetByStation(ctx context.Context, station string, limit int) ([]domain.CandidateTrack, error)
}

type FeedbackRepository interface {
	SaveEvent(ctx context.Context, event domain.FeedbackEvent) error
}

type HistoryRepository interface {
	GetHistorySet(ctx context.Context, listenerID uint) (domain.HistorySet, error)
}

type ProfileRepository interface {
	GetProfile(ctx context.Context, station string) (domain.RerankProfile, bool, error)
	UpsertProfile(ctx context.Context, profile domain.RerankProfile) error
}

// ArchiveStore persists per-session evaluation state.
type ArchiveStore interface {
	Save(name string, a domain.EvaluationArchive) error
	Load(name string) (domain.EvaluationArchive, bool, error)
}

// ---- Usecase / Service ----

type Service struct {
	candidateRepo CandidateRepository
	feedbackRepo  FeedbackRepository
	historyRepo   HistoryRepository
	profileRepo   ProfileRepository
	eligChecker   EligibilityChecker
	archive       ArchiveStore
	sessions      *sessionRegistry
	cfg           Config
}

func NewService(
	candidateRepo CandidateRepository,
	feedbackRepo FeedbackRepository,
	historyRepo HistoryRepository,
	profileRepo ProfileRepository,
	eligChecker EligibilityChecker,
	archive ArchiveStore,
	cfg Config,
) *Service {
	cfg = cfg.withFallbacks()

	return &Service{
		candidateRepo: candidateRepo,
		feedbackRepo:  feedbackRepo,
		historyRepo:   historyRepo,
		profileRepo:   profileRepo,
		eligChecker:   eligChecker,
		archive:       archive,
		sessions:      newSessionRegistry(cfg.SessionTTL, cfg.MaxSessions),
		cfg:           cfg,
	}
}

//  Recommendation / serving

// Recommend serves a re-ranked track list for a listener and station:
// debias stages, fairness allocation, then exploration mixing.
func (s *Service) Recommend(
	ctx context.Context,
	listenerID uint,
	station string,
	limit int,
	reqCtx map[string]any,
) (domain.Recommendation, error) {

	if err := ctx.Err(); err != nil {
		return domain.Recommendation{}, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 {
		limit = s.cfg.DefaultCount
	}

	// 1) station profile and session state
	prof := s.loadProfile(ctx, station)
	sess := s.sessions.get(listenerID, station, prof.Rate)

	rec := domain.Recommendation{
		SessionID:       sess.id,
		Station:         station,
		ExplorationRate: sess.selector.Rate(),
		Tracks:          []domain.ScoredTrack{},
	}

	// 2) candidates at 3x the requested count
	candidates, limit, err := s.loadCandidates(ctx, station, limit)
	if err != nil {
		return domain.Recommendation{}, err
	}
	if len(candidates) == 0 {
		return rec, nil
	}

	// 3) listening context for this moment
	now := time.Now()
	lc := DeriveContext(now)
	platform := ""
	if reqCtx != nil {
		if p, ok := reqCtx["platform"].(string); ok {
			platform = p
		}
		if m, ok := reqCtx["mood"].(string); ok {
			lc.Mood = m
		}
		if a, ok := reqCtx["activity"].(string); ok {
			lc.Activity = a
		}
	}
	lc.Platform = platform

	// 4) listener history; serving degrades to less personal rather
	// than failing
	history, err := s.historyRepo.GetHistorySet(ctx, listenerID)
	if err != nil {
		logger.Warn("listener_history_unavailable", "listener_id", listenerID, "error", err)
		history = domain.HistorySet{}
	}

	// 5) eligibility filter (content policy)
	candidates = s.filterEligible(ctx, listenerID, station, candidates)
	if len(candidates) == 0 {
		return rec, nil
	}

	// 6) debias pipeline
	ranked := debias.NewPipeline(prof.Debias).Apply(candidates, history)

	// 7) fairness allocation builds the exploitation pool; everything it
	// passed over becomes the exploration pool
	exploit := s.allocate(ranked, limit, prof)
	explorePool := subtract(ranked, exploit)

	// 8) exploration mixing
	final := sess.selector.Select(exploit, explorePool, limit)
	rec.ExplorationRate = sess.selector.Rate()
	rec.Tracks = final

	tid := TraceIDFromContext(ctx)
	logger.Debug("recommend_served",
		"trace_id", tid,
		"listener_id", listenerID,
		"station", station,
		"session_id", sess.id,
		"limit", limit,
		"candidate_count", len(candidates),
		"served", len(final),
		"exploration_rate", rec.ExplorationRate,
	)

	// 9) score the batch for the session's quality trend
	sess.evaluator.Evaluate(final, history, &lc)

	ExplorationRateGauge.WithLabelValues(station).Set(rec.ExplorationRate)

	return rec, nil
}

// allocate applies the fairness stage: category quotas when the station
// profile defines them, per-artist caps otherwise.
func (s *Service) allocate(ranked []domain.ScoredTrack, limit int, prof Profile) []domain.ScoredTrack {
	if len(prof.Quotas) > 0 {
		return debias.AllocateByCategory(ranked, limit, prof.Quotas)
	}
	return debias.AllocateByArtist(ranked, limit)
}

// subtract returns the tracks of ranked not present in taken, keeping
// ranked's order.
func subtract(ranked, taken []domain.ScoredTrack) []domain.ScoredTrack {
	takenIDs := make(map[string]struct{}, len(taken))
	for _, st := range taken {
		takenIDs[st.Track.ID] = struct{}{}
	}

	rest := make([]domain.ScoredTrack, 0, len(ranked)-len(taken))
	for _, st := range ranked {
		if _, ok := takenIDs[st.Track.ID]; ok {
			continue
		}
		rest = append(rest, st)
	}

	return rest
}

func (s *Service) filterEligible(
	ctx context.Context,
	listenerID uint,
	station string,
	tracks []domain.ScoredTrack,
) []domain.ScoredTrack {
	if s.eligChecker == nil {
		return tracks
	}

	out := make([]domain.ScoredTrack, 0, len(tracks))
	for _, st := range tracks {
		ok, err := s.eligChecker.IsEligible(ctx, listenerID, st.Track, station)
		if err != nil || !ok {
			continue
		}
		out = append(out, st)
	}

	return out
}

//  Feedback / learning

func (s *Service) LogFeedback(
	ctx context.Context,
	event domain.FeedbackEvent,
) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	if event.FeedbackType == "" {
		return fmt.Errorf("feedback_type is required")
	}

	// 1) resolve the effective rating from the station profile
	prof := s.loadProfile(ctx, event.Station)

	rating, err := prof.RatingForEvent(event)
	if err != nil {
		return err
	}
	event.Rating = rating

	// 2) enrich the event context with the situational skeleton
	now := time.Now()
	lc := DeriveContext(now)

	eventCtxMap := map[string]any{}
	if event.Context != nil {
		for k, v := range event.Context {
			eventCtxMap[k] = v
		}
	}

	platform := ""
	if p, ok := eventCtxMap["platform"].(string); ok {
		platform = p
	}

	mergedCtx := mergeContext(buildBaseContext(now, lc, platform), eventCtxMap)

	// write back into event.Context as JSONMap for DB persistence
	event.Context = datatypes.JSONMap(mergedCtx)

	tid := TraceIDFromContext(ctx)
	logger.Debug("feedback_received",
		"trace_id", tid,
		"listener_id", event.ListenerID,
		"station", event.Station,
		"track_id", event.TrackID,
		"feedback_type", event.FeedbackType,
		"rating", rating,
		"exploration", event.IsExploration,
	)

	// 3) fold into the live session: adaptive exploration + satisfaction
	sess := s.sessions.get(event.ListenerID, event.Station, prof.Rate)
	sess.selector.UpdateRate([]domain.FeedbackEvent{event})
	sess.evaluator.RecordFeedback(domain.FeedbackRecord{
		Timestamp:    now,
		TrackID:      event.TrackID,
		FeedbackType: event.FeedbackType,
		Rating:       rating,
		Exploration:  event.IsExploration,
		Context:      mergedCtx,
	})

	// 4) persist the raw event
	if err := s.feedbackRepo.SaveEvent(ctx, event); err != nil {
		return fmt.Errorf("failed to save feedback event: %w", err)
	}

	FeedbackEventsTotal.
		WithLabelValues(event.Station, event.FeedbackType, strconv.FormatBool(event.IsExploration)).
		Inc()

	return nil
}

//  Session introspection

// ExplorationRate reports the live rate of the listener's session on a
// station, creating the session at the profile default if none exists.
func (s *Service) ExplorationRate(ctx context.Context, listenerID uint, station string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	prof := s.loadProfile(ctx, station)
	sess := s.sessions.get(listenerID, station, prof.Rate)

	return sess.selector.Rate(), nil
}

// EvaluationSummary aggregates the session's quality history for a
// window ("all", "week", or "month").
func (s *Service) EvaluationSummary(ctx context.Context, listenerID uint, station, window string) (map[string]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	prof := s.loadProfile(ctx, station)
	sess := s.sessions.get(listenerID, station, prof.Rate)

	return sess.evaluator.Summary(window), nil
}

func archiveName(listenerID uint, station string) string {
	return fmt.Sprintf("evaluation_%d_%s", listenerID, station)
}

// SaveEvaluation persists the session's evaluation state to the archive
// store.
func (s *Service) SaveEvaluation(ctx context.Context, listenerID uint, station string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	if s.archive == nil {
		return fmt.Errorf("evaluation archive not configured")
	}

	prof := s.loadProfile(ctx, station)
	sess := s.sessions.get(listenerID, station, prof.Rate)

	if err := s.archive.Save(archiveName(listenerID, station), sess.evaluator.Archive()); err != nil {
		return fmt.Errorf("failed to save evaluation data: %w", err)
	}

	logger.Info("evaluation_saved", "listener_id", listenerID, "station", station)

	return nil
}

// LoadEvaluation restores the session's evaluation state from the
// archive store.
func (s *Service) LoadEvaluation(ctx context.Context, listenerID uint, station string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	if s.archive == nil {
		return fmt.Errorf("evaluation archive not configured")
	}

	a, ok, err := s.archive.Load(archiveName(listenerID, station))
	if err != nil {
		return fmt.Errorf("failed to load evaluation data: %w", err)
	}
	if !ok {
		return fmt.Errorf("evaluation archive not found")
	}

	prof := s.loadProfile(ctx, station)
	sess := s.sessions.get(listenerID, station, prof.Rate)
	sess.evaluator.Restore(a)

	logger.Info("evaluation_loaded", "listener_id", listenerID, "station", station)

	return nil
}
