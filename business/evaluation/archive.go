package evaluation

import "fairTune/domain"

// Archive snapshots the evaluator's full state for persistence.
func (e *Evaluator) Archive() domain.EvaluationArchive {
	e.mu.Lock()
	defer e.mu.Unlock()

	return domain.EvaluationArchive{
		MetricsHistory:   append([]domain.MetricsSnapshot(nil), e.metricsHistory...),
		UserFeedback:     append([]domain.FeedbackRecord(nil), e.feedback...),
		DiversityData:    append([]domain.DiversityRecord(nil), e.diversity.history...),
		NoveltyData:      append([]domain.NoveltyRecord(nil), e.novelty.history...),
		SatisfactionData: append([]domain.SatisfactionRecord(nil), e.satisfaction.history...),
	}
}

// Restore replaces the evaluator's state with a stored archive. The
// satisfaction aggregates are not persisted separately; Summary derives
// them from the restored history.
func (e *Evaluator) Restore(a domain.EvaluationArchive) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.metricsHistory = append([]domain.MetricsSnapshot(nil), a.MetricsHistory...)
	e.feedback = append([]domain.FeedbackRecord(nil), a.UserFeedback...)
	e.diversity.history = append([]domain.DiversityRecord(nil), a.DiversityData...)
	e.novelty.history = append([]domain.NoveltyRecord(nil), a.NoveltyData...)
	e.satisfaction.history = append([]domain.SatisfactionRecord(nil), a.SatisfactionData...)
}
