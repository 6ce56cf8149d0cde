package recommender

import (
	"context"
	"fmt"

	"fairTune/domain"
	"fairTune/pkg/logger"
)

// loadCandidates pulls station candidates at 3x the requested count so
// the debias stages have room to reshuffle, and decodes their payloads.
func (s *Service) loadCandidates(
	ctx context.Context,
	station string,
	limit int,
) ([]domain.ScoredTrack, int, error) {

	if err := ctx.Err(); err != nil {
		return nil, 0, fmt.Errorf("context error: %w", err)
	}

	candidateLimit := limit * 3
	if candidateLimit < limit {
		candidateLimit = limit
	}

	rows, err := s.candidateRepo.GetByStation(ctx, station, candidateLimit)
	if err != nil {
		return nil, 0, fmt.Errorf("load station candidates: %w", err)
	}
	if len(rows) == 0 {
		return []domain.ScoredTrack{}, 0, nil
	}
	if len(rows) < limit {
		limit = len(rows)
	}

	tracks := make([]domain.ScoredTrack, 0, len(rows))
	for _, row := range rows {
		track, err := domain.DecodeTrackPayload(row.Payload)
		if err != nil {
			// a broken payload still serves: id and score from the row,
			// everything else defaulted
			logger.Warn("candidate_payload_invalid",
				"station", station, "track_id", row.TrackID, "error", err)
			track = domain.Track{
				ID:         row.TrackID,
				Title:      row.TrackID,
				Popularity: domain.DefaultPopularity,
			}
		}
		if track.ID == "" {
			track.ID = row.TrackID
		}
		track.BaseScore = row.BaseScore

		tracks = append(tracks, domain.NewScoredTrack(track))
	}

	return tracks, limit, nil
}
