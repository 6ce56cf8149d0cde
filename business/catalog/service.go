package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"fairTune/domain"
	"fairTune/pkg/logger"
)

// DefaultBaseScore is assumed for uploaded candidates that carry no
// base score of their own.
const DefaultBaseScore = 0.5

type CandidateRepository interface {
	GetByStation(ctx context.Context, station string, limit int) ([]domain.CandidateTrack, error)
	ReplaceStation(ctx context.Context, station string, rows []domain.CandidateTrack) error
}

type Service struct {
	repo CandidateRepository
}

func NewService(repo CandidateRepository) *Service {
	return &Service{repo: repo}
}

// Entry is one catalog candidate: the track plus the base score the
// re-ranking pipeline starts from.
type Entry struct {
	Track     domain.Track `json:"track"`
	BaseScore float64      `json:"base_score"`
}

// GetCandidates lists a station's stored candidates with payloads decoded.
// Rows whose payload no longer parses are skipped, not fatal.
func (s *Service) GetCandidates(ctx context.Context, station string, limit int) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if station == "" {
		return nil, fmt.Errorf("station is required")
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.repo.GetByStation(ctx, station, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidates: %w", err)
	}

	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		track, err := domain.DecodeTrackPayload(row.Payload)
		if err != nil {
			logger.Warn("candidate_payload_invalid",
				"station", station,
				"track_id", row.TrackID,
				"error", err.Error(),
			)
			continue
		}
		if track.ID == "" {
			track.ID = row.TrackID
		}
		entries = append(entries, Entry{Track: track, BaseScore: row.BaseScore})
	}

	return entries, nil
}

// ReplaceStation swaps a station's candidate set for the given entries.
// Popularity is clamped to the 0-100 scale and audio features are
// rescaled into 0-1 before the payload is stored. Returns the number of
// rows written.
func (s *Service) ReplaceStation(ctx context.Context, station string, entries []Entry) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}
	if station == "" {
		return 0, fmt.Errorf("station is required")
	}
	if len(entries) == 0 {
		return 0, fmt.Errorf("no candidate tracks provided")
	}

	rows := make([]domain.CandidateTrack, 0, len(entries))
	for i, entry := range entries {
		track := entry.Track
		if track.ID == "" {
			return 0, fmt.Errorf("candidate %d: track id is required", i)
		}

		if track.Popularity < 0 {
			track.Popularity = 0
		}
		if track.Popularity > 100 {
			track.Popularity = 100
		}
		track.AudioFeatures = domain.NormalizeAudioFeatures(track.AudioFeatures)

		baseScore := entry.BaseScore
		if baseScore <= 0 {
			baseScore = DefaultBaseScore
		}
		track.BaseScore = baseScore

		payload, err := json.Marshal(track)
		if err != nil {
			return 0, fmt.Errorf("candidate %d: failed to encode payload: %w", i, err)
		}

		rows = append(rows, domain.CandidateTrack{
			Station:   station,
			TrackID:   track.ID,
			BaseScore: baseScore,
			Payload:   payload,
		})
	}

	if err := s.repo.ReplaceStation(ctx, station, rows); err != nil {
		return 0, fmt.Errorf("failed to replace station candidates: %w", err)
	}

	logger.Info("catalog_station_replaced", "station", station, "count", len(rows))

	return len(rows), nil
}
