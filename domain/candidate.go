package domain

import (
	"time"

	"gorm.io/datatypes"
)

// CandidateTrack is one row of a station's candidate pool: the upstream
// model score plus the full track document for the re-ranking stages.
type CandidateTrack struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Station   string         `gorm:"column:station;not null;index" json:"station"`
	TrackID   string         `gorm:"column:track_id;not null" json:"track_id"`
	BaseScore float64        `gorm:"column:base_score;not null" json:"base_score"`
	Payload   datatypes.JSON `gorm:"column:payload;type:jsonb" json:"payload"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (CandidateTrack) TableName() string {
	return "candidate_tracks"
}
