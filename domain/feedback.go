package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Feedback types a listener can send. Each maps to an implied rating when
// the client does not rate explicitly.
const (
	FeedbackPlay    = "play"
	FeedbackLike    = "like"
	FeedbackSave    = "save"
	FeedbackSkip    = "skip"
	FeedbackDislike = "dislike"
)

type FeedbackEvent struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	ListenerID   uint   `gorm:"column:listener_id;not null;index" json:"listener_id"`
	Station      string `gorm:"column:station;not null" json:"station"`
	TrackID      string `gorm:"column:track_id;not null" json:"track_id"`
	FeedbackType string `gorm:"column:feedback_type;not null" json:"feedback_type"`
	SessionID    string `gorm:"column:session_id" json:"session_id"`

	// Rating is on a 0-1 scale. A negative value means the client sent
	// none and the station profile's implied rating applies.
	Rating        float64 `gorm:"column:rating;not null" json:"rating"`
	IsExploration bool    `gorm:"column:is_exploration;not null" json:"is_exploration"`

	Context   datatypes.JSONMap `gorm:"column:context;type:jsonb" json:"context"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (FeedbackEvent) TableName() string {
	return "feedback_events"
}
