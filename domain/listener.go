package domain

import (
	"time"

	"gorm.io/gorm"
)

type Listener struct {
	ID          uint   `gorm:"primaryKey"`
	DisplayName string `gorm:"column:display_name;not null"`
	Email       string `gorm:"column:email;unique;not null"`
	Password    string `gorm:"column:password;not null"`
	Role        string `gorm:"column:role;default:listener"`
	CleanOnly   bool   `gorm:"column:clean_only;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Listener) TableName() string {
	return "listeners"
}

// ListenEntry is one listened item in a listener's history. ItemID holds
// either a track id or an artist identifier, matching how the novelty
// stage checks membership.
type ListenEntry struct {
	ID         uint      `gorm:"primaryKey"`
	ListenerID uint      `gorm:"column:listener_id;not null;uniqueIndex:idx_listener_item"`
	ItemID     string    `gorm:"column:item_id;not null;uniqueIndex:idx_listener_item"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (ListenEntry) TableName() string {
	return "listen_entries"
}
