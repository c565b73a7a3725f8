package database

import (
	"time"

	"gorm.io/gorm"
)

// WatchedVideo records that a video was played
type WatchedVideo struct {
	VideoID   string    `gorm:"column:video_id;primaryKey"`
	WatchedAt time.Time `gorm:"not null;index:idx_watched_videos_watched_at"`
}

// TableName overrides the table name
func (WatchedVideo) TableName() string {
	return "watched_videos"
}

// Setting represents a key-value store for application settings
type Setting struct {
	Key       string    `gorm:"primaryKey"`
	Value     string    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP"`
}

// TableName overrides the table name
func (Setting) TableName() string {
	return "settings"
}

// Migrate runs GORM auto-migrations for all models
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&WatchedVideo{},
		&Setting{},
	)
}
