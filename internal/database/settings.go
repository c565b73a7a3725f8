package database

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Setting keys
const (
	SettingSortMode = "sort_mode"
)

// GetSetting returns the stored value for key.
// A missing key returns an empty string, not an error.
func GetSetting(db *gorm.DB, key string) (string, error) {
	var setting Setting
	err := db.Where("key = ?", key).First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return setting.Value, nil
}

// SaveSetting stores or updates the value for key
func SaveSetting(db *gorm.DB, key, value string) error {
	setting := Setting{Key: key, Value: value, UpdatedAt: time.Now()}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
}

// SettingsStore binds the setting helpers to one database
type SettingsStore struct {
	db *gorm.DB
}

// NewSettingsStore creates a store over db
func NewSettingsStore(db *gorm.DB) *SettingsStore {
	return &SettingsStore{db: db}
}

// Get returns the stored value for key
func (s *SettingsStore) Get(key string) (string, error) {
	return GetSetting(s.db, key)
}

// Set stores value for key
func (s *SettingsStore) Set(key, value string) error {
	return SaveSetting(s.db, key, value)
}
