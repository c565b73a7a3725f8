package history

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/justchokingaround/yt-tui/internal/database"
	"github.com/justchokingaround/yt-tui/internal/media"
)

// Service tracks watched videos in memory and persists them to the database
type Service struct {
	db     *gorm.DB
	logger *slog.Logger
	now    func() time.Time

	mu      sync.RWMutex
	watched map[string]time.Time
}

// SortOrder defines the sorting order for history entries
type SortOrder string

const (
	SortRecentFirst SortOrder = "recent_first"
	SortOldestFirst SortOrder = "oldest_first"
)

// FilterOptions defines filtering options for history queries
type FilterOptions struct {
	Since  time.Time // Only entries watched at or after Since
	Limit  int       // Limit results (0 = no limit)
	Offset int       // Offset for pagination
	SortBy SortOrder // Sorting order
}

// Entry is one watched video
type Entry struct {
	VideoID   string
	WatchedAt time.Time
}

// Stats represents watch history statistics
type Stats struct {
	TotalItems    int64
	FirstWatched  time.Time
	LastWatched   time.Time
	WatchedToday  int64
	WatchedRecent int64 // last 7 days
}

// NewService creates a history service and loads the watched set from db
func NewService(db *gorm.DB, logger *slog.Logger) (*Service, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Service{
		db:      db,
		logger:  logger,
		now:     time.Now,
		watched: make(map[string]time.Time),
	}

	var rows []database.WatchedVideo
	if err := db.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load watch history: %w", err)
	}
	for _, row := range rows {
		s.watched[row.VideoID] = row.WatchedAt
	}

	logger.Debug("loaded watch history", "count", len(rows))
	return s, nil
}

// IsWatched reports whether id has been watched
func (s *Service) IsWatched(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.watched[id]
	return ok
}

// MarkWatched records id as watched now.
// The in-memory set is updated even when persisting fails.
func (s *Service) MarkWatched(id string) error {
	at := s.now().UTC()

	s.mu.Lock()
	s.watched[id] = at
	s.mu.Unlock()

	row := database.WatchedVideo{VideoID: id, WatchedAt: at}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "video_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"watched_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to save watched video %s: %w", id, err)
	}
	return nil
}

// WatchedAt returns when id was watched
func (s *Service) WatchedAt(id string) (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	at, ok := s.watched[id]
	return at, ok
}

// WatchedIDs returns watched ids newest first, at most limit when limit > 0
func (s *Service) WatchedIDs(limit int) []string {
	s.mu.RLock()
	entries := make([]Entry, 0, len(s.watched))
	for id, at := range s.watched {
		entries = append(entries, Entry{VideoID: id, WatchedAt: at})
	}
	s.mu.RUnlock()

	sortEntries(entries)

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.VideoID
	}
	return ids
}

// OrderByWatched returns items ordered by watch time, newest first.
// Items without a watch time sort last.
func (s *Service) OrderByWatched(items []media.Item) []media.Item {
	out := append([]media.Item(nil), items...)

	s.mu.RLock()
	defer s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return s.watched[out[i].ID].After(s.watched[out[j].ID])
	})
	return out
}

// GetHistory retrieves persisted entries with filtering and sorting
func (s *Service) GetHistory(filter FilterOptions) ([]Entry, error) {
	query := s.db.Model(&database.WatchedVideo{})

	if !filter.Since.IsZero() {
		query = query.Where("watched_at >= ?", filter.Since)
	}

	switch filter.SortBy {
	case SortOldestFirst:
		query = query.Order("watched_at ASC").Order("video_id ASC")
	default: // SortRecentFirst
		query = query.Order("watched_at DESC").Order("video_id ASC")
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var rows []database.WatchedVideo
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch history: %w", err)
	}

	entries := make([]Entry, len(rows))
	for i, row := range rows {
		entries[i] = Entry{VideoID: row.VideoID, WatchedAt: row.WatchedAt}
	}
	return entries, nil
}

// Remove forgets a single watched video
func (s *Service) Remove(id string) error {
	s.mu.Lock()
	delete(s.watched, id)
	s.mu.Unlock()

	if err := s.db.Where("video_id = ?", id).Delete(&database.WatchedVideo{}).Error; err != nil {
		return fmt.Errorf("failed to remove watched video %s: %w", id, err)
	}
	return nil
}

// Clear removes every watched video
func (s *Service) Clear() error {
	s.mu.Lock()
	s.watched = make(map[string]time.Time)
	s.mu.Unlock()

	if err := s.db.Where("1 = 1").Delete(&database.WatchedVideo{}).Error; err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

// Count returns the number of watched videos
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.watched)
}

// GetStats retrieves watch history statistics
func (s *Service) GetStats() (*Stats, error) {
	var stats Stats
	model := func() *gorm.DB { return s.db.Model(&database.WatchedVideo{}) }

	if err := model().Count(&stats.TotalItems).Error; err != nil {
		return nil, err
	}
	if stats.TotalItems == 0 {
		return &stats, nil
	}

	var first, last database.WatchedVideo
	if err := model().Order("watched_at ASC").First(&first).Error; err != nil {
		return nil, err
	}
	if err := model().Order("watched_at DESC").First(&last).Error; err != nil {
		return nil, err
	}
	stats.FirstWatched = first.WatchedAt
	stats.LastWatched = last.WatchedAt

	now := s.now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if err := model().Where("watched_at >= ?", midnight).Count(&stats.WatchedToday).Error; err != nil {
		return nil, err
	}
	if err := model().Where("watched_at >= ?", now.AddDate(0, 0, -7)).Count(&stats.WatchedRecent).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}

// legacyHistory is the JSON history file format of earlier versions
type legacyHistory struct {
	WatchedVideos   []string          `json:"watched_videos"`
	WatchTimestamps map[string]string `json:"watch_timestamps"`
}

// ImportLegacy merges a JSON history file into the database.
// Timestamps that are missing or not RFC 3339 become the Unix epoch.
// Existing entries are kept. It returns the number of new entries.
func (s *Service) ImportLegacy(path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read history file: %w", err)
	}

	var legacy legacyHistory
	if err := json.Unmarshal(raw, &legacy); err != nil {
		return 0, fmt.Errorf("failed to parse history file %s: %w", path, err)
	}

	ids := append([]string(nil), legacy.WatchedVideos...)
	for id := range legacy.WatchTimestamps {
		ids = append(ids, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var rows []database.WatchedVideo
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := s.watched[id]; ok {
			continue
		}
		at := parseLegacyTimestamp(legacy.WatchTimestamps[id])
		s.watched[id] = at
		rows = append(rows, database.WatchedVideo{VideoID: id, WatchedAt: at})
	}

	if len(rows) == 0 {
		return 0, nil
	}

	err = s.db.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(rows, 100).Error
	if err != nil {
		return 0, fmt.Errorf("failed to import history: %w", err)
	}

	s.logger.Info("imported legacy watch history", "path", path, "count", len(rows))
	return len(rows), nil
}

func parseLegacyTimestamp(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Unix(0, 0).UTC()
	}
	return t.UTC()
}

// sortEntries orders entries newest first, ties by id
func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].WatchedAt.Equal(entries[j].WatchedAt) {
			return entries[i].WatchedAt.After(entries[j].WatchedAt)
		}
		return entries[i].VideoID < entries[j].VideoID
	})
}
