package database

import (
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/justchokingaround/yt-tui/internal/config"
)

func openMemory(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(&config.DatabaseConfig{Path: MemoryPath, MaxConnections: 4})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestOpen_RunsMigrations(t *testing.T) {
	db := openMemory(t)

	var names []string
	require.NoError(t, db.Table("schema_migrations").Order("name").Pluck("name", &names).Error)
	assert.Equal(t, []string{"20250101", "20250102", "20250110"}, names)

	assert.True(t, db.Migrator().HasTable(&WatchedVideo{}))
	assert.True(t, db.Migrator().HasTable(&Setting{}))
	assert.True(t, db.Migrator().HasIndex(&WatchedVideo{}, "idx_watched_videos_watched_at"))
}

func TestOpen_FileDatabaseIsReopenable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "yt-tui.db")
	cfg := &config.DatabaseConfig{Path: path, MaxConnections: 2, WALMode: true}

	db, err := Open(cfg)
	require.NoError(t, err)
	require.NoError(t, db.Create(&WatchedVideo{VideoID: "abc", WatchedAt: time.Now()}).Error)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	db, err = Open(cfg)
	require.NoError(t, err)
	var count int64
	require.NoError(t, db.Model(&WatchedVideo{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestInitAndClose(t *testing.T) {
	t.Cleanup(func() { DB = nil })

	require.NoError(t, Init(&config.DatabaseConfig{Path: MemoryPath, MaxConnections: 1}))
	assert.NotNil(t, GetDB())
	assert.NoError(t, Close())
}

func TestExtractMigrationName(t *testing.T) {
	assert.Equal(t, "20250101", extractMigrationName("20250101_watched_videos.sql"))
	assert.Equal(t, "notes.sql", extractMigrationName("notes.sql"))
}

func TestLoadMigrations_SortsByDate(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/20250110_later.sql":   {Data: []byte("SELECT 2;")},
		"migrations/20250101_earlier.sql": {Data: []byte("SELECT 1;")},
		"migrations/README.md":            {Data: []byte("not a migration")},
	}

	migrations, err := loadMigrations(fsys)
	require.NoError(t, err)
	require.Len(t, migrations, 2)
	assert.Equal(t, "20250101", migrations[0].name)
	assert.Equal(t, "20250101_earlier.sql", migrations[0].filename)
	assert.Equal(t, "SELECT 1;", migrations[0].sql)
	assert.Equal(t, "20250110", migrations[1].name)
}

func TestRunMigrations_Idempotent(t *testing.T) {
	db := openMemory(t)

	require.NoError(t, RunMigrations(db))

	var count int64
	require.NoError(t, db.Model(&schemaMigration{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)
}

func TestCheckMigrationPrerequisites(t *testing.T) {
	db := openMemory(t)

	ok := migration{name: "a", sql: "-- requires-table: watched_videos\nSELECT 1;"}
	assert.NoError(t, checkMigrationPrerequisites(db, ok))

	missing := migration{name: "b", sql: "-- requires-table: nothing_here\nSELECT 1;"}
	assert.Error(t, checkMigrationPrerequisites(db, missing))

	none := migration{name: "c", sql: "SELECT 1;"}
	assert.NoError(t, checkMigrationPrerequisites(db, none))
}

func TestSettings(t *testing.T) {
	db := openMemory(t)
	store := NewSettingsStore(db)

	value, err := store.Get(SettingSortMode)
	require.NoError(t, err)
	assert.Equal(t, "", value)

	require.NoError(t, store.Set(SettingSortMode, "views"))
	require.NoError(t, store.Set(SettingSortMode, "creator"))

	value, err = store.Get(SettingSortMode)
	require.NoError(t, err)
	assert.Equal(t, "creator", value)

	var count int64
	require.NoError(t, db.Model(&Setting{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
