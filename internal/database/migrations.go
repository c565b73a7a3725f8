package database

import (
	"embed"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var (
	// YYYYMMDD_description.sql
	migrationNameRe = regexp.MustCompile(`^(\d{8})_.+\.sql$`)
	// "-- requires-table: name" lines at the top of a migration
	requiresTableRe = regexp.MustCompile(`(?m)^--\s*requires-table:\s*(\w+)\s*$`)
)

// migration is one embedded SQL file
type migration struct {
	filename string
	name     string
	sql      string
}

// schemaMigration records an applied or skipped migration
type schemaMigration struct {
	Name      string `gorm:"primaryKey"`
	AppliedAt time.Time
}

func (schemaMigration) TableName() string {
	return "schema_migrations"
}

// RunMigrations applies every embedded migration not yet recorded, oldest
// first, each in its own transaction
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(&schemaMigration{}); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	migrations, err := loadMigrations(migrationsFS)
	if err != nil {
		return err
	}

	applied, err := appliedMigrations(db)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	for _, m := range migrations {
		if applied[m.name] {
			continue
		}
		if err := db.Transaction(func(tx *gorm.DB) error { return applyMigration(tx, m) }); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", m.filename, err)
		}
	}
	return nil
}

// loadMigrations reads the .sql files under migrations/ sorted by name
func loadMigrations(fsys fs.FS) ([]migration, error) {
	files, err := fs.Glob(fsys, "migrations/*.sql")
	if err != nil {
		return nil, fmt.Errorf("failed to list migrations: %w", err)
	}

	migrations := make([]migration, 0, len(files))
	for _, file := range files {
		content, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", file, err)
		}
		filename := strings.TrimPrefix(file, "migrations/")
		migrations = append(migrations, migration{
			filename: filename,
			name:     extractMigrationName(filename),
			sql:      string(content),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].name < migrations[j].name
	})
	return migrations, nil
}

// extractMigrationName returns the date prefix of filename, or filename
// itself when it does not follow YYYYMMDD_description.sql
func extractMigrationName(filename string) string {
	matches := migrationNameRe.FindStringSubmatch(filename)
	if len(matches) < 2 {
		return filename
	}
	return matches[1]
}

func appliedMigrations(db *gorm.DB) (map[string]bool, error) {
	var names []string
	if err := db.Model(&schemaMigration{}).Pluck("name", &names).Error; err != nil {
		return nil, err
	}

	applied := make(map[string]bool, len(names))
	for _, name := range names {
		applied[name] = true
	}
	return applied, nil
}

// applyMigration runs m inside tx and records it. A migration whose required
// tables are missing is recorded without running; AutoMigrate creates those
// tables with their final shape afterwards.
func applyMigration(tx *gorm.DB, m migration) error {
	if err := checkMigrationPrerequisites(tx, m); err == nil {
		if err := tx.Exec(m.sql).Error; err != nil {
			return err
		}
	}

	record := schemaMigration{Name: m.name, AppliedAt: time.Now().UTC()}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&record).Error
}

// checkMigrationPrerequisites fails when a table named in a requires-table
// header does not exist yet
func checkMigrationPrerequisites(db *gorm.DB, m migration) error {
	for _, match := range requiresTableRe.FindAllStringSubmatch(m.sql, -1) {
		if !db.Migrator().HasTable(match[1]) {
			return fmt.Errorf("table %s does not exist yet", match[1])
		}
	}
	return nil
}
