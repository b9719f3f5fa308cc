// Package database opens the SQLite record store and manages its schema.
package database

import (
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"portfolio/internal/model"
)

// ErrNotFound is returned when an identifier does not resolve to a
// visible record. An unpublished blog post looks the same as a missing
// one so drafts cannot be discovered by probing slugs.
var ErrNotFound = errors.New("record not found")

// Open connects to the SQLite database at path, creating it if needed.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	if path == ":memory:" {
		// In-memory SQLite is per-connection; without this each pooled
		// connection would see its own empty database.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// Migrate brings the schema up to date for every entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.PersonalInfo{},
		&model.Skill{},
		&model.Project{},
		&model.Experience{},
		&model.Education{},
		&model.Certification{},
		&model.ContactMessage{},
		&model.BlogPost{},
	)
}
