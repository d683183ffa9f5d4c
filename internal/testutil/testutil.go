package testutil

import (
	"testing"

	"github.com/pratik-mahalle/cloudmgr/internal/config"
	"github.com/pratik-mahalle/cloudmgr/internal/repository/postgres"
	"github.com/pratik-mahalle/cloudmgr/migrations"
)

// NewTestDB creates an in-memory SQLite database with every migration applied
func NewTestDB(t *testing.T) *postgres.DB {
	t.Helper()

	db, err := postgres.New(config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	fsys, err := migrations.For("sqlite")
	if err != nil {
		t.Fatalf("Failed to load migrations: %v", err)
	}
	if _, err := postgres.RunMigrations(db, fsys); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	t.Cleanup(func() { CleanupDB(db) })
	return db
}

// CleanupDB closes the test database
func CleanupDB(db *postgres.DB) {
	if db != nil {
		db.Close()
	}
}
