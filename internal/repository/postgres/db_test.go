package postgres_test

import (
	"testing"

	"github.com/pratik-mahalle/cloudmgr/internal/config"
	"github.com/pratik-mahalle/cloudmgr/internal/repository/postgres"
	"github.com/pratik-mahalle/cloudmgr/internal/testutil"
	"github.com/pratik-mahalle/cloudmgr/migrations"
)

func TestRunMigrationsIsIdempotent(t *testing.T) {
	db := testutil.NewTestDB(t)

	fsys, err := migrations.For("sqlite")
	if err != nil {
		t.Fatalf("For() error = %v", err)
	}
	n, err := postgres.RunMigrations(db, fsys)
	if err != nil {
		t.Fatalf("RunMigrations() error = %v", err)
	}
	if n != 0 {
		t.Errorf("second run applied %d migrations, want 0", n)
	}
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	if _, err := postgres.New(config.DatabaseConfig{Driver: "mysql"}); err == nil {
		t.Error("New() with mysql driver should fail")
	}
}
