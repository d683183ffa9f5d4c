package main

import (
	"fmt"
	"os"

	"github.com/pratik-mahalle/cloudmgr/internal/config"
	"github.com/pratik-mahalle/cloudmgr/internal/repository/postgres"
	"github.com/pratik-mahalle/cloudmgr/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	db, err := postgres.New(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	fmt.Printf("Connected to %s database\n", db.Driver())

	migrationsFS, err := migrations.For(db.Driver())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	applied, err := postgres.RunMigrations(db, migrationsFS)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Migration failed after %d file(s): %v\n", applied, err)
		os.Exit(1)
	}

	if applied == 0 {
		fmt.Println("Database is up to date")
		return
	}
	fmt.Printf("Applied %d migration(s)\n", applied)
}
