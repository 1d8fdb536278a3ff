package main

import (
	"context"
	"flag"
	"log"

	"github.com/UnknownOlympus/ems/internal/config"
	"github.com/UnknownOlympus/ems/internal/repository"
)

func main() {
	var migrationsDir string
	flag.StringVar(&migrationsDir, "dir", "migrations", "directory with goose SQL migrations")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	dbpool, err := repository.NewDatabase(context.Background(), cfg.Postgres)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer dbpool.Close()

	if err = repository.Migrate(dbpool, migrationsDir); err != nil {
		log.Fatal(err) //nolint:gocritic // pool is released by process exit
	}

	log.Println("Migrations applied successfully")
}
