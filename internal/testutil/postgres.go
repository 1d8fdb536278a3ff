//go:build integration

// Package testutil starts a disposable PostgreSQL for integration tests.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/UnknownOlympus/ems/internal/config"
	"github.com/UnknownOlympus/ems/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const (
	postgresImage = "postgres:16-alpine"
	dbName        = "ems"
	dbUser        = "docker"
	dbPassword    = "testContainer"
)

// Postgres is a running container together with a migrated connection pool.
type Postgres struct {
	Pool      *pgxpool.Pool
	container *postgres.PostgresContainer
}

// StartPostgres runs a PostgreSQL container, connects to it the same way the service does
// and applies the schema from the migrations directory.
func StartPostgres(ctx context.Context) (*Postgres, error) {
	ctr, err := postgres.Run(ctx, postgresImage,
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("failed to start postgres container: %w", err), testcontainers.TerminateContainer(ctr))
	}

	host, err := ctr.Host(ctx)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("failed to get container host: %w", err), ctr.Terminate(ctx))
	}
	port, err := ctr.MappedPort(ctx, "5432/tcp")
	if err != nil {
		return nil, errors.Join(fmt.Errorf("failed to get container port: %w", err), ctr.Terminate(ctx))
	}

	dbpool, err := repository.NewDatabase(ctx, config.PostgresConfig{
		Host:     host,
		Port:     port.Port(),
		User:     dbUser,
		Password: dbPassword,
		Dbname:   dbName,
	})
	if err != nil {
		return nil, errors.Join(err, ctr.Terminate(ctx))
	}

	if err = repository.Migrate(dbpool, MigrationsDir()); err != nil {
		dbpool.Close()
		return nil, errors.Join(err, ctr.Terminate(ctx))
	}

	return &Postgres{Pool: dbpool, container: ctr}, nil
}

// Stop closes the pool and removes the container.
func (p *Postgres) Stop() error {
	p.Pool.Close()

	if err := testcontainers.TerminateContainer(p.container); err != nil {
		return fmt.Errorf("failed to terminate postgres container: %w", err)
	}

	return nil
}

// MigrationsDir returns the absolute path of the repository's migrations directory.
func MigrationsDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "migrations")
}
