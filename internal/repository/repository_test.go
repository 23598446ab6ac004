package repository_test

import (
	"context"
	"fmt"

	"github.com/asadalimcj/zearsports/internal/db"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"go.uber.org/zap"
)

// startPostgres runs the embedded migrations against a fresh container and removes the
// demo catalog so suites start from empty tables.
func startPostgres(ctx context.Context) (*postgres.PostgresContainer, *pgxpool.Pool, error) {
	container, err := postgres.Run(ctx, "postgres:17.6-alpine3.22", postgres.BasicWaitStrategies())
	if err != nil {
		return nil, nil, fmt.Errorf("postgres.Run: %w", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return container, nil, fmt.Errorf("container.ConnectionString: %w", err)
	}

	if err := db.RunMigrations(dsn, zap.NewNop()); err != nil {
		return container, nil, fmt.Errorf("db.RunMigrations: %w", err)
	}

	pool, err := db.NewPool(ctx, dsn)
	if err != nil {
		return container, nil, fmt.Errorf("db.NewPool: %w", err)
	}

	if _, err := pool.Exec(ctx, "TRUNCATE TABLE products CASCADE"); err != nil {
		pool.Close()
		return container, nil, fmt.Errorf("truncate seed: %w", err)
	}

	return container, pool, nil
}
