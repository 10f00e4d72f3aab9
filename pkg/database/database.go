package database

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var GlobalPool *pgxpool.Pool

// Connect opens the shared connection pool and verifies the database is
// reachable.
func Connect(connectionString string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, connectionString)
	if err != nil {
		return err
	}

	if err := pool.Ping(ctx); err != nil {
		return err
	}

	GlobalPool = pool

	return nil
}

func Healthcheck(ctx context.Context) error {
	return GlobalPool.Ping(ctx)
}

func Close() {
	if GlobalPool != nil {
		GlobalPool.Close()
	}
}
