package testutil

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/udisondev/nightzombies/internal/db"
)

// postgresImage is the server version the cycle schema is tested against.
const postgresImage = "postgres:16-alpine"

// StartPostgres runs a throwaway PostgreSQL container with the cycle schema
// applied and returns its DSN. The container is terminated on cleanup.
func StartPostgres(tb testing.TB) string {
	tb.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx, postgresImage,
		postgres.WithDatabase("nightzombies"),
		postgres.WithUsername("nightzombies"),
		postgres.WithPassword("nightzombies"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		tb.Fatalf("starting %s: %v", postgresImage, err)
	}
	tb.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			tb.Logf("terminating %s: %v", postgresImage, err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		tb.Fatalf("reading postgres dsn: %v", err)
	}

	if _, err := db.RunMigrations(ctx, dsn); err != nil {
		tb.Fatalf("migrating cycle schema: %v", err)
	}
	return dsn
}

// SetupTestDB returns a pool on a migrated throwaway database.
func SetupTestDB(tb testing.TB) *pgxpool.Pool {
	tb.Helper()

	pool, err := pgxpool.New(context.Background(), StartPostgres(tb))
	if err != nil {
		tb.Fatalf("connecting to cycle database: %v", err)
	}
	tb.Cleanup(pool.Close)
	return pool
}

// SetupCycleRepository returns a PostgreSQL cycle store whose day counter
// starts at days. Zero leaves cycle_state empty.
func SetupCycleRepository(tb testing.TB, days int) *db.CycleRepository {
	tb.Helper()

	repo := db.NewCycleRepository(SetupTestDB(tb))
	if days > 0 {
		if err := repo.SaveDaysSinceSpawn(context.Background(), days); err != nil {
			tb.Fatalf("seeding day counter: %v", err)
		}
	}
	return repo
}
