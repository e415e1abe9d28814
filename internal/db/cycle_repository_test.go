package db_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/nightzombies/internal/db"
	"github.com/udisondev/nightzombies/internal/testutil"
)

func TestCycleRepository_DaysSinceSpawn(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}

	ctx := context.Background()
	repo := testutil.SetupCycleRepository(t, 0)

	days, err := repo.LoadDaysSinceSpawn(ctx)
	require.NoError(t, err)
	assert.Zero(t, days)

	require.NoError(t, repo.SaveDaysSinceSpawn(ctx, 5))
	require.NoError(t, repo.SaveDaysSinceSpawn(ctx, 6))

	days, err = repo.LoadDaysSinceSpawn(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, days)
}

func TestCycleRepository_SeededCounter(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}

	repo := testutil.SetupCycleRepository(t, 3)

	days, err := repo.LoadDaysSinceSpawn(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, days)
}

func TestCycleRepository_RejectsNegative(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}

	repo := testutil.SetupCycleRepository(t, 0)

	assert.Error(t, repo.SaveDaysSinceSpawn(context.Background(), -1))
}

func TestRunMigrations_Idempotent(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}

	dsn := testutil.StartPostgres(t)

	version, err := db.RunMigrations(context.Background(), dsn)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
}
