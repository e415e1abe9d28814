package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// daysSinceSpawnKey is the cycle_state row holding the day counter.
const daysSinceSpawnKey = "days_since_last_spawn"

// CycleRepository persists the spawn cycle counter in PostgreSQL.
type CycleRepository struct {
	pool *pgxpool.Pool
}

// NewCycleRepository creates a new cycle repository
func NewCycleRepository(pool *pgxpool.Pool) *CycleRepository {
	return &CycleRepository{pool: pool}
}

// LoadDaysSinceSpawn returns the stored counter, 0 if nothing was saved yet.
func (r *CycleRepository) LoadDaysSinceSpawn(ctx context.Context) (int, error) {
	var days int64
	err := r.pool.QueryRow(ctx,
		`SELECT value FROM cycle_state WHERE key = $1`, daysSinceSpawnKey,
	).Scan(&days)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("loading days since spawn: %w", err)
	}
	return int(days), nil
}

// SaveDaysSinceSpawn upserts the counter.
func (r *CycleRepository) SaveDaysSinceSpawn(ctx context.Context, days int) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO cycle_state (key, value, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		daysSinceSpawnKey, int64(days),
	)
	if err != nil {
		return fmt.Errorf("saving days since spawn: %w", err)
	}
	return nil
}
