package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// SQLiteStore persists the spawn cycle counter in a local SQLite file.
type SQLiteStore struct {
	conn *sqlx.DB
}

// OpenSQLite opens or creates a SQLite database at the given path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating directory for %s: %w", path, err)
		}
	}

	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	s := &SQLiteStore{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate sqlite %s: %w", path, err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	_, err := s.conn.Exec(`
	CREATE TABLE IF NOT EXISTS cycle_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);`)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

// SaveMeta upserts a metadata value.
func (s *SQLiteStore) SaveMeta(ctx context.Context, key, value string) error {
	_, err := s.conn.ExecContext(ctx,
		"INSERT OR REPLACE INTO cycle_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (s *SQLiteStore) GetMeta(ctx context.Context, key string) (string, error) {
	var value string
	err := s.conn.GetContext(ctx, &value, "SELECT value FROM cycle_meta WHERE key = ?", key)
	return value, err
}

// LoadDaysSinceSpawn returns the stored counter, 0 if nothing was saved yet.
func (s *SQLiteStore) LoadDaysSinceSpawn(ctx context.Context) (int, error) {
	raw, err := s.GetMeta(ctx, daysSinceSpawnKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("loading days since spawn: %w", err)
	}
	days, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parsing days since spawn %q: %w", raw, err)
	}
	return days, nil
}

// SaveDaysSinceSpawn stores the counter.
func (s *SQLiteStore) SaveDaysSinceSpawn(ctx context.Context, days int) error {
	if err := s.SaveMeta(ctx, daysSinceSpawnKey, strconv.Itoa(days)); err != nil {
		return fmt.Errorf("saving days since spawn: %w", err)
	}
	return nil
}
