package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/udisondev/nightzombies/internal/config"
	"github.com/udisondev/nightzombies/internal/world"
)

// OpenCycleStore opens the cycle counter store selected by cfg.Driver.
// The returned close func releases the underlying connection.
func OpenCycleStore(ctx context.Context, cfg config.Storage) (world.CycleStore, func(), error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		dsn := cfg.Database.DSN()
		version, err := RunMigrations(ctx, dsn)
		if err != nil {
			return nil, nil, err
		}
		database, err := New(ctx, dsn)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("cycle store ready", "driver", cfg.Driver, "host", cfg.Database.Host, "schema", version)
		return NewCycleRepository(database.Pool()), database.Close, nil

	case config.DriverSQLite, "":
		store, err := OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("cycle store ready", "driver", config.DriverSQLite, "path", cfg.SQLitePath)
		return store, func() {
			if err := store.Close(); err != nil {
				slog.Error("closing sqlite store", "error", err)
			}
		}, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
