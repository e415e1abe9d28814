package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/nightzombies/internal/broadcast"
	"github.com/udisondev/nightzombies/internal/config"
	"github.com/udisondev/nightzombies/internal/db"
	"github.com/udisondev/nightzombies/internal/game/combat"
	"github.com/udisondev/nightzombies/internal/game/corpse"
	"github.com/udisondev/nightzombies/internal/game/placement"
	"github.com/udisondev/nightzombies/internal/gametime"
	"github.com/udisondev/nightzombies/internal/metrics"
	"github.com/udisondev/nightzombies/internal/spawn"
	"github.com/udisondev/nightzombies/internal/world"
)

const (
	ConfigPath      = "config/nightzombies.yaml"
	shutdownTimeout = 10 * time.Second
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

// loadConfig loads and validates the configuration. Problems never stop the
// daemon: the affected values fall back to defaults. Problems are returned
// unlogged.
func loadConfig(path string) (config.NightZombies, []error) {
	var problems []error
	cfg, err := config.LoadNightZombies(path)
	if err != nil {
		problems = append(problems, fmt.Errorf("config unreadable, using defaults: %w", err))
	}
	problems = append(problems, cfg.Validate()...)
	return cfg, problems
}

func logConfigProblems(path string, problems []error) {
	for _, problem := range problems {
		slog.Warn("config problem", "path", path, "problem", problem)
	}
}

func run(ctx context.Context) error {
	cfgPath := ConfigPath
	if p := os.Getenv("NIGHTZOMBIES_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, problems := loadConfig(cfgPath)

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	logConfigProblems(cfgPath, problems)

	slog.Info("night zombies starting",
		"config", cfgPath,
		"log_level", cfg.LogLevel,
		"murderers", cfg.Murderer.Population,
		"scarecrows", cfg.Scarecrow.Population)

	store, closeStore, err := db.OpenCycleStore(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("opening cycle store: %w", err)
	}
	defer closeStore()

	sim := cfg.Simulation
	terrain := world.NewNoiseTerrain(sim.Seed, sim.WorldSize, sim.SeaLevel)
	simWorld := world.NewSimWorld(terrain, sim.Participants)
	slog.Info("reference world generated",
		"seed", sim.Seed,
		"size", sim.WorldSize,
		"participants", sim.Participants)

	finder := placement.NewFinder(terrain, simWorld, cfg.Placement)

	loot, err := corpse.LoadLootTables(cfg.LootTablesPath)
	if err != nil {
		slog.Warn("loot tables rejected", "path", cfg.LootTablesPath, "err", err)
	}
	corpses := corpse.NewSynthesizer(simWorld, loot)

	targeting := combat.NewFilter(cfg.Combat)
	simWorld.SetTargetFilter(targeting.Allows)

	population := metrics.NewPopulation()
	chat := broadcast.NewHub()
	defer chat.Close()

	clock := gametime.NewClock(sim.StartHour, sim.TickInterval, sim.MinutesPerTick)

	ctrl, err := spawn.NewController(cfg, spawn.Deps{
		Host:        simWorld,
		Placer:      finder,
		Corpses:     corpses,
		Clock:       clock,
		Store:       store,
		Kits:        simWorld,
		Broadcaster: broadcast.Multi{broadcast.Log{}, chat},
		Metrics:     population,
	})
	if err != nil {
		return fmt.Errorf("creating controller: %w", err)
	}
	simWorld.SetDeathHandler(ctrl.OnAgentDied)

	if err := ctrl.Start(ctx); err != nil {
		return fmt.Errorf("starting controller: %w", err)
	}

	clock.Subscribe(ctrl)
	clock.Subscribe(simulationDriver{world: simWorld})

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := clock.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("game clock: %w", err)
		}
		return nil
	})

	if cfg.HTTPAddress != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", population.Handler())
		mux.Handle("/chat", chat)
		srv := &http.Server{
			Addr:              cfg.HTTPAddress,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}

		g.Go(func() error {
			slog.Info("starting http server", "address", cfg.HTTPAddress)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	g.Go(func() error {
		hup := make(chan os.Signal, 1)
		signal.Notify(hup, syscall.SIGHUP)
		defer signal.Stop(hup)

		for {
			select {
			case <-gctx.Done():
				return nil
			case <-hup:
				slog.Info("reloading configuration", "config", cfgPath)
				next, problems := loadConfig(cfgPath)
				logConfigProblems(cfgPath, problems)

				tables, err := corpse.LoadLootTables(next.LootTablesPath)
				if err != nil {
					slog.Warn("loot tables rejected", "path", next.LootTablesPath, "err", err)
				}
				corpses.SetTables(tables)
				targeting.Update(next.Combat)
				ctrl.Reload(next)
			}
		}
	})

	g.Go(func() error {
		<-gctx.Done()
		clock.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := ctrl.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("controller shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// simulationDriver advances the reference world once per in-game minute.
type simulationDriver struct {
	world *world.SimWorld
}

func (d simulationDriver) TimeTick()    { d.world.Simulate() }
func (d simulationDriver) DayBoundary() {}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
