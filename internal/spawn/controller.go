// Package spawn drives the night population lifecycle: it decides when a
// population appears and disappears, materializes agents in throttled batches
// and absorbs agent deaths while the night lasts.
package spawn

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/udisondev/nightzombies/internal/config"
	"github.com/udisondev/nightzombies/internal/gametime"
	"github.com/udisondev/nightzombies/internal/metrics"
	"github.com/udisondev/nightzombies/internal/model"
	"github.com/udisondev/nightzombies/internal/world"
)

// Placer computes spawn coordinates.
type Placer interface {
	FindSpawnPosition(anchor *model.Location, minDistance, maxDistance float64) model.Location
	AnchorCandidate() (*model.Location, bool)
	Configure(cfg config.Placement)
}

// CorpseMaker creates remains for an agent that is about to disappear.
type CorpseMaker interface {
	Synthesize(rec *model.AgentRecord) (model.Handle, error)
}

// TimeOfDay reports the current in-game hour in [0,24).
type TimeOfDay interface {
	Hour() float64
}

// Deps are the collaborators of a Controller.
// Host, Placer, Corpses, Clock and Store are required.
type Deps struct {
	Host        world.Host
	Placer      Placer
	Corpses     CorpseMaker
	Clock       TimeOfDay
	Store       world.CycleStore
	Kits        world.KitGranter   // optional
	Broadcaster world.Broadcaster  // optional
	Scheduler   gametime.Scheduler // default: wall-clock timers
	Metrics     *metrics.Population
	Now         func() time.Time // default: time.Now
	Roll        func() float64   // uniform [0,100); default: math/rand
}

// Controller owns the night population.
// Thread-safe: every entry point takes the same mutex.
type Controller struct {
	host        world.Host
	placer      Placer
	corpses     CorpseMaker
	clock       TimeOfDay
	store       world.CycleStore
	kits        world.KitGranter
	broadcaster world.Broadcaster
	sched       gametime.Scheduler
	metrics     *metrics.Population
	now         func() time.Time
	roll        func() float64

	mu          sync.Mutex
	cfg         config.NightZombies
	spawned     bool
	days        int
	agents      map[model.Handle]*model.AgentRecord
	seq         uint64
	spawnTask   *task
	despawnTask *task
	closed      bool
}

// NewController creates a controller. The configuration is expected to be validated.
func NewController(cfg config.NightZombies, deps Deps) (*Controller, error) {
	if deps.Host == nil || deps.Placer == nil || deps.Corpses == nil || deps.Clock == nil || deps.Store == nil {
		return nil, fmt.Errorf("creating spawn controller: missing required dependency")
	}

	c := &Controller{
		host:        deps.Host,
		placer:      deps.Placer,
		corpses:     deps.Corpses,
		clock:       deps.Clock,
		store:       deps.Store,
		kits:        deps.Kits,
		broadcaster: deps.Broadcaster,
		sched:       deps.Scheduler,
		metrics:     deps.Metrics,
		now:         deps.Now,
		roll:        deps.Roll,
		cfg:         cfg,
		agents:      make(map[model.Handle]*model.AgentRecord),
	}
	if c.sched == nil {
		c.sched = gametime.RealScheduler{}
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.roll == nil {
		c.roll = func() float64 { return rand.Float64() * 100 }
	}
	return c, nil
}

// Start loads the persisted day counter. A storage failure is not fatal:
// the counter starts from zero.
func (c *Controller) Start(ctx context.Context) error {
	days, err := c.store.LoadDaysSinceSpawn(ctx)
	if err != nil {
		slog.Warn("loading day counter failed, starting from zero", "error", err)
		days = 0
	}
	if days < 0 {
		slog.Warn("negative day counter in storage, clamping", "days", days)
		days = 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.days = days
	c.publishLocked()

	slog.Info("night zombies controller started",
		"daysSinceLastSpawn", days,
		"spawnTime", c.cfg.Schedule.SpawnTime,
		"destroyTime", c.cfg.Schedule.DestroyTime,
		"population", c.cfg.PopulationTarget())
	return nil
}

// Shutdown cancels every batch, removes the population immediately and
// persists the day counter. Later calls are no-ops.
func (c *Controller) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true

	c.cancelSpawnLocked()
	c.cancelDespawnLocked()

	removed := len(c.agents)
	c.startDespawnLocked(true, false, nil)
	days := c.days
	c.publishLocked()
	c.mu.Unlock()

	slog.Info("night zombies controller stopped", "removed", removed, "daysSinceLastSpawn", days)

	if err := c.store.SaveDaysSinceSpawn(ctx, days); err != nil {
		return fmt.Errorf("persisting day counter: %w", err)
	}
	return nil
}

// Reload tears the current population down with throttling, then applies cfg.
// A population that was out is restored while the new window is still active;
// otherwise a fresh one spawns if the new settings allow it.
func (c *Controller) Reload(cfg config.NightZombies) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	slog.Info("reloading night zombies configuration", "agents", len(c.agents))

	wasSpawned := c.spawned

	c.cancelSpawnLocked()
	c.cancelDespawnLocked()

	c.startDespawnLocked(false, c.cfg.Behaviour.CorpseOnTeardown, func() {
		c.cfg = cfg
		c.placer.Configure(cfg.Placement)
		// The night already passed its day and chance gates.
		if wasSpawned && c.windowActiveLocked() {
			c.startSpawnLocked()
			return
		}
		if c.canSpawnLocked() {
			c.startSpawnLocked()
		}
	})
}

// TimeTick is called once per in-game minute.
func (c *Controller) TimeTick() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	switch {
	case !c.spawned && c.despawnTask == nil && c.canSpawnLocked():
		c.startSpawnLocked()

	case c.spawned && c.despawnTask == nil && !c.windowActiveLocked():
		c.cancelSpawnLocked()
		c.startDespawnLocked(false, c.cfg.Behaviour.CorpseOnTeardown, nil)

	case c.despawnTask != nil && c.despawnTask.onDone == nil && c.windowActiveLocked():
		slog.Debug("window reopened during teardown, spawn queued")
		c.despawnTask.onDone = func() {
			if c.canSpawnLocked() {
				c.startSpawnLocked()
			}
		}
	}
}

// DayBoundary is called once per in-game day.
func (c *Controller) DayBoundary() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.days++
	c.publishLocked()
	slog.Debug("day boundary", "daysSinceLastSpawn", c.days)
}

// CanSpawn reports whether a spawn batch would start now. Rolls the chance.
func (c *Controller) CanSpawn() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canSpawnLocked()
}

func (c *Controller) canSpawnLocked() bool {
	if c.spawned {
		return false
	}
	if c.days < c.cfg.Schedule.MinDaysBetweenSpawns {
		return false
	}
	if !c.windowActiveLocked() {
		return false
	}
	chance := c.cfg.Schedule.ChancePerCycle
	if chance <= 0 {
		return false
	}
	return c.roll() < chance
}

func (c *Controller) windowActiveLocked() bool {
	return c.cfg.Schedule.Window().Active(c.clock.Hour())
}

// Spawned reports whether a population is out.
func (c *Controller) Spawned() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.spawned
}

// AgentCount returns the number of tracked agents.
func (c *Controller) AgentCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.agents)
}

// DaysSinceLastSpawn returns the day counter.
func (c *Controller) DaysSinceLastSpawn() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.days
}

// Busy reports whether a spawn or despawn batch is in flight.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.spawnTask != nil || c.despawnTask != nil
}

// Agents returns copies of the tracked records in spawn order.
func (c *Controller) Agents() []model.AgentRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := c.snapshotLocked()
	out := make([]model.AgentRecord, len(snap))
	for i, rec := range snap {
		out[i] = *rec
	}
	return out
}

// snapshotLocked returns the records ordered by creation.
func (c *Controller) snapshotLocked() []*model.AgentRecord {
	out := make([]*model.AgentRecord, 0, len(c.agents))
	for _, rec := range c.agents {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out
}

func (c *Controller) publishLocked() {
	c.metrics.SetState(len(c.agents), c.spawned, c.days)
}
