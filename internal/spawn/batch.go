package spawn

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/udisondev/nightzombies/internal/game/placement"
	"github.com/udisondev/nightzombies/internal/gametime"
	"github.com/udisondev/nightzombies/internal/metrics"
	"github.com/udisondev/nightzombies/internal/model"
)

const broadcastPrefix = "[Night Zombies]"

// task is one spawn or despawn batch. Steps run under the controller mutex;
// a step that fires after cancel is a no-op.
type task struct {
	direction string
	timer     gametime.Timer
	cancelled bool
	next      int

	// spawn
	plan   []model.AgentKind
	counts map[model.AgentKind]int

	// despawn
	queue   []model.Handle
	corpses bool
	onDone  func() // runs under the mutex after a completed teardown
}

func (t *task) cancel() {
	t.cancelled = true
	if t.timer != nil {
		t.timer.Stop()
	}
}

// runStep executes fn for t unless t was cancelled or replaced meanwhile.
func (c *Controller) runStep(t *task, fn func(*task)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || t.cancelled {
		return
	}
	if t != c.spawnTask && t != c.despawnTask {
		return
	}
	fn(t)
}

func (c *Controller) cancelSpawnLocked() {
	if c.spawnTask == nil {
		return
	}
	c.spawnTask.cancel()
	c.spawnTask = nil
	c.metrics.BatchFinished(metrics.DirectionSpawn, metrics.ResultCancelled)
	slog.Debug("spawn batch cancelled")
}

func (c *Controller) cancelDespawnLocked() {
	if c.despawnTask == nil {
		return
	}
	c.despawnTask.cancel()
	c.despawnTask = nil
	c.metrics.BatchFinished(metrics.DirectionDespawn, metrics.ResultCancelled)
	slog.Debug("despawn batch cancelled")
}

// spawnPlan lists kinds in materialization order: every murderer, then every scarecrow.
func (c *Controller) spawnPlan() []model.AgentKind {
	plan := make([]model.AgentKind, 0, c.cfg.PopulationTarget())
	for _, kind := range model.AllKinds {
		for range c.cfg.Kind(kind).Population {
			plan = append(plan, kind)
		}
	}
	return plan
}

// startSpawnLocked begins a spawn batch. The first agent is placed immediately.
func (c *Controller) startSpawnLocked() {
	c.cancelSpawnLocked()
	c.cancelDespawnLocked()

	t := &task{
		direction: metrics.DirectionSpawn,
		plan:      c.spawnPlan(),
		counts:    make(map[model.AgentKind]int, len(model.AllKinds)),
	}
	c.spawnTask = t
	c.spawned = true

	slog.Info("spawn batch started",
		"target", len(t.plan),
		"hour", c.clock.Hour(),
		"daysSinceLastSpawn", c.days)

	c.spawnStepLocked(t)
}

func (c *Controller) spawnStepLocked(t *task) {
	if t.next >= len(t.plan) || len(c.agents) >= c.cfg.PopulationTarget() {
		c.finishSpawnLocked(t)
		return
	}

	kind := t.plan[t.next]
	t.next++
	c.spawnOneLocked(t, kind)

	if t.next >= len(t.plan) {
		c.finishSpawnLocked(t)
		return
	}
	t.timer = c.sched.AfterFunc(c.cfg.Batch.SpawnStepDelay, func() {
		c.runStep(t, c.spawnStepLocked)
	})
}

func (c *Controller) spawnOneLocked(t *task, kind model.AgentKind) {
	loc := c.placeLocked()
	if placement.IsSentinel(loc) {
		c.metrics.PlacementFailed()
		slog.Debug("no spawn position found, agent skipped", "kind", kind)
		return
	}

	h, err := c.host.Spawn(kind, loc)
	if err != nil {
		slog.Warn("spawning agent failed", "kind", kind, "error", err)
		return
	}

	kcfg := c.cfg.Kind(kind)
	if err := c.host.Heal(h, kcfg.Health); err != nil {
		slog.Warn("setting agent health failed", "handle", h, "error", err)
	}
	if kcfg.Kit != "" && c.kits != nil {
		if err := c.kits.GiveKit(h, kcfg.Kit); err != nil {
			slog.Warn("giving kit failed", "handle", h, "kit", kcfg.Kit, "error", err)
		}
	}

	c.seq++
	c.agents[h] = model.NewAgentRecord(h, kind, kcfg.DisplayName, c.seq, c.now())
	t.counts[kind]++
	c.metrics.AgentSpawned(kind)
	c.publishLocked()
}

// placeLocked picks a position near a random participant when configured,
// anywhere otherwise. Returns the placement sentinel on failure.
func (c *Controller) placeLocked() model.Location {
	if anchor, ok := c.placer.AnchorCandidate(); ok {
		return c.placer.FindSpawnPosition(anchor, c.cfg.Placement.MinDistance, c.cfg.Placement.MaxDistance)
	}
	return c.placer.FindSpawnPosition(nil, 0, 0)
}

func (c *Controller) finishSpawnLocked(t *task) {
	c.spawnTask = nil
	c.spawned = true
	c.days = 0
	c.metrics.BatchFinished(metrics.DirectionSpawn, metrics.ResultCompleted)
	c.publishLocked()

	slog.Info("spawn batch completed",
		"murderers", t.counts[model.KindMurderer],
		"scarecrows", t.counts[model.KindScarecrow],
		"agents", len(c.agents))

	c.announceLocked(t.counts)
}

// announceLocked broadcasts the final count and plays the configured sound.
// The sound is part of the announcement and stays silent when it is disabled.
func (c *Controller) announceLocked(counts map[model.AgentKind]int) {
	bc := c.cfg.Broadcast
	if !bc.Enabled {
		return
	}
	if c.broadcaster != nil {
		c.broadcaster.Broadcast(spawnMessage(counts, bc.Separate))
	}
	if bc.PlaySound && bc.SoundEffect != "" {
		for _, p := range c.host.Participants() {
			if err := c.host.PlayEffect(p.ID, bc.SoundEffect); err != nil {
				slog.Debug("playing spawn sound failed", "participant", p.ID, "error", err)
			}
		}
	}
}

func spawnMessage(counts map[model.AgentKind]int, separate bool) string {
	if !separate {
		total := 0
		for _, n := range counts {
			total += n
		}
		return fmt.Sprintf("%s Spawned %d zombies", broadcastPrefix, total)
	}
	parts := make([]string, 0, len(model.AllKinds))
	for _, kind := range model.AllKinds {
		parts = append(parts, fmt.Sprintf("Spawned %d %ss", counts[kind], kind))
	}
	return broadcastPrefix + " " + strings.Join(parts, " | ")
}

// startDespawnLocked begins a teardown of a stable snapshot of the population.
// Immediate teardowns never leave corpses and ignore the step delay.
func (c *Controller) startDespawnLocked(immediate, corpses bool, onDone func()) {
	snap := c.snapshotLocked()
	t := &task{
		direction: metrics.DirectionDespawn,
		queue:     make([]model.Handle, len(snap)),
		corpses:   corpses && !immediate,
		onDone:    onDone,
	}
	for i, rec := range snap {
		t.queue[i] = rec.Handle
	}
	c.despawnTask = t

	slog.Info("despawn batch started", "agents", len(t.queue), "immediate", immediate)

	if immediate {
		for t.next < len(t.queue) {
			c.removeNextLocked(t)
		}
		c.finishDespawnLocked(t)
		return
	}
	c.despawnStepLocked(t)
}

// despawnStepLocked removes agents until one is actually destroyed, then
// waits the step delay. Stale entries do not consume a delay.
func (c *Controller) despawnStepLocked(t *task) {
	delay := c.cfg.DespawnDelay()
	for t.next < len(t.queue) {
		if !c.removeNextLocked(t) {
			continue
		}
		if t.next >= len(t.queue) {
			break
		}
		if delay > 0 {
			t.timer = c.sched.AfterFunc(delay, func() {
				c.runStep(t, c.despawnStepLocked)
			})
			return
		}
	}
	c.finishDespawnLocked(t)
}

// removeNextLocked drops the next queued agent. Reports whether a host entity was destroyed.
func (c *Controller) removeNextLocked(t *task) bool {
	h := t.queue[t.next]
	t.next++

	rec, ok := c.agents[h]
	if !ok {
		return false
	}
	delete(c.agents, h)
	defer c.publishLocked()

	if !c.host.Exists(h) {
		slog.Debug("agent already gone from the world", "handle", h)
		return false
	}

	if t.corpses {
		if _, err := c.corpses.Synthesize(rec); err != nil {
			slog.Warn("creating teardown corpse failed", "agent", rec.ID, "error", err)
		} else {
			c.metrics.CorpseCreated()
		}
	}
	c.host.Destroy(h)
	rec.Alive = false
	c.metrics.AgentDespawned()
	return true
}

func (c *Controller) finishDespawnLocked(t *task) {
	c.despawnTask = nil
	c.agents = make(map[model.Handle]*model.AgentRecord)
	c.spawned = false
	c.metrics.BatchFinished(metrics.DirectionDespawn, metrics.ResultCompleted)
	c.publishLocked()

	slog.Info("despawn batch completed", "removed", t.next)

	if t.onDone != nil {
		t.onDone()
	}
}
