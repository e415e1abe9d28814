package spawn

import (
	"log/slog"

	"github.com/udisondev/nightzombies/internal/game/placement"
	"github.com/udisondev/nightzombies/internal/model"
	"github.com/udisondev/nightzombies/internal/world"
)

// OnAgentDied is the host's death hook. A handled outcome means the agent was
// respawned in place and the host must not remove it.
func (c *Controller) OnAgentDied(h model.Handle, cause world.DeathCause) world.DeathOutcome {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec, ok := c.agents[h]
	if !ok {
		return world.DeathOutcome{}
	}

	if cause.Administrative() || !c.cfg.Behaviour.RespawnInPlace || !c.windowActiveLocked() {
		c.playerKillCorpseLocked(rec, cause)
		c.forgetLocked(rec)
		slog.Debug("agent died", "agent", rec.ID, "kind", rec.Kind, "cause", cause)
		return world.DeathOutcome{}
	}

	now := c.now()
	if rec.RespawnedWithin(now, c.cfg.Behaviour.RespawnCooldown) {
		slog.Debug("respawn cooldown active, hard kill", "agent", rec.ID)
		c.hardKillLocked(rec)
		return world.DeathOutcome{}
	}

	c.playerKillCorpseLocked(rec, cause)

	loc := c.placeLocked()
	if placement.IsSentinel(loc) {
		c.metrics.PlacementFailed()
		slog.Debug("no respawn position, hard kill", "agent", rec.ID)
		c.hardKillLocked(rec)
		return world.DeathOutcome{}
	}
	if err := c.host.Relocate(h, loc); err != nil {
		slog.Warn("relocating agent failed, hard kill", "agent", rec.ID, "error", err)
		c.hardKillLocked(rec)
		return world.DeathOutcome{}
	}
	if err := c.host.Heal(h, c.cfg.Kind(rec.Kind).Health); err != nil {
		slog.Warn("healing respawned agent failed", "agent", rec.ID, "error", err)
	}

	rec.LastRespawn = now
	c.metrics.Respawned()
	slog.Debug("agent respawned in place",
		"agent", rec.ID,
		"kind", rec.Kind,
		"x", loc.X,
		"y", loc.Y)
	return world.DeathOutcome{Handled: true}
}

func (c *Controller) playerKillCorpseLocked(rec *model.AgentRecord, cause world.DeathCause) {
	if cause != world.DeathPlayer || !c.cfg.Behaviour.CorpseOnPlayerKill {
		return
	}
	if _, err := c.corpses.Synthesize(rec); err != nil {
		slog.Warn("creating corpse failed", "agent", rec.ID, "error", err)
		return
	}
	c.metrics.CorpseCreated()
}

// hardKillLocked removes the agent from the world and from bookkeeping.
func (c *Controller) hardKillLocked(rec *model.AgentRecord) {
	c.host.Destroy(rec.Handle)
	c.metrics.HardKilled()
	c.forgetLocked(rec)
}

func (c *Controller) forgetLocked(rec *model.AgentRecord) {
	rec.Alive = false
	delete(c.agents, rec.Handle)
	c.publishLocked()
}
