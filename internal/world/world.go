package world

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/udisondev/nightzombies/internal/model"
)

const (
	// engageRange is the distance at which a participant fights back.
	engageRange = 25.0
	// participantStride is the max random walk per simulated minute.
	participantStride = 30.0
)

type simAgent struct {
	kind      model.AgentKind
	loc       model.Location
	health    float64
	inventory *model.Inventory
}

// SimWorld is the bundled reference host: terrain, agents, corpses and a
// handful of wandering participants.
// Thread-safe. Death notifications are delivered outside the world lock.
type SimWorld struct {
	*NoiseTerrain

	ids *ObjectIDGenerator

	mu           sync.RWMutex
	agents       map[model.Handle]*simAgent
	regions      *regionIndex
	corpses      map[model.Handle]CorpseSpec
	participants []model.Participant
	effects      int

	onDeath   DeathHandler
	canTarget func(kind model.AgentKind, victim model.Victim) bool
}

// NewSimWorld creates a reference world with the given number of participants
// scattered over dry land.
func NewSimWorld(terrain *NoiseTerrain, participants int) *SimWorld {
	w := &SimWorld{
		NoiseTerrain: terrain,
		ids:          NewObjectIDGenerator(),
		agents:       make(map[model.Handle]*simAgent),
		regions:      newRegionIndex(),
		corpses:      make(map[model.Handle]CorpseSpec),
	}

	b := terrain.Bounds()
	for i := range participants {
		x := b.MinX + rand.Float64()*(b.MaxX-b.MinX)
		y := b.MinY + rand.Float64()*(b.MaxY-b.MinY)
		w.participants = append(w.participants, model.Participant{
			ID:       w.ids.NextParticipantID(),
			Name:     fmt.Sprintf("survivor%02d", i+1),
			Location: model.NewLocation(x, y, terrain.Height(x, y), 0),
		})
	}

	return w
}

// SetDeathHandler installs the handler called when an agent's health drops to zero.
func (w *SimWorld) SetDeathHandler(fn DeathHandler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onDeath = fn
}

// SetTargetFilter installs the targeting policy consulted before an agent engages.
func (w *SimWorld) SetTargetFilter(fn func(kind model.AgentKind, victim model.Victim) bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.canTarget = fn
}

// Spawn materializes an agent of the given kind.
func (w *SimWorld) Spawn(kind model.AgentKind, loc model.Location) (model.Handle, error) {
	if !w.Bounds().Contains(loc.X, loc.Y) {
		return 0, fmt.Errorf("spawning %s at (%.1f, %.1f): %w", kind, loc.X, loc.Y, ErrOutOfBounds)
	}

	h := w.ids.NextAgentID()

	w.mu.Lock()
	w.agents[h] = &simAgent{
		kind:      kind,
		loc:       loc,
		health:    1,
		inventory: defaultLoadout(kind),
	}
	w.regions.add(h, loc)
	w.mu.Unlock()

	return h, nil
}

// Destroy removes an agent without death processing.
func (w *SimWorld) Destroy(h model.Handle) {
	w.mu.Lock()
	defer w.mu.Unlock()
	a, ok := w.agents[h]
	if !ok {
		return
	}
	w.regions.remove(h, a.loc)
	delete(w.agents, h)
}

// Exists reports whether h refers to a live agent.
func (w *SimWorld) Exists(h model.Handle) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	_, ok := w.agents[h]
	return ok
}

// Heal sets the agent's health.
func (w *SimWorld) Heal(h model.Handle, health float64) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	a, ok := w.agents[h]
	if !ok {
		return fmt.Errorf("healing %d: %w", h, ErrNoSuchAgent)
	}
	a.health = health
	return nil
}

// Health returns the agent's current health.
func (w *SimWorld) Health(h model.Handle) (float64, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	a, ok := w.agents[h]
	if !ok {
		return 0, false
	}
	return a.health, true
}

// Relocate teleports the agent.
func (w *SimWorld) Relocate(h model.Handle, loc model.Location) error {
	if !w.Bounds().Contains(loc.X, loc.Y) {
		return fmt.Errorf("relocating %d: %w", h, ErrOutOfBounds)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	a, ok := w.agents[h]
	if !ok {
		return fmt.Errorf("relocating %d: %w", h, ErrNoSuchAgent)
	}
	w.regions.move(h, a.loc, loc)
	a.loc = loc
	return nil
}

// Position returns the agent's location.
func (w *SimWorld) Position(h model.Handle) (model.Location, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	a, ok := w.agents[h]
	if !ok {
		return model.Location{}, fmt.Errorf("position of %d: %w", h, ErrNoSuchAgent)
	}
	return a.loc, nil
}

// Inventory returns the agent's containers.
func (w *SimWorld) Inventory(h model.Handle) (*model.Inventory, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	a, ok := w.agents[h]
	if !ok {
		return nil, fmt.Errorf("inventory of %d: %w", h, ErrNoSuchAgent)
	}
	return a.inventory, nil
}

// CreateCorpse materializes lootable remains.
func (w *SimWorld) CreateCorpse(spec CorpseSpec) (model.Handle, error) {
	if !w.Bounds().Contains(spec.Location.X, spec.Location.Y) {
		return 0, fmt.Errorf("creating corpse of %s: %w", spec.DisplayName, ErrOutOfBounds)
	}
	h := w.ids.NextCorpseID()

	w.mu.Lock()
	w.corpses[h] = spec
	w.mu.Unlock()

	return h, nil
}

// Corpses returns a snapshot of all remains.
func (w *SimWorld) Corpses() []CorpseSpec {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]CorpseSpec, 0, len(w.corpses))
	for _, c := range w.corpses {
		out = append(out, c)
	}
	return out
}

// AgentCount returns the number of live agents.
func (w *SimWorld) AgentCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.agents)
}

// Participants returns a snapshot of connected participants.
func (w *SimWorld) Participants() []model.Participant {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]model.Participant, len(w.participants))
	copy(out, w.participants)
	return out
}

// PlayEffect plays a sound/visual effect for one participant.
func (w *SimWorld) PlayEffect(participantID uint32, asset string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, p := range w.participants {
		if p.ID == participantID {
			w.effects++
			slog.Debug("effect played", "participant", p.Name, "asset", asset)
			return nil
		}
	}
	return fmt.Errorf("playing effect for participant %d: not connected", participantID)
}

// EffectsPlayed returns the number of effects delivered so far.
func (w *SimWorld) EffectsPlayed() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.effects
}

// GiveKit replaces the agent's carried items with a named loadout.
func (w *SimWorld) GiveKit(h model.Handle, kit string) error {
	fill, ok := kits[kit]
	if !ok {
		return fmt.Errorf("unknown kit %q", kit)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	a, ok := w.agents[h]
	if !ok {
		return fmt.Errorf("giving kit %q to %d: %w", kit, h, ErrNoSuchAgent)
	}
	fill(a.inventory)
	return nil
}

// Damage applies damage to an agent. When health reaches zero the death
// handler decides whether the agent is removed; unhandled deaths destroy it.
func (w *SimWorld) Damage(h model.Handle, amount float64, cause DeathCause) {
	w.mu.Lock()
	a, ok := w.agents[h]
	if !ok {
		w.mu.Unlock()
		return
	}
	a.health -= amount
	dead := a.health <= 0
	handler := w.onDeath
	w.mu.Unlock()

	if !dead {
		return
	}

	outcome := DeathOutcome{}
	if handler != nil {
		outcome = handler(h, cause)
	}
	if !outcome.Handled {
		w.Destroy(h)
	}
}

type engagement struct {
	agent  model.Handle
	damage float64
}

// Simulate advances participants by one simulated minute: they wander, and
// any participant an agent is allowed to target fights back.
func (w *SimWorld) Simulate() {
	w.mu.Lock()
	b := w.Bounds()
	for i := range w.participants {
		p := &w.participants[i]
		x := clamp(p.Location.X+(rand.Float64()*2-1)*participantStride, b.MinX, b.MaxX)
		y := clamp(p.Location.Y+(rand.Float64()*2-1)*participantStride, b.MinY, b.MaxY)
		p.Location = p.Location.WithCoordinates(x, y, w.Height(x, y))
	}

	var fights []engagement
	for _, p := range w.participants {
		victim := model.Victim{Type: "player", IsPlayer: true, Sleeping: p.Sleeping}
		w.regions.near(p.Location, func(h model.Handle) bool {
			a := w.agents[h]
			if a.loc.Distance2D(p.Location) > engageRange {
				return true
			}
			if w.canTarget != nil && !w.canTarget(a.kind, victim) {
				return true
			}
			fights = append(fights, engagement{agent: h, damage: 10 + rand.Float64()*30})
			return true
		})
	}
	w.mu.Unlock()

	for _, f := range fights {
		w.Damage(f.agent, f.damage, DeathPlayer)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
