package testutil

import (
	"fmt"
	"sort"
	"sync"

	"github.com/udisondev/nightzombies/internal/model"
	"github.com/udisondev/nightzombies/internal/world"
)

// FakeAgent is the state FakeHost keeps per spawned agent.
type FakeAgent struct {
	Kind      model.AgentKind
	Location  model.Location
	Health    float64
	Kit       string
	Inventory *model.Inventory
}

// FakeHost — in-memory world.Host + world.Terrain для unit тестов.
// Flat dry terrain at height 10; cells listed in Solid or Water reject placement.
type FakeHost struct {
	mu sync.Mutex

	WorldBounds  world.Bounds
	Ground       float64
	Solid        func(loc model.Location) bool
	Water        func(loc model.Location) float64
	SpawnErr     error
	Players      []model.Participant
	nextHandle   model.Handle
	agents       map[model.Handle]*FakeAgent
	corpses      []world.CorpseSpec
	effects      []string
	destroyed    []model.Handle
	spawnedKinds []model.AgentKind
}

// NewFakeHost creates a 1000x1000 flat world centred on the origin.
func NewFakeHost() *FakeHost {
	return &FakeHost{
		WorldBounds: world.Bounds{MinX: -500, MinY: -500, MaxX: 500, MaxY: 500},
		Ground:      10,
		nextHandle:  0x20000000,
		agents:      make(map[model.Handle]*FakeAgent),
	}
}

func (f *FakeHost) Bounds() world.Bounds            { return f.WorldBounds }
func (f *FakeHost) Height(x, y float64) float64     { return f.Ground }
func (f *FakeHost) InSolid(loc model.Location) bool { return f.Solid != nil && f.Solid(loc) }

func (f *FakeHost) WaterDepth(loc model.Location) float64 {
	if f.Water == nil {
		return 0
	}
	return f.Water(loc)
}

func (f *FakeHost) Participants() []model.Participant {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Participant, len(f.Players))
	copy(out, f.Players)
	return out
}

func (f *FakeHost) Spawn(kind model.AgentKind, loc model.Location) (model.Handle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SpawnErr != nil {
		return 0, f.SpawnErr
	}
	f.nextHandle++
	inv := model.NewInventory(7, 6, 24)
	inv.Wear.Add(model.ItemStack{ItemID: "mask", Amount: 1, Cosmetic: true})
	inv.Wear.Add(model.ItemStack{ItemID: "trousers", Amount: 1})
	inv.Belt.Add(model.ItemStack{ItemID: "machete", Amount: 1})
	f.agents[f.nextHandle] = &FakeAgent{Kind: kind, Location: loc, Health: 1, Inventory: inv}
	f.spawnedKinds = append(f.spawnedKinds, kind)
	return f.nextHandle, nil
}

func (f *FakeHost) Destroy(h model.Handle) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.agents[h]; ok {
		delete(f.agents, h)
		f.destroyed = append(f.destroyed, h)
	}
}

func (f *FakeHost) Exists(h model.Handle) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.agents[h]
	return ok
}

func (f *FakeHost) Heal(h model.Handle, health float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.agents[h]
	if !ok {
		return fmt.Errorf("healing %d: %w", h, world.ErrNoSuchAgent)
	}
	a.Health = health
	return nil
}

func (f *FakeHost) Relocate(h model.Handle, loc model.Location) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.agents[h]
	if !ok {
		return fmt.Errorf("relocating %d: %w", h, world.ErrNoSuchAgent)
	}
	a.Location = loc
	return nil
}

func (f *FakeHost) Position(h model.Handle) (model.Location, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.agents[h]
	if !ok {
		return model.Location{}, fmt.Errorf("position of %d: %w", h, world.ErrNoSuchAgent)
	}
	return a.Location, nil
}

func (f *FakeHost) Inventory(h model.Handle) (*model.Inventory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.agents[h]
	if !ok {
		return nil, fmt.Errorf("inventory of %d: %w", h, world.ErrNoSuchAgent)
	}
	return a.Inventory, nil
}

func (f *FakeHost) CreateCorpse(spec world.CorpseSpec) (model.Handle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.corpses = append(f.corpses, spec)
	return model.Handle(0x30000000 + len(f.corpses)), nil
}

func (f *FakeHost) PlayEffect(participantID uint32, asset string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.effects = append(f.effects, fmt.Sprintf("%d:%s", participantID, asset))
	return nil
}

// GiveKit implements world.KitGranter.
func (f *FakeHost) GiveKit(h model.Handle, kit string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.agents[h]
	if !ok {
		return fmt.Errorf("giving kit to %d: %w", h, world.ErrNoSuchAgent)
	}
	a.Kit = kit
	return nil
}

// Agent returns a copy of the agent state.
func (f *FakeHost) Agent(h model.Handle) (FakeAgent, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.agents[h]
	if !ok {
		return FakeAgent{}, false
	}
	return *a, true
}

// Handles returns live agent handles in ascending order.
func (f *FakeHost) Handles() []model.Handle {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Handle, 0, len(f.agents))
	for h := range f.agents {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AgentCount returns the number of live agents.
func (f *FakeHost) AgentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.agents)
}

// Corpses returns created remains in creation order.
func (f *FakeHost) Corpses() []world.CorpseSpec {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]world.CorpseSpec, len(f.corpses))
	copy(out, f.corpses)
	return out
}

// Destroyed returns destroyed handles in destruction order.
func (f *FakeHost) Destroyed() []model.Handle {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Handle, len(f.destroyed))
	copy(out, f.destroyed)
	return out
}

// SpawnedKinds returns the kind of every successful Spawn call in order.
func (f *FakeHost) SpawnedKinds() []model.AgentKind {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.AgentKind, len(f.spawnedKinds))
	copy(out, f.spawnedKinds)
	return out
}

// Effects returns "participantID:asset" for every played effect.
func (f *FakeHost) Effects() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.effects))
	copy(out, f.effects)
	return out
}

// Vanish removes an agent behind the controller's back (host-reference-gone).
func (f *FakeHost) Vanish(h model.Handle) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.agents, h)
}
