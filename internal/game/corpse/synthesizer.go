// Package corpse turns dead or despawned night zombies into lootable remains.
package corpse

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/udisondev/nightzombies/internal/model"
	"github.com/udisondev/nightzombies/internal/world"
)

// Host is the part of the world the synthesizer needs.
type Host interface {
	Position(h model.Handle) (model.Location, error)
	Inventory(h model.Handle) (*model.Inventory, error)
	CreateCorpse(spec world.CorpseSpec) (model.Handle, error)
}

// Synthesizer creates remains for agents.
type Synthesizer struct {
	host Host

	mu     sync.Mutex
	tables LootTables
	rng    *rand.Rand
}

// NewSynthesizer creates a synthesizer. nil tables → defaults.
func NewSynthesizer(host Host, tables LootTables) *Synthesizer {
	if tables == nil {
		tables = DefaultLootTables()
	}
	return &Synthesizer{
		host:   host,
		tables: tables,
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// WithSeed makes loot rolls deterministic (tests).
func (s *Synthesizer) WithSeed(seed uint64) *Synthesizer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng = rand.New(rand.NewPCG(seed, seed))
	return s
}

// SetTables replaces the loot tables.
func (s *Synthesizer) SetTables(tables LootTables) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables = tables
}

func isCosmetic(it model.ItemStack) bool { return it.Cosmetic }

// Synthesize creates remains at the agent's current position. The containers
// keep the agent's capacities but hold only the kind's rolled loot.
func (s *Synthesizer) Synthesize(rec *model.AgentRecord) (model.Handle, error) {
	loc, err := s.host.Position(rec.Handle)
	if err != nil {
		return 0, fmt.Errorf("synthesizing corpse of %s: %w", rec.DisplayName, err)
	}
	inv, err := s.host.Inventory(rec.Handle)
	if err != nil {
		return 0, fmt.Errorf("synthesizing corpse of %s: %w", rec.DisplayName, err)
	}

	remains := &model.Inventory{
		Wear: inv.Wear.CloneWithout(isCosmetic),
		Belt: inv.Belt.CloneWithout(isCosmetic),
		Main: inv.Main.CloneWithout(isCosmetic),
	}
	for _, c := range remains.Containers() {
		c.Clear()
	}

	s.mu.Lock()
	loot := Roll(s.tables[rec.Kind], s.rng)
	s.mu.Unlock()

	placed := fill(remains, loot)

	h, err := s.host.CreateCorpse(world.CorpseSpec{
		Location:    loc,
		DisplayName: rec.DisplayName,
		AgentID:     rec.ID,
		Kind:        rec.Kind,
		Inventory:   remains,
	})
	if err != nil {
		return 0, fmt.Errorf("creating corpse of %s: %w", rec.DisplayName, err)
	}

	slog.Debug("corpse created",
		"agent", rec.ID,
		"kind", rec.Kind,
		"corpse", h,
		"loot", placed,
		"rolled", len(loot))
	return h, nil
}

// fill places loot into main, then belt, then wear. Returns the number of
// stacks placed; the rest does not fit.
func fill(inv *model.Inventory, loot []model.ItemStack) int {
	order := []*model.Container{inv.Main, inv.Belt, inv.Wear}
	placed := 0
	for _, stack := range loot {
		for _, c := range order {
			if c.Add(stack) {
				placed++
				break
			}
		}
	}
	return placed
}
