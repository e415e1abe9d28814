// Package placement searches for valid spawn coordinates in the world.
//
// The search is a best-effort heuristic with a small attempt budget: a
// caller must tolerate failures, signalled by the sentinel location.
package placement

import (
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/udisondev/nightzombies/internal/config"
	"github.com/udisondev/nightzombies/internal/model"
	"github.com/udisondev/nightzombies/internal/world"
)

// Finder finds spawn positions under obstruction, water and distance constraints.
type Finder struct {
	terrain      world.Terrain
	participants world.ParticipantSource

	mu  sync.Mutex
	cfg config.Placement
	rng *rand.Rand
}

// NewFinder creates a finder. participants may be nil when anchored spawning is never used.
func NewFinder(terrain world.Terrain, participants world.ParticipantSource, cfg config.Placement) *Finder {
	return &Finder{
		terrain:      terrain,
		participants: participants,
		cfg:          cfg,
		rng:          rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// WithSeed makes the finder deterministic (tests).
func (f *Finder) WithSeed(seed uint64) *Finder {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rng = rand.New(rand.NewPCG(seed, seed))
	return f
}

// Configure replaces the placement settings.
func (f *Finder) Configure(cfg config.Placement) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cfg = cfg
}

// Sentinel returns the "placement failed" location: world origin at ground height.
func (f *Finder) Sentinel() model.Location {
	return model.NewLocation(0, 0, f.terrain.Height(0, 0), 0)
}

// IsSentinel reports whether loc is the failure sentinel.
func IsSentinel(loc model.Location) bool {
	return loc.X == 0 && loc.Y == 0
}

// FindSpawnPosition returns a valid position near anchor (when given) or
// anywhere in the world. Returns the sentinel when every attempt fails.
func (f *Finder) FindSpawnPosition(anchor *model.Location, minDistance, maxDistance float64) model.Location {
	f.mu.Lock()
	defer f.mu.Unlock()

	if anchor != nil {
		if loc, ok := f.nearAnchor(*anchor, minDistance, maxDistance); ok {
			return loc
		}
		slog.Debug("anchored placement exhausted, falling back to world search",
			"anchorX", anchor.X, "anchorY", anchor.Y,
			"attempts", f.cfg.AnchorAttempts)
	}

	if loc, ok := f.anywhere(); ok {
		return loc
	}

	slog.Debug("placement failed", "attempts", f.cfg.WorldAttempts)
	return f.Sentinel()
}

func (f *Finder) nearAnchor(anchor model.Location, minDistance, maxDistance float64) (model.Location, bool) {
	b := f.terrain.Bounds()
	for range f.cfg.AnchorAttempts {
		x := anchor.X + (f.rng.Float64()*2-1)*maxDistance
		y := anchor.Y + (f.rng.Float64()*2-1)*maxDistance
		if !b.Contains(x, y) {
			continue
		}
		loc := f.project(x, y)
		if loc.Distance2D(anchor) < minDistance {
			continue
		}
		if f.acceptable(loc) {
			return loc, true
		}
	}
	return model.Location{}, false
}

func (f *Finder) anywhere() (model.Location, bool) {
	b := f.terrain.Bounds()
	for range f.cfg.WorldAttempts {
		x := b.MinX + f.rng.Float64()*(b.MaxX-b.MinX)
		y := b.MinY + f.rng.Float64()*(b.MaxY-b.MinY)
		loc := f.project(x, y)
		if IsSentinel(loc) {
			continue
		}
		if f.acceptable(loc) {
			return loc, true
		}
	}
	return model.Location{}, false
}

func (f *Finder) project(x, y float64) model.Location {
	return model.NewLocation(x, y, f.terrain.Height(x, y), f.rng.Float64()*360)
}

func (f *Finder) acceptable(loc model.Location) bool {
	if f.terrain.InSolid(loc) {
		return false
	}
	return f.terrain.WaterDepth(loc) <= f.cfg.MaxWaterDepth
}

// AnchorCandidate picks a random connected participant to spawn near.
// Returns false when near-player spawning is disabled, too few participants
// are online, or every participant is flying or concealed.
func (f *Finder) AnchorCandidate() (*model.Location, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.cfg.NearPlayers || f.participants == nil {
		return nil, false
	}

	online := f.participants.Participants()
	if len(online) < f.cfg.MinPlayers {
		return nil, false
	}

	pool := make([]model.Participant, 0, len(online))
	for _, p := range online {
		if p.Flying || p.Concealed {
			continue
		}
		pool = append(pool, p)
	}
	if len(pool) == 0 {
		return nil, false
	}

	loc := pool[f.rng.IntN(len(pool))].Location
	return &loc, true
}
