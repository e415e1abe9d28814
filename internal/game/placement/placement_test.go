package placement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/nightzombies/internal/config"
	"github.com/udisondev/nightzombies/internal/model"
	"github.com/udisondev/nightzombies/internal/testutil"
)

func testPlacementConfig() config.Placement {
	cfg := config.DefaultNightZombies().Placement
	cfg.NearPlayers = true
	cfg.MinPlayers = 1
	return cfg
}

func TestFindSpawnPosition_Anywhere(t *testing.T) {
	host := testutil.NewFakeHost()
	f := NewFinder(host, host, testPlacementConfig()).WithSeed(1)

	for range 50 {
		loc := f.FindSpawnPosition(nil, 0, 0)
		require.False(t, IsSentinel(loc))
		assert.True(t, host.Bounds().Contains(loc.X, loc.Y))
		assert.Equal(t, host.Ground, loc.Z, "projected onto ground")
	}
}

func TestFindSpawnPosition_NearAnchorRespectsBand(t *testing.T) {
	host := testutil.NewFakeHost()
	f := NewFinder(host, host, testPlacementConfig()).WithSeed(2)
	anchor := model.NewLocation(100, -100, 10, 0)

	for range 100 {
		loc := f.FindSpawnPosition(&anchor, 40, 120)
		require.False(t, IsSentinel(loc))
		if loc.Distance2D(anchor) < 40 {
			// only a world-search fallback may land inside the band
			continue
		}
		assert.LessOrEqual(t, loc.X, anchor.X+120)
		assert.GreaterOrEqual(t, loc.X, anchor.X-120)
		assert.LessOrEqual(t, loc.Y, anchor.Y+120)
		assert.GreaterOrEqual(t, loc.Y, anchor.Y-120)
	}
}

func TestFindSpawnPosition_RejectsSolidAndDeepWater(t *testing.T) {
	host := testutil.NewFakeHost()
	host.Solid = func(loc model.Location) bool { return loc.X < 0 }
	host.Water = func(loc model.Location) float64 {
		if loc.Y < 0 {
			return 5
		}
		return 0.2
	}
	f := NewFinder(host, host, testPlacementConfig()).WithSeed(3)

	found := 0
	for range 200 {
		loc := f.FindSpawnPosition(nil, 0, 0)
		if IsSentinel(loc) {
			continue
		}
		found++
		assert.GreaterOrEqual(t, loc.X, 0.0, "solid half rejected")
		assert.GreaterOrEqual(t, loc.Y, 0.0, "deep water half rejected")
	}
	assert.Positive(t, found)
}

func TestFindSpawnPosition_NoValidPointReturnsSentinel(t *testing.T) {
	host := testutil.NewFakeHost()
	host.Solid = func(model.Location) bool { return true }
	f := NewFinder(host, host, testPlacementConfig()).WithSeed(4)
	anchor := model.NewLocation(10, 10, 10, 0)

	loc := f.FindSpawnPosition(&anchor, 10, 50)

	assert.True(t, IsSentinel(loc))
	assert.Equal(t, f.Sentinel(), loc)
	assert.Equal(t, host.Ground, loc.Z)
}

func TestAnchorCandidate(t *testing.T) {
	host := testutil.NewFakeHost()
	cfg := testPlacementConfig()
	cfg.MinPlayers = 2
	f := NewFinder(host, host, cfg).WithSeed(5)

	host.Players = []model.Participant{{ID: 1, Location: model.NewLocation(1, 1, 10, 0)}}
	_, ok := f.AnchorCandidate()
	assert.False(t, ok, "below participant threshold")

	host.Players = append(host.Players,
		model.Participant{ID: 2, Location: model.NewLocation(2, 2, 10, 0), Flying: true},
		model.Participant{ID: 3, Location: model.NewLocation(3, 3, 10, 0), Concealed: true},
	)
	for range 20 {
		loc, ok := f.AnchorCandidate()
		require.True(t, ok)
		assert.Equal(t, 1.0, loc.X, "flying and concealed participants are excluded")
	}

	host.Players = host.Players[1:]
	_, ok = f.AnchorCandidate()
	assert.False(t, ok, "everyone excluded")
}

func TestAnchorCandidate_Disabled(t *testing.T) {
	host := testutil.NewFakeHost()
	host.Players = []model.Participant{{ID: 1}, {ID: 2}}
	cfg := testPlacementConfig()
	cfg.NearPlayers = false
	f := NewFinder(host, host, cfg)

	_, ok := f.AnchorCandidate()
	assert.False(t, ok)

	cfg.NearPlayers = true
	f.Configure(cfg)
	_, ok = f.AnchorCandidate()
	assert.True(t, ok)
}
