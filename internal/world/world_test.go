package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/nightzombies/internal/model"
)

func newTestWorld(t *testing.T, participants int) *SimWorld {
	t.Helper()
	return NewSimWorld(NewNoiseTerrain(42, 1000, 0.3), participants)
}

func TestSimWorld_SpawnAndDestroy(t *testing.T) {
	w := newTestWorld(t, 0)

	h, err := w.Spawn(model.KindMurderer, model.NewLocation(10, 10, 5, 0))
	require.NoError(t, err)
	assert.True(t, IsAgentHandle(h))
	assert.True(t, w.Exists(h))
	assert.Equal(t, 1, w.AgentCount())

	inv, err := w.Inventory(h)
	require.NoError(t, err)
	assert.Equal(t, 2, inv.Wear.Len())

	w.Destroy(h)
	assert.False(t, w.Exists(h))

	_, err = w.Position(h)
	assert.ErrorIs(t, err, ErrNoSuchAgent)
}

func TestSimWorld_SpawnOutOfBounds(t *testing.T) {
	w := newTestWorld(t, 0)

	_, err := w.Spawn(model.KindScarecrow, model.NewLocation(5000, 0, 0, 0))
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestSimWorld_HealAndRelocate(t *testing.T) {
	w := newTestWorld(t, 0)
	h, err := w.Spawn(model.KindMurderer, model.NewLocation(0, 0, 0, 0))
	require.NoError(t, err)

	require.NoError(t, w.Heal(h, 150))
	hp, ok := w.Health(h)
	require.True(t, ok)
	assert.Equal(t, 150.0, hp)

	dest := model.NewLocation(100, -50, 12, 90)
	require.NoError(t, w.Relocate(h, dest))
	pos, err := w.Position(h)
	require.NoError(t, err)
	assert.Equal(t, dest, pos)

	assert.ErrorIs(t, w.Relocate(h, model.NewLocation(0, 9999, 0, 0)), ErrOutOfBounds)
	assert.ErrorIs(t, w.Heal(model.Handle(1), 10), ErrNoSuchAgent)
}

func TestSimWorld_DamageUnhandledDeathDestroys(t *testing.T) {
	w := newTestWorld(t, 0)
	h, _ := w.Spawn(model.KindMurderer, model.NewLocation(0, 0, 0, 0))
	require.NoError(t, w.Heal(h, 50))

	var causes []DeathCause
	w.SetDeathHandler(func(got model.Handle, cause DeathCause) DeathOutcome {
		assert.Equal(t, h, got)
		causes = append(causes, cause)
		return DeathOutcome{}
	})

	w.Damage(h, 20, DeathPlayer)
	assert.True(t, w.Exists(h), "still alive after partial damage")

	w.Damage(h, 40, DeathPlayer)
	assert.False(t, w.Exists(h))
	assert.Equal(t, []DeathCause{DeathPlayer}, causes)
}

func TestSimWorld_DamageHandledDeathKeepsAgent(t *testing.T) {
	w := newTestWorld(t, 0)
	h, _ := w.Spawn(model.KindScarecrow, model.NewLocation(0, 0, 0, 0))

	w.SetDeathHandler(func(got model.Handle, cause DeathCause) DeathOutcome {
		require.NoError(t, w.Heal(got, 200))
		return DeathOutcome{Handled: true}
	})

	w.Damage(h, 1000, DeathEnvironment)
	assert.True(t, w.Exists(h))
	hp, _ := w.Health(h)
	assert.Equal(t, 200.0, hp)
}

func TestSimWorld_GiveKit(t *testing.T) {
	w := newTestWorld(t, 0)
	h, _ := w.Spawn(model.KindScarecrow, model.NewLocation(0, 0, 0, 0))

	require.NoError(t, w.GiveKit(h, "scarecrow_basic"))
	inv, _ := w.Inventory(h)
	assert.Equal(t, []model.ItemStack{{ItemID: "pitchfork", Amount: 1}}, inv.Belt.Items())

	assert.Error(t, w.GiveKit(h, "nope"))
}

func TestSimWorld_SimulateRespectsTargetFilter(t *testing.T) {
	w := newTestWorld(t, 1)
	p := w.Participants()[0]

	h, err := w.Spawn(model.KindMurderer, p.Location)
	require.NoError(t, err)
	require.NoError(t, w.Heal(h, 1e9))

	w.SetTargetFilter(func(model.AgentKind, model.Victim) bool { return false })
	w.Simulate()
	hp, _ := w.Health(h)
	assert.Equal(t, 1e9, hp, "denied targets never engage")
}

func TestSimWorld_PlayEffect(t *testing.T) {
	w := newTestWorld(t, 2)
	for _, p := range w.Participants() {
		require.NoError(t, w.PlayEffect(p.ID, "spooky.asset"))
	}
	assert.Equal(t, 2, w.EffectsPlayed())
	assert.Error(t, w.PlayEffect(7, "spooky.asset"))
}

func TestSimWorld_CreateCorpse(t *testing.T) {
	w := newTestWorld(t, 0)
	h, err := w.CreateCorpse(CorpseSpec{DisplayName: "Murderer", Kind: model.KindMurderer})
	require.NoError(t, err)
	assert.NotZero(t, h)
	require.Len(t, w.Corpses(), 1)
	assert.Equal(t, "Murderer", w.Corpses()[0].DisplayName)
}

func TestSimWorld_SimulateEngagesNearbyAgents(t *testing.T) {
	w := newTestWorld(t, 1)
	p := w.Participants()[0]

	// 5×5 lattice, 20 units apart: wherever the participant wanders this
	// minute, some agent stays inside the engage range.
	spawned := 0
	for dx := -40.0; dx <= 40; dx += 20 {
		for dy := -40.0; dy <= 40; dy += 20 {
			if _, err := w.Spawn(model.KindScarecrow, p.Location.WithCoordinates(p.Location.X+dx, p.Location.Y+dy, p.Location.Z)); err == nil {
				spawned++
			}
		}
	}
	require.Positive(t, spawned)

	var deaths int
	w.SetDeathHandler(func(model.Handle, DeathCause) DeathOutcome {
		deaths++
		return DeathOutcome{}
	})
	w.Simulate()

	assert.Positive(t, deaths)
	assert.Equal(t, spawned-deaths, w.AgentCount(), "unhandled deaths are removed")
}
