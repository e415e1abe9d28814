package corpse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/nightzombies/internal/model"
	"github.com/udisondev/nightzombies/internal/testutil"
	"github.com/udisondev/nightzombies/internal/world"
)

func TestSynthesize(t *testing.T) {
	host := testutil.NewFakeHost()
	loc := model.NewLocation(12, -7, 10, 90)
	h, err := host.Spawn(model.KindMurderer, loc)
	require.NoError(t, err)

	inv, err := host.Inventory(h)
	require.NoError(t, err)
	inv.Main.Add(model.ItemStack{ItemID: "carried", Amount: 5})

	rec := model.NewAgentRecord(h, model.KindMurderer, "Murderer", 1, time.Now())
	s := NewSynthesizer(host, LootTables{
		model.KindMurderer: {{Item: "scrap", Chance: 100, Min: 10, Max: 10}},
	}).WithSeed(1)

	_, err = s.Synthesize(rec)
	require.NoError(t, err)

	corpses := host.Corpses()
	require.Len(t, corpses, 1)
	c := corpses[0]

	assert.Equal(t, loc, c.Location)
	assert.Equal(t, "Murderer", c.DisplayName)
	assert.Equal(t, rec.ID, c.AgentID)
	assert.Equal(t, model.KindMurderer, c.Kind)

	assert.Equal(t, inv.Wear.Capacity(), c.Inventory.Wear.Capacity())
	assert.Equal(t, inv.Belt.Capacity(), c.Inventory.Belt.Capacity())
	assert.Equal(t, inv.Main.Capacity(), c.Inventory.Main.Capacity())
	assert.Zero(t, c.Inventory.Wear.Len(), "carried items replaced by loot")
	assert.Zero(t, c.Inventory.Belt.Len())
	assert.Equal(t, []model.ItemStack{{ItemID: "scrap", Amount: 10}}, c.Inventory.Main.Items(), "refilled from loot table")

	// agent inventory untouched
	assert.Equal(t, 2, inv.Wear.Len())
	assert.Equal(t, 1, inv.Main.Len())
}

func TestSynthesize_RemainsAreIndependent(t *testing.T) {
	host := testutil.NewFakeHost()
	h, err := host.Spawn(model.KindScarecrow, model.NewLocation(1, 1, 10, 0))
	require.NoError(t, err)
	rec := model.NewAgentRecord(h, model.KindScarecrow, "Scarecrow", 1, time.Now())

	s := NewSynthesizer(host, LootTables{})
	_, err = s.Synthesize(rec)
	require.NoError(t, err)

	inv, err := host.Inventory(h)
	require.NoError(t, err)

	remains := host.Corpses()[0].Inventory
	for _, c := range remains.Containers() {
		assert.Zero(t, c.Len(), "no loot slots for kind")
	}
	assert.Equal(t, 1, inv.Belt.Len(), "agent keeps its belt")
	assert.NotSame(t, inv.Belt, remains.Belt)
}

func TestSynthesize_UnknownAgent(t *testing.T) {
	host := testutil.NewFakeHost()
	rec := model.NewAgentRecord(0x20000999, model.KindMurderer, "Murderer", 1, time.Now())

	_, err := NewSynthesizer(host, nil).Synthesize(rec)

	assert.ErrorIs(t, err, world.ErrNoSuchAgent)
	assert.Empty(t, host.Corpses())
}

func TestSynthesize_LootLimitedByCapacity(t *testing.T) {
	host := testutil.NewFakeHost()
	h, err := host.Spawn(model.KindMurderer, model.NewLocation(1, 1, 10, 0))
	require.NoError(t, err)
	rec := model.NewAgentRecord(h, model.KindMurderer, "Murderer", 1, time.Now())

	slots := make([]LootSlot, 40)
	for i := range slots {
		slots[i] = LootSlot{Item: "scrap", Chance: 100, Min: 1, Max: 1}
	}
	s := NewSynthesizer(host, LootTables{model.KindMurderer: slots})
	_, err = s.Synthesize(rec)
	require.NoError(t, err)

	c := host.Corpses()[0]
	assert.True(t, c.Inventory.Main.Full())
	assert.True(t, c.Inventory.Belt.Full(), "overflow goes to the belt")
	want := 40 - c.Inventory.Main.Capacity() - c.Inventory.Belt.Capacity()
	assert.Equal(t, min(want, c.Inventory.Wear.Capacity()), c.Inventory.Wear.Len())
}
