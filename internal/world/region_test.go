package world

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/nightzombies/internal/model"
)

func TestRegion_AddRemove(t *testing.T) {
	r := NewRegion(Cell{X: 1, Y: 2})
	assert.Equal(t, Cell{X: 1, Y: 2}, r.Cell())

	r.Add(100)
	r.Add(101)
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, uint64(2), r.Version())

	r.Remove(100)
	r.Remove(100)
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, uint64(3), r.Version(), "removing an absent agent keeps the version")
}

func TestRegion_ForEachEarlyStop(t *testing.T) {
	r := NewRegion(Cell{})
	for i := range 10 {
		r.Add(model.Handle(i + 1))
	}

	visited := 0
	r.ForEach(func(model.Handle) bool {
		visited++
		return visited < 3
	})
	assert.Equal(t, 3, visited)
}

func TestRegionIndex(t *testing.T) {
	ix := newRegionIndex()
	a := model.NewLocation(10, 10, 0, 0)
	b := model.NewLocation(70, 10, 0, 0)
	far := model.NewLocation(1000, 1000, 0, 0)

	ix.add(1, a)
	ix.add(2, b)
	ix.add(3, far)

	collect := func(loc model.Location) []model.Handle {
		var out []model.Handle
		ix.near(loc, func(h model.Handle) bool {
			out = append(out, h)
			return true
		})
		return out
	}

	assert.ElementsMatch(t, []model.Handle{1, 2}, collect(a))
	assert.ElementsMatch(t, []model.Handle{3}, collect(far))

	ix.move(3, far, a)
	assert.ElementsMatch(t, []model.Handle{1, 2, 3}, collect(a))
	assert.Empty(t, collect(far))

	ix.remove(1, a)
	ix.remove(2, b)
	ix.remove(3, a)
	assert.Empty(t, ix.regions, "empty regions are dropped")
}
