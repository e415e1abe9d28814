package world

import "github.com/udisondev/nightzombies/internal/model"

// Region holds the agents inside one grid cell.
// Not thread-safe: guarded by the owning SimWorld lock.
type Region struct {
	cell    Cell
	agents  map[model.Handle]struct{}
	version uint64 // incremented on Add/Remove
}

// NewRegion creates an empty region
func NewRegion(cell Cell) *Region {
	return &Region{
		cell:   cell,
		agents: make(map[model.Handle]struct{}),
	}
}

// Cell returns region cell index
func (r *Region) Cell() Cell {
	return r.cell
}

// Version returns current region version (incremented on Add/Remove).
func (r *Region) Version() uint64 {
	return r.version
}

// Len returns the number of agents in the region.
func (r *Region) Len() int {
	return len(r.agents)
}

// Add puts an agent into the region.
func (r *Region) Add(h model.Handle) {
	r.agents[h] = struct{}{}
	r.version++
}

// Remove takes an agent out of the region.
func (r *Region) Remove(h model.Handle) {
	if _, ok := r.agents[h]; !ok {
		return
	}
	delete(r.agents, h)
	r.version++
}

// ForEach iterates over the region's agents. If fn returns false, iteration stops.
func (r *Region) ForEach(fn func(model.Handle) bool) {
	for h := range r.agents {
		if !fn(h) {
			return
		}
	}
}

// regionIndex buckets agents by cell. Empty regions are dropped.
type regionIndex struct {
	regions map[Cell]*Region
}

func newRegionIndex() *regionIndex {
	return &regionIndex{regions: make(map[Cell]*Region)}
}

func (ix *regionIndex) add(h model.Handle, loc model.Location) {
	cell := CellOf(loc.X, loc.Y)
	r, ok := ix.regions[cell]
	if !ok {
		r = NewRegion(cell)
		ix.regions[cell] = r
	}
	r.Add(h)
}

func (ix *regionIndex) remove(h model.Handle, loc model.Location) {
	cell := CellOf(loc.X, loc.Y)
	r, ok := ix.regions[cell]
	if !ok {
		return
	}
	r.Remove(h)
	if r.Len() == 0 {
		delete(ix.regions, cell)
	}
}

func (ix *regionIndex) move(h model.Handle, from, to model.Location) {
	if CellOf(from.X, from.Y) == CellOf(to.X, to.Y) {
		return
	}
	ix.remove(h, from)
	ix.add(h, to)
}

// near calls fn for every agent in the 3×3 window around loc.
func (ix *regionIndex) near(loc model.Location, fn func(model.Handle) bool) {
	for _, cell := range CellOf(loc.X, loc.Y).Surrounding() {
		r, ok := ix.regions[cell]
		if !ok {
			continue
		}
		stop := false
		r.ForEach(func(h model.Handle) bool {
			if !fn(h) {
				stop = true
				return false
			}
			return true
		})
		if stop {
			return
		}
	}
}
