package world

import "math"

// CellSize is the edge of one grid cell in world units. It is not smaller than
// the engage range, so a 3×3 window around a cell covers every engagement.
const CellSize = 64.0

// Cell is a grid cell index.
type Cell struct {
	X, Y int32
}

// CellOf converts world coordinates to the containing cell.
func CellOf(x, y float64) Cell {
	return Cell{
		X: int32(math.Floor(x / CellSize)),
		Y: int32(math.Floor(y / CellSize)),
	}
}

// Center returns the world coordinates of the cell centre.
func (c Cell) Center() (x, y float64) {
	return (float64(c.X) + 0.5) * CellSize, (float64(c.Y) + 0.5) * CellSize
}

// Surrounding returns the 3×3 window centred on c (c included).
func (c Cell) Surrounding() [9]Cell {
	var out [9]Cell
	i := 0
	for dy := int32(-1); dy <= 1; dy++ {
		for dx := int32(-1); dx <= 1; dx++ {
			out[i] = Cell{X: c.X + dx, Y: c.Y + dy}
			i++
		}
	}
	return out
}
