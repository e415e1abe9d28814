package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCellOf(t *testing.T) {
	tests := []struct {
		x, y float64
		want Cell
	}{
		{0, 0, Cell{0, 0}},
		{63.9, 63.9, Cell{0, 0}},
		{64, 0, Cell{1, 0}},
		{-0.1, -64, Cell{-1, -1}},
		{-64.1, 200, Cell{-2, 3}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CellOf(tt.x, tt.y), "CellOf(%v, %v)", tt.x, tt.y)
	}
}

func TestCell_Center(t *testing.T) {
	x, y := Cell{X: -1, Y: 2}.Center()
	assert.Equal(t, -32.0, x)
	assert.Equal(t, 160.0, y)
	assert.Equal(t, Cell{X: -1, Y: 2}, CellOf(x, y))
}

func TestCell_Surrounding(t *testing.T) {
	window := Cell{X: 5, Y: -5}.Surrounding()

	assert.Contains(t, window, Cell{X: 5, Y: -5})
	assert.Contains(t, window, Cell{X: 4, Y: -6})
	assert.Contains(t, window, Cell{X: 6, Y: -4})

	seen := make(map[Cell]bool)
	for _, c := range window {
		seen[c] = true
	}
	assert.Len(t, seen, 9)
}

func TestCellSizeCoversEngageRange(t *testing.T) {
	assert.GreaterOrEqual(t, CellSize, engageRange)
}
