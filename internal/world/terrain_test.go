package world

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/nightzombies/internal/model"
)

func TestNoiseTerrain_Deterministic(t *testing.T) {
	a := NewNoiseTerrain(7, 2000, 0.3)
	b := NewNoiseTerrain(7, 2000, 0.3)

	for _, p := range [][2]float64{{0, 0}, {123.5, -400}, {-999, 999}} {
		assert.Equal(t, a.Height(p[0], p[1]), b.Height(p[0], p[1]))
	}
}

func TestNoiseTerrain_HeightRange(t *testing.T) {
	tr := NewNoiseTerrain(11, 2000, 0.3)
	for x := -1000.0; x <= 1000; x += 97 {
		for y := -1000.0; y <= 1000; y += 89 {
			h := tr.Height(x, y)
			assert.GreaterOrEqual(t, h, 0.0)
			assert.LessOrEqual(t, h, MaxTerrainHeight)
		}
	}
}

func TestNoiseTerrain_WaterDepth(t *testing.T) {
	tr := NewNoiseTerrain(3, 1000, 0.5)

	assert.Equal(t, 0.0, tr.WaterDepth(model.NewLocation(0, 0, tr.SeaHeight()+1, 0)))
	assert.InDelta(t, 10.0, tr.WaterDepth(model.NewLocation(0, 0, tr.SeaHeight()-10, 0)), 1e-9)
}

func TestNoiseTerrain_BelowGroundIsSolid(t *testing.T) {
	tr := NewNoiseTerrain(5, 1000, 0.3)
	ground := tr.Height(10, 10)

	assert.True(t, tr.InSolid(model.NewLocation(10, 10, ground-20, 0)))
}

func TestBounds_Contains(t *testing.T) {
	b := NewNoiseTerrain(1, 100, 0).Bounds()
	assert.True(t, b.Contains(0, 0))
	assert.True(t, b.Contains(50, -50))
	assert.False(t, b.Contains(50.1, 0))
}
