package world

import (
	"math/rand/v2"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/udisondev/nightzombies/internal/model"
)

const (
	// MaxTerrainHeight is the height of a noise value of 1.0.
	MaxTerrainHeight = 120.0

	// rockThreshold marks rock formations: solid geometry agents cannot stand in.
	rockThreshold = 0.74
)

// NoiseTerrain is a procedurally generated heightmap with a flat sea.
// Thread-safe: immutable after construction.
type NoiseTerrain struct {
	bounds    Bounds
	seaHeight float64
	elevation opensimplex.Noise
	rock      opensimplex.Noise
	frequency float64
}

// NewNoiseTerrain creates a square world of the given side length centred on
// the origin. seaLevel is a fraction of MaxTerrainHeight.
func NewNoiseTerrain(seed int64, size, seaLevel float64) *NoiseTerrain {
	if seed == 0 {
		seed = rand.Int64()
	}
	half := size / 2
	return &NoiseTerrain{
		bounds:    Bounds{MinX: -half, MinY: -half, MaxX: half, MaxY: half},
		seaHeight: seaLevel * MaxTerrainHeight,
		elevation: opensimplex.NewNormalized(seed),
		rock:      opensimplex.NewNormalized(seed + 1),
		frequency: 4 / size,
	}
}

// Bounds returns the world rectangle.
func (t *NoiseTerrain) Bounds() Bounds {
	return t.bounds
}

// SeaHeight returns the water surface height.
func (t *NoiseTerrain) SeaHeight() float64 {
	return t.seaHeight
}

// Height returns the ground height at (x, y).
func (t *NoiseTerrain) Height(x, y float64) float64 {
	return octaveNoise(t.elevation, x, y, 4, t.frequency, 0.5) * MaxTerrainHeight
}

// InSolid reports whether loc is inside a rock formation or below ground.
func (t *NoiseTerrain) InSolid(loc model.Location) bool {
	if loc.Z < t.Height(loc.X, loc.Y)-1 {
		return true
	}
	return t.rock.Eval2(loc.X*t.frequency*3, loc.Y*t.frequency*3) > rockThreshold
}

// WaterDepth returns how deep loc is under the sea surface (0 when dry).
func (t *NoiseTerrain) WaterDepth(loc model.Location) float64 {
	depth := t.seaHeight - loc.Z
	if depth < 0 {
		return 0
	}
	return depth
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for range octaves {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
