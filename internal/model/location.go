package model

import "math"

// Location представляет координаты в непрерывном игровом мире.
// Value type, передаётся по значению (immutable).
type Location struct {
	X       float64
	Y       float64
	Z       float64 // height
	Heading float64 // yaw in degrees, [0, 360)
}

// NewLocation создаёт Location с указанными координатами.
func NewLocation(x, y, z, heading float64) Location {
	return Location{X: x, Y: y, Z: z, Heading: normalizeHeading(heading)}
}

// WithHeading возвращает новый Location с обновлённым направлением (immutable pattern).
func (l Location) WithHeading(heading float64) Location {
	l.Heading = normalizeHeading(heading)
	return l
}

// WithCoordinates возвращает новый Location с обновлёнными координатами (immutable pattern).
func (l Location) WithCoordinates(x, y, z float64) Location {
	l.X = x
	l.Y = y
	l.Z = z
	return l
}

// WithZ returns the location projected to the given height.
func (l Location) WithZ(z float64) Location {
	l.Z = z
	return l
}

// DistanceSquared возвращает квадрат расстояния до другой точки (без sqrt для производительности).
func (l Location) DistanceSquared(other Location) float64 {
	dx := l.X - other.X
	dy := l.Y - other.Y
	dz := l.Z - other.Z
	return dx*dx + dy*dy + dz*dz
}

// Distance2D returns the horizontal distance, ignoring height.
func (l Location) Distance2D(other Location) float64 {
	return math.Hypot(l.X-other.X, l.Y-other.Y)
}

func normalizeHeading(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}
