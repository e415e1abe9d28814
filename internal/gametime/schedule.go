// Package gametime models the simulated day/night cycle: the active window
// schedule, the minute/day clock and the timer abstraction used by batches.
package gametime

import "math"

// HoursPerDay is the length of one simulated day.
const HoursPerDay = 24.0

// Schedule is the circular [SpawnTime, DestroyTime) time-of-day window.
type Schedule struct {
	SpawnTime   float64
	DestroyTime float64
}

// Active reports whether now lies inside the window.
// SpawnTime is inclusive, DestroyTime exclusive. When SpawnTime > DestroyTime
// the window wraps around midnight. Equal bounds describe an empty window.
func (s Schedule) Active(now float64) bool {
	now = NormalizeHour(now)
	switch {
	case s.SpawnTime == s.DestroyTime:
		return false
	case s.SpawnTime < s.DestroyTime:
		return now >= s.SpawnTime && now < s.DestroyTime
	default:
		return now >= s.SpawnTime || now < s.DestroyTime
	}
}

// NormalizeHour wraps h into [0, 24).
func NormalizeHour(h float64) float64 {
	h = math.Mod(h, HoursPerDay)
	if h < 0 {
		h += HoursPerDay
	}
	return h
}

// ValidHour reports whether h is a usable time-of-day value.
func ValidHour(h float64) bool {
	return !math.IsNaN(h) && h >= 0 && h < HoursPerDay
}
