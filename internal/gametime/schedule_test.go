package gametime

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchedule_Active(t *testing.T) {
	tests := []struct {
		name     string
		schedule Schedule
		now      float64
		want     bool
	}{
		// non-wrapping: 8.0 .. 17.5
		{"plain before", Schedule{8, 17.5}, 7.99, false},
		{"plain at spawn", Schedule{8, 17.5}, 8, true},
		{"plain inside", Schedule{8, 17.5}, 12, true},
		{"plain at destroy", Schedule{8, 17.5}, 17.5, false},
		{"plain after", Schedule{8, 17.5}, 23, false},

		// wrapping: 19.8 .. 7.3
		{"wrap at spawn", Schedule{19.8, 7.3}, 19.8, true},
		{"wrap evening", Schedule{19.8, 7.3}, 20, true},
		{"wrap midnight", Schedule{19.8, 7.3}, 0, true},
		{"wrap early morning", Schedule{19.8, 7.3}, 7.29, true},
		{"wrap at destroy", Schedule{19.8, 7.3}, 7.3, false},
		{"wrap noon", Schedule{19.8, 7.3}, 12, false},
		{"wrap just before spawn", Schedule{19.8, 7.3}, 19.79, false},

		{"empty window", Schedule{6, 6}, 6, false},
		{"hour wraps past 24", Schedule{19.8, 7.3}, 24.5, true},
		{"negative hour wraps", Schedule{19.8, 7.3}, -2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.schedule.Active(tt.now))
		})
	}
}

func TestValidHour(t *testing.T) {
	assert.True(t, ValidHour(0))
	assert.True(t, ValidHour(23.99))
	assert.False(t, ValidHour(24))
	assert.False(t, ValidHour(-0.1))
	assert.False(t, ValidHour(math.NaN()))
}
