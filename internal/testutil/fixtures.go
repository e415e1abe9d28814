package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/udisondev/nightzombies/internal/gametime"
)

// FixedClock is a settable time-of-day source.
type FixedClock struct {
	mu   sync.Mutex
	hour float64
}

// NewFixedClock creates a clock stopped at hour.
func NewFixedClock(hour float64) *FixedClock {
	return &FixedClock{hour: hour}
}

// Hour returns the current time of day.
func (c *FixedClock) Hour() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hour
}

// Set moves the clock to hour.
func (c *FixedClock) Set(hour float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hour = gametime.NormalizeHour(hour)
}

// WallClock returns a controllable time.Now replacement.
type WallClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewWallClock starts at a fixed instant.
func NewWallClock() *WallClock {
	return &WallClock{now: time.Date(2026, 10, 31, 20, 0, 0, 0, time.UTC)}
}

// Now returns the current instant.
func (c *WallClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the instant forward.
func (c *WallClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// MemoryCycleStore — in-memory world.CycleStore.
type MemoryCycleStore struct {
	mu      sync.Mutex
	Days    int
	LoadErr error
	SaveErr error
	Saves   int
}

func (s *MemoryCycleStore) LoadDaysSinceSpawn(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.LoadErr != nil {
		return 0, s.LoadErr
	}
	return s.Days, nil
}

func (s *MemoryCycleStore) SaveDaysSinceSpawn(ctx context.Context, days int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.Days = days
	s.Saves++
	return nil
}

// Saved returns the last persisted value.
func (s *MemoryCycleStore) Saved() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Days
}

// RecordingBroadcaster collects broadcast messages.
type RecordingBroadcaster struct {
	mu       sync.Mutex
	messages []string
}

func (b *RecordingBroadcaster) Broadcast(msg string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages = append(b.messages, msg)
}

// Messages returns everything broadcast so far.
func (b *RecordingBroadcaster) Messages() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.messages))
	copy(out, b.messages)
	return out
}
