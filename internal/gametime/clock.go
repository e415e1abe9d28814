package gametime

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

const (
	MinutesPerHour = 60
	MinutesPerDay  = 1440
)

// Listener receives clock events. TimeTick fires on every simulated minute,
// DayBoundary when the clock crosses midnight (before the tick of 00:00).
type Listener interface {
	TimeTick()
	DayBoundary()
}

// Clock is the simulated time-of-day driver. One real tick advances the clock
// by minutesPerTick simulated minutes, each one delivered to listeners.
type Clock struct {
	interval       time.Duration
	minutesPerTick int

	minute atomic.Uint64 // simulated minutes since day 0, 00:00

	mu        sync.Mutex
	listeners map[uint64]Listener
	nextID    uint64

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewClock creates a clock starting at startHour of day 0.
func NewClock(startHour float64, interval time.Duration, minutesPerTick int) *Clock {
	if interval <= 0 {
		interval = time.Second
	}
	if minutesPerTick <= 0 {
		minutesPerTick = 1
	}
	c := &Clock{
		interval:       interval,
		minutesPerTick: minutesPerTick,
		listeners:      make(map[uint64]Listener),
		stopCh:         make(chan struct{}),
	}
	c.minute.Store(uint64(NormalizeHour(startHour) * MinutesPerHour))
	return c
}

// Subscribe registers l and returns a function that removes it.
func (c *Clock) Subscribe(l Listener) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	c.listeners[id] = l

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
	}
}

// Hour returns the current time of day in [0, 24).
func (c *Clock) Hour() float64 {
	m := c.minute.Load() % MinutesPerDay
	return float64(m) / MinutesPerHour
}

// Day returns the number of completed simulated days.
func (c *Clock) Day() uint64 {
	return c.minute.Load() / MinutesPerDay
}

// String formats the clock as "Day N, HH:MM".
func (c *Clock) String() string {
	m := c.minute.Load()
	return fmt.Sprintf("Day %d, %02d:%02d", m/MinutesPerDay+1, (m%MinutesPerDay)/MinutesPerHour, m%MinutesPerHour)
}

// Step advances the clock by one simulated minute and notifies listeners.
func (c *Clock) Step() {
	m := c.minute.Add(1)
	crossedMidnight := m%MinutesPerDay == 0

	for _, l := range c.snapshot() {
		if crossedMidnight {
			l.DayBoundary()
		}
		l.TimeTick()
	}
}

func (c *Clock) snapshot() []Listener {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Listener, 0, len(c.listeners))
	for _, l := range c.listeners {
		out = append(out, l)
	}
	return out
}

// Start runs the clock (blocks until context is canceled or Stop is called).
func (c *Clock) Start(ctx context.Context) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	slog.Info("game clock started",
		"interval", c.interval,
		"minutesPerTick", c.minutesPerTick,
		"time", c.String())

	for {
		select {
		case <-ctx.Done():
			slog.Info("game clock stopping", "time", c.String())
			return ctx.Err()

		case <-c.stopCh:
			slog.Info("game clock stopped", "time", c.String())
			return nil

		case <-ticker.C:
			for range c.minutesPerTick {
				c.Step()
			}
		}
	}
}

// Stop stops the clock loop. Safe to call more than once.
func (c *Clock) Stop() {
	c.stopOnce.Do(func() { close(c.stopCh) })
}
