package gametime

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingListener struct {
	ticks int
	days  int
	order []string
}

func (l *countingListener) TimeTick() {
	l.ticks++
	l.order = append(l.order, "tick")
}

func (l *countingListener) DayBoundary() {
	l.days++
	l.order = append(l.order, "day")
}

func TestClock_StepAdvancesMinute(t *testing.T) {
	c := NewClock(19.75, time.Second, 1)
	assert.InDelta(t, 19.75, c.Hour(), 1e-9)

	c.Step()
	assert.InDelta(t, 19.0+46.0/60.0, c.Hour(), 1e-9)
	assert.Equal(t, "Day 1, 19:46", c.String())
}

func TestClock_DayBoundaryBeforeMidnightTick(t *testing.T) {
	c := NewClock(23.0+58.0/60.0, time.Second, 1)
	l := &countingListener{}
	c.Subscribe(l)

	c.Step() // 23:59
	c.Step() // 00:00 next day

	assert.Equal(t, 2, l.ticks)
	assert.Equal(t, 1, l.days)
	assert.Equal(t, []string{"tick", "day", "tick"}, l.order)
	assert.Equal(t, uint64(1), c.Day())
	assert.InDelta(t, 0, c.Hour(), 1e-9)
}

func TestClock_Unsubscribe(t *testing.T) {
	c := NewClock(0, time.Second, 1)
	l := &countingListener{}
	unsubscribe := c.Subscribe(l)

	c.Step()
	unsubscribe()
	c.Step()

	assert.Equal(t, 1, l.ticks)
}

func TestClock_StartStop(t *testing.T) {
	c := NewClock(12, 5*time.Millisecond, 3)

	done := make(chan error, 1)
	go func() { done <- c.Start(context.Background()) }()

	require.Eventually(t, func() bool { return c.Hour() > 12 }, time.Second, 5*time.Millisecond)

	c.Stop()
	c.Stop() // idempotent

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("clock did not stop")
	}
}

func TestClock_StartContextCanceled(t *testing.T) {
	c := NewClock(12, time.Hour, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Start(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
