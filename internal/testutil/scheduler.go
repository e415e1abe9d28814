package testutil

import (
	"sort"
	"sync"
	"time"

	"github.com/udisondev/nightzombies/internal/gametime"
)

// ManualScheduler is a gametime.Scheduler driven by virtual time.
// Callbacks only run from Advance/RunAll, on the caller's goroutine.
type ManualScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	seq    uint64
	timers []*manualTimer
}

type manualTimer struct {
	s       *ManualScheduler
	at      time.Duration
	seq     uint64
	fn      func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// NewManualScheduler creates a scheduler at virtual time zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// AfterFunc implements gametime.Scheduler.
func (s *ManualScheduler) AfterFunc(d time.Duration, fn func()) gametime.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &manualTimer{s: s, at: s.now + d, seq: s.seq, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// Now returns the virtual time.
func (s *ManualScheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Pending returns the number of timers that have neither fired nor been stopped.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// Advance moves virtual time forward by d, firing every due timer in order.
// Timers scheduled by fired callbacks also run if they fall within d.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	deadline := s.now + d
	s.mu.Unlock()

	for {
		t := s.nextDue(deadline)
		if t == nil {
			break
		}
		t.fn()
	}

	s.mu.Lock()
	if s.now < deadline {
		s.now = deadline
	}
	s.mu.Unlock()
}

// RunAll fires timers until none are pending. Returns the number fired.
func (s *ManualScheduler) RunAll() int {
	fired := 0
	for {
		t := s.nextDue(-1)
		if t == nil {
			return fired
		}
		t.fn()
		fired++
	}
}

// nextDue pops the earliest live timer due at or before deadline (any when negative).
func (s *ManualScheduler) nextDue(deadline time.Duration) *manualTimer {
	s.mu.Lock()
	defer s.mu.Unlock()

	live := s.timers[:0]
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	s.timers = live
	if len(live) == 0 {
		return nil
	}

	sort.Slice(live, func(i, j int) bool {
		if live[i].at != live[j].at {
			return live[i].at < live[j].at
		}
		return live[i].seq < live[j].seq
	})
	t := live[0]
	if deadline >= 0 && t.at > deadline {
		return nil
	}
	t.fired = true
	if t.at > s.now {
		s.now = t.at
	}
	return t
}
