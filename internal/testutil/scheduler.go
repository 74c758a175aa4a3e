package testutil

import (
	"sync"
	"time"

	"github.com/npratt/hush/internal/eventloop"
)

// ManualScheduler is an eventloop.Scheduler driven by virtual time. Nothing
// fires until Advance is called; callbacks then run synchronously on the
// caller's goroutine in due order, ties broken by registration order.
type ManualScheduler struct {
	mu      sync.Mutex
	start   time.Time
	elapsed time.Duration
	seq     uint64
	timers  []*manualTimer
}

var _ eventloop.Scheduler = (*ManualScheduler)(nil)

type manualTimer struct {
	s       *ManualScheduler
	due     time.Duration
	period  time.Duration
	seq     uint64
	fn      func()
	stopped bool
}

// NewManualScheduler creates a scheduler whose clock starts at start.
func NewManualScheduler(start time.Time) *ManualScheduler {
	return &ManualScheduler{start: start}
}

// Every registers fn to fire each d of virtual time.
func (s *ManualScheduler) Every(d time.Duration, fn func()) eventloop.Timer {
	return s.add(d, d, fn)
}

// After registers fn to fire once after d of virtual time.
func (s *ManualScheduler) After(d time.Duration, fn func()) eventloop.Timer {
	return s.add(d, 0, fn)
}

func (s *ManualScheduler) add(d, period time.Duration, fn func()) *manualTimer {
	if d <= 0 {
		d = time.Nanosecond
	}
	if period < 0 {
		period = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	t := &manualTimer{s: s, due: s.elapsed + d, period: period, seq: s.seq, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// Stop cancels the timer. A stopped timer never fires again, even if it is
// due within an Advance already in progress.
func (t *manualTimer) Stop() {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	t.stopped = true
	t.s.prune()
}

// prune drops stopped timers. Callers hold s.mu.
func (s *ManualScheduler) prune() {
	live := s.timers[:0]
	for _, t := range s.timers {
		if !t.stopped {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.timers); i++ {
		s.timers[i] = nil
	}
	s.timers = live
}

// next returns the earliest live timer due at or before limit. Callers hold
// s.mu.
func (s *ManualScheduler) next(limit time.Duration) *manualTimer {
	var best *manualTimer
	for _, t := range s.timers {
		if t.stopped || t.due > limit {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

// Advance moves virtual time forward by d, firing every timer that comes due.
// Timers registered by callbacks fire within the same Advance if they fall
// inside the window.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.elapsed + d
	s.mu.Unlock()

	for {
		s.mu.Lock()
		t := s.next(target)
		if t == nil {
			s.elapsed = target
			s.mu.Unlock()
			return
		}
		s.elapsed = t.due
		if t.period > 0 {
			t.due += t.period
		} else {
			t.stopped = true
			s.prune()
		}
		fn := t.fn
		s.mu.Unlock()

		fn()
	}
}

// Elapsed returns the virtual time passed since the scheduler was created.
func (s *ManualScheduler) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed
}

// Now returns the virtual wall clock.
func (s *ManualScheduler) Now() time.Time {
	return s.start.Add(s.Elapsed())
}

// Pending returns the number of timers that can still fire.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}
