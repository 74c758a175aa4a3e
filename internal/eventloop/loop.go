// Package eventloop runs callbacks serially on one goroutine and provides
// scoped timers that deliver onto it.
//
// Every mutation of a mounted meditation screen happens inside a task on a
// Loop, so the screen's fields need no locks. Timers run their own goroutine
// only to wait; the callback itself is always posted back to the loop.
package eventloop

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// DefaultQueueSize is the task queue capacity used when New is given zero.
const DefaultQueueSize = 64

// ErrStopped is returned when posting to a loop that has stopped.
var ErrStopped = errors.New("event loop stopped")

// Timer is a handle to a scheduled callback.
type Timer interface {
	// Stop cancels the timer. Once Stop returns, the callback will not run
	// again, even if a firing was already queued on the loop.
	Stop()
}

// Scheduler creates timers whose callbacks run serialized with every other
// callback of the same scheduler.
type Scheduler interface {
	Every(d time.Duration, fn func()) Timer
	After(d time.Duration, fn func()) Timer
}

// Loop executes posted tasks one at a time in FIFO order.
type Loop struct {
	tasks    chan func()
	quit     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	logger   *slog.Logger
}

// New creates a Loop. It does nothing until Run is called.
func New(logger *slog.Logger, queueSize int) *Loop {
	if logger == nil {
		logger = slog.Default()
	}
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Loop{
		tasks:  make(chan func(), queueSize),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// Run processes tasks until ctx is cancelled or Stop is called.
// Tasks still queued at that point are discarded.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)
	defer l.Stop()

	for {
		select {
		case <-ctx.Done():
			l.logger.Debug("event loop context done")
			return ctx.Err()
		case <-l.quit:
			return nil
		case fn := <-l.tasks:
			fn()
		}
	}
}

// Post queues fn to run on the loop goroutine. It blocks while the queue is
// full and returns ErrStopped if the loop stops first. Post must not be
// called from inside a task.
func (l *Loop) Post(fn func()) error {
	select {
	case <-l.quit:
		return ErrStopped
	default:
	}

	select {
	case l.tasks <- fn:
		return nil
	case <-l.quit:
		return ErrStopped
	}
}

// Call runs fn on the loop and waits for it to finish.
func (l *Loop) Call(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	if err := l.Post(func() {
		defer close(finished)
		fn()
	}); err != nil {
		return err
	}

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		// The loop may have run the task right before exiting.
		select {
		case <-finished:
			return nil
		default:
			return ErrStopped
		}
	}
}

// Stop asks Run to return. It is safe to call multiple times and from
// inside a task.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.quit)
	})
}

// Done is closed once Run has returned.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Every runs fn on the loop every d until the returned Timer is stopped or
// the loop stops.
func (l *Loop) Every(d time.Duration, fn func()) Timer {
	t := newLoopTimer()
	go func() {
		ticker := time.NewTicker(d)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := l.Post(t.guard(fn)); err != nil {
					return
				}
			case <-t.stop:
				return
			case <-l.quit:
				return
			}
		}
	}()
	return t
}

// After runs fn on the loop once, d from now, unless the returned Timer is
// stopped first.
func (l *Loop) After(d time.Duration, fn func()) Timer {
	t := newLoopTimer()
	go func() {
		timer := time.NewTimer(d)
		defer timer.Stop()

		select {
		case <-timer.C:
			_ = l.Post(t.guard(fn))
		case <-t.stop:
		case <-l.quit:
		}
	}()
	return t
}

// loopTimer is the Timer returned by Every and After.
type loopTimer struct {
	mu      sync.Mutex
	stopped bool
	stop    chan struct{}
}

func newLoopTimer() *loopTimer {
	return &loopTimer{stop: make(chan struct{})}
}

// Stop implements Timer.
func (t *loopTimer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.stopped = true
	close(t.stop)
}

// guard wraps fn so a firing queued before Stop becomes a no-op.
func (t *loopTimer) guard(fn func()) func() {
	return func() {
		t.mu.Lock()
		stopped := t.stopped
		t.mu.Unlock()
		if !stopped {
			fn()
		}
	}
}
