package meditation

import (
	"log/slog"

	"github.com/npratt/hush/internal/eventloop"
	"github.com/npratt/hush/internal/events"
)

// SessionState is the touch lifecycle of one session.
type SessionState string

// Session states.
const (
	StateIdle     SessionState = "idle"
	StateActive   SessionState = "active"
	StateComplete SessionState = "complete"
)

// Emitter receives the events a screen produces. *events.Router satisfies it.
type Emitter interface {
	Emit(events.Event)
}

// Session is the Idle → Active → Complete state machine. The ticker exists
// only while Active: enterActive acquires it and exitActive, called by every
// transition out of Active, releases it.
type Session struct {
	id     string
	sched  eventloop.Scheduler
	driver *Driver
	emit   Emitter
	logger *slog.Logger

	state   SessionState
	elapsed int
	ticker  eventloop.Timer
}

func newSession(id string, sched eventloop.Scheduler, driver *Driver, emit Emitter, logger *slog.Logger) *Session {
	return &Session{
		id:     id,
		sched:  sched,
		driver: driver,
		emit:   emit,
		logger: logger,
		state:  StateIdle,
	}
}

// State returns the current state.
func (s *Session) State() SessionState { return s.state }

// Elapsed returns the whole seconds held in the current session.
func (s *Session) Elapsed() int { return s.elapsed }

// Progress returns Elapsed as a fraction of TargetSeconds.
func (s *Session) Progress() float64 {
	return float64(s.elapsed) / TargetSeconds
}

// Start moves Idle to Active. It reports false from any other state.
func (s *Session) Start() bool {
	if s.state != StateIdle {
		return false
	}
	s.elapsed = 0
	s.transition(StateActive)
	s.enterActive()
	return true
}

// Release moves Active back to Idle, discarding progress. It reports false
// from any other state.
func (s *Session) Release() bool {
	if s.state != StateActive {
		return false
	}
	s.exitActive()
	held := s.elapsed
	s.elapsed = 0
	s.transitionAt(StateIdle, held)
	s.driver.Reset()
	return true
}

// stop releases the ticker without a state change. Used on unmount.
func (s *Session) stop() {
	s.exitActive()
}

func (s *Session) enterActive() {
	s.ticker = s.sched.Every(TickInterval, s.tick)
}

func (s *Session) exitActive() {
	if s.ticker != nil {
		s.ticker.Stop()
		s.ticker = nil
	}
}

func (s *Session) tick() {
	if s.state != StateActive {
		s.logger.Warn("tick outside active session dropped", "state", s.state)
		return
	}

	s.elapsed++
	if s.elapsed >= TargetSeconds {
		s.elapsed = TargetSeconds
		s.exitActive()
	}

	s.emit.Emit(&events.SessionTickEvent{
		BaseEvent: events.NewSessionEvent(events.EventSessionTick, events.SourceSession, s.id),
		Elapsed:   s.elapsed,
		Progress:  s.Progress(),
	})

	if s.elapsed < TargetSeconds {
		s.driver.Progress(s.Progress())
		return
	}

	s.transition(StateComplete)
	s.emit.Emit(&events.SessionCompleteEvent{
		BaseEvent: events.NewSessionEvent(events.EventSessionComplete, events.SourceSession, s.id),
		Elapsed:   s.elapsed,
	})
	s.logger.Info("session complete", "session_id", s.id)
	s.driver.Complete()
}

func (s *Session) transition(to SessionState) {
	s.transitionAt(to, s.elapsed)
}

func (s *Session) transitionAt(to SessionState, elapsed int) {
	from := s.state
	s.state = to
	s.logger.Debug("session state changed", "session_id", s.id, "from", from, "to", to, "elapsed", elapsed)
	s.emit.Emit(&events.SessionStateChangedEvent{
		BaseEvent: events.NewSessionEvent(events.EventSessionStateChanged, events.SourceSession, s.id),
		From:      string(from),
		To:        string(to),
		Elapsed:   elapsed,
	})
}
