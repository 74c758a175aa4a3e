package meditation

import (
	"errors"
	"log/slog"
	"time"

	"github.com/npratt/hush/internal/anim"
	"github.com/npratt/hush/internal/eventloop"
	"github.com/npratt/hush/internal/events"
	"github.com/npratt/hush/internal/viewmodel"
)

// Screen lifecycle errors.
var (
	ErrAlreadyMounted = errors.New("screen already mounted")
	ErrUnmounted      = errors.New("screen unmounted")
)

// Screen is one mounted meditation screen: a session, a rotator, a driver
// and the gesture adapter in front of them.
type Screen struct {
	id     string
	sched  eventloop.Scheduler
	emit   Emitter
	now    func() time.Time
	logger *slog.Logger

	driver  *Driver
	session *Session
	rotator *Rotator
	gesture *Gesture

	mounted     bool
	unmounted   bool
	mountedAt   time.Time
	unmountedAt time.Time
}

// ScreenOption configures a Screen.
type ScreenOption func(*Screen)

// WithSessionID tags every event of the screen with id.
func WithSessionID(id string) ScreenOption {
	return func(s *Screen) { s.id = id }
}

// WithClock sets the clock used to compute the hue phase.
func WithClock(now func() time.Time) ScreenOption {
	return func(s *Screen) {
		if now != nil {
			s.now = now
		}
	}
}

// WithScreenLogger sets the screen's logger.
func WithScreenLogger(logger *slog.Logger) ScreenOption {
	return func(s *Screen) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewScreen builds an unmounted screen. Timers are registered on sched,
// targets go to animator and events to emit.
func NewScreen(sched eventloop.Scheduler, animator anim.Animator, emit Emitter, opts ...ScreenOption) *Screen {
	s := &Screen{
		sched:  sched,
		emit:   emit,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.emit == nil {
		s.emit = discard{}
	}

	s.driver = NewDriver(animator)
	s.session = newSession(s.id, sched, s.driver, s.emit, s.logger)
	s.rotator = newRotator(s.id, sched, s.driver, s.emit, s.logger)
	s.gesture = newGesture(s.id, s.session, s.emit, s.logger)
	return s
}

// ID returns the session ID the screen was built with.
func (s *Screen) ID() string { return s.id }

// Mount starts the prompt rotation and the hue sweep.
func (s *Screen) Mount() error {
	if s.unmounted {
		return ErrUnmounted
	}
	if s.mounted {
		return ErrAlreadyMounted
	}
	s.mounted = true
	s.mountedAt = s.now()

	p := s.rotator.Current()
	s.emit.Emit(&events.ScreenMountedEvent{
		BaseEvent:   events.NewSessionEvent(events.EventScreenMounted, events.SourceScreen, s.id),
		PromptIndex: s.rotator.Index(),
		Text:        p.Text,
		Color:       p.Color,
	})
	s.driver.StartHue()
	s.rotator.Start()
	s.logger.Info("screen mounted", "session_id", s.id)
	return nil
}

// Unmount stops every timer the screen owns. After Unmount the screen
// ignores all input. Unmount is idempotent.
func (s *Screen) Unmount() {
	if !s.mounted || s.unmounted {
		s.unmounted = true
		return
	}
	s.unmounted = true
	s.unmountedAt = s.now()

	s.session.stop()
	s.rotator.Stop()
	s.driver.StopHue(s.hueElapsed())

	s.emit.Emit(&events.ScreenUnmountedEvent{
		BaseEvent: events.NewSessionEvent(events.EventScreenUnmounted, events.SourceScreen, s.id),
		State:     string(s.session.State()),
		Elapsed:   s.session.Elapsed(),
	})
	s.logger.Info("screen unmounted", "session_id", s.id, "state", s.session.State())
}

func (s *Screen) live() bool {
	return s.mounted && !s.unmounted
}

// PointerDown forwards a pointer-down edge. It reports whether a session
// started.
func (s *Screen) PointerDown() bool {
	if !s.live() {
		return false
	}
	return s.gesture.PointerDown()
}

// PointerUp forwards a pointer-up edge. It reports whether a session was
// released.
func (s *Screen) PointerUp() bool {
	if !s.live() {
		return false
	}
	return s.gesture.PointerUp()
}

// State returns the session state.
func (s *Screen) State() SessionState { return s.session.State() }

// Elapsed returns the seconds held in the current session.
func (s *Screen) Elapsed() int { return s.session.Elapsed() }

// PromptIndex returns the displayed prompt's position.
func (s *Screen) PromptIndex() int { return s.rotator.Index() }

func (s *Screen) hueElapsed() time.Duration {
	switch {
	case s.mountedAt.IsZero():
		return 0
	case !s.unmountedAt.IsZero():
		return s.unmountedAt.Sub(s.mountedAt)
	default:
		return s.now().Sub(s.mountedAt)
	}
}

// Snapshot returns a copy of the screen's state for the presentation layer.
func (s *Screen) Snapshot() viewmodel.Snapshot {
	p := s.rotator.Current()
	return viewmodel.Snapshot{
		SessionID:   s.id,
		State:       string(s.session.State()),
		Elapsed:     s.session.Elapsed(),
		Progress:    s.session.Progress(),
		PromptIndex: s.rotator.Index(),
		Prompt:      viewmodel.Prompt{Text: p.Text, Color: p.Color},
		Hue:         Hue(s.hueElapsed()),
		Mounted:     s.live(),
		Targets:     s.driver.Targets(),
	}
}

type discard struct{}

func (discard) Emit(events.Event) {}
