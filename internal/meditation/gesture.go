package meditation

import (
	"log/slog"

	"github.com/npratt/hush/internal/events"
)

// Gesture forwards pointer edges to the session. Down only starts an Idle
// session; Up only releases an Active one, so a completed session stays
// complete.
type Gesture struct {
	id      string
	session *Session
	emit    Emitter
	logger  *slog.Logger
}

func newGesture(id string, session *Session, emit Emitter, logger *slog.Logger) *Gesture {
	return &Gesture{id: id, session: session, emit: emit, logger: logger}
}

// PointerDown reports whether the signal started a session.
func (g *Gesture) PointerDown() bool {
	accepted := false
	if g.session.State() == StateIdle {
		accepted = g.session.Start()
	}
	g.record(events.PointerDown, accepted)
	return accepted
}

// PointerUp reports whether the signal released a session.
func (g *Gesture) PointerUp() bool {
	accepted := false
	if g.session.State() == StateActive {
		accepted = g.session.Release()
	}
	g.record(events.PointerUp, accepted)
	return accepted
}

func (g *Gesture) record(action string, accepted bool) {
	state := g.session.State()
	if !accepted {
		g.logger.Debug("pointer ignored", "session_id", g.id, "action", action, "state", state)
	}
	g.emit.Emit(&events.GestureEvent{
		BaseEvent: events.NewSessionEvent(events.EventGesture, events.SourceGesture, g.id),
		Action:    action,
		Accepted:  accepted,
		State:     string(state),
	})
}
