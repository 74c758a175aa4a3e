package testutil

import (
	"sync"

	"github.com/npratt/hush/internal/anim"
	"github.com/npratt/hush/internal/events"
)

// Target is one recorded SetTarget call.
type Target struct {
	Param anim.Param
	Value float64
	Curve anim.Curve
}

// RecordingAnimator is an anim.Animator that remembers every request.
type RecordingAnimator struct {
	mu      sync.Mutex
	targets []Target
}

var _ anim.Animator = (*RecordingAnimator)(nil)

// SetTarget records the request.
func (r *RecordingAnimator) SetTarget(p anim.Param, value float64, c anim.Curve) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.targets = append(r.targets, Target{Param: p, Value: value, Curve: c})
}

// Targets returns a copy of all recorded requests in order.
func (r *RecordingAnimator) Targets() []Target {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Target(nil), r.targets...)
}

// For returns the recorded requests for p in order.
func (r *RecordingAnimator) For(p anim.Param) []Target {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Target
	for _, t := range r.targets {
		if t.Param == p {
			out = append(out, t)
		}
	}
	return out
}

// Last returns the most recent request for p.
func (r *RecordingAnimator) Last(p anim.Param) (Target, bool) {
	ts := r.For(p)
	if len(ts) == 0 {
		return Target{}, false
	}
	return ts[len(ts)-1], true
}

// Reset forgets all recorded requests.
func (r *RecordingAnimator) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.targets = nil
}

// EventRecorder collects emitted events. It satisfies the Emit side of
// events.Router.
type EventRecorder struct {
	mu     sync.Mutex
	events []events.Event
}

// Emit records ev.
func (r *EventRecorder) Emit(ev events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

// Events returns a copy of all recorded events in order.
func (r *EventRecorder) Events() []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]events.Event(nil), r.events...)
}

// OfType returns the recorded events of type typ in order.
func (r *EventRecorder) OfType(typ events.EventType) []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []events.Event
	for _, ev := range r.events {
		if ev.Type() == typ {
			out = append(out, ev)
		}
	}
	return out
}

// Count returns how many events of type typ were recorded.
func (r *EventRecorder) Count(typ events.EventType) int {
	return len(r.OfType(typ))
}

// Types returns the type of every recorded event in order.
func (r *EventRecorder) Types() []events.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.EventType, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Type()
	}
	return out
}

// Reset forgets all recorded events.
func (r *EventRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
