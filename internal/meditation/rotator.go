package meditation

import (
	"log/slog"

	"github.com/npratt/hush/internal/eventloop"
	"github.com/npratt/hush/internal/events"
)

// Rotator cycles the prompt every RotationInterval with a cross-fade:
// fade out, swap after FadeDuration, fade back in. It knows nothing about
// the session and runs from Start until Stop.
type Rotator struct {
	id     string
	sched  eventloop.Scheduler
	driver *Driver
	emit   Emitter
	logger *slog.Logger

	index  int
	period eventloop.Timer
	fade   eventloop.Timer
}

func newRotator(id string, sched eventloop.Scheduler, driver *Driver, emit Emitter, logger *slog.Logger) *Rotator {
	return &Rotator{id: id, sched: sched, driver: driver, emit: emit, logger: logger}
}

// Index returns the position of the displayed prompt.
func (r *Rotator) Index() int { return r.index }

// Current returns the displayed prompt.
func (r *Rotator) Current() PromptEntry { return PromptAt(r.index) }

// Running reports whether the rotation timer is live.
func (r *Rotator) Running() bool { return r.period != nil }

// Start begins the rotation. Calling Start on a running rotator does nothing.
func (r *Rotator) Start() {
	if r.period != nil {
		return
	}
	r.period = r.sched.Every(RotationInterval, r.rotate)
}

// Stop cancels the rotation and any fade in progress.
func (r *Rotator) Stop() {
	if r.period != nil {
		r.period.Stop()
		r.period = nil
	}
	if r.fade != nil {
		r.fade.Stop()
		r.fade = nil
	}
}

func (r *Rotator) rotate() {
	if r.fade != nil {
		r.fade.Stop()
	}
	r.driver.FadeOut()
	r.fade = r.sched.After(FadeDuration, r.swap)
}

func (r *Rotator) swap() {
	r.fade = nil
	r.index = (r.index + 1) % PromptCount()
	p := r.Current()

	r.logger.Debug("prompt rotated", "session_id", r.id, "index", r.index)
	r.emit.Emit(&events.PromptRotatedEvent{
		BaseEvent: events.NewSessionEvent(events.EventPromptRotated, events.SourceRotator, r.id),
		Index:     r.index,
		Text:      p.Text,
		Color:     p.Color,
	})
	r.driver.FadeIn()
}
