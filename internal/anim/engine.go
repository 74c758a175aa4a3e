package anim

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// Spring tuning matching a stiffness of 100, damping of 10 and unit mass.
const (
	springFrequency = 10.0
	springDamping   = 0.5
	// settleEpsilon is the distance and velocity below which a spring snaps
	// onto its target.
	settleEpsilon = 0.001
	// maxCatchUpFrames bounds spring integration after a long stall.
	maxCatchUpFrames = 240
)

// track is the in-flight animation of one parameter.
type track struct {
	from  float64
	to    float64
	start time.Time
	curve Curve

	// spring state
	vel       float64
	lastFrame time.Time

	done bool
}

// Engine interpolates parameters toward their targets. It is driven by
// Step from a single goroutine (the renderer's update loop) and is not safe
// for concurrent use.
type Engine struct {
	frame  time.Duration
	spring harmonica.Spring
	now    time.Time
	values map[Param]float64
	tracks map[Param]*track
}

// NewEngine creates an Engine stepping at fps frames per second, with the
// clock starting at now. Parameters not listed in initial start at zero.
func NewEngine(fps int, now time.Time, initial map[Param]float64) *Engine {
	if fps <= 0 {
		fps = 30
	}
	e := &Engine{
		frame:  time.Second / time.Duration(fps),
		spring: harmonica.NewSpring(harmonica.FPS(fps), springFrequency, springDamping),
		now:    now,
		values: make(map[Param]float64, len(initial)),
		tracks: make(map[Param]*track),
	}
	for p, v := range initial {
		e.values[p] = v
	}
	return e
}

// SetTarget starts animating p toward value. A running animation of p is
// replaced, starting from wherever it currently is.
func (e *Engine) SetTarget(p Param, value float64, c Curve) {
	current := e.values[p]

	if c.Kind == KindImmediate || c.Kind == "" {
		e.values[p] = value
		delete(e.tracks, p)
		return
	}

	t := &track{
		from:      current,
		to:        value,
		start:     e.now,
		curve:     c,
		lastFrame: e.now,
	}
	if prev, ok := e.tracks[p]; ok && prev.curve.Kind == KindSpring && c.Kind == KindSpring {
		t.vel = prev.vel
	}
	e.tracks[p] = t
}

// Stop freezes p at its current value.
func (e *Engine) Stop(p Param) {
	delete(e.tracks, p)
}

// Step advances every running animation to now.
func (e *Engine) Step(now time.Time) {
	if now.Before(e.now) {
		return
	}
	e.now = now

	for p, t := range e.tracks {
		switch t.curve.Kind {
		case KindTiming:
			e.values[p] = t.timingValue(now)
		case KindSpring:
			e.values[p] = e.springValue(t, now, e.values[p])
		}
		if t.done {
			delete(e.tracks, p)
		}
	}
}

// Value returns the current value of p.
func (e *Engine) Value(p Param) float64 {
	return e.values[p]
}

// Animating reports whether p has an animation in flight.
func (e *Engine) Animating(p Param) bool {
	_, ok := e.tracks[p]
	return ok
}

// Target returns the value p is heading to, or its current value when idle.
func (e *Engine) Target(p Param) float64 {
	if t, ok := e.tracks[p]; ok {
		return t.to
	}
	return e.values[p]
}

func (t *track) timingValue(now time.Time) float64 {
	elapsed := now.Sub(t.start)
	d := t.curve.Duration
	if d <= 0 {
		d = DefaultDuration
	}

	if t.curve.Repeat {
		if t.curve.Reverse {
			return PingPong(elapsed, d, t.from, t.to, t.curve.Easing)
		}
		return t.from + (t.to-t.from)*t.curve.Easing.Apply(Sweep(elapsed, d, 0, 1))
	}

	progress := float64(elapsed) / float64(d)
	if progress >= 1 {
		t.done = true
		return t.to
	}
	return t.from + (t.to-t.from)*t.curve.Easing.Apply(progress)
}

func (e *Engine) springValue(t *track, now time.Time, pos float64) float64 {
	frames := int(now.Sub(t.lastFrame) / e.frame)
	if frames <= 0 {
		return pos
	}
	if frames > maxCatchUpFrames {
		frames = maxCatchUpFrames
	}
	t.lastFrame = t.lastFrame.Add(time.Duration(frames) * e.frame)

	for i := 0; i < frames; i++ {
		pos, t.vel = e.spring.Update(pos, t.vel, t.to)
	}

	if math.Abs(pos-t.to) < settleEpsilon && math.Abs(t.vel) < settleEpsilon {
		t.done = true
		return t.to
	}
	return pos
}
