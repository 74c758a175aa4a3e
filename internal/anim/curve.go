// Package anim provides the declarative animation capability used by the
// meditation screen: callers request "move parameter P to value V along
// curve C" and an Engine owned by the renderer does the interpolation.
package anim

import (
	"math"
	"time"
)

// Param names an animated parameter.
type Param string

// Animated parameters.
const (
	ParamScale       Param = "scale"
	ParamHue         Param = "hue"
	ParamTextOpacity Param = "text_opacity"
	ParamGlow        Param = "glow"
)

// Easing shapes a timing curve.
type Easing string

// Easing functions.
const (
	EaseLinear Easing = "linear"
	EaseInOut  Easing = "ease_in_out"
)

// CurveKind selects how a parameter approaches its target.
type CurveKind string

// Curve kinds.
const (
	KindImmediate CurveKind = "immediate"
	KindTiming    CurveKind = "timing"
	KindSpring    CurveKind = "spring"
)

// DefaultDuration is used by timing curves built without a duration.
const DefaultDuration = 300 * time.Millisecond

// Curve describes the path from the current value to a target.
type Curve struct {
	Kind     CurveKind     `json:"kind"`
	Duration time.Duration `json:"duration,omitempty"`
	Easing   Easing        `json:"easing,omitempty"`
	// Repeat restarts the curve from its initial value forever.
	Repeat bool `json:"repeat,omitempty"`
	// Reverse makes a repeating curve run back and forth instead of jumping
	// back to the start.
	Reverse bool `json:"reverse,omitempty"`
}

// Animator accepts target requests. Implementations must not block.
type Animator interface {
	SetTarget(p Param, value float64, c Curve)
}

// AnimatorFunc adapts a function to the Animator interface.
type AnimatorFunc func(p Param, value float64, c Curve)

// SetTarget calls f.
func (f AnimatorFunc) SetTarget(p Param, value float64, c Curve) {
	f(p, value, c)
}

// Immediate jumps to the target on the next frame.
func Immediate() Curve {
	return Curve{Kind: KindImmediate}
}

// Timing moves to the target over d using easing e.
func Timing(d time.Duration, e Easing) Curve {
	if d <= 0 {
		d = DefaultDuration
	}
	if e == "" {
		e = EaseInOut
	}
	return Curve{Kind: KindTiming, Duration: d, Easing: e}
}

// Spring settles on the target with a damped spring.
func Spring() Curve {
	return Curve{Kind: KindSpring}
}

// Repeating returns c restarted from its initial value each time it ends.
func (c Curve) Repeating() Curve {
	c.Repeat = true
	return c
}

// Yoyo returns c repeating back and forth between its endpoints.
func (c Curve) Yoyo() Curve {
	c.Repeat = true
	c.Reverse = true
	return c
}

// Apply maps linear progress t in [0,1] through the easing function.
func (e Easing) Apply(t float64) float64 {
	t = clamp01(t)
	switch e {
	case EaseInOut:
		// Cubic bezier approximation of ease-in-out.
		return t * t * (3 - 2*t)
	default:
		return t
	}
}

// Sweep returns the value of a repeating linear run from -> to with the given
// period, elapsed time into the animation. The result lies in [from, to).
func Sweep(elapsed, period time.Duration, from, to float64) float64 {
	if period <= 0 {
		return from
	}
	if elapsed < 0 {
		elapsed = 0
	}
	frac := float64(elapsed%period) / float64(period)
	return from + (to-from)*frac
}

// PingPong returns the value of a back-and-forth run between from and to,
// each leg lasting period and shaped by e.
func PingPong(elapsed, period time.Duration, from, to float64, e Easing) float64 {
	if period <= 0 {
		return from
	}
	if elapsed < 0 {
		elapsed = 0
	}
	leg := elapsed / period
	frac := float64(elapsed%period) / float64(period)
	if leg%2 == 1 {
		frac = 1 - frac
	}
	return from + (to-from)*e.Apply(frac)
}

// Interpolate maps v from the input range onto the output range, clamping
// at the ends.
func Interpolate(v, inMin, inMax, outMin, outMax float64) float64 {
	if inMax == inMin {
		return outMin
	}
	t := clamp01((v - inMin) / (inMax - inMin))
	return outMin + (outMax-outMin)*t
}

func clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}
