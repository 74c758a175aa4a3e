package meditation

import (
	"time"

	"github.com/npratt/hush/internal/anim"
)

// Hue returns the free-running hue, in degrees, elapsed into the sweep.
func Hue(elapsed time.Duration) float64 {
	return anim.Sweep(elapsed, HuePeriod, 0, 360)
}

// ScaleFor returns the circle scale for a session at progress p in state s.
func ScaleFor(p float64, s SessionState) float64 {
	if s == StateComplete {
		return CompleteScale
	}
	return anim.Interpolate(p, 0, 1, ScaleMin, ScaleMax)
}

// Driver turns session and rotator changes into animation targets. It only
// computes values; interpolation belongs to the Animator.
type Driver struct {
	animator anim.Animator
	targets  map[anim.Param]float64
	complete bool
}

// NewDriver creates a Driver that sends targets to a.
func NewDriver(a anim.Animator) *Driver {
	if a == nil {
		a = anim.AnimatorFunc(func(anim.Param, float64, anim.Curve) {})
	}
	return &Driver{
		animator: a,
		targets: map[anim.Param]float64{
			anim.ParamScale:       ScaleMin,
			anim.ParamTextOpacity: 1,
		},
	}
}

func (d *Driver) set(p anim.Param, v float64, c anim.Curve) {
	d.targets[p] = v
	d.animator.SetTarget(p, v, c)
}

// StartHue starts the repeating 0→360 sweep.
func (d *Driver) StartHue() {
	d.animator.SetTarget(anim.ParamHue, 0, anim.Immediate())
	d.set(anim.ParamHue, 360, anim.Timing(HuePeriod, anim.EaseLinear).Repeating())
}

// StopHue freezes the sweep at the hue reached after elapsed.
func (d *Driver) StopHue(elapsed time.Duration) {
	d.set(anim.ParamHue, Hue(elapsed), anim.Immediate())
}

// Progress moves the scale toward the value for progress p. It does nothing
// once the completion transform has been played.
func (d *Driver) Progress(p float64) {
	if d.complete {
		return
	}
	d.set(anim.ParamScale, ScaleFor(p, StateActive), anim.Timing(ScaleDuration, anim.EaseInOut))
}

// Reset animates the scale back to its baseline.
func (d *Driver) Reset() {
	if d.complete {
		return
	}
	d.set(anim.ParamScale, ScaleMin, anim.Timing(ScaleDuration, anim.EaseInOut))
}

// Complete springs the scale to its enlarged value. Only the first call has
// an effect.
func (d *Driver) Complete() {
	if d.complete {
		return
	}
	d.complete = true
	d.set(anim.ParamScale, CompleteScale, anim.Spring())
}

// FadeOut starts the first half of a prompt cross-fade.
func (d *Driver) FadeOut() {
	d.set(anim.ParamTextOpacity, 0, anim.Timing(FadeDuration, anim.EaseInOut))
}

// FadeIn starts the second half of a prompt cross-fade.
func (d *Driver) FadeIn() {
	d.set(anim.ParamTextOpacity, 1, anim.Timing(FadeDuration, anim.EaseInOut))
}

// Targets returns a copy of the last target requested for each parameter.
func (d *Driver) Targets() map[string]float64 {
	out := make(map[string]float64, len(d.targets))
	for p, v := range d.targets {
		out[string(p)] = v
	}
	return out
}
