// Package meditation implements the meditation screen: a touch-and-hold
// session timer, an independent prompt rotator and the animation driver that
// turns both into targets for the renderer.
//
// A Screen is single-threaded. Every method, and every timer callback, runs
// on the goroutine that owns its eventloop.Scheduler. Controller provides
// that goroutine for callers that need one.
package meditation

import "time"

// Timing constants. Session length is fixed.
const (
	TickInterval     = time.Second
	TargetSeconds    = 60
	RotationInterval = 3000 * time.Millisecond
	FadeDuration     = 500 * time.Millisecond
	HuePeriod        = 10000 * time.Millisecond
	ScaleDuration    = 300 * time.Millisecond
)

// Scale targets.
const (
	ScaleMin      = 1.0
	ScaleMax      = 1.5
	CompleteScale = 2.5
)

// PromptEntry is one line of guidance and the color it is shown in.
type PromptEntry struct {
	Text  string `json:"text" yaml:"text"`
	Color string `json:"color" yaml:"color"`
}

var prompts = [...]PromptEntry{
	{Text: "Breathe in deeply...", Color: "#FF6B6B"},
	{Text: "Feel the calm...", Color: "#4ECDC4"},
	{Text: "Let go of thoughts...", Color: "#45B7D1"},
	{Text: "Stay present...", Color: "#96CEB4"},
	{Text: "Find your center...", Color: "#FFEEAD"},
}

// Prompts returns the rotation order. The returned slice is a copy.
func Prompts() []PromptEntry {
	out := make([]PromptEntry, len(prompts))
	copy(out, prompts[:])
	return out
}

// PromptCount is the length of the rotation.
func PromptCount() int {
	return len(prompts)
}

// PromptAt returns the entry at i modulo the rotation length.
func PromptAt(i int) PromptEntry {
	n := len(prompts)
	return prompts[((i%n)+n)%n]
}
