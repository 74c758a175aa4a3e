// Package viewmodel provides the read-only types handed from a mounted
// meditation screen to the presentation layer.
package viewmodel

// Prompt is the guidance text currently shown and its color.
type Prompt struct {
	Text  string `json:"text"`
	Color string `json:"color"` // hex, e.g. "#4ECDC4"
}

// Snapshot is a copy of a meditation screen's state at one instant.
type Snapshot struct {
	SessionID   string  `json:"session_id"`
	State       string  `json:"state"`    // idle, active or complete
	Elapsed     int     `json:"elapsed"`  // whole seconds held, 0..60
	Progress    float64 `json:"progress"` // Elapsed/60
	PromptIndex int     `json:"prompt_index"`
	Prompt      Prompt  `json:"prompt"`
	Hue         float64 `json:"hue"` // degrees in [0,360)
	Mounted     bool    `json:"mounted"`

	// Targets holds the last value requested for each animated parameter.
	Targets map[string]float64 `json:"targets,omitempty"`
}

// Complete reports whether the snapshot was taken after completion.
func (s Snapshot) Complete() bool {
	return s.State == "complete"
}

// Remaining returns the whole seconds left until completion.
func (s Snapshot) Remaining(target int) int {
	if r := target - s.Elapsed; r > 0 {
		return r
	}
	return 0
}
