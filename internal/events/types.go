// Package events defines the event taxonomy emitted by a mounted meditation
// screen. Events are the only way state leaves the screen's event loop: the
// TUI, the headless printer and the trace sink all consume them.
package events

import (
	"time"

	"github.com/npratt/hush/internal/anim"
)

// EventType identifies the category and nature of an event.
type EventType string

// Event types.
const (
	// Screen lifecycle
	EventScreenMounted   EventType = "screen.mounted"
	EventScreenUnmounted EventType = "screen.unmounted"

	// Session state machine
	EventSessionStateChanged EventType = "session.state_changed"
	EventSessionTick         EventType = "session.tick"
	EventSessionComplete     EventType = "session.complete"

	// Gesture adapter
	EventGesture EventType = "gesture.pointer"

	// Prompt rotator
	EventPromptRotated EventType = "prompt.rotated"

	// Animation value driver
	EventAnimationTarget EventType = "animation.target"

	// Errors
	EventError EventType = "error"
)

// Source constants identify the component that emitted an event.
const (
	SourceScreen   = "screen"
	SourceSession  = "session"
	SourceGesture  = "gesture"
	SourceRotator  = "rotator"
	SourceDriver   = "driver"
	SourceInternal = "hush"
)

// Pointer actions carried by GestureEvent.
const (
	PointerDown = "down"
	PointerUp   = "up"
)

// Event is the base interface for all events in the system.
type Event interface {
	Type() EventType
	Timestamp() time.Time
	Source() string
}

// BaseEvent provides the common fields for all events.
type BaseEvent struct {
	EventType EventType `json:"type"`
	Time      time.Time `json:"timestamp"`
	Src       string    `json:"source"`
	SessionID string    `json:"session_id,omitempty"`
}

// Type returns the event type.
func (e BaseEvent) Type() EventType {
	return e.EventType
}

// Timestamp returns when the event occurred.
func (e BaseEvent) Timestamp() time.Time {
	return e.Time
}

// Source returns the origin of the event.
func (e BaseEvent) Source() string {
	return e.Src
}

// ScreenMountedEvent is emitted when a meditation screen starts its
// rotator and hue sweep.
type ScreenMountedEvent struct {
	BaseEvent
	PromptIndex int    `json:"prompt_index"`
	Text        string `json:"text"`
	Color       string `json:"color"`
}

// ScreenUnmountedEvent is emitted once every timer of a screen is stopped.
type ScreenUnmountedEvent struct {
	BaseEvent
	State   string `json:"state"`
	Elapsed int    `json:"elapsed"`
}

// SessionStateChangedEvent is emitted on every session transition.
type SessionStateChangedEvent struct {
	BaseEvent
	From    string `json:"from"`
	To      string `json:"to"`
	Elapsed int    `json:"elapsed"`
}

// SessionTickEvent is emitted after each one-second tick while Active.
type SessionTickEvent struct {
	BaseEvent
	Elapsed  int     `json:"elapsed"`
	Progress float64 `json:"progress"`
}

// SessionCompleteEvent is emitted exactly once when the hold threshold is
// reached.
type SessionCompleteEvent struct {
	BaseEvent
	Elapsed int `json:"elapsed"`
}

// GestureEvent records a pointer signal and whether it changed the session.
type GestureEvent struct {
	BaseEvent
	Action   string `json:"action"`
	Accepted bool   `json:"accepted"`
	State    string `json:"state"`
}

// PromptRotatedEvent is emitted when the displayed prompt is swapped.
type PromptRotatedEvent struct {
	BaseEvent
	Index int    `json:"index"`
	Text  string `json:"text"`
	Color string `json:"color"`
}

// AnimationTargetEvent carries one SetTarget request to the renderer.
type AnimationTargetEvent struct {
	BaseEvent
	Param anim.Param `json:"param"`
	Value float64    `json:"value"`
	Curve anim.Curve `json:"curve"`
}

// Severity constants for error events.
const (
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// ErrorEvent is emitted for any error condition.
type ErrorEvent struct {
	BaseEvent
	Message  string            `json:"message"`
	Severity string            `json:"severity"`
	Context  map[string]string `json:"context,omitempty"`
}

// NewEvent creates a BaseEvent with the given type and source.
func NewEvent(eventType EventType, source string) BaseEvent {
	return BaseEvent{
		EventType: eventType,
		Time:      time.Now(),
		Src:       source,
	}
}

// NewSessionEvent creates a BaseEvent tagged with a session ID.
func NewSessionEvent(eventType EventType, source, sessionID string) BaseEvent {
	e := NewEvent(eventType, source)
	e.SessionID = sessionID
	return e
}

// NewInternalEvent creates a BaseEvent with hush as the source.
func NewInternalEvent(eventType EventType) BaseEvent {
	return NewEvent(eventType, SourceInternal)
}

// SessionIDOf returns the session ID carried by ev, or "" if none.
func SessionIDOf(ev Event) string {
	type sessioned interface{ sessionID() string }
	if s, ok := ev.(sessioned); ok {
		return s.sessionID()
	}
	return ""
}

func (e BaseEvent) sessionID() string {
	return e.SessionID
}
