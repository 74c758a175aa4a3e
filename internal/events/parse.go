package events

import (
	"encoding/json"
	"fmt"
)

// eventEnvelope is used for initial JSON parsing to determine event type.
type eventEnvelope struct {
	Type EventType `json:"type"`
}

// eventFactories maps each known type to a constructor for its concrete struct.
var eventFactories = map[EventType]func() Event{
	EventScreenMounted:       func() Event { return &ScreenMountedEvent{} },
	EventScreenUnmounted:     func() Event { return &ScreenUnmountedEvent{} },
	EventSessionStateChanged: func() Event { return &SessionStateChangedEvent{} },
	EventSessionTick:         func() Event { return &SessionTickEvent{} },
	EventSessionComplete:     func() Event { return &SessionCompleteEvent{} },
	EventGesture:             func() Event { return &GestureEvent{} },
	EventPromptRotated:       func() Event { return &PromptRotatedEvent{} },
	EventAnimationTarget:     func() Event { return &AnimationTargetEvent{} },
	EventError:               func() Event { return &ErrorEvent{} },
}

// ParseEvent parses a JSON line, as written by TraceSink, into a typed Event.
// Returns nil with no error for unknown event types (for forward compatibility).
func ParseEvent(line []byte) (Event, error) {
	var envelope eventEnvelope
	if err := json.Unmarshal(line, &envelope); err != nil {
		return nil, fmt.Errorf("parse event envelope: %w", err)
	}

	factory, ok := eventFactories[envelope.Type]
	if !ok {
		return nil, nil
	}

	ev := factory()
	if err := json.Unmarshal(line, ev); err != nil {
		return nil, fmt.Errorf("parse %s event: %w", envelope.Type, err)
	}
	return ev, nil
}
