package events

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/npratt/hush/internal/anim"
)

func TestParseEvent_AllTypes(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	base := func(typ EventType, src string) BaseEvent {
		return BaseEvent{EventType: typ, Time: now, Src: src, SessionID: "sess-1"}
	}

	tests := []struct {
		name  string
		event Event
	}{
		{"ScreenMountedEvent", &ScreenMountedEvent{
			BaseEvent: base(EventScreenMounted, SourceScreen), PromptIndex: 0, Text: "Breathe in deeply...", Color: "#FF6B6B",
		}},
		{"ScreenUnmountedEvent", &ScreenUnmountedEvent{
			BaseEvent: base(EventScreenUnmounted, SourceScreen), State: "active", Elapsed: 12,
		}},
		{"SessionStateChangedEvent", &SessionStateChangedEvent{
			BaseEvent: base(EventSessionStateChanged, SourceSession), From: "idle", To: "active",
		}},
		{"SessionTickEvent", &SessionTickEvent{
			BaseEvent: base(EventSessionTick, SourceSession), Elapsed: 30, Progress: 0.5,
		}},
		{"SessionCompleteEvent", &SessionCompleteEvent{
			BaseEvent: base(EventSessionComplete, SourceSession), Elapsed: 60,
		}},
		{"GestureEvent", &GestureEvent{
			BaseEvent: base(EventGesture, SourceGesture), Action: PointerDown, Accepted: true, State: "active",
		}},
		{"PromptRotatedEvent", &PromptRotatedEvent{
			BaseEvent: base(EventPromptRotated, SourceRotator), Index: 2, Text: "Let go of thoughts...", Color: "#45B7D1",
		}},
		{"AnimationTargetEvent", &AnimationTargetEvent{
			BaseEvent: base(EventAnimationTarget, SourceDriver), Param: anim.ParamHue, Value: 360,
			Curve: anim.Timing(10*time.Second, anim.EaseLinear).Repeating(),
		}},
		{"ErrorEvent", &ErrorEvent{
			BaseEvent: base(EventError, SourceInternal), Message: "boom", Severity: SeverityWarning,
			Context: map[string]string{"op": "mount"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, err := json.Marshal(tt.event)
			if err != nil {
				t.Fatalf("Marshal failed: %v", err)
			}

			got, err := ParseEvent(line)
			if err != nil {
				t.Fatalf("ParseEvent failed: %v", err)
			}
			if got == nil {
				t.Fatal("ParseEvent returned nil")
			}
			if reflect.TypeOf(got) != reflect.TypeOf(tt.event) {
				t.Fatalf("got %T, want %T", got, tt.event)
			}
			if !reflect.DeepEqual(got, tt.event) {
				t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, tt.event)
			}
			if SessionIDOf(got) != "sess-1" {
				t.Errorf("SessionIDOf = %q, want sess-1", SessionIDOf(got))
			}
		})
	}
}

func TestParseEvent_UnknownType(t *testing.T) {
	ev, err := ParseEvent([]byte(`{"type":"future.event","source":"hush"}`))
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if ev != nil {
		t.Errorf("expected nil event for unknown type, got %T", ev)
	}
}

func TestParseEvent_Malformed(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"not json", "tick tock"},
		{"truncated", `{"type":"session.tick"`},
		{"wrong field type", `{"type":"session.tick","elapsed":"ten"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseEvent([]byte(tt.line)); err == nil {
				t.Error("expected error")
			}
		})
	}
}
