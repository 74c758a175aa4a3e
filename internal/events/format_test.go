package events

import (
	"strings"
	"testing"
	"time"

	"github.com/npratt/hush/internal/anim"
)

func TestFormat_AllEventTypes(t *testing.T) {
	now := time.Now()
	base := func(typ EventType) BaseEvent {
		return BaseEvent{EventType: typ, Time: now, Src: SourceInternal}
	}

	tests := []struct {
		name     string
		event    Event
		contains []string
	}{
		{"nil event", nil, nil},
		{"screen mounted", &ScreenMountedEvent{BaseEvent: base(EventScreenMounted), PromptIndex: 0, Text: "Breathe in deeply..."},
			[]string{"mounted", "prompt 1", "Breathe in deeply..."}},
		{"screen unmounted", &ScreenUnmountedEvent{BaseEvent: base(EventScreenUnmounted), State: "active", Elapsed: 7},
			[]string{"unmounted", "active", "7s"}},
		{"state changed", &SessionStateChangedEvent{BaseEvent: base(EventSessionStateChanged), From: "idle", To: "active"},
			[]string{"idle -> active"}},
		{"tick", &SessionTickEvent{BaseEvent: base(EventSessionTick), Elapsed: 30, Progress: 0.5},
			[]string{"30s", "50%"}},
		{"complete", &SessionCompleteEvent{BaseEvent: base(EventSessionComplete), Elapsed: 60},
			[]string{"complete", "60s"}},
		{"gesture accepted", &GestureEvent{BaseEvent: base(EventGesture), Action: PointerUp, Accepted: true, State: "idle"},
			[]string{"pointer up -> idle"}},
		{"gesture ignored", &GestureEvent{BaseEvent: base(EventGesture), Action: PointerDown, State: "complete"},
			[]string{"ignored", "complete"}},
		{"prompt rotated", &PromptRotatedEvent{BaseEvent: base(EventPromptRotated), Index: 4, Text: "Find your center..."},
			[]string{"prompt 5", "Find your center..."}},
		{"spring target", &AnimationTargetEvent{BaseEvent: base(EventAnimationTarget), Param: anim.ParamScale, Value: 2.5, Curve: anim.Spring()},
			[]string{"scale", "2.5", "spring"}},
		{"repeating target", &AnimationTargetEvent{BaseEvent: base(EventAnimationTarget), Param: anim.ParamHue, Value: 360,
			Curve: anim.Timing(10*time.Second, anim.EaseLinear).Repeating()},
			[]string{"hue", "10s", "repeat"}},
		{"error", &ErrorEvent{BaseEvent: base(EventError), Message: "disk full", Severity: SeverityError},
			[]string{"error:", "disk full"}},
		{"warning", &ErrorEvent{BaseEvent: base(EventError), Message: "slow frame", Severity: SeverityWarning},
			[]string{"warning:", "slow frame"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(tt.event)
			if tt.contains == nil && got != "" {
				t.Errorf("Format = %q, want empty", got)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("Format = %q, missing %q", got, want)
				}
			}
		})
	}
}

func TestFormatWithTimestamp(t *testing.T) {
	ts := time.Date(2026, 3, 4, 10, 20, 30, 0, time.Local)
	ev := &SessionCompleteEvent{BaseEvent: BaseEvent{EventType: EventSessionComplete, Time: ts}, Elapsed: 60}

	got := FormatWithTimestamp(ev)
	if !strings.HasPrefix(got, "[10:20:30.000] ") {
		t.Errorf("FormatWithTimestamp = %q, want timestamp prefix", got)
	}

	bare := BaseEvent{EventType: "custom", Time: ts}
	if got := FormatWithTimestamp(bare); !strings.HasSuffix(got, "custom") {
		t.Errorf("unknown event should fall back to type, got %q", got)
	}
	if FormatWithTimestamp(nil) != "" {
		t.Error("nil event should format empty")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"this is too long", 10, "this is..."},
		{"abc", 2, "..."},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.maxLen); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
		}
	}
}

func TestSafeString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"line\nbreak", "line break"},
		{"\x1b[31mred\x1b[0m", "red"},
		{"tab\there", "tabhere"},
		{"  many   spaces  ", "many spaces"},
	}
	for _, tt := range tests {
		if got := SafeString(tt.in); got != tt.want {
			t.Errorf("SafeString(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
