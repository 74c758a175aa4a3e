package events

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

const (
	maxTextLength     = 200
	maxPromptLength   = 60
	truncateIndicator = "..."
)

// Format converts an event to a human-readable string for display.
// Returns empty string for nil or unknown event types.
func Format(event Event) string {
	if event == nil {
		return ""
	}

	switch e := event.(type) {
	case *ScreenMountedEvent:
		return formatScreenMounted(e)
	case *ScreenUnmountedEvent:
		return formatScreenUnmounted(e)
	case *SessionStateChangedEvent:
		return formatSessionStateChanged(e)
	case *SessionTickEvent:
		return formatSessionTick(e)
	case *SessionCompleteEvent:
		return formatSessionComplete(e)
	case *GestureEvent:
		return formatGesture(e)
	case *PromptRotatedEvent:
		return formatPromptRotated(e)
	case *AnimationTargetEvent:
		return formatAnimationTarget(e)
	case *ErrorEvent:
		return formatError(e)
	default:
		return ""
	}
}

// FormatWithTimestamp formats an event with a timestamp prefix.
// Used by the trace command and the headless printer.
func FormatWithTimestamp(event Event) string {
	if event == nil {
		return ""
	}
	ts := event.Timestamp().Format("15:04:05.000")
	detail := Format(event)
	if detail == "" {
		return fmt.Sprintf("[%s] %s", ts, event.Type())
	}
	return fmt.Sprintf("[%s] %s", ts, detail)
}

func formatScreenMounted(e *ScreenMountedEvent) string {
	return fmt.Sprintf("screen mounted: prompt %d %q", e.PromptIndex+1, Truncate(e.Text, maxPromptLength))
}

func formatScreenUnmounted(e *ScreenUnmountedEvent) string {
	return fmt.Sprintf("screen unmounted: %s at %ds", SafeString(e.State), e.Elapsed)
}

func formatSessionStateChanged(e *SessionStateChangedEvent) string {
	return fmt.Sprintf("session: %s -> %s (%ds)", SafeString(e.From), SafeString(e.To), e.Elapsed)
}

func formatSessionTick(e *SessionTickEvent) string {
	return fmt.Sprintf("tick: %ds (%.0f%%)", e.Elapsed, e.Progress*100)
}

func formatSessionComplete(e *SessionCompleteEvent) string {
	return fmt.Sprintf("session complete after %ds", e.Elapsed)
}

func formatGesture(e *GestureEvent) string {
	action := SafeString(e.Action)
	if !e.Accepted {
		return fmt.Sprintf("pointer %s ignored (%s)", action, SafeString(e.State))
	}
	return fmt.Sprintf("pointer %s -> %s", action, SafeString(e.State))
}

func formatPromptRotated(e *PromptRotatedEvent) string {
	return fmt.Sprintf("prompt %d: %s", e.Index+1, Truncate(e.Text, maxPromptLength))
}

func formatAnimationTarget(e *AnimationTargetEvent) string {
	curve := string(e.Curve.Kind)
	if e.Curve.Duration > 0 {
		curve = fmt.Sprintf("%s %s", curve, e.Curve.Duration)
	}
	if e.Curve.Repeat {
		curve += " repeat"
	}
	return fmt.Sprintf("animate %s -> %.3g (%s)", e.Param, e.Value, curve)
}

func formatError(e *ErrorEvent) string {
	msg := Truncate(e.Message, maxTextLength)
	if e.Severity != "" && e.Severity != SeverityError {
		return fmt.Sprintf("%s: %s", e.Severity, msg)
	}
	return fmt.Sprintf("error: %s", msg)
}

// Truncate shortens text to maxLen, adding indicator if truncated.
func Truncate(s string, maxLen int) string {
	s = SafeString(s)
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= len(truncateIndicator) {
		return truncateIndicator
	}
	return s[:maxLen-len(truncateIndicator)] + truncateIndicator
}

// ansiRegex matches ANSI escape sequences.
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// StripANSI removes ANSI escape sequences from a string.
func StripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// SafeString sanitizes a string for display by removing control characters
// and limiting newlines.
func SafeString(s string) string {
	s = StripANSI(s)

	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")

	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if r == ' ' || !unicode.IsControl(r) {
			sb.WriteRune(r)
		}
	}

	result := sb.String()
	for strings.Contains(result, "  ") {
		result = strings.ReplaceAll(result, "  ", " ")
	}

	return strings.TrimSpace(result)
}
