package testutil

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/npratt/hush/internal/events"
)

// SampleSessionTrace returns the events of a session that was held for
// ticks seconds and then released, starting at base.
func SampleSessionTrace(sessionID string, base time.Time, ticks int) []events.Event {
	at := func(offset time.Duration, typ events.EventType, src string) events.BaseEvent {
		return events.BaseEvent{EventType: typ, Time: base.Add(offset), Src: src, SessionID: sessionID}
	}

	evts := []events.Event{
		&events.ScreenMountedEvent{
			BaseEvent:   at(0, events.EventScreenMounted, events.SourceScreen),
			PromptIndex: 0,
			Text:        "Breathe in deeply...",
			Color:       "#FF6B6B",
		},
		&events.GestureEvent{
			BaseEvent: at(time.Second, events.EventGesture, events.SourceGesture),
			Action:    events.PointerDown,
			Accepted:  true,
			State:     "active",
		},
		&events.SessionStateChangedEvent{
			BaseEvent: at(time.Second, events.EventSessionStateChanged, events.SourceSession),
			From:      "idle",
			To:        "active",
		},
	}

	for i := 1; i <= ticks; i++ {
		evts = append(evts, &events.SessionTickEvent{
			BaseEvent: at(time.Duration(i+1)*time.Second, events.EventSessionTick, events.SourceSession),
			Elapsed:   i,
			Progress:  float64(i) / 60,
		})
	}

	release := time.Duration(ticks+1)*time.Second + 500*time.Millisecond
	evts = append(evts,
		&events.GestureEvent{
			BaseEvent: at(release, events.EventGesture, events.SourceGesture),
			Action:    events.PointerUp,
			Accepted:  true,
			State:     "idle",
		},
		&events.SessionStateChangedEvent{
			BaseEvent: at(release, events.EventSessionStateChanged, events.SourceSession),
			From:      "active",
			To:        "idle",
			Elapsed:   ticks,
		},
	)
	return evts
}

// WriteTraceFixture writes the given events to path in JSON lines format.
func WriteTraceFixture(path string, evts []events.Event) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	for _, evt := range evts {
		data, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("failed to marshal event: %w", err)
		}
		if _, err := file.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("failed to write event: %w", err)
		}
	}
	return nil
}
