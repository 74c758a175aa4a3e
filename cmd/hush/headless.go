package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/npratt/hush/internal/events"
	"github.com/npratt/hush/internal/meditation"
)

// Headless commands, one per input line.
const (
	cmdDown     = "down"
	cmdUp       = "up"
	cmdSnapshot = "snapshot"
	cmdQuit     = "quit"
)

// headless drives a meditation screen from line commands instead of a
// terminal UI. Events are printed as they arrive.
type headless struct {
	ctrl   *meditation.Controller
	in     io.Reader
	out    io.Writer
	json   bool
	logger *slog.Logger
}

// run mounts a screen and reads commands until quit, session completion or
// ctx cancellation. End of input while the pointer is down keeps the session
// running so that `echo down | hush start` meditates to completion. The
// screen is always unmounted and its remaining events printed before run
// returns.
func (h *headless) run(ctx context.Context) error {
	ch, err := h.ctrl.Mount(ctx)
	if err != nil {
		return fmt.Errorf("mount: %w", err)
	}

	readCtx, stopReading := context.WithCancel(ctx)
	defer stopReading()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(h.in)
		for scanner.Scan() {
			select {
			case lines <- strings.TrimSpace(scanner.Text()):
			case <-readCtx.Done():
				return
			}
		}
	}()

	holding := false
	runErr := func() error {
		for {
			select {
			case <-ctx.Done():
				return nil

			case ev, ok := <-ch:
				if !ok {
					return nil
				}
				if err := h.print(ev); err != nil {
					return err
				}
				if ev.Type() == events.EventSessionComplete {
					return nil
				}

			case line, ok := <-lines:
				if !ok {
					if !holding {
						return nil
					}
					lines = nil
					continue
				}
				done, err := h.handle(ctx, line, &holding)
				if err != nil || done {
					return err
				}
			}
		}
	}()

	h.ctrl.Unmount()
	for ev := range ch {
		if err := h.print(ev); err != nil && runErr == nil {
			runErr = err
		}
	}
	return runErr
}

// handle executes one command line. It reports whether the session should
// end.
func (h *headless) handle(ctx context.Context, line string, holding *bool) (bool, error) {
	switch strings.ToLower(line) {
	case "":
		return false, nil
	case cmdDown:
		*holding = true
		return false, h.ctrl.PointerDown()
	case cmdUp:
		*holding = false
		return false, h.ctrl.PointerUp()
	case cmdSnapshot:
		snap, err := h.ctrl.Snapshot(ctx)
		if err != nil {
			return false, err
		}
		data, err := json.Marshal(snap)
		if err != nil {
			return false, fmt.Errorf("marshal snapshot: %w", err)
		}
		_, err = fmt.Fprintln(h.out, string(data))
		return false, err
	case cmdQuit:
		return true, nil
	default:
		h.logger.Warn("unknown command", "command", line)
		_, err := fmt.Fprintf(h.out, "unknown command %q (want down, up, snapshot or quit)\n", line)
		return false, err
	}
}

func (h *headless) print(ev events.Event) error {
	if h.json {
		data, err := json.Marshal(ev)
		if err != nil {
			return fmt.Errorf("marshal event: %w", err)
		}
		_, err = fmt.Fprintln(h.out, string(data))
		return err
	}
	_, err := fmt.Fprintln(h.out, events.FormatWithTimestamp(ev))
	return err
}
