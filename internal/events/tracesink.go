package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Sink consumes events from the router.
type Sink interface {
	Start(ctx context.Context, events <-chan Event) error
	Stop() error
}

// TraceSink writes every event of a mounted screen as one JSON object per
// line. The file is rolled by lumberjack, and a non-empty trace from a
// previous run is rotated away on Start so that `hush trace --follow`
// always watches a fresh file.
type TraceSink struct {
	path    string
	roller  *lumberjack.Logger
	encoder *json.Encoder
	logger  *slog.Logger
	mu      sync.Mutex
	started bool
	done    chan struct{}
}

// TraceOption configures a TraceSink.
type TraceOption func(*TraceSink)

// WithTraceRotation sets the size, backup and age limits of the trace file.
func WithTraceRotation(maxSizeMB, maxBackups, maxAgeDays int, compress bool) TraceOption {
	return func(s *TraceSink) {
		s.roller.MaxSize = maxSizeMB
		s.roller.MaxBackups = maxBackups
		s.roller.MaxAge = maxAgeDays
		s.roller.Compress = compress
	}
}

// WithTraceLogger sets the logger used to report write failures.
func WithTraceLogger(logger *slog.Logger) TraceOption {
	return func(s *TraceSink) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewTraceSink creates a TraceSink that writes to path.
func NewTraceSink(path string, opts ...TraceOption) *TraceSink {
	s := &TraceSink{
		path:   path,
		roller: &lumberjack.Logger{Filename: path, MaxSize: 10, MaxBackups: 3},
		logger: slog.Default(),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start opens the trace file and begins processing events.
// It runs until the context is canceled or the events channel is closed.
func (s *TraceSink) Start(ctx context.Context, events <-chan Event) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create trace directory: %w", err)
	}

	if info, err := os.Stat(s.path); err == nil && info.Size() > 0 {
		if err := s.roller.Rotate(); err != nil {
			return fmt.Errorf("rotate trace file: %w", err)
		}
	} else if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("stat trace file: %w", err)
	}

	s.mu.Lock()
	s.encoder = json.NewEncoder(s.roller)
	s.started = true
	s.mu.Unlock()

	go s.run(ctx, events)
	return nil
}

func (s *TraceSink) run(ctx context.Context, events <-chan Event) {
	defer close(s.done)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			s.write(event)
		}
	}
}

func (s *TraceSink) write(event Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.encoder == nil {
		return
	}
	if err := s.encoder.Encode(event); err != nil {
		s.logger.Error("trace sink: write failed", "event_type", event.Type(), "error", err)
	}
}

// Stop waits for the event channel to drain and closes the file.
// Stop is a no-op for a sink that was never started.
func (s *TraceSink) Stop() error {
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()
	if !started {
		return nil
	}

	<-s.done

	s.mu.Lock()
	defer s.mu.Unlock()
	s.encoder = nil
	s.started = false
	return s.roller.Close()
}

// Path returns the trace file path.
func (s *TraceSink) Path() string {
	return s.path
}
