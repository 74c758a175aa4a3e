// Package tui provides the terminal front end of hush using bubbletea: a
// home screen and the meditation screen, where holding the mouse button on
// the circle drives the session.
package tui

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/npratt/hush/internal/events"
)

// Mounter is the meditation screen the TUI drives. Each Mount starts a fresh
// session whose events arrive on the returned channel.
type Mounter interface {
	Mount(ctx context.Context) (<-chan events.Event, error)
	Unmount()
	PointerDown() error
	PointerUp() error
}

// TUI is the terminal UI for hush.
type TUI struct {
	mounter   Mounter
	fps       int
	mouse     bool
	altScreen bool
	skipHome  bool
	onQuit    func()
	logger    *slog.Logger
}

// Option configures the TUI.
type Option func(*TUI)

// New creates a new TUI driving mounter.
func New(mounter Mounter, opts ...Option) *TUI {
	t := &TUI{
		mounter:   mounter,
		fps:       30,
		mouse:     true,
		altScreen: true,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// WithFPS sets the animation frame rate.
func WithFPS(fps int) Option {
	return func(t *TUI) {
		if fps > 0 {
			t.fps = fps
		}
	}
}

// WithMouse enables or disables mouse input. Without it, space toggles the
// hold.
func WithMouse(enabled bool) Option {
	return func(t *TUI) {
		t.mouse = enabled
	}
}

// WithAltScreen selects whether the TUI takes over the whole terminal.
func WithAltScreen(enabled bool) Option {
	return func(t *TUI) {
		t.altScreen = enabled
	}
}

// WithSkipHome opens the meditation screen directly.
func WithSkipHome(skip bool) Option {
	return func(t *TUI) {
		t.skipHome = skip
	}
}

// WithOnQuit sets the callback invoked when the user quits.
func WithOnQuit(fn func()) Option {
	return func(t *TUI) {
		t.onQuit = fn
	}
}

// WithLogger sets the logger. The TUI owns the terminal, so it should not
// write to stderr.
func WithLogger(logger *slog.Logger) Option {
	return func(t *TUI) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// Run starts the TUI and blocks until it exits. Any mounted screen is
// unmounted before Run returns.
func (t *TUI) Run(ctx context.Context) error {
	m := newModel(ctx, t.mounter, t.fps, t.skipHome, t.onQuit, t.logger)

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if t.altScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if t.mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	p := tea.NewProgram(m, opts...)
	_, err := p.Run()
	t.mounter.Unmount()
	return err
}
