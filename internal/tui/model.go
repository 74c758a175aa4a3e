package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/npratt/hush/internal/anim"
	"github.com/npratt/hush/internal/events"
	"github.com/npratt/hush/internal/meditation"
)

// screen is the page the TUI is showing.
type screen int

const (
	screenHome screen = iota
	screenMeditation
)

// Home screen glow loop.
const (
	glowPeriod = 1500 * time.Millisecond
	glowMin    = 0.6
	glowMax    = 1.0
)

// session mirrors the mounted screen's state as reported by its events.
type session struct {
	id       string
	state    meditation.SessionState
	elapsed  int
	progress float64
	prompt   meditation.PromptEntry
	holding  bool
}

// model is the bubbletea model for the TUI.
type model struct {
	ctx     context.Context
	mounter Mounter
	onQuit  func()
	logger  *slog.Logger

	// Animation
	fps    int
	engine *anim.Engine
	now    time.Time

	// Navigation
	screen   screen
	skipHome bool

	// Mount generation; events carry the generation they were read for so
	// that anything from an unmounted screen is dropped.
	gen       int
	eventChan <-chan events.Event
	session   session
	errText   string

	// UI state
	width    int
	height   int
	keys     keyMap
	help     help.Model
	progress progress.Model
	spinner  spinner.Model
}

// newModel creates a new model with the given configuration.
func newModel(ctx context.Context, mounter Mounter, fps int, skipHome bool, onQuit func(), logger *slog.Logger) model {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = slog.Default()
	}
	if fps <= 0 {
		fps = 30
	}
	now := time.Now()

	m := model{
		ctx:      ctx,
		mounter:  mounter,
		onQuit:   onQuit,
		logger:   logger,
		fps:      fps,
		now:      now,
		engine:   anim.NewEngine(fps, now, nil),
		screen:   screenHome,
		skipHome: skipHome,
		keys:     newKeyMap(),
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.Timer)),
		width:    80,
		height:   24,
	}
	m.enterHome()
	return m
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{doFrame(m.fps), m.spinner.Tick}
	if m.skipHome {
		cmds = append(cmds, func() tea.Msg { return beginMsg{} })
	}
	return tea.Batch(cmds...)
}

// enterHome starts the home screen's glow and hue loops.
func (m *model) enterHome() {
	m.screen = screenHome
	m.engine.SetTarget(anim.ParamGlow, glowMin, anim.Immediate())
	m.engine.SetTarget(anim.ParamGlow, glowMax, anim.Timing(glowPeriod, anim.EaseInOut).Yoyo())
	m.engine.SetTarget(anim.ParamHue, 0, anim.Immediate())
	m.engine.SetTarget(anim.ParamHue, 360, anim.Timing(meditation.HuePeriod, anim.EaseLinear).Repeating())
}

// resetScene puts the circle and text back at rest before a mount.
func (m *model) resetScene() {
	m.engine.Stop(anim.ParamGlow)
	m.engine.SetTarget(anim.ParamScale, meditation.ScaleMin, anim.Immediate())
	m.engine.SetTarget(anim.ParamTextOpacity, 1, anim.Immediate())
	m.engine.SetTarget(anim.ParamHue, 0, anim.Immediate())
}

// Update, handleKey, handleMouse, handleEvent are implemented in update.go
// View is implemented in view.go
