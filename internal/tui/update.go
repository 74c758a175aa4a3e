package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/npratt/hush/internal/events"
	"github.com/npratt/hush/internal/meditation"
)

// frameMsg advances the animation engine.
type frameMsg time.Time

// beginMsg opens the meditation screen.
type beginMsg struct{}

// eventMsg carries an event read for mount generation gen.
type eventMsg struct {
	gen   int
	event events.Event
}

// channelClosedMsg signals that the event channel of generation gen closed.
type channelClosedMsg struct {
	gen int
}

// waitForEvent creates a command that waits for the next event from the channel.
// Returns channelClosedMsg if the channel is closed.
func waitForEvent(gen int, ch <-chan events.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return channelClosedMsg{gen: gen}
		}
		return eventMsg{gen: gen, event: event}
	}
}

// doFrame schedules the next animation frame.
func doFrame(fps int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Update implements tea.Model. It handles all message types and updates the model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = progressWidth(m.width)
		m.help.Width = m.width
		return m, nil

	case frameMsg:
		m.now = time.Time(msg)
		m.engine.Step(m.now)
		return m, doFrame(m.fps)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case beginMsg:
		return m.begin()

	case eventMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.handleEvent(msg.event)
		return m, waitForEvent(m.gen, m.eventChan)

	case channelClosedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.logger.Info("event channel closed, returning home", "session_id", m.session.id)
		m.goHome()
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input and returns the updated model and command.
func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys.forScreen(m.screen)

	switch {
	case key.Matches(msg, keys.Quit):
		if m.onQuit != nil {
			m.onQuit()
		}
		return m, tea.Quit

	case key.Matches(msg, keys.Begin):
		return m.begin()

	case key.Matches(msg, keys.Hold):
		if m.session.holding {
			m.release()
		} else {
			m.press()
		}
		return m, nil

	case key.Matches(msg, keys.Back):
		m.goHome()
		return m, nil
	}

	return m, nil
}

// handleMouse maps the left button onto the pointer signal. On the home
// screen any click begins.
func (m model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch m.screen {
	case screenHome:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			return m.begin()
		}

	case screenMeditation:
		switch msg.Action {
		case tea.MouseActionPress:
			if msg.Button == tea.MouseButtonLeft && m.hitCircle(msg.X, msg.Y) {
				m.press()
			}
		case tea.MouseActionRelease:
			m.release()
		}
	}
	return m, nil
}

// begin mounts a fresh meditation screen.
func (m model) begin() (tea.Model, tea.Cmd) {
	if m.screen == screenMeditation {
		return m, nil
	}

	m.resetScene()
	ch, err := m.mounter.Mount(m.ctx)
	if err != nil {
		m.logger.Error("mount failed", "error", err)
		m.errText = err.Error()
		m.enterHome()
		return m, nil
	}

	m.gen++
	m.eventChan = ch
	m.errText = ""
	m.session = session{state: meditation.StateIdle, prompt: meditation.PromptAt(0)}
	m.screen = screenMeditation
	return m, waitForEvent(m.gen, ch)
}

// goHome unmounts the meditation screen. Events already in flight for it
// are dropped by the generation check.
func (m *model) goHome() {
	if m.screen != screenMeditation {
		return
	}
	m.gen++
	m.eventChan = nil
	m.mounter.Unmount()
	m.session = session{}
	m.enterHome()
}

func (m *model) press() {
	if m.screen != screenMeditation || m.session.holding {
		return
	}
	m.session.holding = true
	if err := m.mounter.PointerDown(); err != nil {
		m.logger.Warn("pointer down failed", "error", err)
	}
}

func (m *model) release() {
	if m.screen != screenMeditation || !m.session.holding {
		return
	}
	m.session.holding = false
	if err := m.mounter.PointerUp(); err != nil {
		m.logger.Warn("pointer up failed", "error", err)
	}
}

// handleEvent processes an event and updates model state.
func (m *model) handleEvent(event events.Event) {
	switch e := event.(type) {
	case *events.ScreenMountedEvent:
		m.session.id = e.SessionID
		m.session.prompt = meditation.PromptEntry{Text: e.Text, Color: e.Color}

	case *events.SessionStateChangedEvent:
		m.session.state = meditation.SessionState(e.To)
		if m.session.state == meditation.StateIdle {
			m.session.elapsed = 0
			m.session.progress = 0
		}

	case *events.SessionTickEvent:
		m.session.elapsed = e.Elapsed
		m.session.progress = e.Progress

	case *events.SessionCompleteEvent:
		m.session.state = meditation.StateComplete
		m.session.elapsed = e.Elapsed
		m.session.progress = 1

	case *events.PromptRotatedEvent:
		m.session.prompt = meditation.PromptEntry{Text: e.Text, Color: e.Color}

	case *events.AnimationTargetEvent:
		m.engine.SetTarget(e.Param, e.Value, e.Curve)

	case *events.ErrorEvent:
		m.errText = e.Message
	}
}
