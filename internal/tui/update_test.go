package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/npratt/hush/internal/anim"
	"github.com/npratt/hush/internal/events"
	"github.com/npratt/hush/internal/meditation"
)

// fakeMounter records calls and hands out buffered channels.
type fakeMounter struct {
	mu       sync.Mutex
	ch       chan events.Event
	mountErr error
	mounts   int
	unmounts int
	downs    int
	ups      int
}

func (f *fakeMounter) Mount(context.Context) (<-chan events.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mountErr != nil {
		return nil, f.mountErr
	}
	f.mounts++
	f.ch = make(chan events.Event, 16)
	return f.ch, nil
}

func (f *fakeMounter) Unmount() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unmounts++
	if f.ch != nil {
		close(f.ch)
		f.ch = nil
	}
}

func (f *fakeMounter) PointerDown() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.downs++
	return nil
}

func (f *fakeMounter) PointerUp() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ups++
	return nil
}

func (f *fakeMounter) counts() (downs, ups int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.downs, f.ups
}

func newTestModel(f *fakeMounter) model {
	m := newModel(context.Background(), f, 30, false, nil, nil)
	m.width, m.height = 80, 24
	return m
}

// begun returns a model already on the meditation screen.
func begun(t *testing.T, f *fakeMounter) model {
	t.Helper()
	next, cmd := newTestModel(f).Update(tea.KeyMsg{Type: tea.KeyEnter})
	m := next.(model)
	if m.screen != screenMeditation {
		t.Fatalf("screen = %v after enter, want meditation", m.screen)
	}
	if cmd == nil {
		t.Fatal("begin should wait for events")
	}
	return m
}

func update(m model, msg tea.Msg) model {
	next, _ := m.Update(msg)
	return next.(model)
}

var spaceKey = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestHandleKey_Quit(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
	}{
		{"q key", keyRunes("q")},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quitCalled := false
			m := newTestModel(&fakeMounter{})
			m.onQuit = func() { quitCalled = true }

			_, cmd := m.handleKey(tt.msg)

			if !quitCalled {
				t.Error("onQuit callback should be called")
			}
			if cmd == nil {
				t.Error("should return tea.Quit command")
			}
		})
	}
}

func TestBegin_Mounts(t *testing.T) {
	f := &fakeMounter{}
	m := begun(t, f)

	if f.mounts != 1 {
		t.Errorf("mounts = %d, want 1", f.mounts)
	}
	if m.gen != 1 {
		t.Errorf("gen = %d, want 1", m.gen)
	}
	if m.session.state != meditation.StateIdle {
		t.Errorf("session state = %s, want idle", m.session.state)
	}

	// Enter again is ignored on the meditation screen.
	update(m, tea.KeyMsg{Type: tea.KeyEnter})
	if f.mounts != 1 {
		t.Errorf("mounts = %d after second enter, want 1", f.mounts)
	}
}

func TestBegin_MountError(t *testing.T) {
	f := &fakeMounter{mountErr: errors.New("loop busy")}
	m := update(newTestModel(f), tea.KeyMsg{Type: tea.KeyEnter})

	if m.screen != screenHome {
		t.Errorf("screen = %v, want home", m.screen)
	}
	if !strings.Contains(m.View(), "loop busy") {
		t.Error("mount error not shown")
	}
}

func TestBegin_ClickOnHome(t *testing.T) {
	f := &fakeMounter{}
	m := update(newTestModel(f), tea.MouseMsg{X: 3, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.screen != screenMeditation || f.mounts != 1 {
		t.Errorf("click on home: screen=%v mounts=%d", m.screen, f.mounts)
	}
}

func TestSkipHome(t *testing.T) {
	f := &fakeMounter{}
	m := newModel(context.Background(), f, 30, true, nil, nil)
	m = update(m, beginMsg{})
	if m.screen != screenMeditation {
		t.Errorf("screen = %v, want meditation", m.screen)
	}
}

func TestMouse_PressAndRelease(t *testing.T) {
	f := &fakeMounter{}
	m := begun(t, f)
	c := m.meditationCircle()

	m = update(m, tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if downs, _ := f.counts(); downs != 0 {
		t.Fatalf("press outside the circle sent %d downs", downs)
	}

	m = update(m, tea.MouseMsg{X: c.cx, Y: c.cy, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if downs, _ := f.counts(); downs != 1 || !m.session.holding {
		t.Fatalf("press inside: downs=%d holding=%v", downs, m.session.holding)
	}

	// Motion and a second press while held send nothing.
	m = update(m, tea.MouseMsg{X: c.cx + 1, Y: c.cy, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m = update(m, tea.MouseMsg{X: c.cx, Y: c.cy, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})

	// Release anywhere ends the hold.
	m = update(m, tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone})
	downs, ups := f.counts()
	if downs != 1 || ups != 1 {
		t.Errorf("downs=%d ups=%d, want 1 and 1", downs, ups)
	}
	if m.session.holding {
		t.Error("still holding after release")
	}

	// A stray release sends nothing.
	update(m, tea.MouseMsg{Action: tea.MouseActionRelease})
	if _, ups := f.counts(); ups != 1 {
		t.Errorf("stray release sent an up: ups=%d", ups)
	}
}

func TestMouse_HitFollowsScale(t *testing.T) {
	m := begun(t, &fakeMounter{})
	c := m.meditationCircle()
	edge := c.cx + int(2*c.radius*2)

	if m.hitCircle(edge, c.cy) {
		t.Fatal("point at twice the radius hit at scale 1")
	}
	m.engine.SetTarget(anim.ParamScale, meditation.CompleteScale, anim.Immediate())
	if !m.hitCircle(edge, c.cy) {
		t.Error("point at twice the radius missed at completion scale")
	}
}

func TestSpace_TogglesHold(t *testing.T) {
	f := &fakeMounter{}
	m := begun(t, f)

	m = update(m, spaceKey)
	m = update(m, spaceKey)

	downs, ups := f.counts()
	if downs != 1 || ups != 1 {
		t.Errorf("downs=%d ups=%d, want 1 and 1", downs, ups)
	}
	if m.session.holding {
		t.Error("holding after second space")
	}
}

func TestSpace_IgnoredOnHome(t *testing.T) {
	f := &fakeMounter{}
	update(newTestModel(f), spaceKey)
	if downs, _ := f.counts(); downs != 0 {
		t.Errorf("space on home sent %d downs", downs)
	}
}

func TestEsc_UnmountsAndDropsStaleEvents(t *testing.T) {
	f := &fakeMounter{}
	m := begun(t, f)
	m = update(m, eventMsg{gen: 1, event: tick(3)})
	if m.session.elapsed != 3 {
		t.Fatalf("elapsed = %d, want 3", m.session.elapsed)
	}

	m = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenHome {
		t.Fatalf("screen = %v after esc, want home", m.screen)
	}
	if f.unmounts != 1 {
		t.Errorf("unmounts = %d, want 1", f.unmounts)
	}

	m = update(m, eventMsg{gen: 1, event: tick(4)})
	if m.session.elapsed != 0 {
		t.Errorf("stale tick applied: elapsed = %d", m.session.elapsed)
	}
	m = update(m, channelClosedMsg{gen: 1})
	if f.unmounts != 1 {
		t.Errorf("stale close triggered another unmount")
	}

	// Begin again: new generation.
	m = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.gen != 3 || f.mounts != 2 {
		t.Errorf("gen=%d mounts=%d, want 3 and 2", m.gen, f.mounts)
	}
}

func TestChannelClosed_CurrentGenerationGoesHome(t *testing.T) {
	f := &fakeMounter{}
	m := begun(t, f)

	m = update(m, channelClosedMsg{gen: m.gen})
	if m.screen != screenHome {
		t.Errorf("screen = %v, want home", m.screen)
	}
}

func tick(elapsed int) *events.SessionTickEvent {
	return &events.SessionTickEvent{
		BaseEvent: events.NewSessionEvent(events.EventSessionTick, events.SourceSession, "s"),
		Elapsed:   elapsed,
		Progress:  float64(elapsed) / meditation.TargetSeconds,
	}
}

func TestHandleEvent(t *testing.T) {
	m := begun(t, &fakeMounter{})
	send := func(ev events.Event) { m = update(m, eventMsg{gen: m.gen, event: ev}) }

	send(&events.ScreenMountedEvent{
		BaseEvent: events.NewSessionEvent(events.EventScreenMounted, events.SourceScreen, "abc"),
		Text:      "Breathe in deeply...",
		Color:     "#FF6B6B",
	})
	if m.session.id != "abc" {
		t.Errorf("session id = %q", m.session.id)
	}

	send(&events.SessionStateChangedEvent{BaseEvent: events.NewEvent(events.EventSessionStateChanged, events.SourceSession), From: "idle", To: "active"})
	send(tick(12))
	if m.session.state != meditation.StateActive || m.session.elapsed != 12 {
		t.Errorf("after tick: %s/%d", m.session.state, m.session.elapsed)
	}

	send(&events.PromptRotatedEvent{BaseEvent: events.NewEvent(events.EventPromptRotated, events.SourceRotator), Index: 2, Text: "Let go of thoughts...", Color: "#45B7D1"})
	if m.session.prompt.Text != "Let go of thoughts..." {
		t.Errorf("prompt = %+v", m.session.prompt)
	}

	send(&events.AnimationTargetEvent{BaseEvent: events.NewEvent(events.EventAnimationTarget, events.SourceDriver), Param: anim.ParamScale, Value: 1.2, Curve: anim.Timing(300*time.Millisecond, anim.EaseInOut)})
	if got := m.engine.Target(anim.ParamScale); got != 1.2 {
		t.Errorf("engine scale target = %v, want 1.2", got)
	}

	send(&events.SessionStateChangedEvent{BaseEvent: events.NewEvent(events.EventSessionStateChanged, events.SourceSession), From: "active", To: "idle", Elapsed: 12})
	if m.session.elapsed != 0 || m.session.progress != 0 {
		t.Errorf("release did not reset: %d/%v", m.session.elapsed, m.session.progress)
	}

	send(&events.SessionCompleteEvent{BaseEvent: events.NewEvent(events.EventSessionComplete, events.SourceSession), Elapsed: 60})
	if m.session.state != meditation.StateComplete || m.session.progress != 1 {
		t.Errorf("complete: %s/%v", m.session.state, m.session.progress)
	}

	send(&events.ErrorEvent{BaseEvent: events.NewInternalEvent(events.EventError), Message: "trace write failed"})
	if m.errText != "trace write failed" {
		t.Errorf("errText = %q", m.errText)
	}
}

func TestFrame_StepsEngine(t *testing.T) {
	m := begun(t, &fakeMounter{})
	start := m.now
	m.engine.SetTarget(anim.ParamScale, 1.5, anim.Timing(300*time.Millisecond, anim.EaseLinear))

	m = update(m, frameMsg(start.Add(time.Second)))
	if got := m.engine.Value(anim.ParamScale); got != 1.5 {
		t.Errorf("scale after frame = %v, want 1.5", got)
	}
}

func TestWindowSize(t *testing.T) {
	m := update(newTestModel(&fakeMounter{}), tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.width != 120 || m.height != 40 {
		t.Errorf("size = %dx%d", m.width, m.height)
	}
	if m.progress.Width != 60 {
		t.Errorf("progress width = %d, want 60", m.progress.Width)
	}
}

// send delivers ev on the currently mounted channel.
func (f *fakeMounter) send(ev events.Event) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ch == nil {
		return false
	}
	f.ch <- ev
	return true
}
