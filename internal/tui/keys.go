package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the bindings of both screens. It implements help.KeyMap.
type keyMap struct {
	Begin key.Binding
	Hold  key.Binding
	Back  key.Binding
	Quit  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Begin: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "begin"),
		),
		Hold: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "hold/release"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "home"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// forScreen enables only the bindings that do something on s.
func (k keyMap) forScreen(s screen) keyMap {
	home := s == screenHome
	k.Begin.SetEnabled(home)
	k.Hold.SetEnabled(!home)
	k.Back.SetEnabled(!home)
	return k
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Begin, k.Hold, k.Back, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
