package tui

import "github.com/charmbracelet/lipgloss"

// styles contains all lipgloss styles used by the TUI.
var styles = struct {
	// Home screen
	Title  lipgloss.Style
	Button lipgloss.Style

	// Meditation screen
	Prompt      lipgloss.Style
	Instruction lipgloss.Style
	Timer       lipgloss.Style
	Smiley      lipgloss.Style

	// Shared
	Error  lipgloss.Style
	Footer lipgloss.Style
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("255")),

	Button: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("255")).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("245")).
		Padding(0, 3),

	Prompt: lipgloss.NewStyle().
		Bold(true),

	Instruction: lipgloss.NewStyle().
		Foreground(lipgloss.Color("250")),

	Timer: lipgloss.NewStyle().
		Foreground(lipgloss.Color("255")),

	Smiley: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("255")),

	Error: lipgloss.NewStyle().
		Foreground(lipgloss.Color("196")),

	Footer: lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")),
}
