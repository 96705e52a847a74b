// Package tui implements the interactive terminal screens: the add-engine
// form and the engine picker.
package tui

import (
	"errors"

	"github.com/charmbracelet/lipgloss"
)

// ErrCancelled is returned when the user leaves a screen without confirming
var ErrCancelled = errors.New("cancelled")

// Dracula colors
var (
	foreground = lipgloss.Color("#f8f8f2")
	comment    = lipgloss.Color("#6272a4")
	cyan       = lipgloss.Color("#8be9fd")
	green      = lipgloss.Color("#50fa7b")
	pink       = lipgloss.Color("#ff79c6")
	purple     = lipgloss.Color("#bd93f9")
	red        = lipgloss.Color("#ff5555")
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(purple).
			Bold(true).
			Padding(0, 1)

	inputStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(comment).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(foreground)

	doneStyle = lipgloss.NewStyle().
			Foreground(green)

	selectedStyle = lipgloss.NewStyle().
			Foreground(pink).
			Bold(true)

	urlStyle = lipgloss.NewStyle().
			Foreground(cyan)

	helpStyle = lipgloss.NewStyle().
			Foreground(comment)

	errorStyle = lipgloss.NewStyle().
			Foreground(red)
)

// NameStyle renders an engine name in listings
func NameStyle(s string) string {
	return selectedStyle.Render(s)
}

// URLStyle renders a URL in listings
func URLStyle(s string) string {
	return urlStyle.Render(s)
}
