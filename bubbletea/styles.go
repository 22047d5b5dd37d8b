package bubbletea

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/ragview"
)

// Styles maps a Theme to lipgloss styles for TUI rendering.
type Styles struct {
	Title   lipgloss.Style
	Spinner lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
	Muted   lipgloss.Style
}

// NewStyles creates Styles from a Theme.
func NewStyles(t ragview.Theme) Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Bold(true),
		Spinner: lipgloss.NewStyle().Foreground(ansiColor(t.Link)),
		Error:   lipgloss.NewStyle().Foreground(ansiColor(t.Error)),
		Success: lipgloss.NewStyle().Foreground(ansiColor(t.Success)),
		Muted:   lipgloss.NewStyle().Foreground(ansiColor(t.Muted)).Faint(true),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}
