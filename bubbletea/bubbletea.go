// Package bubbletea provides a Bubble Tea TUI that shows a spinner while a
// backend request is in flight and then the rendered response.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/ragview"
)

// FetchFunc performs the backend request. It must return promptly once ctx
// is cancelled.
type FetchFunc func(ctx context.Context) (ragview.Response, error)

// Run creates and runs the Bubble Tea TUI program. It blocks until the program
// exits. When ctx is cancelled the program quits.
func Run(ctx context.Context, m Model) (Model, error) {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		m = fm
	}
	m.Close()
	return m, err
}

// ResponseMsg delivers the result of the FetchFunc to the model.
type ResponseMsg struct {
	Response ragview.Response
	Err      error
}
