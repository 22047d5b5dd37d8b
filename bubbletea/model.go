package bubbletea

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/ragview"
	"github.com/fwojciec/ragview/goldmark"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

var _ tea.Model = Model{}

const (
	headerHeight = 1
	statusHeight = 1
	defaultWidth = 100
)

// Model is the Bubble Tea model for a single backend request.
type Model struct {
	// Spinner animates while the request is in flight. Exported for test access.
	Spinner spinner.Model
	// Viewport is the scrollable response area. Exported for test access.
	Viewport viewport.Model

	fetch    FetchFunc
	title    string
	theme    ragview.Theme
	styles   Styles
	maxWidth int

	ctx    context.Context
	cancel context.CancelFunc

	loading   bool
	cancelled bool
	resp      ragview.Response
	err       error
	ready     bool
}

// Option configures a Model.
type Option func(*Model)

// WithMaxWidth caps the width the response is rendered at.
func WithMaxWidth(n int) Option {
	return func(m *Model) {
		if n > 0 {
			m.maxWidth = n
		}
	}
}

// New creates a Model that calls fetch once the program starts. title is
// shown in the header line, usually the query or the root URLs.
func New(fetch FetchFunc, title string, theme ragview.Theme, opts ...Option) Model {
	styles := NewStyles(theme)
	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.Spinner))
	ctx, cancel := context.WithCancel(context.Background())
	m := Model{
		Spinner:  sp,
		fetch:    fetch,
		title:    title,
		theme:    theme,
		styles:   styles,
		maxWidth: defaultWidth,
		ctx:      ctx,
		cancel:   cancel,
		loading:  true,
	}
	for _, o := range opts {
		o(&m)
	}
	return m
}

// Loading returns whether the request is still in flight.
func (m Model) Loading() bool { return m.loading }

// Response returns the backend response, nil until it arrives.
func (m Model) Response() ragview.Response { return m.resp }

// Err returns the request error, if any. Cancellation is not an error.
func (m Model) Err() error { return m.err }

// Cancelled returns whether the request was cancelled by the user.
func (m Model) Cancelled() bool { return m.cancelled }

// Close releases the request context.
func (m Model) Close() { m.cancel() }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Spinner.Tick, runFetch(m.ctx, m.fetch))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case ResponseMsg:
		m.loading = false
		switch {
		case errors.Is(msg.Err, context.Canceled):
			m.cancelled = true
		case msg.Err != nil:
			m.err = msg.Err
		default:
			m.resp = msg.Response
		}
		if m.ready {
			m.Viewport.SetContent(m.renderContent())
			m.Viewport.GotoTop()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n")
	if m.loading {
		body := m.Spinner.View() + " " + m.styles.Muted.Render("Retrieving pages and generating answer...")
		b.WriteString(body)
		b.WriteString(strings.Repeat("\n", max(m.Viewport.Height-1, 0)))
	} else {
		b.WriteString(m.Viewport.View())
	}
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	return b.String()
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	vpHeight := msg.Height - headerHeight - statusHeight
	if vpHeight < 1 {
		vpHeight = 1
	}
	if !m.ready {
		m.Viewport = viewport.New(msg.Width, vpHeight)
		m.ready = true
	} else {
		m.Viewport.Width = msg.Width
		m.Viewport.Height = vpHeight
	}
	if !m.loading {
		m.Viewport.SetContent(m.renderContent())
	}
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		if m.loading {
			m.cancel()
			return m, nil
		}
		return m, tea.Quit
	case "q", "esc":
		m.cancel()
		return m, tea.Quit
	}
	if m.loading {
		return m, nil
	}
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	return m, cmd
}

func (m Model) contentWidth() int {
	w := m.Viewport.Width
	if w <= 0 || w > m.maxWidth {
		w = m.maxWidth
	}
	return w
}

func (m Model) renderContent() string {
	w := m.contentWidth()
	switch {
	case m.cancelled:
		return m.styles.Muted.Render("Request cancelled.")
	case m.err != nil:
		return goldmark.RenderError("Request failed: "+m.err.Error(), w, m.theme)
	case m.resp != nil:
		return goldmark.RenderResponse(m.resp, w, m.theme)
	}
	return ""
}

func (m Model) header() string {
	w := m.Viewport.Width
	if w <= 0 {
		w = m.maxWidth
	}
	return m.styles.Title.Render(runewidth.Truncate(m.title, w, "…"))
}

func (m Model) statusLine() string {
	hint, pos := "↑/↓ scroll · q quit", ""
	style := m.styles.Muted
	switch {
	case m.loading:
		hint = "ctrl+c cancel · q quit"
	case m.err != nil:
		hint = "Request failed · q quit"
		style = m.styles.Error
	default:
		pos = fmt.Sprintf("%3.f%%", m.Viewport.ScrollPercent()*100)
	}
	gap := m.Viewport.Width - uniseg.StringWidth(hint) - uniseg.StringWidth(pos)
	if gap < 1 {
		return style.Render(hint)
	}
	return style.Render(hint) + strings.Repeat(" ", gap) + m.styles.Muted.Render(pos)
}

// runFetch runs the request off the update loop and reports the result.
func runFetch(ctx context.Context, fetch FetchFunc) tea.Cmd {
	return func() tea.Msg {
		resp, err := fetch(ctx)
		return ResponseMsg{Response: resp, Err: err}
	}
}
