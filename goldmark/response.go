package goldmark

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/ragview"
	"github.com/mattn/go-runewidth"
)

const metaSep = " · "

// RenderResponse renders a backend response for the terminal: a status
// line, the answer, a meta line and the source lists. Error responses
// render the status line and the message only.
func RenderResponse(resp ragview.Response, width int, theme ragview.Theme) string {
	if width <= 0 {
		width = 80
	}
	v := newView(theme, width)
	switch r := resp.(type) {
	case ragview.QueryResponse:
		return v.query(r)
	case ragview.ExtractionResponse:
		return v.extraction(r)
	case ragview.ErrorResponse:
		return v.error(r.Message)
	default:
		return v.error(fmt.Sprintf("unsupported response %T", resp))
	}
}

// RenderError renders msg the way an error response is rendered.
func RenderError(msg string, width int, theme ragview.Theme) string {
	if width <= 0 {
		width = 80
	}
	return newView(theme, width).error(msg)
}

type view struct {
	theme   ragview.Theme
	width   int
	success lipgloss.Style
	failure lipgloss.Style
	header  lipgloss.Style
	muted   lipgloss.Style
	link    lipgloss.Style
}

func newView(theme ragview.Theme, width int) *view {
	return &view{
		theme:   theme,
		width:   width,
		success: lipgloss.NewStyle().Foreground(ansiColor(theme.Success)).Bold(true),
		failure: lipgloss.NewStyle().Foreground(ansiColor(theme.Error)).Bold(true),
		header:  lipgloss.NewStyle().Bold(true),
		muted:   lipgloss.NewStyle().Foreground(ansiColor(theme.Muted)),
		link:    lipgloss.NewStyle().Foreground(ansiColor(theme.Link)),
	}
}

func (v *view) query(r ragview.QueryResponse) string {
	roots := r.RootURLs()
	sections := []string{v.success.Render("✓ Success")}
	if answer := Render(r.Answer, v.width, v.theme); answer != "" {
		sections = append(sections, answer)
	}
	sections = append(sections, v.meta(
		"Provider: "+r.Provider,
		"Pages retrieved: "+strconv.Itoa(r.RetrievedPageCount),
		"Sources: "+urlCount(len(roots)),
	))
	if refs := ragview.SourceRefs(r.Sources); len(refs) > 0 {
		var b strings.Builder
		b.WriteString(v.header.Render("Referenced pages"))
		for _, ref := range refs {
			b.WriteString(v.titled(ref.Title, ref.SourceURL))
		}
		sections = append(sections, b.String())
	}
	if len(roots) > 0 {
		sections = append(sections, v.roots(roots))
	}
	return strings.Join(sections, "\n\n")
}

func (v *view) extraction(r ragview.ExtractionResponse) string {
	roots := r.RootURLs()
	sections := []string{
		v.success.Render("✓ Extraction complete"),
		v.meta(
			"Mode: Extract Only",
			"Pages retrieved: "+strconv.Itoa(r.RetrievedPageCount),
			"Sources: "+urlCount(len(roots)),
		),
	}
	if len(roots) > 0 {
		sections = append(sections, v.roots(roots))
	}
	if len(r.Pages) > 0 {
		var b strings.Builder
		b.WriteString(v.header.Render("Pages"))
		for _, p := range r.Pages {
			title := p.Title
			if title == "" {
				title = "Untitled"
			}
			b.WriteString(v.titled(title, p.SourceURL))
		}
		sections = append(sections, b.String())
	}
	return strings.Join(sections, "\n\n")
}

func (v *view) error(msg string) string {
	if strings.TrimSpace(msg) == "" {
		msg = "Unknown error"
	}
	body := lipgloss.NewStyle().Width(v.width).Render(msg)
	return v.failure.Render("✗ Error") + "\n\n" + body
}

func (v *view) meta(items ...string) string {
	line := strings.Join(items, metaSep)
	return v.muted.Render(runewidth.Truncate(line, v.width, "…"))
}

func (v *view) roots(roots []string) string {
	var b strings.Builder
	b.WriteString(v.header.Render("Sources"))
	for _, u := range roots {
		b.WriteString("\n  " + v.link.Render(runewidth.Truncate(u, v.width-2, "…")))
	}
	return b.String()
}

// titled formats one list entry: the title truncated to the available
// width, then the URL on its own line when present.
func (v *view) titled(title, url string) string {
	line := "\n  • " + runewidth.Truncate(title, v.width-4, "…")
	if url != "" {
		line += "\n    " + v.link.Render(runewidth.Truncate(url, v.width-4, "…"))
	}
	return line
}

func urlCount(n int) string {
	if n == 1 {
		return "1 URL"
	}
	return strconv.Itoa(n) + " URLs"
}
