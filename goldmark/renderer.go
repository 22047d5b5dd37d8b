package goldmark

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/ragview"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// answerRenderer turns the markdown of an answer into styled terminal text.
// Each block renders to its own string and blocks are separated by one
// blank line.
type answerRenderer struct {
	src    []byte
	strong lipgloss.Style
	emph   lipgloss.Style
	h2     lipgloss.Style // "#" and "##"
	h3     lipgloss.Style // "###" and deeper
	muted  lipgloss.Style
	link   lipgloss.Style
}

func newRenderer(theme ragview.Theme, src []byte) *answerRenderer {
	accent := ansiColor(theme.Accent)
	return &answerRenderer{
		src:    src,
		strong: lipgloss.NewStyle().Bold(true),
		emph:   lipgloss.NewStyle().Italic(true),
		h2:     lipgloss.NewStyle().Foreground(accent).Bold(true).Underline(true),
		h3:     lipgloss.NewStyle().Foreground(accent).Bold(true),
		muted:  lipgloss.NewStyle().Foreground(ansiColor(theme.Muted)).Faint(true),
		link:   lipgloss.NewStyle().Foreground(ansiColor(theme.Link)).Underline(true),
	}
}

// ansiColor maps a theme palette index to a lipgloss color. Negative
// indexes mean the terminal default.
func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}

func (r *answerRenderer) render(width int) string {
	doc := goldmark.DefaultParser().Parse(text.NewReader(r.src))
	return strings.Join(r.blocks(doc, width), "\n\n")
}

func (r *answerRenderer) blocks(parent ast.Node, width int) []string {
	var out []string
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		if s := r.block(c, width); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (r *answerRenderer) block(node ast.Node, width int) string {
	switch n := node.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return wrap(r.inline(n), width)

	case *ast.Heading:
		style := r.h3
		if n.Level <= 2 {
			style = r.h2
		}
		return wrap(style.Render(r.inline(n)), width)

	case *ast.List:
		var b strings.Builder
		r.list(&b, n, width, "")
		return strings.TrimRight(b.String(), "\n")

	case *ast.ThematicBreak:
		return r.muted.Render(strings.Repeat("─", min(width, 40)))

	case *ast.Blockquote:
		bar := r.muted.Render("▎") + " "
		return prefixLines(strings.Join(r.blocks(n, width-2), "\n\n"), bar, bar)

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		// Commands and snippets keep their lines; no reflow.
		gutter := r.muted.Render("│") + " "
		return prefixLines(r.lines(n), gutter, gutter)

	case *ast.HTMLBlock:
		return r.lines(n)

	default:
		return strings.Join(r.blocks(n, width), "\n\n")
	}
}

// list writes one line group per item. Nested lists indent by two columns
// and wrapped item text aligns with the text after the marker.
func (r *answerRenderer) list(b *strings.Builder, l *ast.List, width int, indent string) {
	num := l.Start
	for c := l.FirstChild(); c != nil; c = c.NextSibling() {
		marker := "• "
		if l.IsOrdered() {
			marker = strconv.Itoa(num) + ". "
			num++
		}
		var parts []string
		flush := func() {
			if len(parts) == 0 {
				return
			}
			r.item(b, indent+marker, strings.Join(parts, " "), width)
			marker = strings.Repeat(" ", lipgloss.Width(marker))
			parts = nil
		}
		for ic := c.FirstChild(); ic != nil; ic = ic.NextSibling() {
			switch in := ic.(type) {
			case *ast.List:
				flush()
				r.list(b, in, width, indent+"  ")
			case *ast.Paragraph, *ast.TextBlock:
				parts = append(parts, r.inline(in))
			default:
				parts = append(parts, r.block(in, width))
			}
		}
		flush()
	}
}

func (r *answerRenderer) item(b *strings.Builder, prefix, content string, width int) {
	pw := lipgloss.Width(prefix)
	wrapped := wrap(content, max(width-pw, 10))
	b.WriteString(prefixLines(wrapped, prefix, strings.Repeat(" ", pw)))
	b.WriteByte('\n')
}

// lines returns the raw source lines of a block without the final newline.
func (r *answerRenderer) lines(n ast.Node) string {
	var b strings.Builder
	segs := n.Lines()
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		b.Write(seg.Value(r.src))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r *answerRenderer) inline(n ast.Node) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		r.span(&b, c)
	}
	return b.String()
}

func (r *answerRenderer) span(b *strings.Builder, node ast.Node) {
	switch n := node.(type) {
	case *ast.Text:
		b.Write(n.Segment.Value(r.src))
		switch {
		case n.HardLineBreak():
			b.WriteByte('\n')
		case n.SoftLineBreak():
			b.WriteByte(' ')
		}

	case *ast.String:
		b.Write(n.Value)

	case *ast.Emphasis:
		// ***x*** parses as nested emphasis, so Level is 1 or 2.
		style := r.strong
		if n.Level == 1 {
			style = r.emph
		}
		b.WriteString(style.Render(r.inline(n)))

	case *ast.CodeSpan:
		b.WriteString(r.strong.Render(r.inline(n)))

	case *ast.Link:
		b.WriteString(r.link.Render(r.inline(n)))
		b.WriteString(" " + r.muted.Render("("+string(n.Destination)+")"))

	case *ast.AutoLink:
		b.WriteString(r.link.Render(string(n.URL(r.src))))

	case *ast.RawHTML:
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			b.Write(seg.Value(r.src))
		}

	default:
		// Images and unknown inlines render their text only.
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			r.span(b, c)
		}
	}
}

func wrap(s string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(s)
}

// prefixLines puts first before the first line of s and rest before every
// other line.
func prefixLines(s, first, rest string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		if i == 0 {
			lines[i] = first + lines[i]
		} else {
			lines[i] = rest + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
