// Package goldmark renders answers and backend responses as ANSI-styled
// terminal output using goldmark for parsing and lipgloss for styling.
package goldmark

import "github.com/fwojciec/ragview"

// Render parses markdown source and returns ANSI-styled terminal output.
// Paragraphs, headings and list items are word-wrapped to width; code
// blocks keep their lines.
func Render(source string, width int, theme ragview.Theme) string {
	if source == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	return newRenderer(theme, []byte(source)).render(width)
}
