package html

import (
	"regexp"
	"strings"
)

// rewrite is one pass of the renderer.
type rewrite struct {
	re   *regexp.Regexp
	repl string
}

// passes run in order; each operates on the output of the previous one.
var passes = []rewrite{
	{regexp.MustCompile(`(?m)^## (.+)$`), `<h3 class="md-h2">${1}</h3>`},
	{regexp.MustCompile(`(?m)^### (.+)$`), `<h4 class="md-h3">${1}</h4>`},
	{regexp.MustCompile(`\*\*(.+?)\*\*`), `<strong>${1}</strong>`},
	{regexp.MustCompile(`\*(.+?)\*`), `<em>${1}</em>`},
	{regexp.MustCompile(`(?m)^- (.+)$`), `<li class="md-li">${1}</li>`},
	{regexp.MustCompile(`((?:<li class="md-li">.*</li>\n?)+)`), `<ul class="md-ul">${1}</ul>`},
	// Numbered items run after list wrapping and stay bare.
	{regexp.MustCompile(`(?m)^\d+\.\s+(.+)$`), `<li class="md-li">${1}</li>`},
	{regexp.MustCompile(`(?m)^---$`), `<hr class="md-hr">`},
}

const (
	paragraphOpen  = `<p class="md-p">`
	paragraphClose = `</p>`
	lineBreak      = `<br>`
)

// Render rewrites already-escaped text into HTML. It understands level 2 and
// 3 headings, bold, italic, bullet and numbered items, horizontal rules,
// paragraphs and line breaks. Anything else passes through unchanged.
//
// The output is a sequence of <p class="md-p"> containers, one per block of
// text separated by a blank line.
func Render(escaped string) string {
	if escaped == "" {
		return ""
	}
	out := escaped
	for _, p := range passes {
		out = p.re.ReplaceAllString(out, p.repl)
	}
	out = strings.ReplaceAll(out, "\n\n", paragraphClose+paragraphOpen)
	out = strings.ReplaceAll(out, "\n", lineBreak)
	// Close the first and last block too. Browsers hoist block tags such
	// as <h3> and <ul> out of the enclosing <p>.
	return paragraphOpen + out + paragraphClose
}
