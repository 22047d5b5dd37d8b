// Package html renders backend responses as HTML fragments.
//
// Answer text goes through three stages, always in this order: Escape
// neutralizes HTML-significant characters, Render rewrites the restricted
// markdown subset into markup, and InjectLinks turns source titles into
// anchors. RenderAnswer runs all three.
package html

import (
	"html"

	"github.com/fwojciec/ragview"
)

// Escape replaces &, <, >, " and ' with character references. Every other
// byte, including line breaks, is kept. Escaping is not idempotent: each raw
// string must be escaped exactly once.
func Escape(raw string) string {
	return html.EscapeString(raw)
}

// RenderAnswer escapes the raw answer text, renders it and injects links for
// the given sources.
func RenderAnswer(in ragview.RenderInput) string {
	if in.Text == "" {
		return ""
	}
	return InjectLinks(Render(Escape(in.Text)), in.Sources)
}
