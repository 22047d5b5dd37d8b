package goldmark_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/ragview"
	"github.com/fwojciec/ragview/goldmark"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
)

func TestRenderResponse(t *testing.T) {
	t.Parallel()

	theme := ragview.DefaultTheme()

	t.Run("query", func(t *testing.T) {
		t.Parallel()
		resp := ragview.QueryResponse{
			Answer:             "See **Deploy Guide** for details.",
			Provider:           "BEDROCK",
			RetrievedPageCount: 12,
			Sources: []ragview.Page{
				{Title: "Deploy Guide", SourceURL: "https://wiki/pages/1"},
				{Title: "No URL"},
			},
			RootPageURL: "https://wiki/pages/root",
		}
		out := stripANSI(goldmark.RenderResponse(resp, 80, theme))
		assert.True(t, strings.HasPrefix(out, "✓ Success"))
		assert.Contains(t, out, "See Deploy Guide for details.")
		assert.Contains(t, out, "Provider: BEDROCK · Pages retrieved: 12 · Sources: 1 URL")
		assert.Contains(t, out, "Referenced pages\n  • Deploy Guide\n    https://wiki/pages/1")
		assert.NotContains(t, out, "No URL")
		assert.Contains(t, out, "Sources\n  https://wiki/pages/root")
	})

	t.Run("extraction", func(t *testing.T) {
		t.Parallel()
		resp := ragview.ExtractionResponse{
			Mode:               ragview.ModeExtractOnly,
			RetrievedPageCount: 2,
			Pages:              []ragview.Page{{Title: "Root", SourceURL: "https://wiki/pages/1"}, {}},
			RootPageURLs:       []string{"https://wiki/pages/1", "https://wiki/pages/2"},
		}
		out := stripANSI(goldmark.RenderResponse(resp, 80, theme))
		assert.True(t, strings.HasPrefix(out, "✓ Extraction complete"))
		assert.Contains(t, out, "Mode: Extract Only · Pages retrieved: 2 · Sources: 2 URLs")
		assert.Contains(t, out, "Pages\n  • Root\n    https://wiki/pages/1\n  • Untitled")
	})

	t.Run("error", func(t *testing.T) {
		t.Parallel()
		out := stripANSI(goldmark.RenderResponse(ragview.ErrorResponse{Message: "Could not extract pageId"}, 80, theme))
		assert.True(t, strings.HasPrefix(out, "✗ Error"))
		assert.Contains(t, out, "Could not extract pageId")
	})

	t.Run("blank error message", func(t *testing.T) {
		t.Parallel()
		out := stripANSI(goldmark.RenderError("  ", 80, theme))
		assert.Contains(t, out, "Unknown error")
	})

	t.Run("long titles are truncated to width", func(t *testing.T) {
		t.Parallel()
		resp := ragview.QueryResponse{
			Sources: []ragview.Page{{Title: strings.Repeat("設計", 30), SourceURL: "https://wiki/pages/1"}},
		}
		out := stripANSI(goldmark.RenderResponse(resp, 30, theme))
		for _, line := range strings.Split(out, "\n") {
			assert.LessOrEqual(t, runewidth.StringWidth(line), 30, line)
		}
		assert.Contains(t, out, "…")
	})
}
