package html_test

import (
	"testing"

	"github.com/fwojciec/ragview"
	"github.com/fwojciec/ragview/html"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscape(t *testing.T) {
	t.Parallel()

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", html.Escape(""))
	})

	t.Run("special characters", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "&lt;a href=&#34;x&#34;&gt;Tom &amp; Jerry&#39;s&lt;/a&gt;", html.Escape(`<a href="x">Tom & Jerry's</a>`))
	})

	t.Run("whitespace and line breaks are preserved", func(t *testing.T) {
		t.Parallel()
		in := "## a\n\n\t- b  \r\n"
		assert.Equal(t, in, html.Escape(in))
	})

	t.Run("double escaping changes the result", func(t *testing.T) {
		t.Parallel()
		for _, in := range []string{"&", "<", ">", `"`, "'", "a < b"} {
			once := html.Escape(in)
			assert.NotEqual(t, once, html.Escape(once), "input %q", in)
		}
	})

	t.Run("plain text is unchanged by a second pass", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "plain text", html.Escape(html.Escape("plain text")))
	})
}

func TestRenderAnswer(t *testing.T) {
	t.Parallel()

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", html.RenderAnswer(ragview.RenderInput{}))
		assert.Equal(t, "", html.RenderAnswer(ragview.RenderInput{Sources: []ragview.SourceRef{{Title: "a", SourceURL: "b"}}}))
	})

	t.Run("script tags are neutralized", func(t *testing.T) {
		t.Parallel()
		inputs := []string{
			"<script>alert(1)</script>",
			"## <script>x</script>",
			"- **<script>**",
			"1. *<script>*\n\n<script>",
		}
		for _, in := range inputs {
			out := html.RenderAnswer(ragview.RenderInput{Text: in})
			assert.NotContains(t, out, "<script>", "input %q", in)
			assert.Contains(t, out, "&lt;script&gt;", "input %q", in)
		}
	})

	t.Run("titles with special characters are escaped once", func(t *testing.T) {
		t.Parallel()
		in := ragview.RenderInput{
			Text:    "See Q&A <Notes> for details.",
			Sources: []ragview.SourceRef{{Title: "Q&A <Notes>", SourceURL: "https://x/?a=1&b=2"}},
		}
		out := html.RenderAnswer(in)
		assert.Contains(t, out, `<a href="https://x/?a=1&amp;b=2"`)
		assert.Contains(t, out, `>Q&amp;A &lt;Notes&gt;</a>`)
		assert.NotContains(t, out, "&amp;amp;")
	})

	t.Run("links inside list items", func(t *testing.T) {
		t.Parallel()
		in := ragview.RenderInput{
			Text: "## Sources Referenced\n- Acme Guide\n- Onboarding",
			Sources: []ragview.SourceRef{
				{Title: "Acme Guide", SourceURL: "https://x/acme"},
				{Title: "Onboarding", SourceURL: "https://x/onboarding"},
			},
		}
		doc := parse(t, html.RenderAnswer(in))
		links := query(t, doc, "ul.md-ul > li.md-li > a.source-link")
		require.Len(t, links, 2)
		assert.Equal(t, "https://x/acme", attr(links[0], "href"))
		assert.Equal(t, "Acme Guide", textOf(links[0]))
		assert.Equal(t, "https://x/onboarding", attr(links[1], "href"))
	})

	t.Run("title spanning emphasis is not linked", func(t *testing.T) {
		t.Parallel()
		in := ragview.RenderInput{
			Text:    "**Acme** Guide",
			Sources: []ragview.SourceRef{{Title: "Acme Guide", SourceURL: "https://x"}},
		}
		out := html.RenderAnswer(in)
		assert.NotContains(t, out, "source-link")
		assert.Equal(t, `<p class="md-p"><strong>Acme</strong> Guide</p>`, out)
	})
}
