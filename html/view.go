package html

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fwojciec/ragview"
)

// RenderResponse renders a backend response as an HTML fragment for the
// response area of the page.
func RenderResponse(resp ragview.Response) string {
	switch r := resp.(type) {
	case ragview.QueryResponse:
		return renderQuery(r)
	case ragview.ExtractionResponse:
		return renderExtraction(r)
	case ragview.ErrorResponse:
		return RenderError(r.Message)
	default:
		return RenderError(fmt.Sprintf("unsupported response %T", resp))
	}
}

// RenderError renders msg as an error status and message box. A blank
// message is shown as "Unknown error".
func RenderError(msg string) string {
	if strings.TrimSpace(msg) == "" {
		msg = "Unknown error"
	}
	var b strings.Builder
	statusBar(&b, "error", "Error")
	b.WriteString(`<div class="answer-box" style="border-color:#fecaca;background:#fef2f2;color:#991b1b">`)
	b.WriteString(Escape(msg))
	b.WriteString(`</div>`)
	return b.String()
}

// SourceLink renders a link to a single page. Pages without a source URL
// render as the empty string.
func SourceLink(p ragview.Page) string {
	if p.SourceURL == "" {
		return ""
	}
	title := p.Title
	if title == "" {
		title = "Untitled"
	}
	return `<a href="` + Escape(p.SourceURL) + `" target="_blank" class="source-link">` + Escape(title) + `</a>`
}

func renderQuery(r ragview.QueryResponse) string {
	roots := r.RootURLs()
	var b strings.Builder
	statusBar(&b, "success", "Success")
	b.WriteString(`<div class="answer-box">`)
	b.WriteString(RenderAnswer(r.RenderInput()))
	b.WriteString(`</div>`)
	b.WriteString(`<div class="meta">`)
	metaItem(&b, "Provider", Escape(r.Provider))
	metaItem(&b, "Pages retrieved", strconv.Itoa(r.RetrievedPageCount))
	metaItem(&b, "Sources", urlCount(len(roots)))
	b.WriteString(`</div>`)
	rootLinks(&b, roots, ` style="margin-top:20px"`)
	return b.String()
}

func renderExtraction(r ragview.ExtractionResponse) string {
	roots := r.RootURLs()
	var b strings.Builder
	statusBar(&b, "success", "Extraction complete")
	b.WriteString(`<div class="meta" style="margin-bottom:16px">`)
	metaItem(&b, "Mode", "Extract Only")
	metaItem(&b, "Pages retrieved", strconv.Itoa(r.RetrievedPageCount))
	metaItem(&b, "Sources", urlCount(len(roots)))
	b.WriteString(`</div>`)
	rootLinks(&b, roots, "")
	if len(r.Pages) > 0 {
		b.WriteString(`<div class="sources-header">Pages</div><div class="source-links">`)
		for _, p := range r.Pages {
			b.WriteString(SourceLink(p))
		}
		b.WriteString(`</div>`)
	}
	return b.String()
}

func statusBar(b *strings.Builder, class, label string) {
	b.WriteString(`<div class="status-bar ` + class + `"><span class="dot"></span> ` + label + `</div>`)
}

// metaItem writes a labelled value. value must already be safe HTML.
func metaItem(b *strings.Builder, label, value string) {
	b.WriteString(`<span><strong>` + label + `:</strong>&nbsp;` + value + `</span>`)
}

func rootLinks(b *strings.Builder, roots []string, headerAttr string) {
	if len(roots) == 0 {
		return
	}
	b.WriteString(`<div class="sources-header"` + headerAttr + `>Sources</div><div class="source-links">`)
	for _, u := range roots {
		e := Escape(u)
		b.WriteString(`<a href="` + e + `" target="_blank" class="source-link">` + e + `</a>`)
	}
	b.WriteString(`</div>`)
}

func urlCount(n int) string {
	if n == 1 {
		return "1 URL"
	}
	return strconv.Itoa(n) + " URLs"
}
