package html

import (
	"strconv"
	"strings"

	"github.com/fwojciec/ragview"
)

// FormState is the form as last submitted, echoed back into the page.
type FormState struct {
	Query    string
	Provider ragview.Provider
	URLs     []string
	MaxDepth *int // nil shows the default
	MaxPages *int
}

// FormStateFrom returns the form state that reproduces req.
func FormStateFrom(req ragview.Request) FormState {
	return FormState{
		Query:    req.Query,
		Provider: req.Provider,
		URLs:     req.RootPageURLs,
		MaxDepth: req.MaxDepth,
		MaxPages: req.MaxPages,
	}
}

const pageHead = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Confluence Q&amp;A</title>
<style>
body{font-family:system-ui,sans-serif;max-width:860px;margin:32px auto;padding:0 16px;color:#1f2937}
label{display:block;font-weight:600;margin-top:12px}
input,select,textarea{width:100%;padding:8px;box-sizing:border-box}
.row{display:flex;gap:12px}.row>div{flex:1}
.status-bar{font-weight:600;margin:16px 0}.status-bar.error{color:#991b1b}.status-bar.success{color:#166534}
.dot{display:inline-block;width:8px;height:8px;border-radius:50%;background:currentColor}
.answer-box{border:1px solid #e5e7eb;border-radius:8px;padding:16px}
.meta{display:flex;gap:16px;margin-top:12px;font-size:14px}
.sources-header{font-weight:600;margin-top:16px}
.source-link{display:block;padding:4px 0}
.md-h2{margin-top:20px}.md-hr{border:0;border-top:1px solid #e5e7eb}
</style>
</head>
<body>
<h1>Confluence Q&amp;A</h1>
`

// Page renders a complete document: the input form pre-filled from form,
// followed by the response fragment, which must already be safe HTML.
func Page(fragment string, form FormState) string {
	var b strings.Builder
	b.WriteString(pageHead)
	writeForm(&b, form)
	if fragment != "" {
		b.WriteString(`<div id="response-area">`)
		b.WriteString(fragment)
		b.WriteString("</div>\n")
	}
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

func writeForm(b *strings.Builder, f FormState) {
	b.WriteString(`<form method="post" action="/query">` + "\n")
	b.WriteString(`<label for="query">Question</label>`)
	b.WriteString(`<textarea id="query" name="query" rows="3">` + Escape(f.Query) + `</textarea>` + "\n")

	b.WriteString(`<label for="provider">Provider</label><select id="provider" name="provider">`)
	for _, p := range ragview.Providers() {
		sel := ""
		if p == f.Provider {
			sel = " selected"
		}
		b.WriteString(`<option value="` + string(p) + `"` + sel + `>` + string(p) + `</option>`)
	}
	b.WriteString("</select>\n")

	b.WriteString(`<label>Confluence URLs</label><div id="urlContainer">`)
	urls := f.URLs
	if len(urls) < ragview.MaxRootURLs {
		urls = append(urls[:len(urls):len(urls)], "")
	}
	for _, u := range urls {
		b.WriteString(`<div class="url-input-group"><input type="text" class="url-input" name="url" value="` +
			Escape(u) + `" placeholder="https://your-confluence-url.com/pages/12345/Page+Title"></div>`)
	}
	b.WriteString("</div>\n")

	b.WriteString(`<div class="row"><div><label for="maxDepth">Max depth</label>`)
	b.WriteString(`<input type="number" id="maxDepth" name="maxDepth" min="0" value="` + numberValue(f.MaxDepth, ragview.DefaultMaxDepth) + `"></div>`)
	b.WriteString(`<div><label for="maxPages">Max pages</label>`)
	b.WriteString(`<input type="number" id="maxPages" name="maxPages" min="1" value="` + numberValue(f.MaxPages, ragview.DefaultMaxPages) + `"></div></div>` + "\n")

	b.WriteString(`<p><button type="submit" id="submitBtn">Ask</button> `)
	b.WriteString(`<button type="submit" id="extractBtn" formaction="/extract">Extract only</button></p>` + "\n")
	b.WriteString("</form>\n")
}

func numberValue(n *int, def int) string {
	if n == nil {
		return strconv.Itoa(def)
	}
	return strconv.Itoa(*n)
}
