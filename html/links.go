package html

import (
	"strings"

	"github.com/fwojciec/ragview"
)

// segment is a run of rendered output. Locked segments are markup or
// anchors that later titles must not match inside.
type segment struct {
	text   string
	locked bool
}

// InjectLinks replaces every literal occurrence of each source's escaped
// title with an anchor to the source URL. Sources are applied one at a time
// in the given order; text already turned into an anchor is not scanned
// again, so when titles overlap the earlier source wins. Tags emitted by
// Render are never matched. Sources missing a title or URL are skipped, and
// a title that does not appear is silently ignored.
func InjectLinks(rendered string, sources []ragview.SourceRef) string {
	if rendered == "" || len(sources) == 0 {
		return rendered
	}
	segs := splitMarkup(rendered)
	for _, s := range sources {
		if !s.Linkable() {
			continue
		}
		title := Escape(s.Title)
		if title == "" {
			continue
		}
		segs = link(segs, title, anchor(s.SourceURL, title))
	}
	var b strings.Builder
	b.Grow(len(rendered))
	for _, s := range segs {
		b.WriteString(s.text)
	}
	return b.String()
}

func anchor(url, escapedTitle string) string {
	return `<a href="` + Escape(url) + `" target="_blank" class="source-link" style="display:inline;padding:2px 6px;font-size:inherit;">` +
		escapedTitle + `</a>`
}

// link splits every unlocked segment around title and inserts a locked
// anchor for each occurrence. Occurrences that start or end inside a
// character reference such as &amp; are left alone.
func link(segs []segment, title, a string) []segment {
	out := make([]segment, 0, len(segs))
	for _, s := range segs {
		if s.locked || !strings.Contains(s.text, title) {
			out = append(out, s)
			continue
		}
		refs := charRefs(s.text)
		start, from := 0, 0
		for {
			i := strings.Index(s.text[from:], title)
			if i < 0 {
				break
			}
			i += from
			end := i + len(title)
			if cuts(refs, i) || cuts(refs, end) {
				from = i + 1
				continue
			}
			if i > start {
				out = append(out, segment{text: s.text[start:i]})
			}
			out = append(out, segment{text: a, locked: true})
			start, from = end, end
		}
		if start < len(s.text) {
			out = append(out, segment{text: s.text[start:]})
		}
	}
	return out
}

// span is a half-open byte range.
type span struct{ start, end int }

// charRefs returns the spans of the character references in escaped text.
func charRefs(s string) []span {
	var refs []span
	for i := 0; i < len(s); i++ {
		if s[i] != '&' {
			continue
		}
		j := i + 1
		for j < len(s) && (s[j] == '#' || isAlnum(s[j])) {
			j++
		}
		if j > i+1 && j < len(s) && s[j] == ';' {
			refs = append(refs, span{i, j + 1})
			i = j
		}
	}
	return refs
}

func cuts(refs []span, pos int) bool {
	for _, r := range refs {
		if r.start < pos && pos < r.end {
			return true
		}
	}
	return false
}

func isAlnum(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

// splitMarkup separates tags from text. Escaped text never contains '<',
// so every '<' starts a tag.
func splitMarkup(s string) []segment {
	var segs []segment
	for s != "" {
		i := strings.IndexByte(s, '<')
		if i < 0 {
			segs = append(segs, segment{text: s})
			break
		}
		if i > 0 {
			segs = append(segs, segment{text: s[:i]})
		}
		j := strings.IndexByte(s[i:], '>')
		if j < 0 {
			segs = append(segs, segment{text: s[i:], locked: true})
			break
		}
		segs = append(segs, segment{text: s[i : i+j+1], locked: true})
		s = s[i+j+1:]
	}
	return segs
}
