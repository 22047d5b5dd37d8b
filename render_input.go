package ragview

// SourceRef pairs a document title with the URL it should link to.
type SourceRef struct {
	Title     string
	SourceURL string
}

// Linkable reports whether the reference has both a title and a URL.
func (s SourceRef) Linkable() bool {
	return s.Title != "" && s.SourceURL != ""
}

// RenderInput is the raw answer text plus the sources that may be linked
// from it. It is built per response and not modified while rendering.
type RenderInput struct {
	Text    string
	Sources []SourceRef
}

// SourceRefs converts pages to source references, keeping only pages that
// have both a title and a source URL. Order is preserved.
func SourceRefs(pages []Page) []SourceRef {
	var refs []SourceRef
	for _, p := range pages {
		ref := SourceRef{Title: p.Title, SourceURL: p.SourceURL}
		if ref.Linkable() {
			refs = append(refs, ref)
		}
	}
	return refs
}
