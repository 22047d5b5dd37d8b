package ragview_test

import (
	"testing"

	"github.com/fwojciec/ragview"
	"github.com/stretchr/testify/assert"
)

func TestRootURLs(t *testing.T) {
	t.Parallel()

	t.Run("prefers list", func(t *testing.T) {
		t.Parallel()
		r := ragview.QueryResponse{RootPageURLs: []string{"a", "b"}, RootPageURL: "legacy"}
		assert.Equal(t, []string{"a", "b"}, r.RootURLs())
	})

	t.Run("falls back to legacy field", func(t *testing.T) {
		t.Parallel()
		r := ragview.ExtractionResponse{RootPageURL: "legacy"}
		assert.Equal(t, []string{"legacy"}, r.RootURLs())
	})

	t.Run("empty when neither is set", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, ragview.QueryResponse{}.RootURLs())
	})
}

func TestSourceRefs(t *testing.T) {
	t.Parallel()

	pages := []ragview.Page{
		{Title: "Acme Guide", SourceURL: "https://x"},
		{Title: "", SourceURL: "https://no-title"},
		{Title: "No URL"},
		{Title: "Second", SourceURL: "https://y"},
	}
	refs := ragview.SourceRefs(pages)
	assert.Equal(t, []ragview.SourceRef{
		{Title: "Acme Guide", SourceURL: "https://x"},
		{Title: "Second", SourceURL: "https://y"},
	}, refs)
}

func TestQueryResponse_RenderInput(t *testing.T) {
	t.Parallel()

	r := ragview.QueryResponse{
		Answer:  "see Acme Guide",
		Sources: []ragview.Page{{Title: "Acme Guide", SourceURL: "https://x"}, {Title: "Dangling"}},
	}
	in := r.RenderInput()
	assert.Equal(t, "see Acme Guide", in.Text)
	assert.Len(t, in.Sources, 1)
}

func TestErrorResponse_Status(t *testing.T) {
	t.Parallel()
	assert.Equal(t, ragview.StatusError, ragview.ErrorResponse{Message: "boom"}.Status())
}
