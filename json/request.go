package json

import (
	"encoding/json"

	"github.com/fwojciec/ragview"
)

// requestDTO is the backend request body. Query and provider are omitted in
// extraction mode.
type requestDTO struct {
	Query        string   `json:"query,omitempty"`
	Provider     string   `json:"provider,omitempty"`
	RootPageURLs []string `json:"rootPageUrls"`
	MaxDepth     int      `json:"maxDepth"`
	MaxPages     int      `json:"maxPages"`
}

// MarshalQueryRequest encodes a query-mode request body.
func MarshalQueryRequest(r ragview.Request) ([]byte, error) {
	provider := r.Provider
	if provider == "" {
		provider = ragview.ProviderBedrock
	}
	return json.Marshal(requestDTO{
		Query:        r.Query,
		Provider:     string(provider),
		RootPageURLs: urlsOrEmpty(r.RootPageURLs),
		MaxDepth:     r.Depth(),
		MaxPages:     r.Pages(),
	})
}

// MarshalExtractRequest encodes an extraction-mode request body.
func MarshalExtractRequest(r ragview.Request) ([]byte, error) {
	return json.Marshal(requestDTO{
		RootPageURLs: urlsOrEmpty(r.RootPageURLs),
		MaxDepth:     r.Depth(),
		MaxPages:     r.Pages(),
	})
}

func urlsOrEmpty(urls []string) []string {
	if urls == nil {
		return []string{}
	}
	return urls
}
