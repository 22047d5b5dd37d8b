package ragview

import (
	"fmt"
	"strings"
)

// Request defaults and limits applied by Normalize and the validators.
const (
	DefaultMaxDepth = 5
	DefaultMaxPages = 200
	MaxRootURLs     = 5
)

// Provider names the LLM provider the backend should answer with.
type Provider string

const (
	ProviderBedrock   Provider = "bedrock"
	ProviderGemini    Provider = "gemini"
	ProviderGitLabDuo Provider = "gitlab_duo"
)

// Providers lists the supported providers in display order.
func Providers() []Provider {
	return []Provider{ProviderBedrock, ProviderGemini, ProviderGitLabDuo}
}

// ParseProvider resolves a provider name case-insensitively. A blank name
// selects ProviderBedrock.
func ParseProvider(s string) (Provider, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return ProviderBedrock, nil
	}
	for _, p := range Providers() {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownProvider)
}

// Request is the payload sent to the backend in both query and extraction
// mode. Query and Provider are only meaningful in query mode.
type Request struct {
	Query        string
	Provider     Provider
	RootPageURLs []string
	MaxDepth     *int // nil = DefaultMaxDepth; 0 = root pages only
	MaxPages     *int // nil = DefaultMaxPages
}

// Limit returns a pointer to n for setting MaxDepth or MaxPages.
func Limit(n int) *int { return &n }

// Depth returns the effective crawl depth, never negative.
func (r Request) Depth() int {
	if r.MaxDepth == nil {
		return DefaultMaxDepth
	}
	return max(*r.MaxDepth, 0)
}

// Pages returns the effective page limit, at least 1.
func (r Request) Pages() int {
	if r.MaxPages == nil {
		return DefaultMaxPages
	}
	return max(*r.MaxPages, 1)
}

// Normalize trims the query and URLs, drops blank URLs and fills in the
// effective depth and page limits, so both are set afterwards.
func (r Request) Normalize() Request {
	out := r
	out.Query = strings.TrimSpace(r.Query)
	out.RootPageURLs = nil
	for _, u := range r.RootPageURLs {
		if u = strings.TrimSpace(u); u != "" {
			out.RootPageURLs = append(out.RootPageURLs, u)
		}
	}
	out.MaxDepth = Limit(r.Depth())
	out.MaxPages = Limit(r.Pages())
	return out
}
