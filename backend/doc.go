// Package backend is the HTTP client for the Confluence retrieval and
// answering service.
package backend

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'ragview.backend'.
func tracer() tracing.Trace {
	return tracing.Select("ragview.backend")
}
