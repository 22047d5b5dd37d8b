// Package http serves the web front end: the input form, form submissions
// relayed to the backend, and rendering of raw backend payloads.
package http

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'ragview.http'.
func tracer() tracing.Trace {
	return tracing.Select("ragview.http")
}
