// Package fs renders saved backend responses from disk into HTML pages.
package fs

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'ragview.fs'.
func tracer() tracing.Trace {
	return tracing.Select("ragview.fs")
}
