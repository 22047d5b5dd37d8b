// Package mock provides test doubles for ragview interfaces using function fields.
package mock

import (
	"context"

	"github.com/fwojciec/ragview"
)

// Interface compliance check.
var _ ragview.Backend = (*Backend)(nil)

// Backend is a test double for ragview.Backend.
// Set QueryFn and ExtractFn for the methods you need.
type Backend struct {
	QueryFn   func(ctx context.Context, req ragview.Request) (ragview.Response, error)
	ExtractFn func(ctx context.Context, req ragview.Request) (ragview.Response, error)
}

// Query delegates to QueryFn.
func (b *Backend) Query(ctx context.Context, req ragview.Request) (ragview.Response, error) {
	return b.QueryFn(ctx, req)
}

// Extract delegates to ExtractFn.
func (b *Backend) Extract(ctx context.Context, req ragview.Request) (ragview.Response, error) {
	return b.ExtractFn(ctx, req)
}
