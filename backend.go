package ragview

import "context"

// Backend is the retrieval/answering service the front end talks to.
// Both calls return a Response for anything the backend answered, including
// its own error payloads. A non-nil error means no usable response arrived.
type Backend interface {
	Query(ctx context.Context, req Request) (Response, error)
	Extract(ctx context.Context, req Request) (Response, error)
}
