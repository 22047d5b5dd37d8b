package http

import (
	"context"
	"net"
)

// ServeListenerForTest exposes serve for external tests.
func (s *Server) ServeListenerForTest(ctx context.Context, ln net.Listener) error {
	return s.serve(ctx, ln)
}
