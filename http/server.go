package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/ragview"
	"github.com/fwojciec/ragview/html"
	ragjson "github.com/fwojciec/ragview/json"
)

const maxBody = 32 << 20

// Server renders the front end and relays submissions to a Backend.
type Server struct {
	backend  ragview.Backend
	defaults ragview.Request
}

// Option configures the Server.
type Option func(*Server)

// WithDefaults sets the provider and limits pre-filled into an empty form.
func WithDefaults(req ragview.Request) Option {
	return func(s *Server) { s.defaults = req }
}

// New returns a Server backed by b.
func New(b ragview.Backend, opts ...Option) *Server {
	s := &Server{backend: b}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Router returns an http.Handler with registered routes.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/query", s.handleSubmit(modeQuery))
	mux.HandleFunc("/extract", s.handleSubmit(modeExtract))
	mux.HandleFunc("/render", s.handleRender)
	return mux
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return s.serve(ctx, ln)
}

func (s *Server) serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	tracer().Infof("listening on %s", ln.Addr())

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

type mode int

const (
	modeQuery mode = iota
	modeExtract
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && r.URL.Path != "/index.html" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeHTML(w, http.StatusOK, html.Page("", html.FormStateFrom(s.defaults)))
}

func (s *Server) handleSubmit(m mode) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBody)
		req, err := s.parseForm(r)
		if err == nil {
			if m == modeQuery {
				err = req.ValidateQuery()
			} else {
				err = req.ValidateExtract()
			}
		}
		form := html.FormStateFrom(req)
		if err != nil {
			writeHTML(w, http.StatusBadRequest, html.Page(html.RenderError(err.Error()), form))
			return
		}

		var resp ragview.Response
		if m == modeQuery {
			resp, err = s.backend.Query(r.Context(), req)
		} else {
			resp, err = s.backend.Extract(r.Context(), req)
		}
		if err != nil {
			tracer().Errorf("%s: %v", r.URL.Path, err)
			writeHTML(w, http.StatusBadGateway, html.Page(html.RenderError("Request failed: "+err.Error()), form))
			return
		}
		if e, ok := resp.(ragview.ErrorResponse); ok {
			tracer().Infof("%s: backend error: %s", r.URL.Path, e.Message)
		}
		writeHTML(w, http.StatusOK, html.Page(html.RenderResponse(resp), form))
	}
}

// parseForm builds a normalized Request from the submitted form. Fields left
// blank fall back to the server defaults.
func (s *Server) parseForm(r *http.Request) (ragview.Request, error) {
	if err := r.ParseForm(); err != nil {
		return s.defaults, &ragview.ValidationError{Message: "Could not read the form."}
	}
	req := ragview.Request{
		Query:        r.PostForm.Get("query"),
		Provider:     ragview.Provider(strings.ToLower(strings.TrimSpace(r.PostForm.Get("provider")))),
		RootPageURLs: r.PostForm["url"],
		MaxDepth:     s.defaults.MaxDepth,
		MaxPages:     s.defaults.MaxPages,
	}
	if req.Provider == "" {
		req.Provider = s.defaults.Provider
	}
	if v := strings.TrimSpace(r.PostForm.Get("maxDepth")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return req.Normalize(), &ragview.ValidationError{Message: "Max depth must be a number."}
		}
		req.MaxDepth = &n
	}
	if v := strings.TrimSpace(r.PostForm.Get("maxPages")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return req.Normalize(), &ragview.ValidationError{Message: "Max pages must be a number."}
		}
		req.MaxPages = &n
	}
	return req.Normalize(), nil
}

// handleRender renders a raw backend payload as an HTML fragment.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		writeHTML(w, http.StatusBadRequest, html.RenderError("failed to read body"))
		return
	}
	resp, err := ragjson.UnmarshalResponse(data)
	if err != nil {
		writeHTML(w, http.StatusBadRequest, html.RenderError(err.Error()))
		return
	}
	writeHTML(w, http.StatusOK, html.RenderResponse(resp))
}

func writeHTML(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}
