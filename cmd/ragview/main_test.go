package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/ragview"
	ragjson "github.com/fwojciec/ragview/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points config discovery at empty directories.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

// fakeBackend records the decoded request body and replies with reply.
func fakeBackend(t *testing.T, status int, reply string, got *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		if got != nil {
			*got = map[string]any{"path": r.URL.Path}
			var body map[string]any
			require.NoError(t, json.Unmarshal(data, &body))
			for k, v := range body {
				(*got)[k] = v
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAskPlain(t *testing.T) {
	isolate(t)

	var got map[string]any
	srv := fakeBackend(t, http.StatusOK,
		`{"status":"ok","answer":"Use the **release** pipeline.","provider":"GEMINI","retrievedPageCount":3,"rootPageUrls":["https://wiki/pages/1"]}`, &got)

	var stdout, stderr bytes.Buffer
	err := run([]string{"ask", "--plain", "--backend-url", srv.URL, "--provider", "Gemini", "--url", "https://wiki/pages/1", "--max-depth", "2", "how", "to", "release?"}, &stdout, &stderr)
	require.NoError(t, err)

	assert.Equal(t, "/api/query", got["path"])
	assert.Equal(t, "how to release?", got["query"])
	assert.Equal(t, "gemini", got["provider"])
	assert.Equal(t, float64(2), got["maxDepth"])
	assert.Equal(t, float64(ragview.DefaultMaxPages), got["maxPages"])

	out := stdout.String()
	assert.Contains(t, out, "Success")
	assert.Contains(t, out, "release")
	assert.Contains(t, out, "Provider: GEMINI")
}

func TestAskPlain_Save(t *testing.T) {
	isolate(t)

	srv := fakeBackend(t, http.StatusOK, `{"status":"ok","answer":"fine","provider":"BEDROCK","retrievedPageCount":1}`, nil)
	path := filepath.Join(t.TempDir(), "out", "answer.json")

	var stdout, stderr bytes.Buffer
	err := run([]string{"ask", "--plain", "--backend-url", srv.URL, "-u", "https://wiki/pages/1", "--save", path, "q"}, &stdout, &stderr)
	require.NoError(t, err)
	assert.Contains(t, stderr.String(), "Response saved to "+path)

	resp, err := ragjson.Load(path)
	require.NoError(t, err)
	q, ok := resp.(ragview.QueryResponse)
	require.True(t, ok)
	assert.Equal(t, "fine", q.Answer)
}

func TestAsk_ValidationFailsBeforeRequest(t *testing.T) {
	isolate(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected backend call to %s", r.URL.Path)
	}))
	defer srv.Close()

	var stdout, stderr bytes.Buffer
	err := run([]string{"ask", "--plain", "--backend-url", srv.URL, "question"}, &stdout, &stderr)
	require.Error(t, err)
	assert.ErrorIs(t, err, ragview.ErrValidation)
	assert.Equal(t, ragview.MsgURLRequired, err.Error())

	err = run([]string{"ask", "--plain", "--backend-url", srv.URL, "--provider", "openai", "-u", "x", "question"}, &stdout, &stderr)
	assert.ErrorIs(t, err, ragview.ErrUnknownProvider)
}

func TestAskPlain_BackendErrorResponse(t *testing.T) {
	isolate(t)

	srv := fakeBackend(t, http.StatusBadRequest, `{"status":"error","message":"Could not extract Confluence pageId"}`, nil)

	var stdout, stderr bytes.Buffer
	err := run([]string{"ask", "--plain", "--backend-url", srv.URL, "-u", "https://wiki/x", "q"}, &stdout, &stderr)
	require.Error(t, err)
	assert.ErrorIs(t, err, ragview.ErrBackend)
	assert.Contains(t, err.Error(), "Could not extract Confluence pageId")
	assert.Empty(t, stdout.String())
}

func TestExtractPlain(t *testing.T) {
	isolate(t)

	var got map[string]any
	srv := fakeBackend(t, http.StatusOK,
		`{"status":"ok","mode":"extract-only","retrievedPageCount":7,"pages":[{"pageId":1,"title":"Root","sourceUrl":"https://wiki/pages/1"}],"rootPageUrls":["https://wiki/pages/1"]}`, &got)

	var stdout, stderr bytes.Buffer
	err := run([]string{"extract", "--plain", "--backend-url", srv.URL, "--url", "https://wiki/pages/1"}, &stdout, &stderr)
	require.NoError(t, err)

	assert.Equal(t, "/api/extract", got["path"])
	assert.NotContains(t, got, "query")
	out := stdout.String()
	assert.Contains(t, out, "Extraction complete")
	assert.Contains(t, out, "Pages retrieved: 7")
	assert.Contains(t, out, "Root")
}

func TestExtractPlain_ZeroDepth(t *testing.T) {
	isolate(t)

	var got map[string]any
	srv := fakeBackend(t, http.StatusOK, `{"status":"ok","mode":"extract-only","retrievedPageCount":1}`, &got)

	var stdout, stderr bytes.Buffer
	err := run([]string{"extract", "--plain", "--backend-url", srv.URL, "--url", "https://wiki/pages/1", "--max-depth", "0"}, &stdout, &stderr)
	require.NoError(t, err)

	assert.Equal(t, float64(0), got["maxDepth"])
	assert.Equal(t, float64(ragview.DefaultMaxPages), got["maxPages"])
}

func TestRender(t *testing.T) {
	isolate(t)

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.json"), []byte(`{"status":"ok","answer":"hello"}`), 0o644))
	out := filepath.Join(t.TempDir(), "html")

	var stdout, stderr bytes.Buffer
	err := run([]string{"render", "--out", out, root}, &stdout, &stderr)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "a.html")+"\n", stdout.String())

	data, err := os.ReadFile(filepath.Join(out, "a.html"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `<p class="md-p">hello</p>`)
}

func TestInvalidConfig(t *testing.T) {
	isolate(t)

	cfg := filepath.Join(t.TempDir(), "ragview.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("tui:\n  width: 0\n"), 0o644))

	var stdout, stderr bytes.Buffer
	err := run([]string{"--config", cfg, "render"}, &stdout, &stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tui.width must be greater than 0")
}
