package fs

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fwojciec/ragview"
	"github.com/fwojciec/ragview/html"
	ragjson "github.com/fwojciec/ragview/json"
)

// DefaultPattern selects every saved response below the root.
const DefaultPattern = "**/*.json"

// RenderGlob renders every file under root matching pattern as a complete
// HTML page written to outDir, mirroring the relative path with an .html
// extension. Files that fail to load or write are skipped and reported in
// the returned error; the paths written so far are always returned.
func RenderGlob(ctx context.Context, root, pattern, outDir string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern: %s", pattern)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to access root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root must be a directory: %s", root)
	}

	var matches []string
	err = doublestar.GlobWalk(os.DirFS(root), pattern, func(path string, d iofs.DirEntry) error {
		if d.IsDir() {
			return nil
		}
		matches = append(matches, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error matching pattern: %w", err)
	}
	tracer().Infof("rendering %d file(s) matching %s under %s", len(matches), pattern, root)

	var written []string
	var errs []error
	for _, rel := range matches {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		out, err := renderFile(filepath.Join(root, filepath.FromSlash(rel)), outDir, rel)
		if err != nil {
			tracer().Errorf("%s: %v", rel, err)
			errs = append(errs, fmt.Errorf("%s: %w", rel, err))
			continue
		}
		tracer().Debugf("wrote %s", out)
		written = append(written, out)
	}
	return written, errors.Join(errs...)
}

func renderFile(src, outDir, rel string) (string, error) {
	resp, err := ragjson.Load(src)
	if err != nil {
		return "", err
	}
	page := html.Page(html.RenderResponse(resp), html.FormState{URLs: rootURLs(resp)})

	out := filepath.Join(outDir, filepath.FromSlash(strings.TrimSuffix(rel, filepath.Ext(rel))+".html"))
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return "", fmt.Errorf("create directories: %w", err)
	}
	if err := os.WriteFile(out, []byte(page), 0o644); err != nil {
		return "", fmt.Errorf("write: %w", err)
	}
	return out, nil
}

func rootURLs(resp ragview.Response) []string {
	switch r := resp.(type) {
	case ragview.QueryResponse:
		return r.RootURLs()
	case ragview.ExtractionResponse:
		return r.RootURLs()
	}
	return nil
}
