// Package json encodes backend requests and decodes backend responses, and
// persists responses to disk for later rendering.
package json

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/ragview"
)

// Save writes a Response to a JSON file, creating parent directories as needed.
func Save(path string, resp ragview.Response) error {
	data, err := MarshalResponse(resp)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Load reads a Response from a JSON file.
func Load(path string) (ragview.Response, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return UnmarshalResponse(data)
}
