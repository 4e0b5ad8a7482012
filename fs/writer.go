// Package fs provides file-based output for crawl results.
package fs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chaffhq/chaff"
)

// Writer writes run results as JSON files with atomic semantics: content is
// written to a temporary file in the target directory and renamed into
// place, so readers never observe a partial report.
type Writer struct {
	path string
}

// NewWriter creates a Writer that writes the report to path.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// WriteRun serializes the run result to the configured path.
func (w *Writer) WriteRun(run *chaff.RunResult) error {
	if run == nil {
		return chaff.Errorf(chaff.EINVALID, "run result required")
	}

	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding run result: %w", err)
	}

	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".chaff-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpName, w.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("committing report: %w", err)
	}
	return nil
}
