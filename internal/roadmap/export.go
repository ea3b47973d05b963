package roadmap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// ExportSuffix is appended to derived export filenames.
const ExportSuffix = "-progress.json"

var whitespaceRun = regexp.MustCompile(`\s+`)

// ExportFilename derives the export filename from a roadmap name:
// lower-cased, whitespace runs replaced by hyphens, plus ExportSuffix.
func ExportFilename(name string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(name), "-") + ExportSuffix
}

// Marshal returns the canonical serialization of r: JSON indented with two
// spaces and terminated by a newline.
func Marshal(r *Roadmap) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Export writes the canonical serialization of r to w.
func Export(w io.Writer, r *Roadmap) error {
	data, err := Marshal(r)
	if err != nil {
		return &ExportError{Err: err}
	}
	if _, err := w.Write(data); err != nil {
		return &ExportError{Err: err}
	}
	return nil
}

// WriteFile exports r to path. The content is written to a temporary file
// in the same directory and renamed into place, so path is either left
// untouched or fully written.
func WriteFile(path string, r *Roadmap) error {
	data, err := Marshal(r)
	if err != nil {
		return &ExportError{Path: path, Err: err}
	}
	if err := writeAtomic(path, data); err != nil {
		return &ExportError{Path: path, Err: err}
	}
	return nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	f, err := os.CreateTemp(dir, ".roadtrack-export-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
