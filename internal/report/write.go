package report

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/verte-zerg/rosterdiff/internal/model"
)

// Write stores the document as indented JSON at path. The document goes to a
// temporary file first and replaces path only once fully written.
func Write(path string, doc Document) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &model.IOError{Op: "create output directory", Path: dir, Err: err}
	}
	tmpFile, err := os.CreateTemp(dir, "rosterdiff-*.json")
	if err != nil {
		return &model.IOError{Op: "create temp output", Path: dir, Err: err}
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()
	if err := tmpFile.Chmod(0o644); err != nil {
		return &model.IOError{Op: "chmod temp output", Path: tmpPath, Err: err}
	}

	writer := bufio.NewWriter(tmpFile)
	if err := Encode(writer, doc); err != nil {
		return &model.IOError{Op: "write", Path: path, Err: err}
	}
	if err := writer.Flush(); err != nil {
		return &model.IOError{Op: "flush", Path: path, Err: err}
	}
	if err := tmpFile.Close(); err != nil {
		return &model.IOError{Op: "close", Path: path, Err: err}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return &model.IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// Encode writes the document as JSON with four-space indentation, leaving
// non-ASCII and HTML characters unescaped.
func Encode(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	return enc.Encode(doc)
}
