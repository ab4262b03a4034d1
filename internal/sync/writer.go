package sync

import (
	"context"
	"os"
	"path/filepath"

	"github.com/thatguysimon/docs.pact.io/internal/foundation/errors"
	"github.com/thatguysimon/docs.pact.io/internal/links"
)

// Source lists and reads the files of the source repository.
type Source interface {
	ListFiles(ctx context.Context) ([]string, error)
	ReadFile(ctx context.Context, path string) ([]byte, error)
}

// Writer persists rendered documents at destination paths relative to a root.
type Writer interface {
	// Read returns the current content at dest and whether it exists.
	Read(dest string) ([]byte, bool, error)
	Write(dest string, content []byte) error
	Exists(dest string) bool
}

// FSWriter writes below Root on the local filesystem.
type FSWriter struct {
	Root string
}

// NewFSWriter returns a writer rooted at root.
func NewFSWriter(root string) *FSWriter {
	return &FSWriter{Root: root}
}

// Path returns the filesystem path of dest.
func (w *FSWriter) Path(dest string) string {
	return filepath.Join(w.Root, filepath.FromSlash(dest))
}

func (w *FSWriter) Read(dest string) ([]byte, bool, error) {
	data, err := os.ReadFile(w.Path(dest))
	switch {
	case err == nil:
		return data, true, nil
	case os.IsNotExist(err):
		return nil, false, nil
	default:
		return nil, false, errors.FileSystemError("failed to read destination").
			WithCause(err).
			WithContext("path", w.Path(dest)).
			Build()
	}
}

// Write creates parent directories and overwrites dest.
func (w *FSWriter) Write(dest string, content []byte) error {
	full := w.Path(dest)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return errors.FileSystemError("failed to create destination directory").
			WithCause(err).
			WithContext("path", filepath.Dir(full)).
			Build()
	}
	if err := os.WriteFile(full, content, 0o644); err != nil {
		return errors.FileSystemError("failed to write destination").
			WithCause(err).
			WithContext("path", full).
			Build()
	}
	return nil
}

func (w *FSWriter) Exists(dest string) bool {
	return links.FileExists(w.Path(dest))
}

// DryRunWriter reads through to an underlying writer and keeps writes in memory,
// so later files of the same run see earlier destinations as they would on disk.
type DryRunWriter struct {
	Writer
	pending map[string][]byte
}

// NewDryRunWriter wraps w.
func NewDryRunWriter(w Writer) *DryRunWriter {
	return &DryRunWriter{Writer: w, pending: make(map[string][]byte)}
}

func (w *DryRunWriter) Read(dest string) ([]byte, bool, error) {
	if data, ok := w.pending[dest]; ok {
		return data, true, nil
	}
	return w.Writer.Read(dest)
}

func (w *DryRunWriter) Write(dest string, content []byte) error {
	w.pending[dest] = append([]byte(nil), content...)
	return nil
}

func (w *DryRunWriter) Exists(dest string) bool {
	if _, ok := w.pending[dest]; ok {
		return true
	}
	return w.Writer.Exists(dest)
}

// dryRun wraps w in a DryRunWriter unless it already is one.
func dryRun(w Writer) Writer {
	if _, ok := w.(*DryRunWriter); ok {
		return w
	}
	return NewDryRunWriter(w)
}
