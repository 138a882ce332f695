package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Document is a rendered export ready to be saved.
type Document struct {
	Name        string
	ContentType string
	Body        []byte
}

// Sink receives finished documents, standing in for the browser "save as"
// step.
type Sink interface {
	Save(ctx context.Context, doc Document) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, doc Document) error

// Save calls fn.
func (fn SinkFunc) Save(ctx context.Context, doc Document) error {
	return fn(ctx, doc)
}

// ErrMissingName is returned by FileSink when the document has no name.
var ErrMissingName = errors.New("export: document name is empty")

// FileSink writes documents into Dir using the document name.
type FileSink struct {
	Dir  string
	Perm os.FileMode
}

// Save writes doc to Dir/doc.Name, creating Dir when needed.
func (s FileSink) Save(ctx context.Context, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name := filepath.Base(strings.TrimSpace(doc.Name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return ErrMissingName
	}
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("export: create %s: %w", dir, err)
	}
	perm := s.Perm
	if perm == 0 {
		perm = 0o644
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, doc.Body, perm); err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	return nil
}

// WriterSink streams the document body to W.
type WriterSink struct {
	W io.Writer
}

// Save writes doc.Body to the writer.
func (s WriterSink) Save(ctx context.Context, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.W == nil {
		return errors.New("export: writer sink has no writer")
	}
	_, err := s.W.Write(doc.Body)
	return err
}
