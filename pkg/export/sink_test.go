package export_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-unitform/pkg/export"
)

func TestFileSink_WritesDocument(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	doc := export.Document{Name: export.DefaultFilename, ContentType: export.ContentType, Body: []byte("<Import></Import>\n")}

	if err := (export.FileSink{Dir: dir}).Save(context.Background(), doc); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "data.xml"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(data, doc.Body) {
		t.Fatalf("unexpected body %q", data)
	}
}

func TestFileSink_RejectsEmptyName(t *testing.T) {
	err := (export.FileSink{Dir: t.TempDir()}).Save(context.Background(), export.Document{})
	if !errors.Is(err, export.ErrMissingName) {
		t.Fatalf("expected ErrMissingName, got %v", err)
	}
}

func TestFileSink_HonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := (export.FileSink{Dir: t.TempDir()}).Save(ctx, export.Document{Name: "data.xml"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	if err := (export.WriterSink{W: &buf}).Save(context.Background(), export.Document{Body: []byte("x")}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if buf.String() != "x" {
		t.Fatalf("expected body written, got %q", buf.String())
	}

	var called bool
	sink := export.SinkFunc(func(_ context.Context, doc export.Document) error {
		called = doc.Name == "data.xml"
		return nil
	})
	if err := sink.Save(context.Background(), export.Document{Name: "data.xml"}); err != nil || !called {
		t.Fatalf("sink func not invoked correctly (err=%v)", err)
	}
}
