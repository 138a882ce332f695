// Package unitform is the entry point for authoring a storage unit
// configuration and exporting it as the data.xml import document. It
// re-exports the pieces most callers need; see pkg/formstate for editing
// rules and pkg/export for the document layout.
package unitform

import (
	"context"

	"github.com/goliatone/go-unitform/pkg/export"
	"github.com/goliatone/go-unitform/pkg/formstate"
	"github.com/goliatone/go-unitform/pkg/unit"
)

// StorageUnit aliases unit.StorageUnit.
type StorageUnit = unit.StorageUnit

// Target aliases formstate.Target for callers addressing edits.
type Target = formstate.Target

// NewManager exposes the form state constructor from the top-level module.
func NewManager(options ...formstate.Option) *formstate.Manager {
	return formstate.New(options...)
}

// GenerateDocument renders state with the given exporter options. With no
// options the output matches the legacy unescaped document.
func GenerateDocument(state StorageUnit, options ...export.Option) ([]byte, error) {
	return export.New(options...).GenerateDocument(state)
}

// Save renders the manager's current state and hands it to sink under the
// default file name and content type.
func Save(ctx context.Context, manager *formstate.Manager, sink export.Sink, options ...export.Option) error {
	doc, err := export.New(options...).Document(manager.Snapshot())
	if err != nil {
		return err
	}
	return sink.Save(ctx, doc)
}
