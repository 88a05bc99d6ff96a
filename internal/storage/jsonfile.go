package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/venom/internal/log"
	"github.com/zjrosen/venom/internal/store"
	"github.com/zjrosen/venom/internal/tracing"
)

// JSONFile stores the document as pretty printed JSON in a single file.
type JSONFile struct {
	path   string
	tracer trace.Tracer
}

// NewJSONFile returns a backend for path. Nothing is touched on disk until
// Load or Save.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{
		path:   path,
		tracer: otel.Tracer("venom/storage"),
	}
}

// Path returns the save file path.
func (f *JSONFile) Path() string { return f.path }

// Close is a no-op.
func (f *JSONFile) Close() error { return nil }

// Load reads the save file. A missing file yields an empty document and no
// error. A file that cannot be read or parsed yields an empty document and
// an error wrapping ErrCorrupt.
func (f *JSONFile) Load(ctx context.Context) (store.Document, error) {
	_, span := f.tracer.Start(ctx, tracing.SpanLoad,
		trace.WithAttributes(
			attribute.String(tracing.AttrBackend, BackendJSON),
			attribute.String(tracing.AttrPath, f.path),
		))
	defer span.End()

	data, err := os.ReadFile(f.path) //nolint:gosec // G304: path comes from user configuration
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Info(log.CatStorage, "no save file, starting empty", "path", f.path)
			return emptyDocument(), nil
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return emptyDocument(), fmt.Errorf("%w: reading %s: %w", ErrCorrupt, f.path, err)
	}

	var doc store.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return emptyDocument(), fmt.Errorf("%w: parsing %s: %w", ErrCorrupt, f.path, err)
	}

	span.SetAttributes(
		attribute.Int(tracing.AttrTaskCount, len(doc.Tasks)),
		attribute.Int(tracing.AttrLabelCount, len(doc.Labels)),
	)
	log.Debug(log.CatStorage, "loaded", "path", f.path, "tasks", len(doc.Tasks), "labels", len(doc.Labels))
	return doc, nil
}

// Save writes doc atomically: the parent directory is created, the JSON is
// written to a temp file in the same directory and renamed over the target.
func (f *JSONFile) Save(ctx context.Context, doc store.Document) (err error) {
	_, span := f.tracer.Start(ctx, tracing.SpanSave,
		trace.WithAttributes(
			attribute.String(tracing.AttrBackend, BackendJSON),
			attribute.String(tracing.AttrPath, f.path),
			attribute.Int(tracing.AttrTaskCount, len(doc.Tasks)),
			attribute.Int(tracing.AttrLabelCount, len(doc.Labels)),
		))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if doc.Tasks == nil {
		doc.Tasks = []store.TaskRecord{}
	}
	if doc.Labels == nil {
		doc.Labels = []store.LabelRecord{}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating save directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	log.Debug(log.CatStorage, "saved", "path", f.path, "tasks", len(doc.Tasks), "labels", len(doc.Labels))
	return nil
}
