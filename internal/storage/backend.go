// Package storage loads and saves the task document.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zjrosen/venom/internal/store"
)

// Backend kinds accepted by Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

var (
	// ErrUnknownBackend is returned by Open for an unsupported backend kind.
	ErrUnknownBackend = errors.New("unknown storage backend")
	// ErrCorrupt is returned by Load when the store exists but cannot be
	// read or parsed.
	ErrCorrupt = errors.New("save file unreadable")
)

// Backend persists store documents.
type Backend interface {
	// Load reads the stored document. A missing store yields an empty
	// document and no error.
	Load(ctx context.Context) (store.Document, error)
	// Save replaces the stored document with doc.
	Save(ctx context.Context, doc store.Document) error
	// Path is the file the backend reads and writes.
	Path() string
	Close() error
}

// Open returns the backend named by kind, storing at path.
func Open(kind, path string) (Backend, error) {
	switch kind {
	case "", BackendJSON:
		return NewJSONFile(path), nil
	case BackendSQLite:
		db, err := NewSQLite(path)
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, kind)
	}
}

// SameDocument reports whether a and b serialize identically. Due times are
// compared by their RFC 3339 rendering, which carries the UTC offset: the
// same instant at different offsets does not match, while distinct
// *time.Location values with the same offset do.
func SameDocument(a, b store.Document) bool {
	ab, err := json.Marshal(a)
	if err != nil {
		return false
	}
	bb, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return bytes.Equal(ab, bb)
}

// emptyDocument has non-nil slices so it encodes as [] rather than null.
func emptyDocument() store.Document {
	return store.Document{
		Tasks:  []store.TaskRecord{},
		Labels: []store.LabelRecord{},
	}
}
