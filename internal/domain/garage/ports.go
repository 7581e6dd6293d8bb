package garage

import (
	"context"
	"errors"
)

var (
	// ErrVersionConflict is returned by SaveIfVersion when the stored
	// document changed since it was loaded
	ErrVersionConflict = errors.New("garage document was modified concurrently")

	// ErrGarageNotFound is returned when no document is stored under a name
	ErrGarageNotFound = errors.New("garage not found")
)

// StoredDocument is a persisted garage document with its row version
type StoredDocument struct {
	Name     string
	Document []byte
	Version  int64
}

// DocumentRepository defines persistence operations for garage documents.
// Only the canonical snapshot is stored; derived state never is.
type DocumentRepository interface {
	// Load retrieves the document and the version it was read at
	Load(ctx context.Context, name string) (*StoredDocument, error)

	// SaveIfVersion replaces the document only if its version still equals
	// expected, and bumps the version. Returns ErrVersionConflict otherwise.
	SaveIfVersion(ctx context.Context, name string, document []byte, expected int64) error

	// Upsert creates the document or overwrites it unconditionally
	Upsert(ctx context.Context, name string, document []byte) error

	// List returns the names of all stored garages
	List(ctx context.Context) ([]string, error)
}
