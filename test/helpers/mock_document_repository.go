package helpers

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/andrescamacho/parking-garage/internal/domain/garage"
)

// MockDocumentRepository is an in-memory test double for
// garage.DocumentRepository with the same version semantics as the GORM one
type MockDocumentRepository struct {
	mu        sync.Mutex
	documents map[string]*garage.StoredDocument

	// ConflictsBeforeSave makes that many SaveIfVersion calls fail with a
	// version conflict, bumping the stored version as a competing writer would
	ConflictsBeforeSave int

	LoadCalls int
	SaveCalls int
}

// NewMockDocumentRepository creates an empty mock repository
func NewMockDocumentRepository() *MockDocumentRepository {
	return &MockDocumentRepository{
		documents: make(map[string]*garage.StoredDocument),
	}
}

// Load retrieves a copy of the stored document
func (m *MockDocumentRepository) Load(ctx context.Context, name string) (*garage.StoredDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoadCalls++

	doc, ok := m.documents[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", garage.ErrGarageNotFound, name)
	}
	stored := *doc
	stored.Document = append([]byte(nil), doc.Document...)
	return &stored, nil
}

// SaveIfVersion stores the document when expected matches the stored version
func (m *MockDocumentRepository) SaveIfVersion(ctx context.Context, name string, document []byte, expected int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls++

	doc, ok := m.documents[name]
	if !ok {
		return fmt.Errorf("%w: %s", garage.ErrGarageNotFound, name)
	}
	if m.ConflictsBeforeSave > 0 {
		m.ConflictsBeforeSave--
		doc.Version++
	}
	if doc.Version != expected {
		return fmt.Errorf("%w: %s at version %d", garage.ErrVersionConflict, name, expected)
	}
	doc.Document = append([]byte(nil), document...)
	doc.Version++
	return nil
}

// Upsert creates or replaces the document
func (m *MockDocumentRepository) Upsert(ctx context.Context, name string, document []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.documents[name]
	if !ok {
		m.documents[name] = &garage.StoredDocument{
			Name:     name,
			Document: append([]byte(nil), document...),
			Version:  1,
		}
		return nil
	}
	doc.Document = append([]byte(nil), document...)
	doc.Version++
	return nil
}

// List returns the stored garage names in alphabetical order
func (m *MockDocumentRepository) List(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, 0, len(m.documents))
	for name := range m.documents {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
