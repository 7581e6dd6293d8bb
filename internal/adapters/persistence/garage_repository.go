package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/parking-garage/internal/domain/garage"
)

// GormGarageRepository implements garage.DocumentRepository using GORM.
// Writes are guarded by the row_version column so concurrent
// read-modify-write cycles cannot silently overwrite each other.
type GormGarageRepository struct {
	db *gorm.DB
}

// NewGormGarageRepository creates a new GORM garage repository
func NewGormGarageRepository(db *gorm.DB) *GormGarageRepository {
	return &GormGarageRepository{db: db}
}

// Load retrieves a garage document together with its row version
func (r *GormGarageRepository) Load(ctx context.Context, name string) (*garage.StoredDocument, error) {
	var model GarageModel
	result := r.db.WithContext(ctx).Where("name = ?", name).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", garage.ErrGarageNotFound, name)
		}
		return nil, fmt.Errorf("failed to load garage: %w", result.Error)
	}

	return &garage.StoredDocument{
		Name:     model.Name,
		Document: []byte(model.Document),
		Version:  model.RowVersion,
	}, nil
}

// SaveIfVersion replaces the document only when the stored row version
// still matches expected
func (r *GormGarageRepository) SaveIfVersion(ctx context.Context, name string, document []byte, expected int64) error {
	result := r.db.WithContext(ctx).
		Model(&GarageModel{}).
		Where("name = ? AND row_version = ?", name, expected).
		Updates(map[string]interface{}{
			"document":    string(document),
			"row_version": gorm.Expr("row_version + 1"),
			"updated_at":  time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to save garage: %w", result.Error)
	}
	if result.RowsAffected != 1 {
		return fmt.Errorf("%w: %s at version %d", garage.ErrVersionConflict, name, expected)
	}
	return nil
}

// Upsert creates the garage or overwrites its document, bumping the row
// version so in-flight cycles against the old document fail their save
func (r *GormGarageRepository) Upsert(ctx context.Context, name string, document []byte) error {
	now := time.Now().UTC()
	model := &GarageModel{
		Name:       name,
		Document:   string(document),
		RowVersion: 1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "name"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"document":    model.Document,
			"row_version": gorm.Expr("garages.row_version + 1"),
			"updated_at":  now,
		}),
	}).Create(model)
	if result.Error != nil {
		return fmt.Errorf("failed to upsert garage: %w", result.Error)
	}
	return nil
}

// List returns the names of all stored garages in alphabetical order
func (r *GormGarageRepository) List(ctx context.Context) ([]string, error) {
	var names []string
	result := r.db.WithContext(ctx).Model(&GarageModel{}).Order("name ASC").Pluck("name", &names)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list garages: %w", result.Error)
	}
	return names, nil
}
