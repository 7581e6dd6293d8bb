package persistence

import (
	"time"
)

// GarageModel represents the garages table.
// NOTE: only the canonical document is stored - counters, ID pools and the
// next-spot cache are rebuilt from it on every load.
type GarageModel struct {
	Name       string    `gorm:"column:name;primaryKey"`
	Document   string    `gorm:"column:document;type:text;not null"` // canonical garage JSON
	RowVersion int64     `gorm:"column:row_version;not null;default:1"`
	CreatedAt  time.Time `gorm:"column:created_at;not null"`
	UpdatedAt  time.Time `gorm:"column:updated_at;not null"`
}

func (GarageModel) TableName() string {
	return "garages"
}
