package helpers

import (
	"strconv"

	"github.com/andrescamacho/parking-garage/internal/adapters/snapshot"
	"github.com/andrescamacho/parking-garage/internal/domain/garage"
)

// GarageBuilder assembles garage documents for tests. Spot IDs are handed
// out sequentially across the whole garage starting at 0.
type GarageBuilder struct {
	garage   *garage.Garage
	level    *garage.Level
	nextSpot int
	err      error
}

// NewGarageBuilder starts an empty garage with the given name
func NewGarageBuilder(name string) *GarageBuilder {
	return &GarageBuilder{garage: garage.NewGarage(name)}
}

// Level appends a level; following Row calls add rows to it
func (b *GarageBuilder) Level(id string) *GarageBuilder {
	if b.err != nil {
		return b
	}
	b.level, b.err = b.garage.AddLevel(id)
	return b
}

// Row appends a row of empty spots of the given types to the current level
func (b *GarageBuilder) Row(id string, types ...garage.SpotType) *GarageBuilder {
	if b.err != nil {
		return b
	}
	if b.level == nil {
		if b.Level("0"); b.err != nil {
			return b
		}
	}
	row, err := b.level.AddRow(id)
	if err != nil {
		b.err = err
		return b
	}
	for _, spotType := range types {
		if _, err := row.AddSpot(strconv.Itoa(b.nextSpot), spotType, nil); err != nil {
			b.err = err
			return b
		}
		b.nextSpot++
	}
	return b
}

// Garage returns the assembled capacity model
func (b *GarageBuilder) Garage() (*garage.Garage, error) {
	return b.garage, b.err
}

// Document returns the assembled garage as a canonical document
func (b *GarageBuilder) Document() ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}
	return snapshot.Encode(b.garage)
}

// MustDocument is Document for fixtures known to be valid
func (b *GarageBuilder) MustDocument() []byte {
	doc, err := b.Document()
	if err != nil {
		panic(err)
	}
	return doc
}

// SpotTypes repeats a spot type n times
func SpotTypes(spotType garage.SpotType, n int) []garage.SpotType {
	types := make([]garage.SpotType, n)
	for i := range types {
		types[i] = spotType
	}
	return types
}

// ParseSpotTypeNames converts display names such as "COMPACT" into spot types
func ParseSpotTypeNames(names ...string) ([]garage.SpotType, bool) {
	lookup := map[string]garage.SpotType{
		garage.SpotTypeMotorcycle.Name(): garage.SpotTypeMotorcycle,
		garage.SpotTypeCompact.Name():    garage.SpotTypeCompact,
		garage.SpotTypeLarge.Name():      garage.SpotTypeLarge,
	}
	types := make([]garage.SpotType, 0, len(names))
	for _, name := range names {
		spotType, ok := lookup[name]
		if !ok {
			return nil, false
		}
		types = append(types, spotType)
	}
	return types, true
}
