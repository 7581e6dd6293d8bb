package garage

import (
	"fmt"
	"sort"
	"strconv"
)

// Garage is the root of the capacity model. It owns its levels in
// document order, which is also the search order.
type Garage struct {
	Name       string
	levels     []*Level
	levelIndex map[string]*Level
}

// Level owns its rows in document order
type Level struct {
	ID       string
	rows     []*Row
	rowIndex map[string]*Row
}

// Row owns its spots, always kept in ascending numeric spot ID order
type Row struct {
	ID        string
	spots     []*Spot
	spotIndex map[string]*Spot
}

// Spot is the atomic unit of capacity. Vehicle is nil when the spot is empty.
type Spot struct {
	ID      string
	Number  int
	Type    SpotType
	Vehicle *Vehicle
}

// Vehicle is a parked vehicle. Every spot of a multi-spot vehicle holds
// its own copy.
type Vehicle struct {
	ID   string
	Type VehicleType
}

// NewGarage creates an empty garage
func NewGarage(name string) *Garage {
	return &Garage{
		Name:       name,
		levelIndex: make(map[string]*Level),
	}
}

// AddLevel appends a level. Level IDs must be unique.
func (g *Garage) AddLevel(id string) (*Level, error) {
	if _, exists := g.levelIndex[id]; exists {
		return nil, NewInvalidSnapshotError("duplicate level id %q", id)
	}
	level := &Level{
		ID:       id,
		rowIndex: make(map[string]*Row),
	}
	g.levels = append(g.levels, level)
	g.levelIndex[id] = level
	return level, nil
}

// Levels returns the levels in search order. The slice must not be modified.
func (g *Garage) Levels() []*Level {
	return g.levels
}

// Level looks up a level by ID
func (g *Garage) Level(id string) (*Level, bool) {
	level, ok := g.levelIndex[id]
	return level, ok
}

// AddRow appends a row to the level. Row IDs must be unique within the level.
func (l *Level) AddRow(id string) (*Row, error) {
	if _, exists := l.rowIndex[id]; exists {
		return nil, NewInvalidSnapshotError("duplicate row id %q on level %q", id, l.ID)
	}
	row := &Row{
		ID:        id,
		spotIndex: make(map[string]*Spot),
	}
	l.rows = append(l.rows, row)
	l.rowIndex[id] = row
	return row, nil
}

// Rows returns the rows in search order. The slice must not be modified.
func (l *Level) Rows() []*Row {
	return l.rows
}

// Row looks up a row by ID
func (l *Level) Row(id string) (*Row, bool) {
	row, ok := l.rowIndex[id]
	return row, ok
}

// AddSpot inserts a spot keeping the row sorted by numeric spot ID.
// Spot IDs must be non-negative integers in canonical form.
func (r *Row) AddSpot(id string, spotType SpotType, vehicle *Vehicle) (*Spot, error) {
	number, err := ParseID(id)
	if err != nil {
		return nil, NewInvalidSnapshotError("spot id %q in row %q: %v", id, r.ID, err)
	}
	if !spotType.IsValid() {
		return nil, NewInvalidSnapshotError("spot %q has invalid spot type %d", id, int(spotType))
	}
	if _, exists := r.spotIndex[id]; exists {
		return nil, NewInvalidSnapshotError("duplicate spot id %q in row %q", id, r.ID)
	}

	spot := &Spot{ID: id, Number: number, Type: spotType, Vehicle: vehicle}
	i := sort.Search(len(r.spots), func(i int) bool { return r.spots[i].Number > number })
	r.spots = append(r.spots, nil)
	copy(r.spots[i+1:], r.spots[i:])
	r.spots[i] = spot
	r.spotIndex[id] = spot
	return spot, nil
}

// Spots returns the spots in ascending ID order. The slice must not be modified.
func (r *Row) Spots() []*Spot {
	return r.spots
}

// Spot looks up a spot by ID
func (r *Row) Spot(id string) (*Spot, bool) {
	spot, ok := r.spotIndex[id]
	return spot, ok
}

// IsEmpty reports whether the spot has no occupant
func (s *Spot) IsEmpty() bool {
	return s.Vehicle == nil
}

// Capacity returns the total number of spots in the garage
func (g *Garage) Capacity() int {
	total := 0
	for _, level := range g.levels {
		for _, row := range level.rows {
			total += len(row.spots)
		}
	}
	return total
}

// Validate checks the invariants that cannot be enforced while the tree is
// being built: garage-wide spot ID uniqueness, occupant compatibility, the
// vehicle ID range, and that a vehicle's spots share one row and one type.
func (g *Garage) Validate() error {
	capacity := g.Capacity()
	spotOwners := make(map[string]string)
	type placement struct {
		vehicleType VehicleType
		levelID     string
		rowID       string
	}
	vehicles := make(map[string]placement)

	for _, level := range g.levels {
		for _, row := range level.rows {
			for _, spot := range row.spots {
				where := level.ID + "/" + row.ID
				if other, exists := spotOwners[spot.ID]; exists {
					return NewInvalidSnapshotError("spot id %q appears in %s and %s", spot.ID, other, where)
				}
				spotOwners[spot.ID] = where

				if spot.Vehicle == nil {
					continue
				}
				v := spot.Vehicle
				if !v.Type.IsValid() {
					return NewInvalidSnapshotError("vehicle %q has invalid vehicle type %d", v.ID, int(v.Type))
				}
				n, err := ParseID(v.ID)
				if err != nil {
					return NewInvalidSnapshotError("vehicle id %q: %v", v.ID, err)
				}
				if n >= capacity {
					return NewInvalidSnapshotError("vehicle id %q is outside [0, %d)", v.ID, capacity)
				}
				if !spot.Type.Accepts(v.Type) {
					return NewInvalidSnapshotError("%s vehicle %q cannot occupy %s spot %q",
						v.Type.Name(), v.ID, spot.Type.Name(), spot.ID)
				}
				seen, exists := vehicles[v.ID]
				if !exists {
					vehicles[v.ID] = placement{v.Type, level.ID, row.ID}
					continue
				}
				if seen.vehicleType != v.Type {
					return NewInvalidSnapshotError("vehicle %q is recorded as both %s and %s",
						v.ID, seen.vehicleType.Name(), v.Type.Name())
				}
				if seen.levelID != level.ID || seen.rowID != row.ID {
					return NewInvalidSnapshotError("vehicle %q spans more than one row", v.ID)
				}
			}
		}
	}
	return nil
}

// ParseID parses a string-encoded, non-negative integer identifier in
// canonical form ("7", not "07" or "+7").
func ParseID(id string) (int, error) {
	n, err := strconv.Atoi(id)
	if err != nil {
		return 0, fmt.Errorf("not an integer")
	}
	if n < 0 {
		return 0, fmt.Errorf("must not be negative")
	}
	if strconv.Itoa(n) != id {
		return 0, fmt.Errorf("not in canonical form")
	}
	return n, nil
}
