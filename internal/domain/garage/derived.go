package garage

const (
	vehiclePoolName = "vehicle"
	spotPoolName    = "spot"
)

// DerivedState holds everything that is computed from raw occupancy and is
// never persisted: counters, both ID pools and the next-spot cache.
type DerivedState struct {
	MaxCapacity   int
	Occupancy     int
	VehicleCounts map[VehicleType]int
	VehicleIDs    *IDPool
	SpotIDs       *IDPool
	Available     bool

	nextSpots      map[VehicleType]Location
	availableTypes map[VehicleType]bool
}

// Rebuild walks every level, row and spot once and recomputes all derived
// state from the spots' occupants, then primes the next-spot cache. It is
// the only way derived state comes into existence, so stale or corrupted
// counters in storage can never leak in.
func Rebuild(g *Garage) *DerivedState {
	d := &DerivedState{
		VehicleCounts:  make(map[VehicleType]int),
		nextSpots:      make(map[VehicleType]Location),
		availableTypes: make(map[VehicleType]bool),
	}

	var spotSpace, occupiedSpots, assignedVehicles []int
	seenVehicles := make(map[string]bool)

	for _, level := range g.levels {
		for _, row := range level.rows {
			d.MaxCapacity += len(row.spots)
			for _, spot := range row.spots {
				spotSpace = append(spotSpace, spot.Number)
				if spot.IsEmpty() {
					continue
				}
				occupiedSpots = append(occupiedSpots, spot.Number)

				v := spot.Vehicle
				if seenVehicles[v.ID] {
					continue
				}
				seenVehicles[v.ID] = true
				d.Occupancy++
				d.VehicleCounts[v.Type]++
				if n, err := ParseID(v.ID); err == nil {
					assignedVehicles = append(assignedVehicles, n)
				}
			}
		}
	}

	d.SpotIDs = NewIDPool(spotPoolName, spotSpace, occupiedSpots)
	d.VehicleIDs = NewRangePool(vehiclePoolName, d.MaxCapacity, assignedVehicles)

	for _, vt := range AllVehicleTypes() {
		d.Refresh(g, vt)
	}
	return d
}

// Refresh re-runs the search for one vehicle type, stores the result and
// recomputes garage availability from the set of types that still fit.
func (d *DerivedState) Refresh(g *Garage, vehicleType VehicleType) {
	location := g.FindLocation(vehicleType)
	d.nextSpots[vehicleType] = location
	if location.IsEmpty() {
		delete(d.availableTypes, vehicleType)
	} else {
		d.availableTypes[vehicleType] = true
	}
	d.Available = len(d.availableTypes) > 0
}

// RefreshAll refreshes the cache for every vehicle type
func (d *DerivedState) RefreshAll(g *Garage) {
	for _, vt := range AllVehicleTypes() {
		d.Refresh(g, vt)
	}
}

// NextSpot returns the cached next assignable location for a vehicle type
func (d *DerivedState) NextSpot(vehicleType VehicleType) Location {
	return d.nextSpots[vehicleType]
}

// AvailableSpotTypes returns the vehicle types that currently fit somewhere,
// in wire-code order
func (d *DerivedState) AvailableSpotTypes() []VehicleType {
	types := make([]VehicleType, 0, len(d.availableTypes))
	for _, vt := range AllVehicleTypes() {
		if d.availableTypes[vt] {
			types = append(types, vt)
		}
	}
	return types
}

// VehicleCount returns the number of parked vehicles of a type
func (d *DerivedState) VehicleCount(vehicleType VehicleType) int {
	return d.VehicleCounts[vehicleType]
}
