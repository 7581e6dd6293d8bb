package garage

// Assignment describes where a parked vehicle was placed
type Assignment struct {
	VehicleID   string
	VehicleType VehicleType
	LevelID     string
	RowID       string
	SpotID      string
	SpotIDs     []string
	SpotType    SpotType
}

// Allocator runs park and exit operations against one garage tree. It owns
// the derived state rebuilt from that tree and keeps both in lockstep.
// An Allocator is not safe for concurrent use; callers serialize the whole
// decode, operate, encode cycle.
type Allocator struct {
	garage  *Garage
	derived *DerivedState
}

// NewAllocator rebuilds derived state from the garage and primes the
// next-spot cache
func NewAllocator(g *Garage) *Allocator {
	return &Allocator{
		garage:  g,
		derived: Rebuild(g),
	}
}

// Garage returns the underlying capacity model
func (a *Allocator) Garage() *Garage {
	return a.garage
}

// Derived returns the current derived state
func (a *Allocator) Derived() *DerivedState {
	return a.derived
}

// Park assigns the next cached location for the vehicle type to a new
// vehicle with the smallest free vehicle ID.
func (a *Allocator) Park(vehicleType VehicleType) (*Assignment, error) {
	if !vehicleType.IsValid() {
		return nil, NewInvalidVehicleTypeError(int(vehicleType))
	}
	if !a.derived.Available {
		return nil, NewGarageFullError()
	}
	location := a.derived.NextSpot(vehicleType)
	if location.IsEmpty() {
		return nil, NewVehicleTypeFullError(vehicleType)
	}
	for _, spot := range location.Spots {
		if !a.derived.SpotIDs.IsAvailable(spot.ID) {
			return nil, NewNotAvailableError(spotPoolName, spot.ID)
		}
	}

	vehicleID, err := a.derived.VehicleIDs.Acquire()
	if err != nil {
		return nil, err
	}
	vehicle := &Vehicle{ID: vehicleID, Type: vehicleType}
	a.assign(location, vehicle)

	return &Assignment{
		VehicleID:   vehicleID,
		VehicleType: vehicleType,
		LevelID:     location.Level.ID,
		RowID:       location.Row.ID,
		SpotID:      location.SpotID(),
		SpotIDs:     location.SpotIDs(),
		SpotType:    location.SpotType(),
	}, nil
}

// Exit removes a vehicle from the location it claims to occupy. Every
// resolved spot must hold the vehicle and the vehicle must hold no other
// spot, otherwise nothing is changed.
func (a *Allocator) Exit(vehicleID, levelID, rowID, spotID string) error {
	if !a.derived.VehicleIDs.IsAssigned(vehicleID) {
		return NewInvalidVehicleIDError(vehicleID)
	}

	location, err := a.garage.ResolveLocation(levelID, rowID, spotID)
	if err != nil {
		return err
	}

	for _, spot := range location.Spots {
		if spot.Vehicle == nil || spot.Vehicle.ID != vehicleID {
			return NewVehicleNotInSpotError(vehicleID, spotID)
		}
		if !a.derived.SpotIDs.IsAssigned(spot.ID) {
			return NewNotAssignedError(spotPoolName, spot.ID)
		}
	}
	held := 0
	for _, spot := range location.Row.spots {
		if spot.Vehicle != nil && spot.Vehicle.ID == vehicleID {
			held++
		}
	}
	if held != len(location.Spots) {
		return NewVehicleNotInSpotError(vehicleID, spotID)
	}

	return a.unassign(location, location.Occupant())
}

// Status returns a read-only view of the garage and its derived state
func (a *Allocator) Status() Status {
	d := a.derived
	counts := make(map[VehicleType]int, len(d.VehicleCounts))
	next := make(map[VehicleType]Location)
	for _, vt := range AllVehicleTypes() {
		counts[vt] = d.VehicleCount(vt)
		next[vt] = d.NextSpot(vt)
	}
	return Status{
		Name:                a.garage.Name,
		MaxCapacity:         d.MaxCapacity,
		Occupancy:           d.Occupancy,
		VehicleCounts:       counts,
		Available:           d.Available,
		AvailableSpotTypes:  d.AvailableSpotTypes(),
		AvailableSpots:      d.SpotIDs.Available(),
		AssignedSpots:       d.SpotIDs.Assigned(),
		AvailableVehicleIDs: d.VehicleIDs.Available(),
		AssignedVehicleIDs:  d.VehicleIDs.Assigned(),
		NextSpots:           next,
	}
}

// assign binds the vehicle to every spot of the location. The caller has
// already checked that each spot ID is available.
func (a *Allocator) assign(location Location, vehicle *Vehicle) {
	for _, spot := range location.Spots {
		spot.Vehicle = &Vehicle{ID: vehicle.ID, Type: vehicle.Type}
		_ = a.derived.SpotIDs.Take(spot.ID)
	}
	a.derived.Occupancy++
	a.derived.VehicleCounts[vehicle.Type]++
	a.derived.RefreshAll(a.garage)
}

func (a *Allocator) unassign(location Location, vehicle *Vehicle) error {
	if err := a.derived.VehicleIDs.Release(vehicle.ID); err != nil {
		return err
	}
	for _, spot := range location.Spots {
		spot.Vehicle = nil
		_ = a.derived.SpotIDs.Release(spot.ID)
	}
	a.derived.Occupancy--
	a.derived.VehicleCounts[vehicle.Type]--
	a.derived.RefreshAll(a.garage)
	return nil
}
