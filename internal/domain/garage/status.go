package garage

// Status is the read-only view of a garage returned by the status query
type Status struct {
	Name                string
	MaxCapacity         int
	Occupancy           int
	VehicleCounts       map[VehicleType]int
	Available           bool
	AvailableSpotTypes  []VehicleType
	AvailableSpots      []string
	AssignedSpots       []string
	AvailableVehicleIDs []string
	AssignedVehicleIDs  []string
	NextSpots           map[VehicleType]Location
}

// AvailableSpotsTotal returns the number of empty spots
func (s Status) AvailableSpotsTotal() int {
	return len(s.AvailableSpots)
}
