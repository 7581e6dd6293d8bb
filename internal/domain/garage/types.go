package garage

import "fmt"

// SpotType classifies a parking spot by the largest vehicle it accepts.
// The integer value is the wire code used in garage documents.
type SpotType int

const (
	SpotTypeMotorcycle SpotType = iota
	SpotTypeCompact
	SpotTypeLarge
)

var spotTypeNames = map[SpotType]string{
	SpotTypeMotorcycle: "MOTORCYCLE",
	SpotTypeCompact:    "COMPACT",
	SpotTypeLarge:      "LARGE",
}

// Name returns the display label of the spot type
func (s SpotType) Name() string {
	if name, ok := spotTypeNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

func (s SpotType) String() string {
	return s.Name()
}

// Code returns the wire code of the spot type
func (s SpotType) Code() int {
	return int(s)
}

// IsValid reports whether s is one of the known spot types
func (s SpotType) IsValid() bool {
	_, ok := spotTypeNames[s]
	return ok
}

// Accepts reports whether a vehicle of type v may occupy a spot of this type.
func (s SpotType) Accepts(v VehicleType) bool {
	for _, accepted := range compatibility[s] {
		if accepted == v {
			return true
		}
	}
	return false
}

// ParseSpotType converts a wire code into a SpotType
func ParseSpotType(code int) (SpotType, error) {
	s := SpotType(code)
	if !s.IsValid() {
		return 0, fmt.Errorf("invalid spot type: %d", code)
	}
	return s, nil
}

// VehicleType classifies a vehicle. The integer value is the wire code.
type VehicleType int

const (
	VehicleTypeMotorcycle VehicleType = iota
	VehicleTypeCar
	VehicleTypeBus
)

type vehicleTypeConfig struct {
	Name          string
	RequiredSpots int
}

var vehicleTypeConfigs = map[VehicleType]vehicleTypeConfig{
	VehicleTypeMotorcycle: {"MOTORCYCLE", 1},
	VehicleTypeCar:        {"CAR", 1},
	VehicleTypeBus:        {"BUS", 5},
}

// compatibility maps each spot type to the vehicle types it accepts
var compatibility = map[SpotType][]VehicleType{
	SpotTypeMotorcycle: {VehicleTypeMotorcycle},
	SpotTypeCompact:    {VehicleTypeMotorcycle, VehicleTypeCar},
	SpotTypeLarge:      {VehicleTypeMotorcycle, VehicleTypeCar, VehicleTypeBus},
}

// AllVehicleTypes returns every vehicle type in wire-code order
func AllVehicleTypes() []VehicleType {
	return []VehicleType{VehicleTypeMotorcycle, VehicleTypeCar, VehicleTypeBus}
}

// Name returns the display label of the vehicle type
func (v VehicleType) Name() string {
	if cfg, ok := vehicleTypeConfigs[v]; ok {
		return cfg.Name
	}
	return "UNKNOWN"
}

func (v VehicleType) String() string {
	return v.Name()
}

// Code returns the wire code of the vehicle type
func (v VehicleType) Code() int {
	return int(v)
}

// IsValid reports whether v is one of the known vehicle types
func (v VehicleType) IsValid() bool {
	_, ok := vehicleTypeConfigs[v]
	return ok
}

// RequiredSpots returns how many spots in a single row the vehicle needs
func (v VehicleType) RequiredSpots() int {
	return vehicleTypeConfigs[v].RequiredSpots
}

// ParseVehicleType converts a wire code into a VehicleType
func ParseVehicleType(code int) (VehicleType, error) {
	v := VehicleType(code)
	if !v.IsValid() {
		return 0, NewInvalidVehicleTypeError(code)
	}
	return v, nil
}
