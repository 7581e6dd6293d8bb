package dtos

import (
	"github.com/andrescamacho/parking-garage/internal/domain/garage"
)

// NextSpotDTO is the next assignable location for one vehicle type
type NextSpotDTO struct {
	Level   string   `json:"level"`
	Row     string   `json:"row"`
	SpotID  string   `json:"spot_id"`
	SpotIDs []string `json:"spot_ids"`
}

// StatusDTO is the serializable status view of a garage
type StatusDTO struct {
	Name                string       `json:"name"`
	MaxCapacity         int          `json:"max_capacity"`
	Occupancy           int          `json:"occupancy"`
	Cars                int          `json:"cars"`
	Motorcycles         int          `json:"motorcycles"`
	Buses               int          `json:"buses"`
	Available           bool         `json:"available"`
	AvailableSpotTypes  []string     `json:"available_spot_types"`
	AvailableSpotsTotal int          `json:"available_spots_total"`
	AvailableSpots      []string     `json:"available_spots"`
	AssignedSpots       []string     `json:"assigned_spots"`
	AssignedVehicleIDs  []string     `json:"assigned_vehicle_ids"`
	AvailableVehicleIDs []string     `json:"available_vehicle_ids"`
	NextMotoSpot        *NextSpotDTO `json:"next_moto_spot"`
	NextCarSpot         *NextSpotDTO `json:"next_car_spot"`
	NextBusSpot         *NextSpotDTO `json:"next_bus_spot"`
}

// StatusToDTO converts a domain status view for serialization
func StatusToDTO(status garage.Status) *StatusDTO {
	spotTypes := make([]string, len(status.AvailableSpotTypes))
	for i, vt := range status.AvailableSpotTypes {
		spotTypes[i] = vt.Name()
	}

	return &StatusDTO{
		Name:                status.Name,
		MaxCapacity:         status.MaxCapacity,
		Occupancy:           status.Occupancy,
		Cars:                status.VehicleCounts[garage.VehicleTypeCar],
		Motorcycles:         status.VehicleCounts[garage.VehicleTypeMotorcycle],
		Buses:               status.VehicleCounts[garage.VehicleTypeBus],
		Available:           status.Available,
		AvailableSpotTypes:  spotTypes,
		AvailableSpotsTotal: status.AvailableSpotsTotal(),
		AvailableSpots:      nonNil(status.AvailableSpots),
		AssignedSpots:       nonNil(status.AssignedSpots),
		AssignedVehicleIDs:  nonNil(status.AssignedVehicleIDs),
		AvailableVehicleIDs: nonNil(status.AvailableVehicleIDs),
		NextMotoSpot:        LocationToDTO(status.NextSpots[garage.VehicleTypeMotorcycle]),
		NextCarSpot:         LocationToDTO(status.NextSpots[garage.VehicleTypeCar]),
		NextBusSpot:         LocationToDTO(status.NextSpots[garage.VehicleTypeBus]),
	}
}

// LocationToDTO converts a location, returning nil for "none available"
func LocationToDTO(location garage.Location) *NextSpotDTO {
	if location.IsEmpty() {
		return nil
	}
	return &NextSpotDTO{
		Level:   location.Level.ID,
		Row:     location.Row.ID,
		SpotID:  location.SpotID(),
		SpotIDs: location.SpotIDs(),
	}
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
