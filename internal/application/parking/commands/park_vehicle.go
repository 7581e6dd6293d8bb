package commands

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/andrescamacho/parking-garage/internal/adapters/metrics"
	"github.com/andrescamacho/parking-garage/internal/adapters/snapshot"
	"github.com/andrescamacho/parking-garage/internal/application/common"
	"github.com/andrescamacho/parking-garage/internal/application/mediator"
	"github.com/andrescamacho/parking-garage/internal/application/parking"
	"github.com/andrescamacho/parking-garage/internal/domain/garage"
)

// ParkVehicleCommand asks for a vehicle of the given type to be parked.
// VehicleType is a pointer so a missing field can be told apart from 0.
type ParkVehicleCommand struct {
	GarageName  string `json:"garage" validate:"required"`
	VehicleType *int   `json:"vehicle_type" validate:"required"`
}

// ParkVehicleResponse describes where the vehicle was placed
type ParkVehicleResponse struct {
	VehicleID   string `json:"vehicle_id"`
	VehicleType string `json:"vehicle_type"`
	Level       string `json:"level"`
	Row         string `json:"row"`
	SpotID      string `json:"spot_id"`
	SpotType    string `json:"spot_type"`
}

// ParkVehicleHandler handles the ParkVehicle command
type ParkVehicleHandler struct {
	garageRepo garage.DocumentRepository
	maxRetries int
}

// NewParkVehicleHandler creates a new ParkVehicleHandler
func NewParkVehicleHandler(garageRepo garage.DocumentRepository, maxRetries int) *ParkVehicleHandler {
	return &ParkVehicleHandler{
		garageRepo: garageRepo,
		maxRetries: maxRetries,
	}
}

// Handle executes the ParkVehicle command
func (h *ParkVehicleHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*ParkVehicleCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ParkVehicleCommand")
	}
	if err := parking.ValidateRequest(cmd); err != nil {
		return nil, err
	}

	logger := common.LoggerFromContext(ctx).WithField("garage", cmd.GarageName)
	vehicleType := garage.VehicleType(*cmd.VehicleType)

	var (
		assignment *garage.Assignment
		status     garage.Status
	)
	err := common.WithVersionRetry(ctx, h.garageRepo, cmd.GarageName, h.maxRetries,
		func(stored *garage.StoredDocument) ([]byte, error) {
			alloc, err := parking.OpenAllocator(stored.Document)
			if err != nil {
				return nil, err
			}

			assignment, err = alloc.Park(vehicleType)
			if err != nil {
				return nil, err
			}

			status = alloc.Status()
			return snapshot.Encode(alloc.Garage())
		})

	metrics.RecordPark(cmd.GarageName, vehicleTypeLabel(vehicleType), metrics.Outcome(err))
	if err != nil {
		logger.WithError(err).WithField("vehicle_type", *cmd.VehicleType).Info("park rejected")
		return nil, err
	}
	metrics.ObserveStatus(status)

	logger.WithFields(logrus.Fields{
		"vehicle_id":   assignment.VehicleID,
		"vehicle_type": assignment.VehicleType.Name(),
		"level":        assignment.LevelID,
		"row":          assignment.RowID,
		"spot_id":      assignment.SpotID,
	}).Info("vehicle parked")

	return &ParkVehicleResponse{
		VehicleID:   assignment.VehicleID,
		VehicleType: assignment.VehicleType.Name(),
		Level:       assignment.LevelID,
		Row:         assignment.RowID,
		SpotID:      assignment.SpotID,
		SpotType:    assignment.SpotType.Name(),
	}, nil
}

func vehicleTypeLabel(vehicleType garage.VehicleType) string {
	if !vehicleType.IsValid() {
		return "INVALID"
	}
	return vehicleType.Name()
}
