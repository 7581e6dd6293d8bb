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

// ExitVehicleCommand releases a parked vehicle. SpotID may be range
// encoded ("0-4") or a comma list, exactly as returned by park.
type ExitVehicleCommand struct {
	GarageName string `json:"garage" validate:"required"`
	VehicleID  string `json:"vehicle_id" validate:"required"`
	LevelID    string `json:"level" validate:"required"`
	RowID      string `json:"row" validate:"required"`
	SpotID     string `json:"spot_id" validate:"required"`
}

// ExitVehicleResponse is empty; success carries no body
type ExitVehicleResponse struct{}

// ExitVehicleHandler handles the ExitVehicle command
type ExitVehicleHandler struct {
	garageRepo garage.DocumentRepository
	maxRetries int
}

// NewExitVehicleHandler creates a new ExitVehicleHandler
func NewExitVehicleHandler(garageRepo garage.DocumentRepository, maxRetries int) *ExitVehicleHandler {
	return &ExitVehicleHandler{
		garageRepo: garageRepo,
		maxRetries: maxRetries,
	}
}

// Handle executes the ExitVehicle command
func (h *ExitVehicleHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*ExitVehicleCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ExitVehicleCommand")
	}
	if err := parking.ValidateRequest(cmd); err != nil {
		return nil, err
	}

	logger := common.LoggerFromContext(ctx).WithFields(logrus.Fields{
		"garage":     cmd.GarageName,
		"vehicle_id": cmd.VehicleID,
		"level":      cmd.LevelID,
		"row":        cmd.RowID,
		"spot_id":    cmd.SpotID,
	})

	var status garage.Status
	err := common.WithVersionRetry(ctx, h.garageRepo, cmd.GarageName, h.maxRetries,
		func(stored *garage.StoredDocument) ([]byte, error) {
			alloc, err := parking.OpenAllocator(stored.Document)
			if err != nil {
				return nil, err
			}

			if err := alloc.Exit(cmd.VehicleID, cmd.LevelID, cmd.RowID, cmd.SpotID); err != nil {
				return nil, err
			}

			status = alloc.Status()
			return snapshot.Encode(alloc.Garage())
		})

	metrics.RecordExit(cmd.GarageName, metrics.Outcome(err))
	if err != nil {
		logger.WithError(err).Info("exit rejected")
		return nil, err
	}
	metrics.ObserveStatus(status)

	logger.Info("vehicle exited")
	return &ExitVehicleResponse{}, nil
}
