package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/parking-garage/internal/adapters/metrics"
	"github.com/andrescamacho/parking-garage/internal/adapters/snapshot"
	"github.com/andrescamacho/parking-garage/internal/application/common"
	"github.com/andrescamacho/parking-garage/internal/application/mediator"
	"github.com/andrescamacho/parking-garage/internal/domain/garage"
)

// ImportGarageCommand creates or replaces a stored garage from a document
type ImportGarageCommand struct {
	Document []byte
}

// ImportGarageResponse reports what was stored
type ImportGarageResponse struct {
	Name        string `json:"name"`
	MaxCapacity int    `json:"max_capacity"`
	Occupancy   int    `json:"occupancy"`
}

// ImportGarageHandler handles the ImportGarage command
type ImportGarageHandler struct {
	garageRepo garage.DocumentRepository
}

// NewImportGarageHandler creates a new ImportGarageHandler
func NewImportGarageHandler(garageRepo garage.DocumentRepository) *ImportGarageHandler {
	return &ImportGarageHandler{garageRepo: garageRepo}
}

// Handle executes the ImportGarage command. The stored form is always the
// re-encoded canonical document, never the caller's bytes.
func (h *ImportGarageHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*ImportGarageCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ImportGarageCommand")
	}

	g, err := snapshot.Decode(cmd.Document)
	if err != nil {
		return nil, err
	}
	canonical, err := snapshot.Encode(g)
	if err != nil {
		return nil, fmt.Errorf("failed to encode garage: %w", err)
	}

	if err := h.garageRepo.Upsert(ctx, g.Name, canonical); err != nil {
		return nil, fmt.Errorf("failed to store garage %s: %w", g.Name, err)
	}

	status := garage.NewAllocator(g).Status()
	metrics.ObserveStatus(status)

	common.LoggerFromContext(ctx).WithField("garage", g.Name).
		Infof("garage imported: capacity %d, occupancy %d", status.MaxCapacity, status.Occupancy)

	return &ImportGarageResponse{
		Name:        status.Name,
		MaxCapacity: status.MaxCapacity,
		Occupancy:   status.Occupancy,
	}, nil
}
