package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/parking-garage/internal/adapters/snapshot"
	"github.com/andrescamacho/parking-garage/internal/application/mediator"
	"github.com/andrescamacho/parking-garage/internal/application/parking"
	"github.com/andrescamacho/parking-garage/internal/domain/garage"
)

// ExportGarageQuery requests the canonical document of a stored garage
type ExportGarageQuery struct {
	GarageName string `json:"garage" validate:"required"`
}

// ExportGarageResponse carries the canonical document and its row version
type ExportGarageResponse struct {
	Document []byte
	Version  int64
}

// ExportGarageHandler handles the ExportGarage query
type ExportGarageHandler struct {
	garageRepo garage.DocumentRepository
}

// NewExportGarageHandler creates a new ExportGarageHandler
func NewExportGarageHandler(garageRepo garage.DocumentRepository) *ExportGarageHandler {
	return &ExportGarageHandler{garageRepo: garageRepo}
}

// Handle executes the ExportGarage query
func (h *ExportGarageHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ExportGarageQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ExportGarageQuery")
	}
	if err := parking.ValidateRequest(query); err != nil {
		return nil, err
	}

	stored, err := h.garageRepo.Load(ctx, query.GarageName)
	if err != nil {
		return nil, err
	}

	// Round trip so the output is canonical even for rows written by hand
	g, err := snapshot.Decode(stored.Document)
	if err != nil {
		return nil, err
	}
	document, err := snapshot.Encode(g)
	if err != nil {
		return nil, fmt.Errorf("failed to encode garage: %w", err)
	}

	return &ExportGarageResponse{Document: document, Version: stored.Version}, nil
}
