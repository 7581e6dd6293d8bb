package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/parking-garage/internal/adapters/metrics"
	"github.com/andrescamacho/parking-garage/internal/application/mediator"
	"github.com/andrescamacho/parking-garage/internal/application/parking"
	"github.com/andrescamacho/parking-garage/internal/application/parking/dtos"
	"github.com/andrescamacho/parking-garage/internal/domain/garage"
)

// GetStatusQuery requests the read-only status view of a garage
type GetStatusQuery struct {
	GarageName string `json:"garage" validate:"required"`
}

// GetStatusResponse wraps the status view
type GetStatusResponse struct {
	Status *dtos.StatusDTO
}

// GetStatusHandler handles the GetStatus query
type GetStatusHandler struct {
	garageRepo garage.DocumentRepository
}

// NewGetStatusHandler creates a new GetStatusHandler
func NewGetStatusHandler(garageRepo garage.DocumentRepository) *GetStatusHandler {
	return &GetStatusHandler{garageRepo: garageRepo}
}

// Handle executes the GetStatus query
func (h *GetStatusHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetStatusQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetStatusQuery")
	}
	if err := parking.ValidateRequest(query); err != nil {
		return nil, err
	}

	stored, err := h.garageRepo.Load(ctx, query.GarageName)
	if err != nil {
		return nil, err
	}

	alloc, err := parking.OpenAllocator(stored.Document)
	if err != nil {
		return nil, err
	}

	status := alloc.Status()
	metrics.ObserveStatus(status)

	return &GetStatusResponse{Status: dtos.StatusToDTO(status)}, nil
}
