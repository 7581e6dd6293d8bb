package metrics_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/parking-garage/internal/adapters/metrics"
	"github.com/andrescamacho/parking-garage/internal/application/mediator"
	"github.com/andrescamacho/parking-garage/internal/domain/garage"
)

func TestOutcome(t *testing.T) {
	assert.Equal(t, "success", metrics.Outcome(nil))
	assert.Equal(t, "CapacityExhausted", metrics.Outcome(garage.NewGarageFullError()))
	assert.Equal(t, "ReferenceNotFound", metrics.Outcome(fmt.Errorf("wrapped: %w", garage.NewInvalidLevelIDError("9"))))
	assert.Equal(t, "VersionConflict", metrics.Outcome(fmt.Errorf("%w: g", garage.ErrVersionConflict)))
	assert.Equal(t, "error", metrics.Outcome(errors.New("db down")))
}

func TestGarageMetricsCollector_RegisterAndObserve(t *testing.T) {
	// Arrange
	metrics.InitRegistry()
	t.Cleanup(func() { metrics.Registry = nil })
	collector := metrics.NewGarageMetricsCollector()
	require.NoError(t, collector.Register())

	g := garage.NewGarage("lot")
	level, _ := g.AddLevel("0")
	row, _ := level.AddRow("0")
	_, _ = row.AddSpot("0", garage.SpotTypeCompact, nil)
	_, _ = row.AddSpot("1", garage.SpotTypeCompact, nil)
	alloc := garage.NewAllocator(g)
	_, err := alloc.Park(garage.VehicleTypeCar)
	require.NoError(t, err)

	// Act
	collector.ObserveStatus(alloc.Status())
	collector.RecordPark("lot", "CAR", "success")

	// Assert
	count, err := testutil.GatherAndCount(metrics.GetRegistry(),
		"parking_garage_engine_occupancy_vehicles",
		"parking_garage_engine_parked_vehicles",
		"parking_garage_engine_park_requests_total",
	)
	require.NoError(t, err)
	assert.Equal(t, 1+3+1, count)
}

func TestPrometheusMiddleware_RecordsCommands(t *testing.T) {
	metrics.InitRegistry()
	t.Cleanup(func() { metrics.Registry = nil })
	collector := metrics.NewCommandMetricsCollector()
	require.NoError(t, collector.Register())

	middleware := metrics.PrometheusMiddleware(collector)
	failing := func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		return nil, garage.NewGarageFullError()
	}

	_, err := middleware(context.Background(), &struct{}{}, failing)

	assert.ErrorIs(t, err, garage.ErrGarageFull)
	count, err := testutil.GatherAndCount(metrics.GetRegistry(), "parking_garage_engine_commands_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestPrometheusMiddleware_NilCollectorPassesThrough(t *testing.T) {
	middleware := metrics.PrometheusMiddleware(nil)

	resp, err := middleware(context.Background(), &struct{}{}, func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", resp)
}
