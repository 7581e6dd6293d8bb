package setup_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/parking-garage/internal/adapters/metrics"
	"github.com/andrescamacho/parking-garage/internal/application/parking/commands"
	"github.com/andrescamacho/parking-garage/internal/application/parking/queries"
	"github.com/andrescamacho/parking-garage/internal/application/setup"
	"github.com/andrescamacho/parking-garage/internal/domain/garage"
	"github.com/andrescamacho/parking-garage/test/helpers"
)

func TestCreateConfiguredMediator_DispatchesParkingRequests(t *testing.T) {
	// Arrange
	ctx := context.Background()
	repo := helpers.NewMockDocumentRepository()
	registry := setup.NewHandlerRegistry(repo, 3, metrics.NewCommandMetricsCollector())
	m, err := registry.CreateConfiguredMediator()
	require.NoError(t, err)

	doc := helpers.NewGarageBuilder("downtown").
		Row("0", garage.SpotTypeCompact, garage.SpotTypeCompact).
		MustDocument()
	motorcycle := int(garage.VehicleTypeMotorcycle)

	// Act
	_, err = m.Send(ctx, &commands.ImportGarageCommand{Document: doc})
	require.NoError(t, err)
	parked, err := m.Send(ctx, &commands.ParkVehicleCommand{GarageName: "downtown", VehicleType: &motorcycle})
	require.NoError(t, err)
	status, err := m.Send(ctx, &queries.GetStatusQuery{GarageName: "downtown"})
	require.NoError(t, err)

	// Assert
	assert.Equal(t, "0", parked.(*commands.ParkVehicleResponse).SpotID)
	assert.Equal(t, 1, status.(*queries.GetStatusResponse).Status.Motorcycles)

	_, err = m.Send(ctx, &commands.ExitVehicleCommand{
		GarageName: "downtown", VehicleID: "0", LevelID: "0", RowID: "0", SpotID: "0",
	})
	require.NoError(t, err)

	export, err := m.Send(ctx, &queries.ExportGarageQuery{GarageName: "downtown"})
	require.NoError(t, err)
	assert.Equal(t, string(doc), string(export.(*queries.ExportGarageResponse).Document))
}

func TestCreateConfiguredMediator_WithoutMetrics(t *testing.T) {
	registry := setup.NewHandlerRegistry(helpers.NewMockDocumentRepository(), 0, nil)

	m, err := registry.CreateConfiguredMediator()
	require.NoError(t, err)

	_, err = m.Send(context.Background(), &queries.GetStatusQuery{GarageName: "missing"})
	assert.ErrorIs(t, err, garage.ErrGarageNotFound)
}
