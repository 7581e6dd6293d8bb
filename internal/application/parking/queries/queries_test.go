package queries_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/parking-garage/internal/application/parking/dtos"
	"github.com/andrescamacho/parking-garage/internal/application/parking/queries"
	"github.com/andrescamacho/parking-garage/internal/domain/garage"
	"github.com/andrescamacho/parking-garage/test/helpers"
)

func seed(t *testing.T, doc []byte) *helpers.MockDocumentRepository {
	t.Helper()
	repo := helpers.NewMockDocumentRepository()
	require.NoError(t, repo.Upsert(context.Background(), "downtown", doc))
	return repo
}

func TestGetStatusHandler_EmptyGarageRow(t *testing.T) {
	// Arrange
	doc := helpers.NewGarageBuilder("downtown").
		Level("0").
		Row("0", garage.SpotTypeMotorcycle, garage.SpotTypeCompact, garage.SpotTypeCompact).
		MustDocument()
	repo := seed(t, doc)
	handler := queries.NewGetStatusHandler(repo)

	// Act
	resp, err := handler.Handle(context.Background(), &queries.GetStatusQuery{GarageName: "downtown"})

	// Assert
	require.NoError(t, err)
	status := resp.(*queries.GetStatusResponse).Status
	assert.Equal(t, "downtown", status.Name)
	assert.Equal(t, 3, status.MaxCapacity)
	assert.Equal(t, 0, status.Occupancy)
	assert.True(t, status.Available)
	assert.Equal(t, []string{"MOTORCYCLE", "CAR"}, status.AvailableSpotTypes)
	assert.Equal(t, 3, status.AvailableSpotsTotal)
	assert.Equal(t, []string{"0", "1", "2"}, status.AvailableSpots)
	assert.Empty(t, status.AssignedSpots)
	assert.Equal(t, []string{"0", "1", "2"}, status.AvailableVehicleIDs)
	assert.Equal(t, &dtos.NextSpotDTO{Level: "0", Row: "0", SpotID: "0", SpotIDs: []string{"0"}}, status.NextMotoSpot)
	assert.Equal(t, &dtos.NextSpotDTO{Level: "0", Row: "0", SpotID: "1", SpotIDs: []string{"1"}}, status.NextCarSpot)
	assert.Nil(t, status.NextBusSpot)
}

func TestGetStatusHandler_CountsParkedVehicles(t *testing.T) {
	doc := []byte(`{"name":"downtown","levels":{"0":{"rows":{"0":{"spots":{
		"0":{"spot_type":2,"vehicle":{"vehicle_id":"0","vehicle_type":2}},
		"1":{"spot_type":2,"vehicle":{"vehicle_id":"0","vehicle_type":2}},
		"2":{"spot_type":2,"vehicle":{"vehicle_id":"0","vehicle_type":2}},
		"3":{"spot_type":2,"vehicle":{"vehicle_id":"0","vehicle_type":2}},
		"4":{"spot_type":2,"vehicle":{"vehicle_id":"0","vehicle_type":2}},
		"5":{"spot_type":1,"vehicle":{"vehicle_id":"1","vehicle_type":1}}}}}}}}`)
	repo := seed(t, doc)

	resp, err := queries.NewGetStatusHandler(repo).Handle(context.Background(), &queries.GetStatusQuery{GarageName: "downtown"})

	require.NoError(t, err)
	status := resp.(*queries.GetStatusResponse).Status
	assert.Equal(t, 2, status.Occupancy)
	assert.Equal(t, 1, status.Buses)
	assert.Equal(t, 1, status.Cars)
	assert.Equal(t, 0, status.Motorcycles)
	assert.False(t, status.Available)
	assert.Empty(t, status.AvailableSpotTypes)
	assert.Equal(t, []string{"0", "1"}, status.AssignedVehicleIDs)
	assert.Nil(t, status.NextCarSpot)
}

func TestGetStatusHandler_Errors(t *testing.T) {
	handler := queries.NewGetStatusHandler(helpers.NewMockDocumentRepository())

	_, err := handler.Handle(context.Background(), &queries.GetStatusQuery{})
	assert.ErrorIs(t, err, garage.ErrValidation)

	_, err = handler.Handle(context.Background(), &queries.GetStatusQuery{GarageName: "missing"})
	assert.ErrorIs(t, err, garage.ErrGarageNotFound)
}

func TestExportGarageHandler_ReturnsCanonicalDocument(t *testing.T) {
	// Arrange
	canonical := helpers.NewGarageBuilder("downtown").Row("0", garage.SpotTypeCompact).MustDocument()
	repo := seed(t, []byte(`{"name":"downtown","occupancy":5,"levels":{"0":{"rows":{"0":{"spots":{"0":{"spot_type":1,"vehicle":{}}}}}}}}`))

	// Act
	resp, err := queries.NewExportGarageHandler(repo).Handle(context.Background(), &queries.ExportGarageQuery{GarageName: "downtown"})

	// Assert
	require.NoError(t, err)
	export := resp.(*queries.ExportGarageResponse)
	assert.Equal(t, string(canonical), string(export.Document))
	assert.Equal(t, int64(1), export.Version)
}
