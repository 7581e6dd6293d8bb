package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/andrescamacho/parking-garage/internal/application/parking/commands"
	"github.com/andrescamacho/parking-garage/internal/domain/garage"
	"github.com/andrescamacho/parking-garage/test/helpers"
)

func intPtr(v int) *int { return &v }

func seedRepo(t *testing.T, builder *helpers.GarageBuilder) *helpers.MockDocumentRepository {
	t.Helper()
	repo := helpers.NewMockDocumentRepository()
	doc, err := builder.Document()
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(context.Background(), "downtown", doc))
	return repo
}

func smallGarage() *helpers.GarageBuilder {
	return helpers.NewGarageBuilder("downtown").
		Level("0").
		Row("0", garage.SpotTypeMotorcycle, garage.SpotTypeCompact, garage.SpotTypeCompact)
}

func TestParkVehicleHandler_ParksCarInFirstCompactSpot(t *testing.T) {
	// Arrange
	repo := seedRepo(t, smallGarage())
	handler := commands.NewParkVehicleHandler(repo, 3)

	// Act
	resp, err := handler.Handle(context.Background(), &commands.ParkVehicleCommand{
		GarageName:  "downtown",
		VehicleType: intPtr(int(garage.VehicleTypeCar)),
	})

	// Assert
	require.NoError(t, err)
	parked := resp.(*commands.ParkVehicleResponse)
	assert.Equal(t, &commands.ParkVehicleResponse{
		VehicleID:   "0",
		VehicleType: "CAR",
		Level:       "0",
		Row:         "0",
		SpotID:      "1",
		SpotType:    "COMPACT",
	}, parked)

	stored, err := repo.Load(context.Background(), "downtown")
	require.NoError(t, err)
	assert.Equal(t, int64(2), stored.Version)
	assert.Equal(t, "0", gjson.GetBytes(stored.Document, "levels.0.rows.0.spots.1.vehicle.vehicle_id").String())
}

func TestParkVehicleHandler_MissingVehicleType(t *testing.T) {
	repo := seedRepo(t, smallGarage())
	handler := commands.NewParkVehicleHandler(repo, 3)

	_, err := handler.Handle(context.Background(), &commands.ParkVehicleCommand{GarageName: "downtown"})

	require.ErrorIs(t, err, garage.ErrValidation)
	var gerr *garage.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, "Invalid Input: vehicle_type", gerr.Code)
	assert.Equal(t, 0, repo.LoadCalls)
}

func TestParkVehicleHandler_DomainErrorsDoNotWrite(t *testing.T) {
	tests := []struct {
		name        string
		builder     *helpers.GarageBuilder
		vehicleType int
		want        error
	}{
		{
			name:        "invalid vehicle type",
			builder:     smallGarage(),
			vehicleType: 7,
			want:        garage.ErrInvalidVehicleType,
		},
		{
			name:        "no large spots for a bus",
			builder:     smallGarage(),
			vehicleType: int(garage.VehicleTypeBus),
			want:        garage.ErrCapacityExhausted,
		},
		{
			name:        "empty garage is full",
			builder:     helpers.NewGarageBuilder("downtown"),
			vehicleType: int(garage.VehicleTypeCar),
			want:        garage.ErrGarageFull,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := seedRepo(t, tt.builder)
			handler := commands.NewParkVehicleHandler(repo, 3)

			_, err := handler.Handle(context.Background(), &commands.ParkVehicleCommand{
				GarageName:  "downtown",
				VehicleType: intPtr(tt.vehicleType),
			})

			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, 0, repo.SaveCalls)
		})
	}
}

func TestParkVehicleHandler_RetriesOnVersionConflict(t *testing.T) {
	// Arrange
	repo := seedRepo(t, smallGarage())
	repo.ConflictsBeforeSave = 2
	handler := commands.NewParkVehicleHandler(repo, 5)

	// Act
	_, err := handler.Handle(context.Background(), &commands.ParkVehicleCommand{
		GarageName:  "downtown",
		VehicleType: intPtr(int(garage.VehicleTypeMotorcycle)),
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 3, repo.LoadCalls)
	assert.Equal(t, 3, repo.SaveCalls)
}

func TestParkVehicleHandler_GivesUpAfterMaxRetries(t *testing.T) {
	repo := seedRepo(t, smallGarage())
	repo.ConflictsBeforeSave = 10
	handler := commands.NewParkVehicleHandler(repo, 2)

	_, err := handler.Handle(context.Background(), &commands.ParkVehicleCommand{
		GarageName:  "downtown",
		VehicleType: intPtr(int(garage.VehicleTypeCar)),
	})

	assert.ErrorIs(t, err, garage.ErrVersionConflict)
	assert.Equal(t, 2, repo.SaveCalls)
}

func TestParkVehicleHandler_UnknownGarage(t *testing.T) {
	handler := commands.NewParkVehicleHandler(helpers.NewMockDocumentRepository(), 3)

	_, err := handler.Handle(context.Background(), &commands.ParkVehicleCommand{
		GarageName:  "nowhere",
		VehicleType: intPtr(0),
	})

	assert.ErrorIs(t, err, garage.ErrGarageNotFound)
}
