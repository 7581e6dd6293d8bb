package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/parking-garage/internal/application/parking/commands"
	"github.com/andrescamacho/parking-garage/internal/domain/garage"
	"github.com/andrescamacho/parking-garage/test/helpers"
)

func parkBus(t *testing.T, repo *helpers.MockDocumentRepository) *commands.ParkVehicleResponse {
	t.Helper()
	resp, err := commands.NewParkVehicleHandler(repo, 3).Handle(context.Background(), &commands.ParkVehicleCommand{
		GarageName:  "downtown",
		VehicleType: intPtr(int(garage.VehicleTypeBus)),
	})
	require.NoError(t, err)
	return resp.(*commands.ParkVehicleResponse)
}

func busGarage() *helpers.GarageBuilder {
	return helpers.NewGarageBuilder("downtown").
		Level("0").
		Row("0", helpers.SpotTypes(garage.SpotTypeLarge, 5)...)
}

func TestExitVehicleHandler_ReleasesRangeEncodedLocation(t *testing.T) {
	// Arrange
	repo := seedRepo(t, busGarage())
	parked := parkBus(t, repo)
	require.Equal(t, "0-4", parked.SpotID)
	handler := commands.NewExitVehicleHandler(repo, 3)

	// Act
	_, err := handler.Handle(context.Background(), &commands.ExitVehicleCommand{
		GarageName: "downtown",
		VehicleID:  parked.VehicleID,
		LevelID:    parked.Level,
		RowID:      parked.Row,
		SpotID:     parked.SpotID,
	})

	// Assert
	require.NoError(t, err)

	// the bus fits again, reusing vehicle ID 0
	again := parkBus(t, repo)
	assert.Equal(t, "0", again.VehicleID)
	assert.Equal(t, "0-4", again.SpotID)
}

func TestExitVehicleHandler_Errors(t *testing.T) {
	tests := []struct {
		name string
		cmd  commands.ExitVehicleCommand
		want error
	}{
		{
			name: "missing field",
			cmd:  commands.ExitVehicleCommand{VehicleID: "0", LevelID: "0", RowID: "0"},
			want: garage.ErrValidation,
		},
		{
			name: "unknown vehicle",
			cmd:  commands.ExitVehicleCommand{VehicleID: "9", LevelID: "0", RowID: "0", SpotID: "0-4"},
			want: garage.ErrInvalidVehicleID,
		},
		{
			name: "unknown level",
			cmd:  commands.ExitVehicleCommand{VehicleID: "0", LevelID: "7", RowID: "0", SpotID: "0-4"},
			want: garage.ErrInvalidLevelID,
		},
		{
			name: "unknown row",
			cmd:  commands.ExitVehicleCommand{VehicleID: "0", LevelID: "0", RowID: "7", SpotID: "0-4"},
			want: garage.ErrInvalidRowID,
		},
		{
			name: "partial range",
			cmd:  commands.ExitVehicleCommand{VehicleID: "0", LevelID: "0", RowID: "0", SpotID: "0-2"},
			want: garage.ErrVehicleNotInSpot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			repo := seedRepo(t, busGarage())
			parkBus(t, repo)
			saves := repo.SaveCalls
			cmd := tt.cmd
			cmd.GarageName = "downtown"

			// Act
			_, err := commands.NewExitVehicleHandler(repo, 3).Handle(context.Background(), &cmd)

			// Assert
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, saves, repo.SaveCalls)
		})
	}
}
