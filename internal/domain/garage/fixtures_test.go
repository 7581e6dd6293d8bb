package garage_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/parking-garage/internal/domain/garage"
)

// addRow adds a row of empty spots numbered from firstSpot, creating the
// level when it does not exist yet
func addRow(t *testing.T, g *garage.Garage, levelID, rowID string, firstSpot int, types ...garage.SpotType) *garage.Row {
	t.Helper()

	level, ok := g.Level(levelID)
	if !ok {
		var err error
		level, err = g.AddLevel(levelID)
		require.NoError(t, err)
	}
	row, err := level.AddRow(rowID)
	require.NoError(t, err)

	for i, spotType := range types {
		_, err := row.AddSpot(strconv.Itoa(firstSpot+i), spotType, nil)
		require.NoError(t, err)
	}
	return row
}

func repeat(spotType garage.SpotType, n int) []garage.SpotType {
	types := make([]garage.SpotType, n)
	for i := range types {
		types[i] = spotType
	}
	return types
}

// smallGarage is one level with one row: MOTORCYCLE, COMPACT, COMPACT
func smallGarage(t *testing.T) *garage.Garage {
	g := garage.NewGarage("small")
	addRow(t, g, "0", "0", 0, garage.SpotTypeMotorcycle, garage.SpotTypeCompact, garage.SpotTypeCompact)
	return g
}
