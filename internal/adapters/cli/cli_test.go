package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/andrescamacho/parking-garage/internal/domain/garage"
	"github.com/andrescamacho/parking-garage/test/helpers"
)

// writeWorkspace creates a config file backed by a fresh SQLite file and a
// seed document for a garage named "downtown"
func writeWorkspace(t *testing.T) (cfgPath, seedPath string) {
	t.Helper()
	dir := t.TempDir()

	seedPath = filepath.Join(dir, "garage.json")
	seed := helpers.NewGarageBuilder("downtown").
		Level("0").
		Row("0", garage.SpotTypeMotorcycle, garage.SpotTypeCompact).
		Row("1", helpers.SpotTypes(garage.SpotTypeLarge, 5)...).
		MustDocument()
	require.NoError(t, os.WriteFile(seedPath, seed, 0o644))

	cfgPath = filepath.Join(dir, "config.yaml")
	cfg := strings.Join([]string{
		"database:",
		"  type: sqlite",
		"  path: " + filepath.Join(dir, "garage.db"),
		"garage:",
		"  name: downtown",
		"logging:",
		"  level: error",
		"  output: stderr",
	}, "\n") + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))
	return cfgPath, seedPath
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCLI_ImportParkStatusExitExport(t *testing.T) {
	cfgPath, seedPath := writeWorkspace(t)

	out, err := run(t, "--config", cfgPath, "import", "--file", seedPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported garage downtown (capacity 7, occupancy 0)")

	out, err = run(t, "--config", cfgPath, "park", "--type", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Parked BUS as vehicle 0")
	assert.Contains(t, out, "Spot:      2-6")

	out, err = run(t, "--config", cfgPath, "status", "--json")
	require.NoError(t, err)
	assert.Equal(t, int64(1), gjson.Get(out, "buses").Int())
	assert.Equal(t, "0", gjson.Get(out, "next_moto_spot.spot_id").String())
	assert.Equal(t, gjson.Null, gjson.Get(out, "next_bus_spot").Type)

	out, err = run(t, "--config", cfgPath, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Garage downtown")
	assert.Contains(t, out, "full")

	_, err = run(t, "--config", cfgPath, "exit", "--vehicle", "0", "--level", "0", "--row", "1", "--spot", "2-6")
	require.NoError(t, err)

	exportPath := filepath.Join(t.TempDir(), "export.json")
	_, err = run(t, "--config", cfgPath, "export", "--file", exportPath)
	require.NoError(t, err)
	exported, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	seed, err := os.ReadFile(seedPath)
	require.NoError(t, err)
	assert.Equal(t, string(seed), string(exported))
}

func TestCLI_ParkReportsDomainErrors(t *testing.T) {
	cfgPath, seedPath := writeWorkspace(t)
	_, err := run(t, "--config", cfgPath, "import", "--file", seedPath)
	require.NoError(t, err)

	_, err = run(t, "--config", cfgPath, "park", "--type", "5")

	require.ErrorIs(t, err, garage.ErrInvalidVehicleType)
	assert.True(t, strings.HasPrefix(formatError(err), "Error: Invalid Vehicle Type"))
}

func TestCLI_ParkRequiresType(t *testing.T) {
	cfgPath, _ := writeWorkspace(t)

	_, err := run(t, "--config", cfgPath, "park")

	assert.Error(t, err)
}

func TestCLI_ConfigShow(t *testing.T) {
	cfgPath, _ := writeWorkspace(t)

	out, err := run(t, "--config", cfgPath, "--garage", "uptown", "config", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "Name:             uptown")
	assert.Contains(t, out, "Context Root:     /garage/v1")
}

func TestMaskPassword(t *testing.T) {
	assert.Equal(t, "postgres://garage:****@db:5432/garage", maskPassword("postgres://garage:secret@db:5432/garage"))
	assert.Equal(t, "postgres://db:5432/garage", maskPassword("postgres://db:5432/garage"))
}
