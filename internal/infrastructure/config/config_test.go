package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/parking-garage/internal/infrastructure/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_FileAndDefaults(t *testing.T) {
	// Arrange
	path := writeConfig(t, `
server:
  app_name: lot
  version: "2.3.1"
garage:
  name: downtown
logging:
  level: debug
  format: text
`)

	// Act
	cfg, err := config.LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "/lot/v2", cfg.Server.ContextRoot())
	assert.Equal(t, "downtown", cfg.Garage.Name)
	assert.Equal(t, 5, cfg.Garage.MaxRetries)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 15*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoadConfig_EnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, "server:\n  address: \":8081\"\n")
	t.Setenv("PG_SERVER_ADDRESS", ":9999")
	t.Setenv("PG_GARAGE_MAX_RETRIES", "7")

	cfg, err := config.LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Server.Address)
	assert.Equal(t, 7, cfg.Garage.MaxRetries)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	path := writeConfig(t, "logging:\n  level: verbose\n")

	_, err := config.LoadConfig(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Level")
}

func TestValidateConfig_PostgresNeedsHostOrURL(t *testing.T) {
	cfg := &config.Config{}
	config.SetDefaults(cfg)
	cfg.Database.Type = "postgres"
	cfg.Database.Host = ""

	err := config.ValidateConfig(cfg)
	require.Error(t, err)

	cfg.Database.URL = "postgres://garage@localhost/parking_garage"
	assert.NoError(t, config.ValidateConfig(cfg))
}

func TestServerConfig_ContextRoot(t *testing.T) {
	tests := []struct {
		version string
		want    string
	}{
		{"1.0", "/garage/v1"},
		{"v3.2", "/garage/v3"},
		{"4", "/garage/v4"},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			s := config.ServerConfig{AppName: "garage", Version: tt.version}
			assert.Equal(t, tt.want, s.ContextRoot())
		})
	}
}
