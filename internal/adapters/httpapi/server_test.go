package httpapi_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/andrescamacho/parking-garage/internal/adapters/httpapi"
	"github.com/andrescamacho/parking-garage/internal/application/setup"
	"github.com/andrescamacho/parking-garage/internal/domain/garage"
	"github.com/andrescamacho/parking-garage/internal/infrastructure/config"
	"github.com/andrescamacho/parking-garage/test/helpers"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Address:         ":0",
			AppName:         "garage",
			Version:         "1.0",
			RateLimit:       config.RateLimitConfig{Requests: 1000, Burst: 1000},
			ReadTimeout:     time.Second,
			ShutdownTimeout: time.Second,
		},
		Garage: config.GarageConfig{Name: "downtown", MaxRetries: 3},
	}
}

func newTestServer(t *testing.T, cfg *config.Config, builder *helpers.GarageBuilder) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := helpers.NewMockDocumentRepository()
	require.NoError(t, repo.Upsert(context.Background(), "downtown", builder.MustDocument()))

	m, err := setup.NewHandlerRegistry(repo, cfg.Garage.MaxRetries, nil).CreateConfiguredMediator()
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetOutput(new(strings.Builder))
	return httpapi.NewServer(m, cfg, logger, nil).Handler()
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func busRow() *helpers.GarageBuilder {
	return helpers.NewGarageBuilder("downtown").
		Level("0").
		Row("0", helpers.SpotTypes(garage.SpotTypeLarge, 5)...)
}

func TestServer_ParkStatusExit(t *testing.T) {
	// Arrange
	h := newTestServer(t, testConfig(), busRow())

	// Act - park a bus
	rec := do(h, http.MethodPut, "/garage/v1/parking", `{"vehicle_type": 2}`)

	// Assert
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"vehicle_id":"0","vehicle_type":"BUS","level":"0","row":"0","spot_id":"0-4","spot_type":"LARGE"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(httpapi.RequestIDHeader))

	// Act - status reflects the bus
	rec = do(h, http.MethodGet, "/garage/v1/status", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1), gjson.Get(rec.Body.String(), "buses").Int())
	assert.False(t, gjson.Get(rec.Body.String(), "available").Bool())
	assert.Equal(t, gjson.Null, gjson.Get(rec.Body.String(), "next_car_spot").Type)

	// Act - exit the bus
	rec = do(h, http.MethodDelete, "/garage/v1/parking", `{"vehicle_id":"0","level":"0","row":"0","spot_id":"0-4"}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestServer_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"body not object", http.MethodPut, `[2]`, http.StatusBadRequest, "Invalid Input: body"},
		{"body not json", http.MethodPut, `{`, http.StatusBadRequest, "Invalid Input: body"},
		{"missing vehicle type", http.MethodPut, `{}`, http.StatusBadRequest, "Invalid Input: vehicle_type"},
		{"string vehicle type", http.MethodPut, `{"vehicle_type":"2"}`, http.StatusBadRequest, "Invalid Input: vehicle_type"},
		{"fractional vehicle type", http.MethodPut, `{"vehicle_type":1.5}`, http.StatusBadRequest, "Invalid Input: vehicle_type"},
		{"unknown vehicle type", http.MethodPut, `{"vehicle_type":9}`, http.StatusBadRequest, garage.CodeInvalidVehicleType},
		{"numeric spot id", http.MethodDelete, `{"vehicle_id":"0","level":"0","row":"0","spot_id":0}`, http.StatusBadRequest, "Invalid Input: spot_id"},
		{"unknown vehicle", http.MethodDelete, `{"vehicle_id":"3","level":"0","row":"0","spot_id":"0"}`, http.StatusNotFound, garage.CodeInvalidVehicleID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestServer(t, testConfig(), busRow())

			rec := do(h, tt.method, "/garage/v1/parking", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, gjson.Get(rec.Body.String(), "code").String())
			assert.True(t, gjson.Get(rec.Body.String(), "message").Exists())
		})
	}
}

func TestServer_FullForVehicleType(t *testing.T) {
	h := newTestServer(t, testConfig(), helpers.NewGarageBuilder("downtown").Row("0", garage.SpotTypeMotorcycle))

	rec := do(h, http.MethodPut, "/garage/v1/parking", `{"vehicle_type":1}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Full for Vehicle Type: CAR", gjson.Get(rec.Body.String(), "code").String())
}

func TestServer_RateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.Server.RateLimit = config.RateLimitConfig{Requests: 1, Burst: 1}
	h := newTestServer(t, cfg, busRow())

	first := do(h, http.MethodGet, "/garage/v1/status", "")
	second := do(h, http.MethodGet, "/garage/v1/status", "")

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestServer_UnknownRoute(t *testing.T) {
	h := newTestServer(t, testConfig(), busRow())

	rec := do(h, http.MethodGet, "/status", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_MapsInfrastructureFailures(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"retries exhausted", fmt.Errorf("downtown: %w", garage.ErrVersionConflict), http.StatusConflict, "Conflict"},
		{"database down", errors.New("dial tcp 10.0.0.1:5432: connection refused"), http.StatusInternalServerError, "Internal Server Error"},
		{"corrupt document", garage.NewInvalidSnapshotError("bad"), http.StatusInternalServerError, "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			gin.SetMode(gin.TestMode)
			m := helpers.NewMockMediator()
			m.FailWith(tt.err)
			logger := logrus.New()
			logger.SetOutput(new(strings.Builder))
			h := httpapi.NewServer(m, testConfig(), logger, nil).Handler()

			// Act
			rec := do(h, http.MethodPut, "/garage/v1/parking", `{"vehicle_type":1}`)

			// Assert
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, gjson.Get(rec.Body.String(), "code").String())
			assert.NotContains(t, rec.Body.String(), "10.0.0.1")
			assert.Equal(t, []string{"*commands.ParkVehicleCommand"}, m.GetCallLog())
		})
	}
}
