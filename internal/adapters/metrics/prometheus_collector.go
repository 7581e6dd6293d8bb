package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/parking-garage/internal/domain/garage"
)

const (
	// Namespace for all metrics
	namespace = "parking_garage"
	// Subsystem for allocation engine metrics
	subsystem = "engine"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalGarageCollector is the singleton garage metrics collector
	// Set by SetGlobalGarageCollector() when metrics are enabled
	globalGarageCollector GarageMetricsRecorder
)

// GarageMetricsRecorder defines the interface for recording parking events
// This interface is used by application code to record metrics
type GarageMetricsRecorder interface {
	RecordPark(garageName string, vehicleType string, outcome string)
	RecordExit(garageName string, outcome string)
	RecordVersionConflict(garageName string)
	ObserveStatus(status garage.Status)
}

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// SetGlobalGarageCollector sets the global garage metrics collector
func SetGlobalGarageCollector(collector GarageMetricsRecorder) {
	globalGarageCollector = collector
}

// RecordPark records the outcome of a park request globally
func RecordPark(garageName string, vehicleType string, outcome string) {
	if globalGarageCollector != nil {
		globalGarageCollector.RecordPark(garageName, vehicleType, outcome)
	}
}

// RecordExit records the outcome of an exit request globally
func RecordExit(garageName string, outcome string) {
	if globalGarageCollector != nil {
		globalGarageCollector.RecordExit(garageName, outcome)
	}
}

// RecordVersionConflict records a lost optimistic save globally
func RecordVersionConflict(garageName string) {
	if globalGarageCollector != nil {
		globalGarageCollector.RecordVersionConflict(garageName)
	}
}

// ObserveStatus publishes the occupancy gauges of a garage globally
func ObserveStatus(status garage.Status) {
	if globalGarageCollector != nil {
		globalGarageCollector.ObserveStatus(status)
	}
}

// Outcome maps an operation error to a low-cardinality label value
func Outcome(err error) string {
	if err == nil {
		return "success"
	}
	var gerr *garage.Error
	if errors.As(err, &gerr) {
		return gerr.Kind.String()
	}
	if errors.Is(err, garage.ErrVersionConflict) {
		return "VersionConflict"
	}
	return "error"
}
