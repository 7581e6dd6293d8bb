package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/parking-garage/internal/domain/garage"
)

// GarageMetricsCollector handles occupancy gauges and parking event counters
type GarageMetricsCollector struct {
	capacity         *prometheus.GaugeVec
	occupancy        *prometheus.GaugeVec
	vehicles         *prometheus.GaugeVec
	availableSpots   *prometheus.GaugeVec
	available        *prometheus.GaugeVec
	parksTotal       *prometheus.CounterVec
	exitsTotal       *prometheus.CounterVec
	versionConflicts *prometheus.CounterVec
}

// NewGarageMetricsCollector creates a new garage metrics collector
func NewGarageMetricsCollector() *GarageMetricsCollector {
	return &GarageMetricsCollector{
		capacity: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "capacity_spots",
				Help:      "Total number of spots in the garage",
			},
			[]string{"garage"},
		),
		occupancy: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "occupancy_vehicles",
				Help:      "Number of parked vehicles",
			},
			[]string{"garage"},
		),
		vehicles: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "parked_vehicles",
				Help:      "Number of parked vehicles by vehicle type",
			},
			[]string{"garage", "vehicle_type"},
		),
		availableSpots: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "available_spots",
				Help:      "Number of empty spots",
			},
			[]string{"garage"},
		),
		available: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "accepting_vehicle_type",
				Help:      "1 when a vehicle of the type can currently be parked",
			},
			[]string{"garage", "vehicle_type"},
		),
		parksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "park_requests_total",
				Help:      "Total number of park requests by vehicle type and outcome",
			},
			[]string{"garage", "vehicle_type", "outcome"},
		),
		exitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "exit_requests_total",
				Help:      "Total number of exit requests by outcome",
			},
			[]string{"garage", "outcome"},
		),
		versionConflicts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "version_conflicts_total",
				Help:      "Saves rejected because the garage document changed concurrently",
			},
			[]string{"garage"},
		),
	}
}

// Register registers all garage metrics with the Prometheus registry
func (c *GarageMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.capacity,
		c.occupancy,
		c.vehicles,
		c.availableSpots,
		c.available,
		c.parksTotal,
		c.exitsTotal,
		c.versionConflicts,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordPark increments the park counter
func (c *GarageMetricsCollector) RecordPark(garageName string, vehicleType string, outcome string) {
	c.parksTotal.WithLabelValues(garageName, vehicleType, outcome).Inc()
}

// RecordExit increments the exit counter
func (c *GarageMetricsCollector) RecordExit(garageName string, outcome string) {
	c.exitsTotal.WithLabelValues(garageName, outcome).Inc()
}

// RecordVersionConflict increments the conflict counter
func (c *GarageMetricsCollector) RecordVersionConflict(garageName string) {
	c.versionConflicts.WithLabelValues(garageName).Inc()
}

// ObserveStatus sets every occupancy gauge from a status view
func (c *GarageMetricsCollector) ObserveStatus(status garage.Status) {
	c.capacity.WithLabelValues(status.Name).Set(float64(status.MaxCapacity))
	c.occupancy.WithLabelValues(status.Name).Set(float64(status.Occupancy))
	c.availableSpots.WithLabelValues(status.Name).Set(float64(status.AvailableSpotsTotal()))

	for _, vt := range garage.AllVehicleTypes() {
		c.vehicles.WithLabelValues(status.Name, vt.Name()).Set(float64(status.VehicleCounts[vt]))

		accepting := 0.0
		if !status.NextSpots[vt].IsEmpty() {
			accepting = 1
		}
		c.available.WithLabelValues(status.Name, vt.Name()).Set(accepting)
	}
}
