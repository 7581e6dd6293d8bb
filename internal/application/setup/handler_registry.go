package setup

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/andrescamacho/parking-garage/internal/adapters/metrics"
	"github.com/andrescamacho/parking-garage/internal/application/common"
	"github.com/andrescamacho/parking-garage/internal/application/mediator"
	"github.com/andrescamacho/parking-garage/internal/application/parking/commands"
	"github.com/andrescamacho/parking-garage/internal/application/parking/queries"
	"github.com/andrescamacho/parking-garage/internal/domain/garage"
)

// HandlerRegistry holds all application dependencies for handler creation
type HandlerRegistry struct {
	garageRepo       garage.DocumentRepository
	maxRetries       int
	commandCollector *metrics.CommandMetricsCollector
}

// NewHandlerRegistry creates a new handler registry with required dependencies.
// commandCollector may be nil when metrics are disabled.
func NewHandlerRegistry(
	garageRepo garage.DocumentRepository,
	maxRetries int,
	commandCollector *metrics.CommandMetricsCollector,
) *HandlerRegistry {
	if maxRetries < 1 {
		maxRetries = 1
	}

	return &HandlerRegistry{
		garageRepo:       garageRepo,
		maxRetries:       maxRetries,
		commandCollector: commandCollector,
	}
}

// RegisterParkingHandlers registers all parking command and query handlers with the mediator
//
// This method registers:
//   - ParkVehicleCommand → ParkVehicleHandler
//   - ExitVehicleCommand → ExitVehicleHandler
//   - ImportGarageCommand → ImportGarageHandler
//   - GetStatusQuery → GetStatusHandler
//   - ExportGarageQuery → ExportGarageHandler
func (r *HandlerRegistry) RegisterParkingHandlers(m mediator.Mediator) error {
	if err := mediator.RegisterHandler[*commands.ParkVehicleCommand](
		m, commands.NewParkVehicleHandler(r.garageRepo, r.maxRetries),
	); err != nil {
		return err
	}

	if err := mediator.RegisterHandler[*commands.ExitVehicleCommand](
		m, commands.NewExitVehicleHandler(r.garageRepo, r.maxRetries),
	); err != nil {
		return err
	}

	if err := mediator.RegisterHandler[*commands.ImportGarageCommand](
		m, commands.NewImportGarageHandler(r.garageRepo),
	); err != nil {
		return err
	}

	if err := mediator.RegisterHandler[*queries.GetStatusQuery](
		m, queries.NewGetStatusHandler(r.garageRepo),
	); err != nil {
		return err
	}

	return mediator.RegisterHandler[*queries.ExportGarageQuery](
		m, queries.NewExportGarageHandler(r.garageRepo),
	)
}

// CreateConfiguredMediator creates a new mediator with all parking handlers
// registered behind the metrics and logging middleware
func (r *HandlerRegistry) CreateConfiguredMediator() (mediator.Mediator, error) {
	m := mediator.NewMediator()

	if r.commandCollector != nil {
		m.RegisterMiddleware(metrics.PrometheusMiddleware(r.commandCollector))
	}
	m.RegisterMiddleware(LoggingMiddleware())

	if err := r.RegisterParkingHandlers(m); err != nil {
		return nil, err
	}

	return m, nil
}

// LoggingMiddleware logs every dispatched request with its duration at debug
// level, and failures at warn level when they are not caller errors
func LoggingMiddleware() mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		start := time.Now()
		response, err := next(ctx, request)

		entry := common.LoggerFromContext(ctx).WithFields(logrus.Fields{
			"request":     requestName(request),
			"duration_ms": time.Since(start).Milliseconds(),
			"outcome":     metrics.Outcome(err),
		})
		switch {
		case err == nil:
			entry.Debug("request handled")
		case isCallerError(err):
			entry.WithError(err).Debug("request rejected")
		default:
			entry.WithError(err).Warn("request failed")
		}
		return response, err
	}
}

func requestName(request mediator.Request) string {
	switch request.(type) {
	case *commands.ParkVehicleCommand:
		return "park"
	case *commands.ExitVehicleCommand:
		return "exit"
	case *commands.ImportGarageCommand:
		return "import"
	case *queries.GetStatusQuery:
		return "status"
	case *queries.ExportGarageQuery:
		return "export"
	default:
		return "unknown"
	}
}

func isCallerError(err error) bool {
	var gerr *garage.Error
	if !errors.As(err, &gerr) {
		return false
	}
	return gerr.Kind != garage.KindPoolExhausted && gerr.Kind != garage.KindInvalidSnapshot
}
