package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/andrescamacho/parking-garage/internal/adapters/metrics"
	"github.com/andrescamacho/parking-garage/internal/adapters/persistence"
	"github.com/andrescamacho/parking-garage/internal/application/common"
	"github.com/andrescamacho/parking-garage/internal/application/mediator"
	"github.com/andrescamacho/parking-garage/internal/application/parking/commands"
	"github.com/andrescamacho/parking-garage/internal/application/setup"
	"github.com/andrescamacho/parking-garage/internal/domain/garage"
	"github.com/andrescamacho/parking-garage/internal/infrastructure/config"
	"github.com/andrescamacho/parking-garage/internal/infrastructure/database"
	"github.com/andrescamacho/parking-garage/internal/infrastructure/logging"
)

// application holds everything a command needs, built from configuration
type application struct {
	cfg         *config.Config
	logger      *logrus.Logger
	logCloser   io.Closer
	db          *gorm.DB
	garageRepo  *persistence.GormGarageRepository
	mediator    mediator.Mediator
	httpMetrics *metrics.HTTPMetricsCollector
}

// loadConfig loads configuration and applies the global flag overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if garageName != "" {
		cfg.Garage.Name = garageName
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}

// bootstrap wires logging, the database, metrics and the mediator. When
// withMetrics is set and metrics are enabled, collectors are registered on
// the global registry.
func bootstrap(ctx context.Context, withMetrics bool) (*application, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, logCloser, err := logging.NewLogger(cfg.Logging, cfg.Server.AppName)
	if err != nil {
		return nil, err
	}
	app := &application{cfg: cfg, logger: logger, logCloser: logCloser}

	app.db, err = database.NewConnection(&cfg.Database)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.AutoMigrate(app.db); err != nil {
		app.Close()
		return nil, err
	}
	app.garageRepo = persistence.NewGormGarageRepository(app.db)

	var commandMetrics *metrics.CommandMetricsCollector
	if withMetrics && cfg.Metrics.Enabled {
		commandMetrics, err = app.initMetrics()
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
	}

	registry := setup.NewHandlerRegistry(app.garageRepo, cfg.Garage.MaxRetries, commandMetrics)
	app.mediator, err = registry.CreateConfiguredMediator()
	if err != nil {
		app.Close()
		return nil, err
	}

	if err := app.seed(app.context(ctx)); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

func (a *application) initMetrics() (*metrics.CommandMetricsCollector, error) {
	metrics.InitRegistry()

	garageMetrics := metrics.NewGarageMetricsCollector()
	if err := garageMetrics.Register(); err != nil {
		return nil, err
	}
	metrics.SetGlobalGarageCollector(garageMetrics)

	commandMetrics := metrics.NewCommandMetricsCollector()
	if err := commandMetrics.Register(); err != nil {
		return nil, err
	}

	a.httpMetrics = metrics.NewHTTPMetricsCollector()
	if err := a.httpMetrics.Register(); err != nil {
		return nil, err
	}
	return commandMetrics, nil
}

// seed imports garage.seed_file when the configured garage is not stored yet
func (a *application) seed(ctx context.Context) error {
	if a.cfg.Garage.SeedFile == "" {
		return nil
	}
	_, err := a.garageRepo.Load(ctx, a.cfg.Garage.Name)
	if err == nil {
		return nil
	}
	if !errors.Is(err, garage.ErrGarageNotFound) {
		return err
	}

	document, err := os.ReadFile(a.cfg.Garage.SeedFile)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}
	resp, err := a.mediator.Send(ctx, &commands.ImportGarageCommand{Document: document})
	if err != nil {
		return fmt.Errorf("failed to seed garage from %s: %w", a.cfg.Garage.SeedFile, err)
	}
	if imported := resp.(*commands.ImportGarageResponse); imported.Name != a.cfg.Garage.Name {
		a.logger.Warnf("seed file holds garage %q, but garage.name is %q", imported.Name, a.cfg.Garage.Name)
	}
	return nil
}

// context attaches the application logger
func (a *application) context(ctx context.Context) context.Context {
	return common.WithLogger(ctx, a.logger)
}

// Close releases the database and the log file
func (a *application) Close() {
	if a.db != nil {
		_ = database.Close(a.db)
	}
	if a.logCloser != nil {
		_ = a.logCloser.Close()
	}
}

// formatError renders garage errors with their code, cause and message
func formatError(err error) string {
	var gerr *garage.Error
	if errors.As(err, &gerr) {
		if gerr.Cause != "" && gerr.Cause != gerr.Code {
			return fmt.Sprintf("Error: %s (%s). %s", gerr.Code, gerr.Cause, gerr.Message)
		}
		return fmt.Sprintf("Error: %s. %s", gerr.Code, gerr.Message)
	}
	return "Error: " + err.Error()
}

// maskPassword hides the password of a connection URL
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, hasPassword := u.User.Password(); hasPassword {
		u.User = url.UserPassword(u.User.Username(), "****")
	}
	return u.String()
}
