package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/andrescamacho/parking-garage/internal/adapters/httpapi"
	"github.com/andrescamacho/parking-garage/internal/infrastructure/pidfile"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the parking API over HTTP",
		Long: `Start the HTTP server. Routes are served under /<app_name>/v<major>:

  PUT    /garage/v1/parking   park a vehicle    {"vehicle_type": 1}
  DELETE /garage/v1/parking   release a vehicle {"vehicle_id", "level", "row", "spot_id"}
  GET    /garage/v1/status    status view

Metrics are exposed on metrics.path when metrics.enabled is set.

Example:
  PG_SERVER_ADDRESS=:9090 garage serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, err := bootstrap(ctx, true)
			if err != nil {
				return err
			}
			defer app.Close()

			pid := pidfile.New(app.cfg.Server.PIDFile)
			if err := pid.Acquire(); err != nil {
				return err
			}
			defer func() {
				if err := pid.Release(); err != nil {
					app.logger.WithError(err).Warn("failed to release PID file")
				}
			}()

			if app.cfg.Logging.Level != "debug" {
				gin.SetMode(gin.ReleaseMode)
			}

			server := httpapi.NewServer(app.mediator, app.cfg, app.logger, app.httpMetrics)
			app.logger.WithField("garage", app.cfg.Garage.Name).
				Infof("Serving %s", app.cfg.Server.ContextRoot())

			return server.Run(ctx)
		},
	}

	return cmd
}
