// Package httpapi exposes the parking operations over HTTP with gin.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/andrescamacho/parking-garage/internal/adapters/metrics"
	"github.com/andrescamacho/parking-garage/internal/application/mediator"
	"github.com/andrescamacho/parking-garage/internal/infrastructure/config"
)

// Server is the HTTP front of the parking engine
type Server struct {
	httpServer      *http.Server
	engine          *gin.Engine
	logger          logrus.FieldLogger
	shutdownTimeout time.Duration
}

// NewServer wires routes and middleware. httpMetrics may be nil when
// metrics are disabled.
func NewServer(
	m mediator.Mediator,
	cfg *config.Config,
	logger logrus.FieldLogger,
	httpMetrics *metrics.HTTPMetricsCollector,
) *Server {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestID(logger))
	if httpMetrics != nil {
		engine.Use(RequestMetrics(httpMetrics))
	}

	if cfg.Metrics.Enabled && metrics.GetRegistry() != nil {
		engine.GET(cfg.Metrics.Path, gin.WrapH(promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{})))
	}

	handler := NewParkingHandler(m, cfg.Garage.Name)
	api := engine.Group(cfg.Server.ContextRoot())
	api.Use(RateLimit(cfg.Server.RateLimit, httpMetrics))
	{
		api.PUT("/parking", handler.Park)
		api.DELETE("/parking", handler.Exit)
		api.GET("/status", handler.Status)
	}

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorBody{
			Code:    "Not Found",
			Cause:   c.Request.URL.Path,
			Message: "Routes are served under " + cfg.Server.ContextRoot(),
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.Server.Address,
			Handler:           engine,
			ReadHeaderTimeout: cfg.Server.ReadTimeout,
			ReadTimeout:       cfg.Server.ReadTimeout,
		},
		engine:          engine,
		logger:          logger,
		shutdownTimeout: cfg.Server.ShutdownTimeout,
	}
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof("Starting HTTP server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
