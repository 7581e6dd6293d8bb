package httpapi

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/andrescamacho/parking-garage/internal/adapters/metrics"
	"github.com/andrescamacho/parking-garage/internal/application/common"
	"github.com/andrescamacho/parking-garage/internal/infrastructure/config"
)

// RequestIDHeader carries the request ID in both directions
const RequestIDHeader = "X-Request-ID"

// RequestID tags every request with an ID (reusing the caller's when it is
// a valid UUID) and attaches a logger carrying it to the request context
func RequestID(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Header(RequestIDHeader, id)

		reqLogger := logger.WithFields(logrus.Fields{
			"request_id": id,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
		})
		c.Request = c.Request.WithContext(common.WithLogger(c.Request.Context(), reqLogger))

		start := time.Now()
		c.Next()

		reqLogger.WithFields(logrus.Fields{
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
		}).Info("request completed")
	}
}

// RateLimit applies a token bucket per client IP
func RateLimit(cfg config.RateLimitConfig, httpMetrics *metrics.HTTPMetricsCollector) gin.HandlerFunc {
	var (
		mu       sync.Mutex
		limiters = make(map[string]*rate.Limiter)
	)
	limiterFor := func(client string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		limiter, ok := limiters[client]
		if !ok {
			limiter = rate.NewLimiter(rate.Limit(cfg.Requests), cfg.Burst)
			limiters[client] = limiter
		}
		return limiter
	}

	return func(c *gin.Context) {
		if limiterFor(c.ClientIP()).Allow() {
			c.Next()
			return
		}
		if httpMetrics != nil {
			httpMetrics.RecordRateLimited(routeOf(c))
		}
		c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorBody{
			Code:    "Too Many Requests",
			Cause:   "rate limit exceeded",
			Message: "Please slow down",
		})
	}
}

// RequestMetrics records the count and latency of every request
func RequestMetrics(httpMetrics *metrics.HTTPMetricsCollector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		httpMetrics.RecordRequest(c.Request.Method, routeOf(c), c.Writer.Status(), time.Since(start).Seconds())
	}
}

func routeOf(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return "unmatched"
}

func loggerFor(c *gin.Context) logrus.FieldLogger {
	return common.LoggerFromContext(c.Request.Context())
}
