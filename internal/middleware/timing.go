package middleware

import (
	"strconv"
	"time"

	"aerocode/internal/metrics"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestTimer measures every request and reports it once the handler chain
// has finished. It only logs and observes metrics: nothing is written to the
// response at that point, since it may already be on the wire.
func RequestTimer(logger *zap.Logger, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		if m != nil {
			m.RequestDuration.WithLabelValues(c.Request.Method, route).Observe(latency.Seconds())
			m.Requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		}

		fields := []zap.Field{
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int64("elapsed_ms", latency.Milliseconds()),
			zap.String("request_id", c.GetString("request_id")),
		}

		if status >= 500 {
			logger.Error("Server error", fields...)
		} else if status >= 400 {
			logger.Warn("Client error", fields...)
		} else {
			logger.Info("Request", fields...)
		}
	}
}
