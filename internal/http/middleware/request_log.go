package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/deckgen-backend/internal/platform/logger"
)

// slowRequest promotes successful requests to warn level. Renders with
// many slides routinely take a few seconds; anything past this is worth
// a look.
const slowRequest = 20 * time.Second

// quietRoutes are polled by health checks and scrapers and only log at debug.
var quietRoutes = map[string]bool{
	"/healthcheck": true,
	"/api/health":  true,
	"/metrics":     true,
}

func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	if log == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		status := c.Writer.Status()
		reqLog := log.WithContext(c.Request.Context())

		fields := []any{
			"method", c.Request.Method,
			"route", route,
			"status", status,
			"duration_ms", elapsed.Milliseconds(),
			"bytes", c.Writer.Size(),
			"client_ip", c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			reqLog.Error("HTTP request", fields...)
		case status >= 400 || elapsed > slowRequest:
			reqLog.Warn("HTTP request", fields...)
		case quietRoutes[route]:
			reqLog.Debug("HTTP request", fields...)
		default:
			reqLog.Info("HTTP request", fields...)
		}
	}
}
