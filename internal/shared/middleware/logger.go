package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"blog-backend/pkg/logger"
)

// Logger records one line per request after the handler chain ran.
// Server-side failures are logged at warn so they stand out from the
// request stream.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		status := c.Writer.Status()
		fields := map[string]interface{}{
			"request_id": c.GetString("request_id"),
			"method":     c.Request.Method,
			"path":       path,
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
			"ip":         c.ClientIP(),
		}

		if status >= 500 {
			logger.Warn("request failed", fields)
			return
		}
		logger.Info("request completed", fields)
	}
}
