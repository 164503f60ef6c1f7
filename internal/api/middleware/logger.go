package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/minbar-press/minbar/pkg/logger"
)

// LoggerMiddleware logs one line per request. Server errors log at
// error level so they stand out at the default info threshold.
func LoggerMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		status := c.Writer.Status()
		kv := []interface{}{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"duration", time.Since(start),
			"client_ip", c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			kv = append(kv, "errors", c.Errors.String())
		}

		if status >= 500 {
			log.Error("HTTP request", kv...)
		} else {
			log.Info("HTTP request", kv...)
		}
	}
}
