package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"report-uploader/internal/shared/telemetry"
)

// Keys handlers may set to enrich the request log line.
const (
	FilesKey  = "files"
	StatusKey = "formStatus"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"client_ip":   c.ClientIP(),
		}
		if files, ok := c.Get(FilesKey); ok {
			fields["files"] = files
		}
		if status, ok := c.Get(StatusKey); ok {
			fields["form_status"] = status
		}
		telemetry.Info("request.complete", fields)
	}
}
