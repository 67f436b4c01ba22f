package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"curriculum-backend/internal/shared/telemetry"
)

// Context keys handlers set so the request log can name what was touched.
const (
	ResumeIDKey = "resumeId"
	TemplateKey = "template"
)

// Logging emits one structured line per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		userID, _ := c.Get(userIDKey)
		isGuest, _ := c.Get(isGuestKey)
		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       c.FullPath(),
			"status":      c.Writer.Status(),
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"user_id":     userID,
			"is_guest":    isGuest,
			"client_ip":   c.ClientIP(),
		}
		if v, ok := c.Get(ResumeIDKey); ok {
			fields["resume_id"] = v
		}
		if v, ok := c.Get(TemplateKey); ok {
			fields["template"] = v
		}
		telemetry.Info("request.complete", fields)
	}
}
