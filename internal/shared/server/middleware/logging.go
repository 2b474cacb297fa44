package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/shared/telemetry"
)

// quietPaths are polled by infrastructure and only logged when they fail.
var quietPaths = map[string]bool{
	"/metrics":       true,
	"/api/v1/health": true,
}

// Logging emits one structured line per request. Handlers enrich it by
// setting documentId, analysisId and statusTransition on the context.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		status := c.Writer.Status()
		if quietPaths[c.Request.URL.Path] && status < http.StatusInternalServerError {
			return
		}

		fields := map[string]any{
			"request_id":        RequestIDFromContext(c),
			"method":            c.Request.Method,
			"path":              c.Request.URL.Path,
			"route":             c.FullPath(),
			"status":            status,
			"status_transition": c.GetString("statusTransition"),
			"duration_ms":       float64(time.Since(start).Microseconds()) / 1000.0,
			"user_id":           UserIDFromContext(c),
			"document_id":       c.GetString("documentId"),
			"analysis_id":       c.GetString("analysisId"),
			"is_guest":          IsGuest(c),
			"client_ip":         c.ClientIP(),
			"bytes_out":         c.Writer.Size(),
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}

		switch {
		case status >= http.StatusInternalServerError:
			telemetry.Error("request.complete", fields)
		case status >= http.StatusBadRequest:
			telemetry.Warn("request.complete", fields)
		default:
			telemetry.Info("request.complete", fields)
		}
	}
}
