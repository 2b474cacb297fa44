package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/shared/telemetry"
)

// Error codes shared by every handler.
const (
	CodeValidation        = "validation_error"
	CodeNotFound          = "not_found"
	CodeUnauthorized      = "unauthorized"
	CodeInvalidTransition = "invalid_transition"
	CodeFileTooLarge      = "file_too_large"
	CodeRateLimited       = "rate_limited"
	CodeInternal          = "internal_error"
)

// ErrorBody defines the standardized error object.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse wraps the error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Error aborts the request with a standardized error body. Server errors are
// logged at error level, client errors at warn.
func Error(c *gin.Context, status int, code, message string, details interface{}) {
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if userID := c.GetString("userId"); userID != "" {
		fields["user_id"] = userID
	}
	if status >= http.StatusInternalServerError {
		telemetry.Error("http.error", fields)
	} else {
		telemetry.Warn("http.client_error", fields)
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// Validation is shorthand for a 400 validation_error.
func Validation(c *gin.Context, message string, details interface{}) {
	Error(c, http.StatusBadRequest, CodeValidation, message, details)
}

// NotFound is shorthand for a 404 naming the missing resource.
func NotFound(c *gin.Context, resource string) {
	Error(c, http.StatusNotFound, CodeNotFound, resource+" not found", nil)
}

// Internal is shorthand for a 500 with a caller-safe message.
func Internal(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, CodeInternal, message, nil)
}
