package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"curriculum-backend/internal/shared/telemetry"
	"curriculum-backend/resume/validate"
)

// ErrorBody is the standardized error object.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse wraps the error body. Errors is only set for validation failures.
type ErrorResponse struct {
	Error  ErrorBody           `json:"error"`
	Errors map[string][]string `json:"errors,omitempty"`
}

// Error sends a standardized error response and logs it.
func Error(c *gin.Context, status int, code, message string, details interface{}) {
	logError(c, status, code, message)
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{Code: code, Message: message, Details: details},
	})
}

// ValidationError sends a 422 whose message is the first field message. details.fields keeps
// the reporting order; errors groups messages by field.
func ValidationError(c *gin.Context, fields validate.FieldErrors) {
	message := fields.First()
	if message == "" {
		message = "Validation error"
	}
	logError(c, http.StatusUnprocessableEntity, "validation_error", message)
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error: ErrorBody{
			Code:    "validation_error",
			Message: message,
			Details: gin.H{"fields": fields},
		},
		Errors: fields.Map(),
	})
}

func logError(c *gin.Context, status int, code, message string) {
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
	if isGuest, ok := c.Get("isGuest"); ok {
		fields["is_guest"] = isGuest
	}
	if status >= http.StatusInternalServerError {
		telemetry.Error("http.error", fields)
		return
	}
	telemetry.Warn("http.error", fields)
}
