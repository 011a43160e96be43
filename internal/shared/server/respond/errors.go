package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobx-backend/internal/shared/apperr"
	"jobx-backend/internal/shared/telemetry"
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

// Error sends a standardized error response.
func Error(c *gin.Context, status int, code, message string, details interface{}) {
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if sessionID := c.GetString("sessionId"); sessionID != "" {
		fields["session_id"] = sessionID
	}
	telemetry.Error("http.error", fields)

	c.Header("Cache-Control", "no-store")
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// FromError maps a categorized error onto the standardized error response.
func FromError(c *gin.Context, err error) {
	e, ok := apperr.As(err)
	if !ok {
		telemetry.Error("http.unhandled_error", map[string]any{
			"request_id": c.GetString("requestId"),
			"error":      err.Error(),
		})
		Error(c, http.StatusInternalServerError, "internal_error", "Unexpected server error", nil)
		return
	}

	details := map[string]any{"kind": string(e.Kind)}
	if e.Hint != "" {
		details["hint"] = e.Hint
	}
	if e.UpstreamStatus != 0 {
		details["upstream_status"] = e.UpstreamStatus
	}
	if e.Err != nil && e.Kind != apperr.KindValidation {
		details["cause"] = e.Err.Error()
	}
	Error(c, StatusFor(e.Kind), e.Code, e.Message, details)
}

// StatusFor returns the HTTP status used for an error category.
func StatusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation, apperr.KindExtraction:
		return http.StatusBadRequest
	case apperr.KindUpstream:
		return http.StatusBadGateway
	case apperr.KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
