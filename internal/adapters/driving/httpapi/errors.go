package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lillianfidler/churchill-falls-assistant/internal/core/domain"
)

// Port validation errors.
var (
	ErrMissingChatService     = errors.New("chat service is required")
	ErrMissingVoiceService    = errors.New("voice service is required")
	ErrMissingDocumentService = errors.New("document service is required")
)

// statusFor maps a service error onto an HTTP status, a client message and
// the retryable flag.
func statusFor(err error) (int, string, bool) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, "Invalid request", false
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "Not found", false
	case domain.IsRetryable(err):
		return http.StatusServiceUnavailable, "The assistant is temporarily unavailable, please try again", true
	default:
		return http.StatusInternalServerError, "An error occurred processing your request", false
	}
}

// writeError aborts the request with the mapped status.
func writeError(c *gin.Context, err error) {
	status, msg, retryable := statusFor(err)
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:     msg,
		Details:   err.Error(),
		Retryable: retryable,
		RequestID: c.GetString(requestIDKey),
	})
}

// badRequest aborts with 400 and a fixed message.
func badRequest(c *gin.Context, msg string, err error) {
	resp := ErrorResponse{Error: msg, RequestID: c.GetString(requestIDKey)}
	if err != nil {
		resp.Details = err.Error()
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, resp)
}
