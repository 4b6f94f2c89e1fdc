package handlers

import (
	"net/http"

	"catalog/internal/domain"
	"catalog/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// RespondError sends the standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string) {
	payload := gin.H{"message": message}
	if reqID := middleware.GetRequestID(c); reqID != "" {
		payload["request_id"] = reqID
	}
	c.JSON(status, payload)
}

// RespondDomainError maps the error taxonomy to response classes.
// Invalid cursors and missing identifiers are the client's fault; an
// unreachable store is ours; failed outbound calls are the upstream's.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsInvalidCursor(err):
		RespondError(c, http.StatusBadRequest, "Invalid cursor format")
	case domain.IsValidation(err):
		RespondError(c, http.StatusBadRequest, err.Error())
	case domain.IsUpstreamUnavailable(err):
		RespondError(c, http.StatusServiceUnavailable, "Service temporarily unavailable")
	case domain.IsCredentialRefresh(err), domain.IsTransport(err):
		RespondError(c, http.StatusBadGateway, "Failed to fetch external data")
	default:
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
