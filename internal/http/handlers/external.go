package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ExternalFetcher is the outbound surface the handler depends on.
type ExternalFetcher interface {
	FetchResource(ctx context.Context) (json.RawMessage, error)
}

type ExternalHandler struct {
	Svc ExternalFetcher
}

// Fetch serves GET /api/external-a.
func (h ExternalHandler) Fetch(c *gin.Context) {
	data, err := h.Svc.FetchResource(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": data})
}
