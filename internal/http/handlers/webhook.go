package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// EventGate is the idempotency surface the handler depends on.
type EventGate interface {
	AdmitEvent(ctx context.Context, eventID string) (bool, error)
}

type WebhookHandler struct {
	Gate EventGate
}

type webhookPayload struct {
	EventID string `json:"event_id"`
}

// Receive serves POST /api/webhook. Duplicates still get a 200: the
// producer must not redeliver just because we had seen the event before.
func (h WebhookHandler) Receive(c *gin.Context) {
	var payload webhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		RespondError(c, http.StatusBadRequest, "Missing event_id")
		return
	}

	fresh, err := h.Gate.AdmitEvent(c.Request.Context(), payload.EventID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	if !fresh {
		c.JSON(http.StatusOK, gin.H{"message": "Duplicate event ignored"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Webhook received"})
}
