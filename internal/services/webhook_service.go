package services

import (
	"context"
	"strings"
	"time"

	"catalog/internal/coordination"
	"catalog/internal/domain"

	"go.uber.org/zap"
)

const WebhookDedupTTL = time.Hour

// WebhookService suppresses duplicate event deliveries by event id.
type WebhookService struct {
	Store coordination.Store
	TTL   time.Duration
	Log   *zap.Logger
}

func NewWebhookService(store coordination.Store, log *zap.Logger) WebhookService {
	return WebhookService{Store: store, TTL: WebhookDedupTTL, Log: log}
}

// AdmitEvent reports whether eventID is seen for the first time within
// the dedup window. Marking is a single SETNX, so two concurrent
// deliveries of the same event cannot both come back fresh. A store
// failure surfaces: without the marker there is no way to tell fresh
// from duplicate.
func (s WebhookService) AdmitEvent(ctx context.Context, eventID string) (bool, error) {
	if strings.TrimSpace(eventID) == "" {
		return false, domain.ValidationError{Field: "event_id", Msg: "is required"}
	}

	fresh, err := s.Store.SetNX(ctx, coordination.WebhookKey(eventID), "processed", s.TTL)
	if err != nil {
		return false, domain.UpstreamUnavailableError{Upstream: "webhook dedup store", Err: err}
	}

	if fresh {
		s.Log.Info("webhook event admitted", zap.String("event_id", eventID))
	} else {
		s.Log.Info("duplicate webhook event suppressed", zap.String("event_id", eventID))
	}
	return fresh, nil
}
