package services

import (
	"context"
	"time"

	"catalog/internal/coordination"
	"catalog/internal/domain"
)

const (
	DefaultRateLimit  = 100
	DefaultRateWindow = 60 * time.Second
)

// Decision is the limiter's verdict for one request. Remaining never
// goes negative.
type Decision struct {
	Allowed   bool
	Limit     int64
	Remaining int64
}

// RateLimiter does fixed-window admission per identity: one atomic
// increment per request, window TTL attached when the counter is
// created. Bursts at window boundaries are admitted; that is the
// algorithm, not a defect.
type RateLimiter struct {
	Store  coordination.Store
	Limit  int64
	Window time.Duration
}

func NewRateLimiter(store coordination.Store) RateLimiter {
	return RateLimiter{Store: store, Limit: DefaultRateLimit, Window: DefaultRateWindow}
}

// Admit counts the request against the identity's current window. A
// store failure is returned as-is; the fail-open policy lives at the
// call site where it stays visible and testable.
func (l RateLimiter) Admit(ctx context.Context, identity string) (Decision, error) {
	n, err := l.Store.IncrWindow(ctx, coordination.RateKey(identity), l.Window)
	if err != nil {
		return Decision{}, domain.UpstreamUnavailableError{Upstream: "rate limit store", Err: err}
	}

	remaining := l.Limit - n
	if remaining < 0 {
		remaining = 0
	}
	return Decision{Allowed: n <= l.Limit, Limit: l.Limit, Remaining: remaining}, nil
}
