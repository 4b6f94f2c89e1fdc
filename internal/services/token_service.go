package services

import (
	"context"
	"time"

	"catalog/internal/coordination"
	"catalog/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// TokenExpiryMargin is subtracted from the credential's lifetime before
// caching, so a cached token is never served right at its expiry.
const TokenExpiryMargin = 30 * time.Second

// Token is a bearer credential plus the provider-reported lifetime.
type Token struct {
	AccessToken string
	ExpiresIn   time.Duration
}

// TokenProvider fetches a fresh credential from the external source.
type TokenProvider interface {
	Name() string
	FetchToken(ctx context.Context) (Token, error)
}

// TokenService caches a shared external credential. The cross-instance
// copy lives in the coordination store; concurrent refreshes within one
// process collapse into a single in-flight fetch.
type TokenService struct {
	Store    coordination.Store
	Provider TokenProvider
	Margin   time.Duration
	Log      *zap.Logger

	group singleflight.Group // prevents redundant refresh calls in-process
}

func NewTokenService(store coordination.Store, provider TokenProvider, log *zap.Logger) *TokenService {
	return &TokenService{Store: store, Provider: provider, Margin: TokenExpiryMargin, Log: log}
}

// AccessToken returns the cached credential or refreshes it. All callers
// waiting on the same refresh observe its result, success or failure;
// singleflight clears the in-flight slot on both paths, so a failed
// refresh never wedges later calls.
func (s *TokenService) AccessToken(ctx context.Context) (string, error) {
	key := coordination.TokenKey(s.Provider.Name())

	cached, hit, err := s.Store.Get(ctx, key)
	if err != nil {
		s.Log.Warn("token cache unavailable, refreshing directly", zap.Error(err))
	} else if hit {
		return cached, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		tok, ferr := s.Provider.FetchToken(ctx)
		if ferr != nil {
			// refresh failures propagate to every waiter, no retry here
			return nil, domain.CredentialRefreshError{Err: ferr}
		}

		if ttl := s.cacheTTL(tok); ttl > 0 {
			if serr := s.Store.SetEx(ctx, key, tok.AccessToken, ttl); serr != nil {
				s.Log.Warn("token cache write failed", zap.Error(serr))
			}
		}

		s.Log.Info("credential refreshed", zap.String("provider", s.Provider.Name()))
		return tok.AccessToken, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// cacheTTL prefers the exp claim when the credential parses as a JWT and
// falls back to the provider-reported expires_in, minus the margin.
func (s *TokenService) cacheTTL(tok Token) time.Duration {
	lifetime := tok.ExpiresIn
	if exp, ok := jwtExpiry(tok.AccessToken); ok {
		if d := time.Until(exp); d > 0 {
			lifetime = d
		}
	}
	return lifetime - s.Margin
}

// jwtExpiry reads the exp claim without verifying the signature; this is
// our own credential and only its lifetime matters here.
func jwtExpiry(raw string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
