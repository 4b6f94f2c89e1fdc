package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"catalog/internal/domain"

	"go.uber.org/zap"
)

const (
	ExternalMaxRetries   = 3
	ExternalInitialDelay = 500 * time.Millisecond
)

// ExternalService calls the partner API with a bearer credential,
// retrying transport failures with doubling delays. The credential is
// obtained once per call chain; a failed refresh is not retried here, it
// propagates straight out.
type ExternalService struct {
	Tokens       *TokenService
	URL          string
	Client       *http.Client
	Retries      int
	InitialDelay time.Duration
	Log          *zap.Logger
}

func NewExternalService(tokens *TokenService, apiURL string, log *zap.Logger) *ExternalService {
	return &ExternalService{
		Tokens:       tokens,
		URL:          apiURL,
		Client:       &http.Client{Timeout: 3 * time.Second},
		Retries:      ExternalMaxRetries,
		InitialDelay: ExternalInitialDelay,
		Log:          log,
	}
}

func (s *ExternalService) FetchResource(ctx context.Context) (json.RawMessage, error) {
	token, err := s.Tokens.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	attempts := s.Retries + 1
	delay := s.InitialDelay

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		body, cerr := s.call(ctx, token)
		if cerr == nil {
			return body, nil
		}
		lastErr = cerr
		s.Log.Warn("external call failed",
			zap.Int("attempt", attempt), zap.Int("max_attempts", attempts), zap.Error(cerr))

		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, domain.TransportError{Attempts: attempt, Err: ctx.Err()}
		case <-time.After(delay):
		}
		delay *= 2
	}

	return nil, domain.TransportError{Attempts: attempts, Err: lastErr}
}

func (s *ExternalService) call(ctx context.Context, token string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("external api returned %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}
