package domain

import (
	"errors"
	"fmt"
)

// InvalidCursorError marks a malformed pagination token. Always a client
// error at the boundary.
type InvalidCursorError struct {
	Err error
}

func (e InvalidCursorError) Error() string {
	return "invalid cursor format"
}

func (e InvalidCursorError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

// UpstreamUnavailableError marks a failed call to one of the backing
// stores. Reads that have a safe default (cache lookups, rate-limit
// counters) recover from it locally; everything else surfaces it.
type UpstreamUnavailableError struct {
	Upstream string
	Err      error
}

func (e UpstreamUnavailableError) Error() string {
	if e.Upstream == "" {
		return "upstream unavailable"
	}
	return fmt.Sprintf("%s unavailable", e.Upstream)
}

func (e UpstreamUnavailableError) Unwrap() error { return e.Err }

// CredentialRefreshError propagates a failed token refresh to every
// caller waiting on the shared refresh. Never retried internally.
type CredentialRefreshError struct {
	Err error
}

func (e CredentialRefreshError) Error() string {
	return "credential refresh failed"
}

func (e CredentialRefreshError) Unwrap() error { return e.Err }

// TransportError marks an outbound call that kept failing through the
// retry budget.
type TransportError struct {
	Attempts int
	Err      error
}

func (e TransportError) Error() string {
	if e.Attempts > 0 {
		return fmt.Sprintf("outbound call failed after %d attempts", e.Attempts)
	}
	return "outbound call failed"
}

func (e TransportError) Unwrap() error { return e.Err }

func IsInvalidCursor(err error) bool {
	var target InvalidCursorError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsUpstreamUnavailable(err error) bool {
	var target UpstreamUnavailableError
	return errors.As(err, &target)
}

func IsCredentialRefresh(err error) bool {
	var target CredentialRefreshError
	return errors.As(err, &target)
}

func IsTransport(err error) bool {
	var target TransportError
	return errors.As(err, &target)
}
