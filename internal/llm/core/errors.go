package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest indicates missing or malformed gateway request input.
	ErrInvalidRequest = errors.New("invalid llm request")
	// ErrMissingAPIKey indicates missing provider API key.
	ErrMissingAPIKey = errors.New("missing api key")
)

// TransportError reports a network-level failure reaching the provider:
// connection refused, DNS failure, timeout. The gateway surfaces it to the
// caller without retrying.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("transport: %v", e.Err)
	}
	return fmt.Sprintf("transport: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ProviderError reports a non-success response from the provider API:
// malformed request, rate limit, auth failure. The gateway surfaces it to
// the caller without retrying.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider: status %d: %s", e.StatusCode, e.Message)
}
