package fetch

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// TransientKind categorizes a retryable failure.
type TransientKind string

const (
	// KindNetwork indicates a network-level error (connection refused, DNS, etc.)
	KindNetwork TransientKind = "network"
	// KindTimeout indicates the request timed out
	KindTimeout TransientKind = "timeout"
	// KindRateLimit indicates the upstream rejected the request with HTTP 429
	KindRateLimit TransientKind = "rate_limit"
	// KindServer indicates an upstream server error (HTTP 5xx)
	KindServer TransientKind = "server"
)

// InvalidRequestError marks a request that can never succeed: a malformed
// symbol, an unsupported interval, a backwards date range. It is surfaced
// immediately and never retried.
type InvalidRequestError struct {
	Err error
}

// Error implements the error interface.
func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("invalid request: %v", e.Err)
}

// Unwrap implements error unwrapping for errors.Is and errors.As.
func (e *InvalidRequestError) Unwrap() error {
	return e.Err
}

// TransientError marks a failure expected to resolve on retry: timeouts,
// rate limiting, upstream 5xx responses.
type TransientError struct {
	Kind       TransientKind
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *TransientError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s error (status %d): %v", e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
}

// Unwrap implements error unwrapping for errors.Is and errors.As.
func (e *TransientError) Unwrap() error {
	return e.Err
}

// FetchFailedError reports that every retry attempt failed. It wraps the
// last transient error observed. Fatal for the request it belongs to, but
// a batch of requests continues past it.
type FetchFailedError struct {
	Attempts int
	Err      error
}

// Error implements the error interface.
func (e *FetchFailedError) Error() string {
	return fmt.Sprintf("fetch failed after %d attempts: %v", e.Attempts, e.Err)
}

// Unwrap implements error unwrapping for errors.Is and errors.As.
func (e *FetchFailedError) Unwrap() error {
	return e.Err
}

// IsTransient reports whether err should be retried.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

// ClassifyHTTPStatus maps an HTTP status code from the provider into the
// error taxonomy: 429 is rate limiting, 408 a timeout, 5xx a server
// error (all transient); any other 4xx is a permanent request error.
func ClassifyHTTPStatus(statusCode int, message string) error {
	base := fmt.Errorf("provider returned status %d: %s", statusCode, message)
	switch {
	case statusCode == 429:
		return &TransientError{Kind: KindRateLimit, StatusCode: statusCode, Err: base}
	case statusCode == 408:
		return &TransientError{Kind: KindTimeout, StatusCode: statusCode, Err: base}
	case statusCode >= 500:
		return &TransientError{Kind: KindServer, StatusCode: statusCode, Err: base}
	case statusCode >= 400:
		return &InvalidRequestError{Err: base}
	default:
		return base
	}
}

// ClassifyTransportError maps a transport-level failure (no HTTP response
// at all) into the taxonomy. Context cancellation passes through untouched
// so callers can distinguish "user gave up" from "network flaked".
func ClassifyTransportError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &TransientError{Kind: KindTimeout, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &TransientError{Kind: KindTimeout, Err: err}
	}
	return &TransientError{Kind: KindNetwork, Err: err}
}
