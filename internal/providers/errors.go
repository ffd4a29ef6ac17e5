package providers

import (
	"errors"
	"fmt"
)

// ErrProviderUnavailable indicates a provider was invoked before it was wired.
var ErrProviderUnavailable = errors.New("provider unavailable")

// UpstreamError captures a failed exchange with a valuation feed. It wraps the
// transport-level cause so callers can still unwrap context errors.
type UpstreamError struct {
	Source     string
	StatusCode int
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "upstream fetch failed"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: %s (status=%d)", e.Source, msg, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.Source, msg)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// AsUpstreamError attempts to unwrap an error into an UpstreamError.
func AsUpstreamError(err error) (*UpstreamError, bool) {
	var upErr *UpstreamError
	if errors.As(err, &upErr) {
		return upErr, true
	}
	return nil, false
}
