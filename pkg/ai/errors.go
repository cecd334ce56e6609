package ai

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNotConfigured is returned when a generation call is attempted without
// an API key. Fatal to the operation, never to the process.
var ErrNotConfigured = errors.New("GEMINI_API_KEY is not configured")

// TransportError covers any failure to complete the remote call: network
// errors, timeouts, and non-success statuses. Status and Body are populated
// when a response was received so the caller can diagnose the failure.
type TransportError struct {
	Status int
	Body   string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("gemini request failed: %v", e.Err)
	}
	return fmt.Sprintf("gemini api error %d: %s", e.Status, e.Body)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
