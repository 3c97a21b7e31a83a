package platform

import (
	"errors"
	"fmt"
)

// ErrNoResponse marks transport failures where the platform was never
// reached or never answered. No backend message exists for these.
var ErrNoResponse = errors.New("no response from platform")

// ErrNotFound matches backend-reported 404s via errors.Is.
var ErrNotFound = errors.New("resource not found")

// APIError is a backend-reported error: the platform answered with a
// non-2xx status and (usually) a structured message. The message is
// surfaced to the operator verbatim when present.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("platform returned status %d", e.StatusCode)
}

func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == 404
}
