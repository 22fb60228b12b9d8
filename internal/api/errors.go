package api

import (
	"errors"
	"fmt"
)

// ErrUnauthorized marks a 401 on an authenticated call. The stored credential
// is stale or revoked; callers drop the session and reauthenticate.
var ErrUnauthorized = errors.New("unauthorized: credential rejected by backend")

// APIError carries the server-supplied error message for a failed request.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend returned status %d", e.Status)
}

// IsAuthFailure reports whether err should end the current session.
func IsAuthFailure(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
