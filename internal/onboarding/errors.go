package onboarding

import "errors"

// ErrSessionNotFound is returned by SessionStore.Get for unknown users.
var ErrSessionNotFound = errors.New("onboarding: session not found")

// ValidationError reports a malformed request. Message is safe to show to callers.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "onboarding: validation failed: " + e.Message
}

func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}
