package utils

import "errors"

var (
	ErrInvalidRequest   = errors.New("invalid request")
	ErrDatabaseError    = errors.New("database error")
	ErrRegionsUnloaded  = errors.New("no seeded regions loaded")
	ErrFeedbackDisabled = errors.New("feedback forwarding is not configured")
)

type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Unwrap() error { return ErrInvalidRequest }

// ValidationError wraps a human-readable message so callers can match it
// against ErrInvalidRequest while the message survives to the response.
func ValidationError(msg string) error {
	return &validationError{msg: msg}
}
