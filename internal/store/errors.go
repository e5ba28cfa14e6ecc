package store

import (
	"errors"
	"fmt"
)

var (
	ErrIssueNotFound        = errors.New("issue not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrInvalidState         = errors.New("operation not allowed in current state")
)

// ValidationError reports malformed create/edit input. It carries the field
// so the handler can surface a precise message.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
