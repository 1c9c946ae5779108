package domain

import "errors"

var ErrNotFound = errors.New("not found")

// ValidationError reports caller-supplied data violating a documented
// constraint. It is raised before any store access is attempted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Field + ": " + e.Message }

func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
