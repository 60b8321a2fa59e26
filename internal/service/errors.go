package service

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an operation references a task id that does
// not exist. Handlers recover it with a user-visible notice, never a fault.
var ErrNotFound = errors.New("task not found")

const (
	ReasonEmpty   = "empty"
	ReasonTooLong = "too_long"
)

// ValidationError reports bad user input for a single field. No mutation is
// performed when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value for field %q: %s", e.Field, e.Reason)
}

// Message is the user-facing text rendered next to the field.
func (e *ValidationError) Message() string {
	switch {
	case e.Field == "title" && e.Reason == ReasonEmpty:
		return "Task title cannot be empty or just whitespace."
	case e.Field == "title" && e.Reason == ReasonTooLong:
		return "Task title cannot exceed 200 characters."
	case e.Field == "description" && e.Reason == ReasonTooLong:
		return "Task description cannot exceed 2000 characters."
	}
	return "Invalid value."
}

func newValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
