package models

import (
	"errors"
	"fmt"
)

var (
	ErrValidation     = errors.New("validation error")
	ErrRemote         = errors.New("remote failure")
	ErrNotFound       = errors.New("not found")
	ErrToggleInFlight = errors.New("toggle already in flight")
	ErrUnauthorized   = errors.New("unauthorized")
)

// ValidationError is reported next to the offending input and never
// touches remote state.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// RemoteError wraps a record store failure. errors.Is matches both
// ErrRemote and the underlying cause.
type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, ErrRemote, e.Err)
}

func (e *RemoteError) Unwrap() []error {
	return []error{ErrRemote, e.Err}
}

// Remote tags err as a RemoteError unless it already is one.
func Remote(op string, err error) error {
	if err == nil {
		return nil
	}
	var re *RemoteError
	if errors.As(err, &re) {
		return err
	}
	return &RemoteError{Op: op, Err: err}
}
