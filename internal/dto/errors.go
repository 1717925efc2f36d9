package dto

import (
	"errors"
	"fmt"
)

var (
	ErrValidation          = errors.New("validation failed")
	ErrNotFound            = errors.New("not found")
	ErrNotAuthorized       = errors.New("not authorized")
	ErrInternalFailure     = errors.New("internal failure")
	ErrRemoteFailure       = errors.New("remote call failed")
	ErrCameraUnavailable   = errors.New("camera unavailable")
	ErrLocationUnavailable = errors.New("location unavailable")
	ErrNothingToExport     = errors.New("nothing to export")
)

// UserError pairs a sentinel with the short message shown to the user.
type UserError struct {
	Kind    error
	Message string
	Cause   error
}

func NewUserError(kind error, message string, cause error) *UserError {
	return &UserError{Kind: kind, Message: message, Cause: cause}
}

func (e *UserError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%v: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%v: %s", e.Kind, e.Message)
}

func (e *UserError) Is(target error) bool {
	return target == e.Kind
}

func (e *UserError) Unwrap() error {
	return e.Cause
}

// UserMessage returns the user-facing message carried by err, or fallback.
func UserMessage(err error, fallback string) string {
	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.Message
	}
	return fallback
}
