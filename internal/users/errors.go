package users

import (
	"errors"

	"curriculum-backend/resume/validate"
)

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "user not found" }

var (
	// ErrDuplicate indicates the email or username is taken.
	ErrDuplicate = errors.New("user already exists")

	// ErrInvalidCredentials hides whether the email or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidInput indicates bad input outside field validation.
	ErrInvalidInput = errors.New("invalid input")
)

// ValidationError carries per-field messages for a rejected account form.
type ValidationError struct {
	Fields validate.FieldErrors
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Fields.First()
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }
