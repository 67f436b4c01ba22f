package resumes

import (
	"errors"

	"curriculum-backend/resume/validate"
)

var (
	// ErrNotFound indicates the résumé does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrForbidden indicates the résumé belongs to someone else.
	ErrForbidden = errors.New("forbidden")

	// ErrVersionConflict indicates the save was based on a stale version.
	ErrVersionConflict = errors.New("version conflict")
)

// ValidationError carries per-field messages for a rejected save body.
type ValidationError struct {
	Fields validate.FieldErrors
}

func (e *ValidationError) Error() string {
	if msg := e.Fields.First(); msg != "" {
		return "validation failed: " + msg
	}
	return "validation failed"
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }
