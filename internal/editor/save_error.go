package editor

import (
	"errors"
	"net/http"

	"curriculum-backend/internal/client"
	"curriculum-backend/internal/resumes"
	"curriculum-backend/resume/validate"
)

const (
	MsgValidation = "Validation error. Please check your data."
	MsgConflict   = "Resume was modified elsewhere. Please reload."
	MsgSaveFailed = "Failed to save resume. Please try again."
)

// SaveError is the user-facing result of a failed save.
type SaveError struct {
	Status  int
	Message string
	Fields  validate.FieldErrors
	Err     error
}

func (e *SaveError) Error() string { return e.Message }

func (e *SaveError) Unwrap() error { return e.Err }

// classify maps a store error onto the save taxonomy: validation, conflict, or anything else.
func classify(err error) *SaveError {
	var (
		apiErr *client.APIError
		verr   *resumes.ValidationError
	)
	switch {
	case errors.As(err, &verr):
		return validationError(verr.Fields, err)
	case errors.Is(err, resumes.ErrVersionConflict):
		return &SaveError{Status: http.StatusConflict, Message: MsgConflict, Err: err}
	case errors.As(err, &apiErr):
		switch apiErr.Status {
		case http.StatusUnprocessableEntity:
			return validationError(apiErr.Fields, err)
		case http.StatusConflict:
			return &SaveError{Status: http.StatusConflict, Message: MsgConflict, Err: err}
		}
		return &SaveError{Status: apiErr.Status, Message: MsgSaveFailed, Err: err}
	}
	return &SaveError{Status: http.StatusInternalServerError, Message: MsgSaveFailed, Err: err}
}

func validationError(fields validate.FieldErrors, err error) *SaveError {
	msg := fields.First()
	if msg == "" {
		msg = MsgValidation
	}
	return &SaveError{Status: http.StatusUnprocessableEntity, Message: msg, Fields: fields, Err: err}
}
