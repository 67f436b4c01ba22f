package forms

import (
	"curriculum-backend/resume/model"
	"curriculum-backend/resume/validate"
)

// ValidatePersonal checks the personal details form. Errors are keyed by wire field name.
func ValidatePersonal(pd model.PersonalDetails, summary string) validate.FieldErrors {
	var errs validate.FieldErrors
	errs.Add("full_name", validate.Name(pd.FullName))
	errs.Add("email", validate.OptionalEmail(pd.Email))
	errs.Add("summary", validate.Summary(summary))
	return errs
}
