// Package validate holds the primitive field rules shared by the editor forms and the account
// endpoints. Each rule reports a user-facing message, or "" when the value passes.
package validate

import (
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

const (
	MinNameLength     = 2
	MaxSummaryLength  = 1500
	MinPasswordLength = 8
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	emailPattern    = regexp.MustCompile(`^\S+@\S+\.\S+$`)

	once sync.Once
	v    *validator.Validate
)

func engine() *validator.Validate {
	once.Do(func() {
		v = validator.New()
		_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return usernamePattern.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("looseemail", func(fl validator.FieldLevel) bool {
			return emailPattern.MatchString(fl.Field().String())
		})
	})
	return v
}

func check(value any, tag string) bool {
	return engine().Var(value, tag) == nil
}

// Required fails on blank values.
func Required(value, label string) string {
	if !check(strings.TrimSpace(value), "required") {
		return label + " is required"
	}
	return ""
}

// Name requires at least two characters after trimming.
func Name(value string) string {
	if !check(strings.TrimSpace(value), "min=2") {
		return "Name must be at least 2 characters"
	}
	return ""
}

// Email accepts anything shaped like local@domain.tld.
func Email(value string) string {
	if !check(strings.TrimSpace(value), "looseemail") {
		return "Invalid email address"
	}
	return ""
}

// OptionalEmail is Email for fields that may be left blank.
func OptionalEmail(value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	return Email(value)
}

// StrictEmail is the RFC-ish check used for account identities.
func StrictEmail(value string) string {
	if !check(strings.TrimSpace(value), "required,email") {
		return "Invalid email address"
	}
	return ""
}

// Summary caps the professional summary length.
func Summary(value string) string {
	if !check(value, "max=1500") {
		return "Summary cannot exceed 1500 characters"
	}
	return ""
}

// Username requires 3-30 letters, digits or underscores.
func Username(value string) string {
	value = strings.TrimSpace(value)
	switch {
	case value == "":
		return "Username is required"
	case !check(value, "min=3"):
		return "Username must be at least 3 characters"
	case !check(value, "max=30"):
		return "Username cannot exceed 30 characters"
	case !check(value, "username"):
		return "Username can only contain letters, numbers and underscores"
	}
	return ""
}

// Password requires at least eight characters.
func Password(value string) string {
	if value == "" {
		return "Password is required"
	}
	if !check(value, "min=8") {
		return "Password must be at least 8 characters"
	}
	return ""
}

// FieldError pairs a field path with its messages.
type FieldError struct {
	Field    string   `json:"field"`
	Messages []string `json:"messages"`
}

// FieldErrors is an ordered list of failing fields.
type FieldErrors []FieldError

// Add appends msg for field, ignoring empty messages.
func (f *FieldErrors) Add(field, msg string) {
	if msg == "" {
		return
	}
	for i := range *f {
		if (*f)[i].Field == field {
			(*f)[i].Messages = append((*f)[i].Messages, msg)
			return
		}
	}
	*f = append(*f, FieldError{Field: field, Messages: []string{msg}})
}

// First returns the first message of the first failing field.
func (f FieldErrors) First() string {
	for _, fe := range f {
		if len(fe.Messages) > 0 {
			return fe.Messages[0]
		}
	}
	return ""
}

// Map converts to the {field: [messages]} shape.
func (f FieldErrors) Map() map[string][]string {
	out := make(map[string][]string, len(f))
	for _, fe := range f {
		out[fe.Field] = append(out[fe.Field], fe.Messages...)
	}
	return out
}
