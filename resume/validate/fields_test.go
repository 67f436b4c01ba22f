package validate

import (
	"strings"
	"testing"
)

func TestFieldRules(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{name: "short name", got: Name("A"), want: "Name must be at least 2 characters"},
		{name: "padded name", got: Name("  A "), want: "Name must be at least 2 characters"},
		{name: "ok name", got: Name("Al"), want: ""},
		{name: "bad email", got: Email("ada@example"), want: "Invalid email address"},
		{name: "ok email", got: Email("ada@example.com"), want: ""},
		{name: "blank optional email", got: OptionalEmail(""), want: ""},
		{name: "long summary", got: Summary(strings.Repeat("x", 1501)), want: "Summary cannot exceed 1500 characters"},
		{name: "max summary", got: Summary(strings.Repeat("x", 1500)), want: ""},
		{name: "short username", got: Username("ab"), want: "Username must be at least 3 characters"},
		{name: "bad username", got: Username("ada-l"), want: "Username can only contain letters, numbers and underscores"},
		{name: "ok username", got: Username("ada_l"), want: ""},
		{name: "short password", got: Password("1234567"), want: "Password must be at least 8 characters"},
		{name: "required", got: Required("  ", "Title"), want: "Title is required"},
		{name: "strict email", got: StrictEmail("not-an-email"), want: "Invalid email address"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Fatalf("%s: got %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestFieldErrorsKeepsOrder(t *testing.T) {
	var errs FieldErrors
	errs.Add("email", "Invalid email address")
	errs.Add("full_name", "")
	errs.Add("summary", "Summary cannot exceed 1500 characters")
	errs.Add("email", "second")

	if len(errs) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(errs))
	}
	if errs.First() != "Invalid email address" {
		t.Fatalf("First() = %q", errs.First())
	}
	if got := errs.Map()["email"]; len(got) != 2 {
		t.Fatalf("expected two email messages, got %v", got)
	}
}
