package util

import (
	"errors"
	"testing"
)

func TestSanitizeFileName(t *testing.T) {
	tests := map[string]string{
		"Ada Lovelace":    "Ada Lovelace",
		"a/b\\c":          "a_b_c",
		`what?"<x>|*:`:    `what___x____`,
		"../../etc":       "____etc",
		"  José Müller  ": "José Müller",
	}
	for in, want := range tests {
		got, err := SanitizeFileName(in)
		if err != nil {
			t.Fatalf("SanitizeFileName(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("SanitizeFileName(%q) = %q, want %q", in, got, want)
		}
	}
	for _, in := range []string{"", "   ", "..", "///"} {
		if _, err := SanitizeFileName(in); !errors.Is(err, ErrInvalidFileName) {
			t.Fatalf("SanitizeFileName(%q) err = %v", in, err)
		}
	}
}
