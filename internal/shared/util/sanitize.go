package util

import (
	"errors"
	"strings"
	"unicode"
)

// ErrInvalidFileName is returned when nothing usable is left after sanitizing.
var ErrInvalidFileName = errors.New("invalid file name")

// SanitizeFileName replaces path separators, reserved characters and control characters with
// "_" and neutralizes traversal sequences.
func SanitizeFileName(name string) (string, error) {
	s := strings.TrimSpace(name)
	s = strings.Map(func(r rune) rune {
		switch {
		case unicode.IsControl(r):
			return '_'
		case strings.ContainsRune(`/\:*?"<>|`, r):
			return '_'
		}
		return r
	}, s)
	for strings.Contains(s, "..") {
		s = strings.ReplaceAll(s, "..", "_")
	}
	s = strings.Trim(s, ". ")
	if s == "" || strings.Trim(s, "_") == "" {
		return "", ErrInvalidFileName
	}
	return s, nil
}
