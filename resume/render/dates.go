package render

import (
	"strings"
	"time"
)

var dateLayouts = []string{"2006-01", "2006-01-02"}

// FormatYearMonth renders YYYY-MM and YYYY-MM-DD as "Jan 2006". The "Present" label passes
// through, and anything unparsable is returned unchanged.
func FormatYearMonth(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || v == "Present" {
		return v
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format("Jan 2006")
		}
	}
	return v
}

// FormatYear renders just the year of a date, or the raw value when unparsable.
func FormatYear(v string) string {
	v = strings.TrimSpace(v)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format("2006")
		}
	}
	return v
}

// DateRange joins two formatted dates with sep. A missing side drops the separator and an
// empty range renders as "".
func DateRange(start, end, sep string) string {
	s, e := FormatYearMonth(start), FormatYearMonth(end)
	switch {
	case s == "" && e == "":
		return ""
	case s == "":
		return e
	case e == "":
		return s
	default:
		return s + sep + e
	}
}

// Bullets splits a description into one entry per line. Blank lines are dropped.
func Bullets(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}
