package render

import (
	"regexp"
	"strings"

	"curriculum-backend/resume/model"
)

var (
	hex6 = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	hex3 = regexp.MustCompile(`^#[0-9a-fA-F]{3}$`)
)

// Theme is the accent palette shared by every template. The derived shades are the accent
// with a fixed alpha suffix.
type Theme struct {
	Accent     string
	Muted      string
	SoftBorder string
	SoftFill   string
	TagFill    string
}

// NewTheme derives the palette from an accent color. Anything that is not a hex color falls
// back to the default accent.
func NewTheme(accent string) Theme {
	accent = strings.TrimSpace(accent)
	switch {
	case hex6.MatchString(accent):
	case hex3.MatchString(accent):
		accent = "#" + strings.Repeat(accent[1:2], 2) + strings.Repeat(accent[2:3], 2) + strings.Repeat(accent[3:4], 2)
	default:
		accent = model.DefaultAccentColor
	}
	accent = strings.ToLower(accent)
	return Theme{
		Accent:     accent,
		Muted:      accent + "aa",
		SoftBorder: accent + "55",
		SoftFill:   accent + "15",
		TagFill:    accent + "20",
	}
}
