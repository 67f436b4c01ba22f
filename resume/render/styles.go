package render

import (
	"fmt"
	"strconv"
	"strings"
)

// Box is a per-side length in points.
type Box struct {
	Top, Right, Bottom, Left float64
}

// All returns a box with the same length on every side.
func All(v float64) Box { return Box{v, v, v, v} }

// XY returns a box with vertical length y and horizontal length x.
func XY(x, y float64) Box { return Box{Top: y, Right: x, Bottom: y, Left: x} }

// Style is the semantic formatting both back-ends understand. Lengths are points; colors are
// #RRGGBB or #RRGGBBAA.
type Style struct {
	FontSize   float64
	LineHeight float64
	Bold       bool
	Italic     bool
	Uppercase  bool
	Color      string
	Background string

	BorderBottom float64
	BorderRight  float64
	BorderColor  string

	// Width is a fraction of the parent's content width. Zero means the node takes its
	// natural width inside a row and the full width elsewhere.
	Width float64
	// Grow takes the width left over in a row.
	Grow   bool
	Height float64

	Row          bool
	Wrap         bool
	SpaceBetween bool
	Gap          float64
	Align        string

	Margin  Box
	Padding Box
}

const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

const (
	BaseFontSize   = 10.0
	BaseLineHeight = 1.4
	TextColor      = "#374151"
	InkColor       = "#111827"
	SubtleColor    = "#4b5563"
	FaintColor     = "#6b7280"
	RuleColor      = "#e5e7eb"
)

// Merge overlays the non-zero fields of o onto s.
func (s Style) Merge(o Style) Style {
	if o.FontSize != 0 {
		s.FontSize = o.FontSize
	}
	if o.LineHeight != 0 {
		s.LineHeight = o.LineHeight
	}
	s.Bold = s.Bold || o.Bold
	s.Italic = s.Italic || o.Italic
	s.Uppercase = s.Uppercase || o.Uppercase
	if o.Color != "" {
		s.Color = o.Color
	}
	if o.Background != "" {
		s.Background = o.Background
	}
	if o.BorderBottom != 0 {
		s.BorderBottom = o.BorderBottom
	}
	if o.BorderRight != 0 {
		s.BorderRight = o.BorderRight
	}
	if o.BorderColor != "" {
		s.BorderColor = o.BorderColor
	}
	if o.Width != 0 {
		s.Width = o.Width
	}
	s.Grow = s.Grow || o.Grow
	if o.Height != 0 {
		s.Height = o.Height
	}
	s.Row = s.Row || o.Row
	s.Wrap = s.Wrap || o.Wrap
	s.SpaceBetween = s.SpaceBetween || o.SpaceBetween
	if o.Gap != 0 {
		s.Gap = o.Gap
	}
	if o.Align != "" {
		s.Align = o.Align
	}
	if o.Margin != (Box{}) {
		s.Margin = o.Margin
	}
	if o.Padding != (Box{}) {
		s.Padding = o.Padding
	}
	return s
}

// CSS renders s as an inline style declaration.
func (s Style) CSS() string {
	var decls []string
	add := func(prop, value string) {
		decls = append(decls, prop+":"+value)
	}
	if s.FontSize != 0 {
		add("font-size", pt(s.FontSize))
	}
	if s.LineHeight != 0 {
		add("line-height", num(s.LineHeight))
	}
	if s.Bold {
		add("font-weight", "bold")
	}
	if s.Italic {
		add("font-style", "italic")
	}
	if s.Uppercase {
		add("text-transform", "uppercase")
	}
	if s.Color != "" {
		add("color", s.Color)
	}
	if s.Background != "" {
		add("background-color", s.Background)
	}
	if s.BorderBottom != 0 {
		add("border-bottom", pt(s.BorderBottom)+" solid "+orColor(s.BorderColor))
	}
	if s.BorderRight != 0 {
		add("border-right", pt(s.BorderRight)+" solid "+orColor(s.BorderColor))
	}
	if s.Width != 0 {
		add("width", num(s.Width*100)+"%")
		add("box-sizing", "border-box")
	}
	if s.Grow {
		add("flex", "1")
	}
	if s.Height != 0 {
		add("min-height", pt(s.Height))
	}
	if s.Row {
		add("display", "flex")
		add("flex-direction", "row")
		if s.Wrap {
			add("flex-wrap", "wrap")
		}
		switch {
		case s.SpaceBetween:
			add("justify-content", "space-between")
		case s.Align == AlignCenter:
			add("justify-content", "center")
		case s.Align == AlignRight:
			add("justify-content", "flex-end")
		}
	}
	if s.Gap != 0 {
		if !s.Row {
			add("display", "flex")
			add("flex-direction", "column")
		}
		add("gap", pt(s.Gap))
	}
	if s.Align != "" {
		add("text-align", s.Align)
	}
	if s.Margin != (Box{}) {
		add("margin", box(s.Margin))
	}
	if s.Padding != (Box{}) {
		add("padding", box(s.Padding))
	}
	return strings.Join(decls, ";")
}

func orColor(c string) string {
	if c == "" {
		return InkColor
	}
	return c
}

func box(b Box) string {
	return fmt.Sprintf("%s %s %s %s", pt(b.Top), pt(b.Right), pt(b.Bottom), pt(b.Left))
}

func pt(v float64) string {
	if v == 0 {
		return "0"
	}
	return num(v) + "pt"
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
