package export

import (
	"math"
	"strconv"
	"strings"

	"curriculum-backend/resume/render"
)

const (
	fontFamily = "Helvetica"
	epsilon    = 0.01
)

type opKind int

const (
	opText opKind = iota
	opRect
	opLine
	opLink
)

type rgb struct{ r, g, b int }

type font struct {
	style string
	size  float64
}

// op is one positioned drawing instruction on the unpaginated canvas. Text is already in the
// PDF code page.
type op struct {
	kind   opKind
	x, y   float64
	w, h   float64
	x2, y2 float64
	text   string
	font   font
	color  rgb
	stroke float64
	href   string
}

func (o op) bottom() float64 {
	if o.kind == opLine {
		return math.Max(o.y, o.y2)
	}
	return o.y + o.h
}

// measurer reports text widths in points for the fonts the serializer will use.
type measurer interface {
	Width(text string, f font) float64
	Translate(s string) string
}

// textProps are the inherited text properties.
type textProps struct {
	size       float64
	lineHeight float64
	color      string
	bold       bool
	italic     bool
	upper      bool
	align      string
}

func rootProps() textProps {
	return textProps{
		size:       render.BaseFontSize,
		lineHeight: render.BaseLineHeight,
		color:      render.InkColor,
		align:      render.AlignLeft,
	}
}

func (t textProps) with(s render.Style) textProps {
	if s.FontSize != 0 {
		t.size = s.FontSize
	}
	if s.LineHeight != 0 {
		t.lineHeight = s.LineHeight
	}
	if s.Color != "" {
		t.color = s.Color
	}
	t.bold = t.bold || s.Bold
	t.italic = t.italic || s.Italic
	t.upper = t.upper || s.Uppercase
	if s.Align != "" {
		t.align = s.Align
	}
	return t
}

func (t textProps) font() font {
	style := ""
	if t.bold {
		style += "B"
	}
	if t.italic {
		style += "I"
	}
	return font{style: style, size: t.size}
}

func (t textProps) content(raw string) string {
	if t.upper {
		return strings.ToUpper(raw)
	}
	return raw
}

// engine lays a primitive tree out on a single tall canvas of page width.
type engine struct {
	m   measurer
	ops []op
}

func (e *engine) layout(root *render.PDFNode) float64 {
	return e.node(root, 0, 0, render.A4Width, rootProps())
}

// node places n with its margin box at (x, y) and width w and returns the outer height.
func (e *engine) node(n *render.PDFNode, x, y, w float64, inh textProps) float64 {
	st := n.Style
	props := inh.with(st)
	m, p := st.Margin, st.Padding

	bx, by, bw := x+m.Left, y+m.Top, math.Max(w-m.Left-m.Right, 0)
	cx, cy, cw := bx+p.Left, by+p.Top, math.Max(bw-p.Left-p.Right, 0)

	mark := len(e.ops)
	var ch float64
	switch {
	case n.Kind == render.KindText || n.Kind == render.KindLink:
		ch = e.text(n, props, cx, cy, cw)
	case st.Row && st.Wrap:
		ch = e.wrapRow(n, props, cx, cy, cw)
	case st.Row:
		ch = e.row(n, props, cx, cy, cw)
	default:
		ch = e.column(n, props, cx, cy, cw)
	}

	bh := math.Max(ch+p.Top+p.Bottom, st.Height)
	if st.Background != "" && bw > 0 && bh > 0 {
		e.insert(mark, op{kind: opRect, x: bx, y: by, w: bw, h: bh, color: parseColor(st.Background)})
	}
	border := parseColor(orDefault(st.BorderColor, render.InkColor))
	if st.BorderBottom > 0 {
		ly := by + bh - st.BorderBottom/2
		e.ops = append(e.ops, op{kind: opLine, x: bx, y: ly, x2: bx + bw, y2: ly, color: border, stroke: st.BorderBottom})
	}
	if st.BorderRight > 0 {
		lx := bx + bw - st.BorderRight/2
		e.ops = append(e.ops, op{kind: opLine, x: lx, y: by, x2: lx, y2: by + bh, color: border, stroke: st.BorderRight})
	}
	return m.Top + bh + m.Bottom
}

func (e *engine) insert(at int, o op) {
	e.ops = append(e.ops, op{})
	copy(e.ops[at+1:], e.ops[at:])
	e.ops[at] = o
}

func (e *engine) text(n *render.PDFNode, props textProps, x, y, w float64) float64 {
	f := props.font()
	lines := e.wrap(e.m.Translate(props.content(n.Text)), f, w)
	lh := props.size * props.lineHeight
	col := parseColor(props.color)
	for i, line := range lines {
		lw := e.m.Width(line, f)
		lx := x
		switch props.align {
		case render.AlignCenter:
			lx += math.Max(w-lw, 0) / 2
		case render.AlignRight:
			lx += math.Max(w-lw, 0)
		}
		ly := y + float64(i)*lh
		e.ops = append(e.ops, op{kind: opText, x: lx, y: ly, w: lw, h: lh, text: line, font: f, color: col})
		if n.Kind == render.KindLink && n.Href != "" {
			e.ops = append(e.ops, op{kind: opLink, x: lx, y: ly, w: lw, h: lh, href: n.Href})
		}
	}
	return float64(len(lines)) * lh
}

// wrap breaks text into lines no wider than w, splitting words that cannot fit on their own.
func (e *engine) wrap(text string, f font, w float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	cur := ""
	for _, word := range words {
		if cur != "" {
			if e.m.Width(cur+" "+word, f) <= w+epsilon {
				cur += " " + word
				continue
			}
			lines = append(lines, cur)
			cur = ""
		}
		for len(word) > 1 && e.m.Width(word, f) > w+epsilon {
			cut := e.fit(word, f, w)
			lines = append(lines, word[:cut])
			word = word[cut:]
		}
		cur = word
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}

// fit returns the longest prefix length of word that fits in w, at least one byte.
func (e *engine) fit(word string, f font, w float64) int {
	lo, hi := 1, len(word)
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if e.m.Width(word[:mid], f) <= w+epsilon {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

func (e *engine) column(n *render.PDFNode, props textProps, x, y, w float64) float64 {
	var acc float64
	for i, c := range n.Children {
		if i > 0 {
			acc += n.Style.Gap
		}
		cw := w
		if c.Style.Width > 0 {
			cw = w * c.Style.Width
		}
		acc += e.node(c, x, y+acc, cw, props)
	}
	return acc
}

func (e *engine) row(n *render.PDFNode, props textProps, x, y, w float64) float64 {
	kids := n.Children
	if len(kids) == 0 {
		return 0
	}
	st := n.Style
	widths := make([]float64, len(kids))
	used := st.Gap * float64(len(kids)-1)
	var growers int
	var natural float64
	for i, c := range kids {
		switch {
		case c.Style.Width > 0:
			widths[i] = w * c.Style.Width
		case c.Style.Grow:
			growers++
		default:
			widths[i] = e.natural(c, props)
			natural += widths[i]
		}
		used += widths[i]
	}

	free := w - used
	if free < 0 && natural > 0 {
		scale := math.Max(natural+free, 0) / natural
		for i, c := range kids {
			if c.Style.Width == 0 && !c.Style.Grow {
				widths[i] *= scale
			}
		}
		free = 0
	}
	if growers > 0 {
		share := math.Max(free, 0) / float64(growers)
		for i, c := range kids {
			if c.Style.Grow && c.Style.Width == 0 {
				widths[i] = share
			}
		}
		free = 0
	}

	offset, spacing := 0.0, st.Gap
	if free > 0 {
		switch {
		case st.SpaceBetween && len(kids) > 1:
			spacing += free / float64(len(kids)-1)
		case st.Align == render.AlignCenter:
			offset = free / 2
		case st.Align == render.AlignRight:
			offset = free
		}
	}

	cx := x + offset
	var height float64
	for i, c := range kids {
		height = math.Max(height, e.node(c, cx, y, widths[i], props))
		cx += widths[i] + spacing
	}
	return height
}

func (e *engine) wrapRow(n *render.PDFNode, props textProps, x, y, w float64) float64 {
	kids := n.Children
	gap := n.Style.Gap
	widths := make([]float64, len(kids))
	for i, c := range kids {
		if c.Style.Width > 0 {
			widths[i] = w * c.Style.Width
		} else {
			widths[i] = math.Min(e.natural(c, props), w)
		}
	}

	type line struct {
		items []int
		width float64
	}
	var lines []line
	var cur line
	for i := range kids {
		need := widths[i]
		if len(cur.items) > 0 {
			need += gap
		}
		if len(cur.items) > 0 && cur.width+need > w+epsilon {
			lines = append(lines, cur)
			cur = line{}
			need = widths[i]
		}
		cur.items = append(cur.items, i)
		cur.width += need
	}
	if len(cur.items) > 0 {
		lines = append(lines, cur)
	}

	cy := y
	for li, l := range lines {
		if li > 0 {
			cy += gap
		}
		offset := 0.0
		switch n.Style.Align {
		case render.AlignCenter:
			offset = math.Max(w-l.width, 0) / 2
		case render.AlignRight:
			offset = math.Max(w-l.width, 0)
		}
		cx := x + offset
		var lh float64
		for _, i := range l.items {
			lh = math.Max(lh, e.node(kids[i], cx, cy, widths[i], props))
			cx += widths[i] + gap
		}
		cy += lh
	}
	return cy - y
}

// natural is the width n would take without wrapping, margins included.
func (e *engine) natural(n *render.PDFNode, inh textProps) float64 {
	st := n.Style
	props := inh.with(st)
	edges := st.Margin.Left + st.Margin.Right + st.Padding.Left + st.Padding.Right

	var inner float64
	switch {
	case n.Kind == render.KindText || n.Kind == render.KindLink:
		inner = e.m.Width(e.m.Translate(props.content(n.Text)), props.font()) + epsilon
	case st.Row:
		for i, c := range n.Children {
			if i > 0 {
				inner += st.Gap
			}
			inner += e.natural(c, props)
		}
	default:
		for _, c := range n.Children {
			inner = math.Max(inner, e.natural(c, props))
		}
	}
	return inner + edges
}

// parseColor reads #RGB, #RRGGBB or #RRGGBBAA. Alpha is blended against white paper.
func parseColor(s string) rgb {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 && len(h) != 8 {
		return rgb{17, 24, 39}
	}
	v, err := strconv.ParseUint(h[:6], 16, 32)
	if err != nil {
		return rgb{17, 24, 39}
	}
	c := rgb{int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)}
	if len(h) == 8 {
		a, err := strconv.ParseUint(h[6:], 16, 8)
		if err == nil {
			alpha := float64(a) / 255
			blend := func(ch int) int {
				return int(math.Round(float64(ch)*alpha + 255*(1-alpha)))
			}
			c = rgb{blend(c.r), blend(c.g), blend(c.b)}
		}
	}
	return c
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
