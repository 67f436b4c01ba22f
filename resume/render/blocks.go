package render

import "strings"

const bulletGlyph = "•"

// nodes collects optional children; nil-producing branches are simply not appended.
type nodes[N any] []N

func (ns *nodes[N]) add(n ...N) { *ns = append(*ns, n...) }

// bulletList draws one row per description line.
func bulletList[N any](f Factory[N], text string, glyph Style, body Style) []N {
	lines := Bullets(text)
	out := make([]N, 0, len(lines))
	for _, line := range lines {
		out = append(out, f.View(Style{Row: true, Margin: Box{Bottom: 1}},
			f.Text(glyph, bulletGlyph),
			f.Text(body.Merge(Style{Grow: true}), line),
		))
	}
	return out
}

// tags draws a wrapping row of pill labels.
func tags[N any](f Factory[N], labels []string, pill Style, gap float64) N {
	kids := make([]N, 0, len(labels))
	for _, l := range labels {
		kids = append(kids, f.Text(pill, l))
	}
	return f.View(Style{Row: true, Wrap: true, Gap: gap}, kids...)
}

// linkRow draws labelled links separated by gap, skipping empty targets.
func linkRow[N any](f Factory[N], s Style, gap float64, pairs ...[2]string) (N, bool) {
	var kids nodes[N]
	for _, p := range pairs {
		if strings.TrimSpace(p[0]) != "" {
			kids.add(f.Link(s, p[0], p[1]))
		}
	}
	if len(kids) == 0 {
		var zero N
		return zero, false
	}
	return f.View(Style{Row: true, Gap: gap}, kids...), true
}

func mailto(email string) string {
	return "mailto:" + strings.TrimSpace(email)
}

func joinNonEmpty(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
