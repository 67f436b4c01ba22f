package export

import (
	"math"
	"sort"

	"curriculum-backend/resume/render"
)

const minPageMargin = 30.0

// paginate cuts the canvas into A4 pages. Text lines never straddle a page boundary; the
// cut moves up to the top of the first line that would. Boxes and vertical rules are split.
// Continuation pages get a top margin of top points.
func paginate(ops []op, top, bottom float64) [][]op {
	var total float64
	for _, o := range ops {
		total = math.Max(total, o.bottom())
	}

	breaks := []float64{0}
	for {
		start := breaks[len(breaks)-1]
		avail := render.A4Height - bottom
		if len(breaks) > 1 {
			avail -= top
		}
		end := start + avail
		if end >= total-epsilon {
			break
		}
		breaks = append(breaks, cutAt(ops, start, end))
	}

	pages := make([][]op, len(breaks))
	offset := func(k int) float64 {
		if k == 0 {
			return 0
		}
		return top - breaks[k]
	}
	limit := func(k int) float64 {
		if k+1 < len(breaks) {
			return breaks[k+1]
		}
		return math.Inf(1)
	}
	pageOf := func(y float64) int {
		return sort.Search(len(breaks), func(i int) bool { return breaks[i] > y }) - 1
	}

	for _, o := range ops {
		switch {
		case o.kind == opRect || (o.kind == opLine && o.x == o.x2 && o.y != o.y2):
			lo, hi := o.y, o.y+o.h
			if o.kind == opLine {
				lo, hi = math.Min(o.y, o.y2), math.Max(o.y, o.y2)
			}
			for k := max(pageOf(lo), 0); k < len(breaks) && breaks[k] < hi; k++ {
				a, b := math.Max(lo, breaks[k]), math.Min(hi, limit(k))
				if b-a <= epsilon {
					continue
				}
				piece := o
				if o.kind == opLine {
					piece.y, piece.y2 = a+offset(k), b+offset(k)
				} else {
					piece.y, piece.h = a+offset(k), b-a
				}
				pages[k] = append(pages[k], piece)
			}
		default:
			k := max(pageOf(o.y), 0)
			shifted := o
			shifted.y += offset(k)
			if o.kind == opLine {
				shifted.y2 += offset(k)
			}
			pages[k] = append(pages[k], shifted)
		}
	}
	return pages
}

// cutAt picks the page boundary at or above end so that no text line crosses it.
func cutAt(ops []op, start, end float64) float64 {
	cut := end
	for changed := true; changed; {
		changed = false
		for _, o := range ops {
			if o.kind != opText {
				continue
			}
			if o.y > start+epsilon && o.y < cut && o.y+o.h > cut+epsilon {
				cut = o.y
				changed = true
			}
		}
	}
	if cut <= start+epsilon {
		return end
	}
	return cut
}

func pageMargins(root *render.PDFNode) (top, bottom float64) {
	top, bottom = minPageMargin, minPageMargin
	if root == nil {
		return top, bottom
	}
	return math.Max(root.Style.Padding.Top, top), math.Max(root.Style.Padding.Bottom, bottom)
}
