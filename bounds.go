package vpath

import "math"

// bounds accumulates the smallest rectangle containing every coordinate
// written to a path. The zero value is empty; an empty tracker reports the
// degenerate rectangle at the origin.
type bounds struct {
	left, top, right, bottom float64
	nonEmpty                 bool
}

func (b *bounds) update(x, y float64) {
	if !b.nonEmpty {
		b.left, b.right = x, x
		b.top, b.bottom = y, y
		b.nonEmpty = true
		return
	}
	b.left = math.Min(b.left, x)
	b.top = math.Min(b.top, y)
	b.right = math.Max(b.right, x)
	b.bottom = math.Max(b.bottom, y)
}

func (b *bounds) updatePoint(p Point) {
	b.update(p.X, p.Y)
}

func (b *bounds) updateRect(r Rect) {
	b.update(r.Min.X, r.Min.Y)
	b.update(r.Max.X, r.Max.Y)
}

// union merges another tracker. Empty trackers contribute nothing.
func (b *bounds) union(o bounds) {
	if !o.nonEmpty {
		return
	}
	b.update(o.left, o.top)
	b.update(o.right, o.bottom)
}

func (b *bounds) isEmpty() bool {
	return !b.nonEmpty
}

func (b *bounds) rect() Rect {
	return RectFromLTRB(b.left, b.top, b.right, b.bottom)
}

func (b bounds) translated(d Point) bounds {
	if !b.nonEmpty {
		return b
	}
	b.left += d.X
	b.right += d.X
	b.top += d.Y
	b.bottom += d.Y
	return b
}
