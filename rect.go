package vpath

import (
	"fmt"
	"math"
)

// Rect represents an axis-aligned rectangle.
// Min is the top-left corner (minimum coordinates).
// Max is the bottom-right corner (maximum coordinates).
type Rect struct {
	Min, Max Point
}

// NewRect creates a rectangle from two points.
// The points are normalized so Min <= Max.
func NewRect(p1, p2 Point) Rect {
	return Rect{
		Min: Point{X: math.Min(p1.X, p2.X), Y: math.Min(p1.Y, p2.Y)},
		Max: Point{X: math.Max(p1.X, p2.X), Y: math.Max(p1.Y, p2.Y)},
	}
}

// RectFromLTRB creates a rectangle from its four edges without normalizing.
func RectFromLTRB(left, top, right, bottom float64) Rect {
	return Rect{Min: Point{X: left, Y: top}, Max: Point{X: right, Y: bottom}}
}

// RectFromXYWH creates a rectangle from an origin and a size.
func RectFromXYWH(x, y, w, h float64) Rect {
	return RectFromLTRB(x, y, x+w, y+h)
}

// Left returns the minimum x coordinate.
func (r Rect) Left() float64 { return r.Min.X }

// Top returns the minimum y coordinate.
func (r Rect) Top() float64 { return r.Min.Y }

// Right returns the maximum x coordinate.
func (r Rect) Right() float64 { return r.Max.X }

// Bottom returns the maximum y coordinate.
func (r Rect) Bottom() float64 { return r.Max.Y }

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return r.Min.Lerp(r.Max, 0.5)
}

// IsEmpty reports whether the rectangle encloses no area.
func (r Rect) IsEmpty() bool {
	return r.Max.X <= r.Min.X || r.Max.Y <= r.Min.Y
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		Min: Point{X: math.Min(r.Min.X, other.Min.X), Y: math.Min(r.Min.Y, other.Min.Y)},
		Max: Point{X: math.Max(r.Max.X, other.Max.X), Y: math.Max(r.Max.Y, other.Max.Y)},
	}
}

// Contains returns true if the point is inside the rectangle (edges included).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// ContainsRect reports whether other lies entirely within r.
func (r Rect) ContainsRect(other Rect) bool {
	return r.Contains(other.Min) && r.Contains(other.Max)
}

// Translate returns the rectangle moved by offset.
func (r Rect) Translate(offset Point) Rect {
	return Rect{Min: r.Min.Add(offset), Max: r.Max.Add(offset)}
}

// String formats the rectangle as LTRB.
func (r Rect) String() string {
	return fmt.Sprintf("Rect.fromLTRB(%.1f, %.1f, %.1f, %.1f)", r.Min.X, r.Min.Y, r.Max.X, r.Max.Y)
}

func (r Rect) isFinite() bool {
	return r.Min.IsFinite() && r.Max.IsFinite()
}

// RRect is a rectangle with four elliptical corners.
// Each radius stores the horizontal radius in X and the vertical one in Y.
type RRect struct {
	Rect        Rect
	TopLeft     Point
	TopRight    Point
	BottomRight Point
	BottomLeft  Point
}

// RRectFromRectAndRadius creates a rounded rectangle with the same
// elliptical radius at every corner.
func RRectFromRectAndRadius(r Rect, rx, ry float64) RRect {
	radius := Point{X: rx, Y: ry}
	return RRect{Rect: r, TopLeft: radius, TopRight: radius, BottomRight: radius, BottomLeft: radius}
}

// Validate checks that the edges are finite and every radius is
// finite and non-negative.
func (rr RRect) Validate() error {
	if !rr.Rect.isFinite() {
		return fmt.Errorf("%w: rounded rect %v has non-finite edges", ErrInvalidGeometry, rr.Rect)
	}
	for _, c := range rr.radii() {
		if !c.IsFinite() || c.X < 0 || c.Y < 0 {
			return fmt.Errorf("%w: rounded rect radius %v", ErrInvalidGeometry, c)
		}
	}
	return nil
}

func (rr RRect) radii() [4]Point {
	return [4]Point{rr.TopLeft, rr.TopRight, rr.BottomRight, rr.BottomLeft}
}

// scaledRadii shrinks all radii by a common factor so that adjacent
// corners never overlap along an edge.
func (rr RRect) scaledRadii() [4]Point {
	r := rr.radii()
	w, h := math.Abs(rr.Rect.Width()), math.Abs(rr.Rect.Height())
	scale := 1.0
	limit := func(sum, edge float64) {
		if sum > edge && sum > 0 {
			scale = math.Min(scale, edge/sum)
		}
	}
	limit(r[0].X+r[1].X, w)
	limit(r[3].X+r[2].X, w)
	limit(r[0].Y+r[3].Y, h)
	limit(r[1].Y+r[2].Y, h)
	if scale < 1 {
		for i := range r {
			r[i] = r[i].Mul(scale)
		}
	}
	return r
}
