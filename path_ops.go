package vpath

import (
	"fmt"
	"math"
	"slices"
)

// PathOperation names a boolean combination of two paths.
type PathOperation uint8

const (
	// Difference subtracts the second path from the first.
	Difference PathOperation = iota
	// Intersect keeps the overlap of both paths.
	Intersect
	// Union keeps the area covered by either path.
	Union
	// Xor keeps the area covered by exactly one path.
	Xor
	// ReverseDifference subtracts the first path from the second.
	ReverseDifference
)

var pathOperationNames = [...]string{
	Difference:        "difference",
	Intersect:         "intersect",
	Union:             "union",
	Xor:               "xor",
	ReverseDifference: "reverseDifference",
}

// String returns the operation name.
func (op PathOperation) String() string {
	if int(op) < len(pathOperationNames) {
		return pathOperationNames[op]
	}
	return fmt.Sprintf("PathOperation(%d)", uint8(op))
}

// windingTolerance is the flattening tolerance used for hit testing.
const windingTolerance = 0.1

// Combine returns a new path holding the commands of a followed by the
// commands of b, with the union of their bounds.
//
// The operation is recorded for the caller's benefit only: no boolean
// clipping is performed, so overlapping regions are simply both present.
// The result takes the fill type of a. Neither input is modified.
func Combine(op PathOperation, a, b *Path) *Path {
	out := &Path{
		fillType: a.fillType,
		commands: slices.Concat(a.commands, b.commands),
		bounds:   a.bounds,
	}
	out.bounds.union(b.bounds)
	out.pen = a.pen
	if b.pen.placed {
		out.pen = b.pen
	}
	out.pen.starts = a.pen.starts + b.pen.starts
	Logger().Debug("vpath: combine concatenates paths",
		"op", op.String(), "commands", len(out.commands))
	return out
}

// Shift returns a copy of the path translated by offset. Every command,
// the cursor and the bounds move together.
func (p *Path) Shift(offset Point) *Path {
	out := &Path{
		fillType: p.fillType,
		commands: make([]Command, len(p.commands)),
		pen:      p.pen.translated(offset),
		bounds:   p.bounds.translated(offset),
	}
	for i, c := range p.commands {
		out.commands[i] = c.translate(offset)
	}
	return out
}

// Transform returns a copy of the path transformed by m.
//
// A pure translation is handled by Shift and keeps the recorded commands.
// Any other matrix lowers the path to primitive segments, maps every point
// through the affine part of m and recomputes the bounds from the result.
func (p *Path) Transform(m Matrix4) *Path {
	a := m.Affine()
	if a.IsTranslation() {
		return p.Shift(Point{X: a.C, Y: a.F})
	}
	out := NewPath()
	out.fillType = p.fillType
	for seg := range p.Segments() {
		pts := seg.Points
		for i := range seg.NumPoints() {
			pts[i] = a.TransformPoint(pts[i])
		}
		switch seg.Kind {
		case SegMoveTo:
			out.push(MoveTo{Point: pts[0]})
		case SegLineTo:
			out.push(LineTo{Point: pts[0]})
		case SegQuadTo:
			out.push(QuadTo{Control: pts[0], Point: pts[1]})
		case SegConicTo:
			out.push(ConicTo{Control: pts[0], Point: pts[1], Weight: seg.Weight})
		case SegCubicTo:
			out.push(CubicTo{Control1: pts[0], Control2: pts[1], Point: pts[2]})
		case SegClose:
			out.push(Close{})
		}
	}
	if p.pen.placed {
		out.pen.cur = a.TransformPoint(p.pen.cur)
		out.pen.placed = true
	}
	return out
}

// BoundsContain reports whether pt lies inside the accumulated bounds.
// It is a coarse test: control points and arc rectangles widen the bounds.
func (p *Path) BoundsContain(pt Point) bool {
	return !p.bounds.isEmpty() && p.bounds.rect().Contains(pt)
}

// Contains reports whether pt is inside the path under its fill type.
// Every contour is treated as closed.
func (p *Path) Contains(pt Point) bool {
	if !p.BoundsContain(pt) {
		return false
	}
	w := p.Winding(pt)
	if p.fillType == EvenOdd {
		return w%2 != 0
	}
	return w != 0
}

// Winding returns the winding number of pt relative to the path, casting
// a horizontal ray to the right. Open contours are closed implicitly.
func (p *Path) Winding(pt Point) int {
	var winding int
	var current, start Point
	open := false
	closeContour := func() {
		if open {
			winding += lineWinding(current, start, pt)
			current = start
			open = false
		}
	}

	for seg := range p.Segments() {
		switch seg.Kind {
		case SegMoveTo:
			closeContour()
			start = seg.Points[0]
			current = start
			open = true
		case SegLineTo:
			winding += lineWinding(current, seg.Points[0], pt)
		case SegQuadTo:
			winding += curveWinding(pt, seg.Points[:seg.NumPoints()], func() []Point {
				return FlattenQuad(QuadBez{P0: current, P1: seg.Points[0], P2: seg.Points[1]}, windingTolerance)
			}, current)
		case SegConicTo:
			winding += curveWinding(pt, seg.Points[:seg.NumPoints()], func() []Point {
				return FlattenConic(Conic{P0: current, P1: seg.Points[0], P2: seg.Points[1], W: seg.Weight}, windingTolerance)
			}, current)
		case SegCubicTo:
			winding += curveWinding(pt, seg.Points[:seg.NumPoints()], func() []Point {
				return FlattenCubic(CubicBez{P0: current, P1: seg.Points[0], P2: seg.Points[1], P3: seg.Points[2]}, windingTolerance)
			}, current)
		case SegClose:
			closeContour()
			continue
		}
		current = seg.End()
	}
	closeContour()
	return winding
}

// curveWinding sums the crossings of a flattened curve. Curves whose hull
// lies entirely above, below or left of pt are skipped without flattening.
func curveWinding(pt Point, ctrl []Point, flatten func() []Point, from Point) int {
	minY, maxY, maxX := from.Y, from.Y, from.X
	for _, c := range ctrl {
		minY = math.Min(minY, c.Y)
		maxY = math.Max(maxY, c.Y)
		maxX = math.Max(maxX, c.X)
	}
	if pt.Y < minY || pt.Y > maxY || pt.X > maxX {
		return 0
	}
	pts := flatten()
	var winding int
	for i := 1; i < len(pts); i++ {
		winding += lineWinding(pts[i-1], pts[i], pt)
	}
	return winding
}

// lineWinding computes the winding contribution of a line segment.
func lineWinding(p0, p1, pt Point) int {
	if p0.Y <= pt.Y && p1.Y > pt.Y {
		// Upward crossing
		if isLeft(p0, p1, pt) > 0 {
			return 1
		}
	} else if p0.Y > pt.Y && p1.Y <= pt.Y {
		// Downward crossing
		if isLeft(p0, p1, pt) < 0 {
			return -1
		}
	}
	return 0
}

// isLeft returns positive if pt is left of line p0-p1, negative if right, 0 if on.
func isLeft(p0, p1, pt Point) float64 {
	return (p1.X-p0.X)*(pt.Y-p0.Y) - (pt.X-p0.X)*(p1.Y-p0.Y)
}
