package vpath

import (
	"fmt"
	"iter"
)

// SegmentKind identifies a primitive path segment.
type SegmentKind uint8

const (
	// SegMoveTo starts a contour.
	SegMoveTo SegmentKind = iota
	// SegLineTo is a straight line.
	SegLineTo
	// SegQuadTo is a quadratic Bezier curve.
	SegQuadTo
	// SegConicTo is a conic curve.
	SegConicTo
	// SegCubicTo is a cubic Bezier curve.
	SegCubicTo
	// SegClose closes the contour.
	SegClose
)

var segmentKindNames = [...]string{
	SegMoveTo:  "MoveTo",
	SegLineTo:  "LineTo",
	SegQuadTo:  "QuadTo",
	SegConicTo: "ConicTo",
	SegCubicTo: "CubicTo",
	SegClose:   "Close",
}

// String returns the segment kind name.
func (k SegmentKind) String() string {
	if int(k) < len(segmentKindNames) {
		return segmentKindNames[k]
	}
	return fmt.Sprintf("SegmentKind(%d)", uint8(k))
}

// Segment is one primitive step of a lowered path.
//
// Points holds the control points followed by the end point: one point for
// SegMoveTo and SegLineTo, two for SegQuadTo and SegConicTo, three for
// SegCubicTo. For SegClose, Points[0] is the start of the contour being
// closed. Weight is only meaningful for SegConicTo.
type Segment struct {
	Kind   SegmentKind
	Points [3]Point
	Weight float64
}

// NumPoints returns the number of meaningful entries in Points.
func (s Segment) NumPoints() int {
	switch s.Kind {
	case SegQuadTo, SegConicTo:
		return 2
	case SegCubicTo:
		return 3
	default:
		return 1
	}
}

// End returns the point the segment leaves the cursor at.
func (s Segment) End() Point {
	return s.Points[s.NumPoints()-1]
}

// String formats the segment for debugging.
func (s Segment) String() string {
	switch s.Kind {
	case SegConicTo:
		return fmt.Sprintf("%v%v w=%g", s.Kind, s.Points[:2], s.Weight)
	default:
		return fmt.Sprintf("%v%v", s.Kind, s.Points[:s.NumPoints()])
	}
}

// Segments lowers every recorded command into primitive segments.
// Rectangles, ovals, arcs, rounded rectangles and polygons become lines and
// conics, and embedded paths are expanded with their offset and matrix
// applied. A drawing segment that follows a Close or opens the path starts
// with an implicit SegMoveTo at the cursor.
func (p *Path) Segments() iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		e := &emitter{yield: yield}
		l := lowering{e: e, m: Identity(), ident: true}
		l.walk(p.commands)
	}
}

// emitter tracks contour state in output coordinates.
type emitter struct {
	yield func(Segment) bool
	done  bool
	open  bool
	start Point
	cur   Point
}

func (e *emitter) emit(s Segment) {
	if e.done {
		return
	}
	if !e.yield(s) {
		e.done = true
	}
}

func (e *emitter) moveTo(p Point) {
	e.emit(Segment{Kind: SegMoveTo, Points: [3]Point{p}})
	e.open = true
	e.start = p
	e.cur = p
}

func (e *emitter) ensureOpen() {
	if !e.open {
		e.moveTo(e.cur)
	}
}

func (e *emitter) lineTo(p Point) {
	e.ensureOpen()
	e.emit(Segment{Kind: SegLineTo, Points: [3]Point{p}})
	e.cur = p
}

func (e *emitter) quadTo(c, p Point) {
	e.ensureOpen()
	e.emit(Segment{Kind: SegQuadTo, Points: [3]Point{c, p}})
	e.cur = p
}

func (e *emitter) conicTo(c, p Point, w float64) {
	e.ensureOpen()
	e.emit(Segment{Kind: SegConicTo, Points: [3]Point{c, p}, Weight: w})
	e.cur = p
}

func (e *emitter) cubicTo(c1, c2, p Point) {
	e.ensureOpen()
	e.emit(Segment{Kind: SegCubicTo, Points: [3]Point{c1, c2, p}})
	e.cur = p
}

func (e *emitter) close() {
	if !e.open {
		return
	}
	e.emit(Segment{Kind: SegClose, Points: [3]Point{e.start}})
	e.open = false
	e.cur = e.start
}

// lowering replays one command list in its own coordinate space. Embedded
// paths get a child lowering with the composed transform.
type lowering struct {
	e      *emitter
	m      Matrix
	ident  bool
	cur    Point
	start  Point
	extend bool
}

func (l *lowering) xf(p Point) Point {
	if l.ident {
		return p
	}
	return l.m.TransformPoint(p)
}

func (l *lowering) moveTo(p Point) {
	if l.extend {
		l.extend = false
		if l.e.open {
			l.e.lineTo(l.xf(p))
			l.cur, l.start = p, p
			return
		}
	}
	l.e.moveTo(l.xf(p))
	l.cur, l.start = p, p
}

func (l *lowering) lineTo(p Point) {
	l.extend = false
	l.e.lineTo(l.xf(p))
	l.cur = p
}

func (l *lowering) quadTo(c, p Point) {
	l.extend = false
	l.e.quadTo(l.xf(c), l.xf(p))
	l.cur = p
}

func (l *lowering) conicTo(c, p Point, w float64) {
	l.extend = false
	l.e.conicTo(l.xf(c), l.xf(p), w)
	l.cur = p
}

func (l *lowering) conic(k Conic) {
	l.conicTo(k.P1, k.P2, k.W)
}

func (l *lowering) cubicTo(c1, c2, p Point) {
	l.extend = false
	l.e.cubicTo(l.xf(c1), l.xf(c2), l.xf(p))
	l.cur = p
}

func (l *lowering) close() {
	l.extend = false
	l.e.close()
	l.cur = l.start
}

func (l *lowering) walk(commands []Command) {
	for _, c := range commands {
		if l.e.done {
			return
		}
		l.command(c)
	}
}

func (l *lowering) command(c Command) {
	switch c := c.(type) {
	case MoveTo:
		l.moveTo(c.Point)
	case LineTo:
		l.lineTo(c.Point)
	case QuadTo:
		l.quadTo(c.Control, c.Point)
	case CubicTo:
		l.cubicTo(c.Control1, c.Control2, c.Point)
	case ConicTo:
		l.conicTo(c.Control, c.Point, c.Weight)
	case ArcTo:
		start := arcStart(c.Rect, c.StartAngle)
		switch {
		case c.ForceMoveTo || !l.e.open:
			l.moveTo(start)
		case start != l.cur:
			l.lineTo(start)
		}
		ellipseInRect(c.Rect).arcConics(c.StartAngle, clampSweep(c.SweepAngle), l.conic)
	case ArcToPoint:
		if c.From == c.Point {
			break
		}
		if from := l.xf(c.From); !l.e.open || from != l.e.cur {
			l.moveTo(c.From)
		}
		arcToPointConics(c.From, c, l.lineTo, l.conic)
		l.cur = c.Point
	case Rectangle:
		r := c.Rect
		l.moveTo(r.Min)
		l.lineTo(Pt(r.Max.X, r.Min.Y))
		l.lineTo(r.Max)
		l.lineTo(Pt(r.Min.X, r.Max.Y))
		l.lineTo(r.Min)
		l.close()
	case Oval:
		l.moveTo(ovalStart(c.Rect))
		ovalConics(c.Rect, l.conic)
		l.close()
	case Arc:
		l.moveTo(arcStart(c.Rect, c.StartAngle))
		ellipseInRect(c.Rect).arcConics(c.StartAngle, clampSweep(c.SweepAngle), l.conic)
	case Polygon:
		if len(c.Points) == 0 {
			return
		}
		l.moveTo(c.Points[0])
		for _, pt := range c.Points[1:] {
			l.lineTo(pt)
		}
		if c.Close {
			// Closed shapes carry their closing edge, unlike an explicit
			// Close which only marks the contour.
			if first := c.Points[0]; l.cur != first {
				l.lineTo(first)
			}
			l.close()
		}
	case RoundRect:
		l.moveTo(rrectStart(c.RRect))
		rrectOutline(c.RRect, l.lineTo, l.conic)
		l.close()
	case SubPath:
		m := l.m.Multiply(c.transform())
		child := lowering{e: l.e, m: m, ident: m.IsIdentity(), extend: c.Extend}
		child.walk(c.Path.commands)
		if c.Path.pen.placed {
			l.cur = c.mapPoint(c.Path.pen.from())
		}
	case Close:
		l.close()
	}
}
