package vpath

import (
	"fmt"
	"slices"
)

// FillType selects how the interior of a path is determined.
type FillType uint8

const (
	// NonZero fills points with a non-zero winding number.
	NonZero FillType = iota
	// EvenOdd fills points with an odd winding number.
	EvenOdd
)

// String returns the fill type name.
func (f FillType) String() string {
	switch f {
	case NonZero:
		return "nonZero"
	case EvenOdd:
		return "evenOdd"
	default:
		return fmt.Sprintf("FillType(%d)", uint8(f))
	}
}

// Path is a mutable recording of geometry construction commands.
//
// Every builder call appends exactly one command, moves the cursor and
// widens the bounds by every coordinate the command touches, control points
// and arc rectangles included. Coordinates passed to the relative builders
// are resolved against the cursor before they are recorded.
//
// A Path is owned by a single goroutine. Snapshots taken by Clone,
// ComputeMetrics and the sub-path builders are safe to share.
type Path struct {
	fillType FillType
	commands []Command
	pen      pen
	bounds   bounds
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{
		commands: make([]Command, 0, 16),
	}
}

// PathFrom returns a deep copy of src.
func PathFrom(src *Path) *Path {
	return src.Clone()
}

// Clone returns a deep copy of the path. Recorded commands are immutable,
// so the copy shares nothing mutable with p.
func (p *Path) Clone() *Path {
	return &Path{
		fillType: p.fillType,
		commands: slices.Clone(p.commands),
		pen:      p.pen,
		bounds:   p.bounds,
	}
}

// FillType returns the fill rule of the path.
func (p *Path) FillType() FillType {
	return p.fillType
}

// SetFillType sets the fill rule of the path.
func (p *Path) SetFillType(f FillType) {
	p.fillType = f
}

// Commands returns the recorded commands. The slice must not be modified.
func (p *Path) Commands() []Command {
	return p.commands
}

// Len returns the number of recorded commands.
func (p *Path) Len() int {
	return len(p.commands)
}

// IsEmpty reports whether nothing has been recorded.
func (p *Path) IsEmpty() bool {
	return len(p.commands) == 0
}

// CurrentPoint returns the cursor. It is the origin until the first
// command that positions it.
func (p *Path) CurrentPoint() Point {
	return p.pen.cur
}

// HasCurrentPoint reports whether any command has positioned the cursor.
func (p *Path) HasCurrentPoint() bool {
	return p.pen.placed
}

// GetBounds returns the rectangle accumulated while the path was built.
// An empty path reports the degenerate rectangle at the origin.
func (p *Path) GetBounds() Rect {
	return p.bounds.rect()
}

// MoveTo starts a new contour at (x, y).
func (p *Path) MoveTo(x, y float64) {
	p.push(MoveTo{Point: Pt(x, y)})
}

// RelativeMoveTo starts a new contour offset from the cursor.
func (p *Path) RelativeMoveTo(dx, dy float64) {
	p.push(MoveTo{Point: p.pen.cur.Add(Pt(dx, dy)), Relative: true})
}

// LineTo draws a straight line to (x, y).
func (p *Path) LineTo(x, y float64) {
	p.push(LineTo{Point: Pt(x, y)})
}

// RelativeLineTo draws a straight line offset from the cursor.
func (p *Path) RelativeLineTo(dx, dy float64) {
	p.push(LineTo{Point: p.pen.cur.Add(Pt(dx, dy)), Relative: true})
}

// QuadraticBezierTo draws a quadratic Bezier curve.
func (p *Path) QuadraticBezierTo(x1, y1, x2, y2 float64) {
	p.push(QuadTo{Control: Pt(x1, y1), Point: Pt(x2, y2)})
}

// RelativeQuadraticBezierTo draws a quadratic Bezier curve with both
// points offset from the cursor.
func (p *Path) RelativeQuadraticBezierTo(x1, y1, x2, y2 float64) {
	c := p.pen.cur
	p.push(QuadTo{Control: c.Add(Pt(x1, y1)), Point: c.Add(Pt(x2, y2)), Relative: true})
}

// CubicTo draws a cubic Bezier curve.
func (p *Path) CubicTo(x1, y1, x2, y2, x3, y3 float64) {
	p.push(CubicTo{Control1: Pt(x1, y1), Control2: Pt(x2, y2), Point: Pt(x3, y3)})
}

// RelativeCubicTo draws a cubic Bezier curve with all points offset from
// the cursor.
func (p *Path) RelativeCubicTo(x1, y1, x2, y2, x3, y3 float64) {
	c := p.pen.cur
	p.push(CubicTo{
		Control1: c.Add(Pt(x1, y1)),
		Control2: c.Add(Pt(x2, y2)),
		Point:    c.Add(Pt(x3, y3)),
		Relative: true,
	})
}

// ConicTo draws a conic curve. A weight of 1 is a parabola, below 1 an
// ellipse and above 1 a hyperbola.
func (p *Path) ConicTo(x1, y1, x2, y2, w float64) {
	p.push(ConicTo{Control: Pt(x1, y1), Point: Pt(x2, y2), Weight: w})
}

// RelativeConicTo draws a conic curve with both points offset from the
// cursor.
func (p *Path) RelativeConicTo(x1, y1, x2, y2, w float64) {
	c := p.pen.cur
	p.push(ConicTo{Control: c.Add(Pt(x1, y1)), Point: c.Add(Pt(x2, y2)), Weight: w, Relative: true})
}

// ArcTo appends an arc of the ellipse inscribed in rect. Angles are in
// radians. Unless forceMoveTo is set, a line joins the cursor to the start
// of the arc.
func (p *Path) ArcTo(rect Rect, startAngle, sweepAngle float64, forceMoveTo bool) {
	p.push(ArcTo{Rect: rect, StartAngle: startAngle, SweepAngle: sweepAngle, ForceMoveTo: forceMoveTo})
}

// ArcToPoint appends an elliptical arc from the cursor to end with the
// given radii. rotation is the x-axis rotation of the ellipse in degrees.
// A zero radius draws a straight line.
func (p *Path) ArcToPoint(end, radius Point, rotation float64, largeArc, clockwise bool) {
	p.push(ArcToPoint{Point: end, Radius: radius, Rotation: rotation, LargeArc: largeArc, Clockwise: clockwise})
}

// RelativeArcToPoint is ArcToPoint with end offset from the cursor.
func (p *Path) RelativeArcToPoint(end, radius Point, rotation float64, largeArc, clockwise bool) {
	p.push(ArcToPoint{
		Point:     p.pen.cur.Add(end),
		Radius:    radius,
		Rotation:  rotation,
		LargeArc:  largeArc,
		Clockwise: clockwise,
		Relative:  true,
	})
}

// AddRect adds a closed contour for rect, clockwise from its top-left
// corner.
func (p *Path) AddRect(rect Rect) {
	p.push(Rectangle{Rect: rect})
}

// AddOval adds a closed contour for the ellipse inscribed in rect.
func (p *Path) AddOval(rect Rect) {
	p.push(Oval{Rect: rect})
}

// AddArc adds an arc of the ellipse inscribed in rect as a new contour.
// Angles are in radians.
func (p *Path) AddArc(rect Rect, startAngle, sweepAngle float64) {
	p.push(Arc{Rect: rect, StartAngle: startAngle, SweepAngle: sweepAngle})
}

// AddPolygon adds a contour through points, closed when close is set.
// Non-finite coordinates are rejected and leave the path unchanged.
func (p *Path) AddPolygon(points []Point, close bool) error {
	for i, pt := range points {
		if !pt.IsFinite() {
			return fmt.Errorf("%w: polygon point %d is %v", ErrInvalidGeometry, i, pt)
		}
	}
	p.push(Polygon{Points: slices.Clone(points), Close: close})
	return nil
}

// AddRRect adds a closed rounded rectangle contour. Negative or
// non-finite radii are rejected and leave the path unchanged.
func (p *Path) AddRRect(rr RRect) error {
	if err := rr.Validate(); err != nil {
		return err
	}
	p.push(RoundRect{RRect: rr})
	return nil
}

// AddPath embeds a snapshot of sub translated by offset as new contours.
func (p *Path) AddPath(sub *Path, offset Point) error {
	return p.addSubPath(sub, offset, nil, false)
}

// AddPathWithMatrix embeds a snapshot of sub transformed by m and then
// translated by offset.
func (p *Path) AddPathWithMatrix(sub *Path, offset Point, m Matrix4) error {
	return p.addSubPath(sub, offset, &m, false)
}

// ExtendWithPath embeds a snapshot of sub translated by offset. Its first
// contour continues the current contour with a line instead of starting a
// new one.
func (p *Path) ExtendWithPath(sub *Path, offset Point) error {
	return p.addSubPath(sub, offset, nil, true)
}

// ExtendWithPathWithMatrix is ExtendWithPath with a transform applied to
// sub before the offset.
func (p *Path) ExtendWithPathWithMatrix(sub *Path, offset Point, m Matrix4) error {
	return p.addSubPath(sub, offset, &m, true)
}

func (p *Path) addSubPath(sub *Path, offset Point, m *Matrix4, extend bool) error {
	if sub == nil {
		return ErrNilPath
	}
	if !offset.IsFinite() {
		return fmt.Errorf("%w: offset %v", ErrInvalidGeometry, offset)
	}
	if m != nil {
		if _, err := NewMatrix4(m[:]); err != nil {
			return err
		}
	}
	p.push(SubPath{Path: sub.Clone(), Offset: offset, Matrix: m, Extend: extend})
	return nil
}

// Close closes the current contour. The cursor does not move.
func (p *Path) Close() {
	p.push(Close{})
}

// Reset clears every command, the cursor, the bounds and the fill type,
// returning the path to the state NewPath creates.
func (p *Path) Reset() {
	clear(p.commands)
	p.commands = p.commands[:0]
	p.pen = pen{}
	p.bounds = bounds{}
	p.fillType = NonZero
}

// push records c and applies its effect on the cursor and the bounds.
// It is the only place where commands enter a path.
func (p *Path) push(c Command) {
	b := &p.bounds
	s := &p.pen
	switch cmd := c.(type) {
	case MoveTo:
		b.updatePoint(cmd.Point)
		s.moveTo(cmd.Point)
	case LineTo:
		b.updatePoint(cmd.Point)
		s.drawTo(cmd.Point)
	case QuadTo:
		b.updatePoint(cmd.Control)
		b.updatePoint(cmd.Point)
		s.drawTo(cmd.Point)
	case CubicTo:
		b.updatePoint(cmd.Control1)
		b.updatePoint(cmd.Control2)
		b.updatePoint(cmd.Point)
		s.drawTo(cmd.Point)
	case ConicTo:
		b.updatePoint(cmd.Control)
		b.updatePoint(cmd.Point)
		s.drawTo(cmd.Point)
	case ArcTo:
		b.updateRect(cmd.Rect)
		if cmd.ForceMoveTo || !s.open() {
			s.moveTo(arcStart(cmd.Rect, cmd.StartAngle))
		}
		s.drawTo(arcEnd(cmd.Rect, cmd.StartAngle, cmd.SweepAngle))
	case ArcToPoint:
		// The arc is fitted between two fixed points, so its start is
		// resolved once here and recorded with it.
		cmd.From = s.from()
		c = cmd
		arcToPointConics(cmd.From, cmd, b.updatePoint, func(k Conic) {
			b.updatePoint(k.P1)
			b.updatePoint(k.P2)
		})
		b.updatePoint(cmd.Point)
		s.drawTo(cmd.Point)
	case Rectangle:
		b.updateRect(cmd.Rect)
		s.closedShape(cmd.Rect.Min)
	case Oval:
		b.updateRect(cmd.Rect)
		s.closedShape(ovalStart(cmd.Rect))
	case Arc:
		b.updateRect(cmd.Rect)
		s.moveTo(arcStart(cmd.Rect, cmd.StartAngle))
		s.drawTo(arcEnd(cmd.Rect, cmd.StartAngle, cmd.SweepAngle))
	case Polygon:
		for _, pt := range cmd.Points {
			b.updatePoint(pt)
		}
		if n := len(cmd.Points); n > 0 {
			s.moveTo(cmd.Points[0])
			s.drawTo(cmd.Points[n-1])
			if cmd.Close {
				s.close()
			}
		}
	case RoundRect:
		b.updateRect(cmd.RRect.Rect)
		s.closedShape(rrectStart(cmd.RRect))
	case SubPath:
		sub := cmd.Path
		if !sub.bounds.isEmpty() {
			r := sub.bounds.rect()
			if cmd.Matrix != nil {
				r = cmd.Matrix.Affine().TransformRect(r)
			}
			b.updateRect(r.Translate(cmd.Offset))
		}
		s.embed(cmd)
	case Close:
		s.close()
	}
	p.commands = append(p.commands, c)
}

// mapPoint places a point of the embedded path into the outer path.
func (c SubPath) mapPoint(pt Point) Point {
	if c.Matrix != nil {
		pt = c.Matrix.Affine().TransformPoint(pt)
	}
	return pt.Add(c.Offset)
}

// transform returns the affine map that places the embedded path.
func (c SubPath) transform() Matrix {
	m := Translate(c.Offset.X, c.Offset.Y)
	if c.Matrix != nil {
		m = m.Multiply(c.Matrix.Affine())
	}
	return m
}
