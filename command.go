package vpath

import (
	"slices"

	"github.com/gogpu/vpath/cmdbuf"
)

// Command is one recorded path construction call. Each variant carries its
// own typed payload and knows its wire opcode, so the encoder and the
// payload layout can not drift apart.
//
// Commands are immutable once recorded. Coordinates are always absolute:
// relative builders resolve against the cursor before recording and keep
// the Relative flag only for the wire opcode.
type Command interface {
	// Opcode returns the wire opcode of the command.
	Opcode() cmdbuf.Opcode

	encode(b *cmdbuf.Buffer)
	translate(d Point) Command
}

// MoveTo starts a new contour.
type MoveTo struct {
	Point    Point
	Relative bool
}

// LineTo draws a straight line.
type LineTo struct {
	Point    Point
	Relative bool
}

// QuadTo draws a quadratic Bezier curve.
type QuadTo struct {
	Control  Point
	Point    Point
	Relative bool
}

// CubicTo draws a cubic Bezier curve.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
	Relative bool
}

// ConicTo draws a conic (rational quadratic) curve with the given weight.
type ConicTo struct {
	Control  Point
	Point    Point
	Weight   float64
	Relative bool
}

// ArcTo appends an arc of the ellipse inscribed in Rect. Angles are in
// radians, clockwise from the positive x axis in y-down coordinates.
// When ForceMoveTo is set the arc starts a new contour, otherwise a line
// joins the cursor to the arc start.
type ArcTo struct {
	Rect        Rect
	StartAngle  float64
	SweepAngle  float64
	ForceMoveTo bool
}

// ArcToPoint appends an SVG style elliptical arc from the cursor to Point.
// Rotation is the x-axis rotation of the ellipse in degrees.
//
// From is where the arc starts: the cursor, or the start of the contour
// when the previous one was closed. Path sets it when the command is
// recorded; it is not part of the wire encoding.
type ArcToPoint struct {
	From      Point
	Point     Point
	Radius    Point
	Rotation  float64
	LargeArc  bool
	Clockwise bool
	Relative  bool
}

// Rectangle adds a closed rectangular contour.
type Rectangle struct {
	Rect Rect
}

// Oval adds a closed contour for the ellipse inscribed in Rect.
type Oval struct {
	Rect Rect
}

// Arc adds an arc of the ellipse inscribed in Rect as a new contour.
type Arc struct {
	Rect       Rect
	StartAngle float64
	SweepAngle float64
}

// Polygon adds a contour through Points, closed when Close is set.
type Polygon struct {
	Points []Point
	Close  bool
}

// RoundRect adds a closed rounded rectangle contour.
type RoundRect struct {
	RRect RRect
}

// SubPath embeds another path, translated by Offset and, when Matrix is
// non-nil, transformed by it first. When Extend is set the first contour of
// the embedded path continues the current contour instead of starting a
// new one. Path is a private snapshot taken at record time.
type SubPath struct {
	Path   *Path
	Offset Point
	Matrix *Matrix4
	Extend bool
}

// Close closes the current contour.
type Close struct{}

// -------------------------------------------------------------------
// Opcodes
// -------------------------------------------------------------------

func relOp(rel bool, abs, relative cmdbuf.Opcode) cmdbuf.Opcode {
	if rel {
		return relative
	}
	return abs
}

// Opcode implements Command.
func (c MoveTo) Opcode() cmdbuf.Opcode {
	return relOp(c.Relative, cmdbuf.MoveTo, cmdbuf.RelativeMoveTo)
}

// Opcode implements Command.
func (c LineTo) Opcode() cmdbuf.Opcode {
	return relOp(c.Relative, cmdbuf.LineTo, cmdbuf.RelativeLineTo)
}

// Opcode implements Command.
func (c QuadTo) Opcode() cmdbuf.Opcode {
	return relOp(c.Relative, cmdbuf.QuadraticBezierTo, cmdbuf.RelativeQuadraticBezierTo)
}

// Opcode implements Command.
func (c CubicTo) Opcode() cmdbuf.Opcode {
	return relOp(c.Relative, cmdbuf.CubicTo, cmdbuf.RelativeCubicTo)
}

// Opcode implements Command.
func (c ConicTo) Opcode() cmdbuf.Opcode {
	return relOp(c.Relative, cmdbuf.ConicTo, cmdbuf.RelativeConicTo)
}

// Opcode implements Command.
func (ArcTo) Opcode() cmdbuf.Opcode { return cmdbuf.ArcTo }

// Opcode implements Command.
func (c ArcToPoint) Opcode() cmdbuf.Opcode {
	return relOp(c.Relative, cmdbuf.ArcToPoint, cmdbuf.RelativeArcToPoint)
}

// Opcode implements Command.
func (Rectangle) Opcode() cmdbuf.Opcode { return cmdbuf.AddRect }

// Opcode implements Command.
func (Oval) Opcode() cmdbuf.Opcode { return cmdbuf.AddOval }

// Opcode implements Command.
func (Arc) Opcode() cmdbuf.Opcode { return cmdbuf.AddArc }

// Opcode implements Command.
func (Polygon) Opcode() cmdbuf.Opcode { return cmdbuf.AddPolygon }

// Opcode implements Command.
func (RoundRect) Opcode() cmdbuf.Opcode { return cmdbuf.AddRRect }

// Opcode implements Command.
func (c SubPath) Opcode() cmdbuf.Opcode {
	switch {
	case c.Extend && c.Matrix != nil:
		return cmdbuf.ExtendWithPathWithMatrix
	case c.Extend:
		return cmdbuf.ExtendWithPath
	case c.Matrix != nil:
		return cmdbuf.AddPathWithMatrix
	default:
		return cmdbuf.AddPath
	}
}

// Opcode implements Command.
func (Close) Opcode() cmdbuf.Opcode { return cmdbuf.Close }

// -------------------------------------------------------------------
// Wire payloads
// -------------------------------------------------------------------

func f32(v float64) float32 { return float32(v) }

func flag(b bool) float32 {
	if b {
		return 1
	}
	return 0
}

func encodeRect(b *cmdbuf.Buffer, r Rect) {
	b.AddData4(f32(r.Min.X), f32(r.Min.Y), f32(r.Max.X), f32(r.Max.Y))
}

func (c MoveTo) encode(b *cmdbuf.Buffer) {
	b.AddMethod(c.Opcode())
	b.AddData2(f32(c.Point.X), f32(c.Point.Y))
}

func (c LineTo) encode(b *cmdbuf.Buffer) {
	b.AddMethod(c.Opcode())
	b.AddData2(f32(c.Point.X), f32(c.Point.Y))
}

func (c QuadTo) encode(b *cmdbuf.Buffer) {
	b.AddMethod(c.Opcode())
	b.AddData4(f32(c.Control.X), f32(c.Control.Y), f32(c.Point.X), f32(c.Point.Y))
}

func (c CubicTo) encode(b *cmdbuf.Buffer) {
	b.AddMethod(c.Opcode())
	b.AddData6(f32(c.Control1.X), f32(c.Control1.Y),
		f32(c.Control2.X), f32(c.Control2.Y),
		f32(c.Point.X), f32(c.Point.Y))
}

func (c ConicTo) encode(b *cmdbuf.Buffer) {
	b.AddMethod(c.Opcode())
	b.AddData5(f32(c.Control.X), f32(c.Control.Y), f32(c.Point.X), f32(c.Point.Y), f32(c.Weight))
}

func (c ArcTo) encode(b *cmdbuf.Buffer) {
	b.AddMethod(c.Opcode())
	b.AddData7(f32(c.Rect.Min.X), f32(c.Rect.Min.Y), f32(c.Rect.Max.X), f32(c.Rect.Max.Y),
		f32(c.StartAngle), f32(c.SweepAngle), flag(c.ForceMoveTo))
}

func (c ArcToPoint) encode(b *cmdbuf.Buffer) {
	b.AddMethod(c.Opcode())
	b.AddData7(f32(c.Point.X), f32(c.Point.Y), f32(c.Radius.X), f32(c.Radius.Y),
		f32(c.Rotation), flag(c.LargeArc), flag(c.Clockwise))
}

func (c Rectangle) encode(b *cmdbuf.Buffer) {
	b.AddMethod(c.Opcode())
	encodeRect(b, c.Rect)
}

func (c Oval) encode(b *cmdbuf.Buffer) {
	b.AddMethod(c.Opcode())
	encodeRect(b, c.Rect)
}

func (c Arc) encode(b *cmdbuf.Buffer) {
	b.AddMethod(c.Opcode())
	b.AddData6(f32(c.Rect.Min.X), f32(c.Rect.Min.Y), f32(c.Rect.Max.X), f32(c.Rect.Max.Y),
		f32(c.StartAngle), f32(c.SweepAngle))
}

func (c Polygon) encode(b *cmdbuf.Buffer) {
	b.AddMethod(c.Opcode())
	b.AddData2(float32(len(c.Points)), flag(c.Close))
	for _, p := range c.Points {
		b.AddData2(f32(p.X), f32(p.Y))
	}
}

func (c RoundRect) encode(b *cmdbuf.Buffer) {
	b.AddMethod(c.Opcode())
	rr := c.RRect
	b.AddData12([12]float32{
		f32(rr.Rect.Min.X), f32(rr.Rect.Min.Y), f32(rr.Rect.Max.X), f32(rr.Rect.Max.Y),
		f32(rr.TopLeft.X), f32(rr.TopLeft.Y),
		f32(rr.TopRight.X), f32(rr.TopRight.Y),
		f32(rr.BottomRight.X), f32(rr.BottomRight.Y),
		f32(rr.BottomLeft.X), f32(rr.BottomLeft.Y),
	})
}

func (c SubPath) encode(b *cmdbuf.Buffer) {
	b.AddMethod(c.Opcode())
	b.AddData2(f32(c.Offset.X), f32(c.Offset.Y))
	b.AddObject(c.Path)
	if c.Matrix != nil {
		b.AddObject(*c.Matrix)
	}
}

func (c Close) encode(b *cmdbuf.Buffer) {
	b.AddMethod(c.Opcode())
}

// -------------------------------------------------------------------
// Translation
// -------------------------------------------------------------------

func (c MoveTo) translate(d Point) Command {
	c.Point = c.Point.Add(d)
	return c
}

func (c LineTo) translate(d Point) Command {
	c.Point = c.Point.Add(d)
	return c
}

func (c QuadTo) translate(d Point) Command {
	c.Control = c.Control.Add(d)
	c.Point = c.Point.Add(d)
	return c
}

func (c CubicTo) translate(d Point) Command {
	c.Control1 = c.Control1.Add(d)
	c.Control2 = c.Control2.Add(d)
	c.Point = c.Point.Add(d)
	return c
}

func (c ConicTo) translate(d Point) Command {
	c.Control = c.Control.Add(d)
	c.Point = c.Point.Add(d)
	return c
}

func (c ArcTo) translate(d Point) Command {
	c.Rect = c.Rect.Translate(d)
	return c
}

func (c ArcToPoint) translate(d Point) Command {
	c.From = c.From.Add(d)
	c.Point = c.Point.Add(d)
	return c
}

func (c Rectangle) translate(d Point) Command {
	c.Rect = c.Rect.Translate(d)
	return c
}

func (c Oval) translate(d Point) Command {
	c.Rect = c.Rect.Translate(d)
	return c
}

func (c Arc) translate(d Point) Command {
	c.Rect = c.Rect.Translate(d)
	return c
}

func (c Polygon) translate(d Point) Command {
	pts := slices.Clone(c.Points)
	for i := range pts {
		pts[i] = pts[i].Add(d)
	}
	c.Points = pts
	return c
}

func (c RoundRect) translate(d Point) Command {
	c.RRect.Rect = c.RRect.Rect.Translate(d)
	return c
}

// translate moves the placement of the embedded path; the snapshot itself
// is shared.
func (c SubPath) translate(d Point) Command {
	c.Offset = c.Offset.Add(d)
	return c
}

func (c Close) translate(Point) Command { return c }
