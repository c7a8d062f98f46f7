// Package cmdbuf implements the compact command buffer that carries a
// recorded path across an engine boundary.
//
// A buffer is three parallel stores:
//   - methods: one opcode byte per recorded command
//   - data: the command payloads as float32 values, in opcode order
//   - objects: out-of-band references (embedded sub-paths, 4x4 matrices)
//
// No command is self-describing beyond its opcode. A consumer walks the three
// stores with independent cursors and uses the arity table to know how many
// floats and objects each opcode owns. The opcode ordinals are a wire
// protocol and must not be renumbered.
//
// Floats are stored as float32. When serialized with [Buffer.Bytes] they
// are written little-endian unless another byte order is requested.
package cmdbuf

// Opcode identifies a recorded path command.
type Opcode uint8

// Opcodes in wire order.
const (
	MoveTo                    Opcode = iota // x, y
	RelativeMoveTo                          // x, y (absolute payload)
	LineTo                                  // x, y
	RelativeLineTo                          // x, y (absolute payload)
	QuadraticBezierTo                       // x1, y1, x2, y2
	RelativeQuadraticBezierTo               // x1, y1, x2, y2 (absolute payload)
	CubicTo                                 // x1, y1, x2, y2, x3, y3
	RelativeCubicTo                         // x1, y1, x2, y2, x3, y3 (absolute payload)
	ConicTo                                 // x1, y1, x2, y2, w
	RelativeConicTo                         // x1, y1, x2, y2, w (absolute payload)
	ArcTo                                   // l, t, r, b, startAngle, sweepAngle, forceMoveTo
	ArcToPoint                              // x, y, rx, ry, rotation, largeArc, clockwise
	RelativeArcToPoint                      // x, y, rx, ry, rotation, largeArc, clockwise (absolute payload)
	AddRect                                 // l, t, r, b
	AddOval                                 // l, t, r, b
	AddArc                                  // l, t, r, b, startAngle, sweepAngle
	AddPolygon                              // n, close, then 2n coordinates
	AddRRect                                // l, t, r, b, then four (rx, ry) corner radii
	AddPath                                 // dx, dy + path object
	AddPathWithMatrix                       // dx, dy + path object + matrix object
	ExtendWithPath                          // dx, dy + path object
	ExtendWithPathWithMatrix                // dx, dy + path object + matrix object
	Close
	Reset

	opcodeCount
)

// arity is the fixed payload size of every opcode.
type arity struct {
	floats  int
	objects int
}

// arities maps each opcode to its payload. AddPolygon lists only its
// two-float prefix; the coordinates that follow are counted by the prefix.
var arities = [opcodeCount]arity{
	MoveTo:                    {2, 0},
	RelativeMoveTo:            {2, 0},
	LineTo:                    {2, 0},
	RelativeLineTo:            {2, 0},
	QuadraticBezierTo:         {4, 0},
	RelativeQuadraticBezierTo: {4, 0},
	CubicTo:                   {6, 0},
	RelativeCubicTo:           {6, 0},
	ConicTo:                   {5, 0},
	RelativeConicTo:           {5, 0},
	ArcTo:                     {7, 0},
	ArcToPoint:                {7, 0},
	RelativeArcToPoint:        {7, 0},
	AddRect:                   {4, 0},
	AddOval:                   {4, 0},
	AddArc:                    {6, 0},
	AddPolygon:                {2, 0},
	AddRRect:                  {12, 0},
	AddPath:                   {2, 1},
	AddPathWithMatrix:         {2, 2},
	ExtendWithPath:            {2, 1},
	ExtendWithPathWithMatrix:  {2, 2},
	Close:                     {0, 0},
	Reset:                     {0, 0},
}

var opcodeNames = [opcodeCount]string{
	MoveTo:                    "moveTo",
	RelativeMoveTo:            "relativeMoveTo",
	LineTo:                    "lineTo",
	RelativeLineTo:            "relativeLineTo",
	QuadraticBezierTo:         "quadraticBezierTo",
	RelativeQuadraticBezierTo: "relativeQuadraticBezierTo",
	CubicTo:                   "cubicTo",
	RelativeCubicTo:           "relativeCubicTo",
	ConicTo:                   "conicTo",
	RelativeConicTo:           "relativeConicTo",
	ArcTo:                     "arcTo",
	ArcToPoint:                "arcToPoint",
	RelativeArcToPoint:        "relativeArcToPoint",
	AddRect:                   "addRect",
	AddOval:                   "addOval",
	AddArc:                    "addArc",
	AddPolygon:                "addPolygon",
	AddRRect:                  "addRRect",
	AddPath:                   "addPath",
	AddPathWithMatrix:         "addPathWithMatrix",
	ExtendWithPath:            "extendWithPath",
	ExtendWithPathWithMatrix:  "extendWithPathWithMatrix",
	Close:                     "close",
	Reset:                     "reset",
}

// String returns the engine name of the opcode.
func (op Opcode) String() string {
	if op < opcodeCount {
		return opcodeNames[op]
	}
	return "Unknown"
}

// Valid reports whether op is a known opcode.
func (op Opcode) Valid() bool {
	return op < opcodeCount
}

// Arity returns the number of floats and objects that follow op.
// For AddPolygon the float count covers only the [count, close] prefix.
func Arity(op Opcode) (floats, objects int) {
	if !op.Valid() {
		return 0, 0
	}
	a := arities[op]
	return a.floats, a.objects
}

// PolygonArity returns the full float payload of an AddPolygon command
// with n points.
func PolygonArity(n int) int {
	return arities[AddPolygon].floats + 2*n
}
