package vpath

import (
	"fmt"
	"math"
)

// Matrix represents a 2D affine transformation matrix.
// It uses a 2x3 matrix in row-major order:
//
//	| a  b  c |
//	| d  e  f |
//
// This represents the transformation:
//
//	x' = a*x + b*y + c
//	y' = d*x + e*y + f
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{
		A: 1, B: 0, C: 0,
		D: 0, E: 1, F: 0,
	}
}

// Translate creates a translation matrix.
func Translate(x, y float64) Matrix {
	return Matrix{
		A: 1, B: 0, C: x,
		D: 0, E: 1, F: y,
	}
}

// Scale creates a scaling matrix.
func Scale(x, y float64) Matrix {
	return Matrix{
		A: x, B: 0, C: 0,
		D: 0, E: y, F: 0,
	}
}

// Rotate creates a rotation matrix (angle in radians).
func Rotate(angle float64) Matrix {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Matrix{
		A: cos, B: -sin, C: 0,
		D: sin, E: cos, F: 0,
	}
}

// Multiply multiplies two matrices (m * other).
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// TransformPoint applies the transformation to a point.
func (m Matrix) TransformPoint(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// TransformVector applies the transformation to a vector (no translation).
func (m Matrix) TransformVector(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y,
		Y: m.D*p.X + m.E*p.Y,
	}
}

// TransformRect returns the bounding box of the four transformed corners.
func (m Matrix) TransformRect(r Rect) Rect {
	if m.IsTranslation() {
		return r.Translate(Point{X: m.C, Y: m.F})
	}
	out := NewRect(m.TransformPoint(r.Min), m.TransformPoint(r.Max))
	out = out.Union(NewRect(m.TransformPoint(Pt(r.Max.X, r.Min.Y)), m.TransformPoint(Pt(r.Min.X, r.Max.Y))))
	return out
}

// IsIdentity returns true if the matrix is the identity matrix.
func (m Matrix) IsIdentity() bool {
	return m.A == 1 && m.B == 0 && m.C == 0 &&
		m.D == 0 && m.E == 1 && m.F == 0
}

// IsTranslation returns true if the matrix is only a translation.
func (m Matrix) IsTranslation() bool {
	return m.A == 1 && m.B == 0 && m.D == 0 && m.E == 1
}

// Matrix4 is a 4x4 transform stored in column-major order, the layout
// used by engine bindings for Path.transform and addPath(matrix4:).
// Only the 2D affine part affects path geometry.
type Matrix4 [16]float64

// IdentityMatrix4 returns the 4x4 identity.
func IdentityMatrix4() Matrix4 {
	return Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// NewMatrix4 builds a Matrix4 from exactly 16 column-major values.
func NewMatrix4(values []float64) (Matrix4, error) {
	var m Matrix4
	if len(values) != len(m) {
		return m, fmt.Errorf("%w: got %d", ErrMatrixLength, len(values))
	}
	for i, v := range values {
		if !isFinite(v) {
			return m, fmt.Errorf("%w: entry %d is %v", ErrMatrixLength, i, v)
		}
	}
	copy(m[:], values)
	return m, nil
}

// Matrix4FromAffine embeds a 2D affine matrix into a Matrix4.
func Matrix4FromAffine(a Matrix) Matrix4 {
	m := IdentityMatrix4()
	m[0], m[4], m[12] = a.A, a.B, a.C
	m[1], m[5], m[13] = a.D, a.E, a.F
	return m
}

// Affine projects the matrix onto the xy plane.
func (m Matrix4) Affine() Matrix {
	return Matrix{
		A: m[0], B: m[4], C: m[12],
		D: m[1], E: m[5], F: m[13],
	}
}

// Translation returns the x and y translation components.
func (m Matrix4) Translation() Point {
	return Point{X: m[12], Y: m[13]}
}

// Slice returns the values as a fresh slice.
func (m Matrix4) Slice() []float64 {
	out := make([]float64, len(m))
	copy(out, m[:])
	return out
}
