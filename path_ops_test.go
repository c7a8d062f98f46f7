package vpath

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rectPath(l, t, r, b float64) *Path {
	p := NewPath()
	p.MoveTo(l, t)
	p.LineTo(r, t)
	p.LineTo(r, b)
	p.LineTo(l, b)
	p.Close()
	return p
}

func TestPathOperationString(t *testing.T) {
	assert.Equal(t, "difference", Difference.String())
	assert.Equal(t, "intersect", Intersect.String())
	assert.Equal(t, "union", Union.String())
	assert.Equal(t, "xor", Xor.String())
	assert.Equal(t, "reverseDifference", ReverseDifference.String())
	assert.Equal(t, "PathOperation(9)", PathOperation(9).String())
}

func TestCombineConcatenates(t *testing.T) {
	a := rectPath(0, 0, 5, 5)
	b := rectPath(3, 3, 8, 8)
	b.SetFillType(EvenOdd)

	for _, op := range []PathOperation{Difference, Intersect, Union, Xor, ReverseDifference} {
		t.Run(op.String(), func(t *testing.T) {
			out := Combine(op, a, b)
			assert.Equal(t, RectFromLTRB(0, 0, 8, 8), out.GetBounds())
			want := append(append([]Command(nil), a.Commands()...), b.Commands()...)
			if diff := cmp.Diff(want, out.Commands()); diff != "" {
				t.Errorf("commands mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, NonZero, out.FillType())
			assert.Equal(t, b.CurrentPoint(), out.CurrentPoint())
		})
	}

	// Inputs are untouched.
	assert.Equal(t, 5, a.Len())
	assert.Equal(t, RectFromLTRB(0, 0, 5, 5), a.GetBounds())
}

func TestCombineWithEmpty(t *testing.T) {
	a := rectPath(1, 1, 2, 2)
	out := Combine(Union, a, NewPath())
	assert.Equal(t, a.GetBounds(), out.GetBounds())
	assert.Equal(t, a.Len(), out.Len())
	assert.Equal(t, a.CurrentPoint(), out.CurrentPoint())

	out = Combine(Union, NewPath(), a)
	assert.Equal(t, a.GetBounds(), out.GetBounds())
}

func TestShift(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.QuadraticBezierTo(5, -5, 10, 0)
	p.AddOval(RectFromLTRB(0, 0, 4, 4))
	require.NoError(t, p.AddPolygon([]Point{{1, 1}, {2, 2}}, false))

	s := p.Shift(Pt(10, 20))
	assert.Equal(t, p.Len(), s.Len())
	assert.Equal(t, RectFromLTRB(10, 15, 20, 24), s.GetBounds())
	assert.Equal(t, Pt(12, 22), s.CurrentPoint())
	assert.Equal(t, Oval{Rect: RectFromLTRB(10, 20, 14, 24)}, s.Commands()[2])

	// The original is unchanged.
	assert.Equal(t, RectFromLTRB(0, -5, 10, 4), p.GetBounds())
	assert.Equal(t, Polygon{Points: []Point{{1, 1}, {2, 2}}}, p.Commands()[3])
}

func TestShiftComposes(t *testing.T) {
	p := NewPath()
	p.MoveTo(1, 2)
	p.CubicTo(3, 4, 5, 6, 7, 8)
	p.AddRect(RectFromLTRB(-1, -1, 1, 1))

	a, b := Pt(3, -7), Pt(-2.5, 11)
	twice := p.Shift(a).Shift(b)
	once := p.Shift(a.Add(b))
	if diff := cmp.Diff(once.Commands(), twice.Commands()); diff != "" {
		t.Errorf("shift does not compose (-once +twice):\n%s", diff)
	}
	assert.Equal(t, once.GetBounds(), twice.GetBounds())
	assert.Equal(t, once.CurrentPoint(), twice.CurrentPoint())
}

func TestShiftEmpty(t *testing.T) {
	s := NewPath().Shift(Pt(5, 5))
	assert.True(t, s.IsEmpty())
	assert.Equal(t, Rect{}, s.GetBounds())
}

func TestTransformTranslationShifts(t *testing.T) {
	p := NewPath()
	p.AddOval(RectFromLTRB(0, 0, 10, 10))
	out := p.Transform(Matrix4FromAffine(Translate(5, 5)))
	require.Equal(t, 1, out.Len())
	assert.Equal(t, Oval{Rect: RectFromLTRB(5, 5, 15, 15)}, out.Commands()[0])
}

func TestTransformLowers(t *testing.T) {
	p := NewPath()
	p.SetFillType(EvenOdd)
	p.AddRect(RectFromLTRB(0, 0, 2, 1))

	out := p.Transform(Matrix4FromAffine(Scale(2, 3)))
	assert.Equal(t, EvenOdd, out.FillType())
	assertRect(t, RectFromLTRB(0, 0, 4, 3), out.GetBounds(), 1e-12)
	// Rectangle lowers to moveTo, four lines and a close.
	assert.Equal(t, 6, out.Len())

	rot := p.Transform(Matrix4FromAffine(Rotate(math.Pi / 2)))
	assertRect(t, RectFromLTRB(-1, 0, 0, 2), rot.GetBounds(), 1e-12)
	assert.True(t, rot.Contains(Pt(-0.5, 1)))
	assert.False(t, rot.Contains(Pt(0.5, 1)))
}

func TestContains(t *testing.T) {
	square := rectPath(0, 0, 10, 10)
	tests := []struct {
		name string
		pt   Point
		want bool
	}{
		{"center", Pt(5, 5), true},
		{"near corner", Pt(0.5, 9.5), true},
		{"outside right", Pt(11, 5), false},
		{"outside above", Pt(5, -1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, square.Contains(tt.pt))
		})
	}
}

func TestContainsFillRule(t *testing.T) {
	// Two nested squares wound the same way.
	p := rectPath(0, 0, 10, 10)
	p.AddRect(RectFromLTRB(3, 3, 7, 7))

	assert.Equal(t, 2, abs(p.Winding(Pt(5, 5))))
	assert.True(t, p.Contains(Pt(5, 5)))
	assert.True(t, p.Contains(Pt(1, 1)))

	p.SetFillType(EvenOdd)
	assert.False(t, p.Contains(Pt(5, 5)))
	assert.True(t, p.Contains(Pt(1, 1)))
}

func TestContainsOpenContourClosesImplicitly(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.LineTo(10, 0)
	p.LineTo(10, 10)
	assert.True(t, p.Contains(Pt(8, 2)))
	assert.False(t, p.Contains(Pt(2, 8)))
}

func TestContainsCurves(t *testing.T) {
	p := NewPath()
	p.AddOval(RectFromLTRB(0, 0, 10, 10))
	assert.True(t, p.Contains(Pt(5, 5)))
	assert.True(t, p.Contains(Pt(9.5, 5)))
	// Inside the bounds but outside the circle.
	assert.True(t, p.BoundsContain(Pt(0.5, 0.5)))
	assert.False(t, p.Contains(Pt(0.5, 0.5)))

	q := NewPath()
	q.MoveTo(0, 10)
	q.CubicTo(0, -3, 10, -3, 10, 10)
	q.Close()
	assert.True(t, q.Contains(Pt(5, 3)))
	assert.False(t, q.Contains(Pt(5, -2)))
}

func TestContainsEmpty(t *testing.T) {
	assert.False(t, NewPath().Contains(Point{}))
	assert.False(t, NewPath().BoundsContain(Point{}))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
