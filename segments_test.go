package vpath

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(p *Path) []Segment {
	return slices.Collect(p.Segments())
}

func kinds(segs []Segment) []SegmentKind {
	out := make([]SegmentKind, len(segs))
	for i, s := range segs {
		out[i] = s.Kind
	}
	return out
}

func TestSegmentKindString(t *testing.T) {
	assert.Equal(t, "ConicTo", SegConicTo.String())
	assert.Equal(t, "SegmentKind(42)", SegmentKind(42).String())
}

func TestSegmentsPrimitive(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.LineTo(1, 0)
	p.QuadraticBezierTo(2, 0, 2, 1)
	p.ConicTo(2, 2, 1, 2, 0.5)
	p.CubicTo(0, 2, 0, 1, 0, 0)
	p.Close()

	segs := collect(p)
	assert.Equal(t, []SegmentKind{SegMoveTo, SegLineTo, SegQuadTo, SegConicTo, SegCubicTo, SegClose}, kinds(segs))
	assert.Equal(t, Pt(2, 1), segs[2].End())
	assert.Equal(t, 0.5, segs[3].Weight)
	assert.Equal(t, 3, segs[4].NumPoints())
	assert.Equal(t, Pt(0, 0), segs[5].Points[0])
	assert.Equal(t, "LineTo[{1 0}]", segs[1].String())
}

func TestSegmentsImplicitMoveTo(t *testing.T) {
	p := NewPath()
	p.LineTo(5, 5)
	p.Close()
	p.LineTo(7, 7)

	segs := collect(p)
	require.Equal(t, []SegmentKind{SegMoveTo, SegLineTo, SegClose, SegMoveTo, SegLineTo}, kinds(segs))
	// The first contour starts at the origin, the second at the start of
	// the closed one.
	assert.Equal(t, Pt(0, 0), segs[0].Points[0])
	assert.Equal(t, Pt(0, 0), segs[3].Points[0])
}

func TestSegmentsShapes(t *testing.T) {
	r := RectFromLTRB(0, 0, 10, 20)
	tests := []struct {
		name  string
		build func(p *Path)
		want  []SegmentKind
		start Point
	}{
		{
			"rect",
			func(p *Path) { p.AddRect(r) },
			[]SegmentKind{SegMoveTo, SegLineTo, SegLineTo, SegLineTo, SegLineTo, SegClose},
			Pt(0, 0),
		},
		{
			"oval",
			func(p *Path) { p.AddOval(r) },
			[]SegmentKind{SegMoveTo, SegConicTo, SegConicTo, SegConicTo, SegConicTo, SegClose},
			Pt(10, 10),
		},
		{
			"half arc",
			func(p *Path) { p.AddArc(r, 0, math.Pi) },
			[]SegmentKind{SegMoveTo, SegConicTo, SegConicTo},
			Pt(10, 10),
		},
		{
			"closed polygon",
			func(p *Path) { _ = p.AddPolygon([]Point{{1, 1}, {2, 2}, {3, 1}}, true) },
			[]SegmentKind{SegMoveTo, SegLineTo, SegLineTo, SegLineTo, SegClose},
			Pt(1, 1),
		},
		{
			"polygon ending on its start",
			func(p *Path) { _ = p.AddPolygon([]Point{{1, 1}, {2, 2}, {3, 1}, {1, 1}}, true) },
			[]SegmentKind{SegMoveTo, SegLineTo, SegLineTo, SegLineTo, SegClose},
			Pt(1, 1),
		},
		{
			"open polygon",
			func(p *Path) { _ = p.AddPolygon([]Point{{1, 1}, {2, 2}, {3, 1}}, false) },
			[]SegmentKind{SegMoveTo, SegLineTo, SegLineTo},
			Pt(1, 1),
		},
		{
			"empty polygon",
			func(p *Path) { _ = p.AddPolygon(nil, true) },
			nil,
			Point{},
		},
		{
			"square rrect",
			func(p *Path) { _ = p.AddRRect(RRectFromRectAndRadius(r, 0, 0)) },
			[]SegmentKind{SegMoveTo, SegLineTo, SegLineTo, SegLineTo, SegLineTo, SegLineTo, SegLineTo, SegLineTo, SegLineTo, SegClose},
			Pt(0, 0),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPath()
			tt.build(p)
			segs := collect(p)
			if tt.want == nil {
				assert.Empty(t, segs)
				return
			}
			assert.Equal(t, tt.want, kinds(segs))
			assertPoint(t, tt.start, segs[0].Points[0], 1e-12)
		})
	}
}

func TestSegmentsOvalIsQuarterConics(t *testing.T) {
	p := NewPath()
	p.AddOval(RectFromLTRB(-1, -1, 1, 1))
	segs := collect(p)
	ends := []Point{{0, 1}, {-1, 0}, {0, -1}, {1, 0}}
	for i, seg := range segs[1:5] {
		assert.InDelta(t, math.Sqrt2/2, seg.Weight, 1e-15)
		assertPoint(t, ends[i], seg.End(), 1e-12)
	}
}

func TestSegmentsArcToJoinsWithLine(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.ArcTo(RectFromLTRB(10, 0, 20, 10), math.Pi, math.Pi/2, false)
	assert.Equal(t, []SegmentKind{SegMoveTo, SegLineTo, SegConicTo}, kinds(collect(p)))

	q := NewPath()
	q.MoveTo(0, 0)
	q.ArcTo(RectFromLTRB(10, 0, 20, 10), math.Pi, math.Pi/2, true)
	assert.Equal(t, []SegmentKind{SegMoveTo, SegMoveTo, SegConicTo}, kinds(collect(q)))
}

func TestSegmentsArcToPointEndsOnTarget(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.ArcToPoint(Pt(7, 3), Pt(5, 4), 25, true, true)
	segs := collect(p)
	require.GreaterOrEqual(t, len(segs), 3)
	assert.Equal(t, Pt(7, 3), segs[len(segs)-1].End())
	for _, s := range segs[1:] {
		assert.Equal(t, SegConicTo, s.Kind)
	}

	// Zero radius is a line, coincident endpoints draw nothing.
	q := NewPath()
	q.MoveTo(0, 0)
	q.ArcToPoint(Pt(7, 3), Pt(0, 4), 0, false, false)
	q.ArcToPoint(Pt(7, 3), Pt(5, 5), 0, false, false)
	assert.Equal(t, []SegmentKind{SegMoveTo, SegLineTo}, kinds(collect(q)))
}

func TestSegmentsSubPathTransform(t *testing.T) {
	sub := NewPath()
	sub.MoveTo(1, 0)
	sub.LineTo(1, 1)

	p := NewPath()
	require.NoError(t, p.AddPathWithMatrix(sub, Pt(10, 0), Matrix4FromAffine(Scale(2, 2))))
	outer := NewPath()
	require.NoError(t, outer.AddPath(p, Pt(0, 100)))

	segs := collect(outer)
	require.Len(t, segs, 2)
	assert.Equal(t, Pt(12, 100), segs[0].Points[0])
	assert.Equal(t, Pt(12, 102), segs[1].Points[0])
	assert.Equal(t, Pt(12, 102), outer.CurrentPoint())
}

func TestSegmentsEarlyBreak(t *testing.T) {
	p := NewPath()
	for i := range 10 {
		p.AddRect(RectFromXYWH(float64(i), 0, 1, 1))
	}
	n := 0
	for range p.Segments() {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}
