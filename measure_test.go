package vpath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func triangle() *Path {
	p := NewPath()
	p.MoveTo(0, 0)
	p.LineTo(10, 0)
	p.LineTo(10, 10)
	p.Close()
	return p
}

func metricsOf(p *Path, forceClosed bool, opts ...MetricsOption) []*PathMetric {
	var out []*PathMetric
	for m := range p.ComputeMetrics(forceClosed, opts...).All() {
		out = append(out, m)
	}
	return out
}

func totalLength(p *Path, opts ...MetricsOption) float64 {
	var sum float64
	for _, m := range metricsOf(p, false, opts...) {
		sum += m.Length()
	}
	return sum
}

func TestMeasureTriangle(t *testing.T) {
	ms := metricsOf(triangle(), false)
	require.Len(t, ms, 1)
	assert.InDelta(t, 20, ms[0].Length(), 1e-12)
	assert.True(t, ms[0].IsClosed())
	assert.Equal(t, 0, ms[0].ContourIndex())
	assert.Equal(t, "PathMetric(length: 20.0, isClosed: true, contourIndex: 0)", ms[0].String())

	forced := metricsOf(triangle(), true)
	require.Len(t, forced, 1)
	assert.InDelta(t, 20+math.Sqrt(200), forced[0].Length(), 1e-12)
	assert.True(t, forced[0].IsClosed())
}

func TestMeasureOpenContour(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.LineTo(3, 4)
	ms := metricsOf(p, false)
	require.Len(t, ms, 1)
	assert.InDelta(t, 5, ms[0].Length(), 1e-12)
	assert.False(t, ms[0].IsClosed())

	// Returning to the start counts as closed.
	p.LineTo(0, 0)
	ms = metricsOf(p, false)
	assert.InDelta(t, 10, ms[0].Length(), 1e-12)
	assert.True(t, ms[0].IsClosed())
}

func TestMeasureContourCount(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.LineTo(10, 0)
	p.MoveTo(50, 50)
	p.MoveTo(20, 20)
	p.LineTo(20, 20)
	p.AddRect(RectFromLTRB(0, 0, 5, 5))
	p.AddOval(RectFromLTRB(0, 0, 0, 0))

	ms := metricsOf(p, false)
	require.Len(t, ms, 2, "zero-length contours are skipped")
	assert.Equal(t, 0, ms[0].ContourIndex())
	assert.Equal(t, 1, ms[1].ContourIndex())
	assert.InDelta(t, 10, ms[0].Length(), 1e-12)
	assert.InDelta(t, 20, ms[1].Length(), 1e-12)
	assert.True(t, ms[1].IsClosed())

	assert.Empty(t, metricsOf(NewPath(), false))
}

func TestMeasureClosedShapesCarryClosingEdge(t *testing.T) {
	tri := []Point{{0, 0}, {10, 0}, {10, 10}}
	tests := []struct {
		name  string
		build func(p *Path)
		want  float64
	}{
		{"rect", func(p *Path) { p.AddRect(RectFromLTRB(0, 0, 5, 5)) }, 20},
		{"reversed rect", func(p *Path) { p.AddRect(RectFromLTRB(5, 5, 0, 0)) }, 20},
		{"closed polygon", func(p *Path) { _ = p.AddPolygon(tri, true) }, 20 + math.Sqrt(200)},
		{"open polygon", func(p *Path) { _ = p.AddPolygon(tri, false) }, 20},
		{"polygon repeating its start", func(p *Path) {
			_ = p.AddPolygon(append(tri, Pt(0, 0)), true)
		}, 20 + math.Sqrt(200)},
		{"explicit close", func(p *Path) {
			p.MoveTo(0, 0)
			p.LineTo(10, 0)
			p.LineTo(10, 10)
			p.Close()
		}, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPath()
			tt.build(p)
			ms := metricsOf(p, false)
			require.Len(t, ms, 1)
			assert.InDelta(t, tt.want, ms[0].Length(), 1e-9)
		})
	}
}

func TestMeasureCircle(t *testing.T) {
	p := NewPath()
	p.AddOval(RectFromLTRB(0, 0, 20, 20))
	want := 2 * math.Pi * 10

	coarse := totalLength(p)
	fine := totalLength(p, WithTolerance(0.001))
	assert.InEpsilon(t, want, coarse, 0.01)
	assert.InEpsilon(t, want, fine, 1e-4)
	// Chords never exceed the arc.
	assert.LessOrEqual(t, coarse, fine)
	assert.LessOrEqual(t, fine, want)
}

func TestMeasureCurves(t *testing.T) {
	tests := []struct {
		name  string
		build func(p *Path)
		want  float64
	}{
		{"straight quad", func(p *Path) {
			p.MoveTo(0, 0)
			p.QuadraticBezierTo(5, 0, 10, 0)
		}, 10},
		{"straight cubic", func(p *Path) {
			p.MoveTo(0, 0)
			p.CubicTo(1, 1, 2, 2, 3, 3)
		}, 3 * math.Sqrt2},
		{"quarter arc", func(p *Path) {
			p.AddArc(RectFromLTRB(-10, -10, 10, 10), 0, math.Pi/2)
		}, 5 * math.Pi},
		{"svg half circle", func(p *Path) {
			p.MoveTo(0, 0)
			p.ArcToPoint(Pt(10, 0), Pt(5, 5), 0, false, false)
		}, 5 * math.Pi},
		{"rounded rect", func(p *Path) {
			_ = p.AddRRect(RRectFromRectAndRadius(RectFromLTRB(0, 0, 10, 10), 2, 2))
		}, 4*6 + 4*math.Pi},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPath()
			tt.build(p)
			assert.InEpsilon(t, tt.want, totalLength(p, WithTolerance(0.0005)), 1e-4)
		})
	}
}

func TestGetTangentForOffset(t *testing.T) {
	ms := metricsOf(triangle(), false)
	m := ms[0]

	tan, ok := m.GetTangentForOffset(5)
	require.True(t, ok)
	assertPoint(t, Pt(5, 0), tan.Position, 1e-12)
	assertPoint(t, Pt(1, 0), tan.Vector, 1e-12)
	assert.InDelta(t, 0, tan.Angle(), 1e-12)

	tan, ok = m.GetTangentForOffset(15)
	require.True(t, ok)
	assertPoint(t, Pt(10, 5), tan.Position, 1e-12)
	assertPoint(t, Pt(0, 1), tan.Vector, 1e-12)
	assert.InDelta(t, -math.Pi/2, tan.Angle(), 1e-12)

	tan, ok = m.GetTangentForOffset(20)
	require.True(t, ok)
	assertPoint(t, Pt(10, 10), tan.Position, 1e-12)

	for _, d := range []float64{-0.001, 20.001, math.NaN(), math.Inf(1)} {
		_, ok := m.GetTangentForOffset(d)
		assert.False(t, ok, "offset %v", d)
	}
}

func TestOvalTangentContinuity(t *testing.T) {
	p := NewPath()
	p.AddOval(RectFromLTRB(0, 0, 40, 20))
	ms := metricsOf(p, false)
	require.Len(t, ms, 1)
	m := ms[0]

	start, ok := m.GetTangentForOffset(0)
	require.True(t, ok)
	assertPoint(t, Pt(40, 10), start.Position, 1e-12)
	assertPoint(t, Pt(0, 1), start.Vector, 1e-12)

	const n = 200
	prev := start
	for i := 1; i <= n; i++ {
		tan, ok := m.GetTangentForOffset(m.Length() * float64(i) / n)
		require.True(t, ok, "sample %d", i)
		// Consecutive directions turn by a small angle, never flip.
		assert.Greater(t, dot(tan.Vector, prev.Vector), 0.95, "sample %d", i)
		assert.Less(t, tan.Position.Distance(prev.Position), 2*m.Length()/n, "sample %d", i)
		prev = tan
	}
	assertPoint(t, Pt(40, 10), prev.Position, 1e-9)
}

func TestExtractPath(t *testing.T) {
	m := metricsOf(triangle(), false)[0]

	head := m.ExtractPath(0, 7, true)
	require.Equal(t, 2, head.Len())
	assert.IsType(t, MoveTo{}, head.Commands()[0])
	assertPoint(t, Pt(7, 0), head.CurrentPoint(), 1e-12)

	joined := m.ExtractPath(7, 20, false)
	require.Equal(t, 3, joined.Len())
	assert.IsType(t, LineTo{}, joined.Commands()[0])
	assertPoint(t, Pt(10, 10), joined.CurrentPoint(), 1e-12)

	assert.InDelta(t, 7, totalLength(head), 1e-12)
	assert.InDelta(t, 13, totalLength(m.ExtractPath(7, 20, true)), 1e-12)

	assert.True(t, m.ExtractPath(5, 5, true).IsEmpty())
	assert.True(t, m.ExtractPath(8, 2, true).IsEmpty())
	// Out-of-range offsets are clamped.
	assert.InDelta(t, 20, totalLength(m.ExtractPath(-5, 50, true)), 1e-12)
}

func TestExtractPathLengthAdditive(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.CubicTo(10, 30, 40, -20, 50, 10)
	p.ConicTo(60, 30, 40, 40, 0.6)
	p.QuadraticBezierTo(20, 60, 0, 30)
	tol := WithTolerance(0.0005)
	m := metricsOf(p, false, tol)[0]
	whole := m.Length()

	for _, split := range []float64{0.1, 0.33, 0.5, 0.77} {
		d := whole * split
		a := totalLength(m.ExtractPath(0, d, true), tol)
		b := totalLength(m.ExtractPath(d, whole, true), tol)
		assert.InEpsilon(t, whole, a+b, 1e-4, "split at %v", split)
		assert.InEpsilon(t, d, a, 1e-3, "split at %v", split)
	}
}

func TestMetricsIterator(t *testing.T) {
	p := triangle()
	p.AddRect(RectFromLTRB(0, 0, 1, 1))
	metrics := p.ComputeMetrics(false)
	it := metrics.Iterator()

	assert.Panics(t, func() { it.Current() }, "Current before MoveNext")
	require.True(t, it.MoveNext())
	assert.Equal(t, 0, it.Current().ContourIndex())

	// All resumes from where MoveNext left off.
	var rest []int
	for m := range metrics.All() {
		rest = append(rest, m.ContourIndex())
	}
	assert.Equal(t, []int{1}, rest)
	assert.False(t, it.MoveNext())
	assert.Panics(t, func() { it.Current() }, "Current after exhaustion")

	// One-shot: a second pass sees nothing.
	for range metrics.All() {
		t.Fatal("metrics restarted")
	}
}

func TestMetricsEarlierContoursStayQueryable(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.LineTo(10, 0)
	p.MoveTo(0, 5)
	p.LineTo(4, 5)
	ms := metricsOf(p, false)
	require.Len(t, ms, 2)

	tan, ok := ms[0].GetTangentForOffset(2.5)
	require.True(t, ok)
	assertPoint(t, Pt(2.5, 0), tan.Position, 1e-12)
	assert.Equal(t, 2, ms[0].ExtractPath(0, 1, true).Len())
}

func TestComputeMetricsSnapshots(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.LineTo(10, 0)
	metrics := p.ComputeMetrics(false)
	p.LineTo(10, 10)
	p.Reset()

	var lengths []float64
	for m := range metrics.All() {
		lengths = append(lengths, m.Length())
	}
	assert.Equal(t, []float64{10}, lengths)
}

func TestContourCache(t *testing.T) {
	cc := NewContourCache(0)
	p := NewPath()
	p.AddOval(RectFromLTRB(0, 0, 10, 10))
	p.AddOval(RectFromLTRB(20, 0, 30, 10))

	first := totalLength(p, WithContourCache(cc))
	s := cc.Stats()
	assert.Equal(t, uint64(0), s.Hits)
	assert.Equal(t, uint64(2), s.Misses)
	assert.Equal(t, 2, cc.Len())

	second := totalLength(p, WithContourCache(cc))
	assert.Equal(t, first, second)
	assert.Equal(t, uint64(2), cc.Stats().Hits)

	// Tolerance and closing mode are part of the key.
	totalLength(p, WithContourCache(cc), WithTolerance(0.01))
	for range p.ComputeMetrics(true, WithContourCache(cc)).All() {
	}
	assert.Equal(t, uint64(6), cc.Stats().Misses)
	assert.Equal(t, 6, cc.Len())

	// Cached contours still answer tangent queries.
	m := metricsOf(p, false, WithContourCache(cc))[1]
	tan, ok := m.GetTangentForOffset(0)
	require.True(t, ok)
	assertPoint(t, Pt(30, 5), tan.Position, 1e-12)

	cc.Clear()
	assert.Zero(t, cc.Len())
}

func BenchmarkComputeMetrics(b *testing.B) {
	p := NewPath()
	for i := range 20 {
		p.AddOval(RectFromXYWH(float64(i)*12, 0, 10, 10))
	}
	for b.Loop() {
		for m := range p.ComputeMetrics(false).All() {
			_ = m.Length()
		}
	}
}
