package vpath

import (
	"fmt"
	"iter"
	"math"
	"slices"
	"sort"

	"github.com/gogpu/vpath/cache"
)

// closeTolerance decides whether an open contour ends on its start point.
const closeTolerance = 1e-6

// Tangent is a position on a contour and the unit direction of travel
// there.
type Tangent struct {
	Position Point
	Vector   Point
}

// Angle returns the direction of Vector in radians, counterclockwise
// from the positive x axis as seen on a y-down screen.
func (t Tangent) Angle() float64 {
	return -math.Atan2(t.Vector.Y, t.Vector.X)
}

// ComputeMetrics returns the contours of the path for measurement.
//
// The command list is snapshotted: later changes to p do not affect the
// result. When forceClosed is set every contour is measured as if it were
// closed, so its length includes the edge back to its start. An explicit
// Close marks a contour closed without adding that edge.
func (p *Path) ComputeMetrics(forceClosed bool, opts ...MetricsOption) *PathMetrics {
	o := defaultMetricsOptions()
	for _, opt := range opts {
		opt(&o)
	}
	snapshot := &Path{commands: slices.Clone(p.commands)}
	m := &pathMeasure{
		contours:     splitContours(snapshot),
		forceClosed:  forceClosed,
		tolerance:    o.tolerance,
		cache:        o.cache,
		currentIndex: -1,
	}
	return &PathMetrics{iter: &PathMetricIterator{measure: m}}
}

// PathMetrics is a one-shot, forward-only sequence of contour metrics.
// It is not restartable: call ComputeMetrics again to iterate again.
type PathMetrics struct {
	iter *PathMetricIterator
}

// Iterator returns the single iterator of the sequence.
func (m *PathMetrics) Iterator() *PathMetricIterator {
	return m.iter
}

// All ranges over the remaining metrics of the shared iterator.
func (m *PathMetrics) All() iter.Seq[*PathMetric] {
	return m.iter.All()
}

// PathMetricIterator walks the contours of a path, measuring each one only
// when it is reached.
type PathMetricIterator struct {
	measure *pathMeasure
	current *PathMetric
}

// MoveNext measures the next non-empty contour and reports whether there
// was one.
func (it *PathMetricIterator) MoveNext() bool {
	if !it.measure.advance() {
		it.current = nil
		return false
	}
	c := it.measure.measured[it.measure.currentIndex]
	it.current = &PathMetric{
		length:       c.length,
		isClosed:     c.closed,
		contourIndex: it.measure.currentIndex,
		measure:      it.measure,
	}
	return true
}

// Current returns the metric of the current contour. It panics when
// called before the first MoveNext or after MoveNext returned false.
func (it *PathMetricIterator) Current() *PathMetric {
	if it.current == nil {
		panic("vpath: PathMetricIterator.Current called outside a successful MoveNext")
	}
	return it.current
}

// All adapts the iterator for range loops. Breaking out of the loop keeps
// the position; a later All resumes from the next contour.
func (it *PathMetricIterator) All() iter.Seq[*PathMetric] {
	return func(yield func(*PathMetric) bool) {
		for it.MoveNext() {
			if !yield(it.Current()) {
				return
			}
		}
	}
}

// PathMetric describes one measured contour.
type PathMetric struct {
	length       float64
	isClosed     bool
	contourIndex int
	measure      *pathMeasure
}

// Length returns the arc length of the contour.
func (m *PathMetric) Length() float64 { return m.length }

// IsClosed reports whether the contour was closed, force-closed or ends
// on its start point.
func (m *PathMetric) IsClosed() bool { return m.isClosed }

// ContourIndex returns the zero-based index of the contour among the
// non-empty contours of the path.
func (m *PathMetric) ContourIndex() int { return m.contourIndex }

// String describes the metric.
func (m *PathMetric) String() string {
	return fmt.Sprintf("PathMetric(length: %.1f, isClosed: %v, contourIndex: %d)",
		m.length, m.isClosed, m.contourIndex)
}

// GetTangentForOffset returns the position and direction at distance
// along the contour. It reports false when distance is outside
// [0, Length()] or the direction there is undefined.
func (m *PathMetric) GetTangentForOffset(distance float64) (Tangent, bool) {
	c := m.measure.contour(m.contourIndex)
	if !isFinite(distance) || distance < 0 || distance > c.length || len(c.pieces) == 0 {
		return Tangent{}, false
	}
	ci, t := c.locate(distance)
	curve := c.curves[ci]
	v := curve.deriv(t).Normalize()
	if v == (Point{}) {
		return Tangent{}, false
	}
	return Tangent{Position: curve.eval(t), Vector: v}, true
}

// ExtractPath returns the part of the contour between the distances start
// and end, clamped to [0, Length()]. The result begins with a MoveTo when
// startWithMoveTo is set and with a LineTo otherwise. An empty path is
// returned when start is not before end.
func (m *PathMetric) ExtractPath(start, end float64, startWithMoveTo bool) *Path {
	c := m.measure.contour(m.contourIndex)
	out := NewPath()
	start = math.Max(start, 0)
	end = math.Min(end, c.length)
	if !(start < end) || len(c.pieces) == 0 {
		return out
	}
	c0, t0 := c.locate(start)
	c1, t1 := c.locate(end)
	p0 := c.curves[c0].eval(t0)
	if startWithMoveTo {
		out.MoveTo(p0.X, p0.Y)
	} else {
		out.LineTo(p0.X, p0.Y)
	}
	if c0 == c1 {
		c.curves[c0].appendRange(out, t0, t1)
		return out
	}
	c.curves[c0].appendRange(out, t0, 1)
	for i := c0 + 1; i < c1; i++ {
		c.curves[i].appendRange(out, 0, 1)
	}
	c.curves[c1].appendRange(out, 0, t1)
	return out
}

// -------------------------------------------------------------------
// Measurement engine
// -------------------------------------------------------------------

// rawContour is one contour of lowered segments, starting with SegMoveTo.
type rawContour struct {
	segments []Segment
	closed   bool
}

// splitContours lowers the path and cuts it at every SegMoveTo.
func splitContours(p *Path) []rawContour {
	var out []rawContour
	for seg := range p.Segments() {
		switch seg.Kind {
		case SegMoveTo:
			out = append(out, rawContour{segments: []Segment{seg}})
		case SegClose:
			out[len(out)-1].closed = true
		default:
			last := &out[len(out)-1]
			last.segments = append(last.segments, seg)
		}
	}
	return out
}

type pathMeasure struct {
	contours     []rawContour
	next         int
	measured     []*measuredContour
	currentIndex int
	forceClosed  bool
	tolerance    float64
	cache        *ContourCache
}

// advance measures raw contours until one has a non-zero length.
func (m *pathMeasure) advance() bool {
	for m.next < len(m.contours) {
		rc := m.contours[m.next]
		m.next++
		c := m.measureContour(rc)
		if c.length <= 0 {
			continue
		}
		m.measured = append(m.measured, c)
		m.currentIndex++
		Logger().Debug("vpath: measured contour",
			"index", m.currentIndex, "length", c.length,
			"curves", len(c.curves), "pieces", len(c.pieces))
		return true
	}
	return false
}

// contour returns a measured contour. Contours past the current one have
// not been measured yet; asking for them is a programming error.
func (m *pathMeasure) contour(index int) *measuredContour {
	if index < 0 || index > m.currentIndex {
		panic(fmt.Sprintf("vpath: contour %d queried before it was reached (current %d)",
			index, m.currentIndex))
	}
	return m.measured[index]
}

func (m *pathMeasure) measureContour(rc rawContour) *measuredContour {
	if m.cache == nil {
		return newMeasuredContour(rc, m.forceClosed, m.tolerance)
	}
	return m.cache.lookup(rc, m.forceClosed, m.tolerance)
}

// piece is one flat step of a contour: the cumulative distance and the
// curve parameter at its end.
type piece struct {
	distance float64
	t        float64
	curve    int
}

// measuredContour is immutable once built and may be shared through a
// ContourCache.
type measuredContour struct {
	curves []contourCurve
	pieces []piece
	length float64
	closed bool

	// key, forceClosed and tolerance identify the input for cache
	// collision checks.
	key         rawContour
	forceClosed bool
	tolerance   float64
}

func newMeasuredContour(rc rawContour, forceClosed bool, tol float64) *measuredContour {
	c := &measuredContour{key: rc, forceClosed: forceClosed, tolerance: tol}
	start := rc.segments[0].Points[0]
	cur := start
	for _, seg := range rc.segments[1:] {
		curve := contourCurve{kind: seg.Kind, w: seg.Weight}
		curve.pts[0] = cur
		copy(curve.pts[1:], seg.Points[:seg.NumPoints()])
		c.addCurve(curve, tol)
		cur = seg.End()
	}
	if forceClosed && cur != start {
		c.addCurve(contourCurve{kind: SegLineTo, pts: [4]Point{cur, start}}, tol)
	}
	c.closed = forceClosed || rc.closed || nearlyEqual(cur, start, closeTolerance)
	return c
}

// addCurve flattens a curve and appends its non-degenerate pieces.
// Curves that contribute no length are dropped.
func (c *measuredContour) addCurve(curve contourCurve, tol float64) {
	idx := len(c.curves)
	prev := curve.pts[0]
	added := false
	emit := func(p Point, t float64) {
		d := prev.Distance(p)
		if d <= 0 || !isFinite(d) {
			return
		}
		c.length += d
		c.pieces = append(c.pieces, piece{distance: c.length, t: t, curve: idx})
		prev = p
		added = true
	}
	switch curve.kind {
	case SegLineTo:
		emit(curve.pts[1], 1)
	case SegQuadTo:
		subdivideQuad(curve.quad(), 0, 1, tol, 0, emit)
	case SegConicTo:
		subdivideConic(curve.conic(), 0, 1, tol, 0, emit)
	case SegCubicTo:
		subdivideCubic(curve.cubic(), 0, 1, tol, 0, emit)
	}
	if added {
		c.curves = append(c.curves, curve)
	}
}

// locate maps a distance in [0, length] to a curve and its parameter by
// interpolating t within the flat piece that contains the distance.
func (c *measuredContour) locate(distance float64) (int, float64) {
	i := sort.Search(len(c.pieces), func(i int) bool {
		return c.pieces[i].distance >= distance
	})
	if i == len(c.pieces) {
		i--
	}
	pc := c.pieces[i]
	prevD, prevT := 0.0, 0.0
	if i > 0 {
		prevD = c.pieces[i-1].distance
		if c.pieces[i-1].curve == pc.curve {
			prevT = c.pieces[i-1].t
		}
	}
	span := pc.distance - prevD
	if span <= 0 {
		return pc.curve, pc.t
	}
	frac := math.Min(math.Max((distance-prevD)/span, 0), 1)
	return pc.curve, prevT + (pc.t-prevT)*frac
}

// contourCurve is a drawing segment with its start point made explicit.
type contourCurve struct {
	kind SegmentKind
	pts  [4]Point
	w    float64
}

func (c contourCurve) line() Line { return Line{P0: c.pts[0], P1: c.pts[1]} }
func (c contourCurve) quad() QuadBez { return QuadBez{P0: c.pts[0], P1: c.pts[1], P2: c.pts[2]} }
func (c contourCurve) conic() Conic { return Conic{P0: c.pts[0], P1: c.pts[1], P2: c.pts[2], W: c.w} }
func (c contourCurve) cubic() CubicBez { return CubicBez{P0: c.pts[0], P1: c.pts[1], P2: c.pts[2], P3: c.pts[3]} }

func (c contourCurve) eval(t float64) Point {
	switch c.kind {
	case SegQuadTo:
		return c.quad().Eval(t)
	case SegConicTo:
		return c.conic().Eval(t)
	case SegCubicTo:
		return c.cubic().Eval(t)
	default:
		return c.line().Eval(t)
	}
}

func (c contourCurve) deriv(t float64) Point {
	var d Point
	switch c.kind {
	case SegQuadTo:
		d = c.quad().Deriv(t)
	case SegConicTo:
		d = c.conic().Deriv(t)
	case SegCubicTo:
		d = c.cubic().Deriv(t)
	}
	if d.LengthSquared() == 0 {
		// Straight lines, and curves whose control points coincide with
		// an endpoint, travel along the chord.
		last := c.pts[1]
		switch c.kind {
		case SegQuadTo, SegConicTo:
			last = c.pts[2]
		case SegCubicTo:
			last = c.pts[3]
		}
		d = last.Sub(c.pts[0])
	}
	return d
}

// appendRange appends the part of the curve between t0 and t1 to dst.
// The cursor of dst is expected to be at the point for t0.
func (c contourCurve) appendRange(dst *Path, t0, t1 float64) {
	if t1 <= t0 {
		return
	}
	switch c.kind {
	case SegQuadTo:
		q := c.quad().Subsegment(t0, t1)
		dst.QuadraticBezierTo(q.P1.X, q.P1.Y, q.P2.X, q.P2.Y)
	case SegConicTo:
		k := c.conic().Subsegment(t0, t1)
		dst.ConicTo(k.P1.X, k.P1.Y, k.P2.X, k.P2.Y, k.W)
	case SegCubicTo:
		cb := c.cubic().Subsegment(t0, t1)
		dst.CubicTo(cb.P1.X, cb.P1.Y, cb.P2.X, cb.P2.Y, cb.P3.X, cb.P3.Y)
	default:
		l := c.line().Subsegment(t0, t1)
		dst.LineTo(l.P1.X, l.P1.Y)
	}
}

// -------------------------------------------------------------------
// Contour cache
// -------------------------------------------------------------------

// ContourCache memoizes measured contours across ComputeMetrics calls. It
// is safe for concurrent use. Contours are keyed by an FNV-64 hash of their
// geometry, tolerance and closing mode; a hash collision is detected and
// measured without the cache.
type ContourCache struct {
	entries *cache.ShardedCache[uint64, *measuredContour]
}

// NewContourCache creates a cache holding up to capacity contours per
// shard.
func NewContourCache(capacity int) *ContourCache {
	return &ContourCache{
		entries: cache.NewSharded[uint64, *measuredContour](capacity, cache.Uint64Hasher),
	}
}

// Len returns the number of cached contours.
func (cc *ContourCache) Len() int {
	return cc.entries.Len()
}

// Stats returns hit and miss statistics.
func (cc *ContourCache) Stats() cache.Stats {
	return cc.entries.Stats()
}

// Clear drops every cached contour.
func (cc *ContourCache) Clear() {
	cc.entries.Clear()
}

func (cc *ContourCache) lookup(rc rawContour, forceClosed bool, tol float64) *measuredContour {
	key := contourKey(rc, forceClosed, tol)
	hit := true
	c := cc.entries.GetOrCreate(key, func() *measuredContour {
		hit = false
		return newMeasuredContour(rc, forceClosed, tol)
	})
	if c.forceClosed != forceClosed || c.tolerance != tol || !sameContour(c.key, rc) {
		return newMeasuredContour(rc, forceClosed, tol)
	}
	if hit {
		Logger().Debug("vpath: contour cache hit", "key", key)
	}
	return c
}

func contourKey(rc rawContour, forceClosed bool, tol float64) uint64 {
	values := make([]float64, 0, 3+7*len(rc.segments))
	values = append(values, tol, flag64(forceClosed), flag64(rc.closed))
	for _, seg := range rc.segments {
		values = append(values, float64(seg.Kind), seg.Weight)
		for _, p := range seg.Points[:seg.NumPoints()] {
			values = append(values, p.X, p.Y)
		}
	}
	return cache.Float64sHasher(values)
}

func sameContour(a, b rawContour) bool {
	return a.closed == b.closed && slices.Equal(a.segments, b.segments)
}

func flag64(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
