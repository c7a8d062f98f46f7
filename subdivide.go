package vpath

const (
	// DefaultTolerance is the flattening tolerance used when a caller
	// passes a non-positive value.
	DefaultTolerance = 0.25

	// MaxSubdivisionDepth bounds the halving recursion so that degenerate
	// or pathological curves always terminate. At most 2^16 segments are
	// produced per curve.
	MaxSubdivisionDepth = 16
)

// FlattenQuad converts a quadratic Bezier into a polyline that stays within
// tolerance of the curve. The result starts at P0 and ends at P2.
func FlattenQuad(q QuadBez, tolerance float64) []Point {
	points := []Point{q.P0}
	subdivideQuad(q, 0, 1, normTolerance(tolerance), 0, func(p Point, _ float64) {
		points = append(points, p)
	})
	return points
}

// FlattenConic converts a conic into a polyline that stays within tolerance
// of the curve. The result starts at P0 and ends at P2.
func FlattenConic(c Conic, tolerance float64) []Point {
	points := []Point{c.P0}
	subdivideConic(c, 0, 1, normTolerance(tolerance), 0, func(p Point, _ float64) {
		points = append(points, p)
	})
	return points
}

// FlattenCubic converts a cubic Bezier into a polyline that stays within
// tolerance of the curve. The result starts at P0 and ends at P3.
func FlattenCubic(c CubicBez, tolerance float64) []Point {
	points := []Point{c.P0}
	subdivideCubic(c, 0, 1, normTolerance(tolerance), 0, func(p Point, _ float64) {
		points = append(points, p)
	})
	return points
}

func normTolerance(tolerance float64) float64 {
	if tolerance <= 0 || !isFinite(tolerance) {
		return DefaultTolerance
	}
	return tolerance
}

// emitFunc receives the end point of each flat piece together with the
// curve parameter at that point, in increasing t order.
type emitFunc func(p Point, t float64)

func subdivideQuad(q QuadBez, t0, t1, tol float64, depth int, emit emitFunc) {
	if depth >= MaxSubdivisionDepth || !q.P1.IsFinite() || q.flatness() <= tol {
		emit(q.P2, t1)
		return
	}
	tm := (t0 + t1) / 2
	a, b := q.Subdivide()
	subdivideQuad(a, t0, tm, tol, depth+1, emit)
	subdivideQuad(b, tm, t1, tol, depth+1, emit)
}

// subdivideConic halves the parameter range of the original conic rather
// than chopping it: a chopped conic is renormalized, which shifts its
// parameterization, and callers rely on exact t values.
func subdivideConic(c Conic, t0, t1, tol float64, depth int, emit emitFunc) {
	if !isFinite(c.W) || c.W <= 0 || !c.P1.IsFinite() {
		emit(c.P2, t1)
		return
	}
	conicRange(c, t0, t1, c.Eval(t0), c.Eval(t1), tol, depth, emit)
}

func conicRange(c Conic, t0, t1 float64, p0, p1 Point, tol float64, depth int, emit emitFunc) {
	tm := (t0 + t1) / 2
	pm := c.Eval(tm)
	if depth >= MaxSubdivisionDepth || pm.Distance(p0.Lerp(p1, 0.5)) <= tol {
		if t1 == 1 {
			p1 = c.P2
		}
		emit(p1, t1)
		return
	}
	conicRange(c, t0, tm, p0, pm, tol, depth+1, emit)
	conicRange(c, tm, t1, pm, p1, tol, depth+1, emit)
}

func subdivideCubic(c CubicBez, t0, t1, tol float64, depth int, emit emitFunc) {
	if depth >= MaxSubdivisionDepth || !c.P1.IsFinite() || !c.P2.IsFinite() || c.flatnessSquared() <= 16*tol*tol {
		emit(c.P3, t1)
		return
	}
	tm := (t0 + t1) / 2
	a, b := c.Subdivide()
	subdivideCubic(a, t0, tm, tol, depth+1, emit)
	subdivideCubic(b, tm, t1, tol, depth+1, emit)
}
