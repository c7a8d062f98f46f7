package vpath

import "math"

// Line is the straight segment from P0 to P1.
type Line struct {
	P0, P1 Point
}

// Eval returns the point at parameter t in [0, 1].
func (l Line) Eval(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

// Subsegment returns the part of the line between t0 and t1.
func (l Line) Subsegment(t0, t1 float64) Line {
	return Line{P0: l.Eval(t0), P1: l.Eval(t1)}
}

// QuadBez is a quadratic Bezier curve. P1 is the off-curve control point.
type QuadBez struct {
	P0, P1, P2 Point
}

// Eval returns the point at parameter t in [0, 1].
func (q QuadBez) Eval(t float64) Point {
	return q.blossom(t, t)
}

// blossom is the polar form of the curve. blossom(t, t) lies on the curve
// and blossom(t0, t1) is the control point of the piece between them.
func (q QuadBez) blossom(u, v float64) Point {
	return q.P0.Lerp(q.P1, u).Lerp(q.P1.Lerp(q.P2, u), v)
}

// Subdivide splits the curve at t = 0.5.
func (q QuadBez) Subdivide() (QuadBez, QuadBez) {
	return q.Subsegment(0, 0.5), q.Subsegment(0.5, 1)
}

// Subsegment returns the part of the curve between t0 and t1.
func (q QuadBez) Subsegment(t0, t1 float64) QuadBez {
	return QuadBez{P0: q.blossom(t0, t0), P1: q.blossom(t0, t1), P2: q.blossom(t1, t1)}
}

// Deriv returns the derivative at t.
func (q QuadBez) Deriv(t float64) Point {
	return q.P1.Sub(q.P0).Lerp(q.P2.Sub(q.P1), t).Mul(2)
}

// flatness is a quarter of the second difference, the distance between
// the curve at t = 0.5 and the middle of its chord.
func (q QuadBez) flatness() float64 {
	return q.P0.Sub(q.P1.Mul(2)).Add(q.P2).Length() / 4
}

// Conic is a rational quadratic Bezier curve. A weight W above 1 pulls the
// curve toward P1, below 1 pushes it away, and W == 1 gives the plain
// quadratic. The arc of a circle spanning 2a is exact with W = cos(a).
type Conic struct {
	P0, P1, P2 Point
	W          float64
}

// Eval returns the point at parameter t in [0, 1].
func (c Conic) Eval(t float64) Point {
	h := c.homogeneous().blossom(t, t)
	if h.w == 0 {
		return c.P0.Lerp(c.P2, t)
	}
	return h.point()
}

// Deriv returns a vector with the direction of the derivative at t. Its
// length is not the true derivative length.
func (c Conic) Deriv(t float64) Point {
	chord := c.P2.Sub(c.P0)
	lead := c.P1.Sub(c.P0).Mul(c.W)
	// Numerator of the derivative divided by 2, as a quadratic in t.
	a := chord.Mul(c.W - 1)
	b := chord.Sub(lead.Mul(2))
	d := a.Mul(t * t).Add(b.Mul(t)).Add(lead)
	if d.LengthSquared() == 0 {
		// P1 sits on an endpoint.
		return chord
	}
	return d
}

// Subdivide splits the conic at t = 0.5. Both halves get the weight
// sqrt((1+W)/2).
func (c Conic) Subdivide() (Conic, Conic) {
	h := c.homogeneous()
	s, m, e := h[0], h.blossom(0, 0.5), h.blossom(0.5, 0.5)
	m2, f := h.blossom(0.5, 1), h[2]
	mid := e.point()
	w := math.Sqrt((1 + c.W) / 2)
	return Conic{P0: s.point(), P1: m.point(), P2: mid, W: w},
		Conic{P0: mid, P1: m2.point(), P2: f.point(), W: w}
}

// Subsegment returns the part of the conic between t0 and t1, with the
// weight renormalized so the end weights are 1.
func (c Conic) Subsegment(t0, t1 float64) Conic {
	h := c.homogeneous()
	s, m, e := h.blossom(t0, t0), h.blossom(t0, t1), h.blossom(t1, t1)
	if s.w == 0 || m.w == 0 || e.w == 0 {
		return Conic{P0: c.Eval(t0), P1: c.Eval((t0 + t1) / 2), P2: c.Eval(t1), W: 1}
	}
	return Conic{P0: s.point(), P1: m.point(), P2: e.point(), W: m.w / math.Sqrt(s.w*e.w)}
}

// Cubics approximates the conic by two cubic Bezier curves, one per half.
func (c Conic) Cubics() [2]CubicBez {
	a, b := c.Subdivide()
	return [2]CubicBez{a.cubic(), b.cubic()}
}

// cubic keeps the endpoints and end tangents. For circular arcs of up to
// 90 degrees the radius error stays well under a percent.
func (c Conic) cubic() CubicBez {
	k := 4 * c.W / (3 * (1 + c.W))
	return CubicBez{P0: c.P0, P1: c.P0.Lerp(c.P1, k), P2: c.P2.Lerp(c.P1, k), P3: c.P2}
}

// hpoint is a point in homogeneous coordinates, pre-multiplied by w.
type hpoint struct{ x, y, w float64 }

func (h hpoint) lerp(o hpoint, t float64) hpoint {
	return hpoint{h.x + (o.x-h.x)*t, h.y + (o.y-h.y)*t, h.w + (o.w-h.w)*t}
}

func (h hpoint) point() Point { return Point{X: h.x / h.w, Y: h.y / h.w} }

// hquad is a conic lifted to a polynomial quadratic in homogeneous space.
type hquad [3]hpoint

func (c Conic) homogeneous() hquad {
	return hquad{
		{c.P0.X, c.P0.Y, 1},
		{c.P1.X * c.W, c.P1.Y * c.W, c.W},
		{c.P2.X, c.P2.Y, 1},
	}
}

func (h hquad) blossom(u, v float64) hpoint {
	return h[0].lerp(h[1], u).lerp(h[1].lerp(h[2], u), v)
}

// CubicBez is a cubic Bezier curve with control points P1 and P2.
type CubicBez struct {
	P0, P1, P2, P3 Point
}

// Eval returns the point at parameter t in [0, 1].
func (c CubicBez) Eval(t float64) Point {
	return c.blossom(t, t, t)
}

// blossom evaluates the polar form by de Casteljau steps at u, v and w.
func (c CubicBez) blossom(u, v, w float64) Point {
	a := c.P0.Lerp(c.P1, u)
	b := c.P1.Lerp(c.P2, u)
	d := c.P2.Lerp(c.P3, u)
	return a.Lerp(b, v).Lerp(b.Lerp(d, v), w)
}

// Subdivide splits the curve at t = 0.5.
func (c CubicBez) Subdivide() (CubicBez, CubicBez) {
	return c.Subsegment(0, 0.5), c.Subsegment(0.5, 1)
}

// Subsegment returns the part of the curve between t0 and t1.
func (c CubicBez) Subsegment(t0, t1 float64) CubicBez {
	return CubicBez{
		P0: c.blossom(t0, t0, t0),
		P1: c.blossom(t0, t0, t1),
		P2: c.blossom(t0, t1, t1),
		P3: c.blossom(t1, t1, t1),
	}
}

// Deriv returns the derivative at t.
func (c CubicBez) Deriv(t float64) Point {
	d := QuadBez{P0: c.P1.Sub(c.P0), P1: c.P2.Sub(c.P1), P2: c.P3.Sub(c.P2)}
	return d.Eval(t).Mul(3)
}

// flatnessSquared is 16 times an upper bound on the squared distance
// between the curve and its chord.
func (c CubicBez) flatnessSquared() float64 {
	u := c.P1.Mul(3).Sub(c.P0.Mul(2)).Sub(c.P3)
	v := c.P2.Mul(3).Sub(c.P0).Sub(c.P3.Mul(2))
	return math.Max(u.LengthSquared(), v.LengthSquared())
}
