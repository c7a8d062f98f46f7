package vpath

import "math"

// Geometry helpers that lower arcs, ovals and rounded rectangles into
// conics. Angles follow y-down screen coordinates: a positive sweep turns
// clockwise on screen.

// quarterWeight is the conic weight of a 90 degree circular arc.
var quarterWeight = math.Sqrt2 / 2

// ellipse maps the unit circle onto an ellipse with the given center,
// radii and x-axis rotation (radians).
type ellipse struct {
	center Point
	rx, ry float64
	cos    float64
	sin    float64
}

func ellipseInRect(r Rect) ellipse {
	return ellipse{center: r.Center(), rx: r.Width() / 2, ry: r.Height() / 2, cos: 1}
}

// mapUnit maps a point in unit circle space onto the ellipse.
func (e ellipse) mapUnit(u Point) Point {
	x := u.X * e.rx
	y := u.Y * e.ry
	return Point{
		X: e.center.X + x*e.cos - y*e.sin,
		Y: e.center.Y + x*e.sin + y*e.cos,
	}
}

func (e ellipse) at(theta float64) Point {
	sin, cos := math.Sincos(theta)
	return e.mapUnit(Point{X: cos, Y: sin})
}

// clampSweep limits a sweep to one full turn.
func clampSweep(sweep float64) float64 {
	const full = 2 * math.Pi
	switch {
	case sweep > full:
		return full
	case sweep < -full:
		return -full
	}
	return sweep
}

// arcStart returns the first point of an arc of the ellipse inscribed in r.
func arcStart(r Rect, start float64) Point {
	return ellipseInRect(r).at(start)
}

// arcEnd returns the last point of an arc of the ellipse inscribed in r.
func arcEnd(r Rect, start, sweep float64) Point {
	return ellipseInRect(r).at(start + clampSweep(sweep))
}

// arcConics splits the arc into pieces of at most 90 degrees and reports
// each as a conic. Zero sweeps report nothing.
func (e ellipse) arcConics(start, sweep float64, fn func(Conic)) {
	if sweep == 0 || !isFinite(sweep) || !isFinite(start) {
		return
	}
	n := int(math.Ceil(math.Abs(sweep) / (math.Pi / 2)))
	n = max(n, 1)
	step := sweep / float64(n)
	half := step / 2
	w := math.Cos(half)
	p0 := e.at(start)
	for i := range n {
		a0 := start + float64(i)*step
		mid := a0 + half
		sin, cos := math.Sincos(mid)
		ctrl := e.mapUnit(Point{X: cos / w, Y: sin / w})
		p1 := e.at(a0 + step)
		fn(Conic{P0: p0, P1: ctrl, P2: p1, W: w})
		p0 = p1
	}
}

// svgArc converts an endpoint parameterized arc into center form.
// ok is false when the arc degenerates to nothing (coincident endpoints)
// or to a straight line (a zero radius).
// See https://www.w3.org/TR/SVG/implnote.html#ArcImplementationNotes
func svgArc(p1, p2 Point, rx, ry, rotation float64, large, sweep bool) (e ellipse, theta, delta float64, line, ok bool) {
	if p1 == p2 {
		return e, 0, 0, false, false
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 {
		return e, 0, 0, true, true
	}
	sinPhi, cosPhi := math.Sincos(rotation)
	dx2 := (p1.X - p2.X) / 2
	dy2 := (p1.Y - p2.Y) / 2
	x1p := cosPhi*dx2 + sinPhi*dy2
	y1p := -sinPhi*dx2 + cosPhi*dy2

	// Scale radii up when the ellipse can not span the endpoints.
	lambda := x1p*x1p/(rx*rx) + y1p*y1p/(ry*ry)
	if lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	rx2, ry2 := rx*rx, ry*ry
	num := rx2*ry2 - rx2*y1p*y1p - ry2*x1p*x1p
	den := rx2*y1p*y1p + ry2*x1p*x1p
	coef := math.Sqrt(math.Max(0, num/den))
	if large == sweep {
		coef = -coef
	}
	cxp := coef * rx * y1p / ry
	cyp := -coef * ry * x1p / rx
	center := Point{
		X: cosPhi*cxp - sinPhi*cyp + (p1.X+p2.X)/2,
		Y: sinPhi*cxp + cosPhi*cyp + (p1.Y+p2.Y)/2,
	}

	ux, uy := (x1p-cxp)/rx, (y1p-cyp)/ry
	vx, vy := (-x1p-cxp)/rx, (-y1p-cyp)/ry
	theta = math.Atan2(uy, ux)
	delta = math.Atan2(ux*vy-uy*vx, ux*vx+uy*vy)
	if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	} else if sweep && delta < 0 {
		delta += 2 * math.Pi
	}
	return ellipse{center: center, rx: rx, ry: ry, cos: cosPhi, sin: sinPhi}, theta, delta, false, true
}

// arcToPointConics lowers an ArcToPoint command starting at from. The last
// conic ends exactly on the target point.
func arcToPointConics(from Point, c ArcToPoint, line func(Point), conic func(Conic)) {
	e, theta, delta, isLine, ok := svgArc(from, c.Point, c.Radius.X, c.Radius.Y,
		c.Rotation*math.Pi/180, c.LargeArc, c.Clockwise)
	switch {
	case !ok:
		return
	case isLine:
		line(c.Point)
		return
	}
	var pending *Conic
	e.arcConics(theta, delta, func(k Conic) {
		if pending != nil {
			conic(*pending)
		}
		pending = &k
	})
	if pending != nil {
		pending.P2 = c.Point
		conic(*pending)
	}
}

// ovalConics reports the four quarter conics of an oval, clockwise from
// the middle of the right edge.
func ovalConics(r Rect, fn func(Conic)) {
	l, t, rt, b := r.Min.X, r.Min.Y, r.Max.X, r.Max.Y
	cx, cy := r.Center().X, r.Center().Y
	w := quarterWeight
	fn(Conic{P0: Pt(rt, cy), P1: Pt(rt, b), P2: Pt(cx, b), W: w})
	fn(Conic{P0: Pt(cx, b), P1: Pt(l, b), P2: Pt(l, cy), W: w})
	fn(Conic{P0: Pt(l, cy), P1: Pt(l, t), P2: Pt(cx, t), W: w})
	fn(Conic{P0: Pt(cx, t), P1: Pt(rt, t), P2: Pt(rt, cy), W: w})
}

func ovalStart(r Rect) Point {
	return Pt(r.Max.X, r.Center().Y)
}

func rrectStart(rr RRect) Point {
	radii := rr.scaledRadii()
	return Pt(rr.Rect.Min.X+radii[0].X, rr.Rect.Min.Y)
}

// rrectOutline walks a rounded rectangle clockwise from the end of the
// top-left corner. Corners with a zero radius become plain vertices.
func rrectOutline(rr RRect, line func(Point), conic func(Conic)) {
	radii := rr.scaledRadii()
	tl, tr, br, bl := radii[0], radii[1], radii[2], radii[3]
	l, t, r, b := rr.Rect.Min.X, rr.Rect.Min.Y, rr.Rect.Max.X, rr.Rect.Max.Y
	corner := func(from, ctrl, to Point, radius Point) {
		if radius.X == 0 || radius.Y == 0 {
			line(to)
			return
		}
		conic(Conic{P0: from, P1: ctrl, P2: to, W: quarterWeight})
	}
	line(Pt(r-tr.X, t))
	corner(Pt(r-tr.X, t), Pt(r, t), Pt(r, t+tr.Y), tr)
	line(Pt(r, b-br.Y))
	corner(Pt(r, b-br.Y), Pt(r, b), Pt(r-br.X, b), br)
	line(Pt(l+bl.X, b))
	corner(Pt(l+bl.X, b), Pt(l, b), Pt(l, b-bl.Y), bl)
	line(Pt(l, t+tl.Y))
	corner(Pt(l, t+tl.Y), Pt(l, t), Pt(l+tl.X, t), tl)
}
