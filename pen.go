package vpath

// pen follows the cursor of a path together with the contour it is in.
//
// cur is the builder cursor that relative coordinates resolve against. It
// stays on the last point after a Close. Drawing, however, resumes at the
// start of the closed contour, which is what from reports; Segments lowers
// commands the same way.
type pen struct {
	cur    Point
	start  Point
	placed bool
	closed bool
	starts int
}

// from returns the point the next drawing command starts at.
func (s *pen) from() Point {
	if s.closed {
		return s.start
	}
	return s.cur
}

// open reports whether a contour is in progress.
func (s *pen) open() bool {
	return s.placed && !s.closed
}

func (s *pen) moveTo(p Point) {
	s.cur, s.start = p, p
	s.placed, s.closed = true, false
	s.starts++
}

// drawTo ends a drawing command at p. Drawing after a Close, or on an
// empty path, implicitly starts a contour at from.
func (s *pen) drawTo(p Point) {
	if !s.open() {
		s.start = s.from()
		s.starts++
	}
	s.cur = p
	s.placed, s.closed = true, false
}

func (s *pen) close() {
	if s.open() {
		s.closed = true
	}
}

// closedShape records a self-contained closed contour starting and ending
// at start.
func (s *pen) closedShape(start Point) {
	s.moveTo(start)
	s.closed = true
}

// embed follows a sub-path placed by c. When c extends an open contour the
// first contour of the sub-path joins it instead of starting a new one.
func (s *pen) embed(c SubPath) {
	sub := c.Path.pen
	if !sub.placed {
		return
	}
	starts := sub.starts
	if c.Extend && s.open() && starts > 0 {
		starts--
	}
	if starts > 0 {
		s.start = c.mapPoint(sub.start)
	}
	s.starts += starts
	s.cur = c.mapPoint(sub.cur)
	s.placed = true
	s.closed = sub.closed
}

func (s pen) translated(d Point) pen {
	s.cur = s.cur.Add(d)
	s.start = s.start.Add(d)
	return s
}
