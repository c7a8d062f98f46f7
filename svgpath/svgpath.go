// Package svgpath reads and writes SVG path data.
//
// Parse builds a vpath.Path from the "d" attribute grammar of SVG 1.1:
// M, L, H, V, C, S, Q, T, A and Z in absolute and relative form. Relative
// commands are recorded through the relative builders, so the encoded
// command stream keeps the relative opcodes.
//
// Format writes a path back as absolute path data. Conics have no SVG
// equivalent and are written as two cubic curves each.
package svgpath

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	pstrconv "github.com/tdewolff/parse/v2/strconv"

	"github.com/gogpu/vpath"
)

// ErrSyntax is returned for malformed path data.
var ErrSyntax = errors.New("svgpath: syntax error")

// argCounts is the number of numbers each command takes.
var argCounts = map[byte]int{
	'M': 2,
	'Z': 0,
	'L': 2,
	'H': 1,
	'V': 1,
	'C': 6,
	'S': 4,
	'Q': 4,
	'T': 2,
	'A': 7,
}

func skipCommaWhitespace(d []byte) int {
	i := 0
	for i < len(d) && (d[i] == ' ' || d[i] == ',' || d[i] == '\n' || d[i] == '\r' || d[i] == '\t') {
		i++
	}
	return i
}

func isNumberStart(c byte) bool {
	return c >= '0' && c <= '9' || c == '.' || c == '-' || c == '+'
}

func upper(c byte) byte {
	if 'a' <= c && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

// MustParse is like Parse but panics on malformed input.
func MustParse(d string) *vpath.Path {
	p, err := Parse(d)
	if err != nil {
		panic(err)
	}
	return p
}

// Parse parses SVG path data. An empty string yields an empty path.
func Parse(d string) (*vpath.Path, error) {
	p := vpath.NewPath()
	data := []byte(d)
	i := skipCommaWhitespace(data)
	if i == len(data) {
		return p, nil
	}
	if c := upper(data[i]); c != 'M' {
		return nil, fmt.Errorf("%w: path data must start with a moveto, got %q at %d", ErrSyntax, data[i], i+1)
	}

	var f [7]float64
	var cur, start, lastCubic, lastQuad vpath.Point
	prev := byte(0)
	closed := false
	for {
		i += skipCommaWhitespace(data[i:])
		if i >= len(data) {
			break
		}

		cmd := prev
		repeat := true
		if prev == 0 || upper(prev) == 'Z' || !isNumberStart(data[i]) {
			cmd = data[i]
			repeat = false
			i++
			i += skipCommaWhitespace(data[i:])
		}
		n, ok := argCounts[upper(cmd)]
		if !ok {
			return nil, fmt.Errorf("%w: unknown command %q at %d", ErrSyntax, cmd, i)
		}

		for j := range n {
			if upper(cmd) == 'A' && (j == 3 || j == 4) {
				if i >= len(data) || (data[i] != '0' && data[i] != '1') {
					return nil, fmt.Errorf("%w: arc flags must be 0 or 1 in command %q at %d", ErrSyntax, cmd, i+1)
				}
				f[j] = float64(data[i] - '0')
				i++
			} else {
				num, m := pstrconv.ParseFloat(data[i:])
				if m == 0 {
					if repeat && j == 0 && i < len(data) {
						return nil, fmt.Errorf("%w: unknown command %q at %d", ErrSyntax, data[i], i+1)
					}
					return nil, fmt.Errorf("%w: command %q wants %d numbers at %d", ErrSyntax, cmd, n, i+1)
				}
				f[j] = num
				i += m
			}
			i += skipCommaWhitespace(data[i:])
		}

		// A command other than moveto right after closepath starts at the
		// start of the closed subpath.
		if closed && upper(cmd) != 'M' && upper(cmd) != 'Z' {
			p.MoveTo(start.X, start.Y)
			cur = start
		}
		wasClosed := closed
		closed = false

		rel := cmd >= 'a'
		var end vpath.Point
		switch upper(cmd) {
		case 'M':
			switch {
			case rel && wasClosed:
				// The cursor is still at the last point of the closed
				// subpath; SVG resolves against its start.
				p.MoveTo(start.X+f[0], start.Y+f[1])
			case rel:
				p.RelativeMoveTo(f[0], f[1])
			default:
				p.MoveTo(f[0], f[1])
			}
			end = p.CurrentPoint()
			start = end
			// Further coordinate pairs are implicit linetos.
			cmd = 'L'
			if rel {
				cmd = 'l'
			}
		case 'Z':
			p.Close()
			end = start
			closed = true
		case 'L':
			if rel {
				p.RelativeLineTo(f[0], f[1])
			} else {
				p.LineTo(f[0], f[1])
			}
			end = p.CurrentPoint()
		case 'H':
			if rel {
				p.RelativeLineTo(f[0], 0)
			} else {
				p.LineTo(f[0], cur.Y)
			}
			end = p.CurrentPoint()
		case 'V':
			if rel {
				p.RelativeLineTo(0, f[0])
			} else {
				p.LineTo(cur.X, f[0])
			}
			end = p.CurrentPoint()
		case 'C':
			if rel {
				p.RelativeCubicTo(f[0], f[1], f[2], f[3], f[4], f[5])
				lastCubic = cur.Add(vpath.Pt(f[2], f[3]))
			} else {
				p.CubicTo(f[0], f[1], f[2], f[3], f[4], f[5])
				lastCubic = vpath.Pt(f[2], f[3])
			}
			end = p.CurrentPoint()
		case 'S':
			c1 := cur
			if u := upper(prev); u == 'C' || u == 'S' {
				c1 = cur.Mul(2).Sub(lastCubic)
			}
			if rel {
				d1 := c1.Sub(cur)
				p.RelativeCubicTo(d1.X, d1.Y, f[0], f[1], f[2], f[3])
				lastCubic = cur.Add(vpath.Pt(f[0], f[1]))
			} else {
				p.CubicTo(c1.X, c1.Y, f[0], f[1], f[2], f[3])
				lastCubic = vpath.Pt(f[0], f[1])
			}
			end = p.CurrentPoint()
		case 'Q':
			if rel {
				p.RelativeQuadraticBezierTo(f[0], f[1], f[2], f[3])
				lastQuad = cur.Add(vpath.Pt(f[0], f[1]))
			} else {
				p.QuadraticBezierTo(f[0], f[1], f[2], f[3])
				lastQuad = vpath.Pt(f[0], f[1])
			}
			end = p.CurrentPoint()
		case 'T':
			c := cur
			if u := upper(prev); u == 'Q' || u == 'T' {
				c = cur.Mul(2).Sub(lastQuad)
			}
			if rel {
				d := c.Sub(cur)
				p.RelativeQuadraticBezierTo(d.X, d.Y, f[0], f[1])
			} else {
				p.QuadraticBezierTo(c.X, c.Y, f[0], f[1])
			}
			lastQuad = c
			end = p.CurrentPoint()
		case 'A':
			radius := vpath.Pt(f[0], f[1])
			target := vpath.Pt(f[5], f[6])
			if rel {
				p.RelativeArcToPoint(target, radius, f[2], f[3] == 1, f[4] == 1)
			} else {
				p.ArcToPoint(target, radius, f[2], f[3] == 1, f[4] == 1)
			}
			end = p.CurrentPoint()
		}
		prev = cmd
		cur = end
	}
	vpath.Logger().Debug("svgpath: parsed", "bytes", len(data), "commands", p.Len())
	return p, nil
}

// Format writes p as absolute SVG path data.
func Format(p *vpath.Path) string {
	var sb strings.Builder
	var cur vpath.Point
	for seg := range p.Segments() {
		pts := seg.Points
		switch seg.Kind {
		case vpath.SegMoveTo:
			writeCmd(&sb, 'M', pts[0])
		case vpath.SegLineTo:
			writeCmd(&sb, 'L', pts[0])
		case vpath.SegQuadTo:
			writeCmd(&sb, 'Q', pts[0], pts[1])
		case vpath.SegConicTo:
			k := vpath.Conic{P0: cur, P1: pts[0], P2: pts[1], W: seg.Weight}
			for _, c := range k.Cubics() {
				writeCmd(&sb, 'C', c.P1, c.P2, c.P3)
			}
		case vpath.SegCubicTo:
			writeCmd(&sb, 'C', pts[0], pts[1], pts[2])
		case vpath.SegClose:
			sb.WriteByte('Z')
			cur = pts[0]
			continue
		}
		cur = seg.End()
	}
	return sb.String()
}

func writeCmd(sb *strings.Builder, cmd byte, pts ...vpath.Point) {
	sb.WriteByte(cmd)
	for i, pt := range pts {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(num(pt.X))
		sb.WriteByte(' ')
		sb.WriteString(num(pt.Y))
	}
}

func num(v float64) string {
	if v == 0 {
		// Avoid "-0".
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
