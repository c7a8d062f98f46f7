package vpath

import (
	"fmt"

	"github.com/gogpu/vpath/cmdbuf"
)

// Encode writes the recorded commands into a fresh wire buffer: one opcode
// per command, its float payload, and embedded paths and matrices in the
// object list as *Path and Matrix4 values.
func (p *Path) Encode() *cmdbuf.Buffer {
	b := cmdbuf.New()
	b.OnGrow = func(store string, oldCap, newCap int) {
		Logger().Debug("vpath: command buffer grew",
			"store", store, "from", oldCap, "to", newCap)
	}
	for _, c := range p.commands {
		c.encode(b)
	}
	b.OnGrow = nil
	return b
}

// DecodePath replays a wire buffer through the builder. Relative opcodes
// carry absolute payloads and are recorded as such with their relative
// form preserved. A reset opcode discards everything decoded before it.
//
// The buffer is validated first; arity mismatches, unknown opcodes and
// non-finite payloads are reported without building anything.
func DecodePath(buf *cmdbuf.Buffer) (*Path, error) {
	if err := buf.Validate(); err != nil {
		return nil, fmt.Errorf("vpath: decode: %w", err)
	}
	p := NewPath()
	r := cmdbuf.NewReader(buf)
	for op, ok := r.Next(); ok; op, ok = r.Next() {
		f, objs := r.Payload()
		if err := p.decodeCommand(op, f, objs); err != nil {
			return nil, fmt.Errorf("vpath: decode %v: %w", op, err)
		}
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("vpath: decode: %w", err)
	}
	return p, nil
}

func pt32(x, y float32) Point {
	return Point{X: float64(x), Y: float64(y)}
}

func rect32(f []float32) Rect {
	return RectFromLTRB(float64(f[0]), float64(f[1]), float64(f[2]), float64(f[3]))
}

func (p *Path) decodeCommand(op cmdbuf.Opcode, f []float32, objs []any) error {
	switch op {
	case cmdbuf.MoveTo, cmdbuf.RelativeMoveTo:
		p.push(MoveTo{Point: pt32(f[0], f[1]), Relative: op == cmdbuf.RelativeMoveTo})
	case cmdbuf.LineTo, cmdbuf.RelativeLineTo:
		p.push(LineTo{Point: pt32(f[0], f[1]), Relative: op == cmdbuf.RelativeLineTo})
	case cmdbuf.QuadraticBezierTo, cmdbuf.RelativeQuadraticBezierTo:
		p.push(QuadTo{
			Control:  pt32(f[0], f[1]),
			Point:    pt32(f[2], f[3]),
			Relative: op == cmdbuf.RelativeQuadraticBezierTo,
		})
	case cmdbuf.CubicTo, cmdbuf.RelativeCubicTo:
		p.push(CubicTo{
			Control1: pt32(f[0], f[1]),
			Control2: pt32(f[2], f[3]),
			Point:    pt32(f[4], f[5]),
			Relative: op == cmdbuf.RelativeCubicTo,
		})
	case cmdbuf.ConicTo, cmdbuf.RelativeConicTo:
		p.push(ConicTo{
			Control:  pt32(f[0], f[1]),
			Point:    pt32(f[2], f[3]),
			Weight:   float64(f[4]),
			Relative: op == cmdbuf.RelativeConicTo,
		})
	case cmdbuf.ArcTo:
		p.push(ArcTo{
			Rect:        rect32(f),
			StartAngle:  float64(f[4]),
			SweepAngle:  float64(f[5]),
			ForceMoveTo: f[6] != 0,
		})
	case cmdbuf.ArcToPoint, cmdbuf.RelativeArcToPoint:
		p.push(ArcToPoint{
			Point:     pt32(f[0], f[1]),
			Radius:    pt32(f[2], f[3]),
			Rotation:  float64(f[4]),
			LargeArc:  f[5] != 0,
			Clockwise: f[6] != 0,
			Relative:  op == cmdbuf.RelativeArcToPoint,
		})
	case cmdbuf.AddRect:
		p.push(Rectangle{Rect: rect32(f)})
	case cmdbuf.AddOval:
		p.push(Oval{Rect: rect32(f)})
	case cmdbuf.AddArc:
		p.push(Arc{Rect: rect32(f), StartAngle: float64(f[4]), SweepAngle: float64(f[5])})
	case cmdbuf.AddPolygon:
		n := int(f[0])
		pts := make([]Point, n)
		for i := range pts {
			pts[i] = pt32(f[2+2*i], f[3+2*i])
		}
		p.push(Polygon{Points: pts, Close: f[1] != 0})
	case cmdbuf.AddRRect:
		return p.AddRRect(RRect{
			Rect:        rect32(f),
			TopLeft:     pt32(f[4], f[5]),
			TopRight:    pt32(f[6], f[7]),
			BottomRight: pt32(f[8], f[9]),
			BottomLeft:  pt32(f[10], f[11]),
		})
	case cmdbuf.AddPath, cmdbuf.ExtendWithPath:
		sub, err := objectPath(objs[0])
		if err != nil {
			return err
		}
		return p.addSubPath(sub, pt32(f[0], f[1]), nil, op == cmdbuf.ExtendWithPath)
	case cmdbuf.AddPathWithMatrix, cmdbuf.ExtendWithPathWithMatrix:
		sub, err := objectPath(objs[0])
		if err != nil {
			return err
		}
		m, err := objectMatrix(objs[1])
		if err != nil {
			return err
		}
		return p.addSubPath(sub, pt32(f[0], f[1]), &m, op == cmdbuf.ExtendWithPathWithMatrix)
	case cmdbuf.Close:
		p.push(Close{})
	case cmdbuf.Reset:
		p.Reset()
	default:
		return fmt.Errorf("%w %d", cmdbuf.ErrUnknownOpcode, op)
	}
	return nil
}

func objectPath(obj any) (*Path, error) {
	sub, ok := obj.(*Path)
	if !ok || sub == nil {
		return nil, fmt.Errorf("%w: want *Path, got %T", ErrUnexpectedObject, obj)
	}
	return sub, nil
}

// objectMatrix accepts a Matrix4, a *Matrix4 or the 16 raw values that
// engine bindings send.
func objectMatrix(obj any) (Matrix4, error) {
	switch m := obj.(type) {
	case Matrix4:
		return m, nil
	case *Matrix4:
		if m != nil {
			return *m, nil
		}
	case []float64:
		return NewMatrix4(m)
	case []float32:
		values := make([]float64, len(m))
		for i, v := range m {
			values[i] = float64(v)
		}
		return NewMatrix4(values)
	}
	return Matrix4{}, fmt.Errorf("%w: want a 4x4 matrix, got %T", ErrUnexpectedObject, obj)
}
