package cmdbuf

import (
	"fmt"
	"math"
)

// Reader replays a buffer. It keeps one cursor per store and advances them
// in lockstep according to the arity table.
//
//	r := cmdbuf.NewReader(buf)
//	for op, ok := r.Next(); ok; op, ok = r.Next() {
//		floats, objects := r.Payload()
//		...
//	}
//	if err := r.Err(); err != nil { ... }
type Reader struct {
	b     *Buffer
	mi    int
	di    int
	oi    int
	op    Opcode
	ready bool
	err   error
}

// NewReader returns a reader positioned before the first opcode.
func NewReader(b *Buffer) *Reader {
	return &Reader{b: b}
}

// Next advances to the next opcode. It returns false at the end of the
// buffer or after an error; check Err afterwards. Any payload of the
// previous opcode that was not read is skipped.
func (r *Reader) Next() (Opcode, bool) {
	if r.err != nil {
		return 0, false
	}
	if r.ready {
		r.Payload()
		if r.err != nil {
			return 0, false
		}
	}
	if r.mi >= r.b.nm {
		if r.di != r.b.nd || r.oi != len(r.b.objects) {
			r.err = fmt.Errorf("%w: %d floats and %d objects unread",
				ErrTrailingData, r.b.nd-r.di, len(r.b.objects)-r.oi)
		}
		return 0, false
	}
	op := Opcode(r.b.methods[r.mi])
	if !op.Valid() {
		r.err = fmt.Errorf("%w %d at method %d", ErrUnknownOpcode, op, r.mi)
		return 0, false
	}
	r.mi++
	r.op = op
	r.ready = true
	return op, true
}

// Payload consumes and returns the floats and objects owned by the current
// opcode. For AddPolygon the returned floats include the two-float prefix.
// The float slice aliases the buffer.
func (r *Reader) Payload() ([]float32, []any) {
	if !r.ready || r.err != nil {
		return nil, nil
	}
	r.ready = false
	nf, no := Arity(r.op)
	if r.op == AddPolygon {
		if r.di+nf > r.b.nd {
			r.underrun(nf, 0)
			return nil, nil
		}
		n := float64(r.b.data[r.di])
		if n < 0 || n != math.Trunc(n) {
			r.err = fmt.Errorf("%w: polygon point count %v", ErrUnderrun, n)
			return nil, nil
		}
		// Bound the count by what is left before converting it.
		if n > float64(r.b.nd-r.di-nf)/2 {
			r.err = fmt.Errorf("%w: polygon of %v points at method %d, have %d floats",
				ErrUnderrun, n, r.mi-1, r.b.nd-r.di-nf)
			return nil, nil
		}
		nf = PolygonArity(int(n))
	}
	if r.di+nf > r.b.nd || r.oi+no > len(r.b.objects) {
		r.underrun(nf, no)
		return nil, nil
	}
	floats := r.b.data[r.di : r.di+nf]
	objects := r.b.objects[r.oi : r.oi+no]
	r.di += nf
	r.oi += no
	return floats, objects
}

func (r *Reader) underrun(nf, no int) {
	r.err = fmt.Errorf("%w: %v at method %d wants %d floats and %d objects, have %d and %d",
		ErrUnderrun, r.op, r.mi-1, nf, no, r.b.nd-r.di, len(r.b.objects)-r.oi)
}

// Err returns the first error met while reading.
func (r *Reader) Err() error {
	return r.err
}
