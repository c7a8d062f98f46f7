package cmdbuf

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/chewxy/math32"
)

// Sentinel errors reported while validating or reading a buffer.
var (
	// ErrUnderrun means an opcode needs more floats or objects than remain.
	ErrUnderrun = errors.New("cmdbuf: payload underrun")

	// ErrUnknownOpcode means a method byte is outside the opcode table.
	ErrUnknownOpcode = errors.New("cmdbuf: unknown opcode")

	// ErrTrailingData means floats or objects remain after the last opcode.
	ErrTrailingData = errors.New("cmdbuf: trailing payload")

	// ErrNonFinite means the float store holds a NaN or an infinity.
	ErrNonFinite = errors.New("cmdbuf: non-finite value")
)

const (
	initialMethods = 8
	initialData    = 16
)

// GrowFunc is notified whenever a store doubles its capacity.
// store is "methods" or "data".
type GrowFunc func(store string, oldCap, newCap int)

// Buffer records opcodes, float payloads and object payloads.
//
// The method and data stores are managed by hand: when an append does not
// fit, a new backing array of twice the capacity (counted in elements) is
// allocated and the old contents copied over. Indices already handed out
// remain valid because the old array is never written after the copy.
//
// Buffer is not safe for concurrent use.
type Buffer struct {
	methods []byte
	nm      int
	data    []float32
	nd      int
	objects []any

	// OnGrow, when set, observes capacity doubling.
	OnGrow GrowFunc
}

// New returns an empty buffer with small initial capacities.
func New() *Buffer {
	return &Buffer{
		methods: make([]byte, initialMethods),
		data:    make([]float32, initialData),
	}
}

// AddMethod appends one opcode.
func (b *Buffer) AddMethod(op Opcode) {
	if b.nm == len(b.methods) {
		b.growMethods()
	}
	b.methods[b.nm] = byte(op)
	b.nm++
}

func (b *Buffer) growMethods() {
	newCap := max(2*len(b.methods), initialMethods)
	grown := make([]byte, newCap)
	copy(grown, b.methods[:b.nm])
	if b.OnGrow != nil {
		b.OnGrow("methods", len(b.methods), newCap)
	}
	b.methods = grown
}

// reserve guarantees room for n more floats, doubling until they fit.
func (b *Buffer) reserve(n int) {
	if b.nd+n <= len(b.data) {
		return
	}
	newCap := max(len(b.data), initialData)
	for newCap < b.nd+n {
		newCap *= 2
	}
	grown := make([]float32, newCap)
	copy(grown, b.data[:b.nd])
	if b.OnGrow != nil {
		b.OnGrow("data", len(b.data), newCap)
	}
	b.data = grown
}

// AddData appends an arbitrary number of floats.
func (b *Buffer) AddData(values ...float32) {
	b.reserve(len(values))
	b.nd += copy(b.data[b.nd:], values)
}

// AddData2 appends two floats.
func (b *Buffer) AddData2(a, c float32) {
	b.reserve(2)
	b.data[b.nd] = a
	b.data[b.nd+1] = c
	b.nd += 2
}

// AddData4 appends four floats.
func (b *Buffer) AddData4(v0, v1, v2, v3 float32) {
	b.reserve(4)
	d := b.data[b.nd : b.nd+4]
	d[0], d[1], d[2], d[3] = v0, v1, v2, v3
	b.nd += 4
}

// AddData5 appends five floats.
func (b *Buffer) AddData5(v0, v1, v2, v3, v4 float32) {
	b.reserve(5)
	d := b.data[b.nd : b.nd+5]
	d[0], d[1], d[2], d[3], d[4] = v0, v1, v2, v3, v4
	b.nd += 5
}

// AddData6 appends six floats.
func (b *Buffer) AddData6(v0, v1, v2, v3, v4, v5 float32) {
	b.reserve(6)
	d := b.data[b.nd : b.nd+6]
	d[0], d[1], d[2], d[3], d[4], d[5] = v0, v1, v2, v3, v4, v5
	b.nd += 6
}

// AddData7 appends seven floats.
func (b *Buffer) AddData7(v0, v1, v2, v3, v4, v5, v6 float32) {
	b.reserve(7)
	d := b.data[b.nd : b.nd+7]
	d[0], d[1], d[2], d[3], d[4], d[5], d[6] = v0, v1, v2, v3, v4, v5, v6
	b.nd += 7
}

// AddData12 appends twelve floats.
func (b *Buffer) AddData12(v [12]float32) {
	b.reserve(12)
	b.nd += copy(b.data[b.nd:], v[:])
}

// AddObject appends an out-of-band payload.
func (b *Buffer) AddObject(obj any) {
	b.objects = append(b.objects, obj)
}

// Methods returns the recorded opcodes. The slice aliases the buffer.
func (b *Buffer) Methods() []byte { return b.methods[:b.nm] }

// Data returns the recorded floats. The slice aliases the buffer.
func (b *Buffer) Data() []float32 { return b.data[:b.nd] }

// Objects returns the recorded objects. The slice aliases the buffer.
func (b *Buffer) Objects() []any { return b.objects }

// Len returns the number of recorded opcodes.
func (b *Buffer) Len() int { return b.nm }

// Cap returns the capacities of the method and data stores.
func (b *Buffer) Cap() (methods, data int) { return len(b.methods), len(b.data) }

// Reset empties the buffer and keeps its storage.
func (b *Buffer) Reset() {
	b.nm = 0
	b.nd = 0
	clear(b.objects)
	b.objects = b.objects[:0]
}

// Clone returns a deep copy of the method and data stores. Objects are
// copied by reference.
func (b *Buffer) Clone() *Buffer {
	c := &Buffer{
		methods: make([]byte, max(b.nm, initialMethods)),
		nm:      b.nm,
		data:    make([]float32, max(b.nd, initialData)),
		nd:      b.nd,
		objects: append([]any(nil), b.objects...),
	}
	copy(c.methods, b.methods[:b.nm])
	copy(c.data, b.data[:b.nd])
	return c
}

// Append concatenates other onto b.
func (b *Buffer) Append(other *Buffer) {
	for _, m := range other.Methods() {
		b.AddMethod(Opcode(m))
	}
	b.AddData(other.Data()...)
	b.objects = append(b.objects, other.objects...)
}

// Validate walks the buffer and checks that every opcode is known, every
// payload is present and finite, and nothing is left over.
func (b *Buffer) Validate() error {
	for i, f := range b.Data() {
		if math32.IsNaN(f) || math32.IsInf(f, 0) {
			return fmt.Errorf("%w at float %d", ErrNonFinite, i)
		}
	}
	r := NewReader(b)
	for _, ok := r.Next(); ok; _, ok = r.Next() {
		r.Payload()
	}
	return r.Err()
}

// Bytes serializes the float store with the given byte order, or
// little-endian when order is nil.
func (b *Buffer) Bytes(order binary.ByteOrder) []byte {
	if order == nil {
		order = binary.LittleEndian
	}
	out := make([]byte, 4*b.nd)
	for i, f := range b.Data() {
		order.PutUint32(out[4*i:], math.Float32bits(f))
	}
	return out
}

// FromBytes rebuilds a buffer from its serialized stores.
func FromBytes(methods, data []byte, objects []any, order binary.ByteOrder) (*Buffer, error) {
	if order == nil {
		order = binary.LittleEndian
	}
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("%w: float store has %d bytes", ErrUnderrun, len(data))
	}
	b := New()
	for _, m := range methods {
		b.AddMethod(Opcode(m))
	}
	b.reserve(len(data) / 4)
	for i := 0; i < len(data); i += 4 {
		b.data[b.nd] = math.Float32frombits(order.Uint32(data[i:]))
		b.nd++
	}
	b.objects = append(b.objects, objects...)
	return b, nil
}
