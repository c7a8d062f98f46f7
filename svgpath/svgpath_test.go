package svgpath

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/vpath"
	"github.com/gogpu/vpath/cmdbuf"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name string
		d    string
		want string
	}{
		{"empty", "", ""},
		{"blank", "  \n\t", ""},
		{"triangle", "M0 0 L10 0 L10 10 Z", "M0 0L10 0L10 10Z"},
		{"commas", "M0,0,L10,0,10,10z", "M0 0L10 0L10 10Z"},
		{"implicit lineto", "M0 0 10 0 10 10", "M0 0L10 0L10 10"},
		{"relative implicit lineto", "m5 5 10 0 0 10", "M5 5L15 5L15 15"},
		{"horizontal and vertical", "M10 10 H20 V20 h-10 v-10", "M10 10L20 10L20 20L10 20L10 10"},
		{"relative square", "m10 10 l10 0 v10 h-10 z", "M10 10L20 10L20 20L10 20Z"},
		{"quad", "M0 0 Q5 10 10 0", "M0 0Q5 10 10 0"},
		{"smooth quad", "M0 0 Q5 10 10 0 T20 0", "M0 0Q5 10 10 0Q15 -10 20 0"},
		{"smooth quad without previous", "M0 0 T10 0", "M0 0Q0 0 10 0"},
		{"relative quad", "M10 0 q5 10 10 0", "M10 0Q15 10 20 0"},
		{"cubic", "M0 0 C0 10 10 10 10 0", "M0 0C0 10 10 10 10 0"},
		{"smooth cubic", "M0 0 C0 10 10 10 10 0 S20 -10 20 0", "M0 0C0 10 10 10 10 0C10 -10 20 -10 20 0"},
		{"relative smooth cubic", "M0 0 c0 10 10 10 10 0 s10 -10 10 0", "M0 0C0 10 10 10 10 0C10 -10 20 -10 20 0"},
		{"smooth cubic without previous", "M0 0 S10 10 20 0", "M0 0C0 0 10 10 20 0"},
		{"compact numbers", "M.5.5L-1-1", "M0.5 0.5L-1 -1"},
		{"exponent", "M1e1 0L2E1 0", "M10 0L20 0"},
		{"relative after close", "M10 10 L20 10 L20 20 Z l5 5", "M10 10L20 10L20 20ZM10 10L15 15"},
		{"moveto after close", "M0 0 L1 0 Z M5 5 L6 5", "M0 0L1 0ZM5 5L6 5"},
		{"relative moveto after close", "M1 1 L2 1 Z m1 1 l1 0", "M1 1L2 1ZM2 2L3 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse(tt.d)
			require.NoError(t, err)
			assert.Equal(t, tt.want, Format(p))
		})
	}
}

func TestParseKeepsRelativeOpcodes(t *testing.T) {
	p := MustParse("m10 10 l10 0 q5 5 10 0 c1 1 2 2 3 3 a5 5 0 0 1 10 0")
	var got []cmdbuf.Opcode
	for _, c := range p.Commands() {
		got = append(got, c.Opcode())
	}
	want := []cmdbuf.Opcode{
		cmdbuf.RelativeMoveTo,
		cmdbuf.RelativeLineTo,
		cmdbuf.RelativeQuadraticBezierTo,
		cmdbuf.RelativeCubicTo,
		cmdbuf.RelativeArcToPoint,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("opcodes mismatch (-want +got):\n%s", diff)
	}
}

func TestParseBounds(t *testing.T) {
	p := MustParse("M0 0 L10 0 L10 10 Z")
	assert.Equal(t, vpath.RectFromLTRB(0, 0, 10, 10), p.GetBounds())
}

func TestParseArc(t *testing.T) {
	p := MustParse("M0 0 A10 10 0 0 1 20 0")
	end := p.CurrentPoint()
	assert.InDelta(t, 20, end.X, 1e-9)
	assert.InDelta(t, 0, end.Y, 1e-9)

	var length float64
	for m := range p.ComputeMetrics(false, vpath.WithTolerance(0.001)).All() {
		length += m.Length()
	}
	assert.InDelta(t, math.Pi*10, length, 0.05)
}

func TestParseDegenerateArc(t *testing.T) {
	// A zero radius arc is a straight line.
	p := MustParse("M0 0 A0 0 0 0 1 10 0")
	assert.Equal(t, "M0 0L10 0", Format(p))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		d    string
	}{
		{"no leading moveto", "L0 0"},
		{"unknown command", "M0 0 X1 1"},
		{"missing number", "M0 0 L1"},
		{"trailing garbage", "M0 0 L1 1 #"},
		{"bad arc flag", "M0 0 A1 1 0 2 0 1 1"},
		{"truncated arc", "M0 0 A1 1 0 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse(tt.d)
			require.Error(t, err)
			assert.Nil(t, p)
			assert.True(t, errors.Is(err, ErrSyntax), "error %v does not wrap ErrSyntax", err)
		})
	}
}

func TestMustParsePanics(t *testing.T) {
	assert.Panics(t, func() { MustParse("Q") })
}

func TestFormatRoundTrip(t *testing.T) {
	src := MustParse("M0 0 C0 10 10 10 10 0 S20 -10 20 0 L20 20 Q10 30 0 20 Z")
	back := MustParse(Format(src))

	want := slices.Collect(src.Segments())
	got := slices.Collect(back.Segments())
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("segments mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatConics(t *testing.T) {
	p := vpath.NewPath()
	p.AddOval(vpath.RectFromLTRB(0, 0, 20, 10))

	d := Format(p)
	assert.NotContains(t, d, "Q")

	back := MustParse(d)
	b := back.GetBounds()
	// Control points of the cubic approximation stay inside the oval's
	// rectangle.
	assert.GreaterOrEqual(t, b.Min.X, -1e-9)
	assert.GreaterOrEqual(t, b.Min.Y, -1e-9)
	assert.LessOrEqual(t, b.Max.X, 20+1e-9)
	assert.LessOrEqual(t, b.Max.Y, 10+1e-9)

	for _, pt := range []vpath.Point{{X: 10, Y: 5}, {X: 1, Y: 5}, {X: 10, Y: 0.5}} {
		assert.True(t, back.Contains(pt), "%v should be inside", pt)
	}
	assert.False(t, back.Contains(vpath.Point{X: 1, Y: 1}))
}
