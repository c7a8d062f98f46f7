// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package raster turns a path into an anti-aliased coverage mask.
//
// Nonzero paths are rasterized with golang.org/x/image/vector, which
// accumulates signed area exactly. Even-odd paths, which that rasterizer can
// not express, go through a scanline filler over the flattened edges with
// vertical supersampling and exact horizontal span coverage.
//
// Usage:
//
//	mask := raster.Fill(p, 256, 256, raster.WithTransform(vpath.Scale(2, 2)))
//	png.Encode(w, mask)
package raster

import (
	"image"
	"math"
	"slices"

	"golang.org/x/image/vector"

	"github.com/gogpu/vpath"
)

// DefaultSamples is the number of sub-scanlines per pixel row used by the
// scanline filler.
const DefaultSamples = 4

// Option configures rasterization.
type Option func(*options)

type options struct {
	transform vpath.Matrix
	tolerance float64
	samples   int
	scanline  bool
}

func defaultOptions() options {
	return options{
		transform: vpath.Identity(),
		tolerance: vpath.DefaultTolerance,
		samples:   DefaultSamples,
	}
}

// WithTransform maps path coordinates to pixel coordinates.
func WithTransform(m vpath.Matrix) Option {
	return func(o *options) {
		o.transform = m
	}
}

// WithTolerance sets the curve flattening tolerance in pixels for the
// scanline filler. Non-positive values select vpath.DefaultTolerance.
func WithTolerance(tolerance float64) Option {
	return func(o *options) {
		if tolerance > 0 {
			o.tolerance = tolerance
		}
	}
}

// WithSamples sets the number of sub-scanlines per pixel row for the
// scanline filler. Values below 1 are ignored.
func WithSamples(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.samples = n
		}
	}
}

// WithScanline forces the scanline filler for nonzero paths as well.
func WithScanline() Option {
	return func(o *options) {
		o.scanline = true
	}
}

// Fill rasterizes the interior of p under its fill type into a width by
// height coverage mask. Every contour is treated as closed.
func Fill(p *vpath.Path, width, height int, opts ...Option) *image.Alpha {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	dst := image.NewAlpha(image.Rect(0, 0, max(width, 0), max(height, 0)))
	if width <= 0 || height <= 0 || p.IsEmpty() {
		return dst
	}
	if p.FillType() == vpath.EvenOdd || o.scanline {
		el := Edges(p, o.transform, o.tolerance)
		vpath.Logger().Debug("raster: scanline fill",
			"fillType", p.FillType().String(), "edges", el.Len(), "samples", o.samples)
		fillScanline(el, dst, p.FillType() == vpath.EvenOdd, o.samples)
		return dst
	}
	vpath.Logger().Debug("raster: vector fill", "width", width, "height", height)
	fillVector(p, dst, o.transform)
	return dst
}

// Edges flattens p under m into scanline edges. Open contours are closed.
func Edges(p *vpath.Path, m vpath.Matrix, tolerance float64) *EdgeList {
	el := NewEdgeList()
	var cur, start vpath.Point
	open := false
	addLine := func(a, b vpath.Point) {
		el.AddLine(float32(a.X), float32(a.Y), float32(b.X), float32(b.Y))
	}
	addPolyline := func(pts []vpath.Point) {
		for i := 1; i < len(pts); i++ {
			addLine(pts[i-1], pts[i])
		}
	}
	closeContour := func() {
		if open {
			addLine(cur, start)
			cur = start
			open = false
		}
	}
	for seg := range p.Segments() {
		pts := seg.Points
		for i := range seg.NumPoints() {
			pts[i] = m.TransformPoint(pts[i])
		}
		switch seg.Kind {
		case vpath.SegMoveTo:
			closeContour()
			start, cur, open = pts[0], pts[0], true
			continue
		case vpath.SegLineTo:
			addLine(cur, pts[0])
		case vpath.SegQuadTo:
			addPolyline(vpath.FlattenQuad(vpath.QuadBez{P0: cur, P1: pts[0], P2: pts[1]}, tolerance))
		case vpath.SegConicTo:
			addPolyline(vpath.FlattenConic(vpath.Conic{P0: cur, P1: pts[0], P2: pts[1], W: seg.Weight}, tolerance))
		case vpath.SegCubicTo:
			addPolyline(vpath.FlattenCubic(vpath.CubicBez{P0: cur, P1: pts[0], P2: pts[1], P3: pts[2]}, tolerance))
		case vpath.SegClose:
			closeContour()
			continue
		}
		cur = pts[seg.NumPoints()-1]
	}
	closeContour()
	return el
}

func fillVector(p *vpath.Path, dst *image.Alpha, m vpath.Matrix) {
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	var cur, start vpath.Point
	open := false
	for seg := range p.Segments() {
		pts := seg.Points
		for i := range seg.NumPoints() {
			pts[i] = m.TransformPoint(pts[i])
		}
		switch seg.Kind {
		case vpath.SegMoveTo:
			if open {
				z.ClosePath()
			}
			z.MoveTo(f32(pts[0].X), f32(pts[0].Y))
			start, open = pts[0], true
		case vpath.SegLineTo:
			z.LineTo(f32(pts[0].X), f32(pts[0].Y))
		case vpath.SegQuadTo:
			z.QuadTo(f32(pts[0].X), f32(pts[0].Y), f32(pts[1].X), f32(pts[1].Y))
		case vpath.SegConicTo:
			k := vpath.Conic{P0: cur, P1: pts[0], P2: pts[1], W: seg.Weight}
			for _, c := range k.Cubics() {
				z.CubeTo(f32(c.P1.X), f32(c.P1.Y), f32(c.P2.X), f32(c.P2.Y), f32(c.P3.X), f32(c.P3.Y))
			}
		case vpath.SegCubicTo:
			z.CubeTo(f32(pts[0].X), f32(pts[0].Y), f32(pts[1].X), f32(pts[1].Y), f32(pts[2].X), f32(pts[2].Y))
		case vpath.SegClose:
			z.ClosePath()
			cur, open = start, false
			continue
		}
		cur = pts[seg.NumPoints()-1]
	}
	if open {
		z.ClosePath()
	}
	z.Draw(dst, b, image.Opaque, image.Point{})
}

func f32(v float64) float32 { return float32(v) }

type crossing struct {
	x       float32
	winding int8
}

// fillScanline samples each pixel row at evenly spaced sub-scanlines and
// accumulates the exact horizontal coverage of every inside span.
func fillScanline(el *EdgeList, dst *image.Alpha, evenOdd bool, samples int) {
	w, h := dst.Rect.Dx(), dst.Rect.Dy()
	el.SortByYMin()
	edges := el.Edges()
	acc := make([]float32, w)
	weight := 1 / float32(samples)
	var active []int
	var xs []crossing
	next := 0

	for py := range h {
		clear(acc)
		for s := range samples {
			y := float32(py) + (float32(s)+0.5)*weight
			for next < len(edges) && edges[next].YMin <= y {
				active = append(active, next)
				next++
			}
			xs = xs[:0]
			kept := active[:0]
			for _, i := range active {
				e := &edges[i]
				if y >= e.YMax {
					continue
				}
				kept = append(kept, i)
				if e.IsActiveAt(y) {
					xs = append(xs, crossing{x: e.XAtY(y), winding: e.Winding})
				}
			}
			active = kept
			slices.SortFunc(xs, func(a, b crossing) int {
				switch {
				case a.x < b.x:
					return -1
				case a.x > b.x:
					return 1
				}
				return 0
			})
			wind := 0
			for j := 0; j+1 < len(xs); j++ {
				wind += int(xs[j].winding)
				inside := wind != 0
				if evenOdd {
					inside = wind%2 != 0
				}
				if inside {
					addSpan(acc, xs[j].x, xs[j+1].x, weight)
				}
			}
		}
		row := dst.Pix[py*dst.Stride : py*dst.Stride+w]
		for x, a := range acc {
			row[x] = uint8(math.Round(float64(min(a, 1)) * 255))
		}
	}
}

// addSpan adds weight times the covered fraction of each pixel in
// [x0, x1).
func addSpan(acc []float32, x0, x1, weight float32) {
	w := float32(len(acc))
	x0 = max(x0, 0)
	x1 = min(x1, w)
	if x1 <= x0 {
		return
	}
	i0 := int(x0)
	i1 := int(x1)
	if i0 == i1 {
		acc[i0] += (x1 - x0) * weight
		return
	}
	acc[i0] += (float32(i0+1) - x0) * weight
	for i := i0 + 1; i < i1; i++ {
		acc[i] += weight
	}
	if i1 < len(acc) {
		acc[i1] += (x1 - float32(i1)) * weight
	}
}
