// Package vpath is a vector path geometry library for Go.
//
// # Overview
//
// vpath records paths as typed commands, tracks their bounds while they are
// built, and answers geometric questions about them: arc length, position
// and direction at a distance, sub-path extraction and point containment.
// Paths can be moved across a process or engine boundary as a compact
// command buffer (see package cmdbuf).
//
// # Quick Start
//
//	p := vpath.NewPath()
//	p.MoveTo(0, 0)
//	p.LineTo(10, 0)
//	p.LineTo(10, 10)
//	p.Close()
//
//	fmt.Println(p.GetBounds()) // Rect.fromLTRB(0.0, 0.0, 10.0, 10.0)
//
//	for m := range p.ComputeMetrics(false).All() {
//		t, _ := m.GetTangentForOffset(m.Length() / 2)
//		fmt.Println(m.Length(), t.Position, t.Angle())
//	}
//
// # Architecture
//
// The library is organized into:
//   - Geometry: Point, Rect, RRect, Matrix, Matrix4 and the curve types
//     Line, QuadBez, Conic and CubicBez with adaptive flattening
//   - Path: the builder, the Command sum type, Segments lowering,
//     containment, Combine, Shift and Transform
//   - Measurement: ComputeMetrics, PathMetric, Tangent and ContourCache
//   - Sub-packages: cmdbuf (wire buffer), cache (sharded LRU), svgpath
//     (SVG path data), raster (coverage masks), text (glyph outlines)
//
// # Coordinate System
//
// Uses screen coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Arc angles in radians, 0 is right, positive sweeps turn clockwise
//     on screen
//
// # Bounds
//
// GetBounds reports the rectangle accumulated while building, which
// includes curve control points and the full rectangle of every arc or
// oval. It is conservative, never tight.
//
// # Logging
//
// vpath is silent by default. Call SetLogger to receive debug records about
// buffer growth, contour measurement and cache hits.
package vpath
