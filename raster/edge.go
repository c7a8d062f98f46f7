// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"math"
	"slices"
)

// Epsilon is the smallest vertical extent an edge may have.
const Epsilon = 1e-6

// Edge is a non-horizontal line segment prepared for scanline conversion.
// It is stored top to bottom; Winding records the original direction.
type Edge struct {
	// YMin is the top of the edge.
	YMin float32
	// YMax is the bottom of the edge.
	YMax float32
	// XAtYMin is the X coordinate at YMin.
	XAtYMin float32
	// DXDY is the inverse slope.
	DXDY float32
	// Winding is +1 for edges drawn downward and -1 for edges drawn upward.
	Winding int8
}

// NewEdge creates an edge from (x0, y0) to (x1, y1). It returns false for
// horizontal edges, which never cross a scanline.
func NewEdge(x0, y0, x1, y1 float32) (Edge, bool) {
	var winding int8 = 1
	if y0 > y1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
		winding = -1
	}
	dy := y1 - y0
	if dy < Epsilon {
		return Edge{}, false
	}
	return Edge{
		YMin:    y0,
		YMax:    y1,
		XAtYMin: x0,
		DXDY:    (x1 - x0) / dy,
		Winding: winding,
	}, true
}

// XAtY returns the X coordinate where the edge crosses y.
func (e *Edge) XAtY(y float32) float32 {
	return e.XAtYMin + (y-e.YMin)*e.DXDY
}

// IsActiveAt reports whether the edge crosses the scanline y.
// The top is inclusive and the bottom exclusive so that a vertex shared by
// two edges is counted once.
func (e *Edge) IsActiveAt(y float32) bool {
	return y >= e.YMin && y < e.YMax
}

// EdgeList collects the edges of a flattened path.
type EdgeList struct {
	edges []Edge
}

// NewEdgeList creates an empty edge list.
func NewEdgeList() *EdgeList {
	return &EdgeList{edges: make([]Edge, 0, 64)}
}

// Reset empties the list and keeps its storage.
func (el *EdgeList) Reset() {
	el.edges = el.edges[:0]
}

// AddLine adds the line from (x0, y0) to (x1, y1). Horizontal lines are
// dropped.
func (el *EdgeList) AddLine(x0, y0, x1, y1 float32) {
	if e, ok := NewEdge(x0, y0, x1, y1); ok {
		el.edges = append(el.edges, e)
	}
}

// Len returns the number of edges.
func (el *EdgeList) Len() int {
	return len(el.edges)
}

// Edges returns the edges. The slice aliases the list.
func (el *EdgeList) Edges() []Edge {
	return el.edges
}

// SortByYMin orders the edges by their top.
func (el *EdgeList) SortByYMin() {
	slices.SortStableFunc(el.edges, func(a, b Edge) int {
		switch {
		case a.YMin < b.YMin:
			return -1
		case a.YMin > b.YMin:
			return 1
		}
		return 0
	})
}

// Bounds returns the bounding box of all edges, or zeros when empty.
func (el *EdgeList) Bounds() (minX, minY, maxX, maxY float32) {
	if len(el.edges) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY = math.MaxFloat32, math.MaxFloat32
	maxX, maxY = -math.MaxFloat32, -math.MaxFloat32
	for i := range el.edges {
		e := &el.edges[i]
		x0, x1 := e.XAtYMin, e.XAtY(e.YMax)
		minX = min(minX, x0, x1)
		maxX = max(maxX, x0, x1)
		minY = min(minY, e.YMin)
		maxY = max(maxY, e.YMax)
	}
	return minX, minY, maxX, maxY
}
