/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package collision implements the separating axis test used for hit-testing
// scene objects against each other and against pointer probes.
package collision

import (
	"gowhiteboard/internal/vector"
)

// Shape is anything with a stable identity and a convex world-space polygon.
type Shape interface {
	ID() string
	Vertices() []vector.Pt
}

// Projection is the interval a polygon covers on an axis.
type Projection struct {
	Min, Max float32
}

// Project returns the [min,max] of the dot products of vertices with axis.
// vertices must not be empty.
func Project(vertices []vector.Pt, axis vector.Pt) Projection {
	lo := vector.Dot(vertices[0], axis)
	hi := lo
	for _, v := range vertices[1:] {
		d := vector.Dot(v, axis)
		if d < lo {
			lo = d
		}
		if d > hi {
			hi = d
		}
	}
	return Projection{Min: lo, Max: hi}
}

// Overlaps reports whether the intervals share at least one point.
// Touching intervals overlap.
func (p Projection) Overlaps(o Projection) bool {
	return (p.Min <= o.Max && p.Min >= o.Min) || (o.Min <= p.Max && o.Min >= p.Min)
}

// Edges returns the edge vectors of a closed polygon, last vertex back to first included.
func Edges(vertices []vector.Pt) []vector.Pt {
	if len(vertices) < 2 {
		return nil
	}
	out := make([]vector.Pt, len(vertices))
	for i, v := range vertices {
		out[i] = vector.VectorFrom(v, vertices[(i+1)%len(vertices)])
	}
	return out
}

// Axes returns the candidate separating axes of a polygon: the perpendicular
// of each non-degenerate edge.
func Axes(vertices []vector.Pt) []vector.Pt {
	edges := Edges(vertices)
	out := make([]vector.Pt, 0, len(edges))
	for _, e := range edges {
		if ax := e.Perpendicular(); !ax.IsZero() {
			out = append(out, ax)
		}
	}
	return out
}

// Polygons runs the separating axis test on two convex polygons.
// Boundary contact counts as a collision. An empty polygon collides with nothing;
// two polygons collapsed to single points collide only when the points coincide.
func Polygons(a, b []vector.Pt) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	axesA, axesB := Axes(a), Axes(b)
	if len(axesA) == 0 && len(axesB) == 0 {
		return a[0] == b[0]
	}
	return !separatedOnAny(axesA, a, b) && !separatedOnAny(axesB, a, b)
}

func separatedOnAny(axes []vector.Pt, a, b []vector.Pt) bool {
	for _, axis := range axes {
		if !Project(a, axis).Overlaps(Project(b, axis)) {
			return true
		}
	}
	return false
}

// Check reports whether two shapes overlap. A shape never collides with
// itself; identity is decided by ID before any projection runs.
func Check(a, b Shape) bool {
	if a.ID() == b.ID() {
		return false
	}
	return Polygons(a.Vertices(), b.Vertices())
}

// Probe is a square hit-test shape centred on a point.
type Probe struct {
	Center vector.Pt
	Size   vector.Pt
}

// ProbeID is the identity every probe reports; scene ids never collide with it.
const ProbeID = "probe"

// NewProbe creates a probe of the given size around center. A zero size
// probes a 1x1 square.
func NewProbe(center, size vector.Pt) Probe {
	if size.X <= 0 || size.Y <= 0 {
		size = vector.Pt{X: 1, Y: 1}
	}
	return Probe{Center: center, Size: size}
}

func (p Probe) ID() string { return ProbeID }

// Rect is the probe's axis-aligned area.
func (p Probe) Rect() vector.Rect {
	return vector.R(p.Center.X-p.Size.X/2, p.Center.Y-p.Size.Y/2, p.Size.X, p.Size.Y)
}

func (p Probe) Vertices() []vector.Pt { return p.Rect().Corners() }
