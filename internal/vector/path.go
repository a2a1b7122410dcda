/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Freehand stroke paths. A path is a list of points with explicit break
// markers; consecutive points form a segment, a break cuts the stroke.

import "iter"

// DefaultMinSpacing is the Manhattan distance a new point must keep from the
// previous one to be recorded.
const DefaultMinSpacing float32 = 100

// PathNode is either a point or a break marker.
type PathNode struct {
	Pt    Pt
	Break bool
}

// BreakNode is the break marker value.
var BreakNode = PathNode{Break: true}

func (n PathNode) String() string {
	if n.Break {
		return "BREAK"
	}
	return n.Pt.String()
}

type bounds struct {
	left, right, top, bottom float32
}

// Path is a polyline with break markers, a running bounding box and a pivot.
// The zero value is not ready for use; call NewPath.
type Path struct {
	// MinSpacing thins incoming points; 0 keeps every point.
	MinSpacing float32

	nodes []PathNode
	box   *bounds
	pivot Pt
}

// NewPath creates an empty path with the given minimum spacing.
// Negative spacing falls back to DefaultMinSpacing.
func NewPath(minSpacing float32) *Path {
	if minSpacing < 0 {
		minSpacing = DefaultMinSpacing
	}
	return &Path{MinSpacing: minSpacing}
}

// PathOf builds a path with spacing 0 from nodes, keeping the add rules.
func PathOf(nodes ...PathNode) *Path {
	p := NewPath(0)
	for _, n := range nodes {
		p.addNode(n)
	}
	return p
}

// Add appends pt unless it lies closer than MinSpacing (Manhattan distance)
// to the last non-break node. Only accepted points grow the bounding box.
func (p *Path) Add(pt Pt) bool {
	if last, ok := p.lastPoint(); ok && Manhattan(last, pt) < p.MinSpacing {
		return false
	}
	p.nodes = append(p.nodes, PathNode{Pt: pt})
	p.grow(pt)
	return true
}

// AddBreak appends a break marker. It is ignored on an empty path and
// directly after another break.
func (p *Path) AddBreak() bool {
	n := len(p.nodes)
	if n == 0 || p.nodes[n-1].Break {
		return false
	}
	p.nodes = append(p.nodes, BreakNode)
	return true
}

func (p *Path) addNode(n PathNode) {
	if n.Break {
		p.AddBreak()
		return
	}
	p.Add(n.Pt)
}

func (p *Path) lastPoint() (Pt, bool) {
	for i := len(p.nodes) - 1; i >= 0; i-- {
		if !p.nodes[i].Break {
			return p.nodes[i].Pt, true
		}
	}
	return Pt{}, false
}

func (p *Path) grow(pt Pt) {
	if p.box == nil {
		p.box = &bounds{left: pt.X, right: pt.X, top: pt.Y, bottom: pt.Y}
		return
	}
	p.box.left = min(p.box.left, pt.X)
	p.box.right = max(p.box.right, pt.X)
	p.box.top = min(p.box.top, pt.Y)
	p.box.bottom = max(p.box.bottom, pt.Y)
}

// Bounds returns the top-left corner and size of the bounding box over all
// points. An empty path reports zero values.
func (p *Path) Bounds() (pos Pt, size Pt) {
	if p.box == nil {
		return Pt{}, Pt{}
	}
	return Pt{p.box.left, p.box.top}, Pt{p.box.right - p.box.left, p.box.bottom - p.box.top}
}

// Rect is Bounds as a Rect.
func (p *Path) Rect() Rect {
	pos, size := p.Bounds()
	return pos.Rect(size)
}

// Pivot is the origin the node coordinates are relative to.
func (p *Path) Pivot() Pt { return p.pivot }

// SetPivot rebases every point so it is relative to origin.
func (p *Path) SetPivot(origin Pt) {
	p.pivot = origin
	p.box = nil
	for i, n := range p.nodes {
		if n.Break {
			continue
		}
		p.nodes[i].Pt = n.Pt.Sub(origin)
		p.grow(p.nodes[i].Pt)
	}
}

// Len is the number of nodes, breaks included.
func (p *Path) Len() int { return len(p.nodes) }

// Nodes returns a copy of the node list.
func (p *Path) Nodes() []PathNode { return append([]PathNode(nil), p.nodes...) }

// Points returns the non-break nodes in order.
func (p *Path) Points() []Pt {
	out := make([]Pt, 0, len(p.nodes))
	for _, n := range p.nodes {
		if !n.Break {
			out = append(out, n.Pt)
		}
	}
	return out
}

// Segments yields every pair of consecutive points not separated by a break.
// Ranging over it again starts from the first node.
func (p *Path) Segments() iter.Seq2[Pt, Pt] {
	return func(yield func(Pt, Pt) bool) {
		for i := 0; i+1 < len(p.nodes); i++ {
			a, b := p.nodes[i], p.nodes[i+1]
			if a.Break || b.Break {
				continue
			}
			if !yield(a.Pt, b.Pt) {
				return
			}
		}
	}
}

// Strokes splits the path at its breaks into connected polylines.
func (p *Path) Strokes() [][]Pt {
	var out [][]Pt
	var cur []Pt
	for _, n := range p.nodes {
		if n.Break {
			if len(cur) > 0 {
				out = append(out, cur)
			}
			cur = nil
			continue
		}
		cur = append(cur, n.Pt)
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

// Clone returns a deep copy.
func (p *Path) Clone() *Path {
	c := &Path{MinSpacing: p.MinSpacing, nodes: p.Nodes(), pivot: p.pivot}
	if p.box != nil {
		b := *p.box
		c.box = &b
	}
	return c
}
