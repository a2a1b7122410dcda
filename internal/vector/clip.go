/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import "fmt"

// Outcode is a Cohen-Sutherland region code; 0 means inside the clip rect.
type Outcode uint8

const (
	OutLeft   Outcode = 1
	OutRight  Outcode = 2
	OutTop    Outcode = 4
	OutBottom Outcode = 8
)

// ClipError reports a segment the erase classification could not place.
// It signals a geometry bug and must not be ignored.
type ClipError struct {
	Cur, Next         Pt
	CurCode, NextCode Outcode
	Area              Rect
}

func (e *ClipError) Error() string {
	return fmt.Sprintf("vector: unexpected clip classification: current %v (code %d), next %v (code %d), area x[%v..%v] y[%v..%v]",
		e.Cur, e.CurCode, e.Next, e.NextCode, e.Area.X, e.Area.X+e.Area.W, e.Area.Y, e.Area.Y+e.Area.H)
}

type clipBox struct{ xMin, xMax, yMin, yMax float32 }

func (c clipBox) code(p Pt) Outcode {
	var oc Outcode
	if p.X < c.xMin {
		oc |= OutLeft
	} else if p.X > c.xMax {
		oc |= OutRight
	}
	if p.Y < c.yMin {
		oc |= OutTop
	} else if p.Y > c.yMax {
		oc |= OutBottom
	}
	return oc
}

// intersect moves along from->to onto the boundary named by from's outcode,
// checking top, bottom, right, left in that order.
func (c clipBox) intersect(from, to Pt) Pt {
	oc := c.code(from)
	switch {
	case oc&OutTop != 0:
		return Pt{from.X + (to.X-from.X)*(c.yMin-from.Y)/(to.Y-from.Y), c.yMin}
	case oc&OutBottom != 0:
		return Pt{from.X + (to.X-from.X)*(c.yMax-from.Y)/(to.Y-from.Y), c.yMax}
	case oc&OutRight != 0:
		return Pt{c.xMax, from.Y + (to.Y-from.Y)*(c.xMax-from.X)/(to.X-from.X)}
	default:
		return Pt{c.xMin, from.Y + (to.Y-from.Y)*(c.xMin-from.X)/(to.X-from.X)}
	}
}

// Remove erases the part of the path inside the rectangle at origin with the
// given size and returns the result as a new path. The receiver is not
// modified. Segments crossing the boundary are clipped and a break is placed
// where the stroke enters the erased area.
//
// A rectangle with a non-positive width or height contains no points and
// yields an equivalent copy.
func (p *Path) Remove(origin, size Pt) (*Path, error) {
	out := NewPath(0)
	if size.X <= 0 || size.Y <= 0 {
		for _, n := range p.nodes {
			out.addNode(n)
		}
		return out, nil
	}

	box := clipBox{xMin: origin.X, xMax: origin.X + size.X, yMin: origin.Y, yMax: origin.Y + size.Y}
	for i, n := range p.nodes {
		if n.Break {
			out.AddBreak()
			continue
		}
		cur := n.Pt
		curCode := box.code(cur)

		if i+1 >= len(p.nodes) || p.nodes[i+1].Break {
			if curCode != 0 {
				out.Add(cur)
			}
			continue
		}
		next := p.nodes[i+1].Pt
		nextCode := box.code(next)

		switch {
		case curCode == 0 && nextCode == 0:
			// fully erased
		case curCode&nextCode != 0:
			// both outside on a shared side, the segment cannot enter the area
			out.Add(cur)
		case curCode != 0 && nextCode != 0:
			out.Add(cur)
			first := box.intersect(cur, next)
			out.Add(first)
			out.AddBreak()
			out.Add(box.intersect(next, first))
		case curCode == 0:
			out.Add(box.intersect(next, cur))
		case nextCode == 0:
			out.Add(cur)
			out.Add(box.intersect(cur, next))
			out.AddBreak()
		default:
			return nil, &ClipError{Cur: cur, Next: next, CurCode: curCode, NextCode: nextCode, Area: origin.Rect(size)}
		}
	}
	return out, nil
}
