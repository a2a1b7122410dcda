/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Basic 2D geometry and transforms for the whiteboard world.
// Float values use float32 to align with the UI toolkit and rasterizer.

import (
	"strconv"

	"github.com/chewxy/math32"
)

// PerpendicularLength is the fixed magnitude of Pt.Perpendicular.
const PerpendicularLength = 20

// Pt is a 2D point or vector. It is an immutable value type.
type Pt struct{ X, Y float32 }

// P is shorthand for Pt{x, y}.
func P(x, y float32) Pt { return Pt{X: x, Y: y} }

func (p Pt) Add(o Pt) Pt          { return Pt{p.X + o.X, p.Y + o.Y} }
func (p Pt) Sub(o Pt) Pt          { return Pt{p.X - o.X, p.Y - o.Y} }
func (p Pt) Scale(s float32) Pt   { return Pt{p.X * s, p.Y * s} }
func (p Pt) Div(s float32) Pt     { return Pt{p.X / s, p.Y / s} }
func (p Pt) Eq(o Pt) bool         { return p.X == o.X && p.Y == o.Y }
func (p Pt) Magnitude() float32   { return math32.Sqrt(p.X*p.X + p.Y*p.Y) }
func (p Pt) IsZero() bool         { return p.X == 0 && p.Y == 0 }
func (p Pt) String() string       { return "(" + ftoa(p.X) + "," + ftoa(p.Y) + ")" }
func (p Pt) Rect(size Pt) Rect    { return Rect{X: p.X, Y: p.Y, W: size.X, H: size.Y} }

func ftoa(v float32) string { return strconv.FormatFloat(float64(v), 'g', -1, 32) }

// Perpendicular rotates p by 90 degrees to (y, -x) and rescales it to
// PerpendicularLength. The zero vector has no direction and is returned as is.
func (p Pt) Perpendicular() Pt {
	v := Pt{p.Y, -p.X}
	m := v.Magnitude()
	if m == 0 {
		return Pt{}
	}
	return v.Scale(PerpendicularLength / m)
}

// VectorFrom returns the vector pointing from start to end.
func VectorFrom(start, end Pt) Pt { return end.Sub(start) }

// Dot is the scalar product of a and b.
func Dot(a, b Pt) float32 { return a.X*b.X + a.Y*b.Y }

// Manhattan is |a.x-b.x| + |a.y-b.y|.
func Manhattan(a, b Pt) float32 { return math32.Abs(a.X-b.X) + math32.Abs(a.Y-b.Y) }

// LerpF interpolates linearly between a and b; t is not clamped.
func LerpF(a, b, t float32) float32 { return (1-t)*a + t*b }

// Lerp interpolates each component of a and b.
func Lerp(a, b Pt, t float32) Pt { return Pt{LerpF(a.X, b.X, t), LerpF(a.Y, b.Y, t)} }

// ClampF limits v to [lo, hi]. When lo > hi the lower bound wins.
func ClampF(v, lo, hi float32) float32 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// Clamp limits p component-wise to the box spanned by lo and hi.
func Clamp(p, lo, hi Pt) Pt { return Pt{ClampF(p.X, lo.X, hi.X), ClampF(p.Y, lo.Y, hi.Y)} }

// Rect is an axis-aligned rectangle defined by min corner and size.
type Rect struct {
	X, Y float32
	W, H float32
}

func R(x, y, w, h float32) Rect { return Rect{X: x, Y: y, W: w, H: h} }

func (r Rect) Min() Pt  { return Pt{r.X, r.Y} }
func (r Rect) Max() Pt  { return Pt{r.X + r.W, r.Y + r.H} }
func (r Rect) Size() Pt { return Pt{r.W, r.H} }
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains reports whether p lies in r, edges included.
func (r Rect) Contains(p Pt) bool {
	return p.X >= r.X && p.Y >= r.Y && p.X <= r.X+r.W && p.Y <= r.Y+r.H
}

// Inset returns a rectangle inset by dx,dy on all sides (negative grows).
func (r Rect) Inset(dx, dy float32) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W - 2*dx, H: r.H - 2*dy}
}

// Union returns the minimal rect containing both.
func (r Rect) Union(o Rect) Rect {
	minX := min(r.X, o.X)
	minY := min(r.Y, o.Y)
	maxX := max(r.X+r.W, o.X+o.W)
	maxY := max(r.Y+r.H, o.Y+o.H)
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Corners returns the rectangle as a clockwise polygon starting top-left.
func (r Rect) Corners() []Pt {
	return []Pt{
		{r.X, r.Y},
		{r.X + r.W, r.Y},
		{r.X + r.W, r.Y + r.H},
		{r.X, r.Y + r.H},
	}
}

// Affine2D represents a 2D affine transform as matrix:
// | a c e |
// | b d f |
// | 0 0 1 |
type Affine2D struct{ A, B, C, D, E, F float32 }

var Identity = Affine2D{A: 1, D: 1}

func (m Affine2D) Mul(n Affine2D) Affine2D {
	return Affine2D{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

func (m Affine2D) Apply(p Pt) Pt {
	return Pt{
		X: m.A*p.X + m.C*p.Y + m.E,
		Y: m.B*p.X + m.D*p.Y + m.F,
	}
}

// ApplyAll maps every point of pts through m into a new slice.
func (m Affine2D) ApplyAll(pts []Pt) []Pt {
	out := make([]Pt, len(pts))
	for i, p := range pts {
		out[i] = m.Apply(p)
	}
	return out
}

// Invert returns the inverse transform. A singular matrix yields Identity and false.
func (m Affine2D) Invert() (Affine2D, bool) {
	det := m.A*m.D - m.B*m.C
	if det == 0 {
		return Identity, false
	}
	inv := 1 / det
	return Affine2D{
		A: m.D * inv,
		B: -m.B * inv,
		C: -m.C * inv,
		D: m.A * inv,
		E: (m.C*m.F - m.D*m.E) * inv,
		F: (m.B*m.E - m.A*m.F) * inv,
	}, true
}

// ScaleFactor returns the horizontal scale of an axis-aligned transform.
func (m Affine2D) ScaleFactor() float32 { return math32.Sqrt(m.A*m.A + m.B*m.B) }

func Translate(tx, ty float32) Affine2D { return Affine2D{A: 1, D: 1, E: tx, F: ty} }
func Scale(sx, sy float32) Affine2D     { return Affine2D{A: sx, D: sy} }
func Rotate(rad float32) Affine2D {
	c := math32.Cos(rad)
	s := math32.Sin(rad)
	return Affine2D{A: c, B: s, C: -s, D: c}
}

// FloatRound rounds v to n decimal places deterministically.
func FloatRound(v float32, places int) float32 {
	if places < 0 {
		return v
	}
	pow := math32.Pow(10, float32(places))
	return math32.Round(v*pow) / pow
}
