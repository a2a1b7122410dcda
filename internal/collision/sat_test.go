/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package collision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gowhiteboard/internal/vector"
)

type poly struct {
	id  string
	pts []vector.Pt
}

func (p poly) ID() string               { return p.id }
func (p poly) Vertices() []vector.Pt { return p.pts }

func rect(id string, x, y, w, h float32) poly {
	return poly{id: id, pts: vector.R(x, y, w, h).Corners()}
}

func TestProjection_OverlapsInclusive(t *testing.T) {
	a := Projection{Min: 0, Max: 10}
	assert.True(t, a.Overlaps(Projection{Min: 10, Max: 20}), "touching at max")
	assert.True(t, a.Overlaps(Projection{Min: -5, Max: 0}), "touching at min")
	assert.True(t, a.Overlaps(Projection{Min: 2, Max: 3}), "contained")
	assert.True(t, a.Overlaps(Projection{Min: -100, Max: 100}), "containing")
	assert.False(t, a.Overlaps(Projection{Min: 10.5, Max: 20}))
	assert.False(t, a.Overlaps(Projection{Min: -3, Max: -0.5}))
}

func TestProject(t *testing.T) {
	pts := vector.R(1, 2, 3, 4).Corners()
	p := Project(pts, vector.Pt{X: 1})
	assert.Equal(t, Projection{Min: 1, Max: 4}, p)
	p = Project(pts, vector.Pt{Y: -1})
	assert.Equal(t, Projection{Min: -6, Max: -2}, p)
}

func TestCheck_TouchingRectanglesCollide(t *testing.T) {
	a := rect("a", 0, 0, 10, 10)
	b := rect("b", 10, 0, 10, 10)
	assert.True(t, Check(a, b), "shared edge must count as collision")
	c := rect("c", 10, 10, 5, 5)
	assert.True(t, Check(a, c), "shared corner must count as collision")
	d := rect("d", 10.01, 0, 10, 10)
	assert.False(t, Check(a, d))
}

func TestCheck_SelfExclusion(t *testing.T) {
	a := rect("same", 0, 0, 10, 10)
	assert.False(t, Check(a, a))
	// identity is the id, not the geometry
	twin := rect("same", 100, 100, 1, 1)
	assert.False(t, Check(a, twin))
	assert.True(t, Polygons(a.pts, a.pts), "plain polygon test has no identity notion")
}

func TestCheck_Symmetry(t *testing.T) {
	shapes := []poly{
		rect("r1", 0, 0, 10, 10),
		rect("r2", 5, 5, 10, 10),
		rect("r3", 30, 0, 2, 2),
		{id: "tri", pts: []vector.Pt{{X: 0, Y: 20}, {X: 15, Y: 5}, {X: 30, Y: 20}}},
		{id: "diamond", pts: []vector.Pt{{X: 12, Y: 0}, {X: 16, Y: 4}, {X: 12, Y: 8}, {X: 8, Y: 4}}},
		NewProbe(vector.Pt{X: 31, Y: 1}, vector.Pt{}).asPoly(),
	}
	for _, a := range shapes {
		for _, b := range shapes {
			require.Equalf(t, Check(a, b), Check(b, a), "asymmetric result for %s/%s", a.id, b.id)
		}
	}
}

func TestCheck_RotatedSeparation(t *testing.T) {
	// bounding boxes overlap but the diamond edge separates them
	diamond := poly{id: "d", pts: []vector.Pt{{X: 10, Y: 0}, {X: 20, Y: 10}, {X: 10, Y: 20}, {X: 0, Y: 10}}}
	corner := rect("c", 17, 17, 3, 3)
	assert.False(t, Check(diamond, corner))
	assert.True(t, Check(diamond, rect("inside", 9, 9, 2, 2)))
}

func TestPolygons_Degenerate(t *testing.T) {
	box := vector.R(0, 0, 10, 10).Corners()
	assert.False(t, Polygons(nil, box))
	assert.True(t, Polygons([]vector.Pt{{X: 5, Y: 5}}, box), "point inside")
	assert.False(t, Polygons([]vector.Pt{{X: 15, Y: 5}}, box), "point outside")
	zero := vector.R(3, 3, 0, 0).Corners()
	assert.True(t, Polygons(zero, zero))
	assert.False(t, Polygons(zero, vector.R(4, 4, 0, 0).Corners()))
}

func TestProbe(t *testing.T) {
	p := NewProbe(vector.Pt{X: 10, Y: 10}, vector.Pt{X: 24, Y: 24})
	assert.Equal(t, vector.R(-2, -2, 24, 24), p.Rect())
	one := NewProbe(vector.Pt{X: 0, Y: 0}, vector.Pt{})
	assert.Equal(t, vector.Pt{X: 1, Y: 1}, one.Size)
	assert.True(t, Check(one, rect("r", 0.5, 0.5, 4, 4)))
	assert.False(t, Check(one, rect("r", 0.6, 0.6, 4, 4)))
}

func (p Probe) asPoly() poly { return poly{id: ProbeID, pts: p.Vertices()} }
