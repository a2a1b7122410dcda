/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import "testing"

func TestPath_MinSpacingThinning(t *testing.T) {
	p := NewPath(DefaultMinSpacing)
	p.Add(Pt{0, 0})
	// all of these lie within Manhattan distance 100 of the last kept point
	for _, q := range []Pt{{10, 10}, {50, 49}, {99, 0}, {0, -99}} {
		before := p.Len()
		if p.Add(q) {
			t.Fatalf("point %v should have been rejected", q)
		}
		if p.Len() != before {
			t.Fatalf("node count grew from %d to %d", before, p.Len())
		}
	}
	if !p.Add(Pt{60, 40}) {
		t.Fatalf("distance exactly 100 should be accepted")
	}
	if p.Len() != 2 {
		t.Fatalf("expected 2 nodes, got %d", p.Len())
	}
}

func TestPath_SpacingMeasuredAgainstLastPointAcrossBreak(t *testing.T) {
	p := NewPath(10)
	p.Add(Pt{0, 0})
	p.AddBreak()
	if p.Add(Pt{1, 1}) {
		t.Fatalf("spacing must be checked against the last non-break node")
	}
	if !p.Add(Pt{20, 0}) {
		t.Fatalf("expected far point to be kept")
	}
}

func TestPath_BreakRules(t *testing.T) {
	p := NewPath(0)
	if p.AddBreak() || p.Len() != 0 {
		t.Fatalf("break on empty path must be a no-op")
	}
	p.Add(Pt{1, 1})
	if !p.AddBreak() {
		t.Fatalf("expected break after a point")
	}
	if p.AddBreak() || p.Len() != 2 {
		t.Fatalf("consecutive breaks must collapse, len=%d", p.Len())
	}
}

func TestPath_BoundsIgnoreBreaks(t *testing.T) {
	p := NewPath(0)
	if pos, size := p.Bounds(); pos != (Pt{}) || size != (Pt{}) {
		t.Fatalf("empty bounds: %v %v", pos, size)
	}
	p.Add(Pt{5, 10})
	p.Add(Pt{-5, 30})
	p.AddBreak()
	p.Add(Pt{20, 0})
	pos, size := p.Bounds()
	if pos != (Pt{-5, 0}) || size != (Pt{25, 30}) {
		t.Fatalf("unexpected bounds: pos=%v size=%v", pos, size)
	}
}

func TestPath_SetPivot(t *testing.T) {
	p := NewPath(0)
	p.Add(Pt{100, 200})
	p.Add(Pt{150, 260})
	p.AddBreak()
	p.Add(Pt{110, 220})
	pos, _ := p.Bounds()
	p.SetPivot(pos)
	if p.Pivot() != pos {
		t.Fatalf("pivot not stored: %v", p.Pivot())
	}
	want := []PathNode{{Pt: Pt{0, 0}}, {Pt: Pt{50, 60}}, BreakNode, {Pt: Pt{10, 20}}}
	got := p.Nodes()
	if len(got) != len(want) {
		t.Fatalf("len mismatch: %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("node %d: got %v want %v", i, got[i], want[i])
		}
	}
	np, size := p.Bounds()
	if np != (Pt{0, 0}) || size != (Pt{50, 60}) {
		t.Fatalf("bounds after pivot: %v %v", np, size)
	}
}

func TestPath_SegmentsSkipBreaksAndRestart(t *testing.T) {
	p := PathOf(PathNode{Pt: Pt{0, 0}}, PathNode{Pt: Pt{1, 0}}, BreakNode, PathNode{Pt: Pt{2, 0}}, PathNode{Pt: Pt{3, 0}}, PathNode{Pt: Pt{4, 0}})
	count := func() int {
		n := 0
		for a, b := range p.Segments() {
			if a == b {
				t.Fatalf("degenerate segment %v", a)
			}
			n++
		}
		return n
	}
	if n := count(); n != 3 {
		t.Fatalf("expected 3 segments, got %d", n)
	}
	if n := count(); n != 3 {
		t.Fatalf("re-iteration should restart, got %d", n)
	}
	for a := range p.Segments() {
		if a != (Pt{0, 0}) {
			t.Fatalf("early stop yielded %v", a)
		}
		break
	}
	if s := p.Strokes(); len(s) != 2 || len(s[0]) != 2 || len(s[1]) != 3 {
		t.Fatalf("unexpected strokes: %v", s)
	}
}

func TestPath_CloneIsIndependent(t *testing.T) {
	p := NewPath(0)
	p.Add(Pt{1, 2})
	c := p.Clone()
	c.Add(Pt{3, 4})
	if p.Len() != 1 || c.Len() != 2 {
		t.Fatalf("clone shares storage: %d %d", p.Len(), c.Len())
	}
}
