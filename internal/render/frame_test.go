/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"image"
	"reflect"
	"testing"

	"gowhiteboard/internal/scene"
	"gowhiteboard/internal/vector"
)

type cam vector.Affine2D

func (c cam) Transform() vector.Affine2D { return vector.Affine2D(c) }

type op struct {
	name  string
	pts   []vector.Pt
	width float32
	text  string
}

type recording struct{ ops []op }

func (r *recording) Clear(vector.Color) { r.ops = append(r.ops, op{name: "clear"}) }
func (r *recording) FillPolygon(p []vector.Pt, _ vector.Color) {
	r.ops = append(r.ops, op{name: "fill", pts: p})
}
func (r *recording) StrokePolyline(p []vector.Pt, s vector.Stroke) {
	r.ops = append(r.ops, op{name: "stroke", pts: p, width: s.Width})
}
func (r *recording) DrawText(pos vector.Pt, text string, _ vector.Color) {
	r.ops = append(r.ops, op{name: "text", pts: []vector.Pt{pos}, text: text})
}
func (r *recording) DrawImage(dst vector.Rect, _ image.Image) {
	r.ops = append(r.ops, op{name: "image", pts: dst.Corners()})
}

func (r *recording) names() []string {
	out := make([]string, len(r.ops))
	for i, o := range r.ops {
		out[i] = o.name
	}
	return out
}

func newTree(t *testing.T, nodes ...scene.Node) *scene.Tree {
	t.Helper()
	tree := scene.NewTree(scene.NewBoard(vector.R(0, 0, 100, 100)))
	for _, n := range nodes {
		if err := tree.Add(n); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	return tree
}

func TestFrame_ZOrderAndVisibility(t *testing.T) {
	red := vector.Fill{Color: vector.Red, Enabled: true}
	top := scene.NewCursor(4)
	top.SetZOrder(3)
	hidden := scene.NewRect(vector.R(0, 0, 5, 5), red, vector.Stroke{})
	hidden.SetZOrder(2)
	hidden.Visible = false
	low := scene.NewRect(vector.R(10, 10, 20, 20), red, vector.Stroke{})
	low.SetZOrder(1)

	var rec recording
	Frame(newTree(t, top, hidden, low), cam(vector.Identity), &rec)

	want := []string{"clear", "fill", "fill"}
	if got := rec.names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("ops = %v, want %v", got, want)
	}
	if !reflect.DeepEqual(rec.ops[1].pts, vector.R(10, 10, 20, 20).Corners()) {
		t.Fatalf("rect painted at %v", rec.ops[1].pts)
	}
}

func TestFrame_DrawingSplitsAtBreaks(t *testing.T) {
	d := scene.NewDrawing(vector.P(10, 10), 0, vector.Stroke{Color: vector.Black, Width: 3, Enabled: true})
	d.AddPoint(vector.P(10, 10))
	d.AddPoint(vector.P(20, 10))
	d.Path().AddBreak()
	d.AddPoint(vector.P(30, 10))
	d.AddPoint(vector.P(40, 10))
	d.Fit()

	var rec recording
	Frame(newTree(t, d), cam(vector.Scale(2, 2)), &rec)

	if got := rec.names(); !reflect.DeepEqual(got, []string{"clear", "stroke", "stroke"}) {
		t.Fatalf("ops = %v", got)
	}
	first, second := rec.ops[1], rec.ops[2]
	if !reflect.DeepEqual(first.pts, []vector.Pt{{X: 20, Y: 20}, {X: 40, Y: 20}}) {
		t.Fatalf("first stroke %v", first.pts)
	}
	if !reflect.DeepEqual(second.pts, []vector.Pt{{X: 60, Y: 20}, {X: 80, Y: 20}}) {
		t.Fatalf("second stroke %v", second.pts)
	}
	if first.width != 6 {
		t.Fatalf("pen width should scale with zoom, got %v", first.width)
	}
}

func TestFrame_TextLines(t *testing.T) {
	txt := scene.NewText(vector.P(5, 5), "one\ntwo", nil)
	var rec recording
	Frame(newTree(t, txt), cam(vector.Identity), &rec)

	if got := rec.names(); !reflect.DeepEqual(got, []string{"clear", "text", "text"}) {
		t.Fatalf("ops = %v", got)
	}
	lh := txt.Layout().Metrics.LineHeight()
	if rec.ops[2].text != "two" || rec.ops[2].pts[0] != vector.P(5, 5+lh) {
		t.Fatalf("second line %+v", rec.ops[2])
	}
}

func TestFrame_DebugOverlay(t *testing.T) {
	r := scene.NewRect(vector.R(0, 0, 10, 10), vector.Fill{}, vector.Stroke{})
	r.ShowDebug = true
	var rec recording
	Frame(newTree(t, r), cam(vector.Identity), &rec)

	// clear, outline, one normal per edge
	if len(rec.ops) != 6 {
		t.Fatalf("ops = %v", rec.names())
	}
	if n := len(rec.ops[1].pts); n != 5 {
		t.Fatalf("outline should be closed, got %d points", n)
	}
	normal := rec.ops[2].pts
	want := []vector.Pt{{X: 5, Y: 0}, {X: 5, Y: -vector.PerpendicularLength}}
	if !reflect.DeepEqual(normal, want) {
		t.Fatalf("top edge normal %v, want %v", normal, want)
	}
}

func TestFrame_ImageTransformed(t *testing.T) {
	img := scene.NewImage(vector.P(10, 10), image.NewRGBA(image.Rect(0, 0, 4, 2)))
	var rec recording
	Frame(newTree(t, img), cam(vector.Scale(2, 2)), &rec)
	if len(rec.ops) != 2 || rec.ops[1].name != "image" {
		t.Fatalf("ops = %v", rec.names())
	}
	if got := rec.ops[1].pts[2]; got != vector.P(28, 24) {
		t.Fatalf("image bottom-right %v", got)
	}
}

func TestFrame_BoardGrid(t *testing.T) {
	board := scene.NewBoard(vector.R(0, 0, 250, 100))
	board.GridSize = 100
	var rec recording
	Frame(scene.NewTree(board), cam(vector.Identity), &rec)

	// x = 0, 100, 200 then y = 0, 100
	want := []string{"clear", "stroke", "stroke", "stroke", "stroke", "stroke"}
	if got := rec.names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("ops = %v, want %v", got, want)
	}
	if got := rec.ops[2].pts; !reflect.DeepEqual(got, []vector.Pt{{X: 100, Y: 0}, {X: 100, Y: 100}}) {
		t.Fatalf("second vertical line %v", got)
	}
	if got := rec.ops[5].pts; !reflect.DeepEqual(got, []vector.Pt{{X: 0, Y: 100}, {X: 250, Y: 100}}) {
		t.Fatalf("last horizontal line %v", got)
	}
}

func TestFrame_SelectionBorderAndChrome(t *testing.T) {
	r := scene.NewRect(vector.R(10, 10, 20, 20), vector.Fill{Color: vector.Red, Enabled: true}, vector.Stroke{})
	r.SetZOrder(1)
	r.PushMode(scene.ModeSelect)
	ctl := scene.NewTransform()
	tree := newTree(t, r, ctl)
	if err := tree.AddTo(ctl, scene.NewHandle()); err != nil {
		t.Fatalf("add handle: %v", err)
	}
	ctl.Fit(r)

	var rec recording
	Frame(tree, cam(vector.Identity), &rec)

	// rect fill, its border, the padded outline, then the handle fill and border
	want := []string{"clear", "fill", "stroke", "stroke", "fill", "stroke"}
	if got := rec.names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("ops = %v, want %v", got, want)
	}
	if got := rec.ops[3].pts[0]; got != vector.P(-10, -10) {
		t.Fatalf("outline starts at %v", got)
	}
	if got := rec.ops[4].pts[0]; got != vector.P(-15, -15) {
		t.Fatalf("handle starts at %v", got)
	}

	r.DropMode(scene.ModeSelect)
	rec = recording{}
	Frame(tree, cam(vector.Identity), &rec)
	if got := len(rec.ops); got != 5 {
		t.Fatalf("border should go with the mode, ops = %v", rec.names())
	}
}

func TestFrame_CaretWhileEditing(t *testing.T) {
	txt := scene.NewText(vector.P(5, 5), "ab", nil)
	txt.SetCaret(1)
	txt.PushMode(scene.ModeEdit)
	var rec recording
	Frame(newTree(t, txt), cam(vector.Identity), &rec)

	if got := rec.names(); !reflect.DeepEqual(got, []string{"clear", "text", "stroke", "stroke"}) {
		t.Fatalf("ops = %v", got)
	}
	lh := txt.Layout().Metrics.LineHeight()
	if got := rec.ops[2].pts; !reflect.DeepEqual(got, []vector.Pt{{X: 12, Y: 5}, {X: 12, Y: 5 + lh}}) {
		t.Fatalf("caret at %v", got)
	}
}

func TestFrame_RotationIsNotRendered(t *testing.T) {
	r := scene.NewRect(vector.R(10, 10, 20, 20), vector.Fill{Color: vector.Red, Enabled: true}, vector.Stroke{})
	var plain recording
	Frame(newTree(t, r), cam(vector.Identity), &plain)

	turned := scene.NewRect(vector.R(10, 10, 20, 20), vector.Fill{Color: vector.Red, Enabled: true}, vector.Stroke{})
	turned.Rotation = 0.5
	var rec recording
	Frame(newTree(t, turned), cam(vector.Identity), &rec)

	if !reflect.DeepEqual(rec.ops, plain.ops) {
		t.Fatalf("rotation changed the output: %v vs %v", rec.ops, plain.ops)
	}
}

func TestFrame_CursorPaintedWithoutVertices(t *testing.T) {
	c := scene.NewCursor(4)
	c.CenterOn(vector.P(10, 10))
	var rec recording
	Frame(newTree(t, c), cam(vector.Identity), &rec)
	if len(rec.ops) != 2 || !reflect.DeepEqual(rec.ops[1].pts, vector.R(8, 8, 4, 4).Corners()) {
		t.Fatalf("ops = %+v", rec.ops)
	}
}
