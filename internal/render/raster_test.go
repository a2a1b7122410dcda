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
	"image/color"
	"image/draw"
	"testing"

	"gowhiteboard/internal/scene"
	"gowhiteboard/internal/vector"
)

var white = color.RGBA{255, 255, 255, 255}

func px(r *Raster, x, y int) color.RGBA { return r.Image().RGBAAt(x, y) }

func TestRaster_FillPolygon(t *testing.T) {
	r := NewRaster(20, 20)
	r.Clear(vector.White)
	r.FillPolygon(vector.R(5, 5, 10, 10).Corners(), vector.Black)

	if got := px(r, 10, 10); got != (color.RGBA{0, 0, 0, 255}) {
		t.Fatalf("inside pixel = %v", got)
	}
	if got := px(r, 2, 2); got != white {
		t.Fatalf("outside pixel = %v", got)
	}
}

func TestRaster_StrokePolyline(t *testing.T) {
	r := NewRaster(20, 20)
	r.Clear(vector.White)
	pen := vector.Stroke{Color: vector.Black, Width: 4, Enabled: true}
	r.StrokePolyline([]vector.Pt{{X: 2, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 18}}, pen)

	for _, p := range []image.Point{{6, 10}, {10, 10}, {10, 15}} {
		if got := px(r, p.X, p.Y); got == white {
			t.Fatalf("pixel %v not painted", p)
		}
	}
	if got := px(r, 16, 3); got != white {
		t.Fatalf("stray paint at (16,3): %v", got)
	}
}

func TestRaster_SinglePointIsDot(t *testing.T) {
	r := NewRaster(10, 10)
	r.Clear(vector.White)
	r.StrokePolyline([]vector.Pt{{X: 5, Y: 5}}, vector.Stroke{Color: vector.Black, Width: 4, Enabled: true})
	if px(r, 5, 5) == white {
		t.Fatal("dot missing")
	}
}

func TestRaster_TransparentIsNoop(t *testing.T) {
	r := NewRaster(10, 10)
	r.Clear(vector.White)
	r.FillPolygon(vector.R(0, 0, 10, 10).Corners(), vector.Transparent)
	r.StrokePolyline([]vector.Pt{{X: 0, Y: 5}, {X: 10, Y: 5}}, vector.Stroke{Color: vector.Black})
	if px(r, 5, 5) != white {
		t.Fatal("nothing should have been painted")
	}
}

func TestRaster_DrawImageScales(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	draw.Draw(src, src.Bounds(), image.NewUniform(color.RGBA{255, 0, 0, 255}), image.Point{}, draw.Src)

	r := NewRaster(20, 20)
	r.Clear(vector.White)
	r.DrawImage(vector.R(0, 0, 10, 10), src)

	if got := px(r, 5, 5); got.R < 200 || got.G > 50 {
		t.Fatalf("scaled pixel = %v", got)
	}
	if got := px(r, 15, 15); got != white {
		t.Fatalf("outside pixel = %v", got)
	}
}

func TestRaster_DrawText(t *testing.T) {
	r := NewRaster(30, 20)
	r.Clear(vector.White)
	r.DrawText(vector.P(2, 2), "X", vector.Black)

	painted := false
	for y := 2; y < 15 && !painted; y++ {
		for x := 2; x < 9; x++ {
			if px(r, x, y) != white {
				painted = true
				break
			}
		}
	}
	if !painted {
		t.Fatal("glyph not drawn")
	}
}

func TestRaster_FrameEndToEnd(t *testing.T) {
	board := scene.NewBoard(vector.R(0, 0, 40, 40))
	board.Background = vector.Color{R: 10, G: 20, B: 30, A: 255}
	tree := scene.NewTree(board)
	if err := tree.Add(scene.NewRect(vector.R(10, 10, 10, 10), vector.Fill{Color: vector.Black, Enabled: true}, vector.Stroke{})); err != nil {
		t.Fatal(err)
	}

	r := NewRaster(40, 40)
	Frame(tree, cam(vector.Identity), r)

	if got := px(r, 2, 2); got != (color.RGBA{10, 20, 30, 255}) {
		t.Fatalf("background = %v", got)
	}
	if got := px(r, 15, 15); got != (color.RGBA{0, 0, 0, 255}) {
		t.Fatalf("rect = %v", got)
	}
}

func TestRaster_Resize(t *testing.T) {
	r := NewRaster(10, 10)
	before := r.Image()
	r.Resize(10, 10)
	if r.Image() != before {
		t.Fatal("same size should keep the buffer")
	}
	r.Resize(30, 5)
	if b := r.Image().Bounds(); b.Dx() != 30 || b.Dy() != 5 {
		t.Fatalf("bounds %v", b)
	}
}
