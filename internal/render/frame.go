/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package render paints the scene onto a Surface. It walks the tree bottom
// to top, maps world coordinates through the viewport transform and leaves
// the pixels to the Surface implementation.
package render

import (
	"image"

	"gowhiteboard/internal/scene"
	"gowhiteboard/internal/vector"
)

// Surface is a drawing target in render (canvas) coordinates.
type Surface interface {
	Clear(c vector.Color)
	FillPolygon(poly []vector.Pt, c vector.Color)
	StrokePolyline(pts []vector.Pt, s vector.Stroke)
	DrawText(pos vector.Pt, text string, c vector.Color)
	DrawImage(dst vector.Rect, img image.Image)
}

// Camera supplies the world to render transform.
type Camera interface {
	Transform() vector.Affine2D
}

var debugColor = vector.Color{R: 0, G: 160, B: 255, A: 255}

// Frame paints every visible node of tree in z-order.
func Frame(tree *scene.Tree, cam Camera, s Surface) { FrameWhere(tree, cam, s, nil) }

// FrameWhere is Frame limited to the nodes keep accepts. A nil keep paints all.
func FrameWhere(tree *scene.Tree, cam Camera, s Surface, keep func(scene.Node) bool) {
	m := cam.Transform()
	zoom := m.ScaleFactor()
	for n := range tree.Traverse() {
		base := n.Base()
		if !base.Visible || (keep != nil && !keep(n)) {
			continue
		}
		op := base.Opacity
		switch v := scene.Underlying(n).(type) {
		case *scene.Board:
			s.Clear(v.Background)
			drawGrid(s, m, v)
		case *scene.Rect:
			poly := m.ApplyAll(v.Vertices())
			if v.Fill.Enabled {
				s.FillPolygon(poly, v.Fill.Color.WithOpacity(op))
			}
			if v.Stroke.Enabled {
				st := v.Stroke
				st.Color = st.Color.WithOpacity(op)
				st.Width *= zoom
				s.StrokePolyline(append(poly, poly[0]), st)
			}
		case *scene.Drawing:
			st := v.Stroke
			st.Color = st.Color.WithOpacity(op)
			st.Width *= zoom
			origin := v.Position()
			for _, line := range v.Path().Strokes() {
				pts := make([]vector.Pt, len(line))
				for i, p := range line {
					pts[i] = m.Apply(p.Add(origin))
				}
				s.StrokePolyline(pts, st)
			}
		case *scene.Text:
			box := v.Layout()
			lh := box.Metrics.LineHeight()
			for i, line := range box.Lines {
				at := v.Position().Add(vector.P(0, float32(i)*lh))
				s.DrawText(m.Apply(at), line.Text, v.Color.WithOpacity(op))
			}
			if base.Mode() == scene.ModeEdit {
				top := v.CaretPos()
				caret := vector.Stroke{Color: v.Color.WithOpacity(op), Width: 1, Enabled: true}
				s.StrokePolyline([]vector.Pt{m.Apply(top), m.Apply(top.Add(vector.P(0, lh)))}, caret)
			}
		case *scene.Image:
			if v.Img != nil {
				r := v.Bounds()
				tl, br := m.Apply(r.Min()), m.Apply(r.Max())
				s.DrawImage(vector.R(tl.X, tl.Y, br.X-tl.X, br.Y-tl.Y), v.Img)
			}
		case *scene.Cursor:
			s.FillPolygon(m.ApplyAll(v.Bounds().Corners()), v.Color.WithOpacity(op))
		case *scene.Transform:
			if !v.Bounds().Empty() {
				outline(s, m, v.Bounds(), v.Stroke.Color.WithOpacity(op))
			}
		case *scene.Handle:
			s.FillPolygon(m.ApplyAll(v.Bounds().Corners()), v.Fill.WithOpacity(op))
			outline(s, m, v.Bounds(), v.Border.WithOpacity(op))
		}
		if mode := base.Mode(); mode == scene.ModeSelect || mode == scene.ModeEdit {
			outline(s, m, base.Bounds(), scene.SelectionColor)
		}
		if base.ShowDebug {
			drawDebug(s, m, n.Vertices())
		}
	}
}

// drawGrid rules the board every GridSize world units, starting at its top-left.
func drawGrid(s Surface, m vector.Affine2D, b *scene.Board) {
	step := b.GridSize
	if step <= 0 {
		return
	}
	r := b.Bounds()
	pen := vector.Stroke{Color: b.GridColor, Width: 1, Enabled: true}
	for x := r.X; x <= r.X+r.W; x += step {
		s.StrokePolyline([]vector.Pt{m.Apply(vector.P(x, r.Y)), m.Apply(vector.P(x, r.Y+r.H))}, pen)
	}
	for y := r.Y; y <= r.Y+r.H; y += step {
		s.StrokePolyline([]vector.Pt{m.Apply(vector.P(r.X, y)), m.Apply(vector.P(r.X+r.W, y))}, pen)
	}
}

// outline strokes r as a closed one-pixel border.
func outline(s Surface, m vector.Affine2D, r vector.Rect, c vector.Color) {
	poly := m.ApplyAll(r.Corners())
	s.StrokePolyline(append(poly, poly[0]), vector.Stroke{Color: c, Width: 1, Enabled: true})
}

// drawDebug outlines the collision polygon and marks each edge normal.
func drawDebug(s Surface, m vector.Affine2D, verts []vector.Pt) {
	if len(verts) == 0 {
		return
	}
	pen := vector.Stroke{Color: debugColor, Width: 1, Enabled: true}
	outline := m.ApplyAll(append(verts, verts[0]))
	s.StrokePolyline(outline, pen)
	for i, a := range verts {
		b := verts[(i+1)%len(verts)]
		mid := vector.Lerp(a, b, 0.5)
		normal := vector.VectorFrom(a, b).Perpendicular()
		s.StrokePolyline([]vector.Pt{m.Apply(mid), m.Apply(mid.Add(normal))}, pen)
	}
}
