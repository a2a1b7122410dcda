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
	"image/draw"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	xvector "golang.org/x/image/vector"

	"gowhiteboard/internal/textlayout"
	"gowhiteboard/internal/vector"
)

// Raster is a Surface backed by an in-memory RGBA image.
type Raster struct {
	img  *image.RGBA
	text textlayout.Provider
}

// NewRaster allocates a w x h surface. Text uses the basic 7x13 face.
func NewRaster(w, h int) *Raster {
	return &Raster{img: image.NewRGBA(image.Rect(0, 0, w, h)), text: textlayout.BasicProvider{}}
}

// WithText swaps the face provider used by DrawText.
func (r *Raster) WithText(p textlayout.Provider) *Raster {
	if p != nil {
		r.text = p
	}
	return r
}

func (r *Raster) Image() *image.RGBA { return r.img }

// Resize reallocates the backing image when the size changed.
func (r *Raster) Resize(w, h int) {
	if b := r.img.Bounds(); b.Dx() == w && b.Dy() == h {
		return
	}
	r.img = image.NewRGBA(image.Rect(0, 0, w, h))
}

func (r *Raster) Clear(c vector.Color) {
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(c.NRGBA()), image.Point{}, draw.Src)
}

func (r *Raster) FillPolygon(poly []vector.Pt, c vector.Color) {
	if len(poly) < 3 || c.A == 0 {
		return
	}
	b := r.img.Bounds()
	z := xvector.NewRasterizer(b.Dx(), b.Dy())
	z.MoveTo(poly[0].X, poly[0].Y)
	for _, p := range poly[1:] {
		z.LineTo(p.X, p.Y)
	}
	z.ClosePath()
	z.Draw(r.img, b, image.NewUniform(c.NRGBA()), image.Point{})
}

// StrokePolyline draws each segment as a quad and squares off the joints.
// A single point becomes a dot of the pen width.
func (r *Raster) StrokePolyline(pts []vector.Pt, s vector.Stroke) {
	if len(pts) == 0 || s.Width <= 0 || s.Color.A == 0 {
		return
	}
	b := r.img.Bounds()
	z := xvector.NewRasterizer(b.Dx(), b.Dy())
	hw := s.Width / 2
	dot := func(p vector.Pt) {
		z.MoveTo(p.X-hw, p.Y-hw)
		z.LineTo(p.X+hw, p.Y-hw)
		z.LineTo(p.X+hw, p.Y+hw)
		z.LineTo(p.X-hw, p.Y+hw)
		z.ClosePath()
	}
	for i := 0; i+1 < len(pts); i++ {
		a, c := pts[i], pts[i+1]
		d := vector.VectorFrom(a, c)
		l := d.Magnitude()
		if l == 0 {
			continue
		}
		n := vector.P(-d.Y/l*hw, d.X/l*hw)
		z.MoveTo(a.X-n.X, a.Y-n.Y)
		z.LineTo(c.X-n.X, c.Y-n.Y)
		z.LineTo(c.X+n.X, c.Y+n.Y)
		z.LineTo(a.X+n.X, a.Y+n.Y)
		z.ClosePath()
	}
	// same winding as the quads, or the overlap cancels out
	for _, p := range pts {
		dot(p)
	}
	z.Draw(r.img, b, image.NewUniform(s.Color.NRGBA()), image.Point{})
}

// DrawText draws one line with its top-left corner at pos.
func (r *Raster) DrawText(pos vector.Pt, text string, c vector.Color) {
	face, met := r.text.Face()
	d := &font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(c.NRGBA()),
		Face: face,
		Dot:  fixed.P(int(pos.X), int(pos.Y+met.Ascent)),
	}
	d.DrawString(text)
}

// DrawImage scales img into dst.
func (r *Raster) DrawImage(dst vector.Rect, img image.Image) {
	rect := image.Rect(int(dst.X), int(dst.Y), int(dst.X+dst.W), int(dst.Y+dst.H))
	if rect.Empty() {
		return
	}
	xdraw.ApproxBiLinear.Scale(r.img, rect, img, img.Bounds(), xdraw.Over, nil)
}
