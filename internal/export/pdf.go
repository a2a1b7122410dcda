/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"gowhiteboard/internal/render"
	"gowhiteboard/internal/scene"
	"gowhiteboard/internal/vector"
	"gowhiteboard/internal/version"
)

// Text is set in built-in Helvetica so nothing has to be embedded. The size
// roughly matches the 7x13 raster face.
const (
	pdfFontSize = 11.0
	pdfAscent   = 10.0
)

// PDF writes a single page vector rendition of what cam sees to outPath.
// One canvas pixel maps to one point.
func PDF(outPath string, tree *scene.Tree, cam render.Camera, opt Options) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	pdf, err := buildPDF(tree, cam, opt)
	if err != nil {
		return err
	}
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// WritePDF is PDF into w.
func WritePDF(w io.Writer, tree *scene.Tree, cam render.Camera, opt Options) error {
	pdf, err := buildPDF(tree, cam, opt)
	if err != nil {
		return err
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func buildPDF(tree *scene.Tree, cam render.Camera, opt Options) (*gofpdf.Fpdf, error) {
	w, h, err := opt.outSize()
	if err != nil {
		return nil, err
	}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: float64(w), Ht: float64(h)},
	})
	pdf.SetTitle("Whiteboard", false)
	pdf.SetCreator(version.String(), false)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	pdf.SetLineCapStyle("round")
	pdf.SetLineJoinStyle("round")
	pdf.SetFont("Helvetica", "", pdfFontSize)

	s := &pdfSurface{pdf: pdf, w: float64(w), h: float64(h)}
	render.FrameWhere(tree, scaledCamera{cam, opt.scale()}, opt.surface(s), opt.keep)
	if pdf.Err() {
		return nil, fmt.Errorf("render pdf: %w", pdf.Error())
	}
	return pdf, nil
}

// pdfSurface maps the render primitives onto gofpdf paths.
type pdfSurface struct {
	pdf    *gofpdf.Fpdf
	w, h   float64
	images int
}

func (s *pdfSurface) fill(c vector.Color) {
	s.pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
	s.pdf.SetAlpha(float64(c.A)/255, "Normal")
}

func (s *pdfSurface) Clear(c vector.Color) {
	s.fill(c)
	s.pdf.Rect(0, 0, s.w, s.h, "F")
}

func (s *pdfSurface) FillPolygon(poly []vector.Pt, c vector.Color) {
	if len(poly) < 3 || c.A == 0 {
		return
	}
	s.fill(c)
	pts := make([]gofpdf.PointType, len(poly))
	for i, p := range poly {
		pts[i] = gofpdf.PointType{X: float64(p.X), Y: float64(p.Y)}
	}
	s.pdf.Polygon(pts, "F")
}

func (s *pdfSurface) StrokePolyline(pts []vector.Pt, st vector.Stroke) {
	if len(pts) == 0 || st.Width <= 0 || st.Color.A == 0 {
		return
	}
	if len(pts) == 1 {
		s.fill(st.Color)
		s.pdf.Circle(float64(pts[0].X), float64(pts[0].Y), float64(st.Width)/2, "F")
		return
	}
	s.pdf.SetDrawColor(int(st.Color.R), int(st.Color.G), int(st.Color.B))
	s.pdf.SetAlpha(float64(st.Color.A)/255, "Normal")
	s.pdf.SetLineWidth(float64(st.Width))
	s.pdf.MoveTo(float64(pts[0].X), float64(pts[0].Y))
	for _, p := range pts[1:] {
		s.pdf.LineTo(float64(p.X), float64(p.Y))
	}
	s.pdf.DrawPath("D")
}

func (s *pdfSurface) DrawText(pos vector.Pt, text string, c vector.Color) {
	s.pdf.SetTextColor(int(c.R), int(c.G), int(c.B))
	s.pdf.SetAlpha(float64(c.A)/255, "Normal")
	s.pdf.Text(float64(pos.X), float64(pos.Y)+pdfAscent, text)
}

// DrawImage embeds img as PNG. Every call registers a new image.
func (s *pdfSurface) DrawImage(dst vector.Rect, img image.Image) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		s.pdf.SetError(fmt.Errorf("encode image: %w", err))
		return
	}
	s.images++
	name := fmt.Sprintf("img%d", s.images)
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	s.pdf.SetAlpha(1, "Normal")
	s.pdf.RegisterImageOptionsReader(name, opts, &buf)
	s.pdf.ImageOptions(name, float64(dst.X), float64(dst.Y), float64(dst.W), float64(dst.H), false, opts, 0, "")
}
