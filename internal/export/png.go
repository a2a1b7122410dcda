/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export writes the visible part of a board to files.
package export

import (
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"gowhiteboard/internal/render"
	"gowhiteboard/internal/scene"
	"gowhiteboard/internal/vector"
)

// ErrEmptyCanvas is returned when the output would have no area.
var ErrEmptyCanvas = errors.New("export: empty canvas")

// Options controls both exporters.
// - Width, Height: size of the exported view in canvas pixels (points for PDF)
// - Scale: multiplies the output size; zero means 1
// - Background: replaces the board colour when its alpha is non-zero
// - IncludeCursor: paint the pointer marker too; selection outlines are never exported
type Options struct {
	Width, Height int
	Scale         float32
	Background    vector.Color
	IncludeCursor bool
}

func (o Options) scale() float32 {
	if o.Scale <= 0 {
		return 1
	}
	return o.Scale
}

func (o Options) outSize() (int, int, error) {
	s := o.scale()
	w, h := int(float32(o.Width)*s), int(float32(o.Height)*s)
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("%w: %dx%d", ErrEmptyCanvas, w, h)
	}
	return w, h, nil
}

func (o Options) keep(n scene.Node) bool {
	if n.Kind() == scene.KindCursor {
		return o.IncludeCursor
	}
	return !scene.IsChrome(n)
}

type scaledCamera struct {
	cam   render.Camera
	scale float32
}

func (c scaledCamera) Transform() vector.Affine2D {
	return vector.Scale(c.scale, c.scale).Mul(c.cam.Transform())
}

// backgroundSurface swaps the colour of Clear.
type backgroundSurface struct {
	render.Surface
	bg vector.Color
}

func (b backgroundSurface) Clear(vector.Color) { b.Surface.Clear(b.bg) }

func (o Options) surface(s render.Surface) render.Surface {
	if o.Background.A == 0 {
		return s
	}
	return backgroundSurface{Surface: s, bg: o.Background}
}

// PNG renders what cam sees of tree and encodes it to w.
func PNG(w io.Writer, tree *scene.Tree, cam render.Camera, opt Options) error {
	pw, ph, err := opt.outSize()
	if err != nil {
		return err
	}
	r := render.NewRaster(pw, ph)
	render.FrameWhere(tree, scaledCamera{cam, opt.scale()}, opt.surface(r), opt.keep)
	if err := png.Encode(w, r.Image()); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// WritePNG is PNG into a file, creating parent directories as needed.
func WritePNG(outPath string, tree *scene.Tree, cam render.Camera, opt Options) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	if err := PNG(f, tree, cam, opt); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close png: %w", err)
	}
	return nil
}
