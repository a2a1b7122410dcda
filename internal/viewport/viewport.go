/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package viewport maps world coordinates onto the canvas. It owns the pan
// position and zoom level, keeps both inside the world bounds and animates
// transitions one tick at a time.
package viewport

import (
	"log/slog"
	"time"

	applog "gowhiteboard/internal/log"
	"gowhiteboard/internal/vector"
)

const (
	DefaultWorldWidth  = 6912
	DefaultWorldHeight = 4468
	DefaultMaxZoom     = 2.25
	DefaultZoomStep    = 0.1
)

// Config describes the canvas and the world it looks at.
type Config struct {
	CanvasSize vector.Pt
	WorldSize  vector.Pt
	MaxZoom    float32
	ZoomStep   float32
	// Clock drives animations; time.Now when nil.
	Clock  func() time.Time
	Logger *slog.Logger
}

func (c *Config) withDefaults() {
	if c.WorldSize.X <= 0 || c.WorldSize.Y <= 0 {
		c.WorldSize = vector.P(DefaultWorldWidth, DefaultWorldHeight)
	}
	if c.MaxZoom <= 0 {
		c.MaxZoom = DefaultMaxZoom
	}
	if c.ZoomStep <= 0 {
		c.ZoomStep = DefaultZoomStep
	}
	if c.Clock == nil {
		c.Clock = time.Now
	}
	if c.Logger == nil {
		c.Logger = applog.WithComponent("viewport")
	}
}

type transition[T any] struct {
	start    time.Time
	duration time.Duration
	from, to T
}

// Viewport is the camera onto the board. It is not safe for concurrent use;
// all calls happen on the frame loop.
type Viewport struct {
	cfg  Config
	pos  vector.Pt
	zoom float32

	posAnim  *transition[vector.Pt]
	zoomAnim *transition[float32]
}

// New creates a viewport at the world origin with zoom 1, both clamped.
func New(cfg Config) *Viewport {
	cfg.withDefaults()
	v := &Viewport{cfg: cfg, zoom: 1}
	v.applyZoom(1)
	v.applyPosition(vector.Pt{})
	return v
}

// Bounds is the world rectangle in left/top/right/bottom form.
type Bounds struct {
	Left, Top, Right, Bottom float32
}

// WorldBounds is centred on the origin and spans the configured world size.
func (v *Viewport) WorldBounds() Bounds {
	w, h := v.cfg.WorldSize.X, v.cfg.WorldSize.Y
	return Bounds{Left: -w / 2, Top: -h / 2, Right: w / 2, Bottom: h / 2}
}

// WorldRect is WorldBounds as a rectangle.
func (v *Viewport) WorldRect() vector.Rect {
	b := v.WorldBounds()
	return vector.R(b.Left, b.Top, b.Right-b.Left, b.Bottom-b.Top)
}

func (v *Viewport) CanvasSize() vector.Pt { return v.cfg.CanvasSize }
func (v *Viewport) Position() vector.Pt   { return v.pos }
func (v *Viewport) Zoom() float32         { return v.zoom }
func (v *Viewport) ZoomStep() float32     { return v.cfg.ZoomStep }

// VisibleSize is the extent of world space that fits on the canvas.
func (v *Viewport) VisibleSize() vector.Pt {
	if v.zoom <= 0 {
		return v.cfg.CanvasSize
	}
	return v.cfg.CanvasSize.Div(v.zoom)
}

// VisibleRect is the world rectangle currently on screen.
func (v *Viewport) VisibleRect() vector.Rect { return v.pos.Rect(v.VisibleSize()) }

// MinZoom is the smallest zoom at which the visible area still fits the world.
func (v *Viewport) MinZoom() float32 {
	c, w := v.cfg.CanvasSize, v.cfg.WorldSize
	return max(c.X/w.X, c.Y/w.Y)
}

// ZoomRange returns the allowed zoom interval. A canvas larger than the world
// at maximum zoom collapses the range to the minimum.
func (v *Viewport) ZoomRange() (lo, hi float32) {
	lo, hi = v.MinZoom(), v.cfg.MaxZoom
	if lo > hi {
		hi = lo
	}
	return lo, hi
}

func (v *Viewport) clampZoom(z float32) float32 {
	lo, hi := v.ZoomRange()
	if lo <= 0 {
		lo = 1e-3
	}
	return vector.ClampF(z, lo, hi)
}

func (v *Viewport) clampPosition(p vector.Pt) vector.Pt {
	b := v.WorldBounds()
	vis := v.VisibleSize()
	return vector.Clamp(p, vector.P(b.Left, b.Top), vector.P(b.Right-vis.X, b.Bottom-vis.Y))
}

func (v *Viewport) applyPosition(p vector.Pt) {
	v.pos = v.clampPosition(p)
}

// applyZoom changes the zoom while the visible centre stays put.
func (v *Viewport) applyZoom(z float32) {
	centre := v.pos.Add(v.VisibleSize().Scale(0.5))
	v.zoom = v.clampZoom(z)
	v.applyPosition(centre.Sub(v.VisibleSize().Scale(0.5)))
}

// SetPosition moves the top-left of the visible area, clamped to the world.
// A running position animation is dropped.
func (v *Viewport) SetPosition(p vector.Pt) {
	v.posAnim = nil
	v.applyPosition(p)
}

// SetZoom clamps z into ZoomRange and keeps the visible centre fixed.
// A running zoom animation is dropped.
func (v *Viewport) SetZoom(z float32) {
	v.zoomAnim = nil
	if clamped := v.clampZoom(z); clamped != z {
		v.cfg.Logger.Debug("zoom clamped", slog.Any("requested", z), slog.Any("zoom", clamped))
	}
	v.applyZoom(z)
}

// SetCanvasSize reacts to a resized canvas.
func (v *Viewport) SetCanvasSize(sz vector.Pt) {
	v.cfg.CanvasSize = sz
	v.zoom = v.clampZoom(v.zoom)
	v.applyPosition(v.pos)
}

// PanBy shifts the view by a canvas-space delta.
func (v *Viewport) PanBy(renderDelta vector.Pt) {
	v.SetPosition(v.pos.Add(renderDelta.Div(v.zoom)))
}

// Transform maps world space to render space: scale(zoom) after translate(-pos).
func (v *Viewport) Transform() vector.Affine2D {
	return vector.Scale(v.zoom, v.zoom).Mul(vector.Translate(-v.pos.X, -v.pos.Y))
}

func (v *Viewport) WorldToRender(p vector.Pt) vector.Pt { return v.Transform().Apply(p) }

func (v *Viewport) RenderToWorld(p vector.Pt) vector.Pt {
	return p.Div(v.zoom).Add(v.pos)
}

// AnimateToPosition glides to target over d. It refuses while another
// position transition runs. A non-positive duration jumps immediately.
func (v *Viewport) AnimateToPosition(target vector.Pt, d time.Duration) bool {
	if v.posAnim != nil {
		return false
	}
	target = v.clampPosition(target)
	if d <= 0 {
		v.applyPosition(target)
		return true
	}
	v.posAnim = &transition[vector.Pt]{start: v.cfg.Clock(), duration: d, from: v.pos, to: target}
	return true
}

// AnimateZoom changes the zoom by delta over d, with the same rules as
// AnimateToPosition.
func (v *Viewport) AnimateZoom(delta float32, d time.Duration) bool {
	if v.zoomAnim != nil {
		v.cfg.Logger.Debug("zoom animation in flight, request ignored", slog.Any("delta", delta))
		return false
	}
	target := v.clampZoom(v.zoom + delta)
	if d <= 0 {
		v.applyZoom(target)
		return true
	}
	v.zoomAnim = &transition[float32]{start: v.cfg.Clock(), duration: d, from: v.zoom, to: target}
	return true
}

// Tick advances running transitions to the current clock time and reports
// whether any is still running. Finished transitions land exactly on target.
func (v *Viewport) Tick() bool {
	now := v.cfg.Clock()
	if a := v.zoomAnim; a != nil {
		t := progress(now, a.start, a.duration)
		if t >= 1 {
			v.applyZoom(a.to)
			v.zoomAnim = nil
		} else {
			v.applyZoom(vector.LerpF(a.from, a.to, t))
		}
	}
	if a := v.posAnim; a != nil {
		t := progress(now, a.start, a.duration)
		if t >= 1 {
			v.applyPosition(a.to)
			v.posAnim = nil
		} else {
			v.applyPosition(vector.Lerp(a.from, a.to, t))
		}
	}
	return v.Animating()
}

// Animating reports whether a position or zoom transition is in flight.
func (v *Viewport) Animating() bool { return v.posAnim != nil || v.zoomAnim != nil }

func progress(now, start time.Time, d time.Duration) float32 {
	return float32(now.Sub(start)) / float32(d)
}
