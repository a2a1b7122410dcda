/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package tools implements the board's editing tools. A tool subscribes to
// the dispatcher while active and edits the scene through the tree API,
// recording every change in the undo history.
package tools

import (
	"log/slog"
	"time"

	"gowhiteboard/internal/input"
	"gowhiteboard/internal/scene"
	"gowhiteboard/internal/undo"
	"gowhiteboard/internal/vector"
	"gowhiteboard/internal/viewport"
)

// Tool is an input mode of the board.
type Tool interface {
	Name() string
	Activate(d *input.Dispatcher)
	Deactivate()
}

// Env is what tools share: the scene, the camera and the history.
type Env struct {
	Tree     *scene.Tree
	Viewport *viewport.Viewport
	History  *undo.Manager
	// HistoryKey selects the undo stack, normally the board id.
	HistoryKey string
	Log        *slog.Logger

	MinSpacing   float32
	Pen          vector.Stroke
	EraserSize   vector.Pt
	ZoomDuration time.Duration

	// Cursor is resized to the active tool's reach; optional.
	Cursor     *scene.Cursor
	CursorSize float32

	z int
}

// CursorSizer is implemented by tools whose pointer marker shows the area
// they act on.
type CursorSizer interface {
	CursorSize() vector.Pt
}

// NextZ hands out increasing z-orders so newer objects paint on top.
func (e *Env) NextZ() int {
	e.z++
	return e.z
}

func (e *Env) fitCursor(t Tool) {
	if e.Cursor == nil {
		return
	}
	size := vector.P(e.CursorSize, e.CursorSize)
	if cs, ok := t.(CursorSizer); ok {
		size = cs.CursorSize()
	}
	e.Cursor.Resize(size)
}

func (e *Env) onRoot(ev *input.PointerEvent) bool {
	return ev.Target != nil && ev.Target.ID() == e.Tree.Root().ID()
}

// subscriptions collects unsubscribe funcs so Deactivate can drop them at once.
type subscriptions []func()

func (s *subscriptions) add(fns ...func()) { *s = append(*s, fns...) }

func (s *subscriptions) release() {
	for _, off := range *s {
		off()
	}
	*s = nil
}
