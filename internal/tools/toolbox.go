/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package tools

import (
	"fmt"
	"log/slog"

	"gowhiteboard/internal/input"
)

// Hotkeys bound by the toolbox. KeyDeselect is bound by the select tool
// while it is active.
const (
	KeyDraw     = "d"
	KeyErase    = "e"
	KeyPan      = "h"
	KeySelect   = "v"
	KeyText     = "t"
	KeyDeselect = "escape"
	KeyZoomIn   = "ctrl+="
	KeyZoomOut  = "ctrl+-"
	KeyUndo     = "ctrl+z"
	KeyRedo     = "ctrl+shift+z"
	KeyRedoAlt  = "ctrl+y"
)

// Toolbox owns the tools, keeps exactly one active and binds the global
// zoom and history shortcuts.
type Toolbox struct {
	env    *Env
	d      *input.Dispatcher
	tools  []Tool
	active Tool
	subs   subscriptions
}

// NewToolbox binds the shortcuts and activates the first tool.
func NewToolbox(env *Env, d *input.Dispatcher, tools ...Tool) *Toolbox {
	tb := &Toolbox{env: env, d: d, tools: tools}
	bindings := map[string]string{KeyDraw: "draw", KeyErase: "erase", KeyPan: "pan", KeySelect: "select", KeyText: "text"}
	for key, name := range bindings {
		tb.subs.add(d.OnHotkey(key, func(*input.KeyEvent) {
			if err := tb.Select(name); err != nil {
				env.Log.Debug("hotkey without tool", slog.String("key", key))
			}
		}))
	}
	tb.subs.add(
		d.OnHotkey(KeyZoomIn, func(*input.KeyEvent) { tb.ZoomBy(1) }),
		d.OnHotkey(KeyZoomOut, func(*input.KeyEvent) { tb.ZoomBy(-1) }),
		d.OnHotkey(KeyUndo, func(*input.KeyEvent) { tb.Undo() }),
		d.OnHotkey(KeyRedo, func(*input.KeyEvent) { tb.Redo() }),
		d.OnHotkey(KeyRedoAlt, func(*input.KeyEvent) { tb.Redo() }),
		d.On(input.Wheel, tb.wheel),
	)
	if len(tools) > 0 {
		tb.activate(tools[0])
	}
	return tb
}

// Active is the current tool, nil when the box is empty.
func (tb *Toolbox) Active() Tool { return tb.active }

func (tb *Toolbox) Tools() []Tool { return append([]Tool(nil), tb.tools...) }

// Select switches to the tool called name.
func (tb *Toolbox) Select(name string) error {
	for _, t := range tb.tools {
		if t.Name() == name {
			if tb.active != t {
				tb.activate(t)
			}
			return nil
		}
	}
	return fmt.Errorf("unknown tool %q", name)
}

func (tb *Toolbox) activate(t Tool) {
	if tb.active != nil {
		tb.active.Deactivate()
	}
	tb.active = t
	t.Activate(tb.d)
	tb.env.fitCursor(t)
	tb.env.Log.Debug("tool selected", slog.String("tool", t.Name()))
}

// ZoomBy animates the zoom by steps zoom increments.
func (tb *Toolbox) ZoomBy(steps int) bool {
	vp := tb.env.Viewport
	return vp.AnimateZoom(float32(steps)*vp.ZoomStep(), tb.env.ZoomDuration)
}

func (tb *Toolbox) wheel(e *input.PointerEvent) {
	vp := tb.env.Viewport
	switch {
	case e.Wheel.Y < 0:
		vp.SetZoom(vp.Zoom() + vp.ZoomStep())
	case e.Wheel.Y > 0:
		vp.SetZoom(vp.Zoom() - vp.ZoomStep())
	}
}

func (tb *Toolbox) Undo() bool {
	a, ok := tb.env.History.Undo(tb.env.HistoryKey)
	if ok {
		tb.env.Log.Debug("undo", slog.String("label", a.Label))
	}
	return ok
}

func (tb *Toolbox) Redo() bool {
	a, ok := tb.env.History.Redo(tb.env.HistoryKey)
	if ok {
		tb.env.Log.Debug("redo", slog.String("label", a.Label))
	}
	return ok
}

// Close deactivates the current tool and drops every binding.
func (tb *Toolbox) Close() {
	if tb.active != nil {
		tb.active.Deactivate()
		tb.active = nil
	}
	tb.subs.release()
}
