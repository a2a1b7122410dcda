/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package tools

import (
	"log/slog"

	"gowhiteboard/internal/behavior"
	"gowhiteboard/internal/input"
	"gowhiteboard/internal/scene"
	"gowhiteboard/internal/undo"
	"gowhiteboard/internal/vector"
)

// Select picks the top-most object under the pointer and drags it. The pick
// stays outlined until the board is pressed or KeyDeselect is hit.
type Select struct {
	env  *Env
	subs subscriptions

	drag behavior.DragState
	held scene.Node
	from vector.Pt

	selected scene.Node
	control  *scene.Transform
}

func NewSelect(env *Env) *Select { return &Select{env: env} }

func (t *Select) Name() string { return "select" }

func (t *Select) Activate(d *input.Dispatcher) {
	t.subs.add(
		d.On(input.Down, t.down),
		d.On(input.Move, t.move),
		d.On(input.Up, t.up),
		d.OnHotkey(KeyDeselect, func(*input.KeyEvent) { t.Clear() }),
	)
}

func (t *Select) Deactivate() {
	t.held = nil
	t.drag = behavior.DragState{}
	t.Clear()
	t.subs.release()
}

// Selected is the picked object, nil when nothing is selected.
func (t *Select) Selected() scene.Node { return t.selected }

// Control is the outline around the selection, nil when nothing is selected.
func (t *Select) Control() *scene.Transform { return t.control }

// Pick makes n the selection and outlines it.
func (t *Select) Pick(n scene.Node) {
	if t.selected != nil && t.selected.ID() == n.ID() {
		t.refit()
		return
	}
	t.Clear()
	n.Base().PushMode(scene.ModeSelect)
	t.selected = n

	ctl := scene.NewTransform()
	if err := t.env.Tree.Add(ctl); err != nil {
		t.env.Log.Error("add selection outline", slog.Any("err", err))
		return
	}
	for range 4 {
		if err := t.env.Tree.AddTo(ctl, scene.NewHandle()); err != nil {
			t.env.Log.Error("add selection handle", slog.Any("err", err))
		}
	}
	ctl.Fit(n)
	t.control = ctl
	t.env.Log.Debug("selected", slog.String("id", n.ID()), slog.String("kind", n.Kind()))
}

// Clear drops the selection and removes its outline.
func (t *Select) Clear() {
	if t.selected != nil {
		t.selected.Base().DropMode(scene.ModeSelect)
		t.selected = nil
	}
	if t.control != nil {
		t.env.Tree.Remove(t.control)
		t.control = nil
	}
}

func (t *Select) refit() {
	if t.control != nil {
		t.control.Refit()
	}
}

func (t *Select) down(e *input.PointerEvent) {
	if e.Button != input.ButtonLeft || e.Target == nil {
		return
	}
	if t.env.onRoot(e) {
		t.Clear()
		return
	}
	n := e.Target
	if scene.IsChrome(n) {
		return
	}
	t.Pick(n)
	behavior.HandleDrag(n, &t.drag, e)
	if t.drag.Dragging {
		t.held = n
		t.from = n.Position()
	}
}

// move waits for the board so nodes above it, the cursor included, see the move first.
func (t *Select) move(e *input.PointerEvent) {
	if t.held == nil || !t.env.onRoot(e) {
		return
	}
	behavior.HandleDrag(t.held, &t.drag, e)
	t.refit()
}

func (t *Select) up(e *input.PointerEvent) {
	n := t.held
	if n == nil {
		return
	}
	behavior.HandleDrag(n, &t.drag, e)
	t.held = nil
	from, to := t.from, n.Position()
	if from == to {
		return
	}
	t.env.History.Push(undo.Action{
		Key:   t.env.HistoryKey,
		Label: "move " + n.ID(),
		Undo: func() {
			n.SetPosition(from)
			t.refit()
		},
		Redo: func() {
			n.SetPosition(to)
			t.refit()
		},
	})
}
