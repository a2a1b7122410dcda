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

	"gowhiteboard/internal/input"
	"gowhiteboard/internal/scene"
	"gowhiteboard/internal/undo"
)

// Draw turns a left-button drag on the board into a freehand Drawing.
type Draw struct {
	env     *Env
	subs    subscriptions
	current *scene.Drawing
}

func NewDraw(env *Env) *Draw { return &Draw{env: env} }

func (t *Draw) Name() string { return "draw" }

func (t *Draw) Activate(d *input.Dispatcher) {
	t.subs.add(
		d.On(input.Down, t.down),
		d.On(input.Move, t.move),
		d.On(input.Up, t.up),
	)
}

func (t *Draw) Deactivate() {
	t.finish()
	t.subs.release()
}

// Drawing returns the stroke in progress, if any.
func (t *Draw) Drawing() *scene.Drawing { return t.current }

func (t *Draw) down(e *input.PointerEvent) {
	if e.Button != input.ButtonLeft || t.current != nil || !t.env.onRoot(e) {
		return
	}
	d := scene.NewDrawing(e.World, t.env.MinSpacing, t.env.Pen)
	d.SetZOrder(t.env.NextZ())
	if err := t.env.Tree.Add(d); err != nil {
		t.env.Log.Error("add drawing", slog.Any("err", err))
		return
	}
	d.AddPoint(e.World)
	t.current = d
}

func (t *Draw) move(e *input.PointerEvent) {
	if t.current == nil || !t.env.onRoot(e) {
		return
	}
	t.current.AddPoint(e.World)
}

// up accepts any target: the release may land outside the board.
func (t *Draw) up(e *input.PointerEvent) {
	if t.current == nil {
		return
	}
	t.current.AddPoint(e.World)
	t.finish()
}

func (t *Draw) finish() {
	d := t.current
	if d == nil {
		return
	}
	t.current = nil
	d.Fit()
	tree, log := t.env.Tree, t.env.Log
	t.env.History.Push(undo.Action{
		Key:   t.env.HistoryKey,
		Label: "draw " + d.ID(),
		Undo:  func() { tree.Remove(d) },
		Redo: func() {
			if err := tree.Add(d); err != nil {
				log.Error("redo draw", slog.String("id", d.ID()), slog.Any("err", err))
			}
		},
	})
	t.env.Log.Debug("stroke finished", slog.String("id", d.ID()), slog.Int("nodes", d.Path().Len()))
}
