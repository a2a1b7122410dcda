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

	"gowhiteboard/internal/collision"
	"gowhiteboard/internal/input"
	"gowhiteboard/internal/scene"
	"gowhiteboard/internal/undo"
	"gowhiteboard/internal/vector"
)

// DefaultEraserSize is the side of the square eraser in world units.
const DefaultEraserSize = 24

type drawingState struct {
	path *vector.Path
	pos  vector.Pt
}

func captureState(d *scene.Drawing) drawingState {
	return drawingState{path: d.Path().Clone(), pos: d.Position()}
}

func (s drawingState) apply(d *scene.Drawing) {
	d.SetPosition(s.pos)
	d.ReplacePath(s.path.Clone())
}

// Erase cuts a square out of every drawing it passes over. Drawings left
// without extent are removed when the button is released.
type Erase struct {
	env     *Env
	subs    subscriptions
	pressed bool
	strokes int
	err     error

	before map[string]drawingState
	order  []*scene.Drawing
}

func NewErase(env *Env) *Erase { return &Erase{env: env} }

func (t *Erase) Name() string { return "erase" }

func (t *Erase) Activate(d *input.Dispatcher) {
	t.subs.add(
		d.On(input.Down, t.down),
		d.On(input.Move, t.move),
		d.On(input.Up, t.up),
	)
}

func (t *Erase) Deactivate() {
	t.End()
	t.subs.release()
}

// Err is the error that aborted the last stroke, if any.
func (t *Erase) Err() error { return t.err }

// CursorSize matches the pointer marker to the eraser square.
func (t *Erase) CursorSize() vector.Pt { return t.size() }

func (t *Erase) size() vector.Pt {
	if t.env.EraserSize.X > 0 && t.env.EraserSize.Y > 0 {
		return t.env.EraserSize
	}
	return vector.P(DefaultEraserSize, DefaultEraserSize)
}

func (t *Erase) down(e *input.PointerEvent) {
	if e.Button != input.ButtonLeft || !t.env.onRoot(e) {
		return
	}
	t.Begin()
	_ = t.EraseAt(e.World)
}

func (t *Erase) move(e *input.PointerEvent) {
	if !t.pressed || !t.env.onRoot(e) {
		return
	}
	_ = t.EraseAt(e.World)
}

func (t *Erase) up(*input.PointerEvent) { t.End() }

// Begin starts an erase stroke.
func (t *Erase) Begin() {
	t.pressed = true
	t.err = nil
	t.before = map[string]drawingState{}
	t.order = nil
}

// EraseAt applies the eraser centred on world to every drawing it touches.
// A clip failure is logged, ends the stroke and is returned.
func (t *Erase) EraseAt(world vector.Pt) error {
	if !t.pressed {
		return nil
	}
	probe := collision.NewProbe(world, t.size())
	area := probe.Rect()
	for _, n := range t.env.Tree.FindAllOfType(isDrawing) {
		d, _ := scene.As[*scene.Drawing](n)
		if !collision.Check(probe, d) {
			continue
		}
		if _, seen := t.before[d.ID()]; !seen {
			t.before[d.ID()] = captureState(d)
			t.order = append(t.order, d)
		}
		next, err := d.Path().Remove(area.Min().Sub(d.Position()), area.Size())
		if err != nil {
			t.err = fmt.Errorf("erase %s: %w", d.ID(), err)
			t.env.Log.Error("erase aborted", slog.Any("err", t.err))
			t.End()
			return t.err
		}
		d.ReplacePath(next)
	}
	return nil
}

// End closes the stroke: empty drawings leave the tree and the whole stroke
// becomes one undo entry.
func (t *Erase) End() {
	if !t.pressed {
		return
	}
	t.pressed = false
	if len(t.order) == 0 {
		return
	}
	tree, log := t.env.Tree, t.env.Log
	touched := t.order
	before := t.before
	after := make(map[string]drawingState, len(touched))
	var removed []*scene.Drawing
	for _, d := range touched {
		after[d.ID()] = captureState(d)
		if d.Empty() {
			tree.Remove(d)
			removed = append(removed, d)
		}
	}
	t.strokes++
	t.env.History.Push(undo.Action{
		Key:   t.env.HistoryKey,
		Label: fmt.Sprintf("erase #%d", t.strokes),
		Undo: func() {
			for _, d := range touched {
				before[d.ID()].apply(d)
			}
			for _, d := range removed {
				if err := tree.Add(d); err != nil {
					log.Error("undo erase", slog.String("id", d.ID()), slog.Any("err", err))
				}
			}
		},
		Redo: func() {
			for _, d := range touched {
				after[d.ID()].apply(d)
			}
			for _, d := range removed {
				tree.Remove(d)
			}
		},
	})
	t.env.Log.Debug("erase stroke", slog.Int("touched", len(touched)), slog.Int("removed", len(removed)))
	t.before, t.order = nil, nil
}

func isDrawing(n scene.Node) bool {
	_, ok := scene.As[*scene.Drawing](n)
	return ok
}
