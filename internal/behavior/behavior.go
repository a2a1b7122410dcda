/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package behavior holds reusable reactions to pointer input: dragging
// a node, panning the viewport and following the pointer. Each is a plain
// function over explicit state so any node or tool can compose it.
package behavior

import (
	"slices"

	"gowhiteboard/internal/input"
	"gowhiteboard/internal/scene"
	"gowhiteboard/internal/vector"
)

// DragState tracks one drag gesture.
type DragState struct {
	Dragging bool
	// Offset is the pointer position relative to the node's top-left at grab time.
	Offset vector.Pt
	Button input.Button
}

// HandleDrag moves n with the pointer between a left-button down on n and
// the next up. Events that belong to the gesture stop propagating.
func HandleDrag(n scene.Node, s *DragState, e *input.PointerEvent) {
	switch e.Kind {
	case input.Down:
		if e.Button != input.ButtonLeft || e.Target == nil || e.Target.ID() != n.ID() {
			return
		}
		s.Dragging = true
		s.Button = e.Button
		s.Offset = e.World.Sub(n.Position())
		e.StopPropagation()
	case input.Move:
		if !s.Dragging {
			return
		}
		n.SetPosition(e.World.Sub(s.Offset))
		e.StopPropagation()
	case input.Up:
		if !s.Dragging {
			return
		}
		s.Dragging = false
		e.StopPropagation()
	}
}

// Draggable decorates a node so the dispatcher can drag it.
type Draggable struct {
	scene.Node
	State DragState
}

func NewDraggable(n scene.Node) *Draggable { return &Draggable{Node: n} }

func (d *Draggable) Unwrap() scene.Node { return d.Node }

func (d *Draggable) HandlePointer(e *input.PointerEvent) {
	HandleDrag(d, &d.State, e)
	if inner, ok := d.Node.(input.PointerHandler); ok && e.Propagating() {
		inner.HandlePointer(e)
	}
}

// Panner is the part of the viewport panning needs.
type Panner interface {
	PanBy(renderDelta vector.Pt)
}

// PanState tracks one pan gesture in canvas pixels.
type PanState struct {
	Active bool
	Last   vector.Pt
}

// HandlePan scrolls vp while one of buttons is held. With no buttons given
// the middle button pans.
func HandlePan(vp Panner, s *PanState, e *input.PointerEvent, buttons ...input.Button) {
	if len(buttons) == 0 {
		buttons = []input.Button{input.ButtonMiddle}
	}
	switch e.Kind {
	case input.Down:
		if !slices.Contains(buttons, e.Button) {
			return
		}
		s.Active = true
		s.Last = e.Canvas
		e.StopPropagation()
	case input.Move:
		if !s.Active {
			return
		}
		vp.PanBy(s.Last.Sub(e.Canvas))
		s.Last = e.Canvas
		e.StopPropagation()
	case input.Up:
		if s.Active {
			s.Active = false
			e.StopPropagation()
		}
	}
}

// FollowPointer centres n on the pointer's world position on every move.
func FollowPointer(n scene.Node, e *input.PointerEvent) {
	if e.Kind != input.Move {
		return
	}
	n.SetPosition(e.World.Sub(n.Size().Scale(0.5)))
}

// Follower decorates a node, typically the cursor, so it tracks the pointer.
type Follower struct {
	scene.Node
}

func (f Follower) Unwrap() scene.Node { return f.Node }

func (f Follower) HandlePointer(e *input.PointerEvent) { FollowPointer(f.Node, e) }
