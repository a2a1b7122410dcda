/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package input turns raw pointer and keyboard input into events routed
// through the scene: hit-testing, top-most-first delivery and stop-propagation.
package input

import (
	"gowhiteboard/internal/scene"
	"gowhiteboard/internal/vector"
)

// Kind names an event type.
type Kind string

const (
	Click        Kind = "click"
	DoubleClick  Kind = "dblclick"
	OutsideClick Kind = "outsideclick"
	Down         Kind = "down"
	Up           Kind = "up"
	Move         Kind = "move"
	Wheel        Kind = "wheel"
	KeyDown      Kind = "keydown"
	KeyUp        Kind = "keyup"
	KeyPress     Kind = "keypress"
	Hotkey       Kind = "hotkey"
)

// Button identifies a pointer button, numbered like DOM mouse buttons.
type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
)

// Modifiers is the keyboard modifier state at the time of an event.
type Modifiers struct {
	Alt, Ctrl, Meta, Shift bool
}

// RawPointer is a pointer event as reported by the windowing layer, in canvas pixels.
type RawPointer struct {
	Kind   Kind
	Button Button
	Canvas vector.Pt
	Wheel  vector.Pt
	Mods   Modifiers
}

// PointerEvent is what handlers see. One event value is built per target.
type PointerEvent struct {
	Kind   Kind
	Button Button
	Canvas vector.Pt
	World  vector.Pt
	Wheel  vector.Pt
	Mods   Modifiers
	Target scene.Node

	stopped bool
}

// StopPropagation keeps the event from reaching any further target or listener.
func (e *PointerEvent) StopPropagation() { e.stopped = true }

// Propagating reports whether StopPropagation has not been called.
func (e *PointerEvent) Propagating() bool { return !e.stopped }

// PointerHandler is implemented by nodes that react to events aimed at them.
// It runs before the listeners registered for the event kind.
type PointerHandler interface {
	HandlePointer(*PointerEvent)
}

// RawKey is a key press or release from the windowing layer. For KeyPress,
// Key holds the typed text with layout and shift already applied.
type RawKey struct {
	Kind Kind
	Key  string
	Mods Modifiers
}

// KeyEvent is delivered to key and hotkey listeners.
// Combo holds the normalized chord, e.g. "ctrl+shift+z".
type KeyEvent struct {
	Kind  Kind
	Key   string
	Mods  Modifiers
	Combo string

	stopped bool
}

func (e *KeyEvent) StopPropagation()  { e.stopped = true }
func (e *KeyEvent) Propagating() bool { return !e.stopped }
