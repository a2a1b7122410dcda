/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package scene holds the board's object hierarchy: the node contract every
// drawable satisfies, the concrete object kinds and the single-root tree.
package scene

import (
	"gowhiteboard/internal/vector"
)

// Node is the contract the engine needs from any drawable object.
// Concrete kinds embed *Object and override Vertices when their shape differs
// from the position/size rectangle.
type Node interface {
	ID() string
	Kind() string
	ZOrder() int
	SetZOrder(int)
	Position() vector.Pt
	SetPosition(vector.Pt)
	Size() vector.Pt
	SetSize(vector.Pt)
	// Vertices is the object's convex polygon in world space.
	Vertices() []vector.Pt
	Base() *Object
}

// Mode is an interaction state an object can be put into.
type Mode string

const (
	ModeView   Mode = "view"
	ModeEdit   Mode = "edit"
	ModeSelect Mode = "select"
)

// Object carries the data every scene node shares.
type Object struct {
	id     string
	kind   string
	pos    vector.Pt
	size   vector.Pt
	z      int
	parent string

	children []Node
	modes    []Mode

	// Rotation in radians. Stored only: neither rendering nor hit-testing reads it.
	Rotation float32
	Opacity  float32
	Visible  bool
	// ShowDebug makes renderers overlay vertices and edge normals.
	ShowDebug bool
}

// NewObject creates an object with a fresh id, full opacity and visible.
func NewObject(kind string) *Object {
	return &Object{id: NewID(), kind: kind, Opacity: 1, Visible: true}
}

func (o *Object) ID() string               { return o.id }
func (o *Object) Kind() string             { return o.kind }
func (o *Object) ZOrder() int              { return o.z }
func (o *Object) SetZOrder(z int)          { o.z = z }
func (o *Object) Position() vector.Pt      { return o.pos }
func (o *Object) SetPosition(p vector.Pt)  { o.pos = p }
func (o *Object) Size() vector.Pt          { return o.size }
func (o *Object) SetSize(s vector.Pt)      { o.size = s }
func (o *Object) Base() *Object            { return o }
func (o *Object) Bounds() vector.Rect      { return o.pos.Rect(o.size) }
func (o *Object) Vertices() []vector.Pt    { return o.Bounds().Corners() }
func (o *Object) ParentID() string         { return o.parent }

// Children returns a copy of the direct children in insertion order.
func (o *Object) Children() []Node { return append([]Node(nil), o.children...) }

// HasChildren reports whether the object is an inner node.
func (o *Object) HasChildren() bool { return len(o.children) > 0 }

// Mode is the most recently pushed mode, ModeView when none is set.
func (o *Object) Mode() Mode {
	if len(o.modes) == 0 {
		return ModeView
	}
	return o.modes[len(o.modes)-1]
}

// PushMode makes m the current mode.
func (o *Object) PushMode(m Mode) { o.modes = append(o.modes, m) }

// DropMode removes every occurrence of m.
func (o *Object) DropMode(m Mode) {
	kept := o.modes[:0]
	for _, x := range o.modes {
		if x != m {
			kept = append(kept, x)
		}
	}
	o.modes = kept
}

// Unwrapper is implemented by nodes that decorate another node with behavior.
type Unwrapper interface {
	Unwrap() Node
}

// Underlying strips behavior wrappers and returns the concrete node.
func Underlying(n Node) Node {
	for {
		u, ok := n.(Unwrapper)
		if !ok {
			return n
		}
		n = u.Unwrap()
	}
}

// As returns n's concrete value as T, looking through behavior wrappers.
func As[T Node](n Node) (T, bool) {
	t, ok := Underlying(n).(T)
	return t, ok
}
