/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package input

import (
	"log/slog"
	"slices"

	"gowhiteboard/internal/collision"
	applog "gowhiteboard/internal/log"
	"gowhiteboard/internal/scene"
	"gowhiteboard/internal/vector"
)

// CoordMapper converts canvas pixels into world coordinates.
type CoordMapper interface {
	RenderToWorld(vector.Pt) vector.Pt
}

type (
	PointerListener func(*PointerEvent)
	KeyListener     func(*KeyEvent)
)

type entry[F any] struct {
	id int
	fn F
}

// Dispatcher routes input to scene nodes and registered listeners.
// It is driven from the frame loop and is not safe for concurrent use.
type Dispatcher struct {
	tree   *scene.Tree
	mapper CoordMapper
	probe  vector.Pt
	log    *slog.Logger

	nextID  int
	pointer map[Kind][]entry[PointerListener]
	keys    map[Kind][]entry[KeyListener]
	hotkeys map[string][]entry[KeyListener]
}

// Option customizes a Dispatcher.
type Option func(*Dispatcher)

// WithProbeSize sets the hit-test square; zero means 1x1.
func WithProbeSize(sz vector.Pt) Option { return func(d *Dispatcher) { d.probe = sz } }

func WithLogger(l *slog.Logger) Option { return func(d *Dispatcher) { d.log = l } }

func NewDispatcher(tree *scene.Tree, mapper CoordMapper, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		tree:    tree,
		mapper:  mapper,
		pointer: map[Kind][]entry[PointerListener]{},
		keys:    map[Kind][]entry[KeyListener]{},
		hotkeys: map[string][]entry[KeyListener]{},
	}
	for _, o := range opts {
		o(d)
	}
	if d.log == nil {
		d.log = applog.WithComponent("input")
	}
	return d
}

// On registers fn for pointer events of kind. The returned func unsubscribes.
func (d *Dispatcher) On(kind Kind, fn PointerListener) func() {
	id := d.id()
	d.pointer[kind] = append(d.pointer[kind], entry[PointerListener]{id, fn})
	return func() { d.pointer[kind] = without(d.pointer[kind], id) }
}

// OnKey registers fn for KeyDown, KeyUp or KeyPress.
func (d *Dispatcher) OnKey(kind Kind, fn KeyListener) func() {
	id := d.id()
	d.keys[kind] = append(d.keys[kind], entry[KeyListener]{id, fn})
	return func() { d.keys[kind] = without(d.keys[kind], id) }
}

// OnHotkey registers fn for a chord like "ctrl+z". See ParseCombo.
func (d *Dispatcher) OnHotkey(combo string, fn KeyListener) func() {
	c := ParseCombo(combo)
	id := d.id()
	d.hotkeys[c] = append(d.hotkeys[c], entry[KeyListener]{id, fn})
	return func() { d.hotkeys[c] = without(d.hotkeys[c], id) }
}

func (d *Dispatcher) id() int {
	d.nextID++
	return d.nextID
}

func without[F any](es []entry[F], id int) []entry[F] {
	return slices.DeleteFunc(slices.Clone(es), func(e entry[F]) bool { return e.id == id })
}

// Probe returns the hit-test shape for a world position.
func (d *Dispatcher) Probe(world vector.Pt) collision.Probe {
	return collision.NewProbe(world, d.probe)
}

// HitChain lists the nodes under world position, top-most first.
func (d *Dispatcher) HitChain(world vector.Pt) []scene.Node {
	hits, _ := d.partition(world)
	return hits
}

// partition splits the traversal into nodes under the probe and the rest,
// both reversed so the last painted node comes first.
func (d *Dispatcher) partition(world vector.Pt) (hits, misses []scene.Node) {
	probe := d.Probe(world)
	for n := range d.tree.Traverse() {
		if collision.Check(probe, n) {
			hits = append(hits, n)
		} else {
			misses = append(misses, n)
		}
	}
	slices.Reverse(hits)
	slices.Reverse(misses)
	return hits, misses
}

// HandlePointer resolves the targets for raw and delivers the event to each
// in turn until one stops propagation. Move events reach every node; wheel
// events go to listeners only.
func (d *Dispatcher) HandlePointer(raw RawPointer) {
	world := d.mapper.RenderToWorld(raw.Canvas)
	base := PointerEvent{Kind: raw.Kind, Button: raw.Button, Canvas: raw.Canvas, World: world, Wheel: raw.Wheel, Mods: raw.Mods}

	switch raw.Kind {
	case Move:
		var all []scene.Node
		for n := range d.tree.Traverse() {
			all = append(all, n)
		}
		slices.Reverse(all)
		d.deliver(base, all)
	case Wheel:
		ev := base
		ev.Target = d.tree.Root()
		d.notify(&ev)
	case Click:
		hits, misses := d.partition(world)
		d.log.Debug("click", slog.Any("world", world), slog.Int("hits", len(hits)))
		d.deliver(base, hits)
		outside := base
		outside.Kind = OutsideClick
		d.deliver(outside, misses)
	case DoubleClick, Down, Up:
		hits := d.HitChain(world)
		d.log.Debug(string(raw.Kind), slog.Any("world", world), slog.Int("hits", len(hits)))
		d.deliver(base, hits)
	default:
		d.log.Warn("unsupported pointer event", slog.String("kind", string(raw.Kind)))
	}
}

func (d *Dispatcher) deliver(base PointerEvent, chain []scene.Node) {
	for _, n := range chain {
		ev := base
		ev.Target = n
		if h, ok := n.(PointerHandler); ok {
			h.HandlePointer(&ev)
		}
		if ev.Propagating() {
			d.notify(&ev)
		}
		if !ev.Propagating() {
			return
		}
	}
}

func (d *Dispatcher) notify(ev *PointerEvent) {
	for _, e := range d.pointer[ev.Kind] {
		if !ev.Propagating() {
			return
		}
		e.fn(ev)
	}
}

// HandleKey delivers key events and, on key down, any matching hotkey.
func (d *Dispatcher) HandleKey(raw RawKey) {
	ev := &KeyEvent{Kind: raw.Kind, Key: raw.Key, Mods: raw.Mods, Combo: Combo(raw.Key, raw.Mods)}
	for _, e := range d.keys[raw.Kind] {
		if !ev.Propagating() {
			return
		}
		e.fn(ev)
	}
	if raw.Kind != KeyDown || !ev.Propagating() {
		return
	}
	listeners := d.hotkeys[ev.Combo]
	if len(listeners) == 0 {
		return
	}
	d.log.Debug("hotkey", slog.String("combo", ev.Combo))
	hk := &KeyEvent{Kind: Hotkey, Key: ev.Key, Mods: ev.Mods, Combo: ev.Combo}
	for _, e := range listeners {
		if !hk.Propagating() {
			return
		}
		e.fn(hk)
	}
}
