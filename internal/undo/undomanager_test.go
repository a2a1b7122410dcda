/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package undo

import (
	"testing"
	"time"
)

// counter is a tiny document the actions mutate.
type counter struct{ v int }

func (c *counter) set(key, label string, from, to int, ts time.Time) Action {
	c.v = to
	return Action{Key: key, Label: label, TS: ts, Undo: func() { c.v = from }, Redo: func() { c.v = to }}
}

func TestUndoRedoBasic(t *testing.T) {
	m := NewManager(Config{MaxPerKey: 10, MinInterval: 10 * time.Millisecond})
	c := &counter{}
	t0 := time.Now()
	m.Push(c.set("b", "draw", 0, 1, t0))
	m.Push(c.set("b", "draw", 1, 2, t0.Add(20*time.Millisecond)))
	if keys, undoable, _ := m.Stats(); keys != 1 || undoable != 2 {
		t.Fatalf("expected 1 key and 2 actions, got keys=%d undoable=%d", keys, undoable)
	}
	if _, ok := m.Undo("b"); !ok || c.v != 1 {
		t.Fatalf("undo expected value 1, got ok=%v v=%d", ok, c.v)
	}
	if !m.CanRedo("b") {
		t.Fatalf("expected redo to be available")
	}
	if _, ok := m.Redo("b"); !ok || c.v != 2 {
		t.Fatalf("redo expected value 2, got ok=%v v=%d", ok, c.v)
	}
	if _, ok := m.Redo("b"); ok {
		t.Fatalf("redo stack should be empty")
	}
}

func TestCoalesceKeepsOldestUndoNewestRedo(t *testing.T) {
	m := NewManager(Config{MinInterval: 50 * time.Millisecond})
	c := &counter{}
	t0 := time.Now()
	m.Push(c.set("b", "erase", 0, 1, t0))
	m.Push(c.set("b", "erase", 1, 2, t0.Add(30*time.Millisecond)))
	// measured from the latest push, so a long stroke keeps merging
	m.Push(c.set("b", "erase", 2, 3, t0.Add(60*time.Millisecond)))
	if _, undoable, _ := m.Stats(); undoable != 1 {
		t.Fatalf("expected coalesced to 1 action, got %d", undoable)
	}
	m.Undo("b")
	if c.v != 0 {
		t.Fatalf("undo should restore the state before the burst, got %d", c.v)
	}
	m.Redo("b")
	if c.v != 3 {
		t.Fatalf("redo should restore the state after the burst, got %d", c.v)
	}
}

func TestNoCoalesceAcrossLabels(t *testing.T) {
	m := NewManager(Config{MinInterval: time.Second})
	c := &counter{}
	t0 := time.Now()
	m.Push(c.set("b", "draw", 0, 1, t0))
	m.Push(c.set("b", "erase", 1, 2, t0))
	if _, undoable, _ := m.Stats(); undoable != 2 {
		t.Fatalf("different labels must not merge, got %d", undoable)
	}
}

func TestPushClearsRedo(t *testing.T) {
	m := NewManager(Config{MinInterval: time.Millisecond})
	c := &counter{}
	t0 := time.Now()
	m.Push(c.set("b", "draw", 0, 1, t0))
	m.Undo("b")
	m.Push(c.set("b", "draw", 0, 5, t0.Add(time.Second)))
	if m.CanRedo("b") {
		t.Fatalf("a new action must invalidate redo")
	}
}

func TestCaps(t *testing.T) {
	m := NewManager(Config{MaxPerKey: 2, MinInterval: time.Millisecond})
	c := &counter{}
	for i := 0; i < 10; i++ {
		m.Push(c.set("b", "draw", i, i+1, time.Now().Add(time.Duration(i)*time.Second)))
	}
	if _, undoable, _ := m.Stats(); undoable != 2 {
		t.Fatalf("expected MaxPerKey cap to limit to 2, got %d", undoable)
	}
}

func TestGlobalPruneAcrossKeys(t *testing.T) {
	m := NewManager(Config{MaxTotal: 2, MinInterval: time.Millisecond})
	t0 := time.Now()
	m.Push(Action{Key: "one", Label: "x", TS: t0})
	m.Push(Action{Key: "two", Label: "x", TS: t0.Add(time.Second)})
	m.Push(Action{Key: "two", Label: "x", TS: t0.Add(2 * time.Second)})

	if _, ok := m.Undo("one"); ok {
		t.Fatalf("expected key one to have been pruned")
	}
	if _, ok := m.Undo("two"); !ok {
		t.Fatalf("expected key two to keep its actions")
	}
}

func TestClearAndStats(t *testing.T) {
	m := NewManager(Config{})
	m.Push(Action{Key: "b", Label: "x"})
	m.Clear("b")
	if keys, undoable, redoable := m.Stats(); keys+undoable+redoable != 0 {
		t.Fatalf("expected empty stats after clear, got %d %d %d", keys, undoable, redoable)
	}
	if m.CanUndo("b") {
		t.Fatalf("nothing to undo after clear")
	}
}
