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
	"strings"
	"unicode"

	"gowhiteboard/internal/input"
	"gowhiteboard/internal/scene"
	"gowhiteboard/internal/undo"
	"gowhiteboard/internal/vector"
)

// Text writes on the board. A double click on the board starts a new block,
// a double click on a block continues it. Typed text goes to the block until
// escape, enter or a click elsewhere ends the edit.
type Text struct {
	env  *Env
	subs subscriptions

	editing *scene.Text
	before  string
	created bool
}

func NewText(env *Env) *Text { return &Text{env: env} }

func (t *Text) Name() string { return "text" }

func (t *Text) Activate(d *input.Dispatcher) {
	t.subs.add(
		d.On(input.DoubleClick, t.doubleClick),
		d.On(input.OutsideClick, t.outside),
		d.OnKey(input.KeyDown, t.keyDown),
		d.OnKey(input.KeyPress, t.keyPress),
	)
}

func (t *Text) Deactivate() {
	t.Finish()
	t.subs.release()
}

// Editing is the block receiving keys, nil when none.
func (t *Text) Editing() *scene.Text { return t.editing }

// Start places an empty block at world and begins editing it.
func (t *Text) Start(world vector.Pt) (*scene.Text, error) {
	txt := scene.NewText(world, "", nil)
	txt.Color = t.env.Pen.Color
	txt.SetZOrder(t.env.NextZ())
	if err := t.env.Tree.Add(txt); err != nil {
		return nil, err
	}
	t.Edit(txt)
	t.created = true
	return txt, nil
}

// Edit puts txt into edit mode with the caret at its end.
func (t *Text) Edit(txt *scene.Text) {
	if t.editing == txt {
		return
	}
	t.Finish()
	txt.PushMode(scene.ModeEdit)
	txt.SetCaret(len([]rune(txt.Content())))
	t.editing, t.before, t.created = txt, txt.Content(), false
}

// Finish leaves edit mode. A block left empty is removed; any other change
// becomes one undo entry.
func (t *Text) Finish() {
	txt := t.editing
	if txt == nil {
		return
	}
	t.editing = nil
	txt.DropMode(scene.ModeEdit)
	tree, log := t.env.Tree, t.env.Log
	before, after, created := t.before, txt.Content(), t.created
	t.created = false

	restore := func() {
		if err := tree.Add(txt); err != nil {
			log.Error("restore text", slog.String("id", txt.ID()), slog.Any("err", err))
		}
	}
	var a undo.Action
	switch {
	case after == "":
		tree.Remove(txt)
		if created {
			return
		}
		a = undo.Action{Label: "delete text " + txt.ID(),
			Undo: func() {
				txt.SetContent(before)
				restore()
			},
			Redo: func() { tree.Remove(txt) },
		}
	case created:
		a = undo.Action{Label: "text " + txt.ID(), Undo: func() { tree.Remove(txt) }, Redo: restore}
	case before != after:
		a = undo.Action{Label: "edit text " + txt.ID(),
			Undo: func() { txt.SetContent(before) },
			Redo: func() { txt.SetContent(after) },
		}
	default:
		return
	}
	a.Key = t.env.HistoryKey
	t.env.History.Push(a)
	log.Debug("text finished", slog.String("id", txt.ID()), slog.Int("runes", len([]rune(after))))
}

func (t *Text) doubleClick(e *input.PointerEvent) {
	if e.Button != input.ButtonLeft || e.Target == nil {
		return
	}
	if txt, ok := scene.As[*scene.Text](e.Target); ok {
		t.Edit(txt)
		e.StopPropagation()
		return
	}
	if !t.env.onRoot(e) {
		return
	}
	t.Finish()
	if _, err := t.Start(e.World); err != nil {
		t.env.Log.Error("add text", slog.Any("err", err))
		return
	}
	e.StopPropagation()
}

// outside ends the edit once a click misses the block being edited.
func (t *Text) outside(e *input.PointerEvent) {
	if t.editing != nil && e.Target != nil && e.Target.ID() == t.editing.ID() {
		t.Finish()
	}
}

// keyDown handles editing keys and swallows the rest so single-letter tool
// hotkeys do not fire while typing. Chords end the edit and pass through.
func (t *Text) keyDown(e *input.KeyEvent) {
	txt := t.editing
	if txt == nil {
		return
	}
	if e.Mods.Ctrl || e.Mods.Meta || e.Mods.Alt {
		t.Finish()
		return
	}
	e.StopPropagation()
	switch strings.ToLower(e.Key) {
	case "escape":
		t.Finish()
	case "enter", "return":
		if e.Mods.Shift {
			txt.Insert("\n")
			return
		}
		t.Finish()
	case "backspace", "delete":
		txt.DeleteBack()
	case "left":
		txt.SetCaret(txt.Caret() - 1)
	case "right":
		txt.SetCaret(txt.Caret() + 1)
	case "up":
		txt.MoveCaretLine(-1)
	case "down":
		txt.MoveCaretLine(1)
	}
}

func (t *Text) keyPress(e *input.KeyEvent) {
	if t.editing == nil || e.Key == "" {
		return
	}
	if strings.IndexFunc(e.Key, func(r rune) bool { return !unicode.IsPrint(r) }) >= 0 {
		return
	}
	t.editing.Insert(e.Key)
	e.StopPropagation()
}
