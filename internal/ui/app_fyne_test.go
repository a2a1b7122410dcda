//go:build fyne

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// These tests validate the Fyne-based UI components. They are gated behind the
// "fyne" build tag so CI (which is headless) does not need Fyne or a display.
// To run locally:
//
//	go test -tags fyne ./internal/ui
//
// Ensure you have the Fyne dependencies installed and a working OS driver.
package ui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"

	"gowhiteboard/internal/config"
	applog "gowhiteboard/internal/log"
	"gowhiteboard/internal/scene"
	"gowhiteboard/internal/session"
	"gowhiteboard/internal/vector"
)

func newBoard(t *testing.T) (*BoardCanvas, *session.Session) {
	t.Helper()
	test.NewTempApp(t)
	cfg := config.Defaults()
	cfg.Board.CanvasWidth, cfg.Board.CanvasHeight = 800, 600
	s, err := session.Open(cfg, session.Deps{Logger: applog.Discard()})
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	t.Cleanup(s.Close)
	return NewBoardCanvas(s), s
}

func mouse(x, y float32) *desktop.MouseEvent {
	return &desktop.MouseEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)}, Button: desktop.MouseButtonPrimary}
}

func hasDrawing(s *session.Session) bool {
	_, ok := s.Tree().FindOfType(func(n scene.Node) bool { return n.Kind() == scene.KindDrawing })
	return ok
}

func TestBoardCanvas_Sizes(t *testing.T) {
	b, s := newBoard(t)
	if sz := b.PreferredSize(); sz.Width != 800 || sz.Height != 600 {
		t.Fatalf("unexpected PreferredSize: %v", sz)
	}
	b.Resize(fyne.NewSize(640, 480))
	if got := s.Viewport().CanvasSize(); got != vector.P(640, 480) {
		t.Fatalf("viewport canvas = %v, want 640x480", got)
	}
	img := b.paint(1280, 960)
	if r := img.Bounds(); r.Dx() != 640 || r.Dy() != 480 {
		t.Fatalf("paint should use the logical size, got %v", r)
	}
}

func TestBoardCanvas_DragDrawsAndCtrlZUndoes(t *testing.T) {
	b, s := newBoard(t)
	b.MouseDown(mouse(100, 100))
	b.MouseMoved(mouse(500, 500)) // ignored while pressed
	b.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(150, 100)}})
	b.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(200, 120)}})
	b.MouseUp(mouse(200, 120))
	b.DragEnd()
	if !hasDrawing(s) {
		t.Fatalf("expected a stroke after dragging")
	}

	b.KeyDown(&fyne.KeyEvent{Name: desktop.KeyControlLeft})
	b.KeyDown(&fyne.KeyEvent{Name: fyne.KeyZ})
	if hasDrawing(s) {
		t.Fatalf("ctrl+z should remove the stroke")
	}
	b.KeyUp(&fyne.KeyEvent{Name: desktop.KeyControlLeft})
	if b.mods.Ctrl {
		t.Fatalf("ctrl should be released")
	}
}

func TestBoardCanvas_HotkeySelectsTool(t *testing.T) {
	b, s := newBoard(t)
	b.KeyDown(&fyne.KeyEvent{Name: fyne.KeyE})
	if got := s.Toolbox().Active().Name(); got != "erase" {
		t.Fatalf("active tool = %q, want erase", got)
	}
}

func TestBoardCanvas_ScrollZooms(t *testing.T) {
	b, s := newBoard(t)
	before := s.Viewport().Zoom()
	b.Scrolled(&fyne.ScrollEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(10, 10)}, Scrolled: fyne.Delta{DY: 1}})
	if got := s.Viewport().Zoom(); got <= before {
		t.Fatalf("scrolling up should zoom in: %v -> %v", before, got)
	}
}

func TestKeyName(t *testing.T) {
	cases := map[fyne.KeyName]string{
		fyne.KeyEscape: "escape",
		fyne.KeyReturn: "enter",
		fyne.KeyEqual:  "=",
		fyne.KeyZ:      "Z",
		fyne.KeyLeft:   "left",
		fyne.KeyDown:   "down",
	}
	for in, want := range cases {
		if got := keyName(in); got != want {
			t.Errorf("keyName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestButtonOf(t *testing.T) {
	if buttonOf(desktop.MouseButtonSecondary) != 2 || buttonOf(desktop.MouseButtonPrimary) != 0 {
		t.Fatalf("unexpected button mapping")
	}
}

func TestBoardCanvas_MouseOutHidesCursor(t *testing.T) {
	b, s := newBoard(t)
	b.MouseIn(mouse(50, 50))
	if !s.Cursor().Visible {
		t.Fatalf("cursor should show once the pointer enters")
	}
	b.MouseOut()
	if s.Cursor().Visible {
		t.Fatalf("cursor should hide when the pointer leaves")
	}
	b.MouseMoved(mouse(60, 60))
	if !s.Cursor().Visible {
		t.Fatalf("cursor should show again on move")
	}
}

func TestBoardCanvas_TypesIntoTextBlock(t *testing.T) {
	b, s := newBoard(t)
	b.KeyDown(&fyne.KeyEvent{Name: fyne.KeyT})
	b.DoubleTapped(&fyne.PointEvent{Position: fyne.NewPos(100, 100)})
	for _, r := range "Hi d" {
		b.TypedRune(r)
	}
	// the matching KeyDown must not switch tools
	b.KeyDown(&fyne.KeyEvent{Name: fyne.KeyD})
	b.KeyDown(&fyne.KeyEvent{Name: fyne.KeyEscape})

	n, ok := s.Tree().FindOfType(func(n scene.Node) bool { return n.Kind() == scene.KindText })
	if !ok {
		t.Fatalf("expected a text block")
	}
	txt, _ := scene.As[*scene.Text](n)
	if txt.Content() != "Hi d" {
		t.Fatalf("content = %q", txt.Content())
	}
	if got := s.Toolbox().Active().Name(); got != "text" {
		t.Fatalf("active tool = %q, want text", got)
	}
}

func TestBoardCanvas_AnimateStopIsIdempotent(t *testing.T) {
	b, _ := newBoard(t)
	stop := b.Animate(nil)
	stop()
	stop()
}
