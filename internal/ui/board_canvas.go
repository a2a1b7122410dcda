//go:build fyne

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"image"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"gowhiteboard/internal/input"
	"gowhiteboard/internal/render"
	"gowhiteboard/internal/session"
	"gowhiteboard/internal/vector"
)

var minCanvasSize = fyne.NewSize(320, 240)

const frameInterval = time.Second / 60

// BoardCanvas hosts a session: it paints the board into a raster and turns
// Fyne pointer and key callbacks into board input.
type BoardCanvas struct {
	widget.BaseWidget

	s       *session.Session
	surface *render.Raster

	mods    input.Modifiers
	pressed bool

	// OnChange runs after every event the board consumed, e.g. to update a status line.
	OnChange func()
}

func NewBoardCanvas(s *session.Session) *BoardCanvas {
	sz := s.Viewport().CanvasSize()
	b := &BoardCanvas{s: s, surface: render.NewRaster(int(sz.X), int(sz.Y))}
	b.ExtendBaseWidget(b)
	return b
}

// CreateRenderer wraps a single raster fed from the board.
func (b *BoardCanvas) CreateRenderer() fyne.WidgetRenderer {
	img := canvas.NewRaster(b.paint)
	img.ScaleMode = canvas.ImageScaleFastest
	return &boardCanvasRenderer{bc: b, img: img, objects: []fyne.CanvasObject{img}}
}

// PreferredSize is the configured canvas size.
func (b *BoardCanvas) PreferredSize() fyne.Size {
	cfg := b.s.Config().Board
	return fyne.NewSize(float32(cfg.CanvasWidth), float32(cfg.CanvasHeight))
}

// Resize keeps the viewport canvas in logical units so pointer positions map 1:1.
func (b *BoardCanvas) Resize(size fyne.Size) {
	b.BaseWidget.Resize(size)
	if size.Width >= 1 && size.Height >= 1 {
		b.s.Resize(size.Width, size.Height)
	}
}

// paint renders at the widget's logical size; the raster object scales to device pixels.
func (b *BoardCanvas) paint(w, h int) image.Image {
	if sz := b.Size(); sz.Width >= 1 && sz.Height >= 1 {
		w, h = int(sz.Width), int(sz.Height)
	}
	if r := b.surface.Image().Rect; r.Dx() != w || r.Dy() != h {
		b.surface.Resize(w, h)
	}
	b.s.Frame(b.surface)
	return b.surface.Image()
}

// Animate advances camera animations on the UI thread and repaints while
// they run, calling after for each painted frame. The returned stop ends the
// loop and may be called more than once.
func (b *BoardCanvas) Animate(after func()) (stop func()) {
	done := make(chan struct{})
	go func() {
		t := time.NewTicker(frameInterval)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				fyne.Do(func() {
					if !b.s.Viewport().Animating() {
						return
					}
					b.s.Tick()
					b.Refresh()
					if after != nil {
						after()
					}
				})
			}
		}
	}()
	var once sync.Once
	return func() { once.Do(func() { close(done) }) }
}

func (b *BoardCanvas) pointer(kind input.Kind, btn input.Button, pos fyne.Position) {
	b.s.HandlePointer(input.RawPointer{Kind: kind, Button: btn, Canvas: vector.P(pos.X, pos.Y), Mods: b.mods})
	b.changed()
}

func (b *BoardCanvas) changed() {
	b.Refresh()
	if b.OnChange != nil {
		b.OnChange()
	}
}

func (b *BoardCanvas) MouseDown(e *desktop.MouseEvent) {
	b.pressed = true
	b.mods = mergeModifiers(b.mods, e.Modifier)
	if c := fyne.CurrentApp(); c != nil {
		if cv := c.Driver().CanvasForObject(b); cv != nil {
			cv.Focus(b)
		}
	}
	b.pointer(input.Down, buttonOf(e.Button), e.Position)
}

func (b *BoardCanvas) MouseUp(e *desktop.MouseEvent) {
	b.pressed = false
	b.pointer(input.Up, buttonOf(e.Button), e.Position)
}

func (b *BoardCanvas) MouseIn(e *desktop.MouseEvent) { b.MouseMoved(e) }

func (b *BoardCanvas) MouseMoved(e *desktop.MouseEvent) {
	b.s.SetPointerInside(true)
	// Dragged reports moves while a button is held
	if b.pressed {
		return
	}
	b.pointer(input.Move, buttonOf(e.Button), e.Position)
}

// MouseOut hides the cursor until the pointer comes back.
func (b *BoardCanvas) MouseOut() {
	b.s.SetPointerInside(false)
	b.changed()
}

func (b *BoardCanvas) Dragged(e *fyne.DragEvent) {
	b.pointer(input.Move, input.ButtonLeft, e.Position)
}

// DragEnd is a no-op; MouseUp already delivered the release.
func (b *BoardCanvas) DragEnd() {}

func (b *BoardCanvas) Tapped(e *fyne.PointEvent) {
	b.pointer(input.Click, input.ButtonLeft, e.Position)
}

func (b *BoardCanvas) DoubleTapped(e *fyne.PointEvent) {
	b.pointer(input.DoubleClick, input.ButtonLeft, e.Position)
}

// Scrolled maps the wheel to DOM sign conventions: negative Y means away from the user.
func (b *BoardCanvas) Scrolled(e *fyne.ScrollEvent) {
	b.s.HandlePointer(input.RawPointer{
		Kind:   input.Wheel,
		Canvas: vector.P(e.Position.X, e.Position.Y),
		Wheel:  vector.P(-e.Scrolled.DX, -e.Scrolled.DY),
		Mods:   b.mods,
	})
	b.changed()
}

func (b *BoardCanvas) FocusGained() {}

func (b *BoardCanvas) FocusLost() { b.mods = input.Modifiers{} }

// TypedRune forwards typed text with layout and shift applied.
func (b *BoardCanvas) TypedRune(r rune) {
	b.s.HandleKey(input.RawKey{Kind: input.KeyPress, Key: string(r), Mods: b.mods})
	b.changed()
}

// TypedKey is ignored; KeyDown already saw the key.
func (b *BoardCanvas) TypedKey(*fyne.KeyEvent) {}

func (b *BoardCanvas) KeyDown(e *fyne.KeyEvent) {
	if setModifier(&b.mods, e.Name, true) {
		return
	}
	b.s.HandleKey(input.RawKey{Kind: input.KeyDown, Key: keyName(e.Name), Mods: b.mods})
	b.changed()
}

func (b *BoardCanvas) KeyUp(e *fyne.KeyEvent) {
	if setModifier(&b.mods, e.Name, false) {
		return
	}
	b.s.HandleKey(input.RawKey{Kind: input.KeyUp, Key: keyName(e.Name), Mods: b.mods})
}

func buttonOf(b desktop.MouseButton) input.Button {
	switch {
	case b&desktop.MouseButtonSecondary != 0:
		return input.ButtonRight
	case b&desktop.MouseButtonTertiary != 0:
		return input.ButtonMiddle
	default:
		return input.ButtonLeft
	}
}

func mergeModifiers(m input.Modifiers, k fyne.KeyModifier) input.Modifiers {
	m.Shift = m.Shift || k&fyne.KeyModifierShift != 0
	m.Ctrl = m.Ctrl || k&fyne.KeyModifierControl != 0
	m.Alt = m.Alt || k&fyne.KeyModifierAlt != 0
	m.Meta = m.Meta || k&fyne.KeyModifierSuper != 0
	return m
}

// setModifier tracks modifier keys and reports whether name was one.
func setModifier(m *input.Modifiers, name fyne.KeyName, down bool) bool {
	switch name {
	case desktop.KeyShiftLeft, desktop.KeyShiftRight:
		m.Shift = down
	case desktop.KeyControlLeft, desktop.KeyControlRight:
		m.Ctrl = down
	case desktop.KeyAltLeft, desktop.KeyAltRight:
		m.Alt = down
	case desktop.KeySuperLeft, desktop.KeySuperRight:
		m.Meta = down
	default:
		return false
	}
	return true
}

// keyName converts Fyne key names to the chord vocabulary of the input package.
func keyName(n fyne.KeyName) string {
	switch n {
	case fyne.KeyEscape:
		return "escape"
	case fyne.KeyDelete:
		return "delete"
	case fyne.KeyBackspace:
		return "backspace"
	case fyne.KeyReturn, fyne.KeyEnter:
		return "enter"
	case fyne.KeySpace:
		return "space"
	case fyne.KeyLeft:
		return "left"
	case fyne.KeyRight:
		return "right"
	case fyne.KeyUp:
		return "up"
	case fyne.KeyDown:
		return "down"
	}
	return string(n)
}

type boardCanvasRenderer struct {
	bc      *BoardCanvas
	img     *canvas.Raster
	objects []fyne.CanvasObject
}

func (r *boardCanvasRenderer) Destroy()                     {}
func (r *boardCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *boardCanvasRenderer) MinSize() fyne.Size           { return minCanvasSize }
func (r *boardCanvasRenderer) Refresh()                     { canvas.Refresh(r.img) }

func (r *boardCanvasRenderer) Layout(size fyne.Size) {
	r.img.Resize(size)
	r.img.Move(fyne.NewPos(0, 0))
}
