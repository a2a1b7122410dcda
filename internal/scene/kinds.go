/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import (
	"image"
	"strings"
	"unicode/utf8"

	"gowhiteboard/internal/textlayout"
	"gowhiteboard/internal/vector"
)

// Object kinds.
const (
	KindBoard   = "board"
	KindRect    = "rect"
	KindDrawing = "drawing"
	KindText    = "text"
	KindImage   = "image"
	KindCursor  = "cursor"
)

// DefaultGridColor is the colour of the board's background grid.
var DefaultGridColor = vector.Color{R: 0xE8, G: 0xE8, B: 0xE8, A: 0xFF}

// Board is the tree root. It spans the whole world so every pointer lands on it.
type Board struct {
	*Object
	Background vector.Color
	// GridSize is the spacing of the background grid in world units; zero hides it.
	GridSize  float32
	GridColor vector.Color
}

func NewBoard(world vector.Rect) *Board {
	b := &Board{Object: NewObject(KindBoard), Background: vector.White, GridColor: DefaultGridColor}
	b.SetPosition(world.Min())
	b.SetSize(world.Size())
	return b
}

// Rect is a filled, optionally outlined rectangle.
type Rect struct {
	*Object
	Fill   vector.Fill
	Stroke vector.Stroke
}

func NewRect(r vector.Rect, f vector.Fill, s vector.Stroke) *Rect {
	n := &Rect{Object: NewObject(KindRect), Fill: f, Stroke: s}
	n.SetPosition(r.Min())
	n.SetSize(r.Size())
	return n
}

// Drawing is a freehand stroke. Path coordinates are local to Position.
type Drawing struct {
	*Object
	Stroke vector.Stroke
	path   *vector.Path
}

// NewDrawing starts an empty drawing anchored at pos.
func NewDrawing(pos vector.Pt, minSpacing float32, s vector.Stroke) *Drawing {
	d := &Drawing{Object: NewObject(KindDrawing), Stroke: s, path: vector.NewPath(minSpacing)}
	d.SetPosition(pos)
	return d
}

func (d *Drawing) Path() *vector.Path { return d.path }

// AddPoint records a world-space point on the stroke.
func (d *Drawing) AddPoint(world vector.Pt) bool {
	return d.path.Add(world.Sub(d.Position()))
}

// Fit moves the drawing onto its path's bounding box: the top-left of the
// path becomes the local origin and Size matches the path extent.
func (d *Drawing) Fit() {
	pathPos, pathSize := d.path.Bounds()
	d.SetSize(pathSize)
	d.SetPosition(d.Position().Add(pathPos))
	d.path.SetPivot(pathPos)
}

// ReplacePath swaps in p, whose coordinates are local to the current
// position, and refits.
func (d *Drawing) ReplacePath(p *vector.Path) {
	d.path = p
	d.Fit()
}

// Empty reports whether nothing drawable is left.
func (d *Drawing) Empty() bool {
	_, size := d.path.Bounds()
	return len(d.path.Points()) == 0 || (size.X <= 0 && size.Y <= 0)
}

// Vertices grows the bounding box by half the pen width so thin strokes stay hittable.
func (d *Drawing) Vertices() []vector.Pt {
	hw := d.Stroke.Width / 2
	return d.Bounds().Inset(-hw, -hw).Corners()
}

// Text is a block of text sized by its layout.
type Text struct {
	*Object
	Color    vector.Color
	MaxWidth float32

	content  string
	caret    int
	provider textlayout.Provider
	layout   textlayout.Box
}

func NewText(pos vector.Pt, content string, p textlayout.Provider) *Text {
	if p == nil {
		p = textlayout.BasicProvider{}
	}
	t := &Text{Object: NewObject(KindText), Color: vector.Black, provider: p}
	t.SetPosition(pos)
	t.SetContent(content)
	return t
}

func (t *Text) Content() string               { return t.content }
func (t *Text) Layout() textlayout.Box        { return t.layout }
func (t *Text) Provider() textlayout.Provider { return t.provider }

// SetContent replaces the text and resizes the object to fit it.
func (t *Text) SetContent(s string) {
	t.content = s
	t.caret = min(t.caret, utf8.RuneCountInString(s))
	t.layout = textlayout.Layout(t.provider, s, t.MaxWidth)
	t.SetSize(vector.Pt{X: t.layout.Width, Y: t.layout.Height})
}

// Caret is the insertion point counted in runes.
func (t *Text) Caret() int { return t.caret }

// SetCaret moves the insertion point, clamped to the content.
func (t *Text) SetCaret(i int) {
	t.caret = max(0, min(i, utf8.RuneCountInString(t.content)))
}

// Insert types s at the caret and moves the caret past it.
func (t *Text) Insert(s string) {
	r := []rune(t.content)
	at := t.caret
	t.SetContent(string(r[:at]) + s + string(r[at:]))
	t.caret = at + utf8.RuneCountInString(s)
}

// DeleteBack removes the rune before the caret and reports whether there was one.
func (t *Text) DeleteBack() bool {
	if t.caret == 0 {
		return false
	}
	r := []rune(t.content)
	at := t.caret
	t.SetContent(string(r[:at-1]) + string(r[at:]))
	t.caret = at - 1
	return true
}

// MoveCaretLine moves the caret delta lines down (negative is up), keeping
// the column where the target line is long enough.
func (t *Text) MoveCaretLine(delta int) {
	row, col := t.caretRowCol()
	lines := strings.Split(t.content, "\n")
	row = max(0, min(row+delta, len(lines)-1))
	idx := 0
	for _, l := range lines[:row] {
		idx += utf8.RuneCountInString(l) + 1
	}
	t.caret = idx + min(col, utf8.RuneCountInString(lines[row]))
}

// CaretPos is the top of the caret in world space. Word wrapping is not
// taken into account.
func (t *Text) CaretPos() vector.Pt {
	row, col := t.caretRowCol()
	lines := strings.Split(t.content, "\n")
	w, _ := textlayout.Measure(t.provider, string([]rune(lines[row])[:col]))
	return t.Position().Add(vector.Pt{X: w, Y: float32(row) * t.layout.Metrics.LineHeight()})
}

func (t *Text) caretRowCol() (row, col int) {
	for _, r := range []rune(t.content)[:t.caret] {
		if r == '\n' {
			row++
			col = 0
			continue
		}
		col++
	}
	return row, col
}

// Image shows a decoded bitmap scaled to Size.
type Image struct {
	*Object
	Img image.Image
}

// NewImage places img at pos with its natural pixel size.
func NewImage(pos vector.Pt, img image.Image) *Image {
	n := &Image{Object: NewObject(KindImage), Img: img}
	n.SetPosition(pos)
	if img != nil {
		b := img.Bounds()
		n.SetSize(vector.Pt{X: float32(b.Dx()), Y: float32(b.Dy())})
	}
	return n
}

// Cursor marks the pointer position on the board.
type Cursor struct {
	*Object
	Color vector.Color
}

func NewCursor(size float32) *Cursor {
	c := &Cursor{Object: NewObject(KindCursor), Color: vector.Red}
	c.SetSize(vector.Pt{X: size, Y: size})
	return c
}

// CenterOn moves the cursor so its centre is at p.
func (c *Cursor) CenterOn(p vector.Pt) {
	c.SetPosition(p.Sub(c.Size().Scale(0.5)))
}

// Resize changes the marker size around its current centre.
func (c *Cursor) Resize(size vector.Pt) {
	centre := c.Position().Add(c.Size().Scale(0.5))
	c.SetSize(size)
	c.CenterOn(centre)
}

// Vertices is empty so the marker never becomes a hit target.
func (c *Cursor) Vertices() []vector.Pt { return nil }
