/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

// Text measurement and line breaking for board text objects.
// All measuring goes through a Provider so tests can rely on a fixed face.

import (
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Metrics provides font metrics in pixels for the resolved face.
type Metrics struct {
	Ascent, Descent, LineGap float32
}

// LineHeight is the distance between consecutive baselines.
func (m Metrics) LineHeight() float32 { return m.Ascent + m.Descent + m.LineGap }

// Provider resolves the face used to measure and draw text.
type Provider interface {
	Face() (font.Face, Metrics)
}

// BasicProvider uses x/image/basicfont Face7x13 for deterministic output.
type BasicProvider struct{}

func (BasicProvider) Face() (font.Face, Metrics) {
	f := basicfont.Face7x13
	m := f.Metrics()
	return f, Metrics{
		Ascent:  float32(m.Ascent.Round()),
		Descent: float32(m.Descent.Round()),
		LineGap: float32(m.Height.Round() - m.Ascent.Round() - m.Descent.Round()),
	}
}

// Line is a single laid out line.
type Line struct {
	Text  string
	Width float32
}

// Box is the result of laying out text.
type Box struct {
	Lines   []Line
	Width   float32
	Height  float32
	Metrics Metrics
}

// Layout breaks text at newlines and, when maxWidth > 0, between words so no
// line is wider than maxWidth unless a single word already is.
func Layout(p Provider, text string, maxWidth float32) Box {
	if p == nil {
		p = BasicProvider{}
	}
	face, met := p.Face()
	d := &font.Drawer{Face: face}
	box := Box{Metrics: met}
	push := func(s string) {
		w := advance(d, s)
		box.Lines = append(box.Lines, Line{Text: s, Width: w})
		box.Width = max(box.Width, w)
		box.Height += met.LineHeight()
	}
	for _, para := range strings.Split(text, "\n") {
		if maxWidth <= 0 {
			push(para)
			continue
		}
		cur := ""
		for _, word := range strings.Fields(para) {
			cand := word
			if cur != "" {
				cand = cur + " " + word
			}
			if cur != "" && advance(d, cand) > maxWidth {
				push(cur)
				cur = word
				continue
			}
			cur = cand
		}
		push(cur)
	}
	return box
}

// Measure returns the width and height of text without wrapping.
func Measure(p Provider, text string) (w, h float32) {
	b := Layout(p, text, 0)
	return b.Width, b.Height
}

func advance(d *font.Drawer, s string) float32 {
	return float32(d.MeasureString(s) >> 6) // fixed.Int26_6 to px
}
