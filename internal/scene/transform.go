/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import "gowhiteboard/internal/vector"

// Selection chrome kinds.
const (
	KindTransform = "transform"
	KindHandle    = "handle"
)

const (
	// TransformPadding is the gap between the selection and its outline.
	TransformPadding = 20
	// HandleSize is the side of a corner handle.
	HandleSize = 10
	// TransformZ paints the outline above user objects but below the cursor.
	TransformZ = 1<<30 - 100
)

// SelectionColor outlines selected and edited objects.
var SelectionColor = vector.Color{R: 66, G: 195, B: 255, A: 255}

// Transform outlines the current selection. Its corner handles are attached
// as children, so removing the transform removes them too.
type Transform struct {
	*Object
	Padding float32
	Stroke  vector.Stroke
	targets []Node
}

func NewTransform() *Transform {
	t := &Transform{
		Object:  NewObject(KindTransform),
		Padding: TransformPadding,
		Stroke:  vector.Stroke{Color: SelectionColor, Width: 1, Enabled: true},
	}
	t.SetZOrder(TransformZ)
	return t
}

// Vertices is empty: the outline is never a hit target.
func (t *Transform) Vertices() []vector.Pt { return nil }

// Targets returns the nodes the outline currently wraps.
func (t *Transform) Targets() []Node { return append([]Node(nil), t.targets...) }

// Fit wraps the outline around the union of the targets' bounds, grown by
// Padding, and moves the corner handles with it. No targets leaves it empty.
func (t *Transform) Fit(targets ...Node) {
	t.targets = append([]Node(nil), targets...)
	t.Refit()
}

// Refit recomputes the outline after the targets moved.
func (t *Transform) Refit() {
	if len(t.targets) == 0 {
		t.SetSize(vector.Pt{})
		return
	}
	r := t.targets[0].Base().Bounds()
	for _, n := range t.targets[1:] {
		r = r.Union(n.Base().Bounds())
	}
	r = r.Inset(-t.Padding, -t.Padding)
	t.SetPosition(r.Min())
	t.SetSize(r.Size())

	corners := r.Corners()
	for i, c := range t.Children() {
		if h, ok := As[*Handle](c); ok && i < len(corners) {
			h.SetPosition(corners[i].Sub(h.Size().Scale(0.5)))
		}
	}
}

// Handle is a corner grip of a Transform.
type Handle struct {
	*Object
	Fill   vector.Color
	Border vector.Color
}

func NewHandle() *Handle {
	h := &Handle{Object: NewObject(KindHandle), Fill: vector.White, Border: vector.Color{R: 45, G: 45, B: 45, A: 255}}
	h.SetSize(vector.P(HandleSize, HandleSize))
	h.SetZOrder(TransformZ + 1)
	return h
}

// Vertices is empty: handles only mark the corners.
func (h *Handle) Vertices() []vector.Pt { return nil }

// IsChrome reports whether n is selection or pointer decoration rather than
// board content.
func IsChrome(n Node) bool {
	switch Underlying(n).Kind() {
	case KindCursor, KindTransform, KindHandle:
		return true
	}
	return false
}
