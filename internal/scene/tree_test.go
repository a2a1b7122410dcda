/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gowhiteboard/internal/vector"
)

func newTestTree() (*Tree, *Board) {
	b := NewBoard(vector.R(-100, -100, 200, 200))
	return NewTree(b), b
}

func box(z int) *Rect {
	r := NewRect(vector.R(0, 0, 10, 10), vector.Fill{}, vector.Stroke{})
	r.SetZOrder(z)
	return r
}

func ids(ns []Node) []string {
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = n.ID()
	}
	return out
}

func collect(t *Tree) []Node {
	var out []Node
	for n := range t.Traverse() {
		out = append(out, n)
	}
	return out
}

func TestTraverse_SortsEachFrontierByZ(t *testing.T) {
	tr, b := newTestTree()
	high, low, mid := box(5), box(-1), box(2)
	require.NoError(t, tr.Add(high))
	require.NoError(t, tr.Add(low))
	require.NoError(t, tr.Add(mid))
	// children of high are enumerated after the whole first level
	child := box(-10)
	require.NoError(t, tr.AddTo(high, child))

	got := collect(tr)
	assert.Equal(t, ids([]Node{b, low, mid, high, child}), ids(got))
}

func TestTraverse_StableForEqualZ(t *testing.T) {
	tr, b := newTestTree()
	a, c := box(1), box(1)
	require.NoError(t, tr.Add(a))
	require.NoError(t, tr.Add(c))
	assert.Equal(t, ids([]Node{b, a, c}), ids(collect(tr)))
}

func TestTraverse_IsLive(t *testing.T) {
	tr, _ := newTestTree()
	first := box(0)
	require.NoError(t, tr.Add(first))

	added := false
	seen := 0
	for n := range tr.Traverse() {
		seen++
		if n.ID() == first.ID() && !added {
			// children added mid-walk are picked up by the next level
			require.NoError(t, tr.AddTo(first, box(0)))
			added = true
		}
	}
	assert.Equal(t, 3, seen)

	// a fresh range re-walks the current tree
	tr.Remove(first)
	assert.Equal(t, 1, tr.Len())
}

func TestTraverse_EarlyBreak(t *testing.T) {
	tr, b := newTestTree()
	require.NoError(t, tr.Add(box(0)))
	for n := range tr.Traverse() {
		assert.Equal(t, b.ID(), n.ID())
		break
	}
}

func TestAdd_ExclusiveOwnership(t *testing.T) {
	tr, b := newTestTree()
	r := box(0)
	require.NoError(t, tr.Add(r))
	assert.Equal(t, b.ID(), r.ParentID())

	err := tr.Add(r)
	assert.True(t, errors.Is(err, ErrAlreadyOwned))

	err = tr.AddTo(r, b)
	assert.True(t, errors.Is(err, ErrAlreadyOwned), "root cannot become a child")

	assert.ErrorIs(t, tr.Add(nil), ErrNilNode)

	outside := box(0)
	assert.Error(t, tr.AddTo(outside, box(0)), "parent must be in the tree")
	assert.Equal(t, 2, tr.Len())
}

func TestRemove_ByIDAndNoop(t *testing.T) {
	tr, b := newTestTree()
	r1, r2 := box(0), box(0)
	require.NoError(t, tr.Add(r1))
	require.NoError(t, tr.Add(r2))

	tr.Remove(r1)
	assert.Equal(t, ids([]Node{b, r2}), ids(collect(tr)))
	assert.Empty(t, r1.ParentID())

	// removing twice or removing a stranger does nothing
	tr.Remove(r1)
	tr.Remove(box(0))
	tr.Remove(nil)
	assert.Equal(t, 2, tr.Len())

	// a removed node may be re-added
	require.NoError(t, tr.Add(r1))
	assert.Equal(t, 3, tr.Len())
}

func TestRemove_NestedChild(t *testing.T) {
	tr, _ := newTestTree()
	group, handle := box(0), box(0)
	require.NoError(t, tr.Add(group))
	require.NoError(t, tr.AddTo(group, handle))
	tr.Remove(handle)
	assert.False(t, group.HasChildren())
	_, ok := tr.FindByID(handle.ID())
	assert.False(t, ok)
}

func TestFind(t *testing.T) {
	tr, _ := newTestTree()
	r := box(0)
	d := NewDrawing(vector.P(1, 1), 0, vector.DefaultPen)
	require.NoError(t, tr.Add(r))
	require.NoError(t, tr.Add(d))

	got, ok := tr.FindByID(d.ID())
	require.True(t, ok)
	assert.Same(t, d, got)

	_, ok = tr.FindByID("obj_missing")
	assert.False(t, ok)

	isDrawing := func(n Node) bool { _, ok := As[*Drawing](n); return ok }
	first, ok := tr.FindOfType(isDrawing)
	require.True(t, ok)
	assert.Equal(t, d.ID(), first.ID())
	assert.Len(t, tr.FindAllOfType(isDrawing), 1)
	assert.Empty(t, tr.FindAllOfType(func(Node) bool { return false }))
}

func TestIDs(t *testing.T) {
	a, b := NewObject(KindRect), NewObject(KindRect)
	assert.NotEqual(t, a.ID(), b.ID())
	assert.NoError(t, ValidID(a.ID()))
	assert.Error(t, ValidID("user_01h455vb4pex5vsknk084sn02q"))
	assert.Error(t, ValidID("not an id"))
}
