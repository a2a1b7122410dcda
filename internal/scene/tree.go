/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import (
	"cmp"
	"errors"
	"fmt"
	"iter"
	"slices"
)

var (
	ErrNilNode      = errors.New("scene: nil node")
	ErrAlreadyOwned = errors.New("scene: node already has a parent")
)

// Tree owns every live object through a single root. Each node is reachable
// from the root exactly once.
type Tree struct {
	root Node
}

// NewTree makes root the owner of the hierarchy.
func NewTree(root Node) *Tree {
	return &Tree{root: root}
}

func (t *Tree) Root() Node { return t.root }

// Add attaches n as the last child of the root.
func (t *Tree) Add(n Node) error {
	return t.AddTo(t.root, n)
}

// AddTo attaches n as the last child of parent, which must already be in the tree.
func (t *Tree) AddTo(parent, n Node) error {
	if n == nil || parent == nil {
		return ErrNilNode
	}
	if n.Base().parent != "" || n.ID() == t.root.ID() {
		return fmt.Errorf("add %s: %w", n.ID(), ErrAlreadyOwned)
	}
	if _, ok := t.FindByID(n.ID()); ok {
		return fmt.Errorf("add %s: %w", n.ID(), ErrAlreadyOwned)
	}
	if _, ok := t.FindByID(parent.ID()); !ok {
		return fmt.Errorf("add %s: parent %s is not in the tree", n.ID(), parent.ID())
	}
	pb := parent.Base()
	pb.children = append(pb.children, n)
	n.Base().parent = parent.ID()
	return nil
}

// Remove detaches n from its owner, matching by id. Unknown nodes are ignored.
func (t *Tree) Remove(n Node) {
	if n == nil {
		return
	}
	owner := t.root
	if pid := n.Base().parent; pid != "" && pid != t.root.ID() {
		p, ok := t.FindByID(pid)
		if !ok {
			return
		}
		owner = p
	}
	ob := owner.Base()
	idx := slices.IndexFunc(ob.children, func(c Node) bool { return c.ID() == n.ID() })
	if idx < 0 {
		return
	}
	removed := ob.children[idx]
	ob.children = slices.Delete(ob.children, idx, idx+1)
	removed.Base().parent = ""
}

// Traverse walks the tree breadth first. Every frontier is stable-sorted by
// ascending z-order before it is yielded, so lower objects come first. The
// walk reads the tree as it goes; each range starts over from the root.
func (t *Tree) Traverse() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		if t.root == nil {
			return
		}
		frontier := []Node{t.root}
		for len(frontier) > 0 {
			slices.SortStableFunc(frontier, func(a, b Node) int {
				return cmp.Compare(a.ZOrder(), b.ZOrder())
			})
			var next []Node
			for _, n := range frontier {
				if !yield(n) {
					return
				}
				next = append(next, n.Base().children...)
			}
			frontier = next
		}
	}
}

// FindByID returns the node with the given id.
func (t *Tree) FindByID(id string) (Node, bool) {
	return t.FindOfType(func(n Node) bool { return n.ID() == id })
}

// FindOfType returns the first node in traversal order matching pred.
func (t *Tree) FindOfType(pred func(Node) bool) (Node, bool) {
	for n := range t.Traverse() {
		if pred(n) {
			return n, true
		}
	}
	return nil, false
}

// FindAllOfType collects every match in traversal order.
func (t *Tree) FindAllOfType(pred func(Node) bool) []Node {
	var out []Node
	for n := range t.Traverse() {
		if pred(n) {
			out = append(out, n)
		}
	}
	return out
}

// Len counts the nodes including the root.
func (t *Tree) Len() int {
	c := 0
	for range t.Traverse() {
		c++
	}
	return c
}
