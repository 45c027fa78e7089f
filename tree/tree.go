// File: tree/tree.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package tree provides a minimal generic n-ary tree.
//
// A node belongs to at most one parent. Adding a node that already has a
// parent moves it; the old parent forgets it. Nodes are not safe for
// concurrent mutation.
package tree

import (
	"iter"
	"slices"
)

// Node holds a value and an ordered list of children.
type Node[T any] struct {
	Value    T
	parent   *Node[T]
	children []*Node[T]
}

// New returns a detached node.
func New[T any](value T) *Node[T] {
	return &Node[T]{Value: value}
}

// Parent returns nil for a root.
func (n *Node[T]) Parent() *Node[T] { return n.parent }

// Children returns a copy of the child list.
func (n *Node[T]) Children() []*Node[T] { return slices.Clone(n.children) }

func (n *Node[T]) Len() int { return len(n.children) }

// Add appends child, detaching it from its previous parent. Adding nil, the
// node itself or one of its ancestors is a no-op that reports false.
func (n *Node[T]) Add(child *Node[T]) bool {
	if child == nil {
		return false
	}
	for a := n; a != nil; a = a.parent {
		if a == child {
			return false
		}
	}
	if child.parent != nil {
		child.parent.Remove(child)
	}
	child.parent = n
	n.children = append(n.children, child)
	return true
}

// AddMany adds children in order and returns how many were attached.
func (n *Node[T]) AddMany(children ...*Node[T]) int {
	added := 0
	for _, c := range children {
		if n.Add(c) {
			added++
		}
	}
	return added
}

// Remove detaches child if it is a direct child of n.
func (n *Node[T]) Remove(child *Node[T]) bool {
	i := slices.Index(n.children, child)
	if i < 0 {
		return false
	}
	n.children = slices.Delete(n.children, i, i+1)
	child.parent = nil
	return true
}

// Traverse calls fn for every value, pre-order.
func (n *Node[T]) Traverse(fn func(T)) {
	for v := range n.All() {
		fn(v)
	}
}

// All yields values pre-order: the node, then each subtree left to right.
func (n *Node[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		n.walk(yield)
	}
}

func (n *Node[T]) walk(yield func(T) bool) bool {
	if !yield(n.Value) {
		return false
	}
	for _, c := range n.children {
		if !c.walk(yield) {
			return false
		}
	}
	return true
}

// Flatten collects All into a slice.
func (n *Node[T]) Flatten() []T {
	return slices.Collect(n.All())
}

// Root walks parents up to the top.
func (n *Node[T]) Root() *Node[T] {
	r := n
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Depth is 0 for a root.
func (n *Node[T]) Depth() int {
	d := 0
	for p := n.parent; p != nil; p = p.parent {
		d++
	}
	return d
}
