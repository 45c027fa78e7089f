// File: pool/collection.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/momentics/hioload-kit/api"
)

// PooledCollection constrains the collection types a Collection handle can lease.
type PooledCollection[T any] interface {
	comparable
	api.Collection[T]
}

// Collection is a scoped lease of a reusable collection. The collection is
// cleared when it goes back to the registry.
type Collection[C PooledCollection[T], T any] struct {
	lease
	reg  *ObjectRegistry[C]
	coll C
}

// NewCollectionRegistry returns a registry that clears collections on release.
func NewCollectionRegistry[C PooledCollection[T], T any](create func() C, opts ...Option) *ObjectRegistry[C] {
	return NewObjectRegistry(create, func(c C) { c.Clear() }, opts...)
}

// NewCollection leases a collection from reg.
func NewCollection[C PooledCollection[T], T any](reg *ObjectRegistry[C]) *Collection[C, T] {
	return &Collection[C, T]{reg: reg, coll: reg.Acquire()}
}

// Deref returns the leased collection. Do not hold onto it past Close.
func (c *Collection[C, T]) Deref() (C, error) {
	if err := c.check(); err != nil {
		var zero C
		return zero, err
	}
	return c.coll, nil
}

func (c *Collection[C, T]) Len() (int, error) {
	if err := c.check(); err != nil {
		return 0, err
	}
	return c.coll.Len(), nil
}

func (c *Collection[C, T]) Add(item T) error {
	if err := c.check(); err != nil {
		return err
	}
	c.coll.Add(item)
	return nil
}

// Remove reports whether item was present.
func (c *Collection[C, T]) Remove(item T) (bool, error) {
	if err := c.check(); err != nil {
		return false, err
	}
	return c.coll.Remove(item), nil
}

func (c *Collection[C, T]) Contains(item T) (bool, error) {
	if err := c.check(); err != nil {
		return false, err
	}
	return c.coll.Contains(item), nil
}

func (c *Collection[C, T]) Clear() error {
	if err := c.check(); err != nil {
		return err
	}
	c.coll.Clear()
	return nil
}

// CopyTo copies the items into dst starting at index at.
func (c *Collection[C, T]) CopyTo(dst []T, at int) error {
	if err := c.check(); err != nil {
		return err
	}
	if at < 0 || at+c.coll.Len() > len(dst) {
		return api.IndexError(at, len(dst))
	}
	i := at
	for item := range c.coll.All() {
		dst[i] = item
		i++
	}
	return nil
}

// Clone leases another collection from the same registry holding the same items.
func (c *Collection[C, T]) Clone() (*Collection[C, T], error) {
	if err := c.check(); err != nil {
		return nil, err
	}
	out := NewCollection[C, T](c.reg)
	for item := range c.coll.All() {
		out.coll.Add(item)
	}
	return out, nil
}

// Equal reports whether both handles lease the same collection instance.
func (c *Collection[C, T]) Equal(other *Collection[C, T]) bool {
	if other == nil || c.Disposed() || other.Disposed() {
		return false
	}
	return c.coll == other.coll
}

func (c *Collection[C, T]) String() string {
	if c.Disposed() {
		return "Collection(disposed)"
	}
	return fmt.Sprintf("Collection%v", slices.Collect(c.coll.All()))
}

// Close clears the collection and returns it to the registry.
func (c *Collection[C, T]) Close() error {
	if !c.dispose() {
		return nil
	}
	c.reg.Release(c.coll)
	return nil
}

// SliceCollection is an ordered collection that allows duplicates.
type SliceCollection[T comparable] struct {
	items []T
}

func NewSliceCollection[T comparable]() *SliceCollection[T] { return &SliceCollection[T]{} }

func (s *SliceCollection[T]) Add(item T) { s.items = append(s.items, item) }

// Remove deletes the first occurrence of item.
func (s *SliceCollection[T]) Remove(item T) bool {
	i := slices.Index(s.items, item)
	if i < 0 {
		return false
	}
	s.items = slices.Delete(s.items, i, i+1)
	return true
}

func (s *SliceCollection[T]) Contains(item T) bool { return slices.Contains(s.items, item) }

func (s *SliceCollection[T]) Clear() {
	clear(s.items)
	s.items = s.items[:0]
}

func (s *SliceCollection[T]) Len() int         { return len(s.items) }
func (s *SliceCollection[T]) All() iter.Seq[T] { return slices.Values(s.items) }

// SetCollection is an unordered collection of unique items.
type SetCollection[T comparable] struct {
	items map[T]struct{}
}

func NewSetCollection[T comparable]() *SetCollection[T] {
	return &SetCollection[T]{items: make(map[T]struct{})}
}

func (s *SetCollection[T]) Add(item T) { s.items[item] = struct{}{} }

func (s *SetCollection[T]) Remove(item T) bool {
	if _, ok := s.items[item]; !ok {
		return false
	}
	delete(s.items, item)
	return true
}

func (s *SetCollection[T]) Contains(item T) bool {
	_, ok := s.items[item]
	return ok
}

func (s *SetCollection[T]) Clear()           { clear(s.items) }
func (s *SetCollection[T]) Len() int         { return len(s.items) }
func (s *SetCollection[T]) All() iter.Seq[T] { return maps.Keys(s.items) }
