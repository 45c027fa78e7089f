// File: pool/array.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"fmt"
	"iter"

	"github.com/momentics/hioload-kit/api"
)

// Array is a scoped lease of a fixed-length buffer. Close it when done:
//
//	a, err := pool.NewArray(reg, 64, true)
//	if err != nil { ... }
//	defer a.Close()
type Array[T any] struct {
	lease
	reg         *ArrayRegistry[T]
	buf         *Buffer[T]
	clearOnFree bool
}

var _ api.Releaser = (*Array[int])(nil)

// NewArray leases a buffer of length elements from reg.
func NewArray[T any](reg *ArrayRegistry[T], length int, clearOnFree bool) (*Array[T], error) {
	buf, err := reg.Acquire(length)
	if err != nil {
		return nil, err
	}
	return &Array[T]{reg: reg, buf: buf, clearOnFree: clearOnFree}, nil
}

func (a *Array[T]) index(i int) error {
	if err := a.check(); err != nil {
		return err
	}
	if i < 0 || i >= len(a.buf.data) {
		return api.IndexError(i, len(a.buf.data))
	}
	return nil
}

// At returns the element at i.
func (a *Array[T]) At(i int) (T, error) {
	if err := a.index(i); err != nil {
		var zero T
		return zero, err
	}
	return a.buf.data[i], nil
}

// Set stores v at i.
func (a *Array[T]) Set(i int, v T) error {
	if err := a.index(i); err != nil {
		return err
	}
	a.buf.data[i] = v
	return nil
}

// Ptr returns a pointer to the element at i, valid until Close.
func (a *Array[T]) Ptr(i int) (*T, error) {
	if err := a.index(i); err != nil {
		return nil, err
	}
	return &a.buf.data[i], nil
}

// Len returns the array length.
func (a *Array[T]) Len() (int, error) {
	if err := a.check(); err != nil {
		return 0, err
	}
	return len(a.buf.data), nil
}

// Slice returns the underlying buffer. Do not hold onto it past Close.
func (a *Array[T]) Slice() ([]T, error) {
	if err := a.check(); err != nil {
		return nil, err
	}
	return a.buf.data, nil
}

// All iterates index/value pairs; it yields nothing once the array is closed.
func (a *Array[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		if a.Disposed() {
			return
		}
		for i, v := range a.buf.data {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Clone leases a second array of the same length from the same registry and copies the contents.
func (a *Array[T]) Clone() (*Array[T], error) {
	if err := a.check(); err != nil {
		return nil, err
	}
	c, err := NewArray(a.reg, len(a.buf.data), a.clearOnFree)
	if err != nil {
		return nil, err
	}
	copy(c.buf.data, a.buf.data)
	return c, nil
}

// Equal reports whether both handles lease the very same buffer.
func (a *Array[T]) Equal(other *Array[T]) bool {
	if other == nil || a.Disposed() || other.Disposed() {
		return false
	}
	return a.buf == other.buf
}

func (a *Array[T]) String() string {
	if a.Disposed() {
		return "Array(disposed)"
	}
	return fmt.Sprintf("Array%v", a.buf.data)
}

// Close returns the buffer to its registry. Only the first call has an effect.
func (a *Array[T]) Close() error {
	if !a.dispose() {
		return nil
	}
	a.reg.Release(a.buf, a.clearOnFree)
	return nil
}
