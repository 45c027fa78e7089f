// File: pool/bufferpool.go
// Author: momentics <momentics@gmail.com>
//
// Length-keyed array registry. Every buffer is either free or leased, never both,
// and moves between the two sets only on Acquire and Release.

package pool

import (
	"log/slog"
	"reflect"
	"sync"

	"github.com/momentics/hioload-kit/api"
)

// Buffer is a pooled fixed-length slice. Its pointer is its identity in the registry.
type Buffer[T any] struct {
	data []T
}

// Data returns the backing slice. It must not be retained after Release.
func (b *Buffer[T]) Data() []T { return b.data }

// Len returns the fixed length of the buffer.
func (b *Buffer[T]) Len() int { return len(b.data) }

type lengthClass[T any] struct {
	free   []*Buffer[T]
	leased map[*Buffer[T]]struct{}
}

// ArrayRegistry recycles buffers of identical length. All calls are serialized
// by one mutex.
type ArrayRegistry[T any] struct {
	mu      sync.Mutex
	classes map[int]*lengthClass[T]
	stats   counters
	name    string
	logger  *slog.Logger
}

var _ api.ArrayPool[*Buffer[int]] = (*ArrayRegistry[int])(nil)

// NewArrayRegistry creates an empty registry.
func NewArrayRegistry[T any](opts ...Option) *ArrayRegistry[T] {
	o := buildOptions("array["+reflect.TypeFor[T]().String()+"]", opts)
	return &ArrayRegistry[T]{
		classes: make(map[int]*lengthClass[T]),
		name:    o.name,
		logger:  o.logger,
	}
}

// Name returns the registry name used in stats.
func (r *ArrayRegistry[T]) Name() string { return r.name }

// class must be called with r.mu held.
func (r *ArrayRegistry[T]) class(length int) *lengthClass[T] {
	c, ok := r.classes[length]
	if !ok {
		c = &lengthClass[T]{leased: make(map[*Buffer[T]]struct{})}
		r.classes[length] = c
	}
	return c
}

// Acquire leases a buffer of exactly length elements, allocating only when no
// free buffer of that length exists.
func (r *ArrayRegistry[T]) Acquire(length int) (*Buffer[T], error) {
	if length < 0 {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "negative buffer length").
			WithContext("length", length)
	}
	r.mu.Lock()
	c := r.class(length)
	var b *Buffer[T]
	if n := len(c.free); n > 0 {
		b = c.free[n-1]
		c.free[n-1] = nil
		c.free = c.free[:n-1]
	} else {
		b = &Buffer[T]{data: make([]T, length)}
		r.stats.alloc.Add(1)
		r.logger.Debug("array pool grew",
			slog.String("registry", r.name),
			slog.Int("length", length),
			slog.Int("leased", len(c.leased)+1),
		)
	}
	c.leased[b] = struct{}{}
	r.mu.Unlock()
	r.stats.acquired.Add(1)
	return b, nil
}

// Release moves b back to the free set, zeroing it first when clear is set.
// A buffer that is not currently leased from r is left untouched and false is returned.
func (r *ArrayRegistry[T]) Release(b *Buffer[T], clear bool) bool {
	if b == nil {
		return false
	}
	r.mu.Lock()
	c, ok := r.classes[len(b.data)]
	if ok {
		_, ok = c.leased[b]
	}
	if !ok {
		r.mu.Unlock()
		r.stats.rejected.Add(1)
		r.logger.Warn("rejected release of buffer not leased from pool",
			slog.String("registry", r.name),
			slog.Int("length", len(b.data)),
		)
		return false
	}
	if clear {
		var zero T
		for i := range b.data {
			b.data[i] = zero
		}
	}
	delete(c.leased, b)
	c.free = append(c.free, b)
	r.mu.Unlock()
	r.stats.released.Add(1)
	return true
}

// Prewarm allocates count free buffers of the given length.
func (r *ArrayRegistry[T]) Prewarm(length, count int) error {
	if length < 0 || count < 0 {
		return api.NewError(api.ErrCodeInvalidArgument, "invalid prewarm request").
			WithContext("length", length).
			WithContext("count", count)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.class(length)
	for i := 0; i < count; i++ {
		c.free = append(c.free, &Buffer[T]{data: make([]T, length)})
	}
	r.stats.alloc.Add(int64(count))
	return nil
}

// Trim drops every free buffer of the given length and reports how many were dropped.
// Leased buffers are not affected.
func (r *ArrayRegistry[T]) Trim(length int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.classes[length]
	if !ok {
		return 0
	}
	n := len(c.free)
	c.free = nil
	if len(c.leased) == 0 {
		delete(r.classes, length)
	}
	return n
}

// Stats returns a consistent per-length snapshot plus lifetime counters.
func (r *ArrayRegistry[T]) Stats() api.PoolStats {
	s := r.stats.snapshot(r.name)
	r.mu.Lock()
	for length, c := range r.classes {
		s.ByLength[length] = api.LengthStats{Free: len(c.free), Leased: len(c.leased)}
		s.Free += int64(len(c.free))
		s.InUse += int64(len(c.leased))
	}
	r.mu.Unlock()
	return s
}
