// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package pool

import (
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"github.com/momentics/hioload-kit/api"
)

// ObjectRegistry recycles values of one reference type, such as collections.
// Leases are tracked by identity, so C must be a pointer or channel type and
// create must return a distinct value on every call.
type ObjectRegistry[C comparable] struct {
	mu     sync.Mutex
	free   []C
	leased map[C]struct{}
	create func() C
	reset  func(C)
	stats  counters
	name   string
	logger *slog.Logger
}

var _ api.ObjectPool[*SetCollection[int]] = (*ObjectRegistry[*SetCollection[int]])(nil)

// NewObjectRegistry creates a registry that builds values with create and
// clears them with reset on release. reset may be nil. It panics when C is
// not a pointer or channel type: equal values of such a type would share one
// lease entry and a release would be lost.
func NewObjectRegistry[C comparable](create func() C, reset func(C), opts ...Option) *ObjectRegistry[C] {
	typ := reflect.TypeFor[C]()
	switch typ.Kind() {
	case reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
	default:
		panic(fmt.Errorf("%w: object registry needs a pointer type, got %s", api.ErrInvalidArgument, typ))
	}
	o := buildOptions("object["+typ.String()+"]", opts)
	return &ObjectRegistry[C]{
		leased: make(map[C]struct{}),
		create: create,
		reset:  reset,
		name:   o.name,
		logger: o.logger,
	}
}

// Name returns the registry name used in stats.
func (r *ObjectRegistry[C]) Name() string { return r.name }

// Acquire leases a free value or creates one.
func (r *ObjectRegistry[C]) Acquire() C {
	r.mu.Lock()
	var c C
	if n := len(r.free); n > 0 {
		c = r.free[n-1]
		var zero C
		r.free[n-1] = zero
		r.free = r.free[:n-1]
	} else {
		c = r.create()
		if _, dup := r.leased[c]; dup {
			r.mu.Unlock()
			panic(fmt.Errorf("%w: create returned a value that is already leased", api.ErrInvalidArgument))
		}
		r.stats.alloc.Add(1)
		r.logger.Debug("object pool grew",
			slog.String("registry", r.name),
			slog.Int("leased", len(r.leased)+1),
		)
	}
	r.leased[c] = struct{}{}
	r.mu.Unlock()
	r.stats.acquired.Add(1)
	return c
}

// Release resets c and returns it to the free set. Values not leased from r
// are ignored and false is returned.
func (r *ObjectRegistry[C]) Release(c C) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.leased[c]; !ok {
		r.stats.rejected.Add(1)
		r.logger.Warn("rejected release of object not leased from pool",
			slog.String("registry", r.name),
		)
		return false
	}
	if r.reset != nil {
		r.reset(c)
	}
	delete(r.leased, c)
	r.free = append(r.free, c)
	r.stats.released.Add(1)
	return true
}

// Stats reports free and leased counts under length key 0.
func (r *ObjectRegistry[C]) Stats() api.PoolStats {
	s := r.stats.snapshot(r.name)
	r.mu.Lock()
	s.Free = int64(len(r.free))
	s.InUse = int64(len(r.leased))
	s.ByLength[0] = api.LengthStats{Free: len(r.free), Leased: len(r.leased)}
	r.mu.Unlock()
	return s
}
