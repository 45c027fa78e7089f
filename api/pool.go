// File: api/pool.go
// Author: momentics <momentics@gmail.com>
//
// Defines abstract pooling APIs: length-keyed array pools, type-keyed object pools
// and the scoped handles that lease from them.

package api

import "io"

// Releaser is implemented by every pooled handle. Close returns the leased
// value to its pool; calling it again is a no-op.
type Releaser interface {
	io.Closer
	Disposed() bool
}

// ArrayPool leases fixed-length buffers of type B.
type ArrayPool[B any] interface {
	// Acquire returns a buffer of exactly n elements.
	Acquire(n int) (B, error)

	// Release returns a buffer to the pool, zeroing it first when clear is set.
	// Reports false if the buffer was not leased from this pool.
	Release(buf B, clear bool) bool

	// Stats exposes accounting for observability.
	Stats() PoolStats
}

// ObjectPool leases reusable values of a single type.
type ObjectPool[T any] interface {
	// Acquire returns an available instance from the pool.
	Acquire() T

	// Release returns an instance for reuse.
	Release(obj T) bool

	Stats() PoolStats
}

// PoolStats aggregates allocation/reuse stats of one registry.
type PoolStats struct {
	Name             string
	TotalAlloc       int64
	Acquired         int64
	Released         int64
	RejectedReleases int64
	Free             int64
	InUse            int64
	// ByLength is keyed by buffer length; object pools report a single entry under 0.
	ByLength map[int]LengthStats
}

// LengthStats is the free/leased split for one buffer length.
type LengthStats struct {
	Free   int
	Leased int
}

// StatsSource reports stats for a set of named registries.
type StatsSource interface {
	Stats() map[string]PoolStats
}
