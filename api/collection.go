// File: api/collection.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

import "iter"

// Collection is the minimal mutable container contract pooled collections wrap.
type Collection[T any] interface {
	Add(item T)
	Remove(item T) bool
	Contains(item T) bool
	Clear()
	Len() int
	All() iter.Seq[T]
}

// PriorityQueue orders values by ascending priority, FIFO among equal priorities.
type PriorityQueue[P any, V any] interface {
	Enqueue(priority P, value V)

	// TryDequeue removes the lowest-priority value; ok is false when empty.
	TryDequeue() (priority P, value V, ok bool)

	Len() int
	Clear()
}
