// File: pqueue/concurrent.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pqueue

import (
	"sync"

	"golang.org/x/exp/constraints"

	"github.com/momentics/hioload-kit/api"
)

// Concurrent guards a PriorityQueue with a single mutex. Every operation holds
// the lock for its whole duration, giving a total order of calls per queue.
type Concurrent[P constraints.Ordered, V any] struct {
	mu sync.Mutex
	q  *PriorityQueue[P, V]
}

var _ api.PriorityQueue[int, string] = (*Concurrent[int, string])(nil)

// NewConcurrent returns an empty concurrent priority queue.
func NewConcurrent[P constraints.Ordered, V any]() *Concurrent[P, V] {
	return &Concurrent[P, V]{q: New[P, V]()}
}

func (c *Concurrent[P, V]) Enqueue(priority P, value V) {
	c.mu.Lock()
	c.q.Enqueue(priority, value)
	c.mu.Unlock()
}

func (c *Concurrent[P, V]) TryDequeue() (P, V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.q.TryDequeue()
}

func (c *Concurrent[P, V]) Peek() (P, V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.q.Peek()
}

func (c *Concurrent[P, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.q.Len()
}

func (c *Concurrent[P, V]) IsEmpty() bool { return c.Len() == 0 }

func (c *Concurrent[P, V]) Clear() {
	c.mu.Lock()
	c.q.Clear()
	c.mu.Unlock()
}

// DequeueBatch removes up to limit values in priority order under one lock acquisition.
func (c *Concurrent[P, V]) DequeueBatch(limit int) []V {
	if limit <= 0 {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]V, 0, min(limit, c.q.Len()))
	for len(out) < limit {
		_, v, ok := c.q.TryDequeue()
		if !ok {
			break
		}
		out = append(out, v)
	}
	return out
}
