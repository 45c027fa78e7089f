// File: pqueue/pqueue.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Priority queue with stable FIFO order among equal priorities.
// Distinct priorities live in a min-heap; each priority owns a FIFO bucket
// that is dropped as soon as it empties.

package pqueue

import (
	"container/heap"
	"iter"

	"github.com/eapache/queue"
	"golang.org/x/exp/constraints"

	"github.com/momentics/hioload-kit/api"
)

type keyHeap[P constraints.Ordered] []P

func (h keyHeap[P]) Len() int           { return len(h) }
func (h keyHeap[P]) Less(i, j int) bool { return h[i] < h[j] }
func (h keyHeap[P]) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *keyHeap[P]) Push(x any)        { *h = append(*h, x.(P)) }
func (h *keyHeap[P]) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// PriorityQueue is not safe for concurrent use; see Concurrent.
// There is no decrease-key: to change a value's priority enqueue it again.
// NaN priorities are not supported.
type PriorityQueue[P constraints.Ordered, V any] struct {
	keys    keyHeap[P]
	buckets map[P]*queue.Queue
	n       int
}

var _ api.PriorityQueue[int, string] = (*PriorityQueue[int, string])(nil)

// New returns an empty priority queue.
func New[P constraints.Ordered, V any]() *PriorityQueue[P, V] {
	return &PriorityQueue[P, V]{buckets: make(map[P]*queue.Queue)}
}

// Enqueue inserts value at priority in O(log k), k being the number of distinct priorities.
func (q *PriorityQueue[P, V]) Enqueue(priority P, value V) {
	b, ok := q.buckets[priority]
	if !ok {
		b = queue.New()
		q.buckets[priority] = b
		heap.Push(&q.keys, priority)
	}
	b.Add(value)
	q.n++
}

// TryDequeue removes the oldest value of the lowest priority.
func (q *PriorityQueue[P, V]) TryDequeue() (P, V, bool) {
	if len(q.keys) == 0 {
		var p P
		var v V
		return p, v, false
	}
	p := q.keys[0]
	b := q.buckets[p]
	v, _ := b.Remove().(V)
	q.n--
	if b.Length() == 0 {
		heap.Pop(&q.keys)
		delete(q.buckets, p)
	}
	return p, v, true
}

// Dequeue is TryDequeue reporting api.ErrEmpty instead of a flag.
func (q *PriorityQueue[P, V]) Dequeue() (P, V, error) {
	p, v, ok := q.TryDequeue()
	if !ok {
		return p, v, api.ErrEmpty
	}
	return p, v, nil
}

// Peek returns what TryDequeue would return without removing it.
func (q *PriorityQueue[P, V]) Peek() (P, V, bool) {
	if len(q.keys) == 0 {
		var p P
		var v V
		return p, v, false
	}
	p := q.keys[0]
	v, _ := q.buckets[p].Peek().(V)
	return p, v, true
}

// Len returns the number of queued values.
func (q *PriorityQueue[P, V]) Len() int { return q.n }

// IsEmpty reports whether the queue holds no values.
func (q *PriorityQueue[P, V]) IsEmpty() bool { return q.n == 0 }

// Priorities returns the number of distinct priorities currently queued.
func (q *PriorityQueue[P, V]) Priorities() int { return len(q.keys) }

// Clear drops every queued value.
func (q *PriorityQueue[P, V]) Clear() {
	q.keys = q.keys[:0]
	clear(q.buckets)
	q.n = 0
}

// Drain dequeues values in priority order while the caller keeps iterating.
func (q *PriorityQueue[P, V]) Drain() iter.Seq2[P, V] {
	return func(yield func(P, V) bool) {
		for {
			p, v, ok := q.TryDequeue()
			if !ok || !yield(p, v) {
				return
			}
		}
	}
}
