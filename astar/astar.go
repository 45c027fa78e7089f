// File: astar/astar.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package astar finds least-cost paths over implicit graphs.
//
// The graph is never materialised: callers describe it through a neighbours
// function, an edge cost and an admissible estimate of the remaining cost.
// Partial paths are immutable and share their prefixes, so branching the
// search costs one allocation per step.
package astar

import (
	"iter"
	"slices"

	"github.com/momentics/hioload-kit/pqueue"
)

// Path is an immutable route ending at Last. A path of one node has no Previous.
type Path[N any] struct {
	last N
	prev *Path[N]
	cost float64
	n    int
}

// Start returns a zero-cost path holding only start.
func Start[N any](start N) *Path[N] {
	return &Path[N]{last: start, n: 1}
}

func (p *Path[N]) Last() N            { return p.last }
func (p *Path[N]) Previous() *Path[N] { return p.prev }
func (p *Path[N]) Cost() float64      { return p.cost }
func (p *Path[N]) Len() int           { return p.n }

// AddStep returns a new path extending p by step. p itself is unchanged.
func (p *Path[N]) AddStep(step N, stepCost float64) *Path[N] {
	return &Path[N]{last: step, prev: p, cost: p.cost + stepCost, n: p.n + 1}
}

// Steps yields the nodes from Last back to the start.
func (p *Path[N]) Steps() iter.Seq[N] {
	return func(yield func(N) bool) {
		for cur := p; cur != nil; cur = cur.prev {
			if !yield(cur.last) {
				return
			}
		}
	}
}

// Nodes returns the nodes in travel order, start first.
func (p *Path[N]) Nodes() []N {
	out := slices.AppendSeq(make([]N, 0, p.n), p.Steps())
	slices.Reverse(out)
	return out
}

// FindPath runs A* from start to goal. estimate must never overestimate the
// remaining cost for the result to be optimal. It reports false when goal is
// unreachable.
//
// Nodes may be enqueued more than once; stale entries are skipped when they
// reach the head of the queue because their node is already closed.
func FindPath[N comparable](
	start, goal N,
	neighbors func(N) []N,
	distance func(a, b N) float64,
	estimate func(N) float64,
) (*Path[N], bool) {
	closed := make(map[N]struct{})
	open := pqueue.New[float64, *Path[N]]()
	open.Enqueue(estimate(start), Start(start))

	for {
		_, path, ok := open.TryDequeue()
		if !ok {
			return nil, false
		}
		node := path.Last()
		if _, done := closed[node]; done {
			continue
		}
		if node == goal {
			return path, true
		}
		closed[node] = struct{}{}
		for _, next := range neighbors(node) {
			if _, done := closed[next]; done {
				continue
			}
			np := path.AddStep(next, distance(node, next))
			open.Enqueue(np.Cost()+estimate(next), np)
		}
	}
}
