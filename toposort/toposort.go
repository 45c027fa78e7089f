// File: toposort/toposort.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package toposort orders items so that dependencies come first.
//
// Group returns dependency-ordered batches: batch 0 holds items without
// dependencies, batch n holds items whose deepest dependency sits in batch
// n-1. Items within one batch do not depend on each other and may be
// processed in parallel (see Run).
//
// A cycle does not abort the sort. The revisited item is treated as depth -1,
// the cycle flag is set and traversal continues, so every item still appears
// exactly once in the output.
package toposort

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownDependency = errors.New("toposort: unknown dependency key")
	ErrDuplicateKey      = errors.New("toposort: duplicate item key")
)

const inProcess = -1

type grouper[T any, K comparable] struct {
	deps    func(T) []T
	key     func(T) K
	visited map[K]int
	batches [][]T
}

// visit resolves item and returns its depth and whether a cycle was seen beneath it.
func (g *grouper[T, K]) visit(item T) (int, bool) {
	k := g.key(item)
	if level, ok := g.visited[k]; ok {
		return level, level == inProcess
	}
	g.visited[k] = inProcess

	level, cycle := inProcess, false
	for _, dep := range g.deps(item) {
		depLevel, depCycle := g.visit(dep)
		cycle = cycle || depCycle
		level = max(level, depLevel)
	}
	level++

	g.visited[k] = level
	for len(g.batches) <= level {
		g.batches = append(g.batches, nil)
	}
	g.batches[level] = append(g.batches[level], item)
	return level, cycle
}

// GroupFunc batches items whose identity is given by key.
func GroupFunc[T any, K comparable](items []T, deps func(T) []T, key func(T) K) ([][]T, bool) {
	g := &grouper[T, K]{deps: deps, key: key, visited: make(map[K]int, len(items))}
	cycle := false
	for _, item := range items {
		_, c := g.visit(item)
		cycle = cycle || c
	}
	return g.batches, cycle
}

// Group batches comparable items by dependency depth and reports whether a cycle was found.
func Group[T comparable](items []T, deps func(T) []T) ([][]T, bool) {
	return GroupFunc(items, deps, identity[T])
}

// GroupByKey batches items whose dependencies are expressed as keys of other items.
// A dependency key that matches no item yields ErrUnknownDependency.
func GroupByKey[T any, K comparable](items []T, deps func(T) []K, key func(T) K) ([][]T, bool, error) {
	remapped, err := remap(items, deps, key)
	if err != nil {
		return nil, false, err
	}
	batches, cycle := GroupFunc(items, remapped, key)
	return batches, cycle, nil
}

type sorter[T any, K comparable] struct {
	deps    func(T) []T
	key     func(T) K
	visited map[K]bool // true while in process
	sorted  []T
}

func (s *sorter[T, K]) visit(item T) bool {
	k := s.key(item)
	if inProc, ok := s.visited[k]; ok {
		return inProc
	}
	s.visited[k] = true
	cycle := false
	for _, dep := range s.deps(item) {
		cycle = s.visit(dep) || cycle
	}
	s.visited[k] = false
	s.sorted = append(s.sorted, item)
	return cycle
}

// SortFunc flattens the dependency order of items whose identity is given by key.
func SortFunc[T any, K comparable](items []T, deps func(T) []T, key func(T) K) ([]T, bool) {
	s := &sorter[T, K]{deps: deps, key: key, visited: make(map[K]bool, len(items))}
	cycle := false
	for _, item := range items {
		cycle = s.visit(item) || cycle
	}
	return s.sorted, cycle
}

// Sort returns items with every dependency placed before its dependents.
func Sort[T comparable](items []T, deps func(T) []T) ([]T, bool) {
	return SortFunc(items, deps, identity[T])
}

// SortByKey is Sort with dependencies given by key.
func SortByKey[T any, K comparable](items []T, deps func(T) []K, key func(T) K) ([]T, bool, error) {
	remapped, err := remap(items, deps, key)
	if err != nil {
		return nil, false, err
	}
	sorted, cycle := SortFunc(items, remapped, key)
	return sorted, cycle, nil
}

func identity[T any](v T) T { return v }

// remap turns key-based dependencies into item-based ones, validating every key up front.
func remap[T any, K comparable](items []T, deps func(T) []K, key func(T) K) (func(T) []T, error) {
	byKey := make(map[K]T, len(items))
	for _, item := range items {
		k := key(item)
		if _, dup := byKey[k]; dup {
			return nil, fmt.Errorf("%w: %v", ErrDuplicateKey, k)
		}
		byKey[k] = item
	}
	for _, item := range items {
		for _, dk := range deps(item) {
			if _, ok := byKey[dk]; !ok {
				return nil, fmt.Errorf("%w: %v (required by %v)", ErrUnknownDependency, dk, key(item))
			}
		}
	}
	return func(item T) []T {
		keys := deps(item)
		if keys == nil {
			return nil
		}
		out := make([]T, len(keys))
		for i, k := range keys {
			out[i] = byKey[k]
		}
		return out
	}, nil
}
