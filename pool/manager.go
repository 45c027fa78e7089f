// File: pool/manager.go
// Author: momentics <momentics@gmail.com>
//
// Manager owns one registry per pooled type. It replaces process-wide pools:
// callers construct a Manager and pass it to whatever needs pooled storage.

package pool

import (
	"log/slog"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/momentics/hioload-kit/api"
)

type statsFunc func() api.PoolStats

// Manager lazily creates registries keyed by registry type.
type Manager struct {
	mu         sync.RWMutex
	registries map[reflect.Type]any
	stats      map[string]statsFunc
	opts       options
	clear      atomic.Bool
}

var _ api.StatsSource = (*Manager)(nil)

// NewManager creates an empty manager. The logger option is inherited by every registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		registries: make(map[reflect.Type]any),
		stats:      make(map[string]statsFunc),
		opts:       buildOptions("manager", opts),
	}
	m.clear.Store(m.opts.clearOnFree)
	return m
}

// Logger returns the logger shared by the manager's registries.
func (m *Manager) Logger() *slog.Logger { return m.opts.logger }

// ClearOnFree is the default used by NewManagedArray.
func (m *Manager) ClearOnFree() bool { return m.clear.Load() }

// SetClearOnFree changes the default for arrays leased afterwards.
func (m *Manager) SetClearOnFree(on bool) { m.clear.Store(on) }

// registry is implemented by every registry a Manager can own.
type registry interface {
	Name() string
	Stats() api.PoolStats
}

func registryFor[R registry](m *Manager, build func(log *slog.Logger) R) R {
	key := reflect.TypeFor[R]()
	m.mu.RLock()
	r, ok := m.registries[key]
	m.mu.RUnlock()
	if ok {
		return r.(R)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.registries[key]; ok {
		return r.(R)
	}
	reg := build(m.opts.logger)
	m.registries[key] = reg
	m.stats[reg.Name()] = reg.Stats
	m.opts.logger.Debug("registry created", slog.String("registry", reg.Name()))
	return reg
}

// ArraysOf returns the array registry for element type T.
func ArraysOf[T any](m *Manager) *ArrayRegistry[T] {
	return registryFor(m, func(log *slog.Logger) *ArrayRegistry[T] {
		return NewArrayRegistry[T](WithLogger(log))
	})
}

// CollectionsOf returns the collection registry for type C, using create the
// first time the registry is needed.
func CollectionsOf[C PooledCollection[T], T any](m *Manager, create func() C) *ObjectRegistry[C] {
	return registryFor(m, func(log *slog.Logger) *ObjectRegistry[C] {
		return NewCollectionRegistry[C, T](create, WithLogger(log))
	})
}

// DictionariesOf returns the dictionary pool for map[K]V.
func DictionariesOf[K comparable, V any](m *Manager) *DictionaryPool[K, V] {
	return registryFor(m, func(log *slog.Logger) *DictionaryPool[K, V] {
		return NewDictionaryPool[K, V](WithLogger(log))
	})
}

// NewManagedArray leases an array from m using the manager's clear-on-free default.
func NewManagedArray[T any](m *Manager, length int) (*Array[T], error) {
	return NewArray(ArraysOf[T](m), length, m.ClearOnFree())
}

// Stats returns a snapshot of every registry, keyed by registry name.
func (m *Manager) Stats() map[string]api.PoolStats {
	m.mu.RLock()
	fns := make(map[string]statsFunc, len(m.stats))
	for name, fn := range m.stats {
		fns[name] = fn
	}
	m.mu.RUnlock()
	out := make(map[string]api.PoolStats, len(fns))
	for name, fn := range fns {
		out[name] = fn()
	}
	return out
}
