// File: pool/dictionary.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"fmt"
	"iter"
	"maps"
	"reflect"

	"github.com/momentics/hioload-kit/api"
)

// table boxes a map so it has a comparable identity inside an ObjectRegistry.
type table[K comparable, V any] struct {
	m map[K]V
}

// DictionaryPool recycles map[K]V values.
type DictionaryPool[K comparable, V any] struct {
	reg *ObjectRegistry[*table[K, V]]
}

// NewDictionaryPool creates an empty dictionary pool.
func NewDictionaryPool[K comparable, V any](opts ...Option) *DictionaryPool[K, V] {
	name := "dictionary[" + reflect.TypeFor[map[K]V]().String() + "]"
	opts = append([]Option{WithName(name)}, opts...)
	return &DictionaryPool[K, V]{
		reg: NewObjectRegistry(
			func() *table[K, V] { return &table[K, V]{m: make(map[K]V)} },
			func(t *table[K, V]) { clear(t.m) },
			opts...,
		),
	}
}

// Name returns the registry name used in stats.
func (p *DictionaryPool[K, V]) Name() string { return p.reg.Name() }

func (p *DictionaryPool[K, V]) Stats() api.PoolStats { return p.reg.Stats() }

// Dictionary is a scoped lease of a reusable map, cleared on release.
type Dictionary[K comparable, V any] struct {
	lease
	pool *DictionaryPool[K, V]
	t    *table[K, V]
}

var _ api.Releaser = (*Dictionary[string, int])(nil)

// NewDictionary leases a map from p.
func NewDictionary[K comparable, V any](p *DictionaryPool[K, V]) *Dictionary[K, V] {
	return &Dictionary[K, V]{pool: p, t: p.reg.Acquire()}
}

// Deref returns the leased map. Do not hold onto it past Close.
func (d *Dictionary[K, V]) Deref() (map[K]V, error) {
	if err := d.check(); err != nil {
		return nil, err
	}
	return d.t.m, nil
}

// Get returns the value for key or api.ErrNotFound.
func (d *Dictionary[K, V]) Get(key K) (V, error) {
	v, ok, err := d.TryGet(key)
	if err != nil {
		return v, err
	}
	if !ok {
		return v, api.NewError(api.ErrCodeNotFound, "key not found").WithContext("key", key)
	}
	return v, nil
}

func (d *Dictionary[K, V]) TryGet(key K) (V, bool, error) {
	if err := d.check(); err != nil {
		var zero V
		return zero, false, err
	}
	v, ok := d.t.m[key]
	return v, ok, nil
}

// Set inserts or overwrites key.
func (d *Dictionary[K, V]) Set(key K, value V) error {
	if err := d.check(); err != nil {
		return err
	}
	d.t.m[key] = value
	return nil
}

// Add inserts key, failing with api.ErrAlreadyExists if it is present.
func (d *Dictionary[K, V]) Add(key K, value V) error {
	if err := d.check(); err != nil {
		return err
	}
	if _, ok := d.t.m[key]; ok {
		return api.NewError(api.ErrCodeAlreadyExists, "key already exists").WithContext("key", key)
	}
	d.t.m[key] = value
	return nil
}

func (d *Dictionary[K, V]) Remove(key K) error {
	if err := d.check(); err != nil {
		return err
	}
	delete(d.t.m, key)
	return nil
}

func (d *Dictionary[K, V]) ContainsKey(key K) (bool, error) {
	if err := d.check(); err != nil {
		return false, err
	}
	_, ok := d.t.m[key]
	return ok, nil
}

func (d *Dictionary[K, V]) Clear() error {
	if err := d.check(); err != nil {
		return err
	}
	clear(d.t.m)
	return nil
}

func (d *Dictionary[K, V]) Len() (int, error) {
	if err := d.check(); err != nil {
		return 0, err
	}
	return len(d.t.m), nil
}

// All iterates the entries; it yields nothing once the dictionary is closed.
func (d *Dictionary[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if d.Disposed() {
			return
		}
		for k, v := range d.t.m {
			if !yield(k, v) {
				return
			}
		}
	}
}

// Clone leases another map from the same pool with the same entries.
func (d *Dictionary[K, V]) Clone() (*Dictionary[K, V], error) {
	if err := d.check(); err != nil {
		return nil, err
	}
	out := NewDictionary(d.pool)
	maps.Copy(out.t.m, d.t.m)
	return out, nil
}

// Equal reports whether both handles lease the same map instance.
func (d *Dictionary[K, V]) Equal(other *Dictionary[K, V]) bool {
	if other == nil || d.Disposed() || other.Disposed() {
		return false
	}
	return d.t == other.t
}

func (d *Dictionary[K, V]) String() string {
	if d.Disposed() {
		return "Dictionary(disposed)"
	}
	return fmt.Sprintf("Dictionary(%v)", d.t.m)
}

// Close clears the map and returns it to the pool.
func (d *Dictionary[K, V]) Close() error {
	if !d.dispose() {
		return nil
	}
	d.pool.reg.Release(d.t)
	return nil
}
