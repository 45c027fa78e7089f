// Package pool
// Author: momentics <momentics@gmail.com>
//
// Reusable buffer and collection pools. Each registry keeps two sets, free and
// leased, guarded by one mutex; values only ever move between them. Pooled
// handles (Array, Collection, Dictionary) lease a value on construction and
// return it exactly once on Close. There are no finalizers: handles must be
// closed, typically with defer.
//
// Registries are owned by a Manager, which the caller constructs and passes
// around. There is no package-level pool state.
package pool
