// Package api
// Author: momentics
//
// Debug introspection of live pools.

package api

// Debug exposes runtime introspection.
type Debug interface {
	// DumpState emits a snapshot of every registered probe.
	DumpState() map[string]any

	// RegisterProbe registers a named probe; a later call with the same name replaces it.
	RegisterProbe(name string, fn func() any)
}
