// File: api/control.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// Control manages dynamic config, pool statistics and debug hooks of a Kit.
type Control interface {
	// GetConfig returns a snapshot of the effective configuration.
	GetConfig() map[string]any

	// SetConfig merges values and notifies reload listeners.
	SetConfig(cfg map[string]any) error

	// Stats returns pool statistics keyed by registry name.
	Stats() map[string]PoolStats

	OnReload(fn func())
	RegisterDebugProbe(name string, fn func() any)
}
