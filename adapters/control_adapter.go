// Package adapters
// Author: momentics <momentics@gmail.com>
//
// Control adapter implementing api.Control over the control package primitives
// and a pool statistics source.

package adapters

import (
	"github.com/momentics/hioload-kit/api"
	"github.com/momentics/hioload-kit/control"
)

type ControlAdapter struct {
	config *control.ConfigStore
	stats  api.StatsSource
	debug  *control.DebugProbes
}

var _ api.Control = (*ControlAdapter)(nil)

// NewControlAdapter wires a store, a stats source and a probe registry.
// A nil store or probe registry is replaced with a fresh one.
func NewControlAdapter(config *control.ConfigStore, stats api.StatsSource, debug *control.DebugProbes) *ControlAdapter {
	if config == nil {
		config = control.NewConfigStore(nil)
	}
	if debug == nil {
		debug = control.NewDebugProbes()
	}
	return &ControlAdapter{config: config, stats: stats, debug: debug}
}

func (c *ControlAdapter) GetConfig() map[string]any {
	return c.config.GetSnapshot()
}

// SetConfig runs reload listeners before returning, so callers observe the
// new settings immediately.
func (c *ControlAdapter) SetConfig(cfg map[string]any) error {
	return c.config.SetConfigSync(cfg)
}

func (c *ControlAdapter) Stats() map[string]api.PoolStats {
	if c.stats == nil {
		return map[string]api.PoolStats{}
	}
	return c.stats.Stats()
}

func (c *ControlAdapter) OnReload(fn func()) {
	c.config.OnReload(fn)
}

func (c *ControlAdapter) RegisterDebugProbe(name string, fn func() any) {
	c.debug.RegisterProbe(name, fn)
}

// DumpState runs every debug probe.
func (c *ControlAdapter) DumpState() map[string]any {
	return c.debug.DumpState()
}
