// control/debug.go
// Author: momentics <momentics@gmail.com>
//
// Named debug probes dumped on demand for runtime inspection.

package control

import (
	"fmt"
	"maps"
	"runtime"
	"slices"
	"sync"

	"github.com/momentics/hioload-kit/api"
)

// DebugProbes holds registered probe functions.
type DebugProbes struct {
	mu     sync.RWMutex
	probes map[string]func() any
}

var _ api.Debug = (*DebugProbes)(nil)

// NewDebugProbes creates a probe registry.
func NewDebugProbes() *DebugProbes {
	return &DebugProbes{
		probes: make(map[string]func() any),
	}
}

// RegisterProbe inserts a named debug hook, replacing any probe with the same name.
func (dp *DebugProbes) RegisterProbe(name string, fn func() any) {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	dp.probes[name] = fn
}

// Unregister drops a probe and reports whether it existed.
func (dp *DebugProbes) Unregister(name string) bool {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	_, ok := dp.probes[name]
	delete(dp.probes, name)
	return ok
}

// Names lists registered probes in sorted order.
func (dp *DebugProbes) Names() []string {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	return slices.Sorted(maps.Keys(dp.probes))
}

// DumpState runs every probe outside the lock. A panicking probe reports its
// panic value as a string instead of taking the caller down.
func (dp *DebugProbes) DumpState() map[string]any {
	dp.mu.RLock()
	probes := maps.Clone(dp.probes)
	dp.mu.RUnlock()

	out := make(map[string]any, len(probes))
	for name, fn := range probes {
		out[name] = runProbe(fn)
	}
	return out
}

func runProbe(fn func() any) (v any) {
	defer func() {
		if r := recover(); r != nil {
			v = fmt.Sprintf("probe panic: %v", r)
		}
	}()
	return fn()
}

// RegisterRuntimeProbes adds Go runtime probes under the "runtime." prefix.
func RegisterRuntimeProbes(dp *DebugProbes) {
	dp.RegisterProbe("runtime.cpus", func() any { return runtime.NumCPU() })
	dp.RegisterProbe("runtime.gomaxprocs", func() any { return runtime.GOMAXPROCS(0) })
	dp.RegisterProbe("runtime.goroutines", func() any { return runtime.NumGoroutine() })
	dp.RegisterProbe("runtime.platform", func() any { return runtime.GOOS + "/" + runtime.GOARCH })
}
