// File: pool/stats.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"

	"github.com/momentics/hioload-kit/api"
)

// counters are read by Stats without the registry lock; each sits on its own cache line.
type counters struct {
	alloc    atomic.Int64
	_        cpu.CacheLinePad
	acquired atomic.Int64
	_        cpu.CacheLinePad
	released atomic.Int64
	_        cpu.CacheLinePad
	rejected atomic.Int64
}

func (c *counters) snapshot(name string) api.PoolStats {
	return api.PoolStats{
		Name:             name,
		TotalAlloc:       c.alloc.Load(),
		Acquired:         c.acquired.Load(),
		Released:         c.released.Load(),
		RejectedReleases: c.rejected.Load(),
		ByLength:         make(map[int]api.LengthStats),
	}
}
