// File: pool/handle.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"sync/atomic"

	"github.com/momentics/hioload-kit/api"
)

// lease is the disposal state shared by every pooled handle.
// Handles are not safe for concurrent Close and access.
type lease struct {
	disposed atomic.Bool
}

// Disposed reports whether the handle has been closed.
func (l *lease) Disposed() bool { return l.disposed.Load() }

func (l *lease) check() error {
	if l.disposed.Load() {
		return api.ErrDisposed
	}
	return nil
}

// dispose flips the flag once; only the winning caller releases the value.
func (l *lease) dispose() bool {
	return l.disposed.CompareAndSwap(false, true)
}
