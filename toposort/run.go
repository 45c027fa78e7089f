// File: toposort/run.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package toposort

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Run executes batches in order. Items of one batch run concurrently, at most
// limit at a time (limit <= 0 means unbounded). The first error cancels the
// context passed to the remaining items and stops before the next batch.
func Run[T any](ctx context.Context, batches [][]T, limit int, fn func(context.Context, T) error) error {
	for i, batch := range batches {
		if err := ctx.Err(); err != nil {
			return err
		}
		g, gctx := errgroup.WithContext(ctx)
		if limit > 0 {
			g.SetLimit(limit)
		}
		for _, item := range batch {
			g.Go(func() error {
				return fn(gctx, item)
			})
		}
		if err := g.Wait(); err != nil {
			return fmt.Errorf("batch %d: %w", i, err)
		}
	}
	return nil
}
