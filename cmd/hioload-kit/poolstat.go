// File: cmd/hioload-kit/poolstat.go
// Author: momentics <momentics@gmail.com>

package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/momentics/hioload-kit/control"
	"github.com/momentics/hioload-kit/facade"
	"github.com/momentics/hioload-kit/pool"
)

var defaultLengths = []int{64, 256, 1024}

func newPoolstatCmd(g *globalFlags) *cobra.Command {
	var (
		cfgPath string
		workers int
		rounds  int
	)
	cmd := &cobra.Command{
		Use:   "poolstat",
		Short: "Run a short pooled workload and print Prometheus pool metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := control.DefaultConfig()
			if cfgPath != "" {
				var err error
				if cfg, err = control.LoadConfig(cfgPath); err != nil {
					return err
				}
			}
			if !cfg.Metrics.Enabled {
				return errors.New("metrics are disabled in the config")
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Log.Level = g.logLevel
			}
			opts := []facade.Option{facade.WithLogOutput(cmd.ErrOrStderr())}
			if g.logFormat == "json" {
				opts = append(opts, facade.WithJSONLogs())
			}
			kit, err := facade.New(cfg, opts...)
			if err != nil {
				return err
			}
			defer kit.Close()

			if err := runWorkload(cmd.Context(), kit.Manager(), workloadLengths(cfg), workers, rounds); err != nil {
				return err
			}
			return kit.Metrics().WriteText(cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", "", "YAML config file")
	cmd.Flags().IntVar(&workers, "workers", 4, "concurrent workers")
	cmd.Flags().IntVar(&rounds, "rounds", 100, "lease/release rounds per worker")
	return cmd
}

func workloadLengths(cfg *control.Config) []int {
	if len(cfg.Prewarm) == 0 {
		return defaultLengths
	}
	out := make([]int, 0, len(cfg.Prewarm))
	for _, p := range cfg.Prewarm {
		out = append(out, p.Length)
	}
	return out
}

// runWorkload leases byte arrays of every length plus a pooled dictionary per
// round, on workers goroutines.
func runWorkload(ctx context.Context, m *pool.Manager, lengths []int, workers, rounds int) error {
	if workers <= 0 || rounds < 0 {
		return fmt.Errorf("invalid workload: workers=%d rounds=%d", workers, rounds)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	dicts := pool.DictionariesOf[string, int](m)
	eg, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		eg.Go(func() error {
			for r := 0; r < rounds; r++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := workloadRound(m, dicts, lengths, byte(w), r); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return eg.Wait()
}

func workloadRound(m *pool.Manager, dicts *pool.DictionaryPool[string, int], lengths []int, mark byte, round int) error {
	d := pool.NewDictionary(dicts)
	defer d.Close()
	for _, n := range lengths {
		if err := leaseAndMark(m, n, mark); err != nil {
			return err
		}
		if err := d.Set(strconv.Itoa(n), round); err != nil {
			return err
		}
	}
	return nil
}

func leaseAndMark(m *pool.Manager, n int, mark byte) error {
	a, err := pool.NewManagedArray[byte](m, n)
	if err != nil {
		return err
	}
	defer a.Close()
	if n == 0 {
		return nil
	}
	return a.Set(n-1, mark)
}
