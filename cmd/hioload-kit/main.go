// File: cmd/hioload-kit/main.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Command hioload-kit exercises the library from the shell: dependency
// ordering of YAML graphs, A* over text mazes and pool metrics dumps.

package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/momentics/hioload-kit/control"
)

type globalFlags struct {
	logFormat string
	logLevel  string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:           "hioload-kit",
		Short:         "Pooled collections, priority queues and dependency ordering toolkit",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := g.logger(cmd)
			if err != nil {
				return err
			}
			slog.SetDefault(logger)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&g.logFormat, "log-format", "text", "log format: text or json")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "warn", "log level: debug, info, warn or error")

	root.AddCommand(newToposortCmd(), newPathCmd(), newPoolstatCmd(g))
	return root
}

func (g *globalFlags) logger(cmd *cobra.Command) (*slog.Logger, error) {
	lvl, err := control.ParseLevel(g.logLevel)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(g.logFormat) {
	case "text":
		return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", g.logFormat)
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
