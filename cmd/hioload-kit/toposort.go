// File: cmd/hioload-kit/toposort.go
// Author: momentics <momentics@gmail.com>

package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/momentics/hioload-kit/toposort"
)

// graphFile is the YAML layout read by the toposort command.
type graphFile struct {
	Items []graphItem `yaml:"items"`
}

type graphItem struct {
	Name string   `yaml:"name"`
	Deps []string `yaml:"deps"`
}

func loadGraph(path string) (*graphFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var g graphFile
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &g, nil
}

func newToposortCmd() *cobra.Command {
	var (
		file string
		flat bool
	)
	cmd := &cobra.Command{
		Use:   "toposort --file graph.yaml",
		Short: "Print the items of a dependency graph in dependency order",
		Long: `Reads items: [{name, deps: [...]}] from a YAML file and prints
one line per batch. Items in the same batch do not depend on each other.
A cycle is reported on stderr but does not fail the command.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := loadGraph(file)
			if err != nil {
				return err
			}
			deps := func(it graphItem) []string { return it.Deps }
			name := func(it graphItem) string { return it.Name }
			out := cmd.OutOrStdout()

			var cycle bool
			if flat {
				var order []graphItem
				order, cycle, err = toposort.SortByKey(g.Items, deps, name)
				if err != nil {
					return err
				}
				for _, it := range order {
					fmt.Fprintln(out, it.Name)
				}
			} else {
				var batches [][]graphItem
				batches, cycle, err = toposort.GroupByKey(g.Items, deps, name)
				if err != nil {
					return err
				}
				for i, b := range batches {
					names := make([]string, len(b))
					for j, it := range b {
						names[j] = it.Name
					}
					fmt.Fprintf(out, "batch %d: %s\n", i, strings.Join(names, " "))
				}
			}
			if cycle {
				slog.Warn("dependency cycle detected", slog.String("file", file))
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: dependency cycle detected; order is best effort")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "YAML graph file")
	cmd.Flags().BoolVar(&flat, "flat", false, "print a single flattened order instead of batches")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
