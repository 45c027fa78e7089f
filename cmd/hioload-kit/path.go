// File: cmd/hioload-kit/path.go
// Author: momentics <momentics@gmail.com>

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/momentics/hioload-kit/astar"
)

var errNoPath = errors.New("no path from S to G")

func newPathCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "path --file grid.txt",
		Short: "Solve a text maze with A*",
		Long: `Reads a grid of '.' (open), '#' (wall), one 'S' and one 'G', and prints
the grid with the shortest four-way path marked '*' followed by its cost.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()
			g, err := astar.ParseGrid(f)
			if err != nil {
				return err
			}
			path, ok := g.Solve()
			if !ok {
				return errNoPath
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, g.Render(path))
			fmt.Fprintf(out, "cost: %g\n", path.Cost())
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "grid file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
