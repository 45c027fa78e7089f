// File: astar/grid.go
// Author: momentics <momentics@gmail.com>

package astar

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

var ErrBadGrid = errors.New("astar: malformed grid")

// Point is a grid cell, X to the right and Y downwards.
type Point struct{ X, Y int }

// Grid is a four-connected maze read from text: '.' open, '#' wall,
// 'S' start and 'G' goal.
type Grid struct {
	cells       [][]byte
	Start, Goal Point
}

// ParseGrid reads a grid. Rows may differ in length; missing cells are walls.
func ParseGrid(r io.Reader) (*Grid, error) {
	g := &Grid{}
	var hasStart, hasGoal bool
	sc := bufio.NewScanner(r)
	for y := 0; sc.Scan(); y++ {
		row := []byte(strings.TrimRight(sc.Text(), "\r"))
		for x, c := range row {
			switch c {
			case '.', '#':
			case 'S':
				if hasStart {
					return nil, fmt.Errorf("%w: second start at %d,%d", ErrBadGrid, x, y)
				}
				g.Start, hasStart = Point{x, y}, true
			case 'G':
				if hasGoal {
					return nil, fmt.Errorf("%w: second goal at %d,%d", ErrBadGrid, x, y)
				}
				g.Goal, hasGoal = Point{x, y}, true
			default:
				return nil, fmt.Errorf("%w: unexpected %q at %d,%d", ErrBadGrid, c, x, y)
			}
		}
		g.cells = append(g.cells, row)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if !hasStart || !hasGoal {
		return nil, fmt.Errorf("%w: need exactly one S and one G", ErrBadGrid)
	}
	return g, nil
}

// Open reports whether p lies inside the grid and is not a wall.
func (g *Grid) Open(p Point) bool {
	if p.Y < 0 || p.Y >= len(g.cells) || p.X < 0 || p.X >= len(g.cells[p.Y]) {
		return false
	}
	return g.cells[p.Y][p.X] != '#'
}

func (g *Grid) Neighbors(p Point) []Point {
	out := make([]Point, 0, 4)
	for _, d := range [...]Point{{0, -1}, {1, 0}, {0, 1}, {-1, 0}} {
		if n := (Point{p.X + d.X, p.Y + d.Y}); g.Open(n) {
			out = append(out, n)
		}
	}
	return out
}

// Manhattan is the taxicab distance, admissible for unit-cost four-way moves.
func Manhattan(a, b Point) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return float64(dx + dy)
}

// Solve searches from Start to Goal with unit step cost.
func (g *Grid) Solve() (*Path[Point], bool) {
	return FindPath(g.Start, g.Goal, g.Neighbors,
		func(Point, Point) float64 { return 1 },
		func(p Point) float64 { return Manhattan(p, g.Goal) })
}

// Render draws the grid with path cells marked '*'.
func (g *Grid) Render(path *Path[Point]) string {
	on := make(map[Point]bool)
	if path != nil {
		for p := range path.Steps() {
			on[p] = true
		}
	}
	var sb strings.Builder
	for y, row := range g.cells {
		for x, c := range row {
			if c == '.' && on[Point{x, y}] {
				c = '*'
			}
			sb.WriteByte(c)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
