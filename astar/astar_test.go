package astar_test

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-kit/astar"
)

func TestPath_Immutable(t *testing.T) {
	base := astar.Start("a")
	b := base.AddStep("b", 2)
	c := base.AddStep("c", 5)

	assert.Equal(t, 0.0, base.Cost())
	assert.Nil(t, base.Previous())
	assert.Equal(t, 1, base.Len())

	assert.Equal(t, "b", b.Last())
	assert.Same(t, base, b.Previous())
	assert.Equal(t, 2.0, b.Cost())
	assert.Equal(t, 5.0, c.Cost())

	d := b.AddStep("d", 1.5)
	assert.Equal(t, 3.5, d.Cost())
	assert.Equal(t, []string{"a", "b", "d"}, d.Nodes())
	assert.Equal(t, []string{"d", "b", "a"}, slices.Collect(d.Steps()))
}

// weighted graph where the direct hop is more expensive than the detour
func TestFindPath_PrefersCheaperDetour(t *testing.T) {
	edges := map[string]map[string]float64{
		"s": {"a": 1, "g": 10},
		"a": {"b": 1},
		"b": {"g": 1},
	}
	neighbors := func(n string) []string {
		var out []string
		for k := range edges[n] {
			out = append(out, k)
		}
		slices.Sort(out)
		return out
	}
	dist := func(a, b string) float64 { return edges[a][b] }
	zero := func(string) float64 { return 0 }

	path, ok := astar.FindPath("s", "g", neighbors, dist, zero)
	require.True(t, ok)
	assert.Equal(t, []string{"s", "a", "b", "g"}, path.Nodes())
	assert.Equal(t, 3.0, path.Cost())
}

func TestFindPath_StartIsGoal(t *testing.T) {
	path, ok := astar.FindPath(1, 1, func(int) []int { return nil },
		func(int, int) float64 { return 1 }, func(int) float64 { return 0 })
	require.True(t, ok)
	assert.Equal(t, []int{1}, path.Nodes())
	assert.Zero(t, path.Cost())
}

func TestFindPath_Unreachable(t *testing.T) {
	neighbors := func(n int) []int {
		if n < 3 {
			return []int{n + 1}
		}
		return nil
	}
	path, ok := astar.FindPath(0, 10, neighbors,
		func(int, int) float64 { return 1 }, func(int) float64 { return 0 })
	assert.False(t, ok)
	assert.Nil(t, path)
}

func TestFindPath_CyclicGraphTerminates(t *testing.T) {
	// ring of 6 nodes, both directions
	neighbors := func(n int) []int { return []int{(n + 1) % 6, (n + 5) % 6} }
	path, ok := astar.FindPath(0, 4, neighbors,
		func(int, int) float64 { return 1 }, func(int) float64 { return 0 })
	require.True(t, ok)
	assert.Equal(t, []int{0, 5, 4}, path.Nodes())
}

const maze = `
S.#.....
.##.###.
....#...
.##...#G
`

func TestGrid_Solve(t *testing.T) {
	g, err := astar.ParseGrid(strings.NewReader(strings.TrimPrefix(maze, "\n")))
	require.NoError(t, err)
	assert.Equal(t, astar.Point{X: 0, Y: 0}, g.Start)
	assert.Equal(t, astar.Point{X: 7, Y: 3}, g.Goal)

	path, ok := g.Solve()
	require.True(t, ok)
	nodes := path.Nodes()
	assert.Equal(t, g.Start, nodes[0])
	assert.Equal(t, g.Goal, nodes[len(nodes)-1])
	for i := 1; i < len(nodes); i++ {
		assert.Equal(t, 1.0, astar.Manhattan(nodes[i-1], nodes[i]), "steps are unit moves")
		assert.True(t, g.Open(nodes[i]))
	}
	// down to row 2, along row 3, then up and around the last wall
	assert.Equal(t, 12.0, path.Cost())
	assert.Equal(t, len(nodes)-1, int(path.Cost()))

	out := g.Render(path)
	assert.Equal(t, 11, strings.Count(out, "*"))
}

func TestGrid_Blocked(t *testing.T) {
	g, err := astar.ParseGrid(strings.NewReader("S#G\n"))
	require.NoError(t, err)
	_, ok := g.Solve()
	assert.False(t, ok)
	assert.Equal(t, "S#G\n", g.Render(nil))
}

func TestParseGrid_Errors(t *testing.T) {
	for name, src := range map[string]string{
		"no goal":    "S..\n",
		"two starts": "S.S\n..G\n",
		"bad cell":   "S.x\n..G\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := astar.ParseGrid(strings.NewReader(src))
			assert.ErrorIs(t, err, astar.ErrBadGrid)
		})
	}
}

func TestManhattan(t *testing.T) {
	assert.Equal(t, 7.0, astar.Manhattan(astar.Point{X: -1, Y: 2}, astar.Point{X: 2, Y: -2}))
}
