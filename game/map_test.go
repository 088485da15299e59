package game

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestParseLayout(t *testing.T) {
	t.Run("rows are inverted so y=0 is the bottom", func(t *testing.T) {
		layout := mustLayout(t,
			"#####",
			"#o 2#",
			"#. 1#",
			"#P  #",
			"#####",
		)

		require.Equal(t, 5, layout.Width)
		require.Equal(t, 5, layout.Height)
		require.True(t, layout.Food.At(Cell{X: 1, Y: 2}), "Food should be read from the middle row")
		require.Equal(t, []Cell{{X: 1, Y: 3}}, layout.Capsules)
		require.Equal(t, []Spawn{
			{Cell: Cell{X: 1, Y: 1}, Seeker: true, Label: 'P'},
			{Cell: Cell{X: 3, Y: 2}, Label: '1'},
			{Cell: Cell{X: 3, Y: 3}, Label: '2'},
		}, layout.Spawns, "Seeker should come first, then pursuers by label")
		require.True(t, layout.IsWall(Cell{X: 0, Y: 0}))
		require.True(t, layout.IsWall(Cell{X: -1, Y: 2}), "Out of bounds should count as wall")
		require.False(t, layout.IsWall(Cell{X: 2, Y: 2}))
	})

	t.Run("round trips through String", func(t *testing.T) {
		layout := mustLayout(t, openMaze...)

		require.Equal(t, strings.Join(openMaze, "\n")+"\n", layout.String())
	})

	t.Run("trailing open cells keep the row width", func(t *testing.T) {
		layout, err := ParseLayout(strings.NewReader("#####\n#P.  \n#####\r\n"))

		require.NoError(t, err, "Rows ending in open cells are still rectangular")
		require.Equal(t, 5, layout.Width)
		require.False(t, layout.IsWall(Cell{X: 4, Y: 1}), "Trailing space should be an open cell")
		require.True(t, layout.Food.At(Cell{X: 2, Y: 1}))
	})

	t.Run("invalid mazes", func(t *testing.T) {
		for name, maze := range map[string]string{
			"ragged rows":    "#####\n#P#\n#####",
			"no seeker":      "#####\n#. .#\n#####",
			"two seekers":    "#####\n#P P#\n#####",
			"unknown symbol": "#####\n#P x#\n#####",
			"empty":          "",
		} {
			_, err := ParseLayout(strings.NewReader(maze))
			require.ErrorIs(t, err, ErrInvalidLayout, "Maze with %s should be rejected", name)
		}
	})
}

func TestPlaceEntities(t *testing.T) {
	walls := mustLayout(t, openMaze...).Walls

	t.Run("entities land on distinct free cells", func(t *testing.T) {
		layout, err := PlaceEntities(walls, 2, 4, 1, rand.New(rand.NewSource(7)))
		require.NoError(t, err)

		require.Equal(t, 2, layout.NumPursuers())
		require.True(t, layout.Spawns[0].Seeker)
		require.Equal(t, 4, layout.Food.Count(true))
		require.Len(t, layout.Capsules, 1)

		seen := make(map[Cell]bool)
		cells := append(layout.Food.Positions(), layout.Capsules...)
		for _, spawn := range layout.Spawns {
			cells = append(cells, spawn.Cell)
		}
		for _, cell := range cells {
			require.False(t, walls.At(cell), "Entity should not be placed on a wall")
			require.False(t, seen[cell], "Entities should not share a cell")
			seen[cell] = true
		}
	})

	t.Run("too many entities", func(t *testing.T) {
		_, err := PlaceEntities(walls, 3, 5, 1, rand.New(rand.NewSource(7)))

		require.ErrorIs(t, err, ErrInsufficientSpace)
	})
}

func TestGrid(t *testing.T) {
	grid := NewGrid(3, 2, false)

	updated := grid.With(Cell{X: 2, Y: 1}, true).With(Cell{X: 0, Y: 1}, true)

	require.Equal(t, 0, grid.Count(true), "With should not modify the receiver")
	require.Equal(t, []Cell{{X: 0, Y: 1}, {X: 2, Y: 1}}, updated.Positions(), "Positions should be listed column by column")
	require.Equal(t, 4, updated.Invert().Count(true))
	require.False(t, updated.At(Cell{X: 5, Y: 5}), "Out of bounds cells should read false")
}

func TestMazeGraph(t *testing.T) {
	layout := mustLayout(t,
		"#####",
		"#P#.#",
		"#   #",
		"#####",
	)
	graph := NewMazeGraph(layout.Walls, nil)
	from, to := Cell{X: 1, Y: 2}, Cell{X: 3, Y: 2}

	t.Run("distances go around walls", func(t *testing.T) {
		distances := graph.AllPairs()

		require.Equal(t, 4.0, distances.Get(from, to), "Maze distance should route around the wall")
		require.Equal(t, 2, from.Manhattan(to))
		require.Equal(t, 0.0, distances.Get(from, from))
		require.True(t, math.IsInf(distances.Get(Cell{X: 2, Y: 2}, to), 1), "Wall cells should be unreachable")
	})

	t.Run("multi-target distances only know their targets", func(t *testing.T) {
		distances := graph.DistancesTo([]Cell{to})

		require.Equal(t, 4.0, distances.Get(from, to))
		require.True(t, math.IsInf(distances.Get(to, from), 1))
		nearest, dist := distances.Nearest(Cell{X: 2, Y: 1}, []Cell{to, from})
		require.Equal(t, to, nearest)
		require.Equal(t, 2.0, dist)
	})

	t.Run("adjacency matrix", func(t *testing.T) {
		matrix := graph.AdjacencyMatrix()
		cells := graph.Cells()

		require.Len(t, matrix, graph.Len())
		require.Equal(t, 5, graph.Len())
		for i := range cells {
			require.Equal(t, 0.0, matrix[i][i])
			for j := range cells {
				if cells[i].Manhattan(cells[j]) == 1 {
					require.Equal(t, 1.0, matrix[i][j])
				} else if i != j {
					require.True(t, math.IsInf(matrix[i][j], 1))
				}
			}
		}
		require.Len(t, graph.AdjacencyList()[Cell{X: 2, Y: 1}], 2)
	})

	t.Run("cost of entering a cell", func(t *testing.T) {
		priced := NewMazeGraph(layout.Walls, func(c Cell) float64 {
			if layout.Food.At(c) {
				return 2
			}
			return 1
		})

		require.Equal(t, 5.0, priced.AllPairs().Get(from, to), "Entering the food cell should cost more")
		require.Equal(t, 4.0, priced.AllPairs().Get(to, from))
	})
}

func TestEvaluator(t *testing.T) {
	t.Run("prefers closing in on food", func(t *testing.T) {
		state := mustState(t, mustLayout(t, openMaze...))
		evaluator := NewEvaluator(state.Layout(), nil, WithJitter(0))

		got := evaluator.Evaluate(state)
		closer := evaluator.Evaluate(mustPlay(t, state, SeekerIndex, East))

		require.InDelta(t, 1e2/3+1e4, got, 1e-9)
		require.Greater(t, closer, got, "Moving towards food should score higher")
	})

	t.Run("penalizes a nearby pursuer", func(t *testing.T) {
		state := mustState(t, mustLayout(t,
			"#######",
			"#P 1 .#",
			"#######",
		))
		evaluator := NewEvaluator(state.Layout(), nil, WithJitter(0))

		require.InDelta(t, -1e2/2+1e4, evaluator.Evaluate(state), 1e-9)
	})

	t.Run("jitter stays within bounds", func(t *testing.T) {
		state := mustState(t, mustLayout(t, openMaze...))
		evaluator := NewEvaluator(state.Layout(), rand.New(rand.NewSource(3)))

		for i := 0; i < 50; i++ {
			require.InDelta(t, 1e2/3+1e4, evaluator.Evaluate(state), 2+1e-6)
		}
	})
}

func TestPrimitives(t *testing.T) {
	t.Run("direction reverse", func(t *testing.T) {
		require.Equal(t, South, North.Reverse())
		require.Equal(t, East, West.Reverse())
		require.Equal(t, Stop, Stop.Reverse())
	})

	t.Run("configuration keeps heading on zero displacement", func(t *testing.T) {
		config := Configuration{Position: Vector{X: 1, Y: 1}, Direction: West}

		require.Equal(t, config, config.Advance(Stop.Vector(1)))
		require.Equal(t, Configuration{Position: Vector{X: 1, Y: 1.5}, Direction: North}, config.Advance(North.Vector(0.5)))
	})

	t.Run("vector distances", func(t *testing.T) {
		a, b := Vector{X: 1, Y: 1}, Vector{X: 4, Y: 5}

		require.Equal(t, 7.0, a.Manhattan(b))
		require.Equal(t, 5.0, a.Euclidean(b))
		require.Equal(t, 4.0, a.Chebyshev(b))
		require.Equal(t, Cell{X: 2, Y: 3}, Vector{X: 1.5, Y: 2.6}.Nearest())
		require.True(t, a.ApproxEqual(Vector{X: 1 + 1e-9, Y: 1}))
		require.False(t, a.ApproxEqual(b))
		require.Equal(t, Vector{X: 3, Y: 4}, b.Sub(a))
		require.Equal(t, Vector{X: 0, Y: -0.5}, South.Vector(0.5), "Half speed should halve the displacement")
		require.False(t, Vector{X: 1.5, Y: 1}.Aligned(AlignmentTolerance))
	})
}
