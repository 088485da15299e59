package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"pursuit/game"
)

func mustState(t *testing.T, rows ...string) *game.GameState {
	t.Helper()
	layout, err := game.ParseLayout(strings.NewReader(strings.Join(rows, "\n")))
	require.NoError(t, err, "Layout should parse")
	state, err := game.NewGameState(layout, -1)
	require.NoError(t, err, "Initial state should be created")
	return state
}

// replay moves the seeker through a plan, failing on any illegal step.
func replay(t *testing.T, state *game.GameState, actions []game.Direction) *game.GameState {
	t.Helper()
	for i, action := range actions {
		next, err := state.GenerateNext(game.SeekerIndex, action)
		require.NoError(t, err, "Step %d (%s) of the plan should be legal", i, action)
		state = next
	}
	return state
}

var openMaze = []string{
	"#####",
	"#   #",
	"#  .#",
	"#P  #",
	"#####",
}

func TestSolvers(t *testing.T) {
	state := mustState(t, openMaze...)
	target := game.Cell{X: 3, Y: 2}

	t.Run("optimal solvers agree on a uniform maze", func(t *testing.T) {
		problem := NewPositionProblem(state, target)
		results := map[string]Result{
			"bfs":         BFS[PositionState](problem),
			"ucs":         UCS[PositionState](problem),
			"a* position": AStar(problem, ManhattanHeuristic),
			"a* all food": AStar(NewAllFoodProblem(state), AllFoodHeuristic),
		}

		for name, result := range results {
			require.True(t, result.Found, "%s should find the food", name)
			require.Len(t, result.Actions, 3, "%s should return a minimal plan", name)
			require.Equal(t, 3.0, result.Cost)
			require.True(t, replay(t, state, result.Actions).IsWin(), "%s plan should eat the food and win", name)
		}
	})

	t.Run("dfs finds a valid plan", func(t *testing.T) {
		result := DFS[PositionState](NewPositionProblem(state, target))

		require.True(t, result.Found)
		require.GreaterOrEqual(t, len(result.Actions), 3)
		require.True(t, replay(t, state, result.Actions).IsWin())
	})

	t.Run("greedy search reaches the goal", func(t *testing.T) {
		result := AStar(NewPositionProblem(state, target), DistanceHeuristic(Manhattan, true), WithGreedy())

		require.True(t, result.Found)
		require.Equal(t, target, replay(t, state, result.Actions).SeekerPosition().Nearest())
	})

	t.Run("unreachable goal yields an empty plan", func(t *testing.T) {
		walled := mustState(t,
			"#####",
			"#P#.#",
			"#####",
		)
		problem := NewPositionProblem(walled, game.Cell{X: 3, Y: 1})

		for name, result := range map[string]Result{
			"bfs": BFS[PositionState](problem),
			"dfs": DFS[PositionState](problem),
			"ucs": UCS[PositionState](problem),
			"a*":  AStar(problem, ManhattanHeuristic),
		} {
			require.False(t, result.Found, "%s should not find a goal", name)
			require.Empty(t, result.Actions, "%s should return an empty plan", name)
		}
	})

	t.Run("start already at goal", func(t *testing.T) {
		result := UCS[PositionState](NewPositionProblem(state, game.Cell{X: 1, Y: 1}))

		require.True(t, result.Found)
		require.Empty(t, result.Actions)
	})
}

func TestCostFunctions(t *testing.T) {
	state := mustState(t,
		"#####",
		"#   #",
		"#P. #",
		"#####",
	)
	target := game.Cell{X: 3, Y: 1}

	t.Run("food cells cost more to enter", func(t *testing.T) {
		cost := NewFoodCost(state)
		problem := NewPositionProblem(state, target, WithCostFn(cost))

		result := UCS[PositionState](problem)

		require.Equal(t, 1.0, problem.MinEdgeCost())
		require.Equal(t, 3.0, result.Cost, "Crossing the food should cost 2 and the last step 1")
		require.Equal(t, []game.Direction{game.East, game.East}, result.Actions)
	})

	t.Run("expensive food is routed around", func(t *testing.T) {
		cost := NewFoodCost(state)
		cost.Food = 5
		problem := NewPositionProblem(state, target, WithCostFn(cost))

		ucs := UCS[PositionState](problem)
		astar := AStar(problem, ManhattanHeuristic)

		require.Equal(t, 4.0, ucs.Cost, "Detour should be cheaper than eating")
		require.Len(t, ucs.Actions, 4)
		require.Equal(t, ucs.Cost, astar.Cost, "A* should stay optimal under non-uniform costs")
	})

	t.Run("custom start cell", func(t *testing.T) {
		problem := NewPositionProblem(state, target, WithStart(game.Cell{X: 3, Y: 2}))

		result := BFS[PositionState](problem)

		require.Equal(t, []game.Direction{game.South}, result.Actions)
	})
}

func TestFourPointProblem(t *testing.T) {
	state := mustState(t,
		"#####",
		"#. .#",
		"# P #",
		"#. .#",
		"#####",
	)

	t.Run("visits every point optimally", func(t *testing.T) {
		problem, err := NewFourPointProblem(state, nil)
		require.NoError(t, err)

		ucs := UCS[FourPointState](problem)
		astar := AStar(problem, FourPointHeuristic)

		require.Equal(t, 8.0, ucs.Cost)
		require.Equal(t, ucs.Cost, astar.Cost, "Admissible heuristic should keep A* optimal")
		require.LessOrEqual(t, astar.Expanded, ucs.Expanded)
		require.True(t, replay(t, state, astar.Actions).IsWin(), "Visiting the four food cells should eat them all")
		require.LessOrEqual(t, FourPointHeuristic(problem.Start(), problem), ucs.Cost)
	})

	t.Run("start on a point marks it visited", func(t *testing.T) {
		points := []game.Cell{{X: 2, Y: 2}, {X: 1, Y: 1}, {X: 3, Y: 1}, {X: 1, Y: 3}}
		problem, err := NewFourPointProblem(state, points)
		require.NoError(t, err)

		require.Equal(t, uint8(1), problem.Start().Mask)
	})

	t.Run("requires exactly four points", func(t *testing.T) {
		_, err := NewFourPointProblem(state, []game.Cell{{X: 1, Y: 1}})

		require.ErrorIs(t, err, ErrInvalidProblem)
	})

	t.Run("states with more visited points sort first", func(t *testing.T) {
		a := FourPointState{Cell: game.Cell{X: 3, Y: 3}, Mask: 0b0011}
		b := FourPointState{Cell: game.Cell{X: 1, Y: 1}, Mask: 0b0100}

		require.True(t, a.Less(b))
		require.False(t, b.Less(a))
	})
}

func TestAllFoodProblem(t *testing.T) {
	t.Run("ignores food walled off from the start", func(t *testing.T) {
		state := mustState(t,
			"#######",
			"#P. #.#",
			"#######",
		)
		problem := NewAllFoodProblem(state)

		require.Equal(t, []game.Cell{{X: 2, Y: 1}}, problem.Food())
		result := AStar(problem, AllFoodHeuristic)
		require.Equal(t, []game.Direction{game.East}, result.Actions)
	})

	t.Run("maze distance heuristic expands fewer nodes than manhattan", func(t *testing.T) {
		state := mustState(t,
			"#########",
			"#P      #",
			"# # # # #",
			"####### #",
			"#.      #",
			"#########",
		)
		problem := NewAllFoodProblem(state)

		maze := AStar(problem, AllFoodHeuristic)
		manhattan := AStar(NewAllFoodProblem(state), SuboptimalAllFoodHeuristic)

		require.Equal(t, 15.0, maze.Cost)
		require.Equal(t, maze.Cost, manhattan.Cost)
		require.Less(t, maze.Expanded, manhattan.Expanded, "Walls should make the maze heuristic strictly better informed")
		require.True(t, replay(t, state, maze.Actions).IsWin())
	})

	t.Run("maze distances are memoized", func(t *testing.T) {
		problem := NewAllFoodProblem(mustState(t, openMaze...))

		require.Same(t, problem.MazeDistances(), problem.MazeDistances())
	})
}

func TestFoodSet(t *testing.T) {
	set := fullFoodSet(10)

	require.Equal(t, 10, set.Len())
	require.True(t, set.Has(9))
	require.False(t, set.Has(10))

	smaller := set.Without(9).Without(0)

	require.Equal(t, 8, smaller.Len())
	require.Equal(t, 10, set.Len(), "Without should not modify the receiver")
	require.False(t, smaller.Has(9))
	require.True(t, fullFoodSet(0).Empty())
	require.Equal(t, smaller, set.Without(0).Without(9), "Equal sets should compare equal")
}
