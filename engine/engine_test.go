package engine

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"pursuit/agent"
	"pursuit/experiments/metrics"
	"pursuit/game"
)

func mustLayout(t *testing.T, rows ...string) *game.Layout {
	t.Helper()
	layout, err := game.ParseLayout(strings.NewReader(strings.Join(rows, "\n")))
	require.NoError(t, err, "Layout should parse")
	return layout
}

// scripted plays a fixed list of actions, then stops. It also records the
// hooks the engine calls on it.
type scripted struct {
	actions    []game.Direction
	registered bool
	finalized  bool
	rewards    []float64
	terminals  int
}

func (s *scripted) FindAction(*game.GameState) (game.Direction, metrics.SearchMetric, error) {
	if len(s.actions) == 0 {
		return game.Stop, metrics.SearchMetric{}, nil
	}
	action := s.actions[0]
	s.actions = s.actions[1:]
	return action, metrics.SearchMetric{Algorithm: "scripted"}, nil
}

func (s *scripted) Register(*game.GameState) error {
	s.registered = true
	return nil
}

func (s *scripted) Final(*game.GameState) { s.finalized = true }
func (s *scripted) Algorithm() string     { return "scripted" }

func (s *scripted) Observe(_ *game.GameState, reward float64, terminal bool) {
	s.rewards = append(s.rewards, reward)
	if terminal {
		s.terminals++
	}
}

type countingDisplay struct {
	inits, updates, finishes int
	movers                   []int
}

func (d *countingDisplay) Init(*game.GameState) { d.inits++ }
func (d *countingDisplay) Update(delta game.Delta) {
	d.updates++
	d.movers = append(d.movers, delta.Mover)
}
func (d *countingDisplay) Finish() { d.finishes++ }

var openMaze = []string{
	"#####",
	"#   #",
	"#  .#",
	"#P  #",
	"#####",
}

func TestRun(t *testing.T) {
	t.Run("search seeker wins an open maze", func(t *testing.T) {
		planner, err := agent.NewPlanner("astar-allfood")
		require.NoError(t, err)
		e, err := New(mustLayout(t, openMaze...), []agent.Agent{agent.NewSearchSeeker("astar-allfood", planner)},
			WithDisplay(&LogDisplay{}))
		require.NoError(t, err)

		record, moves, err := e.Run()

		require.NoError(t, err)
		require.True(t, record.Win, "Seeker should eat the only food")
		require.Equal(t, 507, record.Score)
		require.Equal(t, 3, record.TotalMoves)
		require.Zero(t, record.FoodLeft)
		require.Equal(t, "astar-allfood", record.Algorithm)
		require.NotEqual(t, uuid.Nil, record.ID, "Record should get an ID")
		require.Len(t, moves, 3)
		require.Positive(t, moves[0].Nodes, "First move should carry the planning cost")
		require.Len(t, e.History(), 3)
	})

	t.Run("hooks and display see every turn", func(t *testing.T) {
		seeker := &scripted{actions: []game.Direction{game.East, game.East, game.North}}
		display := &countingDisplay{}
		e, err := New(mustLayout(t, openMaze...), []agent.Agent{seeker}, WithDisplay(display))
		require.NoError(t, err)

		_, _, err = e.Run()

		require.NoError(t, err)
		require.True(t, seeker.registered)
		require.True(t, seeker.finalized)
		require.Equal(t, []float64{-1, -1, 509}, seeker.rewards, "Rewards should be per-turn score changes")
		require.Equal(t, 1, seeker.terminals)
		require.Equal(t, 1, display.inits)
		require.Equal(t, 3, display.updates)
		require.Equal(t, 1, display.finishes)
	})

	t.Run("agents move in round-robin order", func(t *testing.T) {
		rng := rand.New(rand.NewSource(9))
		e, err := New(mustLayout(t,
			"#######",
			"#     #",
			"#P .  #",
			"#   12#",
			"#######",
		), []agent.Agent{&scripted{}, agent.NewRandomPursuer(1, rng), agent.NewRandomPursuer(2, rng)},
			WithMaxMoves(30))
		require.NoError(t, err)

		_, _, err = e.Run()

		require.NoError(t, err)
		for i, step := range e.History() {
			require.Equal(t, i%3, step.Agent, "Move %d should belong to agent %d", i, i%3)
		}
	})

	t.Run("engine does not advance past a lost state", func(t *testing.T) {
		pursuer := &scripted{}
		e, err := New(mustLayout(t, "#####", "#P1.#", "#####"),
			[]agent.Agent{&scripted{actions: []game.Direction{game.East}}, pursuer})
		require.NoError(t, err)

		record, _, err := e.Run()

		require.NoError(t, err)
		require.True(t, record.Lose)
		require.Equal(t, -501, record.Score, "Death penalty and time penalty should apply")
		require.Equal(t, []Step{{Agent: 0, Action: game.East}}, e.History(), "Pursuer should never move")
		require.Equal(t, 1, pursuer.terminals, "Pursuer should still observe the end")
	})

	t.Run("move cap stops an endless game", func(t *testing.T) {
		e, err := New(mustLayout(t, openMaze...), []agent.Agent{&scripted{}}, WithMaxMoves(5))
		require.NoError(t, err)

		record, moves, err := e.Run()

		require.NoError(t, err)
		require.False(t, record.Win || record.Lose)
		require.Equal(t, 5, record.TotalMoves)
		require.Len(t, moves, 5)
		require.Equal(t, -5, record.Score)
	})

	t.Run("illegal actions are rejected, not replaced", func(t *testing.T) {
		e, err := New(mustLayout(t, openMaze...), []agent.Agent{&scripted{actions: []game.Direction{game.West}}})
		require.NoError(t, err)

		_, _, err = e.Run()

		require.ErrorIs(t, err, game.ErrIllegalAction)
		require.Empty(t, e.History())
	})

	t.Run("agent count must fit the layout", func(t *testing.T) {
		_, err := New(mustLayout(t, openMaze...), []agent.Agent{&scripted{}, &scripted{}})
		require.ErrorIs(t, err, ErrAgentCount)

		_, err = New(mustLayout(t, openMaze...), nil)
		require.ErrorIs(t, err, ErrAgentCount)
	})
}
