package experiments

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"pursuit/agent"
	"pursuit/experiments/metrics"
	"pursuit/game"
	"pursuit/searcher"
)

func smallExperiment(t *testing.T, configs []metrics.AgentConfig) Experiment {
	t.Helper()
	layout, err := game.ParseLayout(strings.NewReader(strings.Join([]string{
		"#########",
		"#P..#..1#",
		"#.#...#.#",
		"#o.....2#",
		"#########",
	}, "\n")))
	require.NoError(t, err)
	return Experiment{
		Name:        "small",
		Layout:      layout,
		LayoutName:  "small",
		Configs:     configs,
		NumGames:    2,
		MaxMoves:    200,
		Seed:        7,
		Temperature: 0.5,
	}
}

func TestRun(t *testing.T) {
	configs := []metrics.AgentConfig{
		{ID: 1, Seeker: "alphabeta", Pursuer: PolicyRandom, Pursuers: -1, Depth: 1},
		{ID: 2, Seeker: "astar-allfood", Pursuer: PolicyGreedy, Pursuers: 1},
	}
	exp := smallExperiment(t, configs)

	games, moves, err := Run(exp)

	require.NoError(t, err)
	require.Len(t, games, 4, "Every config should play every game")
	require.NotEmpty(t, moves)
	for i, record := range games {
		require.Equal(t, configs[i/2].ID, record.Config)
		require.Equal(t, "small", record.Layout)
		require.LessOrEqual(t, record.TotalMoves, exp.MaxMoves)
	}
	require.Equal(t, "minimax with alpha-beta pruning", games[0].Algorithm)
	require.Equal(t, "astar-allfood", games[2].Algorithm)

	t.Run("records are stored as csv and parquet", func(t *testing.T) {
		dir, err := Store(t.TempDir(), exp, games, moves)
		require.NoError(t, err)

		for _, name := range []string{"agent_configs.csv", "game_records.csv", "move_records.csv"} {
			_, err := os.Stat(filepath.Join(dir, name))
			require.NoError(t, err, "%s should be written", name)
		}
		rows, err := metrics.ReadGameRecordsParquet(filepath.Join(dir, "game_records.parquet"))
		require.NoError(t, err)
		require.Len(t, rows, len(games))
		require.Equal(t, games[0].ID.String(), rows[0].ID)
		require.Equal(t, int32(games[3].Score), rows[3].Score)
	})
}

func TestRunRecordsSeekerExperience(t *testing.T) {
	exp := smallExperiment(t, []metrics.AgentConfig{
		{ID: 1, Seeker: "expectimax", Pursuer: PolicyRandom, Pursuers: -1, Depth: 1},
	})
	exp.NumGames = 1
	exp.Memory = agent.NewReplayMemory(1000)

	games, moves, err := Run(exp)

	require.NoError(t, err)
	require.Equal(t, "expectimax", games[0].Algorithm, "Recorded seeker should keep its algorithm name")
	seekerMoves := 0
	for _, move := range moves {
		if move.Agent == game.SeekerIndex {
			seekerMoves++
		}
	}
	require.Equal(t, seekerMoves, exp.Memory.Len(), "Every seeker action should become one experience")

	total := 0.0
	for _, e := range exp.Memory.Sample(exp.Memory.Len(), rand.New(rand.NewSource(1))) {
		total += e.Reward
	}
	require.Equal(t, float64(games[0].Score), total, "Rewards should add up to the final score")
}

func TestNewAgents(t *testing.T) {
	exp := smallExperiment(t, nil)
	rng := rand.New(rand.NewSource(1))

	t.Run("pursuer count defaults to the layout's spawns", func(t *testing.T) {
		agents, err := NewAgents(metrics.AgentConfig{Seeker: "expectimax", Pursuer: PolicyRandom, Pursuers: -1}, exp.Layout, rng, 1)
		require.NoError(t, err)
		require.Len(t, agents, 3)
	})

	t.Run("unknown policies", func(t *testing.T) {
		_, err := NewAgents(metrics.AgentConfig{Seeker: "alphabeta", Pursuer: "clever", Pursuers: 1}, exp.Layout, rng, 1)
		require.ErrorIs(t, err, ErrUnknownPolicy)

		_, err = NewAgents(metrics.AgentConfig{Seeker: "oracle", Pursuer: PolicyRandom}, exp.Layout, rng, 1)
		require.ErrorIs(t, err, searcher.ErrUnknownAlgorithm)
	})
}

func TestConfigs(t *testing.T) {
	configs := DepthSweep(searcher.KindExpectimax, PolicyGreedy, 2, 3)
	require.Len(t, configs, 3)
	require.Equal(t, 3, configs[2].Depth)

	configs = SeekerComparison(PolicyRandom, -1, 2)
	require.Len(t, configs, 3)
	require.Equal(t, "expectimax", configs[2].Seeker)
}

func TestSummarizeThroughput(t *testing.T) {
	record := func(algorithm string, nodes int, duration time.Duration) metrics.MoveRecord {
		return metrics.MoveRecord{MoveMetric: metrics.MoveMetric{SearchMetric: metrics.SearchMetric{
			Algorithm: algorithm,
			Nodes:     nodes,
			Duration:  duration,
		}}}
	}

	summary := SummarizeThroughput([]metrics.MoveRecord{
		record("minimax", 100, time.Second),
		record("expectimax", 50, time.Second),
		record("minimax", 300, time.Second),
		record("", 0, 0),
	})

	require.Equal(t, []Throughput{
		{Algorithm: "expectimax", Decisions: 1, Nodes: 50, NodesPerSecond: 50},
		{Algorithm: "minimax", Decisions: 2, Nodes: 400, NodesPerSecond: 200},
	}, summary)
}
