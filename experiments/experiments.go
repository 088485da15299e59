package experiments

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"pursuit/agent"
	"pursuit/engine"
	"pursuit/experiments/metrics"
	"pursuit/game"
	"pursuit/searcher"
)

var ErrUnknownPolicy = errors.New("unknown pursuer policy")

const (
	PolicyRandom = "random"
	PolicyGreedy = "greedy"
)

// Experiment plays NumGames games on one layout for each agent config. When
// Memory is set, every seeker transition is recorded into it.
type Experiment struct {
	Name        string
	Layout      *game.Layout
	LayoutName  string
	Configs     []metrics.AgentConfig
	NumGames    int
	MaxMoves    int
	Seed        uint64
	Temperature float64
	Memory      *agent.ReplayMemory
}

// SeekerComparison pits the game-tree seekers against the same pursuers.
// Planning seekers are left out: their plans grow exponentially with the
// food on the layout.
func SeekerComparison(pursuer string, pursuers, depth int) []metrics.AgentConfig {
	seekers := []string{
		string(searcher.KindAlphaBeta),
		string(searcher.KindMinimax),
		string(searcher.KindExpectimax),
	}
	configs := make([]metrics.AgentConfig, 0, len(seekers))
	for i, seeker := range seekers {
		configs = append(configs, metrics.AgentConfig{
			ID:       i + 1,
			Seeker:   seeker,
			Pursuer:  pursuer,
			Pursuers: pursuers,
			Depth:    depth,
		})
	}
	return configs
}

// Run plays every game of the experiment. Each game gets its own random
// source derived from the experiment seed, so single games can be replayed.
func Run(exp Experiment) ([]metrics.GameRecord, []metrics.MoveRecord, error) {
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", exp.Name)

	for ci, config := range exp.Configs {
		log.Info().Msgf("starting config %d of %d: %+v...", ci+1, len(exp.Configs), config)

		for i := 0; i < exp.NumGames; i++ {
			rng := rand.New(rand.NewSource(exp.Seed + uint64(ci*exp.NumGames+i)))
			record, moveMetrics, err := RunGame(exp, config, rng)
			if err != nil {
				return gameRecords, moveRecords, fmt.Errorf("config %d game %d: %w", config.ID, i+1, err)
			}
			gameRecords = append(gameRecords, record)
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       record.ID,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed config %d game %d of %d: win=%t score=%d", config.ID, i+1, exp.NumGames, record.Win, record.Score)
		}
	}

	log.Info().Msgf("completed %s experiment", exp.Name)
	return gameRecords, moveRecords, nil
}

// RunGame plays a single game with the agents of config.
func RunGame(exp Experiment, config metrics.AgentConfig, rng *rand.Rand) (metrics.GameRecord, []metrics.MoveMetric, error) {
	agents, err := NewAgents(config, exp.Layout, rng, exp.Temperature)
	if err != nil {
		return metrics.GameRecord{}, nil, err
	}
	if exp.Memory != nil {
		agents[game.SeekerIndex] = agent.NewRecorder(agents[game.SeekerIndex], exp.Memory)
	}
	e, err := engine.New(exp.Layout, agents, engine.WithMaxMoves(exp.MaxMoves))
	if err != nil {
		return metrics.GameRecord{}, nil, err
	}

	record, moveMetrics, err := e.Run()
	record.Config = config.ID
	record.Layout = exp.LayoutName
	return record, moveMetrics, err
}

// NewAgents builds the seeker and pursuers of config. The seeker is either a
// planner (e.g. "astar-allfood") or a searcher kind (e.g. "alphabeta"). A
// negative pursuer count means one pursuer per spawn in layout.
func NewAgents(config metrics.AgentConfig, layout *game.Layout, rng *rand.Rand, temperature float64) ([]agent.Agent, error) {
	var seeker agent.Agent
	if planner, err := agent.NewPlanner(config.Seeker); err == nil {
		seeker = agent.NewSearchSeeker(config.Seeker, planner)
	} else {
		kind := searcher.Kind(config.Seeker)
		if _, err := searcher.New(kind); err != nil {
			return nil, fmt.Errorf("seeker %q is neither a planner nor a searcher: %w", config.Seeker, err)
		}
		seeker = agent.NewAdversarialSeeker(kind, rng, searcher.WithDepth(config.Depth), searcher.WithMetrics())
	}

	pursuers := config.Pursuers
	if pursuers < 0 || pursuers > layout.NumPursuers() {
		pursuers = layout.NumPursuers()
	}
	agents := []agent.Agent{seeker}
	for i := 1; i <= pursuers; i++ {
		switch config.Pursuer {
		case PolicyRandom:
			agents = append(agents, agent.NewRandomPursuer(i, rng))
		case PolicyGreedy:
			agents = append(agents, agent.NewGreedyPursuer(i, rng, agent.WithTemperature(temperature)))
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, config.Pursuer)
		}
	}
	return agents, nil
}

// Store writes the experiment's configs and records as CSV, plus a Parquet
// archive of the game records, and returns the output directory.
func Store(root string, exp Experiment, gameRecords []metrics.GameRecord, moveRecords []metrics.MoveRecord) (string, error) {
	writer, err := metrics.NewWriter(root, exp.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(exp.Configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	if err := metrics.WriteGameRecordsParquet(filepath.Join(writer.Dir(), "game_records.parquet"), gameRecords); err != nil {
		return "", fmt.Errorf("failed to archive game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	return writer.Dir(), nil
}
