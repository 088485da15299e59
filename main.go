package main

import (
	"flag"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"pursuit/agent"
	"pursuit/config"
	"pursuit/engine"
	"pursuit/experiments"
	"pursuit/experiments/metrics"
	"pursuit/game"
	"pursuit/searcher"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	mode := flag.String("mode", "play", "play a single game, or run an experiment: compare or depth")
	flag.StringVar(&cfg.Layout, "layout", cfg.Layout, "Path of the maze layout file")
	flag.StringVar(&cfg.Seeker, "seeker", cfg.Seeker, "Seeker policy: alphabeta, minimax, expectimax or a planner such as astar-allfood")
	flag.StringVar(&cfg.Pursuer, "pursuer", cfg.Pursuer, "Pursuer policy: random or greedy")
	flag.IntVar(&cfg.Pursuers, "pursuers", cfg.Pursuers, "Number of pursuers, negative for one per spawn")
	flag.IntVar(&cfg.Depth, "depth", cfg.Depth, "Adversarial search depth in rounds")
	flag.IntVar(&cfg.NumGames, "games", cfg.NumGames, "Games per agent configuration")
	flag.IntVar(&cfg.MaxMoves, "moves", cfg.MaxMoves, "Move cap per game")
	flag.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Seed of every random source")
	food := flag.Int("place-food", 0, "Ignore the layout's entities and place this much food at random")
	capsules := flag.Int("place-capsules", 2, "Capsules to place with -place-food")
	replay := flag.Int("replay", 0, "Record up to this many seeker transitions during experiments")
	flag.Parse()

	zerolog.SetGlobalLevel(cfg.LogLevel)

	layout, err := game.LoadLayout(cfg.Layout)
	if err != nil {
		log.Fatal().Err(err).Msgf("failed to load layout %s", cfg.Layout)
	}
	if *food > 0 {
		pursuers := cfg.Pursuers
		if pursuers < 0 {
			pursuers = layout.NumPursuers()
		}
		rng := rand.New(rand.NewSource(cfg.Seed))
		layout, err = game.PlaceEntities(layout.Walls, pursuers, *food, *capsules, rng)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to place entities")
		}
	}

	exp := experiments.Experiment{
		Name:        *mode,
		Layout:      layout,
		LayoutName:  filepath.Base(cfg.Layout),
		NumGames:    cfg.NumGames,
		MaxMoves:    cfg.MaxMoves,
		Seed:        cfg.Seed,
		Temperature: cfg.Temperature,
	}
	if *replay > 0 {
		exp.Memory = agent.NewReplayMemory(*replay)
	}

	switch *mode {
	case "play":
		play(exp, metrics.AgentConfig{
			ID:       1,
			Seeker:   cfg.Seeker,
			Pursuer:  cfg.Pursuer,
			Pursuers: cfg.Pursuers,
			Depth:    cfg.Depth,
		})
	case "compare":
		exp.Configs = experiments.SeekerComparison(cfg.Pursuer, cfg.Pursuers, cfg.Depth)
		runExperiment(cfg.RecordsDir, exp)
	case "depth":
		exp.Configs = experiments.DepthSweep(searcher.Kind(cfg.Seeker), cfg.Pursuer, cfg.Pursuers, cfg.Depth)
		runExperiment(cfg.RecordsDir, exp)
	default:
		log.Fatal().Msgf("unknown mode %q", *mode)
	}
}

func play(exp experiments.Experiment, config metrics.AgentConfig) {
	rng := rand.New(rand.NewSource(exp.Seed))
	agents, err := experiments.NewAgents(config, exp.Layout, rng, exp.Temperature)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create agents")
	}
	e, err := engine.New(exp.Layout, agents, engine.WithMaxMoves(exp.MaxMoves), engine.WithDisplay(&engine.LogDisplay{}))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create engine")
	}
	record, _, err := e.Run()
	if err != nil {
		log.Fatal().Err(err).Msg("game failed")
	}
	log.Info().Msgf("%s: win=%t score=%d moves=%d in %v", record.Algorithm, record.Win, record.Score, record.TotalMoves, record.Duration)
}

func runExperiment(root string, exp experiments.Experiment) {
	games, moves, err := experiments.Run(exp)
	if err != nil {
		log.Fatal().Err(err).Msgf("%s experiment failed", exp.Name)
	}
	dir, err := experiments.Store(root, exp, games, moves)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to store records")
	}
	for _, t := range experiments.SummarizeThroughput(moves) {
		log.Info().Msgf("%s: %d decisions, %d nodes, %.0f nodes/s", t.Algorithm, t.Decisions, t.Nodes, t.NodesPerSecond)
	}
	if exp.Memory != nil {
		log.Info().Msgf("recorded %d seeker transitions", exp.Memory.Len())
	}
	log.Info().Msgf("records stored in %s", dir)
}
