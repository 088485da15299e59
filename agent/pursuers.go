package agent

import (
	"math"
	"time"

	"golang.org/x/exp/rand"

	"pursuit/experiments/metrics"
	"pursuit/game"
	"pursuit/search"
)

// RandomPursuer picks uniformly among its legal actions.
type RandomPursuer struct {
	index int
	rng   *rand.Rand
}

func NewRandomPursuer(index int, rng *rand.Rand) *RandomPursuer {
	return &RandomPursuer{index: index, rng: rng}
}

func (p *RandomPursuer) FindAction(state *game.GameState) (game.Direction, metrics.SearchMetric, error) {
	legal, err := state.LegalActions(p.index)
	if err != nil {
		return game.Stop, metrics.SearchMetric{}, err
	}
	return uniform(legal).sample(p.rng), metrics.SearchMetric{}, nil
}

func (p *RandomPursuer) Algorithm() string {
	return "random"
}

// GreedyPursuer scores each legal action by the length of the path from
// where it leads to the seeker, then samples from a softmax over the
// negated lengths. It usually closes in, but never deterministically.
type GreedyPursuer struct {
	index       int
	rng         *rand.Rand
	temperature float64
	greedy      bool
}

type PursuerOption func(*GreedyPursuer)

func WithTemperature(temperature float64) PursuerOption {
	return func(p *GreedyPursuer) {
		if temperature > 0 {
			p.temperature = temperature
		}
	}
}

// WithGreedySearch plans with greedy A* instead of optimal A*.
func WithGreedySearch() PursuerOption {
	return func(p *GreedyPursuer) {
		p.greedy = true
	}
}

func NewGreedyPursuer(index int, rng *rand.Rand, options ...PursuerOption) *GreedyPursuer {
	p := &GreedyPursuer{index: index, rng: rng, temperature: 1}
	for _, option := range options {
		option(p)
	}
	return p
}

func (p *GreedyPursuer) Algorithm() string {
	if p.greedy {
		return "greedy a*"
	}
	return "a*"
}

func (p *GreedyPursuer) FindAction(state *game.GameState) (game.Direction, metrics.SearchMetric, error) {
	start := time.Now()
	legal, err := state.LegalActions(p.index)
	if err != nil {
		return game.Stop, metrics.SearchMetric{}, err
	}

	target := state.SeekerPosition().Nearest()
	heuristic := search.DistanceHeuristic(search.Manhattan, p.greedy)
	var opts []search.Option
	if p.greedy {
		opts = append(opts, search.WithGreedy())
	}

	metric := metrics.SearchMetric{Algorithm: p.Algorithm()}
	scores := make([]float64, len(legal))
	for i, action := range legal {
		next, err := state.GenerateNext(p.index, action)
		if err != nil {
			return game.Stop, metric, err
		}
		pursuer, err := next.Agent(p.index)
		if err != nil {
			return game.Stop, metric, err
		}
		if next.IsLose() {
			// Caught the seeker.
			scores[i] = 0
			continue
		}

		problem := search.NewPositionProblem(next, target, search.WithStart(pursuer.Position().Nearest()))
		result := search.AStar(problem, heuristic, opts...)
		metric.Nodes += result.Expanded
		if !result.Found {
			scores[i] = math.Inf(-1)
			continue
		}
		scores[i] = -float64(len(result.Actions))
	}
	metric.Duration = time.Since(start)

	return softmax(legal, scores, p.temperature).sample(p.rng), metric, nil
}
