package agent

import (
	"golang.org/x/exp/rand"

	"pursuit/experiments/metrics"
	"pursuit/game"
	"pursuit/searcher"
)

// AdversarialSeeker chooses each action with a game-tree searcher. The
// evaluation function needs the maze, so the searcher is built when the
// initial state is registered.
type AdversarialSeeker struct {
	kind     searcher.Kind
	rng      *rand.Rand
	options  []searcher.Option
	searcher searcher.Searcher
}

// NewAdversarialSeeker returns a seeker searching with kind. Options are
// applied after the default maze evaluator, so WithEvaluationFn overrides it.
func NewAdversarialSeeker(kind searcher.Kind, rng *rand.Rand, options ...searcher.Option) *AdversarialSeeker {
	return &AdversarialSeeker{kind: kind, rng: rng, options: options}
}

func (a *AdversarialSeeker) Register(state *game.GameState) error {
	evaluator := game.NewEvaluator(state.Layout(), a.rng)
	options := append([]searcher.Option{searcher.WithEvaluationFn(evaluator.Evaluate)}, a.options...)
	s, err := searcher.New(a.kind, options...)
	if err != nil {
		return err
	}
	a.searcher = s
	return nil
}

func (a *AdversarialSeeker) FindAction(state *game.GameState) (game.Direction, metrics.SearchMetric, error) {
	if a.searcher == nil {
		if err := a.Register(state); err != nil {
			return game.Stop, metrics.SearchMetric{}, err
		}
	}
	return a.searcher.FindAction(state)
}

func (a *AdversarialSeeker) Algorithm() string {
	if a.searcher != nil {
		return a.searcher.Name()
	}
	return string(a.kind)
}
