package searcher

import (
	"math"

	"github.com/rs/zerolog/log"

	"pursuit/experiments/metrics"
	"pursuit/game"
)

// Expectimax models pursuers as uniformly random: their nodes take the mean
// of their children instead of the minimum.
type Expectimax struct {
	config
}

func NewExpectimax(options ...Option) *Expectimax {
	return &Expectimax{config: newConfig(options)}
}

func (e *Expectimax) Name() string {
	return "expectimax"
}

func (e *Expectimax) FindAction(state *game.GameState) (game.Direction, metrics.SearchMetric, error) {
	start, err := root(state)
	if err != nil {
		return game.Stop, metrics.SearchMetric{}, err
	}

	e.metrics.Start(e.Name(), e.depth)
	value, action, err := e.value(start)
	metric := e.metrics.Complete()
	if err != nil {
		return game.Stop, metric, err
	}

	log.Debug().Msgf("%s chose %s with value %.2f", e.Name(), action, value)
	return action, metric, nil
}

func (e *Expectimax) value(p ply) (float64, game.Direction, error) {
	if e.isCutoff(p) {
		return e.evaluateLeaf(p), game.Stop, nil
	}
	if p.agent == game.SeekerIndex {
		return e.maxValue(p)
	}
	value, err := e.expectation(p)
	return value, game.Stop, err
}

func (e *Expectimax) maxValue(p ply) (float64, game.Direction, error) {
	actions, err := branches(p)
	if err != nil {
		return 0, game.Stop, err
	}

	best, bestAction := math.Inf(-1), actions[0]
	for _, action := range actions {
		next, err := e.child(p, action)
		if err != nil {
			return 0, game.Stop, err
		}
		value, _, err := e.value(next)
		if err != nil {
			return 0, game.Stop, err
		}
		if value > best {
			best, bestAction = value, action
		}
	}
	return best, bestAction, nil
}

func (e *Expectimax) expectation(p ply) (float64, error) {
	actions, err := branches(p)
	if err != nil {
		return 0, err
	}

	sum := 0.0
	for _, action := range actions {
		next, err := e.child(p, action)
		if err != nil {
			return 0, err
		}
		value, _, err := e.value(next)
		if err != nil {
			return 0, err
		}
		sum += value
	}
	return sum / float64(len(actions)), nil
}
