package searcher

import (
	"math"

	"github.com/rs/zerolog/log"

	"pursuit/experiments/metrics"
	"pursuit/game"
)

// Minimax searches with the seeker maximizing and every pursuer minimizing.
// With pruning enabled it is alpha-beta search, which returns the same root
// action while visiting fewer nodes.
type Minimax struct {
	config
	pruning bool
}

func NewAlphaBeta(options ...Option) *Minimax {
	return &Minimax{config: newConfig(options), pruning: true}
}

// NewMinimax returns an unpruned minimax searcher.
func NewMinimax(options ...Option) *Minimax {
	return &Minimax{config: newConfig(options)}
}

func (m *Minimax) Name() string {
	if m.pruning {
		return "minimax with alpha-beta pruning"
	}
	return "minimax"
}

func (m *Minimax) FindAction(state *game.GameState) (game.Direction, metrics.SearchMetric, error) {
	start, err := root(state)
	if err != nil {
		return game.Stop, metrics.SearchMetric{}, err
	}

	m.metrics.Start(m.Name(), m.depth)
	value, action, err := m.value(start, math.Inf(-1), math.Inf(1))
	metric := m.metrics.Complete()
	if err != nil {
		return game.Stop, metric, err
	}

	log.Debug().Msgf("%s chose %s with value %.2f", m.Name(), action, value)
	return action, metric, nil
}

func (m *Minimax) value(p ply, alpha, beta float64) (float64, game.Direction, error) {
	if m.isCutoff(p) {
		return m.evaluateLeaf(p), game.Stop, nil
	}
	if p.agent == game.SeekerIndex {
		return m.maxValue(p, alpha, beta)
	}
	return m.minValue(p, alpha, beta)
}

func (m *Minimax) maxValue(p ply, alpha, beta float64) (float64, game.Direction, error) {
	actions, err := branches(p)
	if err != nil {
		return 0, game.Stop, err
	}

	best, bestAction := math.Inf(-1), actions[0]
	for _, action := range actions {
		next, err := m.child(p, action)
		if err != nil {
			return 0, game.Stop, err
		}
		value, _, err := m.value(next, alpha, beta)
		if err != nil {
			return 0, game.Stop, err
		}
		if value > best {
			best, bestAction = value, action
		}
		if m.pruning {
			if best > beta {
				m.metrics.AddPrune()
				return best, bestAction, nil
			}
			alpha = math.Max(alpha, best)
		}
	}
	return best, bestAction, nil
}

func (m *Minimax) minValue(p ply, alpha, beta float64) (float64, game.Direction, error) {
	actions, err := branches(p)
	if err != nil {
		return 0, game.Stop, err
	}

	best, bestAction := math.Inf(1), actions[0]
	for _, action := range actions {
		next, err := m.child(p, action)
		if err != nil {
			return 0, game.Stop, err
		}
		value, _, err := m.value(next, alpha, beta)
		if err != nil {
			return 0, game.Stop, err
		}
		if value < best {
			best, bestAction = value, action
		}
		if m.pruning {
			if best < alpha {
				m.metrics.AddPrune()
				return best, bestAction, nil
			}
			beta = math.Min(beta, best)
		}
	}
	return best, bestAction, nil
}
