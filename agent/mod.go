// Package agent holds the decision makers that play the game: pursuer
// policies, plan-following and tree-searching seekers, and a recorder that
// keeps experience for learned policies.
package agent

import (
	"pursuit/experiments/metrics"
	"pursuit/game"
)

type Agent interface {
	// FindAction returns the agent's next action and the metrics (if
	// collected) of the decision.
	FindAction(state *game.GameState) (game.Direction, metrics.SearchMetric, error)
}

// Registrar agents see the initial state before play starts.
type Registrar interface {
	Register(state *game.GameState) error
}

// Finalizer agents see the terminal state after the game ends.
type Finalizer interface {
	Final(state *game.GameState)
}

// Observer agents receive the score change and terminal flag of every turn.
type Observer interface {
	Observe(state *game.GameState, reward float64, terminal bool)
}

// Named agents report the algorithm behind their decisions.
type Named interface {
	Algorithm() string
}

// Algorithm names an agent for records and logs.
func Algorithm(a Agent) string {
	if named, ok := a.(Named); ok {
		return named.Algorithm()
	}
	return "unknown"
}
