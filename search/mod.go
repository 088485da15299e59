// Package search solves single-agent pathfinding problems on a maze. Problems
// are generic over their state type, so the same solvers serve single-target,
// multi-target and eat-everything goals.
package search

import (
	"errors"

	"pursuit/game"
)

var ErrInvalidProblem = errors.New("invalid search problem")

// State is a search state. States must be comparable for closed-set
// membership and totally ordered by Less for deterministic tie-breaking.
type State[S any] interface {
	comparable
	Less(S) bool
}

// Successor is one step out of a state.
type Successor[S any] struct {
	State  S
	Action game.Direction
	Cost   float64
}

type Problem[S State[S]] interface {
	Start() S
	IsGoal(S) bool
	Neighbors(S) []Successor[S]
	// MinEdgeCost is a lower bound on the cost of any single step.
	MinEdgeCost() float64
}

// Result is the outcome of a search. An empty Actions means no goal is
// reachable, or that the start is already a goal.
type Result struct {
	Actions  []game.Direction
	Cost     float64
	Expanded int
	Found    bool
}

type options struct {
	greedy bool
}

type Option func(*options)

// WithGreedy orders the A* frontier by heuristic alone. Plans are found
// faster but are no longer guaranteed to be optimal.
func WithGreedy() Option {
	return func(o *options) {
		o.greedy = true
	}
}
