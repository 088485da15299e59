// Package searcher chooses seeker actions by game-tree search over the full
// multi-agent game: the seeker maximizes and every pursuer, in turn order,
// either minimizes (minimax) or averages (expectimax).
package searcher

import (
	"errors"
	"fmt"

	"pursuit/experiments/metrics"
	"pursuit/game"
)

const DefaultDepth = 2

var ErrUnknownAlgorithm = errors.New("unknown search algorithm")

type Searcher interface {
	// FindAction returns the seeker's best action in state and the metrics
	// collected while searching (zero unless WithMetrics is given).
	FindAction(state *game.GameState) (game.Direction, metrics.SearchMetric, error)
	Name() string
}

type Kind string

const (
	KindAlphaBeta  Kind = "alphabeta"
	KindMinimax    Kind = "minimax"
	KindExpectimax Kind = "expectimax"
)

// New builds a searcher by kind.
func New(kind Kind, options ...Option) (Searcher, error) {
	switch kind {
	case KindAlphaBeta:
		return NewAlphaBeta(options...), nil
	case KindMinimax:
		return NewMinimax(options...), nil
	case KindExpectimax:
		return NewExpectimax(options...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, kind)
	}
}

type config struct {
	depth    int
	evaluate game.Evaluate
	metrics  metrics.Collector
}

type Option func(c *config)

// WithDepth sets the search horizon in full rounds of agent moves.
func WithDepth(depth int) Option {
	return func(c *config) {
		if depth > 0 {
			c.depth = depth
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(c *config) {
		if evaluate != nil {
			c.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(c *config) {
		c.metrics = metrics.NewCollector()
	}
}

func newConfig(options []Option) config {
	c := config{ // Default values
		depth:    DefaultDepth,
		evaluate: game.EvaluateScore,
		metrics:  metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(&c)
	}
	return c
}

// ply is a position in the game tree: the state, whose turn it is and how
// many full rounds lie above it.
type ply struct {
	state *game.GameState
	agent int
	depth int
}

func (c *config) isCutoff(p ply) bool {
	return p.depth >= c.depth || p.state.IsWin() || p.state.IsLose()
}

func (c *config) evaluateLeaf(p ply) float64 {
	c.metrics.AddEvaluation()
	return c.evaluate(p.state)
}

// branches returns the actions searched at p. Stop is only searched when the
// agent has nothing else.
func branches(p ply) ([]game.Direction, error) {
	legal, err := p.state.LegalActions(p.agent)
	if err != nil {
		return nil, err
	}
	actions := make([]game.Direction, 0, len(legal))
	for _, action := range legal {
		if action != game.Stop {
			actions = append(actions, action)
		}
	}
	if len(actions) == 0 {
		return legal, nil
	}
	return actions, nil
}

// child applies action at p and advances the turn. The round count grows
// after the last agent has moved.
func (c *config) child(p ply, action game.Direction) (ply, error) {
	next, err := p.state.GenerateNext(p.agent, action)
	if err != nil {
		return ply{}, fmt.Errorf("failed to expand agent %d %s: %w", p.agent, action, err)
	}
	c.metrics.AddNode()

	numAgents := p.state.NumAgents()
	depth := p.depth
	if p.agent == numAgents-1 {
		depth++
	}
	return ply{state: next, agent: (p.agent + 1) % numAgents, depth: depth}, nil
}

// root validates the state a search starts from.
func root(state *game.GameState) (ply, error) {
	if state.IsTerminal() {
		return ply{}, game.ErrTerminalState
	}
	return ply{state: state, agent: game.SeekerIndex}, nil
}
