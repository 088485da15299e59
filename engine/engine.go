// Package engine schedules turns: agents act in strict round-robin order,
// each action is validated by the rules and the resulting state is shown to
// the display and the observing agents.
package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"pursuit/agent"
	"pursuit/experiments/metrics"
	"pursuit/game"
	"pursuit/meta"
)

var ErrAgentCount = errors.New("agent count does not match the layout")

// Step is one entry of the action log.
type Step struct {
	Agent  int
	Action game.Direction
}

type Engine struct {
	layout   *game.Layout
	agents   []agent.Agent
	display  Display
	maxMoves int

	state   *game.GameState
	history []Step
}

type Option func(e *Engine)

func WithDisplay(display Display) Option {
	return func(e *Engine) {
		if display != nil {
			e.display = display
		}
	}
}

// WithMaxMoves caps the number of moves, counted over all agents.
func WithMaxMoves(moves int) Option {
	return func(e *Engine) {
		if moves > 0 {
			e.maxMoves = moves
		}
	}
}

// New prepares a game on layout. Agent 0 is the seeker and every other agent
// a pursuer, so the layout needs at least len(agents)-1 pursuer spawns.
func New(layout *game.Layout, agents []agent.Agent, options ...Option) (*Engine, error) {
	if len(agents) == 0 {
		return nil, fmt.Errorf("%w: no agents", ErrAgentCount)
	}
	if len(agents)-1 > layout.NumPursuers() {
		return nil, fmt.Errorf("%w: %d pursuers for %d spawns", ErrAgentCount, len(agents)-1, layout.NumPursuers())
	}
	state, err := game.NewGameState(layout, len(agents)-1)
	if err != nil {
		return nil, err
	}

	e := &Engine{ // Default values
		layout:   layout,
		agents:   agents,
		display:  NopDisplay{},
		maxMoves: meta.MAX_MOVES,
		state:    state,
	}
	for _, option := range options {
		option(e)
	}
	return e, nil
}

func (e *Engine) State() *game.GameState {
	return e.state
}

func (e *Engine) History() []Step {
	return e.history
}

// Run plays the game until it is won, lost or the move cap is reached. An
// agent error or an illegal action ends the game with an error; the engine
// never substitutes an action.
func (e *Engine) Run() (metrics.GameRecord, []metrics.MoveMetric, error) {
	record := metrics.GameRecord{ID: uuid.New()}
	record.StartTime = time.Now()

	e.display.Init(e.state)
	for i, a := range e.agents {
		if registrar, ok := a.(agent.Registrar); ok {
			if err := registrar.Register(e.state); err != nil {
				return record, nil, fmt.Errorf("failed to register agent %d: %w", i, err)
			}
		}
	}

	// Searching agents know their algorithm once registered.
	record.Algorithm = agent.Algorithm(e.agents[game.SeekerIndex])
	log.Info().Msgf("game %s started with %d agents, seeker %s", record.ID, len(e.agents), record.Algorithm)

	moveMetrics := []metrics.MoveMetric{}
	for move := 0; !e.state.IsTerminal() && move < e.maxMoves; move++ {
		index := move % len(e.agents)

		action, searchMetric, err := e.agents[index].FindAction(e.state)
		if err != nil {
			return record, moveMetrics, fmt.Errorf("agent %d failed at move %d: %w", index, move, err)
		}
		next, err := e.state.GenerateNext(index, action)
		if err != nil {
			return record, moveMetrics, fmt.Errorf("agent %d at move %d: %w", index, move, err)
		}

		e.history = append(e.history, Step{Agent: index, Action: action})
		e.state = next

		delta := next.Delta()
		e.display.Update(delta)
		for _, a := range e.agents {
			if observer, ok := a.(agent.Observer); ok {
				observer.Observe(next, float64(delta.ScoreChange), next.IsTerminal())
			}
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         move + 1,
			Agent:        index,
			Action:       action.String(),
			Score:        next.Score(),
			SearchMetric: searchMetric,
		})
	}

	if !e.state.IsTerminal() {
		log.Warn().Msgf("game %s stopped after %d moves without a result", record.ID, len(e.history))
	}

	for _, a := range e.agents {
		if finalizer, ok := a.(agent.Finalizer); ok {
			finalizer.Final(e.state)
		}
	}
	e.display.Finish()

	record.EndTime = time.Now()
	record.Duration = record.EndTime.Sub(record.StartTime)
	record.Win = e.state.IsWin()
	record.Lose = e.state.IsLose()
	record.Score = e.state.Score()
	record.FoodLeft = e.state.NumFood()
	record.TotalMoves = len(e.history)

	log.Info().Msgf("game %s ended: win=%t lose=%t score=%d", record.ID, record.Win, record.Lose, record.Score)
	return record, moveMetrics, nil
}
