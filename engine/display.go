package engine

import (
	"github.com/rs/zerolog/log"

	"pursuit/game"
)

// Display receives every state the engine produces. Rendering lives behind
// this contract; the engine never draws.
type Display interface {
	Init(state *game.GameState)
	Update(delta game.Delta)
	Finish()
}

type NopDisplay struct{}

func (NopDisplay) Init(*game.GameState) {}
func (NopDisplay) Update(game.Delta)    {}
func (NopDisplay) Finish()              {}

// LogDisplay writes the game to the global logger: the layout at debug
// level, one line per move at trace level and the outcome at info level.
type LogDisplay struct {
	score int
	moves int
}

func (d *LogDisplay) Init(state *game.GameState) {
	d.score, d.moves = state.Score(), 0
	log.Debug().Msgf("initial layout:\n%s", state.Layout())
}

func (d *LogDisplay) Update(delta game.Delta) {
	d.score = delta.Score
	d.moves++
	event := log.Trace().
		Int("agent", delta.Mover).
		Str("action", delta.Action.String()).
		Int("score", delta.Score)
	if delta.FoodEaten != nil {
		event = event.Str("food", delta.FoodEaten.String())
	}
	if delta.CapsuleEaten != nil {
		event = event.Str("capsule", delta.CapsuleEaten.String())
	}
	if len(delta.Eaten) > 0 {
		event = event.Ints("eaten", delta.Eaten)
	}
	event.Msg("move")
}

func (d *LogDisplay) Finish() {
	log.Info().Msgf("game over after %d moves with score %d", d.moves, d.score)
}
