package game

import (
	"fmt"

	"pursuit/utils"
)

// LegalActions returns the actions agent may take in s. A terminal state has
// no legal actions.
func (s *GameState) LegalActions(agent int) ([]Direction, error) {
	if agent < 0 || agent >= len(s.agents) {
		return nil, fmt.Errorf("%w: %d of %d agents", ErrInvalidAgentIndex, agent, len(s.agents))
	}
	if s.IsTerminal() {
		return []Direction{}, nil
	}
	return s.legalActions(agent), nil
}

func (s *GameState) legalActions(agent int) []Direction {
	config := s.agents[agent].Config
	possible := possibleActions(config, s.layout)
	if agent == SeekerIndex {
		return possible
	}

	actions := make([]Direction, 0, len(possible))
	for _, action := range possible {
		if action != Stop {
			actions = append(actions, action)
		}
	}
	if i := utils.FindIndex(actions, config.Direction.Reverse()); i >= 0 && len(actions) > 1 {
		actions = append(actions[:i], actions[i+1:]...)
	}
	if len(actions) == 0 {
		// Boxed in on every side.
		return []Direction{Stop}
	}
	return actions
}

// possibleActions lists the headings open from config. An agent between
// cells must keep its current heading.
func possibleActions(config Configuration, layout *Layout) []Direction {
	if !config.Position.Aligned(AlignmentTolerance) {
		return []Direction{config.Direction}
	}
	cell := config.Cell()
	actions := make([]Direction, 0, len(actionOrder))
	for _, action := range actionOrder {
		if action == Stop || !layout.IsWall(cell.Step(action)) {
			actions = append(actions, action)
		}
	}
	return actions
}

// GenerateNext applies action for agent and returns the successor state.
func (s *GameState) GenerateNext(agent int, action Direction) (*GameState, error) {
	if s.IsTerminal() {
		return nil, ErrTerminalState
	}
	if agent < 0 || agent >= len(s.agents) {
		return nil, fmt.Errorf("%w: %d of %d agents", ErrInvalidAgentIndex, agent, len(s.agents))
	}
	if utils.FindIndex(s.legalActions(agent), action) < 0 {
		return nil, fmt.Errorf("%w: agent %d cannot move %s", ErrIllegalAction, agent, action)
	}

	next := s.successor()
	if agent == SeekerIndex {
		next.moveSeeker(action)
		next.scoreChange -= TimePenalty
	} else {
		next.movePursuer(agent, action)
	}
	next.resolveCollisions(agent)

	next.mover = agent
	next.action = action
	next.score += next.scoreChange
	return next, nil
}

func (s *GameState) moveSeeker(action Direction) {
	seeker := &s.agents[SeekerIndex]
	seeker.Config = seeker.Config.Advance(action.Vector(SeekerSpeed))

	position := seeker.Position()
	nearest := position.Nearest()
	if position.Manhattan(nearest.Vector()) <= 0.5 {
		s.consume(nearest)
	}
}

// consume eats whatever lies on cell. Food and capsules are copied before
// being modified since they may be shared with the parent state.
func (s *GameState) consume(cell Cell) {
	if s.food.At(cell) {
		s.scoreChange += FoodScore
		s.food = s.food.With(cell, false)
		s.numFood--
		s.foodEaten = &cell
		if s.numFood == 0 && !s.lose {
			s.scoreChange += WinScore
			s.win = true
		}
	}

	if i := utils.FindIndex(s.capsules, cell); i >= 0 {
		capsules := make([]Cell, 0, len(s.capsules)-1)
		capsules = append(capsules, s.capsules[:i]...)
		s.capsules = append(capsules, s.capsules[i+1:]...)
		s.capsuleEaten = &cell
		for pursuer := 1; pursuer < len(s.agents); pursuer++ {
			s.agents[pursuer].ScaredTimer = ScaredTime
		}
	}
}

func (s *GameState) movePursuer(agent int, action Direction) {
	pursuer := &s.agents[agent]
	speed := PursuerSpeed
	if pursuer.Scared() {
		speed /= 2
	}
	pursuer.Config = pursuer.Config.Advance(action.Vector(speed))

	if pursuer.ScaredTimer == 1 {
		// Half-speed moves can leave a pursuer between cells when the scared
		// window closes.
		pursuer.Config.Position = pursuer.Config.Cell().Vector()
	}
	pursuer.ScaredTimer = max(0, pursuer.ScaredTimer-1)
}

// resolveCollisions checks the seeker against the pursuers touched by this
// turn: every pursuer after a seeker move, only the mover otherwise.
func (s *GameState) resolveCollisions(mover int) {
	if mover == SeekerIndex {
		for i := 1; i < len(s.agents); i++ {
			s.collide(i)
		}
		return
	}
	s.collide(mover)
}

func (s *GameState) collide(pursuer int) {
	if s.SeekerPosition().Manhattan(s.agents[pursuer].Position()) > CollisionTolerance {
		return
	}
	if !s.agents[pursuer].Scared() {
		if !s.win && !s.lose {
			s.scoreChange -= DeathPenalty
			s.lose = true
		}
		return
	}
	s.scoreChange += KillScore
	s.agents[pursuer] = s.agents[pursuer].respawn()
	s.eaten = append(s.eaten, pursuer)
}
