package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"
)

// GameState is one immutable snapshot of a game. Successors are produced by
// GenerateNext; the receiver is never modified afterwards.
//
// Structural sharing: the layout is shared by every state of a game, the food
// grid and capsule list are shared until the seeker consumes something, and
// the agent list is copied on every transition.
type GameState struct {
	layout   *Layout
	food     Grid
	numFood  int
	capsules []Cell
	agents   []AgentState
	score    int

	// Transient fields describing the transition that produced this state.
	mover        int
	action       Direction
	scoreChange  int
	foodEaten    *Cell
	capsuleEaten *Cell
	eaten        []int
	win          bool
	lose         bool
}

// NewGameState places the seeker and up to numPursuers pursuers on their
// spawn cells. A negative numPursuers uses every pursuer spawn.
func NewGameState(layout *Layout, numPursuers int) (*GameState, error) {
	if layout == nil || len(layout.Spawns) == 0 || !layout.Spawns[0].Seeker {
		return nil, fmt.Errorf("%w: no seeker spawn", ErrInvalidLayout)
	}
	if numPursuers < 0 || numPursuers > layout.NumPursuers() {
		numPursuers = layout.NumPursuers()
	}

	agents := make([]AgentState, 0, numPursuers+1)
	for _, spawn := range layout.Spawns[:numPursuers+1] {
		config := Configuration{Position: spawn.Cell.Vector(), Direction: Stop}
		agents = append(agents, AgentState{Config: config, Seeker: spawn.Seeker, Spawn: config})
	}

	return &GameState{
		layout:   layout,
		food:     layout.Food,
		numFood:  layout.Food.Count(true),
		capsules: layout.Capsules,
		agents:   agents,
		mover:    -1,
	}, nil
}

// successor starts a new state from s. Only the agent list is copied; the
// rules copy food and capsules themselves when they change them.
func (s *GameState) successor() *GameState {
	agents := make([]AgentState, len(s.agents))
	copy(agents, s.agents)
	return &GameState{
		layout:   s.layout,
		food:     s.food,
		numFood:  s.numFood,
		capsules: s.capsules,
		agents:   agents,
		score:    s.score,
		mover:    -1,
	}
}

func (s *GameState) Layout() *Layout { return s.layout }
func (s *GameState) Score() int      { return s.score }
func (s *GameState) NumAgents() int  { return len(s.agents) }
func (s *GameState) NumFood() int    { return s.numFood }
func (s *GameState) IsWin() bool     { return s.win }
func (s *GameState) IsLose() bool    { return s.lose }

// IsTerminal reports whether the game is over.
func (s *GameState) IsTerminal() bool {
	return s.win || s.lose
}

// Food returns the food grid. Grids are immutable, so sharing it is safe.
func (s *GameState) Food() Grid { return s.food }

func (s *GameState) HasFood(c Cell) bool { return s.food.At(c) }

func (s *GameState) HasWall(c Cell) bool { return s.layout.IsWall(c) }

// Capsules returns a copy of the remaining capsule cells.
func (s *GameState) Capsules() []Cell {
	capsules := make([]Cell, len(s.capsules))
	copy(capsules, s.capsules)
	return capsules
}

// Agent returns the state of agent i.
func (s *GameState) Agent(i int) (AgentState, error) {
	if i < 0 || i >= len(s.agents) {
		return AgentState{}, fmt.Errorf("%w: %d of %d agents", ErrInvalidAgentIndex, i, len(s.agents))
	}
	return s.agents[i], nil
}

func (s *GameState) Seeker() AgentState { return s.agents[SeekerIndex] }

func (s *GameState) SeekerPosition() Vector { return s.agents[SeekerIndex].Position() }

// Pursuers returns a copy of every pursuer's state, in agent order.
func (s *GameState) Pursuers() []AgentState {
	pursuers := make([]AgentState, len(s.agents)-1)
	copy(pursuers, s.agents[1:])
	return pursuers
}

func (s *GameState) PursuerPositions() []Vector {
	positions := make([]Vector, 0, len(s.agents)-1)
	for _, pursuer := range s.agents[1:] {
		positions = append(positions, pursuer.Position())
	}
	return positions
}

// Delta summarizes the transition that produced a state, for displays and logs.
type Delta struct {
	Mover        int // -1 for an initial state
	Action       Direction
	Agents       []AgentState
	FoodEaten    *Cell
	CapsuleEaten *Cell
	Eaten        []int // pursuers caught while scared
	Score        int
	ScoreChange  int
	Win          bool
	Lose         bool
}

func (s *GameState) Delta() Delta {
	agents := make([]AgentState, len(s.agents))
	copy(agents, s.agents)
	return Delta{
		Mover:        s.mover,
		Action:       s.action,
		Agents:       agents,
		FoodEaten:    s.foodEaten,
		CapsuleEaten: s.capsuleEaten,
		Eaten:        append([]int(nil), s.eaten...),
		Score:        s.score,
		ScoreChange:  s.scoreChange,
		Win:          s.win,
		Lose:         s.lose,
	}
}

// Hash returns an FNV-1a digest of the persistent part of the state.
func (s *GameState) Hash() StateHash {
	hasher := fnv.New64a()

	for _, agent := range s.agents {
		binary.Write(hasher, binary.LittleEndian, math.Float64bits(agent.Config.Position.X))
		binary.Write(hasher, binary.LittleEndian, math.Float64bits(agent.Config.Position.Y))
		binary.Write(hasher, binary.LittleEndian, int64(agent.Config.Direction))
		binary.Write(hasher, binary.LittleEndian, int64(agent.ScaredTimer))
	}

	for _, cell := range s.food.Positions() {
		binary.Write(hasher, binary.LittleEndian, int64(cell.X))
		binary.Write(hasher, binary.LittleEndian, int64(cell.Y))
	}

	// Separator so food and capsule cells cannot alias.
	binary.Write(hasher, binary.LittleEndian, int64(-1))
	for _, cell := range s.capsules {
		binary.Write(hasher, binary.LittleEndian, int64(cell.X))
		binary.Write(hasher, binary.LittleEndian, int64(cell.Y))
	}

	binary.Write(hasher, binary.LittleEndian, int64(s.score))
	binary.Write(hasher, binary.LittleEndian, s.win)
	binary.Write(hasher, binary.LittleEndian, s.lose)

	return StateHash(hasher.Sum64())
}
