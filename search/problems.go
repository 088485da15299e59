package search

import (
	"fmt"
	"math"
	"math/bits"

	"pursuit/game"
	"pursuit/utils"
)

// maze holds what every problem shares: the walls, the start cell and the
// step cost function.
type maze struct {
	layout *game.Layout
	start  game.Cell
	cost   CostFn
}

type ProblemOption func(*maze)

// WithStart overrides the start cell, which defaults to the seeker's cell.
func WithStart(cell game.Cell) ProblemOption {
	return func(m *maze) {
		m.start = cell
	}
}

func WithCostFn(cost CostFn) ProblemOption {
	return func(m *maze) {
		m.cost = cost
	}
}

func newMaze(state *game.GameState, opts []ProblemOption) maze {
	m := maze{
		layout: state.Layout(),
		start:  state.SeekerPosition().Nearest(),
		cost:   Uniform,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

type step struct {
	cell   game.Cell
	action game.Direction
	cost   float64
}

func (m *maze) steps(cell game.Cell) []step {
	steps := make([]step, 0, len(game.Directions))
	for _, d := range game.Directions {
		next := cell.Step(d)
		if m.layout.IsWall(next) {
			continue
		}
		steps = append(steps, step{cell: next, action: d, cost: m.cost.Cost(next)})
	}
	return steps
}

func (m *maze) MinEdgeCost() float64 {
	return m.cost.MinCost()
}

// StartCell returns the cell the problem starts from.
func (m *maze) StartCell() game.Cell {
	return m.start
}

// PositionState is a plain grid position.
type PositionState struct {
	Cell game.Cell
}

func (s PositionState) Less(other PositionState) bool {
	return s.Cell.Less(other.Cell)
}

// PositionProblem asks for a path to a single target cell.
type PositionProblem struct {
	maze
	goal game.Cell
}

func NewPositionProblem(state *game.GameState, goal game.Cell, opts ...ProblemOption) *PositionProblem {
	return &PositionProblem{maze: newMaze(state, opts), goal: goal}
}

func (p *PositionProblem) Start() PositionState {
	return PositionState{Cell: p.start}
}

func (p *PositionProblem) IsGoal(s PositionState) bool {
	return s.Cell == p.goal
}

func (p *PositionProblem) Goal() game.Cell {
	return p.goal
}

func (p *PositionProblem) Neighbors(s PositionState) []Successor[PositionState] {
	steps := p.steps(s.Cell)
	successors := make([]Successor[PositionState], 0, len(steps))
	for _, st := range steps {
		successors = append(successors, Successor[PositionState]{
			State:  PositionState{Cell: st.cell},
			Action: st.action,
			Cost:   st.cost,
		})
	}
	return successors
}

// numPoints is the number of targets of a FourPointProblem.
const numPoints = 4

const allPoints = 1<<numPoints - 1

// FourPointState is a position plus the set of targets visited so far, bit i
// standing for the i-th target.
type FourPointState struct {
	Cell game.Cell
	Mask uint8
}

// Less puts states that visited more targets first.
func (s FourPointState) Less(other FourPointState) bool {
	visited, otherVisited := bits.OnesCount8(s.Mask), bits.OnesCount8(other.Mask)
	if visited != otherVisited {
		return visited > otherVisited
	}
	if s.Mask != other.Mask {
		return s.Mask > other.Mask
	}
	return s.Cell.Less(other.Cell)
}

// FourPointProblem asks for a path visiting four fixed cells in any order.
type FourPointProblem struct {
	maze
	points []game.Cell
}

// NewFourPointProblem uses the food cells when points is nil. Exactly four
// points are required.
func NewFourPointProblem(state *game.GameState, points []game.Cell, opts ...ProblemOption) (*FourPointProblem, error) {
	if points == nil {
		points = state.Food().Positions()
	}
	if len(points) != numPoints {
		return nil, fmt.Errorf("%w: four point problem needs %d points, got %d", ErrInvalidProblem, numPoints, len(points))
	}
	return &FourPointProblem{maze: newMaze(state, opts), points: append([]game.Cell(nil), points...)}, nil
}

func (p *FourPointProblem) Points() []game.Cell {
	return p.points
}

func (p *FourPointProblem) mark(cell game.Cell, mask uint8) uint8 {
	if i := utils.FindIndex(p.points, cell); i >= 0 {
		mask |= 1 << i
	}
	return mask
}

func (p *FourPointProblem) Start() FourPointState {
	return FourPointState{Cell: p.start, Mask: p.mark(p.start, 0)}
}

func (p *FourPointProblem) IsGoal(s FourPointState) bool {
	return s.Mask == allPoints
}

func (p *FourPointProblem) Neighbors(s FourPointState) []Successor[FourPointState] {
	steps := p.steps(s.Cell)
	successors := make([]Successor[FourPointState], 0, len(steps))
	for _, st := range steps {
		successors = append(successors, Successor[FourPointState]{
			State:  FourPointState{Cell: st.cell, Mask: p.mark(st.cell, s.Mask)},
			Action: st.action,
			Cost:   st.cost,
		})
	}
	return successors
}

// AllFoodState is a position plus the food still to be eaten.
type AllFoodState struct {
	Cell      game.Cell
	Remaining FoodSet
}

// Less puts states with less food remaining first.
func (s AllFoodState) Less(other AllFoodState) bool {
	remaining, otherRemaining := s.Remaining.Len(), other.Remaining.Len()
	if remaining != otherRemaining {
		return remaining < otherRemaining
	}
	if s.Cell != other.Cell {
		return s.Cell.Less(other.Cell)
	}
	return s.Remaining < other.Remaining
}

// AllFoodProblem asks for a path eating every food cell reachable from the
// start.
type AllFoodProblem struct {
	maze
	graph     *game.MazeGraph
	food      []game.Cell
	index     map[game.Cell]int
	distances *game.Distances
}

func NewAllFoodProblem(state *game.GameState, opts ...ProblemOption) *AllFoodProblem {
	p := &AllFoodProblem{maze: newMaze(state, opts), index: make(map[game.Cell]int)}
	p.graph = game.NewMazeGraph(p.layout.Walls, p.cost.Cost)

	// Food walled off from the start can never be eaten.
	reachable := game.NewMazeGraph(p.layout.Walls, nil).DistancesTo([]game.Cell{p.start})
	for _, cell := range state.Food().Positions() {
		if !math.IsInf(reachable.Get(cell, p.start), 1) {
			p.index[cell] = len(p.food)
			p.food = append(p.food, cell)
		}
	}
	return p
}

// Food returns the reachable food cells the problem has to eat.
func (p *AllFoodProblem) Food() []game.Cell {
	return p.food
}

// MazeDistances returns true maze distances to every food cell. They are
// computed on first use and kept for the problem's lifetime.
func (p *AllFoodProblem) MazeDistances() *game.Distances {
	if p.distances == nil {
		p.distances = p.graph.DistancesTo(p.food)
	}
	return p.distances
}

func (p *AllFoodProblem) eat(cell game.Cell, remaining FoodSet) FoodSet {
	if i, ok := p.index[cell]; ok {
		return remaining.Without(i)
	}
	return remaining
}

func (p *AllFoodProblem) Start() AllFoodState {
	return AllFoodState{Cell: p.start, Remaining: p.eat(p.start, fullFoodSet(len(p.food)))}
}

func (p *AllFoodProblem) IsGoal(s AllFoodState) bool {
	return s.Remaining.Empty()
}

// RemainingFood lists the cells still to be eaten in s.
func (p *AllFoodProblem) RemainingFood(s AllFoodState) []game.Cell {
	cells := make([]game.Cell, 0, s.Remaining.Len())
	for i, cell := range p.food {
		if s.Remaining.Has(i) {
			cells = append(cells, cell)
		}
	}
	return cells
}

func (p *AllFoodProblem) Neighbors(s AllFoodState) []Successor[AllFoodState] {
	steps := p.steps(s.Cell)
	successors := make([]Successor[AllFoodState], 0, len(steps))
	for _, st := range steps {
		successors = append(successors, Successor[AllFoodState]{
			State:  AllFoodState{Cell: st.cell, Remaining: p.eat(st.cell, s.Remaining)},
			Action: st.action,
			Cost:   st.cost,
		})
	}
	return successors
}
