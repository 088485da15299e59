package search

import (
	"math"

	"pursuit/game"
)

// CostFn prices entering a cell.
type CostFn interface {
	Cost(game.Cell) float64
	MinCost() float64
}

type UniformCost struct {
	Step float64
}

// Uniform charges 1 per step.
var Uniform = UniformCost{Step: 1}

func (c UniformCost) Cost(game.Cell) float64 { return c.Step }
func (c UniformCost) MinCost() float64       { return c.Step }

// FoodCost charges more for stepping onto food that has not been eaten yet,
// as seen when the cost function was built.
type FoodCost struct {
	food  game.Grid
	Food  float64
	Empty float64
}

func NewFoodCost(state *game.GameState) FoodCost {
	return FoodCost{food: state.Food(), Food: 2, Empty: 1}
}

func (c FoodCost) Cost(cell game.Cell) float64 {
	if c.food.At(cell) {
		return c.Food
	}
	return c.Empty
}

func (c FoodCost) MinCost() float64 {
	return math.Min(c.Food, c.Empty)
}
