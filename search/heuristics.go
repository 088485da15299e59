package search

import (
	"math"

	"pursuit/game"
)

// HeuristicScaler inflates distance estimates for greedy pursuit.
const HeuristicScaler = 2

// Metric is a straight-line distance between two positions.
type Metric func(a, b game.Vector) float64

var (
	Manhattan Metric = game.Vector.Manhattan
	Euclidean Metric = game.Vector.Euclidean
	Chebyshev Metric = game.Vector.Chebyshev
)

// DistanceHeuristic estimates the remaining cost to a PositionProblem's goal
// as metric distance times the cheapest step. greedy inflates the estimate by
// HeuristicScaler, trading admissibility for a faster search.
func DistanceHeuristic(metric Metric, greedy bool) func(PositionState, *PositionProblem) float64 {
	scaler := 1.0
	if greedy {
		scaler = HeuristicScaler
	}
	return func(s PositionState, p *PositionProblem) float64 {
		if p.IsGoal(s) {
			return 0
		}
		return scaler * p.MinEdgeCost() * metric(s.Cell.Vector(), p.goal.Vector())
	}
}

// ManhattanHeuristic is the admissible Manhattan distance to the goal.
func ManhattanHeuristic(s PositionState, p *PositionProblem) float64 {
	return DistanceHeuristic(Manhattan, false)(s, p)
}

// FourPointHeuristic is the cheapest Manhattan tour, over every ordering of
// the unvisited points, starting from the current cell.
func FourPointHeuristic(s FourPointState, p *FourPointProblem) float64 {
	if p.IsGoal(s) {
		return 0
	}
	var rest []game.Cell
	for i, point := range p.points {
		if s.Mask&(1<<i) == 0 {
			rest = append(rest, point)
		}
	}
	return p.MinEdgeCost() * float64(shortestTour(s.Cell, rest))
}

// shortestTour tries every ordering of points. There are at most four.
func shortestTour(from game.Cell, points []game.Cell) int {
	if len(points) == 0 {
		return 0
	}
	best := math.MaxInt
	for i, point := range points {
		rest := make([]game.Cell, 0, len(points)-1)
		rest = append(rest, points[:i]...)
		rest = append(rest, points[i+1:]...)
		best = min(best, from.Manhattan(point)+shortestTour(point, rest))
	}
	return best
}

// AllFoodHeuristic is the true maze distance to the nearest remaining food.
// It accounts for walls, so it dominates any straight-line estimate.
func AllFoodHeuristic(s AllFoodState, p *AllFoodProblem) float64 {
	if p.IsGoal(s) {
		return 0
	}
	_, dist := p.MazeDistances().Nearest(s.Cell, p.RemainingFood(s))
	return dist
}

// SuboptimalAllFoodHeuristic uses Manhattan distance to the nearest remaining
// food. It is cheaper per call but guides the search far less.
func SuboptimalAllFoodHeuristic(s AllFoodState, p *AllFoodProblem) float64 {
	if p.IsGoal(s) {
		return 0
	}
	best := math.Inf(1)
	for _, food := range p.RemainingFood(s) {
		best = math.Min(best, float64(s.Cell.Manhattan(food)))
	}
	return p.MinEdgeCost() * best
}
