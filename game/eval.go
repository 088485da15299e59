package game

import (
	"math"

	"golang.org/x/exp/rand"
)

const evalEpsilon = 1e-3

// EvaluateScore uses the game score alone. It is deterministic, which makes
// it useful as a baseline and in tests.
func EvaluateScore(s *GameState) float64 {
	return float64(s.Score())
}

// Evaluator scores states using true maze distances to the nearest food and
// the nearest pursuer, the amount of food left and a small random jitter.
type Evaluator struct {
	distances      *Distances
	rng            *rand.Rand
	jitter         int
	distanceWeight float64
	foodWeight     float64
}

type EvaluatorOption func(*Evaluator)

// WithJitter sets the bound of the uniform integer noise added to every
// evaluation. Zero disables it.
func WithJitter(jitter int) EvaluatorOption {
	return func(e *Evaluator) {
		e.jitter = jitter
	}
}

func WithWeights(distance, food float64) EvaluatorOption {
	return func(e *Evaluator) {
		e.distanceWeight = distance
		e.foodWeight = food
	}
}

// NewEvaluator precomputes all-pairs maze distances for layout.
func NewEvaluator(layout *Layout, rng *rand.Rand, opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{
		distances:      NewMazeGraph(layout.Walls, nil).AllPairs(),
		rng:            rng,
		jitter:         2,
		distanceWeight: 1e2,
		foodWeight:     1e4,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate rewards closing in on food while the nearest pursuer is at least
// twice as far away, and penalizes pursuer proximity otherwise.
func (e *Evaluator) Evaluate(s *GameState) float64 {
	seeker := s.SeekerPosition().Nearest()

	foodDist := evalEpsilon
	if food := s.food.Positions(); len(food) > 0 {
		_, nearest := e.distances.Nearest(seeker, food)
		foodDist = math.Max(nearest, evalEpsilon)
	}

	pursuerDist := math.Inf(1)
	if s.NumAgents() > 1 {
		cells := make([]Cell, 0, s.NumAgents()-1)
		for _, position := range s.PursuerPositions() {
			cells = append(cells, position.Nearest())
		}
		_, nearest := e.distances.Nearest(seeker, cells)
		pursuerDist = math.Max(nearest, evalEpsilon)
	}

	var distanceTerm float64
	if foodDist < 2*pursuerDist {
		distanceTerm = e.distanceWeight / foodDist
	} else {
		distanceTerm = -e.distanceWeight / pursuerDist
	}
	foodTerm := e.foodWeight / math.Max(float64(s.NumFood()), evalEpsilon)

	return distanceTerm + foodTerm + e.noise()
}

func (e *Evaluator) noise() float64 {
	if e.jitter <= 0 || e.rng == nil {
		return 0
	}
	return float64(e.rng.Intn(2*e.jitter+1) - e.jitter)
}
