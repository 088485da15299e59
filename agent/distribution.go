package agent

import (
	"math"

	"golang.org/x/exp/rand"

	"pursuit/game"
)

// distribution is a discrete probability distribution over actions, kept
// as parallel slices so that sampling order is deterministic.
type distribution struct {
	actions []game.Direction
	probs   []float64
}

func uniform(actions []game.Direction) distribution {
	weights := make([]float64, len(actions))
	for i := range weights {
		weights[i] = 1
	}
	return normalize(actions, weights)
}

// softmax turns scores into a distribution. Lower temperatures approach
// argmax; higher ones approach uniform.
func softmax(actions []game.Direction, scores []float64, temperature float64) distribution {
	best := math.Inf(-1)
	for _, score := range scores {
		best = math.Max(best, score)
	}
	weights := make([]float64, len(scores))
	for i, score := range scores {
		if math.IsInf(best, -1) {
			weights[i] = 1
			continue
		}
		weights[i] = math.Exp((score - best) / temperature)
	}
	return normalize(actions, weights)
}

func normalize(actions []game.Direction, weights []float64) distribution {
	sum := 0.0
	for _, weight := range weights {
		sum += weight
	}
	probs := make([]float64, len(weights))
	for i, weight := range weights {
		probs[i] = weight / sum
	}
	return distribution{actions: actions, probs: probs}
}

func (d distribution) sample(rng *rand.Rand) game.Direction {
	if len(d.actions) == 0 {
		return game.Stop
	}
	sampled := rng.Float64()
	cumulative := 0.0
	for i, prob := range d.probs {
		cumulative += prob
		if sampled < cumulative {
			return d.actions[i]
		}
	}
	return d.actions[len(d.actions)-1] // Fallback in case of rounding errors
}
