package agent

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"pursuit/experiments/metrics"
	"pursuit/game"
	"pursuit/search"
)

var ErrUnknownPlanner = errors.New("unknown planner")

// Planner computes a complete action plan for the seeker from a state.
type Planner func(state *game.GameState) (search.Result, error)

var planners = map[string]Planner{
	"astar-allfood": func(state *game.GameState) (search.Result, error) {
		return search.AStar(search.NewAllFoodProblem(state), search.AllFoodHeuristic), nil
	},
	"astar-allfood-fast": func(state *game.GameState) (search.Result, error) {
		return search.AStar(search.NewAllFoodProblem(state), search.SuboptimalAllFoodHeuristic), nil
	},
	"astar-allfood-foodcost": func(state *game.GameState) (search.Result, error) {
		problem := search.NewAllFoodProblem(state, search.WithCostFn(search.NewFoodCost(state)))
		return search.AStar(problem, search.AllFoodHeuristic), nil
	},
	"ucs-allfood": func(state *game.GameState) (search.Result, error) {
		return search.UCS[search.AllFoodState](search.NewAllFoodProblem(state)), nil
	},
	"bfs-allfood": func(state *game.GameState) (search.Result, error) {
		return search.BFS[search.AllFoodState](search.NewAllFoodProblem(state)), nil
	},
	"dfs-allfood": func(state *game.GameState) (search.Result, error) {
		return search.DFS[search.AllFoodState](search.NewAllFoodProblem(state)), nil
	},
	"astar-fourpoint": func(state *game.GameState) (search.Result, error) {
		problem, err := search.NewFourPointProblem(state, nil)
		if err != nil {
			return search.Result{}, err
		}
		return search.AStar(problem, search.FourPointHeuristic), nil
	},
}

// NewPlanner returns the named planner. Names take the form
// "<solver>-<problem>", e.g. "astar-allfood".
func NewPlanner(name string) (Planner, error) {
	planner, ok := planners[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlanner, name)
	}
	return planner, nil
}

// SearchSeeker plans once when registered and then plays the plan back,
// one action per turn. Once the plan runs out it stays put.
type SearchSeeker struct {
	name    string
	planner Planner
	plan    []game.Direction
	metric  metrics.SearchMetric
}

func NewSearchSeeker(name string, planner Planner) *SearchSeeker {
	return &SearchSeeker{name: name, planner: planner}
}

func (s *SearchSeeker) Algorithm() string {
	return s.name
}

func (s *SearchSeeker) Register(state *game.GameState) error {
	start := time.Now()
	result, err := s.planner(state)
	if err != nil {
		return fmt.Errorf("planning with %s: %w", s.name, err)
	}
	s.plan = result.Actions
	s.metric = metrics.SearchMetric{
		Algorithm: s.name,
		Duration:  time.Since(start),
		Nodes:     result.Expanded,
	}
	if !result.Found {
		log.Warn().Msgf("%s found no plan, staying put", s.name)
		return nil
	}
	log.Info().Msgf("%s: path of %d actions with cost %.1f, %d nodes expanded in %v",
		s.name, len(result.Actions), result.Cost, result.Expanded, s.metric.Duration)
	return nil
}

func (s *SearchSeeker) FindAction(state *game.GameState) (game.Direction, metrics.SearchMetric, error) {
	if len(s.plan) == 0 {
		return game.Stop, metrics.SearchMetric{Algorithm: s.name}, nil
	}
	action := s.plan[0]
	s.plan = s.plan[1:]

	// The planning cost is reported with the first move only.
	metric := s.metric
	s.metric = metrics.SearchMetric{Algorithm: s.name}
	return action, metric, nil
}

// Remaining is the number of planned actions not yet played.
func (s *SearchSeeker) Remaining() int {
	return len(s.plan)
}
