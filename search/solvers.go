package search

import (
	"pursuit/game"
	"pursuit/utils"
)

type node[S State[S]] struct {
	state  S
	parent *node[S]
	action game.Direction
	cost   float64
}

func (n *node[S]) path() []game.Direction {
	var actions []game.Direction
	for current := n; current.parent != nil; current = current.parent {
		actions = append(actions, current.action)
	}
	for i, j := 0, len(actions)-1; i < j; i, j = i+1, j-1 {
		actions[i], actions[j] = actions[j], actions[i]
	}
	return actions
}

func found[S State[S]](goal *node[S], expanded int) Result {
	return Result{Actions: goal.path(), Cost: goal.cost, Expanded: expanded, Found: true}
}

// BFS expands states in order of step count. Plans are optimal only when
// every step costs the same.
func BFS[S State[S]](problem Problem[S]) Result {
	start := &node[S]{state: problem.Start()}
	queue := []*node[S]{start}
	visited := map[S]bool{start.state: true}
	expanded := 0

	for len(queue) > 0 {
		current := queue[0]
		queue[0] = nil
		queue = queue[1:]

		if problem.IsGoal(current.state) {
			return found(current, expanded)
		}
		expanded++
		for _, next := range problem.Neighbors(current.state) {
			if visited[next.State] {
				continue
			}
			visited[next.State] = true
			queue = append(queue, &node[S]{
				state:  next.State,
				parent: current,
				action: next.Action,
				cost:   current.cost + next.Cost,
			})
		}
	}
	return Result{Expanded: expanded}
}

// DFS follows the most recently discovered state first. Plans are feasible
// but generally far from optimal.
func DFS[S State[S]](problem Problem[S]) Result {
	stack := []*node[S]{{state: problem.Start()}}
	visited := make(map[S]bool)
	expanded := 0

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack[len(stack)-1] = nil
		stack = stack[:len(stack)-1]

		if visited[current.state] {
			continue
		}
		visited[current.state] = true

		if problem.IsGoal(current.state) {
			return found(current, expanded)
		}
		expanded++
		for _, next := range problem.Neighbors(current.state) {
			if visited[next.State] {
				continue
			}
			stack = append(stack, &node[S]{
				state:  next.State,
				parent: current,
				action: next.Action,
				cost:   current.cost + next.Cost,
			})
		}
	}
	return Result{Expanded: expanded}
}

// UCS expands states in order of accumulated cost. Plans are optimal for any
// non-negative step costs.
func UCS[S State[S]](problem Problem[S]) Result {
	return bestFirst(problem, func(S) float64 { return 0 }, options{})
}

// AStar is UCS guided by heuristic. Plans are optimal when heuristic is
// admissible and consistent, unless WithGreedy is given.
func AStar[S State[S], P Problem[S]](problem P, heuristic func(S, P) float64, opts ...Option) Result {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	return bestFirst[S](problem, func(s S) float64 { return heuristic(s, problem) }, o)
}

type entry[S State[S]] struct {
	node     *node[S]
	priority float64
	seq      int
}

func bestFirst[S State[S]](problem Problem[S], heuristic func(S) float64, o options) Result {
	frontier := utils.NewPriorityQueue(func(a, b entry[S]) bool {
		if a.priority != b.priority {
			return a.priority < b.priority
		}
		if a.node.state != b.node.state {
			return a.node.state.Less(b.node.state)
		}
		return a.seq < b.seq
	})
	seq := 0
	push := func(n *node[S]) {
		priority := heuristic(n.state)
		if !o.greedy {
			priority += n.cost
		}
		frontier.Push(entry[S]{node: n, priority: priority, seq: seq})
		seq++
	}

	start := &node[S]{state: problem.Start()}
	best := map[S]float64{start.state: 0}
	closed := make(map[S]bool)
	expanded := 0
	push(start)

	for !frontier.Empty() {
		current := frontier.Pop().node
		if closed[current.state] || current.cost > best[current.state] {
			// Stale entry superseded by a cheaper path.
			continue
		}
		closed[current.state] = true

		if problem.IsGoal(current.state) {
			return found(current, expanded)
		}
		expanded++
		for _, next := range problem.Neighbors(current.state) {
			if closed[next.State] {
				continue
			}
			cost := current.cost + next.Cost
			if known, ok := best[next.State]; ok && known <= cost {
				continue
			}
			best[next.State] = cost
			push(&node[S]{state: next.State, parent: current, action: next.Action, cost: cost})
		}
	}
	return Result{Expanded: expanded}
}
