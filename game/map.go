package game

import (
	"math"

	"pursuit/utils"
)

// Edge is a directed move into an adjacent open cell.
type Edge struct {
	To   Cell
	Cost float64 // cost of entering To
}

// MazeGraph is the adjacency structure of the open cells of a maze.
type MazeGraph struct {
	cells     []Cell
	index     map[Cell]int
	adjacency [][]edge
	reverse   [][]edge // reverse[v] holds the edges entering v
}

type edge struct {
	to   int
	cost float64
}

// NewMazeGraph links every open cell to its open orthogonal neighbors. cost
// prices entering a cell; nil means every step costs 1.
func NewMazeGraph(walls Grid, cost func(Cell) float64) *MazeGraph {
	if cost == nil {
		cost = func(Cell) float64 { return 1 }
	}
	open := walls.Invert()
	g := &MazeGraph{
		cells: open.Positions(),
		index: make(map[Cell]int),
	}
	for i, cell := range g.cells {
		g.index[cell] = i
	}

	g.adjacency = make([][]edge, len(g.cells))
	g.reverse = make([][]edge, len(g.cells))
	for i, cell := range g.cells {
		for _, d := range Directions {
			neighbor := cell.Step(d)
			j, ok := g.index[neighbor]
			if !ok {
				continue
			}
			c := cost(neighbor)
			g.adjacency[i] = append(g.adjacency[i], edge{to: j, cost: c})
			g.reverse[j] = append(g.reverse[j], edge{to: i, cost: c})
		}
	}
	return g
}

func (g *MazeGraph) Cells() []Cell {
	return g.cells
}

func (g *MazeGraph) Len() int {
	return len(g.cells)
}

func (g *MazeGraph) Contains(c Cell) bool {
	_, ok := g.index[c]
	return ok
}

// Neighbors returns the outgoing edges of c, or nil if c is not open.
func (g *MazeGraph) Neighbors(c Cell) []Edge {
	i, ok := g.index[c]
	if !ok {
		return nil
	}
	edges := make([]Edge, 0, len(g.adjacency[i]))
	for _, e := range g.adjacency[i] {
		edges = append(edges, Edge{To: g.cells[e.to], Cost: e.cost})
	}
	return edges
}

func (g *MazeGraph) AdjacencyList() map[Cell][]Edge {
	list := make(map[Cell][]Edge, len(g.cells))
	for _, cell := range g.cells {
		list[cell] = g.Neighbors(cell)
	}
	return list
}

// AdjacencyMatrix returns edge costs indexed like Cells. Missing edges are
// +Inf and the diagonal is zero.
func (g *MazeGraph) AdjacencyMatrix() [][]float64 {
	matrix := make([][]float64, len(g.cells))
	for i := range matrix {
		row := make([]float64, len(g.cells))
		for j := range row {
			row[j] = math.Inf(1)
		}
		row[i] = 0
		for _, e := range g.adjacency[i] {
			row[e.to] = math.Min(row[e.to], e.cost)
		}
		matrix[i] = row
	}
	return matrix
}

// AllPairs computes shortest distances between every pair of open cells.
func (g *MazeGraph) AllPairs() *Distances {
	return g.DistancesTo(g.cells)
}

// DistancesTo computes the shortest distance from every open cell to each of
// targets, one reverse Dijkstra pass per target.
func (g *MazeGraph) DistancesTo(targets []Cell) *Distances {
	d := &Distances{graph: g, targets: make(map[Cell]int, len(targets))}
	for _, target := range targets {
		if _, seen := d.targets[target]; seen {
			continue
		}
		j, ok := g.index[target]
		if !ok {
			continue
		}
		d.targets[target] = len(d.rows)
		d.rows = append(d.rows, g.dijkstraTo(j))
	}
	return d
}

type queued struct {
	node int
	dist float64
}

func (g *MazeGraph) dijkstraTo(target int) []float64 {
	dist := make([]float64, len(g.cells))
	for i := range dist {
		dist[i] = math.Inf(1)
	}
	dist[target] = 0

	pq := utils.NewPriorityQueue(func(a, b queued) bool { return a.dist < b.dist })
	pq.Push(queued{node: target})
	for !pq.Empty() {
		current := pq.Pop()
		if current.dist > dist[current.node] {
			continue
		}
		for _, e := range g.reverse[current.node] {
			if alt := current.dist + e.cost; alt < dist[e.to] {
				dist[e.to] = alt
				pq.Push(queued{node: e.to, dist: alt})
			}
		}
	}
	return dist
}

// Distances is a precomputed shortest-path oracle over a maze graph.
type Distances struct {
	graph   *MazeGraph
	targets map[Cell]int
	rows    [][]float64 // rows[target][from]
}

// Get returns the maze distance from one cell to another. Unknown or
// unreachable pairs are +Inf.
func (d *Distances) Get(from, to Cell) float64 {
	row, ok := d.targets[to]
	if !ok {
		return math.Inf(1)
	}
	i, ok := d.graph.index[from]
	if !ok {
		return math.Inf(1)
	}
	return d.rows[row][i]
}

// Nearest returns the closest of targets to from and its distance. It
// returns +Inf when no target is reachable.
func (d *Distances) Nearest(from Cell, targets []Cell) (Cell, float64) {
	best, bestDist := Cell{}, math.Inf(1)
	for _, target := range targets {
		if dist := d.Get(from, target); dist < bestDist {
			best, bestDist = target, dist
		}
	}
	return best, bestDist
}
