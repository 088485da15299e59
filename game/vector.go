package game

import (
	"fmt"
	"math"

	"pursuit/utils"
)

// equalityThreshold bounds the per-axis difference of approximately equal vectors.
const equalityThreshold = 1e-6

// Vector is a continuous position or displacement. Agents move between
// cells, so their positions are not always integral.
type Vector struct {
	X, Y float64
}

func (v Vector) Add(other Vector) Vector {
	return Vector{X: v.X + other.X, Y: v.Y + other.Y}
}

func (v Vector) Sub(other Vector) Vector {
	return Vector{X: v.X - other.X, Y: v.Y - other.Y}
}

func (v Vector) Scale(factor float64) Vector {
	return Vector{X: v.X * factor, Y: v.Y * factor}
}

func (v Vector) Manhattan(other Vector) float64 {
	return utils.Abs(v.X-other.X) + utils.Abs(v.Y-other.Y)
}

func (v Vector) Euclidean(other Vector) float64 {
	return math.Hypot(v.X-other.X, v.Y-other.Y)
}

func (v Vector) Chebyshev(other Vector) float64 {
	return math.Max(utils.Abs(v.X-other.X), utils.Abs(v.Y-other.Y))
}

// Nearest rounds v to the closest grid cell.
func (v Vector) Nearest() Cell {
	return Cell{X: int(math.Floor(v.X + 0.5)), Y: int(math.Floor(v.Y + 0.5))}
}

// Aligned reports whether v lies on a grid cell within tolerance.
func (v Vector) Aligned(tolerance float64) bool {
	return v.Manhattan(v.Nearest().Vector()) <= tolerance
}

func (v Vector) ApproxEqual(other Vector) bool {
	d := v.Sub(other)
	return utils.Abs(d.X) < equalityThreshold && utils.Abs(d.Y) < equalityThreshold
}

func (v Vector) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}

// Cell is an integer grid coordinate. y=0 is the bottom row.
type Cell struct {
	X, Y int
}

func (c Cell) Vector() Vector {
	return Vector{X: float64(c.X), Y: float64(c.Y)}
}

// Step returns the neighboring cell in direction d.
func (c Cell) Step(d Direction) Cell {
	dx, dy := d.Offset()
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

func (c Cell) Manhattan(other Cell) int {
	return utils.Abs(c.X-other.X) + utils.Abs(c.Y-other.Y)
}

// Less orders cells by column, then row.
func (c Cell) Less(other Cell) bool {
	if c.X != other.X {
		return c.X < other.X
	}
	return c.Y < other.Y
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}
