package game

import "fmt"

// Direction is a heading on the grid. Opposite headings are negations of
// each other, so Reverse is a sign flip and Stop reverses to itself.
type Direction int8

const (
	West  Direction = -2
	South Direction = -1
	Stop  Direction = 0
	North Direction = 1
	East  Direction = 2
)

// Directions lists the four moving headings in neighbor expansion order.
var Directions = []Direction{West, South, North, East}

// actionOrder is the order in which legal actions are reported.
var actionOrder = []Direction{North, South, East, West, Stop}

func (d Direction) Reverse() Direction {
	return -d
}

func (d Direction) Valid() bool {
	return d >= West && d <= East
}

// Offset returns the unit grid displacement of d.
func (d Direction) Offset() (dx, dy int) {
	switch d {
	case North:
		return 0, 1
	case South:
		return 0, -1
	case East:
		return 1, 0
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}

// Vector returns the unit displacement of d scaled by speed.
func (d Direction) Vector(speed float64) Vector {
	dx, dy := d.Offset()
	return Vector{X: float64(dx), Y: float64(dy)}.Scale(speed)
}

func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case South:
		return "South"
	case East:
		return "East"
	case West:
		return "West"
	case Stop:
		return "Stop"
	default:
		return fmt.Sprintf("Direction(%d)", int8(d))
	}
}

// DirectionOf maps a displacement to the heading it points along. Vertical
// motion wins over horizontal; a zero displacement maps to Stop.
func DirectionOf(v Vector) Direction {
	switch {
	case v.Y > 0:
		return North
	case v.Y < 0:
		return South
	case v.X < 0:
		return West
	case v.X > 0:
		return East
	default:
		return Stop
	}
}
