package game

// Grid is a dense boolean field over the maze (walls, food). A Grid value is
// immutable once built: With returns a modified copy and leaves the receiver
// untouched, so grids can be shared freely between game states.
type Grid struct {
	width  int
	height int
	data   []bool // column-major: data[x*height+y]
}

func NewGrid(width, height int, value bool) Grid {
	data := make([]bool, width*height)
	if value {
		for i := range data {
			data[i] = true
		}
	}
	return Grid{width: width, height: height, data: data}
}

func (g Grid) Width() int  { return g.width }
func (g Grid) Height() int { return g.height }

func (g Grid) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

// At reports the value at c. Cells outside the grid read as false.
func (g Grid) At(c Cell) bool {
	if !g.InBounds(c) {
		return false
	}
	return g.data[c.X*g.height+c.Y]
}

// With returns a copy of g with c set to value.
func (g Grid) With(c Cell, value bool) Grid {
	out := g.Copy()
	out.set(c, value)
	return out
}

func (g *Grid) set(c Cell, value bool) {
	if g.InBounds(c) {
		g.data[c.X*g.height+c.Y] = value
	}
}

func (g Grid) Copy() Grid {
	data := make([]bool, len(g.data))
	copy(data, g.data)
	return Grid{width: g.width, height: g.height, data: data}
}

// Positions lists the cells holding true, column by column.
func (g Grid) Positions() []Cell {
	var cells []Cell
	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			if g.data[x*g.height+y] {
				cells = append(cells, Cell{X: x, Y: y})
			}
		}
	}
	return cells
}

func (g Grid) Invert() Grid {
	out := g.Copy()
	for i, v := range out.data {
		out.data[i] = !v
	}
	return out
}

func (g Grid) Count(value bool) int {
	count := 0
	for _, v := range g.data {
		if v == value {
			count++
		}
	}
	return count
}
