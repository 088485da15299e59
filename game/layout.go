package game

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"golang.org/x/exp/rand"

	"pursuit/utils"
)

// Spawn is a starting cell for one agent.
type Spawn struct {
	Cell   Cell
	Seeker bool
	Label  byte // '0'..'9' for pursuers, 'P' for the seeker
}

// Layout is the fixed maze a game is played on. It is never modified once
// a game has started; game states hold a shared pointer to it.
type Layout struct {
	Width    int
	Height   int
	Walls    Grid
	Food     Grid
	Capsules []Cell
	Spawns   []Spawn // seeker first, then pursuers ordered by label
}

// NumPursuers returns the number of pursuer spawns on the layout.
func (l *Layout) NumPursuers() int {
	return len(l.Spawns) - 1
}

// IsWall reports whether c is blocked. Cells outside the maze are blocked.
func (l *Layout) IsWall(c Cell) bool {
	return !l.Walls.InBounds(c) || l.Walls.At(c)
}

// LoadLayout reads a maze text file.
func LoadLayout(path string) (*Layout, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open layout %s: %w", path, err)
	}
	defer file.Close()

	layout, err := ParseLayout(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout %s: %w", path, err)
	}
	return layout, nil
}

// ParseLayout reads a rectangular character maze:
//
//	#  wall
//	.  food
//	o  capsule
//	P  seeker spawn
//	0-9 pursuer spawn
//
// The first text row is the top of the maze. Internally y=0 is the bottom
// row, so rows are inverted on load.
func ParseLayout(r io.Reader) (*Layout, error) {
	var rows []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		rows = append(rows, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read maze: %w", err)
	}
	return NewLayout(rows)
}

// NewLayout builds a layout from maze rows, top row first.
func NewLayout(rows []string) (*Layout, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty maze", ErrInvalidLayout)
	}
	width, height := len(rows[0]), len(rows)
	layout := &Layout{
		Width:  width,
		Height: height,
		Walls:  NewGrid(width, height, false),
		Food:   NewGrid(width, height, false),
	}

	var pursuers []Spawn
	seekers := 0
	for row, line := range rows {
		if len(line) != width {
			return nil, fmt.Errorf("%w: row %d has width %d, expected %d", ErrInvalidLayout, row, len(line), width)
		}
		y := height - row - 1
		for x := 0; x < width; x++ {
			cell := Cell{X: x, Y: y}
			switch ch := line[x]; {
			case ch == '#':
				layout.Walls.set(cell, true)
			case ch == '.':
				layout.Food.set(cell, true)
			case ch == 'o':
				layout.Capsules = append(layout.Capsules, cell)
			case ch == 'P':
				seekers++
				layout.Spawns = append([]Spawn{{Cell: cell, Seeker: true, Label: ch}}, layout.Spawns...)
			case ch >= '0' && ch <= '9':
				pursuers = append(pursuers, Spawn{Cell: cell, Label: ch})
			case ch == ' ':
			default:
				return nil, fmt.Errorf("%w: unexpected character %q at %s", ErrInvalidLayout, ch, cell)
			}
		}
	}
	if seekers != 1 {
		return nil, fmt.Errorf("%w: expected exactly one seeker spawn, found %d", ErrInvalidLayout, seekers)
	}

	sort.SliceStable(pursuers, func(i, j int) bool {
		if pursuers[i].Label != pursuers[j].Label {
			return pursuers[i].Label < pursuers[j].Label
		}
		return pursuers[i].Cell.Less(pursuers[j].Cell)
	})
	layout.Spawns = append(layout.Spawns, pursuers...)
	return layout, nil
}

// PlaceEntities populates a wall-only maze with a seeker, pursuers, food and
// capsules on distinct random free cells.
func PlaceEntities(walls Grid, pursuers, food, capsules int, rng *rand.Rand) (*Layout, error) {
	if pursuers < 0 || food < 0 || capsules < 0 {
		return nil, fmt.Errorf("%w: negative entity count", ErrInvalidLayout)
	}
	free := walls.Invert().Positions()
	required := 1 + pursuers + food + capsules
	if required > len(free) {
		return nil, fmt.Errorf("%w: %d entities on %d free cells", ErrInsufficientSpace, required, len(free))
	}
	rng.Shuffle(len(free), func(i, j int) { free[i], free[j] = free[j], free[i] })

	layout := &Layout{
		Width:  walls.Width(),
		Height: walls.Height(),
		Walls:  walls.Copy(),
		Food:   NewGrid(walls.Width(), walls.Height(), false),
	}
	layout.Spawns = append(layout.Spawns, Spawn{Cell: free[0], Seeker: true, Label: 'P'})
	free = free[1:]
	for i := 0; i < pursuers; i++ {
		layout.Spawns = append(layout.Spawns, Spawn{Cell: free[i], Label: byte('1' + i%9)})
	}
	free = free[pursuers:]
	for _, cell := range free[:food] {
		layout.Food.set(cell, true)
	}
	free = free[food:]
	layout.Capsules = append(layout.Capsules, free[:capsules]...)
	return layout, nil
}

// String renders the layout in the text format accepted by ParseLayout.
func (l *Layout) String() string {
	var sb strings.Builder
	spawns := make(map[Cell]byte, len(l.Spawns))
	for _, spawn := range l.Spawns {
		spawns[spawn.Cell] = spawn.Label
	}
	for y := l.Height - 1; y >= 0; y-- {
		for x := 0; x < l.Width; x++ {
			cell := Cell{X: x, Y: y}
			switch label, ok := spawns[cell]; {
			case l.Walls.At(cell):
				sb.WriteByte('#')
			case ok:
				sb.WriteByte(label)
			case l.Food.At(cell):
				sb.WriteByte('.')
			case utils.FindIndex(l.Capsules, cell) >= 0:
				sb.WriteByte('o')
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
