// Package game implements the rules of a grid pursuit game: a single seeker
// (agent 0) eats food on a maze while pursuers (agents 1..n) try to catch it.
//
// Every transition returns a new GameState. Unmodified parts of the parent
// (layout, food grid, capsules) are shared with the successor, so any number
// of hypothetical futures may be explored from the same ancestor.
package game

// Movement and collision constants.
const (
	SeekerSpeed        = 1.0
	PursuerSpeed       = 1.0
	ScaredTime         = 40
	CollisionTolerance = 0.7
	AlignmentTolerance = 1e-3
)

// Score deltas. These are the only amounts by which the score ever changes.
const (
	TimePenalty  = 1
	FoodScore    = 10
	WinScore     = 500
	DeathPenalty = 500
	KillScore    = 200
)

// SeekerIndex is the agent index of the seeker in every game state.
const SeekerIndex = 0

type StateHash uint64

// Evaluate scores a game state from the seeker's perspective. Higher is
// better for the seeker.
type Evaluate func(*GameState) float64
