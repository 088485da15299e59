package game

// Configuration is an agent's continuous position and facing direction.
type Configuration struct {
	Position  Vector
	Direction Direction
}

// Advance moves the configuration by displacement. The facing direction
// follows the displacement, except that a zero displacement keeps it.
func (c Configuration) Advance(displacement Vector) Configuration {
	direction := DirectionOf(displacement)
	if direction == Stop {
		direction = c.Direction
	}
	return Configuration{Position: c.Position.Add(displacement), Direction: direction}
}

// Cell returns the grid cell nearest to the configuration's position.
func (c Configuration) Cell() Cell {
	return c.Position.Nearest()
}

// AgentState is the per-agent part of a game state.
type AgentState struct {
	Config      Configuration
	Seeker      bool
	ScaredTimer int
	Spawn       Configuration
}

func (a AgentState) Position() Vector     { return a.Config.Position }
func (a AgentState) Direction() Direction { return a.Config.Direction }
func (a AgentState) Scared() bool         { return a.ScaredTimer > 0 }

// respawn returns a caught pursuer to its spawn configuration.
func (a AgentState) respawn() AgentState {
	a.Config = a.Spawn
	a.ScaredTimer = 0
	return a
}
