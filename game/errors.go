package game

import "errors"

var (
	// ErrIllegalAction is returned when an action is not in the mover's legal set.
	ErrIllegalAction = errors.New("illegal action")
	// ErrTerminalState is returned when advancing a won or lost state.
	ErrTerminalState = errors.New("transition from terminal state")

	ErrInvalidAgentIndex = errors.New("invalid agent index")
	ErrInvalidLayout     = errors.New("invalid layout")
	ErrInsufficientSpace = errors.New("insufficient space in maze")
)
