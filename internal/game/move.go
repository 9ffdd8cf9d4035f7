// Package game defines the core domain types for the iterated prisoner's
// dilemma: moves, the payoff matrix, and per-match history. It is pure and
// must not import any infrastructure packages.
package game

import "fmt"

// Move is a single decision in one round of the dilemma.
type Move uint8

const (
	Cooperate Move = iota
	Defect
)

// Side identifies one of the two participants in a match.
type Side int

const (
	SideA Side = 0
	SideB Side = 1
)

// String returns the lowercase move name used in output and traces.
func (m Move) String() string {
	if m == Defect {
		return "defect"
	}
	return "cooperate"
}

// ParseMove maps a move name ("cooperate" or "defect") back to its Move.
func ParseMove(s string) (Move, error) {
	switch s {
	case "cooperate":
		return Cooperate, nil
	case "defect":
		return Defect, nil
	}
	return Cooperate, fmt.Errorf("unknown move: %q", s)
}

// Opposite returns the flipped move. Used when execution noise turns an
// intended move into its opposite.
func (m Move) Opposite() Move {
	if m == Cooperate {
		return Defect
	}
	return Cooperate
}

// MarshalJSON encodes the move as its string name so traces and archived
// results stay readable.
func (m Move) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}
