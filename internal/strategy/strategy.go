// Package strategy defines the decision policies that agents play in the
// iterated prisoner's dilemma, and a registry to construct them by name.
package strategy

import (
	"errors"
	"math/rand/v2"

	"github.com/ipdlab/dilemma/internal/game"
)

// ErrNoRandSource is returned when a randomized strategy is invoked without
// a random source in its input.
var ErrNoRandSource = errors.New("no random source supplied")

// Input is everything a strategy may consult when deciding its next move.
// Self and Opponent are the move sequences of the current match so far,
// frozen as of the round about to be played; both are empty on round 0.
// Rand is the match's seeded random stream; strategies must draw randomness
// only from it so runs reproduce under the same seed.
type Input struct {
	Self     []game.Move
	Opponent []game.Move
	Round    int
	Rand     *rand.Rand
}

// Strategy decides one side's next move. Implementations must be pure with
// respect to Input: no state carried across rounds or matches. The same
// instance may serve concurrent matches.
type Strategy interface {
	Name() string
	Decide(in Input) (game.Move, error)
}

// Params carries strategy-specific configuration.
type Params struct {
	// Probability is the cooperation probability for the random strategy.
	// Nil means the strategy's default applies.
	Probability *float64 `json:"probability,omitempty" yaml:"probability,omitempty"`
}
