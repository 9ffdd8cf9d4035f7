// Package match executes a single fixed-length match between two agents.
package match

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/ipdlab/dilemma/internal/game"
	"github.com/ipdlab/dilemma/internal/strategy"
)

var (
	// ErrRounds is returned when a match is configured with fewer than
	// one round.
	ErrRounds = errors.New("round count must be at least 1")

	// ErrNoise is returned when the noise probability is outside [0,1].
	ErrNoise = errors.New("noise probability must be within [0,1]")
)

// Agent binds an identity to a strategy for the duration of a tournament.
type Agent struct {
	Name     string
	Strategy strategy.Strategy
}

// Config holds the parameters shared by every match in a tournament.
type Config struct {
	// Rounds is the number of rounds to play. Must be at least 1.
	Rounds int

	// Noise is the per-move probability that an intended move is executed
	// as its opposite. The executed move, not the intended one, is what
	// gets recorded and paid.
	Noise float64

	// Payoffs is the payoff matrix used for every round.
	Payoffs game.PayoffMatrix
}

// Validate rejects a configuration before any round is played.
func (c Config) Validate() error {
	if c.Rounds < 1 {
		return fmt.Errorf("%w: got %d", ErrRounds, c.Rounds)
	}
	if c.Noise < 0 || c.Noise > 1 {
		return fmt.Errorf("%w: got %v", ErrNoise, c.Noise)
	}
	return c.Payoffs.Validate()
}

// Result is the immutable outcome of a completed match.
type Result struct {
	AgentA string
	AgentB string
	Rounds int
	ScoreA int
	ScoreB int

	// History holds every executed round. Owned by the result; callers
	// read it only.
	History *game.History
}

// StrategyError reports a strategy failing mid-match, with enough context
// to reproduce it. The match is aborted; no default move is substituted.
type StrategyError struct {
	Agent    string
	Opponent string
	Round    int
	Err      error
}

func (e *StrategyError) Error() string {
	return fmt.Sprintf("strategy of agent %q failed at round %d against %q: %v",
		e.Agent, e.Round, e.Opponent, e.Err)
}

func (e *StrategyError) Unwrap() error { return e.Err }

// Play runs a full match between a and b. Both strategies decide each round
// from history frozen as of that round, so neither observes the other's
// current-round move. moves is the seeded stream strategies may draw
// randomness from; noise drives execution errors and is a separate stream
// so enabling noise does not perturb strategy decisions.
func Play(cfg Config, a, b Agent, moves, noise *rand.Rand) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	hist := game.NewHistory(cfg.Rounds)
	var scoreA, scoreB int

	for r := 0; r < cfg.Rounds; r++ {
		selfA := hist.MovesFor(game.SideA)
		selfB := hist.MovesFor(game.SideB)

		moveA, err := a.Strategy.Decide(strategy.Input{Self: selfA, Opponent: selfB, Round: r, Rand: moves})
		if err != nil {
			return Result{}, &StrategyError{Agent: a.Name, Opponent: b.Name, Round: r, Err: err}
		}
		moveB, err := b.Strategy.Decide(strategy.Input{Self: selfB, Opponent: selfA, Round: r, Rand: moves})
		if err != nil {
			return Result{}, &StrategyError{Agent: b.Name, Opponent: a.Name, Round: r, Err: err}
		}

		if cfg.Noise > 0 {
			if noise.Float64() < cfg.Noise {
				moveA = moveA.Opposite()
			}
			if noise.Float64() < cfg.Noise {
				moveB = moveB.Opposite()
			}
		}

		payA, payB := cfg.Payoffs.Payoffs(moveA, moveB)
		hist.Append(moveA, moveB, payA, payB)
		scoreA += payA
		scoreB += payB
	}

	return Result{
		AgentA:  a.Name,
		AgentB:  b.Name,
		Rounds:  cfg.Rounds,
		ScoreA:  scoreA,
		ScoreB:  scoreB,
		History: hist,
	}, nil
}
