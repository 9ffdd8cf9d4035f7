package game

import (
	"errors"
	"fmt"
)

// ErrInvalidMatrix is returned when a payoff matrix does not describe a
// genuine dilemma.
var ErrInvalidMatrix = errors.New("payoff matrix does not satisfy dilemma constraints")

// PayoffMatrix holds the four canonical payoffs of the prisoner's dilemma.
// A matrix is valid when T > R > P > S and 2R > T+S, so mutual cooperation
// beats both mutual defection and alternating exploitation.
type PayoffMatrix struct {
	Temptation int `json:"temptation" yaml:"temptation"`
	Reward     int `json:"reward" yaml:"reward"`
	Punishment int `json:"punishment" yaml:"punishment"`
	Sucker     int `json:"sucker" yaml:"sucker"`
}

// DefaultPayoffs returns the textbook matrix T=5, R=3, P=1, S=0.
func DefaultPayoffs() PayoffMatrix {
	return PayoffMatrix{Temptation: 5, Reward: 3, Punishment: 1, Sucker: 0}
}

// Validate checks the dilemma inequalities. It is called before any
// simulation work begins; a matrix that fails here never reaches a match.
func (p PayoffMatrix) Validate() error {
	if !(p.Temptation > p.Reward && p.Reward > p.Punishment && p.Punishment > p.Sucker) {
		return fmt.Errorf("%w: need T > R > P > S, got T=%d R=%d P=%d S=%d",
			ErrInvalidMatrix, p.Temptation, p.Reward, p.Punishment, p.Sucker)
	}
	if 2*p.Reward <= p.Temptation+p.Sucker {
		return fmt.Errorf("%w: need 2R > T+S, got R=%d T=%d S=%d",
			ErrInvalidMatrix, p.Reward, p.Temptation, p.Sucker)
	}
	return nil
}

// Payoff returns the payoff for the own side given both executed moves.
func (p PayoffMatrix) Payoff(own, opponent Move) int {
	switch {
	case own == Cooperate && opponent == Cooperate:
		return p.Reward
	case own == Defect && opponent == Defect:
		return p.Punishment
	case own == Defect && opponent == Cooperate:
		return p.Temptation
	default:
		return p.Sucker
	}
}

// Payoffs returns both sides' payoffs for a pair of executed moves.
func (p PayoffMatrix) Payoffs(a, b Move) (int, int) {
	return p.Payoff(a, b), p.Payoff(b, a)
}
