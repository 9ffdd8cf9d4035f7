package strategy

import (
	"fmt"

	"github.com/ipdlab/dilemma/internal/game"
)

// Built-in strategy names.
const (
	NameCooperator    = "cooperator"
	NameDefector      = "defector"
	NameTitForTat     = "tit-for-tat"
	NameTitForTwoTats = "tit-for-two-tats"
	NameGrimTrigger   = "grim-trigger"
	NameRandom        = "random"
)

// cooperator cooperates unconditionally.
type cooperator struct{}

func (cooperator) Name() string { return NameCooperator }

func (cooperator) Decide(Input) (game.Move, error) { return game.Cooperate, nil }

// defector defects unconditionally.
type defector struct{}

func (defector) Name() string { return NameDefector }

func (defector) Decide(Input) (game.Move, error) { return game.Defect, nil }

// titForTat cooperates on the first round, then mirrors the opponent's
// previous move.
type titForTat struct{}

func (titForTat) Name() string { return NameTitForTat }

func (titForTat) Decide(in Input) (game.Move, error) {
	if len(in.Opponent) == 0 {
		return game.Cooperate, nil
	}
	return in.Opponent[len(in.Opponent)-1], nil
}

// titForTwoTats cooperates until the opponent defects twice in a row, and
// forgives as soon as the opponent cooperates again.
type titForTwoTats struct{}

func (titForTwoTats) Name() string { return NameTitForTwoTats }

func (titForTwoTats) Decide(in Input) (game.Move, error) {
	n := len(in.Opponent)
	if n >= 2 && in.Opponent[n-1] == game.Defect && in.Opponent[n-2] == game.Defect {
		return game.Defect, nil
	}
	return game.Cooperate, nil
}

// grimTrigger cooperates until the opponent has defected once, then defects
// for the rest of the match. The trigger is irreversible: it derives from
// the full opponent history, so later cooperation never resets it.
type grimTrigger struct{}

func (grimTrigger) Name() string { return NameGrimTrigger }

func (grimTrigger) Decide(in Input) (game.Move, error) {
	for _, m := range in.Opponent {
		if m == game.Defect {
			return game.Defect, nil
		}
	}
	return game.Cooperate, nil
}

// random cooperates with probability p each round, independently.
type random struct {
	p float64
}

func (random) Name() string { return NameRandom }

func (s random) Decide(in Input) (game.Move, error) {
	if in.Rand == nil {
		return game.Defect, ErrNoRandSource
	}
	if in.Rand.Float64() < s.p {
		return game.Cooperate, nil
	}
	return game.Defect, nil
}

func newRandom(p Params) (Strategy, error) {
	prob := 0.5
	if p.Probability != nil {
		prob = *p.Probability
	}
	if prob < 0 || prob > 1 {
		return nil, fmt.Errorf("cooperation probability %v out of range [0,1]", prob)
	}
	return random{p: prob}, nil
}
