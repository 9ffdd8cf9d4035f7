// Package tournament schedules a round-robin of matches between agents and
// aggregates their scores into a ranked result.
package tournament

import (
	"errors"
	"fmt"

	"github.com/ipdlab/dilemma/internal/game"
	"github.com/ipdlab/dilemma/internal/match"
)

var (
	// ErrTooFewAgents is returned when fewer than two agents are supplied.
	ErrTooFewAgents = errors.New("tournament needs at least 2 agents")

	// ErrDuplicateAgent is returned when two agents share a name.
	ErrDuplicateAgent = errors.New("duplicate agent name")

	// ErrNoFailurePolicy is returned when the configuration leaves the
	// match-failure policy unset. The policy changes ranking fairness, so
	// it must be chosen explicitly rather than defaulted.
	ErrNoFailurePolicy = errors.New("failure policy must be set explicitly")

	// ErrShortMatch reports a completed match whose round count disagrees
	// with the configured one. This is an internal consistency failure.
	ErrShortMatch = errors.New("match completed with unexpected round count")
)

// FailurePolicy selects what a strategy failure inside one match does to
// the rest of the tournament.
type FailurePolicy int

const (
	failureUnset FailurePolicy = iota

	// FailureAbort stops the whole tournament at the first failed match.
	FailureAbort

	// FailureSkip records the failure, excludes that pairing from
	// aggregation, and keeps playing the remaining matches.
	FailureSkip
)

// ParseFailurePolicy maps the config strings "abort" and "skip".
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch s {
	case "abort":
		return FailureAbort, nil
	case "skip":
		return FailureSkip, nil
	case "":
		return failureUnset, ErrNoFailurePolicy
	default:
		return failureUnset, fmt.Errorf("unknown failure policy %q (want \"abort\" or \"skip\")", s)
	}
}

func (p FailurePolicy) String() string {
	switch p {
	case FailureAbort:
		return "abort"
	case FailureSkip:
		return "skip"
	default:
		return "unset"
	}
}

// Config holds everything needed to run a tournament.
type Config struct {
	Payoffs game.PayoffMatrix

	// Rounds is the number of rounds per match.
	Rounds int

	// Noise is the per-move execution error probability (0 disables it).
	Noise float64

	// Seed drives all randomness. The same seed and configuration always
	// reproduce the same histories and standings.
	Seed uint64

	// SelfPlay adds one match of every agent against itself.
	SelfPlay bool

	// OnFailure is the explicit per-tournament failure policy.
	OnFailure FailurePolicy

	// Parallelism is the number of concurrent match workers. Values
	// below 2 run matches sequentially. Results are identical either way.
	Parallelism int
}

// pairing is one scheduled match. Index is the position in the schedule
// and seeds the match's random streams.
type pairing struct {
	index int
	a, b  int
}

// Tournament is a validated, ready-to-run round-robin.
type Tournament struct {
	cfg      Config
	agents   []match.Agent
	schedule []pairing
}

// New validates the configuration and the agent set and builds the match
// schedule: every unordered pair exactly once, plus self-pairings when
// enabled. All configuration errors surface here, before any match runs.
func New(cfg Config, agents []match.Agent) (*Tournament, error) {
	if len(agents) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewAgents, len(agents))
	}
	seen := make(map[string]bool, len(agents))
	for _, a := range agents {
		if a.Name == "" {
			return nil, errors.New("agent name must not be empty")
		}
		if seen[a.Name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateAgent, a.Name)
		}
		seen[a.Name] = true
	}

	mc := match.Config{Rounds: cfg.Rounds, Noise: cfg.Noise, Payoffs: cfg.Payoffs}
	if err := mc.Validate(); err != nil {
		return nil, err
	}
	if cfg.OnFailure != FailureAbort && cfg.OnFailure != FailureSkip {
		return nil, ErrNoFailurePolicy
	}

	n := len(agents)
	size := n * (n - 1) / 2
	if cfg.SelfPlay {
		size += n
	}
	schedule := make([]pairing, 0, size)
	for i := 0; i < n; i++ {
		if cfg.SelfPlay {
			schedule = append(schedule, pairing{index: len(schedule), a: i, b: i})
		}
		for j := i + 1; j < n; j++ {
			schedule = append(schedule, pairing{index: len(schedule), a: i, b: j})
		}
	}

	return &Tournament{cfg: cfg, agents: agents, schedule: schedule}, nil
}

// Agents returns the participating agents in registration order.
func (t *Tournament) Agents() []match.Agent { return t.agents }

// MatchCount returns the number of scheduled matches.
func (t *Tournament) MatchCount() int { return len(t.schedule) }
