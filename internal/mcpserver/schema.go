package mcpserver

import "github.com/ipdlab/dilemma/internal/tournament"

// AgentSpec names one tournament participant.
type AgentSpec struct {
	Name        string   `json:"name" jsonschema:"Agent name; must be unique"`
	Strategy    string   `json:"strategy" jsonschema:"Built-in strategy name (see dilemma_strategies)"`
	Probability *float64 `json:"probability,omitempty" jsonschema:"Cooperation probability for the random strategy (default 0.5)"`
}

// RunInput defines the input for the dilemma_run tool.
type RunInput struct {
	Agents    []AgentSpec `json:"agents" jsonschema:"Tournament participants (at least 2)"`
	Rounds    int         `json:"rounds,omitempty" jsonschema:"Rounds per match (default 100)"`
	Seed      uint64      `json:"seed,omitempty" jsonschema:"Random seed; identical seeds reproduce identical results"`
	Noise     float64     `json:"noise,omitempty" jsonschema:"Per-move probability of executing the opposite move (default 0)"`
	SelfPlay  bool        `json:"self_play,omitempty" jsonschema:"Add one match of every agent against itself"`
	OnFailure string      `json:"on_failure,omitempty" jsonschema:"What a strategy failure does: 'abort' (default) or 'skip'"`
}

// RunOutput defines the output for the dilemma_run tool.
type RunOutput struct {
	Standings []tournament.Standing `json:"standings" jsonschema:"Ranked agents, best first"`
	Matches   int                   `json:"matches" jsonschema:"Number of completed matches"`
	Failures  []tournament.Failure  `json:"failures,omitempty" jsonschema:"Pairings excluded from aggregation"`
	Seed      uint64                `json:"seed" jsonschema:"Seed that produced this result"`
}

// StrategiesInput defines the input for the dilemma_strategies tool.
type StrategiesInput struct{}

// StrategyInfo describes one built-in strategy.
type StrategyInfo struct {
	Name    string `json:"name"`
	Label   string `json:"label"`
	Summary string `json:"summary"`
}

// StrategiesOutput defines the output for the dilemma_strategies tool.
type StrategiesOutput struct {
	Strategies []StrategyInfo `json:"strategies"`
	Count      int            `json:"count"`
}
