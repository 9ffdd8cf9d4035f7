// Package config provides configuration loading for dilemma tournaments.
// It supports YAML files and a few environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/ipdlab/dilemma/internal/game"
	"github.com/ipdlab/dilemma/internal/match"
	"github.com/ipdlab/dilemma/internal/strategy"
	"github.com/ipdlab/dilemma/internal/tournament"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "dilemma.yaml"

// Config describes a full tournament: participants, game parameters, and
// ambient settings.
type Config struct {
	// Rounds is the number of rounds per match.
	Rounds int `json:"rounds" yaml:"rounds"`

	// Seed drives all randomness of a run. The same config and seed
	// reproduce identical results.
	Seed uint64 `json:"seed" yaml:"seed"`

	// Noise is the per-move probability that an intended move executes
	// as its opposite. 0 disables execution errors.
	Noise float64 `json:"noise" yaml:"noise"`

	// SelfPlay adds one match of every agent against itself.
	SelfPlay bool `json:"self_play" yaml:"self_play"`

	// OnFailure selects what a strategy failure does to the tournament:
	// "abort" stops everything, "skip" excludes the pairing and continues.
	// There is no implicit default; the engine rejects an empty value.
	OnFailure string `json:"on_failure" yaml:"on_failure"`

	// Parallelism is the number of concurrent match workers.
	Parallelism int `json:"parallelism" yaml:"parallelism"`

	// Payoffs is the payoff matrix applied to every round.
	Payoffs game.PayoffMatrix `json:"payoffs" yaml:"payoffs"`

	// Agents are the tournament participants.
	Agents []AgentConfig `json:"agents" yaml:"agents"`

	Logging LoggingConfig `json:"logging" yaml:"logging"`
	Archive ArchiveConfig `json:"archive" yaml:"archive"`
}

// AgentConfig binds an agent name to a strategy and its parameters.
type AgentConfig struct {
	Name     string `json:"name" yaml:"name"`
	Strategy string `json:"strategy" yaml:"strategy"`

	strategy.Params `yaml:",inline"`
}

// LoggingConfig configures operational logging.
type LoggingConfig struct {
	// Level sets log verbosity: "info" (default), "debug", or "trace".
	// "debug" additionally writes per-match traces to matches.jsonl.
	Level string `json:"level" yaml:"level"`
}

// ArchiveConfig configures the optional sqlite run archive.
type ArchiveConfig struct {
	// Enabled persists finished runs to the archive database.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Path is the database file. Defaults to .dilemma/runs.db.
	Path string `json:"path" yaml:"path"`
}

// Default returns a runnable example configuration with the textbook
// payoff matrix and one agent per built-in strategy.
func Default() *Config {
	half := 0.5
	return &Config{
		Rounds:      100,
		Seed:        1,
		OnFailure:   "abort",
		Parallelism: 1,
		Payoffs:     game.DefaultPayoffs(),
		Agents: []AgentConfig{
			{Name: "coop", Strategy: strategy.NameCooperator},
			{Name: "grudge", Strategy: strategy.NameGrimTrigger},
			{Name: "hawk", Strategy: strategy.NameDefector},
			{Name: "mirror", Strategy: strategy.NameTitForTat},
			{Name: "patient", Strategy: strategy.NameTitForTwoTats},
			{Name: "coin", Strategy: strategy.NameRandom, Params: strategy.Params{Probability: &half}},
		},
		Logging: LoggingConfig{Level: "info"},
		Archive: ArchiveConfig{Enabled: false, Path: ".dilemma/runs.db"},
	}
}

// Load reads a YAML config file on top of the defaults and applies
// environment overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	cfg.Agents = nil // the file's agent list replaces the example set
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// Validate checks everything that can fail before simulation work begins.
func (c *Config) Validate() error {
	if len(c.Agents) < 2 {
		return fmt.Errorf("config needs at least 2 agents, got %d", len(c.Agents))
	}
	if _, err := tournament.ParseFailurePolicy(c.OnFailure); err != nil {
		return fmt.Errorf("on_failure: %w", err)
	}
	mc := match.Config{Rounds: c.Rounds, Noise: c.Noise, Payoffs: c.Payoffs}
	if err := mc.Validate(); err != nil {
		return err
	}

	validLevels := map[string]bool{"": true, "info": true, "debug": true, "trace": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace)", c.Logging.Level)
	}
	return nil
}

// Tournament builds the configured agents and a validated tournament.
// This is the single construction entry point used by the CLI and the
// MCP server.
func (c *Config) Tournament() (*tournament.Tournament, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	agents := make([]match.Agent, len(c.Agents))
	for i, ac := range c.Agents {
		s, err := strategy.New(ac.Strategy, ac.Params)
		if err != nil {
			return nil, fmt.Errorf("agent %q: %w", ac.Name, err)
		}
		agents[i] = match.Agent{Name: ac.Name, Strategy: s}
	}

	policy, err := tournament.ParseFailurePolicy(c.OnFailure)
	if err != nil {
		return nil, err
	}

	return tournament.New(tournament.Config{
		Payoffs:     c.Payoffs,
		Rounds:      c.Rounds,
		Noise:       c.Noise,
		Seed:        c.Seed,
		SelfPlay:    c.SelfPlay,
		OnFailure:   policy,
		Parallelism: c.Parallelism,
	}, agents)
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DILEMMA_SEED"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.Seed = n
		}
	}
	if v := os.Getenv("DILEMMA_ROUNDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Rounds = n
		}
	}
	if v := os.Getenv("DILEMMA_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// WriteDefault writes the default configuration as YAML to path.
func WriteDefault(path string) error {
	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("marshaling default config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
