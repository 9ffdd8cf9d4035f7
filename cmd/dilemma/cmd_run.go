package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ipdlab/dilemma/internal/archive"
	"github.com/ipdlab/dilemma/internal/config"
	"github.com/ipdlab/dilemma/internal/logging"
	"github.com/ipdlab/dilemma/internal/report"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a round-robin tournament",
		Long: `Runs the configured tournament: every pair of agents plays one match
of the configured number of rounds, scores are summed, and agents are
ranked by total score.

The run is reproducible: the same config and seed always produce the
same standings, regardless of --parallelism.

Example:
  dilemma run --rounds 200 --seed 42`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			applyRunFlags(cmd, cfg)

			logger := logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr())
			matchLog := logging.NewMatchLogger(".dilemma", cfg.Logging.Level)
			defer matchLog.Close()

			t, err := cfg.Tournament()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			sigCh := make(chan os.Signal, 1)
			notifySignals(sigCh)
			go func() {
				<-sigCh
				logger.Info("interrupted, cancelling run")
				cancel()
			}()

			logger.Info("starting tournament",
				"agents", len(t.Agents()),
				"matches", t.MatchCount(),
				"rounds", cfg.Rounds,
				"seed", cfg.Seed)

			res, err := t.Run(ctx)
			if err != nil {
				return fmt.Errorf("tournament failed: %w", err)
			}

			for i, m := range res.Matches {
				matchLog.Log(map[string]any{
					"event":   "match",
					"index":   i,
					"agent_a": m.AgentA,
					"agent_b": m.AgentB,
					"score_a": m.ScoreA,
					"score_b": m.ScoreB,
					"rounds":  m.Rounds,
				})
			}

			var runID string
			if cfg.Archive.Enabled {
				store, err := archive.Open(cfg.Archive.Path)
				if err != nil {
					return err
				}
				defer store.Close()
				runID, err = store.SaveRun(ctx, res)
				if err != nil {
					return fmt.Errorf("archiving run: %w", err)
				}
				logger.Debug("archived run", "id", runID, "path", cfg.Archive.Path)
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				out := map[string]any{"result": res}
				if runID != "" {
					out["run_id"] = runID
				}
				data, err := json.MarshalIndent(out, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			if err := report.WriteStandings(cmd.OutOrStdout(), res); err != nil {
				return err
			}
			if showMatches, _ := cmd.Flags().GetBool("matches"); showMatches {
				fmt.Fprintln(cmd.OutOrStdout())
				if err := report.WriteMatches(cmd.OutOrStdout(), res); err != nil {
					return err
				}
			}
			if runID != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "\nArchived as run %s\n", runID)
			}
			return nil
		},
	}

	cmd.Flags().Int("rounds", 0, "Rounds per match (overrides config)")
	cmd.Flags().Uint64("seed", 0, "Seed for all randomness (overrides config)")
	cmd.Flags().Float64("noise", 0, "Per-move execution error probability (overrides config)")
	cmd.Flags().Bool("self-play", false, "Add one match of every agent against itself")
	cmd.Flags().String("on-failure", "", "Strategy failure policy: abort or skip (overrides config)")
	cmd.Flags().Int("parallelism", 0, "Concurrent match workers (overrides config)")
	cmd.Flags().Bool("archive", false, "Persist the finished run to the archive")
	cmd.Flags().Bool("matches", false, "Also print the per-pairing score table")
	return cmd
}

// loadConfig resolves the effective config: an explicit --config path must
// exist, the default path is used when present, and the built-in defaults
// apply otherwise.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		return config.Load(path)
	}
	if _, err := os.Stat(config.DefaultPath); err == nil {
		return config.Load(config.DefaultPath)
	}
	return config.Default(), nil
}

func applyRunFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("rounds") {
		cfg.Rounds, _ = cmd.Flags().GetInt("rounds")
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed, _ = cmd.Flags().GetUint64("seed")
	}
	if cmd.Flags().Changed("noise") {
		cfg.Noise, _ = cmd.Flags().GetFloat64("noise")
	}
	if cmd.Flags().Changed("self-play") {
		cfg.SelfPlay, _ = cmd.Flags().GetBool("self-play")
	}
	if cmd.Flags().Changed("on-failure") {
		cfg.OnFailure, _ = cmd.Flags().GetString("on-failure")
	}
	if cmd.Flags().Changed("parallelism") {
		cfg.Parallelism, _ = cmd.Flags().GetInt("parallelism")
	}
	if cmd.Flags().Changed("archive") {
		cfg.Archive.Enabled, _ = cmd.Flags().GetBool("archive")
	}
}
