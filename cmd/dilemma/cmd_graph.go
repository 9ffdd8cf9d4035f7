package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ipdlab/dilemma/internal/report"
)

func newGraphCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Render the matchup graph as Graphviz DOT",
		Long: `Runs the configured tournament and renders the matchup graph in DOT
format: one node per agent, one edge per pairing labeled with the two
scores.

Example:
  dilemma graph -o matchups.dot && dot -Tsvg matchups.dot -o matchups.svg`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			applyRunFlags(cmd, cfg)

			t, err := cfg.Tournament()
			if err != nil {
				return err
			}
			res, err := t.Run(cmd.Context())
			if err != nil {
				return fmt.Errorf("tournament failed: %w", err)
			}

			dot := report.RenderDOT(res)
			if output != "" {
				if err := os.WriteFile(output, []byte(dot), 0644); err != nil {
					return fmt.Errorf("writing graph: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", output)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), dot)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write DOT to a file instead of stdout")
	cmd.Flags().Int("rounds", 0, "Rounds per match (overrides config)")
	cmd.Flags().Uint64("seed", 0, "Seed for all randomness (overrides config)")
	cmd.Flags().Float64("noise", 0, "Per-move execution error probability (overrides config)")
	cmd.Flags().Bool("self-play", false, "Add one match of every agent against itself")
	cmd.Flags().String("on-failure", "", "Strategy failure policy: abort or skip (overrides config)")
	cmd.Flags().Int("parallelism", 0, "Concurrent match workers (overrides config)")
	return cmd
}
