package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ipdlab/dilemma/internal/archive"
	"github.com/ipdlab/dilemma/internal/report"
)

func newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List archived tournament runs",
		Long: `Lists runs persisted to the archive database, newest first.
Runs are archived when archive.enabled is set in the config or when
"dilemma run --archive" is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			store, err := archive.Open(cfg.Archive.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.ListRuns(cmd.Context())
			if err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				data, err := json.MarshalIndent(map[string]any{
					"runs":  runs,
					"count": len(runs),
				}, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No archived runs. Use 'dilemma run --archive' to archive one.")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tCREATED\tAGENTS\tMATCHES\tROUNDS\tSEED\tWINNER")
			for _, r := range runs {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
					r.ID, r.CreatedAt.Format(time.RFC3339), r.AgentCount, r.MatchCount, r.Rounds, r.Seed, r.Winner)
			}
			return tw.Flush()
		},
	}
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show an archived run in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			store, err := archive.Open(cfg.Archive.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			run, err := store.GetRun(cmd.Context(), args[0])
			if errors.Is(err, archive.ErrRunNotFound) {
				return fmt.Errorf("no archived run %s", args[0])
			}
			if err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				data, err := json.MarshalIndent(run, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Run %s (%s)\n", run.ID, run.CreatedAt.Format(time.RFC3339))
			fmt.Fprintf(cmd.OutOrStdout(), "Seed %d, %d rounds per match, noise %.2f\n\n", run.Seed, run.Rounds, run.Noise)
			if err := report.WriteStandingsTable(cmd.OutOrStdout(), run.Standings); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout())
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "AGENT A\tAGENT B\tSCORE A\tSCORE B")
			for _, m := range run.Matches {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", m.AgentA, m.AgentB, m.ScoreA, m.ScoreB)
			}
			return tw.Flush()
		},
	}
}
