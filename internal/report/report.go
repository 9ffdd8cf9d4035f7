// Package report renders tournament results for console and file output.
// The simulation core never formats anything; all presentation lives here.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ipdlab/dilemma/internal/tournament"
)

// WriteStandings renders the ranked result table.
func WriteStandings(w io.Writer, res *tournament.Result) error {
	fmt.Fprintf(w, "Tournament: %d matches, %d rounds each (seed %d)\n",
		len(res.Matches), res.Rounds, res.Seed)
	if len(res.Failures) > 0 {
		fmt.Fprintf(w, "Excluded %d failed pairing(s) from aggregation\n", len(res.Failures))
	}
	fmt.Fprintln(w)

	if err := WriteStandingsTable(w, res.Standings); err != nil {
		return err
	}

	for _, f := range res.Failures {
		fmt.Fprintf(w, "\nfailed: %s vs %s at round %d: %s\n", f.AgentA, f.AgentB, f.Round, f.Reason)
	}
	return nil
}

// WriteStandingsTable renders just the ranking table. Callers with archived
// standings use this directly.
func WriteStandingsTable(w io.Writer, standings []tournament.Standing) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tAGENT\tSTRATEGY\tSCORE\tMATCHES\tAVG/ROUND")
	for _, s := range standings {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%.2f\n",
			s.Rank, s.Agent, s.Strategy, s.Score, s.Matches, s.AvgRound)
	}
	return tw.Flush()
}

// WriteMatches renders the per-pairing score table for post-hoc analysis.
func WriteMatches(w io.Writer, res *tournament.Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "AGENT A\tAGENT B\tSCORE A\tSCORE B")
	for _, m := range res.Matches {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", m.AgentA, m.AgentB, m.ScoreA, m.ScoreB)
	}
	return tw.Flush()
}
