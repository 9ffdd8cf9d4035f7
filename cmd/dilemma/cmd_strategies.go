package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ipdlab/dilemma/internal/strategy"
)

func newStrategiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List the built-in strategies",
		RunE: func(cmd *cobra.Command, args []string) error {
			descs := strategy.Descriptors()

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				data, err := json.MarshalIndent(descs, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tLABEL\tSUMMARY")
			for _, d := range descs {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", d.Name, d.Label, d.Summary)
			}
			return tw.Flush()
		},
	}
}
