package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0-dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dilemma",
		Short: "Iterated prisoner's dilemma tournament simulator",
		Long: `dilemma runs round-robin tournaments of the iterated prisoner's dilemma.

Agents bound to built-in strategies play a fixed number of rounds per
pairing; payoffs accumulate under a configurable matrix and agents are
ranked by total score. Runs are fully reproducible from a seed.`,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON (for tooling consumption)")
	rootCmd.PersistentFlags().String("config", "", "Config file path (default dilemma.yaml)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newInitCmd(),
		newRunCmd(),
		newStrategiesCmd(),
		newGraphCmd(),
		newHistoryCmd(),
		newShowCmd(),
		newMCPServerCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
