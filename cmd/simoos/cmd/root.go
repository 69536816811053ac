package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "simoos",
	Short:         "simoos — costly-observation bandit simulator",
	Long:          "Replay contextual-bandit datasets against the fixed-observation oracle and online baselines, with per-feature observation costs.",
	SilenceUsage:  true,
	SilenceErrors: false,
}

// dbPath returns the path of the result store, next to the working
// directory by default.
func dbPath() string {
	dir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	return filepath.Join(dir, ".simoos", "simoos.db")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(oracleCmd)
	rootCmd.AddCommand(datasetCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(wipeCmd)
}
