package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/partialobs/simoos/internal/adapters/bbolt"
)

var resultsCmd = &cobra.Command{
	Use:   "results [experiment]",
	Short: "List stored runs or show one",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runResults,
}

func runResults(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(dbPath()); os.IsNotExist(err) {
		fmt.Println("no stored runs")
		return nil
	}
	store, err := bbolt.NewStore(dbPath())
	if err != nil {
		return err
	}
	defer store.Close()

	if len(args) == 0 {
		names, err := store.ListRuns()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Println("no stored runs")
			return nil
		}
		for _, name := range names {
			res, err := store.LoadRun(name)
			if err != nil {
				return err
			}
			fmt.Printf("  %s%-20s%s %s │ %d trials │ gain %.4f\n",
				colorCyan, name, colorReset, res.Policy, res.Trials, res.TotalGain)
		}
		return nil
	}

	res, err := store.LoadRun(args[0])
	if err != nil {
		return err
	}
	if res == nil {
		return fmt.Errorf("no stored run named %q", args[0])
	}
	fmt.Print(formatRunResult(args[0], res))
	return nil
}
