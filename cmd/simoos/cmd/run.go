package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/partialobs/simoos/internal/adapters/bbolt"
	"github.com/partialobs/simoos/internal/adapters/dataset"
	fswatch "github.com/partialobs/simoos/internal/adapters/fsnotify"
	"github.com/partialobs/simoos/internal/app"
)

var (
	runWatch   bool
	runNoStore bool
)

var runCmd = &cobra.Command{
	Use:   "run <experiment.yaml>",
	Short: "Run an experiment",
	Long:  "Loads an experiment file, replays its dataset against the configured policy, prints the gain summary, and stores the result.",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

func init() {
	runCmd.Flags().BoolVar(&runWatch, "watch", false, "Re-run when the experiment file or dataset changes")
	runCmd.Flags().BoolVar(&runNoStore, "no-store", false, "Skip persisting the run result")
}

func runRun(cmd *cobra.Command, args []string) error {
	if err := runOnce(args[0]); err != nil {
		return err
	}
	if !runWatch {
		return nil
	}

	cfg, err := app.LoadConfig(args[0])
	if err != nil {
		return err
	}
	w, err := fswatch.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Stop()

	err = w.Watch([]string{args[0], cfg.ContextsFile, cfg.RewardsFile}, func(path string) {
		fmt.Printf("%s⚡ %s changed, re-running%s\n", colorGray, path, colorReset)
		if err := runOnce(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
	})
	if err != nil {
		return err
	}

	fmt.Printf("%swatching for changes (ctrl-c to stop)%s\n", colorGray, colorReset)
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	return nil
}

// runOnce executes the experiment file end to end: load config and dataset,
// build the policy, replay, report, persist.
func runOnce(path string) error {
	cfg, err := app.LoadConfig(path)
	if err != nil {
		return err
	}
	ds, err := dataset.Load(cfg.ContextsFile, cfg.RewardsFile)
	if err != nil {
		return err
	}

	policy, err := app.NewPolicy(cfg, ds)
	if err != nil {
		return err
	}
	runner, err := app.NewRunner(ds, policy, cfg.Costs)
	if err != nil {
		return err
	}
	res, err := runner.Run()
	if err != nil {
		return err
	}

	fmt.Print(formatRunResult(cfg.Name, res))

	if runNoStore {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(dbPath()), 0755); err != nil {
		return err
	}
	store, err := bbolt.NewStore(dbPath())
	if err != nil {
		return err
	}
	defer store.Close()
	return store.SaveRun(cfg.Name, res)
}
