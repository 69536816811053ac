package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/partialobs/simoos/internal/adapters/dataset"
	"github.com/partialobs/simoos/internal/app"
	"github.com/partialobs/simoos/internal/domain/oracle"
)

var oracleCmd = &cobra.Command{
	Use:   "oracle <experiment.yaml>",
	Short: "Inspect the oracle's observation-action values",
	Long:  "Builds the oracle for an experiment and prints every enumerated observation action with its value (beta·E[best reward] − cost), marking the selected one.",
	Args:  cobra.ExactArgs(1),
	RunE:  runOracle,
}

func runOracle(cmd *cobra.Command, args []string) error {
	cfg, err := app.LoadConfig(args[0])
	if err != nil {
		return err
	}
	ds, err := dataset.Load(cfg.ContextsFile, cfg.RewardsFile)
	if err != nil {
		return err
	}

	o, err := oracle.New(ds, oracle.Config{
		Costs:          cfg.Costs,
		Arms:           ds.Arms(),
		Budget:         cfg.Budget,
		Beta:           cfg.Beta,
		FallbackToPool: cfg.Fallback,
	})
	if err != nil {
		return err
	}

	actions := o.Actions()
	values := o.ActionValues()
	selected := o.SelectedAction()

	fmt.Printf("%s⚡ %s%s │ %d observation actions │ budget %d │ beta %g\n",
		colorBold, cfg.Name, colorReset, len(actions), cfg.Budget, cfg.Beta)
	for i, a := range actions {
		marker := " "
		if a.Equal(selected) {
			marker = fmt.Sprintf("%s◀ selected%s", colorGreen, colorReset)
		}
		fmt.Printf("  %s%s%s  cost %.4f  value %+.4f %s\n",
			colorCyan, a, colorReset, a.Cost(cfg.Costs), values[i], marker)
	}
	return nil
}
