// simoos is a research simulator for contextual bandits with costly,
// partial context observation: replay datasets against the fixed-observation
// oracle or online baselines and compare gains.
package main

import (
	"os"

	"github.com/partialobs/simoos/cmd/simoos/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
