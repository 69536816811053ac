package cmd

import (
	"fmt"
	"strings"

	"github.com/partialobs/simoos/internal/ports"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorCyan   = "\033[36m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

// formatRunResult renders a run summary for terminal display.
//
//	⚡ demo │ SimOOS-Oracle (beta=1) │ 10000 trials
//	  total gain   8731.20
//	  total reward 9800.00 │ total cost 1068.80
func formatRunResult(name string, res *ports.RunResult) string {
	var reward, cost float64
	for i := range res.Rewards {
		reward += res.Rewards[i]
		cost += res.Costs[i]
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s⚡ %s%s │ %s │ %d trials\n",
		colorBold, name, colorReset, res.Policy, res.Trials))
	sb.WriteString(fmt.Sprintf("  %stotal gain%s   %.4f\n", colorGreen, colorReset, res.TotalGain))
	sb.WriteString(fmt.Sprintf("  %stotal reward%s %.4f │ %stotal cost%s %.4f\n",
		colorCyan, colorReset, reward, colorYellow, colorReset, cost))
	return sb.String()
}
