package cmd

import (
	"fmt"

	"github.com/devpulse/devpulse/internal/contract"
	"github.com/spf13/cobra"
)

var cpsCmd = &cobra.Command{
	Use:   "cps",
	Short: "Compute the composite productivity score.",
	Long: `Compute the composite productivity score (CPS) per interval. The CPS
is the weighted sum of the selected metrics' z-scores, so metrics where lower
values are better already contribute with inverted sign.

Examples:
  devpulse cps --weights DEPLOYMENT_FREQUENCY:0.5,SATISFACTION:0.5 --start "2025-06-01 00:00:00" --end "2025-06-30 23:59:59"
  devpulse cps --weights CHANGE_FAILURE_RATE:0.3,PERCEIVED_PRODUCTIVITY:0.7 --start "2025-06-01 00:00:00" --end "2025-06-30 23:59:59" -n 4 -o csv`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := requireWindow(); err != nil {
			contract.LogFatal("Invalid request", err)
		}
		if len(cfg.Weights) == 0 {
			contract.LogFatal("Invalid request", fmt.Errorf("--weights is required"))
		}

		start, end := windowStrings()
		report, err := engine.ComputeComposite(rootCtx, cfg.Weights, start, end, cfg.Intervals)
		if err != nil {
			contract.LogFatal("Cannot compute composite score", err)
		}
		if err := writer.WriteCompositeReport(report, cfg); err != nil {
			contract.LogFatal("Cannot write results", err)
		}
	},
}
