package cmd

import (
	"fmt"

	"github.com/devpulse/devpulse/internal/contract"
	"github.com/spf13/cobra"
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Compute several metrics over a time window.",
	Long: `Compute a set of productivity metrics over a time window. When at
least two metrics and two intervals are requested, the report also carries
pairwise Pearson correlations between the per-interval metric means.

Examples:
  devpulse metrics --metrics DEPLOYMENT_FREQUENCY,CHANGE_FAILURE_RATE --start "2025-06-01 00:00:00" --end "2025-06-30 23:59:59"
  devpulse metrics --metrics SATISFACTION,PERCEIVED_PRODUCTIVITY,AI_ACCEPTANCE_RATE --start "2025-06-01 00:00:00" --end "2025-06-30 23:59:59" -n 6 -o json`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := requireWindow(); err != nil {
			contract.LogFatal("Invalid request", err)
		}
		if len(cfg.Kinds) == 0 {
			contract.LogFatal("Invalid request", fmt.Errorf("--metrics is required"))
		}

		start, end := windowStrings()
		report, err := engine.ComputeMetrics(rootCtx, cfg.Kinds, start, end, cfg.Intervals)
		if err != nil {
			contract.LogFatal("Cannot compute metrics", err)
		}
		if err := writer.WriteMetricsReport(report, cfg.Kinds, cfg); err != nil {
			contract.LogFatal("Cannot write results", err)
		}
		exportReportRows(report, cfg.Kinds)
	},
}
