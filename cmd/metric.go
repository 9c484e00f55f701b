package cmd

import (
	"fmt"

	"github.com/devpulse/devpulse/internal/contract"
	"github.com/devpulse/devpulse/schema"
	"github.com/spf13/cobra"
)

var metricCmd = &cobra.Command{
	Use:   "metric",
	Short: "Compute a single metric over a time window.",
	Long: `Compute one productivity metric over a time window, optionally split
into equal sub-intervals. Each interval reports the metric mean, the number of
observations and a z-score against the all-time population of the metric.

Examples:
  devpulse metric -m DEPLOYMENT_FREQUENCY --start "2025-06-01 00:00:00" --end "2025-06-30 23:59:59"
  devpulse metric -m CHANGE_FAILURE_RATE --start "2025-06-01 00:00:00" --end "2025-06-30 23:59:59" -n 4
  devpulse metric -m SATISFACTION --start "2025-06-01 00:00:00" --end "2025-06-30 23:59:59" -o json
  devpulse metric -m SATISFACTION --start "2025-06-01 00:00:00" --end "2025-06-30 23:59:59" --export-file report.parquet`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := requireWindow(); err != nil {
			contract.LogFatal("Invalid request", err)
		}
		if cfg.Kind == "" {
			contract.LogFatal("Invalid request", fmt.Errorf("--metric is required"))
		}

		start, end := windowStrings()
		report, err := engine.ComputeMetric(rootCtx, cfg.Kind, start, end, cfg.Intervals)
		if err != nil {
			contract.LogFatal("Cannot compute metric", err)
		}
		if err := writer.WriteMetricsReport(report, []schema.MetricKind{cfg.Kind}, cfg); err != nil {
			contract.LogFatal("Cannot write results", err)
		}
		exportReportRows(report, []schema.MetricKind{cfg.Kind})
	},
}
