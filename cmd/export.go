package cmd

import (
	"fmt"

	"github.com/devpulse/devpulse/internal/contract"
	"github.com/devpulse/devpulse/internal/parquet"
	"github.com/devpulse/devpulse/schema"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all stored events to a Parquet file.",
	Long: `Export every stored event to a snappy-compressed Parquet file for
analysis in external tooling.

Examples:
  devpulse export --export-file events.parquet`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if cfg.ExportFile == "" {
			contract.LogFatal("Invalid request", fmt.Errorf("--export-file is required"))
		}

		count, err := parquet.ExportObservations(rootCtx, store, cfg.ExportFile)
		if err != nil {
			contract.LogFatal("Cannot export events", err)
		}

		prefix := ""
		if cfg.UseEmojis {
			prefix = "💾 "
		}
		fmt.Printf("%sExported %d events to %s\n", prefix, count, cfg.ExportFile)
	},
}

// exportReportRows writes the per-interval metric rows to the configured
// Parquet file when --export-file is set alongside a metric command.
func exportReportRows(report schema.MetricsReport, kinds []schema.MetricKind) {
	if cfg.ExportFile == "" {
		return
	}

	count, err := parquet.ExportMetricsReport(report, kinds, cfg.ExportFile)
	if err != nil {
		contract.LogFatal("Cannot export metric rows", err)
	}

	prefix := ""
	if cfg.UseEmojis {
		prefix = "💾 "
	}
	fmt.Printf("%sExported %d metric rows to %s\n", prefix, count, cfg.ExportFile)
}
