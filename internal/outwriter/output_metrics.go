package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/devpulse/devpulse/internal/contract"
	"github.com/devpulse/devpulse/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintMetricsReport outputs a metrics report, dispatching based on the
// output format configured. The kinds slice fixes the row order; map
// iteration would shuffle it run to run.
func PrintMetricsReport(report schema.MetricsReport, kinds []schema.MetricKind, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONMetricsReport(report, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVMetricsReport(report, kinds, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		if err := printMetricsTables(report, kinds, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// printJSONMetricsReport handles opening the file and calling the JSON writer.
func printJSONMetricsReport(report schema.MetricsReport, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONMetricsReport(w, report)
	}, "Wrote JSON metric results")
}

// printCSVMetricsReport handles opening the file and calling the CSV writer.
func printCSVMetricsReport(report schema.MetricsReport, kinds []schema.MetricKind, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVMetricsReport(csvWriter, report, kinds, fmtFloat)
	}, "Wrote CSV metric results")
}

// printMetricsTables prints the per-interval results and, when present, the
// correlation pairs as human-readable tables.
func printMetricsTables(report schema.MetricsReport, kinds []schema.MetricKind, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		title := "Metric results"
		if cfg.UseEmojis {
			title = "📊 " + title
		}
		if _, err := fmt.Fprintf(w, "%s (%s to %s)\n", title,
			contract.FormatTimestamp(report.Start), contract.FormatTimestamp(report.End)); err != nil {
			return err
		}

		table := tablewriter.NewWriter(w)
		table.Header([]string{"Interval", "Metric", "Mean", "Obs", "Z-Score", "Trend"})
		table.Configure(func(tableCfg *tablewriter.Config) {
			tableCfg.Row.Alignment.Global = tw.AlignRight
		})

		var data [][]string
		for _, interval := range report.Intervals {
			for _, kind := range kinds {
				result, ok := interval.Metrics[kind]
				if !ok {
					continue
				}
				data = append(data, []string{
					fmt.Sprintf("%d", interval.IntervalNumber),
					string(kind),
					fmtFloat(result.MeanValue),
					fmt.Sprintf("%d", result.Observations),
					fmtFloat(result.ZScore),
					trendLabel(result.ZScore, cfg.UseColors),
				})
			}
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}

		if len(report.Correlations) == 0 {
			return nil
		}
		return printCorrelationsTable(w, report.Correlations, cfg, fmtFloat)
	}, "Wrote metric results")
}

// printCorrelationsTable prints the pairwise correlation results.
func printCorrelationsTable(w io.Writer, correlations []schema.CorrelationResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	title := "Correlations"
	if cfg.UseEmojis {
		title = "🔗 " + title
	}
	if _, err := fmt.Fprintf(w, "\n%s\n", title); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Metric A", "Metric B", "Pearson r", "P-Value", "N", "Interpretation"})
	table.Configure(func(tableCfg *tablewriter.Config) {
		tableCfg.Row.Alignment.Global = tw.AlignRight
	})

	maxLabel := GetMaxTableLabelWidth(cfg)
	var data [][]string
	for _, corr := range correlations {
		data = append(data, []string{
			string(corr.MetricA),
			string(corr.MetricB),
			fmtFloat(corr.PearsonR),
			fmtFloat(corr.PValue),
			fmt.Sprintf("%d", corr.SampleSize),
			contract.TruncateLabel(corr.Interpretation, maxLabel),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
