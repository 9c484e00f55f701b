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

// PrintCompositeReport outputs a composite score report, dispatching based
// on the output format configured.
func PrintCompositeReport(report schema.CompositeReport, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONCompositeReport(report, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVCompositeReport(report, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		if err := printCompositeTables(report, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

func printJSONCompositeReport(report schema.CompositeReport, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, report)
	}, "Wrote JSON composite results")
}

func printCSVCompositeReport(report schema.CompositeReport, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVCompositeReport(csvWriter, report, fmtFloat)
	}, "Wrote CSV composite results")
}

// printCompositeTables prints one summary table of per-interval scores and
// one breakdown table of every weighted metric contribution.
func printCompositeTables(report schema.CompositeReport, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		title := "Composite scores"
		if cfg.UseEmojis {
			title = "🧮 " + title
		}
		if _, err := fmt.Fprintf(w, "%s (%s to %s)\n", title,
			contract.FormatTimestamp(report.Start), contract.FormatTimestamp(report.End)); err != nil {
			return err
		}

		summary := tablewriter.NewWriter(w)
		summary.Header([]string{"Interval", "Start", "End", "CPS", "Trend"})
		summary.Configure(func(tableCfg *tablewriter.Config) {
			tableCfg.Row.Alignment.Global = tw.AlignRight
		})

		var summaryData [][]string
		for _, score := range report.Intervals {
			summaryData = append(summaryData, []string{
				fmt.Sprintf("%d", score.IntervalNumber),
				contract.FormatTimestamp(score.Start),
				contract.FormatTimestamp(score.End),
				fmtFloat(score.CPS),
				trendLabel(score.CPS, cfg.UseColors),
			})
		}
		if err := summary.Bulk(summaryData); err != nil {
			return err
		}
		if err := summary.Render(); err != nil {
			return err
		}

		if _, err := fmt.Fprintf(w, "\nBreakdown\n"); err != nil {
			return err
		}

		breakdown := tablewriter.NewWriter(w)
		breakdown.Header([]string{"Interval", "Metric", "Weight", "Z-Score", "Weighted"})
		breakdown.Configure(func(tableCfg *tablewriter.Config) {
			tableCfg.Row.Alignment.Global = tw.AlignRight
		})

		var breakdownData [][]string
		for _, score := range report.Intervals {
			for _, metric := range score.Metrics {
				breakdownData = append(breakdownData, []string{
					fmt.Sprintf("%d", score.IntervalNumber),
					string(metric.Kind),
					fmtFloat(metric.Weight),
					fmtFloat(metric.ZScore),
					fmtFloat(metric.ZScoreWeighted),
				})
			}
		}
		if err := breakdown.Bulk(breakdownData); err != nil {
			return err
		}
		return breakdown.Render()
	}, "Wrote composite results")
}

// writeCSVCompositeReport writes one row per weighted metric per interval;
// the interval's total repeats on each of its rows.
func writeCSVCompositeReport(w *csv.Writer, report schema.CompositeReport, fmtFloat func(float64) string) error {
	header := []string{
		"interval",
		"start",
		"end",
		"metric",
		"weight",
		"z_score",
		"z_score_weighted",
		"cps",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, score := range report.Intervals {
		for _, metric := range score.Metrics {
			row := []string{
				fmt.Sprintf("%d", score.IntervalNumber),
				contract.FormatTimestamp(score.Start),
				contract.FormatTimestamp(score.End),
				string(metric.Kind),
				fmtFloat(metric.Weight),
				fmtFloat(metric.ZScore),
				fmtFloat(metric.ZScoreWeighted),
				fmtFloat(score.CPS),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}
