package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/devpulse/devpulse/internal/contract"
	"github.com/devpulse/devpulse/schema"
)

// writeJSONMetricsReport marshals the schema.MetricsReport to JSON and writes it.
func writeJSONMetricsReport(w io.Writer, report schema.MetricsReport) error {
	return writeJSON(w, report)
}

// writeCSVMetricsReport writes the per-interval metric rows to a CSV writer.
// Correlations are a different row shape and stay out of the CSV form; use
// JSON for the full report.
func writeCSVMetricsReport(w *csv.Writer, report schema.MetricsReport, kinds []schema.MetricKind, fmtFloat func(float64) string) error {
	header := []string{
		"interval",
		"start",
		"end",
		"metric",
		"mean_value",
		"amount_of_observations",
		"z_score",
		"z_score_mean",
		"z_score_std",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, interval := range report.Intervals {
		for _, kind := range kinds {
			result, ok := interval.Metrics[kind]
			if !ok {
				continue
			}
			row := []string{
				fmt.Sprintf("%d", interval.IntervalNumber),
				contract.FormatTimestamp(interval.Start),
				contract.FormatTimestamp(interval.End),
				string(kind),
				fmtFloat(result.MeanValue),
				fmt.Sprintf("%d", result.Observations),
				fmtFloat(result.ZScore),
				fmtFloat(result.PopulationMean),
				fmtFloat(result.PopulationStd),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}
