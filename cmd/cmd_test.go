package cmd

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/devpulse/devpulse/schema"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// metricTokenPattern matches the ALL_CAPS metric names used in help examples.
var metricTokenPattern = regexp.MustCompile(`[A-Z]+(?:_[A-Z]+)+`)

// TestHelpExamplesNameValidKinds guards against help text drifting away from
// the registered metric kinds.
func TestHelpExamplesNameValidKinds(t *testing.T) {
	commands := []*cobra.Command{metricCmd, metricsCmd, cpsCmd}

	for _, command := range commands {
		t.Run(command.Use, func(t *testing.T) {
			tokens := metricTokenPattern.FindAllString(command.Long, -1)
			require.NotEmpty(t, tokens)
			for _, token := range tokens {
				_, ok := schema.ValidMetricKinds[schema.MetricKind(token)]
				assert.True(t, ok, "help example names unknown metric kind %s", token)
			}
		})
	}
}

// TestExportReportRowsWritesParquet verifies the metric commands write their
// per-interval rows to the configured parquet file.
func TestExportReportRowsWritesParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.parquet")
	cfg.ExportFile = path
	defer func() { cfg.ExportFile = "" }()

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC)
	report := schema.MetricsReport{
		Start: start,
		End:   end,
		Intervals: []schema.IntervalResult{{
			IntervalNumber: 1,
			Start:          start,
			End:            end,
			Metrics: map[schema.MetricKind]schema.MetricResult{
				schema.Satisfaction: {MeanValue: 4.25, Observations: 3},
			},
		}},
	}

	exportReportRows(report, []schema.MetricKind{schema.Satisfaction})

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

// TestExportReportRowsSkipsWhenUnset checks the export stays opt-in.
func TestExportReportRowsSkipsWhenUnset(t *testing.T) {
	cfg.ExportFile = ""
	exportReportRows(schema.MetricsReport{}, nil)
}
