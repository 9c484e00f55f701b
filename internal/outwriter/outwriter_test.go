package outwriter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/devpulse/devpulse/internal/contract"
	"github.com/devpulse/devpulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() schema.MetricsReport {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return schema.MetricsReport{
		Start: start,
		End:   start.AddDate(0, 0, 2),
		Intervals: []schema.IntervalResult{
			{
				IntervalNumber: 1,
				Start:          start,
				End:            start.AddDate(0, 0, 1),
				Metrics: map[schema.MetricKind]schema.MetricResult{
					schema.Satisfaction: {MeanValue: 4.25, Observations: 4, ZScore: 0.8123},
				},
			},
		},
	}
}

func testConfig(output schema.OutputMode, outputFile string) *contract.Config {
	return &contract.Config{
		Output:     output,
		OutputFile: outputFile,
		Precision:  contract.DefaultPrecision,
		Width:      100,
	}
}

func TestPrintMetricsReportJSON(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "report.json")
	kinds := []schema.MetricKind{schema.Satisfaction}

	err := NewOutWriter().WriteMetricsReport(sampleReport(), kinds, testConfig(schema.JSONOut, outputFile))
	require.NoError(t, err)

	raw, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	var decoded schema.MetricsReport
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded.Intervals, 1)
	result := decoded.Intervals[0].Metrics[schema.Satisfaction]
	assert.Equal(t, 4, result.Observations)
	assert.InDelta(t, 0.8123, result.ZScore, 1e-9)
}

func TestPrintMetricsReportCSV(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "report.csv")
	kinds := []schema.MetricKind{schema.Satisfaction}

	err := NewOutWriter().WriteMetricsReport(sampleReport(), kinds, testConfig(schema.CSVOut, outputFile))
	require.NoError(t, err)

	raw, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	content := string(raw)
	assert.Contains(t, content, "interval,start,end,metric,mean_value")
	assert.Contains(t, content, "SATISFACTION")
	assert.Contains(t, content, "4.2500")
}

func TestPrintMetricsReportTable(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "report.txt")
	kinds := []schema.MetricKind{schema.Satisfaction}

	err := NewOutWriter().WriteMetricsReport(sampleReport(), kinds, testConfig(schema.TextOut, outputFile))
	require.NoError(t, err)

	raw, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	content := string(raw)
	assert.Contains(t, content, "SATISFACTION")
	assert.Contains(t, content, contract.GainValue)
}

func TestPrintCompositeReportCSV(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "composite.csv")
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	report := schema.CompositeReport{
		Start: start,
		End:   start.AddDate(0, 0, 1),
		Intervals: []schema.CompositeScore{
			{
				IntervalNumber: 1,
				Start:          start,
				End:            start.AddDate(0, 0, 1),
				CPS:            0.45,
				Metrics: []schema.CompositeMetric{
					{Kind: schema.Satisfaction, Weight: 0.5, ZScore: 0.9, ZScoreWeighted: 0.45},
				},
			},
		},
	}

	err := NewOutWriter().WriteCompositeReport(report, testConfig(schema.CSVOut, outputFile))
	require.NoError(t, err)

	raw, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	content := string(raw)
	assert.Contains(t, content, "interval,start,end,metric,weight,z_score,z_score_weighted,cps")
	assert.Contains(t, content, "0.4500")
}

func TestPrintStatusJSON(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "status.json")
	first := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	last := time.Date(2025, 6, 3, 8, 0, 0, 0, time.UTC)
	status := schema.StoreStatus{
		TotalEvents: 3,
		CategoryCounts: map[schema.EventCategory]int64{
			schema.DeploymentEvent: 2,
			schema.CommitEvent:     1,
		},
		FirstEvent: &first,
		LastEvent:  &last,
	}

	err := NewOutWriter().WriteStatus(status, testConfig(schema.JSONOut, outputFile))
	require.NoError(t, err)

	raw, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	var decoded schema.StoreStatus
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, int64(3), decoded.TotalEvents)
	assert.Equal(t, int64(2), decoded.CategoryCounts[schema.DeploymentEvent])
}

func TestPrintKindsCoversAllMetrics(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "kinds.csv")

	err := NewOutWriter().WriteKinds(testConfig(schema.CSVOut, outputFile))
	require.NoError(t, err)

	raw, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	content := string(raw)
	for _, kind := range schema.AllMetricKinds {
		assert.Contains(t, content, string(kind))
	}
	assert.Contains(t, content, "lower_is_better")
}

func TestGetMaxTableLabelWidth(t *testing.T) {
	tests := []struct {
		name  string
		width int
		want  int
	}{
		{name: "narrow terminal clamps to minimum", width: 40, want: 15},
		{name: "standard terminal", width: 100, want: 55},
		{name: "wide terminal clamps to maximum", width: 200, want: 70},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &contract.Config{Width: tc.width}
			assert.Equal(t, tc.want, GetMaxTableLabelWidth(cfg))
		})
	}
}

func TestTrendLabel(t *testing.T) {
	assert.Equal(t, contract.StrongGainValue, trendLabel(1.5, false))
	assert.Equal(t, contract.DropValue, trendLabel(-0.5, false))
	// Colored output still carries the underlying label text.
	assert.Contains(t, trendLabel(1.5, true), contract.StrongGainValue)
}
