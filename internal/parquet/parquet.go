// Package parquet exports recorded observations and computed metric results
// to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/devpulse/devpulse/internal/contract"
	"github.com/devpulse/devpulse/schema"
	"github.com/parquet-go/parquet-go"
)

// ObservationRow is the Parquet shape of one recorded event. It mirrors the
// observations database table column for column.
type ObservationRow struct {
	// ID is the event's primary key in the store
	ID int64 `parquet:"id,snappy"`

	// Category is the event category name
	Category string `parquet:"type,snappy"`

	// Timestamp is when the event occurred (UTC)
	Timestamp time.Time `parquet:"timestamp,snappy"`

	// Value is the event's numeric payload
	Value float64 `parquet:"value,snappy"`

	// CommitHash links the event to a commit (nullable)
	CommitHash *string `parquet:"commit_hash,optional,snappy"`

	// DeploymentID links the event to a deployment event (nullable)
	DeploymentID *int64 `parquet:"deployment_id,optional,snappy"`

	// DeploymentFailureID links the event to a failure event (nullable)
	DeploymentFailureID *int64 `parquet:"deployment_failure_id,optional,snappy"`

	// AIRework flags a commit as rework of AI-generated code
	AIRework bool `parquet:"ai_rework_commit,snappy"`
}

// MetricRow is the Parquet shape of one metric result for one interval.
type MetricRow struct {
	// IntervalNumber is the 1-based interval index within the request
	IntervalNumber int32 `parquet:"interval,snappy"`

	// IntervalStart is the interval's inclusive start (UTC)
	IntervalStart time.Time `parquet:"start_timestamp,snappy"`

	// IntervalEnd is the interval's inclusive end (UTC)
	IntervalEnd time.Time `parquet:"end_timestamp,snappy"`

	// Metric is the metric kind name
	Metric string `parquet:"metric_type,snappy"`

	// MeanValue is the timeframe sample mean
	MeanValue float64 `parquet:"mean_value,snappy"`

	// Observations is the timeframe sample size
	Observations int32 `parquet:"amount_of_observations,snappy"`

	// ZScore is the polarity-adjusted z-score against the baseline
	ZScore float64 `parquet:"z_score,snappy"`

	// PopulationMean is the historical baseline mean
	PopulationMean float64 `parquet:"z_score_mean,snappy"`

	// PopulationStd is the historical baseline standard deviation
	PopulationStd float64 `parquet:"z_score_std,snappy"`
}

// ExportObservations streams every stored event of every category into one
// Parquet file.
func ExportObservations(ctx context.Context, store contract.EventStore, outputPath string) (int, error) {
	var rows []ObservationRow
	for _, category := range schema.AllEventCategories {
		events, err := store.QueryEvents(ctx, category, nil)
		if err != nil {
			return 0, fmt.Errorf("failed to read %s events: %w", category, err)
		}
		for _, event := range events {
			rows = append(rows, observationRow(event))
		}
	}

	if err := writeRows(rows, outputPath); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// ExportMetricsReport flattens a metrics report into per-interval,
// per-metric rows and writes them to a Parquet file.
func ExportMetricsReport(report schema.MetricsReport, kinds []schema.MetricKind, outputPath string) (int, error) {
	var rows []MetricRow
	for _, interval := range report.Intervals {
		for _, kind := range kinds {
			result, ok := interval.Metrics[kind]
			if !ok {
				continue
			}
			rows = append(rows, MetricRow{
				IntervalNumber: int32(interval.IntervalNumber),
				IntervalStart:  interval.Start,
				IntervalEnd:    interval.End,
				Metric:         string(kind),
				MeanValue:      result.MeanValue,
				Observations:   int32(result.Observations),
				ZScore:         result.ZScore,
				PopulationMean: result.PopulationMean,
				PopulationStd:  result.PopulationStd,
			})
		}
	}

	if err := writeRows(rows, outputPath); err != nil {
		return 0, err
	}
	return len(rows), nil
}

func observationRow(event schema.Event) ObservationRow {
	return ObservationRow{
		ID:                  event.ID,
		Category:            string(event.Category),
		Timestamp:           event.Timestamp,
		Value:               event.Value,
		CommitHash:          event.Links.CommitHash,
		DeploymentID:        event.Links.DeploymentID,
		DeploymentFailureID: event.Links.DeploymentFailureID,
		AIRework:            event.Links.AIRework,
	}
}

// writeRows writes any row type to a Parquet file using struct schema
// inference from the parquet tags.
func writeRows[T any](rows []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write parquet data: %w", err)
	}
	return nil
}
