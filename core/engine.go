package core

import (
	"context"
	"fmt"

	"github.com/devpulse/devpulse/internal/contract"
	"github.com/devpulse/devpulse/schema"
)

// ComputeMetric computes a single metric over [start, end], split into n
// intervals. All inputs are validated before any store access.
func (e *Engine) ComputeMetric(ctx context.Context, kind schema.MetricKind, start, end string, intervals int) (schema.MetricsReport, error) {
	return e.ComputeMetrics(ctx, []schema.MetricKind{kind}, start, end, intervals)
}

// ComputeMetrics computes a set of metrics over [start, end], split into n
// intervals. When the request spans at least two metrics and two intervals,
// the report also carries the pairwise correlations between the metrics'
// per-interval means.
func (e *Engine) ComputeMetrics(ctx context.Context, kinds []schema.MetricKind, start, end string, intervals int) (schema.MetricsReport, error) {
	windowStart, windowEnd, err := contract.ParseWindow(start, end)
	if err != nil {
		return schema.MetricsReport{}, err
	}
	if err := validateKinds(kinds); err != nil {
		return schema.MetricsReport{}, err
	}

	windows, err := partitionWindow(windowStart, windowEnd, intervals)
	if err != nil {
		return schema.MetricsReport{}, err
	}

	session := newSession(e.store)
	report := schema.MetricsReport{
		Start:     windowStart,
		End:       windowEnd,
		Intervals: make([]schema.IntervalResult, 0, len(windows)),
	}
	for i, w := range windows {
		interval := schema.IntervalResult{
			IntervalNumber: i + 1,
			Start:          w.Start,
			End:            w.End,
			Metrics:        make(map[schema.MetricKind]schema.MetricResult, len(kinds)),
		}
		for _, kind := range kinds {
			result, err := computeKind(ctx, session, kind, w)
			if err != nil {
				return schema.MetricsReport{}, err
			}
			interval.Metrics[kind] = result
		}
		report.Intervals = append(report.Intervals, interval)
	}

	if len(kinds) >= 2 && len(windows) >= 2 {
		report.Correlations = correlatePairs(kinds, report.Intervals)
	}
	return report, nil
}

// ComputeComposite computes the weighted composite score per interval.
func (e *Engine) ComputeComposite(ctx context.Context, weights []schema.MetricWeight, start, end string, intervals int) (schema.CompositeReport, error) {
	windowStart, windowEnd, err := contract.ParseWindow(start, end)
	if err != nil {
		return schema.CompositeReport{}, err
	}
	if err := validateWeights(weights); err != nil {
		return schema.CompositeReport{}, err
	}

	windows, err := partitionWindow(windowStart, windowEnd, intervals)
	if err != nil {
		return schema.CompositeReport{}, err
	}

	session := newSession(e.store)
	report := schema.CompositeReport{
		Start:     windowStart,
		End:       windowEnd,
		Intervals: make([]schema.CompositeScore, 0, len(windows)),
	}
	for i, w := range windows {
		score, err := compositeForWindow(ctx, session, weights, w)
		if err != nil {
			return schema.CompositeReport{}, err
		}
		score.IntervalNumber = i + 1
		report.Intervals = append(report.Intervals, score)
	}
	return report, nil
}

func validateKinds(kinds []schema.MetricKind) error {
	if len(kinds) == 0 {
		return fmt.Errorf("%w: no metrics selected", contract.ErrInvalidMetric)
	}
	for _, kind := range kinds {
		if _, ok := schema.ValidMetricKinds[kind]; !ok {
			return fmt.Errorf("%w: %q", contract.ErrInvalidMetric, kind)
		}
	}
	return nil
}
