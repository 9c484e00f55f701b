package schema

import "time"

// IntervalResult holds the metric results for one sub-window of a request.
// Intervals are contiguous and non-overlapping; the final interval's End is
// exactly the requested end of the overall window.
type IntervalResult struct {
	IntervalNumber int                         `json:"interval"`
	Start          time.Time                   `json:"start_timestamp"`
	End            time.Time                   `json:"end_timestamp"`
	Metrics        map[MetricKind]MetricResult `json:"metrics"`
}

// CorrelationResult describes the relationship between one unordered pair of
// metrics across the intervals of a request.
type CorrelationResult struct {
	MetricA        MetricKind `json:"metric_a"`
	MetricB        MetricKind `json:"metric_b"`
	PearsonR       float64    `json:"correlation"`
	PValue         float64    `json:"p_value"`
	SampleSize     int        `json:"sample_size"`
	Interpretation string     `json:"interpretation"`
}

// MetricsReport is the full answer to a multi-metric request: per-interval
// results plus pairwise correlations when the request spans more than one
// metric and more than one interval.
type MetricsReport struct {
	Start        time.Time           `json:"start_timestamp"`
	End          time.Time           `json:"end_timestamp"`
	Intervals    []IntervalResult    `json:"intervals"`
	Correlations []CorrelationResult `json:"correlations,omitempty"`
}
