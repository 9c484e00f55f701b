package schema

import "time"

// MetricWeight pairs a metric kind with its contribution weight in a
// composite score. Weights are validated to [0, 1] but are not required to
// sum to 1 across a request.
type MetricWeight struct {
	Kind   MetricKind `json:"metric_type"`
	Weight float64    `json:"weight"`
}

// CompositeMetric is the per-metric breakdown inside a composite score.
type CompositeMetric struct {
	Kind           MetricKind `json:"metric_type"`
	Weight         float64    `json:"weight"`
	ZScore         float64    `json:"z_score"`
	ZScoreWeighted float64    `json:"z_score_weighted"`
	MeanValue      float64    `json:"mean_value"`
	Observations   int        `json:"amount_of_observations"`
	PopulationMean float64    `json:"z_score_mean"`
	PopulationStd  float64    `json:"z_score_std"`
	MinTimestamp   *time.Time `json:"min_timestamp,omitempty"`
	MaxTimestamp   *time.Time `json:"max_timestamp,omitempty"`
}

// CompositeScore is the weighted z-score sum for one interval, with the
// full per-metric breakdown that produced it.
type CompositeScore struct {
	IntervalNumber int               `json:"interval"`
	Start          time.Time         `json:"start_timestamp"`
	End            time.Time         `json:"end_timestamp"`
	CPS            float64           `json:"cps"`
	Metrics        []CompositeMetric `json:"metrics"`
}

// CompositeReport is the full answer to a composite score request.
type CompositeReport struct {
	Start     time.Time        `json:"start_timestamp"`
	End       time.Time        `json:"end_timestamp"`
	Intervals []CompositeScore `json:"intervals"`
}
