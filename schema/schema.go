// Package schema has configs, models and constants for all parts of devpulse.
package schema

import "time"

// EventLinks carries the optional cross-references attached to an event.
// Deployments link to the failures they caused, failure fixes link back to
// the failure they resolve, and commits link to the deployment that shipped
// them.
type EventLinks struct {
	CommitHash          *string // Commit identifier, set on COMMIT and DEPLOYMENT events
	DeploymentID        *int64  // Event ID of the deployment a commit shipped with
	DeploymentFailureID *int64  // Event ID of the failure a fix resolves, or the deployment a failure belongs to
	AIRework            bool    // True when a commit reworks AI-generated code
}

// Event is a single timestamped observation. Events are immutable once
// recorded; the engine only ever reads them.
type Event struct {
	ID        int64
	Category  EventCategory
	Timestamp time.Time
	Value     float64
	Links     EventLinks
}

// TimeRange is an inclusive [Start, End] window.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the inclusive range.
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// MetricResult is the normalized outcome of one metric over one timeframe.
// A timeframe with zero observations produces the zero value: every field
// is 0 and the timestamps are nil.
type MetricResult struct {
	MeanValue      float64    `json:"mean_value"`
	Observations   int        `json:"amount_of_observations"`
	ZScore         float64    `json:"z_score"`
	PopulationMean float64    `json:"z_score_mean"`
	PopulationStd  float64    `json:"z_score_std"`
	MinTimestamp   *time.Time `json:"min_timestamp,omitempty"`
	MaxTimestamp   *time.Time `json:"max_timestamp,omitempty"`
}
