package contract

import "errors"

// Sentinel errors for request validation. Callers match them with errors.Is;
// wrapped messages carry the offending value. Validation always runs before
// any computation, so a request either fails with one of these up front or
// runs to completion.
var (
	// ErrInvalidMetric indicates a metric kind outside the registry.
	ErrInvalidMetric = errors.New("invalid metric kind")

	// ErrInvalidCategory indicates an event category outside the known set.
	ErrInvalidCategory = errors.New("invalid event category")

	// ErrInvalidTimestamp indicates a timestamp that fits neither accepted layout.
	ErrInvalidTimestamp = errors.New("invalid timestamp")

	// ErrEndBeforeStart indicates a window whose end precedes its start.
	ErrEndBeforeStart = errors.New("end timestamp must be after start timestamp")

	// ErrTooManyIntervals indicates more intervals than the window has whole days plus one.
	ErrTooManyIntervals = errors.New("too many intervals for time window")

	// ErrInvalidWeight indicates a composite weight outside [0, 1].
	ErrInvalidWeight = errors.New("weight must be between 0 and 1")
)
