package core

import (
	"fmt"
	"time"

	"github.com/devpulse/devpulse/internal/contract"
	"github.com/devpulse/devpulse/schema"
)

// partitionWindow splits [start, end] into n contiguous, non-overlapping
// sub-windows. Every non-final sub-window ends one second before the next
// one starts; the seam avoids double-counting boundary events. The final
// sub-window's end equals the requested end exactly, absorbing division
// rounding. An event timestamped exactly on a seam second belongs to
// neither neighbor.
func partitionWindow(start, end time.Time, n int) ([]schema.TimeRange, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d", contract.ErrTooManyIntervals, n)
	}
	if maxN := contract.MaxIntervals(start, end); n > maxN {
		return nil, fmt.Errorf("%w: %d intervals requested, window of %s supports at most %d",
			contract.ErrTooManyIntervals, n, end.Sub(start), maxN)
	}

	step := end.Sub(start) / time.Duration(n)
	windows := make([]schema.TimeRange, 0, n)
	for i := 0; i < n; i++ {
		windowStart := start.Add(step * time.Duration(i))
		windowEnd := end
		if i < n-1 {
			windowEnd = start.Add(step * time.Duration(i+1)).Add(-time.Second)
		}
		windows = append(windows, schema.TimeRange{Start: windowStart, End: windowEnd})
	}
	return windows, nil
}
