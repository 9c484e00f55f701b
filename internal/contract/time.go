package contract

import (
	"fmt"
	"strings"
	"time"
)

// TimestampFormat is the canonical timestamp representation. Events and
// request windows are stored and rendered in this form.
const TimestampFormat = "2006-01-02 15:04:05"

// isoTimestampFormat is the ISO-8601 variant accepted on input.
const isoTimestampFormat = "2006-01-02T15:04:05"

// ParseTimestamp parses a timestamp in either the canonical space-separated
// form or the ISO-8601 T-separated form. A trailing "Z" is tolerated and
// stripped; all timestamps are treated as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	cleaned := strings.TrimSuffix(strings.TrimSpace(s), "Z")
	for _, layout := range []string{TimestampFormat, isoTimestampFormat} {
		if t, err := time.ParseInLocation(layout, cleaned, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q (expected %s)", ErrInvalidTimestamp, s, TimestampFormat)
}

// FormatTimestamp renders a time in the canonical form.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampFormat)
}

// MaxIntervals returns the largest interval count a window supports: the
// number of whole days it spans plus one. A 36-hour window supports 2.
func MaxIntervals(start, end time.Time) int {
	return int(end.Sub(start)/(24*time.Hour)) + 1
}

// ParseWindow parses and validates a [start, end] request window. An
// instantaneous window (end equal to start) is valid and simply matches
// events on that exact second.
func ParseWindow(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := ParseTimestamp(startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start: %w", err)
	}
	end, err := ParseTimestamp(endStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("end: %w", err)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s > %s", ErrEndBeforeStart, FormatTimestamp(start), FormatTimestamp(end))
	}
	return start, end, nil
}
