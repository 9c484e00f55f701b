package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestMetricKindDescription verifies every registered kind has a description.
func TestMetricKindDescription(t *testing.T) {
	for _, kind := range AllMetricKinds {
		assert.NotEqual(t, "No description available", kind.Description(), string(kind))
	}
	assert.Equal(t, "No description available", MetricKind("BOGUS").Description())
}

// TestValidationSets verifies the enum sets agree with the display lists.
func TestValidationSets(t *testing.T) {
	assert.Len(t, ValidMetricKinds, len(AllMetricKinds))
	for _, kind := range AllMetricKinds {
		assert.Contains(t, ValidMetricKinds, kind)
	}

	assert.Len(t, ValidEventCategories, len(AllEventCategories))
	for _, cat := range AllEventCategories {
		assert.Contains(t, ValidEventCategories, cat)
	}

	for kind := range LowerIsBetter {
		assert.Contains(t, ValidMetricKinds, kind)
	}
}

// TestTimeRangeContains checks the inclusive range boundaries.
func TestTimeRangeContains(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 31, 23, 59, 59, 0, time.UTC)
	r := TimeRange{Start: start, End: end}

	assert.True(t, r.Contains(start))
	assert.True(t, r.Contains(end))
	assert.True(t, r.Contains(start.AddDate(0, 0, 15)))
	assert.False(t, r.Contains(start.Add(-time.Second)))
	assert.False(t, r.Contains(end.Add(time.Second)))
}
