package core

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/devpulse/devpulse/internal/contract"
	"github.com/devpulse/devpulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory EventStore for engine tests.
type memStore struct {
	events []schema.Event
	nextID int64
}

func (m *memStore) QueryEvents(_ context.Context, category schema.EventCategory, window *schema.TimeRange) ([]schema.Event, error) {
	var out []schema.Event
	for _, event := range m.events {
		if event.Category != category {
			continue
		}
		if window != nil && !window.Contains(event.Timestamp) {
			continue
		}
		out = append(out, event)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.Before(out[j].Timestamp)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *memStore) InsertEvent(_ context.Context, event schema.Event) (int64, error) {
	m.nextID++
	event.ID = m.nextID
	m.events = append(m.events, event)
	return event.ID, nil
}

func (m *memStore) Status(context.Context) (schema.StoreStatus, error) {
	return schema.StoreStatus{TotalEvents: int64(len(m.events))}, nil
}

func (m *memStore) Close() error { return nil }

func (m *memStore) add(category schema.EventCategory, at time.Time, value float64, links schema.EventLinks) int64 {
	id, _ := m.InsertEvent(context.Background(), schema.Event{
		Category:  category,
		Timestamp: at,
		Value:     value,
		Links:     links,
	})
	return id
}

func day(d, hour int) time.Time {
	return time.Date(2026, 1, d, hour, 0, 0, 0, time.UTC)
}

func stamp(t time.Time) string {
	return contract.FormatTimestamp(t)
}

func TestComputeMetricDirectValue(t *testing.T) {
	store := &memStore{}
	for d := 1; d <= 5; d++ {
		store.add(schema.SatisfactionEvent, day(d, 9), float64(d), schema.EventLinks{})
	}
	engine := NewEngine(store)

	// Timeframe [5] against population [1 2 3 4 5]: sample stddev sqrt(2.5).
	report, err := engine.ComputeMetric(context.Background(), schema.Satisfaction,
		stamp(day(5, 0)), stamp(day(5, 23)), 1)
	require.NoError(t, err)
	require.Len(t, report.Intervals, 1)

	result := report.Intervals[0].Metrics[schema.Satisfaction]
	assert.Equal(t, 1, result.Observations)
	assert.InDelta(t, 5.0, result.MeanValue, 1e-9)
	assert.InDelta(t, 3.0, result.PopulationMean, 1e-9)
	assert.InDelta(t, 1.5811, result.PopulationStd, 1e-4)
	assert.InDelta(t, 1.2649, result.ZScore, 1e-4)
}

func TestComputeMetricEmptyTimeframe(t *testing.T) {
	store := &memStore{}
	store.add(schema.SatisfactionEvent, day(1, 9), 4.0, schema.EventLinks{})
	engine := NewEngine(store)

	report, err := engine.ComputeMetric(context.Background(), schema.Satisfaction,
		stamp(day(10, 0)), stamp(day(11, 0)), 1)
	require.NoError(t, err)

	result := report.Intervals[0].Metrics[schema.Satisfaction]
	assert.Zero(t, result.Observations)
	assert.Zero(t, result.MeanValue)
	assert.Zero(t, result.ZScore)
	assert.Nil(t, result.MinTimestamp)
	assert.Nil(t, result.MaxTimestamp)
}

func TestComputeMetricDailyBucketing(t *testing.T) {
	store := &memStore{}
	store.add(schema.DeploymentEvent, day(1, 8), 1, schema.EventLinks{})
	store.add(schema.DeploymentEvent, day(1, 16), 1, schema.EventLinks{})
	store.add(schema.DeploymentEvent, day(3, 8), 1, schema.EventLinks{})
	engine := NewEngine(store)

	// Days 1..3 bucket to [2 0 1]: the gap day counts as an explicit zero.
	report, err := engine.ComputeMetric(context.Background(), schema.DeploymentFrequency,
		stamp(day(1, 0)), stamp(day(3, 23)), 1)
	require.NoError(t, err)

	result := report.Intervals[0].Metrics[schema.DeploymentFrequency]
	assert.Equal(t, 3, result.Observations)
	assert.InDelta(t, 1.0, result.MeanValue, 1e-9)
	require.NotNil(t, result.MinTimestamp)
	require.NotNil(t, result.MaxTimestamp)
	assert.True(t, result.MinTimestamp.Equal(day(1, 8)))
	assert.True(t, result.MaxTimestamp.Equal(day(3, 8)))
}

func TestComputeMetricFailureRate(t *testing.T) {
	store := &memStore{}
	var deployIDs []int64
	for d := 1; d <= 10; d++ {
		deployIDs = append(deployIDs, store.add(schema.DeploymentEvent, day(d, 12), 1, schema.EventLinks{}))
	}
	for _, i := range []int{0, 1} {
		id := deployIDs[i]
		store.add(schema.DeploymentFailureEvent, day(i+1, 14), 1, schema.EventLinks{DeploymentID: &id})
	}
	engine := NewEngine(store)

	t.Run("rate over all deployments", func(t *testing.T) {
		report, err := engine.ComputeMetric(context.Background(), schema.ChangeFailureRate,
			stamp(day(1, 0)), stamp(day(10, 23)), 1)
		require.NoError(t, err)

		result := report.Intervals[0].Metrics[schema.ChangeFailureRate]
		assert.Equal(t, 10, result.Observations)
		assert.InDelta(t, 0.2, result.MeanValue, 1e-9)
	})

	t.Run("z-score flipped for lower-is-better", func(t *testing.T) {
		// Window holds only the two failed deployments: timeframe mean 1.0
		// sits above the population mean 0.2, so the raw z is positive and
		// the reported one must be negative.
		report, err := engine.ComputeMetric(context.Background(), schema.ChangeFailureRate,
			stamp(day(1, 0)), stamp(day(2, 23)), 1)
		require.NoError(t, err)

		result := report.Intervals[0].Metrics[schema.ChangeFailureRate]
		assert.InDelta(t, 1.0, result.MeanValue, 1e-9)
		assert.InDelta(t, -1.8974, result.ZScore, 1e-3)
	})
}

func TestComputeMetricRecoveryTime(t *testing.T) {
	store := &memStore{}
	failureID := store.add(schema.DeploymentFailureEvent, day(1, 10), 1, schema.EventLinks{})
	store.add(schema.DeploymentFailureFixEvent, day(1, 12), 1, schema.EventLinks{DeploymentFailureID: &failureID})
	engine := NewEngine(store)

	report, err := engine.ComputeMetric(context.Background(), schema.MeanTimeToRecover,
		stamp(day(1, 0)), stamp(day(1, 23)), 1)
	require.NoError(t, err)

	result := report.Intervals[0].Metrics[schema.MeanTimeToRecover]
	assert.Equal(t, 1, result.Observations)
	assert.InDelta(t, 120.0, result.MeanValue, 1e-9)
}

func TestComputeMetricRecoveryTimeFixOutsideFailureWindow(t *testing.T) {
	// The fix anchors the timeframe; its failure is found even though the
	// failure itself predates the window.
	store := &memStore{}
	failureID := store.add(schema.DeploymentFailureEvent, day(1, 10), 1, schema.EventLinks{})
	store.add(schema.DeploymentFailureFixEvent, day(3, 10), 1, schema.EventLinks{DeploymentFailureID: &failureID})
	engine := NewEngine(store)

	report, err := engine.ComputeMetric(context.Background(), schema.MeanTimeToRecover,
		stamp(day(3, 0)), stamp(day(3, 23)), 1)
	require.NoError(t, err)

	result := report.Intervals[0].Metrics[schema.MeanTimeToRecover]
	assert.Equal(t, 1, result.Observations)
	assert.InDelta(t, 2*24*60.0, result.MeanValue, 1e-9)
}

func TestComputeMetricLeadTime(t *testing.T) {
	store := &memStore{}
	deployID := store.add(schema.DeploymentEvent, day(1, 17), 1, schema.EventLinks{})
	store.add(schema.CommitEvent, day(1, 9), 1, schema.EventLinks{DeploymentID: &deployID})
	engine := NewEngine(store)

	report, err := engine.ComputeMetric(context.Background(), schema.LeadTimeForChanges,
		stamp(day(1, 0)), stamp(day(1, 23)), 1)
	require.NoError(t, err)

	result := report.Intervals[0].Metrics[schema.LeadTimeForChanges]
	assert.Equal(t, 1, result.Observations)
	assert.InDelta(t, 480.0, result.MeanValue, 1e-9)
}

func TestComputeMetricAICodeVolume(t *testing.T) {
	store := &memStore{}
	store.add(schema.LinesOfCodeEvent, day(1, 9), 100, schema.EventLinks{})
	store.add(schema.LinesOfCodeAIEvent, day(1, 9), 25, schema.EventLinks{})
	// AI entry with no matching total contributes nothing.
	store.add(schema.LinesOfCodeAIEvent, day(1, 10), 40, schema.EventLinks{})
	engine := NewEngine(store)

	report, err := engine.ComputeMetric(context.Background(), schema.AICodeVolume,
		stamp(day(1, 0)), stamp(day(1, 23)), 1)
	require.NoError(t, err)

	result := report.Intervals[0].Metrics[schema.AICodeVolume]
	assert.Equal(t, 1, result.Observations)
	assert.InDelta(t, 0.25, result.MeanValue, 1e-9)
}

func TestComputeMetricsCorrelations(t *testing.T) {
	store := &memStore{}
	for d := 1; d <= 3; d++ {
		store.add(schema.SatisfactionEvent, day(d, 9), float64(d), schema.EventLinks{})
		store.add(schema.PerceivedProductivityEvent, day(d, 9), float64(2*d), schema.EventLinks{})
	}
	engine := NewEngine(store)
	kinds := []schema.MetricKind{schema.Satisfaction, schema.PerceivedProductivity}

	t.Run("perfectly correlated across intervals", func(t *testing.T) {
		report, err := engine.ComputeMetrics(context.Background(), kinds,
			stamp(day(1, 0)), stamp(day(3, 23)), 3)
		require.NoError(t, err)
		require.Len(t, report.Intervals, 3)
		require.Len(t, report.Correlations, 1)

		corr := report.Correlations[0]
		assert.Equal(t, schema.Satisfaction, corr.MetricA)
		assert.Equal(t, schema.PerceivedProductivity, corr.MetricB)
		assert.Equal(t, 3, corr.SampleSize)
		assert.InDelta(t, 1.0, corr.PearsonR, 1e-9)
		assert.Zero(t, corr.PValue)
		assert.Equal(t, "Very strong positive correlation, highly significant (p < 0.01)", corr.Interpretation)
	})

	t.Run("single interval yields no correlations", func(t *testing.T) {
		report, err := engine.ComputeMetrics(context.Background(), kinds,
			stamp(day(1, 0)), stamp(day(3, 23)), 1)
		require.NoError(t, err)
		assert.Empty(t, report.Correlations)
	})

	t.Run("single metric yields no correlations", func(t *testing.T) {
		report, err := engine.ComputeMetrics(context.Background(), kinds[:1],
			stamp(day(1, 0)), stamp(day(3, 23)), 3)
		require.NoError(t, err)
		assert.Empty(t, report.Correlations)
	})
}

func TestComputeCompositeSingleMetricWeightOne(t *testing.T) {
	store := &memStore{}
	for d := 1; d <= 5; d++ {
		store.add(schema.SatisfactionEvent, day(d, 9), float64(d), schema.EventLinks{})
	}
	engine := NewEngine(store)

	weights := []schema.MetricWeight{{Kind: schema.Satisfaction, Weight: 1.0}}
	composite, err := engine.ComputeComposite(context.Background(), weights,
		stamp(day(5, 0)), stamp(day(5, 23)), 1)
	require.NoError(t, err)
	require.Len(t, composite.Intervals, 1)

	metrics, err := engine.ComputeMetric(context.Background(), schema.Satisfaction,
		stamp(day(5, 0)), stamp(day(5, 23)), 1)
	require.NoError(t, err)

	score := composite.Intervals[0]
	require.Len(t, score.Metrics, 1)
	expected := metrics.Intervals[0].Metrics[schema.Satisfaction].ZScore
	assert.InDelta(t, expected, score.CPS, 1e-9)
	assert.InDelta(t, expected, score.Metrics[0].ZScoreWeighted, 1e-9)
}

func TestComputeCompositeWeightedSum(t *testing.T) {
	store := &memStore{}
	for d := 1; d <= 5; d++ {
		store.add(schema.SatisfactionEvent, day(d, 9), float64(d), schema.EventLinks{})
		store.add(schema.PerceivedProductivityEvent, day(d, 9), float64(6-d), schema.EventLinks{})
	}
	engine := NewEngine(store)

	weights := []schema.MetricWeight{
		{Kind: schema.Satisfaction, Weight: 0.5},
		{Kind: schema.PerceivedProductivity, Weight: 0.25},
	}
	composite, err := engine.ComputeComposite(context.Background(), weights,
		stamp(day(5, 0)), stamp(day(5, 23)), 1)
	require.NoError(t, err)

	score := composite.Intervals[0]
	require.Len(t, score.Metrics, 2)
	var sum float64
	for _, metric := range score.Metrics {
		assert.InDelta(t, metric.Weight*metric.ZScore, metric.ZScoreWeighted, 1e-9)
		sum += metric.ZScoreWeighted
	}
	assert.InDelta(t, sum, score.CPS, 1e-9)
}

func TestEngineValidation(t *testing.T) {
	engine := NewEngine(&memStore{})
	ctx := context.Background()

	t.Run("invalid timestamp", func(t *testing.T) {
		_, err := engine.ComputeMetric(ctx, schema.Satisfaction, "not-a-time", stamp(day(2, 0)), 1)
		assert.ErrorIs(t, err, contract.ErrInvalidTimestamp)
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := engine.ComputeMetric(ctx, schema.Satisfaction, stamp(day(2, 0)), stamp(day(1, 0)), 1)
		assert.ErrorIs(t, err, contract.ErrEndBeforeStart)
	})

	t.Run("unknown metric", func(t *testing.T) {
		_, err := engine.ComputeMetric(ctx, schema.MetricKind("NOPE"), stamp(day(1, 0)), stamp(day(2, 0)), 1)
		assert.ErrorIs(t, err, contract.ErrInvalidMetric)
	})

	t.Run("no metrics selected", func(t *testing.T) {
		_, err := engine.ComputeMetrics(ctx, nil, stamp(day(1, 0)), stamp(day(2, 0)), 1)
		assert.ErrorIs(t, err, contract.ErrInvalidMetric)
	})

	t.Run("too many intervals", func(t *testing.T) {
		// A one-day window supports at most two intervals.
		_, err := engine.ComputeMetric(ctx, schema.Satisfaction, stamp(day(1, 0)), stamp(day(2, 0)), 3)
		assert.ErrorIs(t, err, contract.ErrTooManyIntervals)
	})

	t.Run("weight out of range", func(t *testing.T) {
		weights := []schema.MetricWeight{{Kind: schema.Satisfaction, Weight: 1.5}}
		_, err := engine.ComputeComposite(ctx, weights, stamp(day(1, 0)), stamp(day(2, 0)), 1)
		assert.ErrorIs(t, err, contract.ErrInvalidWeight)
	})

	t.Run("weight on unknown metric", func(t *testing.T) {
		weights := []schema.MetricWeight{{Kind: schema.MetricKind("NOPE"), Weight: 0.5}}
		_, err := engine.ComputeComposite(ctx, weights, stamp(day(1, 0)), stamp(day(2, 0)), 1)
		assert.ErrorIs(t, err, contract.ErrInvalidMetric)
	})
}

// TestComputeMetricInstantWindow checks that a window whose end equals its
// start is valid and matches events on that exact second.
func TestComputeMetricInstantWindow(t *testing.T) {
	store := &memStore{}
	for d := 1; d <= 5; d++ {
		store.add(schema.SatisfactionEvent, day(d, 9), float64(d), schema.EventLinks{})
	}
	engine := NewEngine(store)
	ctx := context.Background()

	report, err := engine.ComputeMetric(ctx, schema.Satisfaction, stamp(day(3, 9)), stamp(day(3, 9)), 1)
	require.NoError(t, err)
	require.Len(t, report.Intervals, 1)

	result := report.Intervals[0].Metrics[schema.Satisfaction]
	assert.Equal(t, 1, result.Observations)
	assert.InDelta(t, 3.0, result.MeanValue, 1e-9)

	// An instant with no event degrades to the zero result, not an error.
	report, err = engine.ComputeMetric(ctx, schema.Satisfaction, stamp(day(3, 10)), stamp(day(3, 10)), 1)
	require.NoError(t, err)
	empty := report.Intervals[0].Metrics[schema.Satisfaction]
	assert.Equal(t, 0, empty.Observations)
	assert.Zero(t, empty.ZScore)
}
