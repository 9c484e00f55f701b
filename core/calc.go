package core

import (
	"context"
	"time"

	"github.com/devpulse/devpulse/schema"
)

// sampleSet is the raw material of one metric computation: a timeframe
// sample, a population sample, and (for calculators that derive their
// timeframe from the actual data span) the first and last event
// timestamps behind it.
type sampleSet struct {
	timeframe    []float64
	population   []float64
	minTimestamp *time.Time
	maxTimestamp *time.Time
}

// calculatorFunc produces the samples for one metric over one window.
type calculatorFunc func(ctx context.Context, s *session, window schema.TimeRange) (sampleSet, error)

// pairAnchor says which end of a linked event pair carries the timeframe
// filter. The anchor side is queried by window; its companion is located
// from all history regardless of when it occurred.
type pairAnchor int

const (
	anchorEarlier pairAnchor = iota
	anchorLater
)

// matchFunc reports whether a companion event completes the pair for an anchor.
type matchFunc func(anchor, companion schema.Event) bool

// directValue samples the raw value field of every event of one category.
func directValue(category schema.EventCategory) calculatorFunc {
	return func(ctx context.Context, s *session, window schema.TimeRange) (sampleSet, error) {
		timeframe, err := s.inWindow(ctx, category, window)
		if err != nil {
			return sampleSet{}, err
		}
		population, err := s.history(ctx, category)
		if err != nil {
			return sampleSet{}, err
		}
		return sampleSet{
			timeframe:  eventValues(timeframe),
			population: eventValues(population),
		}, nil
	}
}

// dailyBucketed partitions matching events by calendar day, one sample entry
// per day (count or sum of values) with explicit zeros for gap days. The
// timeframe sample spans the days of the actual matching events in range
// (no events means an empty sample, not a run of zeros); the population
// sample spans the category's full historical day span.
func dailyBucketed(category schema.EventCategory, sumValues bool) calculatorFunc {
	return func(ctx context.Context, s *session, window schema.TimeRange) (sampleSet, error) {
		timeframe, err := s.inWindow(ctx, category, window)
		if err != nil {
			return sampleSet{}, err
		}
		population, err := s.history(ctx, category)
		if err != nil {
			return sampleSet{}, err
		}

		samples := sampleSet{population: dailySeries(population, sumValues)}
		if len(timeframe) > 0 {
			samples.timeframe = dailySeries(timeframe, sumValues)
			minTS := timeframe[0].Timestamp
			maxTS := timeframe[len(timeframe)-1].Timestamp
			samples.minTimestamp = &minTS
			samples.maxTimestamp = &maxTS
		}
		return samples, nil
	}
}

// failureRate emits one indicator per deployment in the selection set: 1.0
// when any failure links back to it, else 0.0. The deployment is the
// resolving anchor; failures are located from all history.
func failureRate() calculatorFunc {
	return func(ctx context.Context, s *session, window schema.TimeRange) (sampleSet, error) {
		deploymentsTF, err := s.inWindow(ctx, schema.DeploymentEvent, window)
		if err != nil {
			return sampleSet{}, err
		}
		deploymentsAll, err := s.history(ctx, schema.DeploymentEvent)
		if err != nil {
			return sampleSet{}, err
		}
		failuresAll, err := s.history(ctx, schema.DeploymentFailureEvent)
		if err != nil {
			return sampleSet{}, err
		}
		return sampleSet{
			timeframe:  failureIndicators(deploymentsTF, failuresAll),
			population: failureIndicators(deploymentsAll, failuresAll),
		}, nil
	}
}

// reworkRate emits one indicator per commit in the selection set: 1.0 when
// the commit is flagged as AI rework, else 0.0.
func reworkRate() calculatorFunc {
	return func(ctx context.Context, s *session, window schema.TimeRange) (sampleSet, error) {
		commitsTF, err := s.inWindow(ctx, schema.CommitEvent, window)
		if err != nil {
			return sampleSet{}, err
		}
		commitsAll, err := s.history(ctx, schema.CommitEvent)
		if err != nil {
			return sampleSet{}, err
		}
		return sampleSet{
			timeframe:  reworkIndicators(commitsTF),
			population: reworkIndicators(commitsAll),
		}, nil
	}
}

// recoveryDurations pairs each failure fix in the window with the failure
// it resolves, emitting the recovery time in minutes. The fix is the later
// event of the pair and carries the timeframe filter.
func recoveryDurations() calculatorFunc {
	return func(ctx context.Context, s *session, window schema.TimeRange) (sampleSet, error) {
		fixesTF, err := s.inWindow(ctx, schema.DeploymentFailureFixEvent, window)
		if err != nil {
			return sampleSet{}, err
		}
		fixesAll, err := s.history(ctx, schema.DeploymentFailureFixEvent)
		if err != nil {
			return sampleSet{}, err
		}
		failuresAll, err := s.history(ctx, schema.DeploymentFailureEvent)
		if err != nil {
			return sampleSet{}, err
		}
		return sampleSet{
			timeframe:  pairDurations(fixesTF, failuresAll, fixResolvesFailure, anchorLater),
			population: pairDurations(fixesAll, failuresAll, fixResolvesFailure, anchorLater),
		}, nil
	}
}

// leadTimeDurations pairs each deployment in the window with the commits it
// shipped, emitting the commit-to-deployment time in minutes. The
// deployment is the later event of the pair and carries the timeframe
// filter; commits are located from all history.
func leadTimeDurations() calculatorFunc {
	return func(ctx context.Context, s *session, window schema.TimeRange) (sampleSet, error) {
		deploymentsTF, err := s.inWindow(ctx, schema.DeploymentEvent, window)
		if err != nil {
			return sampleSet{}, err
		}
		deploymentsAll, err := s.history(ctx, schema.DeploymentEvent)
		if err != nil {
			return sampleSet{}, err
		}
		commitsAll, err := s.history(ctx, schema.CommitEvent)
		if err != nil {
			return sampleSet{}, err
		}
		return sampleSet{
			timeframe:  pairDurations(deploymentsTF, commitsAll, commitShippedBy, anchorLater),
			population: pairDurations(deploymentsAll, commitsAll, commitShippedBy, anchorLater),
		}, nil
	}
}

// aiCodeVolume joins total and AI lines-of-code events on identical
// timestamps; each match contributes the ratio ai/total. Unmatched events
// contribute nothing.
func aiCodeVolume() calculatorFunc {
	return func(ctx context.Context, s *session, window schema.TimeRange) (sampleSet, error) {
		totalsTF, err := s.inWindow(ctx, schema.LinesOfCodeEvent, window)
		if err != nil {
			return sampleSet{}, err
		}
		aiTF, err := s.inWindow(ctx, schema.LinesOfCodeAIEvent, window)
		if err != nil {
			return sampleSet{}, err
		}
		totalsAll, err := s.history(ctx, schema.LinesOfCodeEvent)
		if err != nil {
			return sampleSet{}, err
		}
		aiAll, err := s.history(ctx, schema.LinesOfCodeAIEvent)
		if err != nil {
			return sampleSet{}, err
		}
		return sampleSet{
			timeframe:  timestampRatios(totalsTF, aiTF),
			population: timestampRatios(totalsAll, aiAll),
		}, nil
	}
}

// eventValues extracts the raw value of each event.
func eventValues(events []schema.Event) []float64 {
	values := make([]float64, len(events))
	for i, event := range events {
		values[i] = event.Value
	}
	return values
}

// dayOf truncates a timestamp to its UTC calendar day.
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// dailySeries buckets events by calendar day from the first to the last
// event, filling gap days with zero. Events must be ordered by timestamp.
func dailySeries(events []schema.Event, sumValues bool) []float64 {
	if len(events) == 0 {
		return nil
	}

	buckets := make(map[time.Time]float64)
	for _, event := range events {
		day := dayOf(event.Timestamp)
		if sumValues {
			buckets[day] += event.Value
		} else {
			buckets[day]++
		}
	}

	first := dayOf(events[0].Timestamp)
	last := dayOf(events[len(events)-1].Timestamp)
	var series []float64
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		series = append(series, buckets[day])
	}
	return series
}

// failureIndicators maps each deployment to 1.0 if any failure links to it.
func failureIndicators(deployments, failures []schema.Event) []float64 {
	failed := make(map[int64]struct{}, len(failures))
	for _, failure := range failures {
		if failure.Links.DeploymentID != nil {
			failed[*failure.Links.DeploymentID] = struct{}{}
		}
	}

	indicators := make([]float64, len(deployments))
	for i, deployment := range deployments {
		if _, ok := failed[deployment.ID]; ok {
			indicators[i] = 1.0
		}
	}
	return indicators
}

// reworkIndicators maps each commit to 1.0 if it is flagged as AI rework.
func reworkIndicators(commits []schema.Event) []float64 {
	indicators := make([]float64, len(commits))
	for i, commit := range commits {
		if commit.Links.AIRework {
			indicators[i] = 1.0
		}
	}
	return indicators
}

// pairDurations emits the minutes between every matched (anchor, companion)
// pair. The anchor parameter states which end of the pair the anchors are,
// so the subtraction order is explicit rather than re-derived per metric.
func pairDurations(anchors, companions []schema.Event, match matchFunc, anchor pairAnchor) []float64 {
	var durations []float64
	for _, a := range anchors {
		for _, c := range companions {
			if !match(a, c) {
				continue
			}
			earlier, later := a.Timestamp, c.Timestamp
			if anchor == anchorLater {
				earlier, later = c.Timestamp, a.Timestamp
			}
			durations = append(durations, later.Sub(earlier).Minutes())
		}
	}
	return durations
}

// fixResolvesFailure matches a failure fix to the failure it resolves. A
// failure is keyed by its own failure link when present, otherwise by its
// event ID.
func fixResolvesFailure(fix, failure schema.Event) bool {
	if fix.Links.DeploymentFailureID == nil {
		return false
	}
	failureKey := failure.ID
	if failure.Links.DeploymentFailureID != nil {
		failureKey = *failure.Links.DeploymentFailureID
	}
	return *fix.Links.DeploymentFailureID == failureKey
}

// commitShippedBy matches a commit to the deployment that shipped it.
func commitShippedBy(deployment, commit schema.Event) bool {
	return commit.Links.DeploymentID != nil && *commit.Links.DeploymentID == deployment.ID
}

// timestampRatios joins two event streams on identical timestamps and
// emits ai/total per match. Zero-valued totals are skipped so the sample
// stays finite.
func timestampRatios(totals, ai []schema.Event) []float64 {
	totalByTime := make(map[int64]float64, len(totals))
	for _, event := range totals {
		totalByTime[event.Timestamp.Unix()] = event.Value
	}

	var ratios []float64
	for _, event := range ai {
		total, ok := totalByTime[event.Timestamp.Unix()]
		if !ok || total == 0 {
			continue
		}
		ratios = append(ratios, event.Value/total)
	}
	return ratios
}
