package core

import (
	"context"
	"fmt"

	"github.com/devpulse/devpulse/internal/contract"
	"github.com/devpulse/devpulse/schema"
)

// calculators maps every metric kind to its sampling strategy.
var calculators = map[schema.MetricKind]calculatorFunc{
	schema.Satisfaction:           directValue(schema.SatisfactionEvent),
	schema.Retention:              directValue(schema.TeamSizeChangeEvent),
	schema.CommunicationFrequency: directValue(schema.CommunicationEventRecorded),
	schema.PerceivedProductivity:  directValue(schema.PerceivedProductivityEvent),
	schema.LackOfInterruptions:    directValue(schema.WorkSessionEvent),
	schema.AIAcceptanceRate:       directValue(schema.AISuggestionResultEvent),
	schema.DeploymentFrequency:    dailyBucketed(schema.DeploymentEvent, false),
	schema.NumberOfCommits:        dailyBucketed(schema.CommitEvent, false),
	schema.LinesOfCode:            dailyBucketed(schema.LinesOfCodeEvent, true),
	schema.AILinesOfCode:          dailyBucketed(schema.LinesOfCodeAIEvent, true),
	schema.ChangeFailureRate:      failureRate(),
	schema.AIReworkRate:           reworkRate(),
	schema.MeanTimeToRecover:      recoveryDurations(),
	schema.LeadTimeForChanges:     leadTimeDurations(),
	schema.AICodeVolume:           aiCodeVolume(),
}

// computeKind runs one metric's calculator over a window and normalizes the
// samples. For metrics where lower raw values are better, the z-score sign
// is flipped here, after normalization, so a positive z-score always reads
// as improvement.
func computeKind(ctx context.Context, s *session, kind schema.MetricKind, window schema.TimeRange) (schema.MetricResult, error) {
	calculator, ok := calculators[kind]
	if !ok {
		return schema.MetricResult{}, fmt.Errorf("%w: %q", contract.ErrInvalidMetric, kind)
	}

	samples, err := calculator(ctx, s, window)
	if err != nil {
		return schema.MetricResult{}, fmt.Errorf("computing %s: %w", kind, err)
	}

	result := normalize(samples.timeframe, orSingleZero(samples.population))
	result.MinTimestamp = samples.minTimestamp
	result.MaxTimestamp = samples.maxTimestamp
	if _, invert := schema.LowerIsBetter[kind]; invert && result.ZScore != 0 {
		result.ZScore = -result.ZScore
	}
	return result, nil
}
