package core

import (
	"context"
	"fmt"

	"github.com/devpulse/devpulse/internal/contract"
	"github.com/devpulse/devpulse/schema"
)

// compositeForWindow computes the weighted z-score sum over one window. The
// breakdown keeps every weighted metric's full result so a reader can trace
// each contribution back to its raw sample.
func compositeForWindow(ctx context.Context, s *session, weights []schema.MetricWeight, window schema.TimeRange) (schema.CompositeScore, error) {
	score := schema.CompositeScore{
		Start:   window.Start,
		End:     window.End,
		Metrics: make([]schema.CompositeMetric, 0, len(weights)),
	}

	for _, weight := range weights {
		result, err := computeKind(ctx, s, weight.Kind, window)
		if err != nil {
			return schema.CompositeScore{}, err
		}
		weighted := weight.Weight * result.ZScore
		score.CPS += weighted
		score.Metrics = append(score.Metrics, schema.CompositeMetric{
			Kind:           weight.Kind,
			Weight:         weight.Weight,
			ZScore:         result.ZScore,
			ZScoreWeighted: weighted,
			MeanValue:      result.MeanValue,
			Observations:   result.Observations,
			PopulationMean: result.PopulationMean,
			PopulationStd:  result.PopulationStd,
			MinTimestamp:   result.MinTimestamp,
			MaxTimestamp:   result.MaxTimestamp,
		})
	}
	return score, nil
}

// validateWeights rejects any weight outside [0, 1] and any unknown kind
// before computation starts.
func validateWeights(weights []schema.MetricWeight) error {
	for _, weight := range weights {
		if _, ok := schema.ValidMetricKinds[weight.Kind]; !ok {
			return fmt.Errorf("%w: %q", contract.ErrInvalidMetric, weight.Kind)
		}
		if weight.Weight < 0 || weight.Weight > 1 {
			return fmt.Errorf("%w: %s has weight %g, must be within [0, 1]",
				contract.ErrInvalidWeight, weight.Kind, weight.Weight)
		}
	}
	return nil
}
