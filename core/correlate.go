package core

import (
	"fmt"
	"math"

	"github.com/devpulse/devpulse/schema"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	insufficientDataMsg = "Insufficient data (need at least 3 intervals with observations)"
	zeroVarianceMsg     = "Cannot compute correlation: one or both metrics have zero variance"
)

// correlatePairs computes the Pearson correlation between every unordered
// pair of metrics across intervals. An interval where either metric had
// zero observations carries no signal for that pair and is dropped before
// correlating. Pairs follow the order of kinds, so the output is stable.
func correlatePairs(kinds []schema.MetricKind, intervals []schema.IntervalResult) []schema.CorrelationResult {
	var correlations []schema.CorrelationResult
	for i := 0; i < len(kinds); i++ {
		for j := i + 1; j < len(kinds); j++ {
			correlations = append(correlations, correlatePair(kinds[i], kinds[j], intervals))
		}
	}
	return correlations
}

func correlatePair(kindA, kindB schema.MetricKind, intervals []schema.IntervalResult) schema.CorrelationResult {
	var seriesA, seriesB []float64
	for _, interval := range intervals {
		resultA := interval.Metrics[kindA]
		resultB := interval.Metrics[kindB]
		if resultA.Observations == 0 || resultB.Observations == 0 {
			continue
		}
		seriesA = append(seriesA, resultA.MeanValue)
		seriesB = append(seriesB, resultB.MeanValue)
	}

	result := schema.CorrelationResult{
		MetricA:    kindA,
		MetricB:    kindB,
		SampleSize: len(seriesA),
	}

	if len(seriesA) < 3 {
		result.PValue = 1.0
		result.Interpretation = insufficientDataMsg
		return result
	}
	if isConstant(seriesA) || isConstant(seriesB) {
		result.PValue = 1.0
		result.Interpretation = zeroVarianceMsg
		return result
	}

	r := stat.Correlation(seriesA, seriesB, nil)
	p := pearsonPValue(r, len(seriesA))

	result.PearsonR = roundTo(r, 4)
	result.PValue = roundTo(p, 4)
	result.Interpretation = interpretCorrelation(result.PearsonR, result.PValue)
	return result
}

// pearsonPValue is the two-sided p-value of a Pearson coefficient under the
// null hypothesis of no correlation, via the exact t-distribution with n-2
// degrees of freedom.
func pearsonPValue(r float64, n int) float64 {
	if math.Abs(r) >= 1 {
		return 0.0
	}
	t := r * math.Sqrt(float64(n-2)/(1-r*r))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 2)}
	return 2 * (1 - dist.CDF(math.Abs(t)))
}

// interpretCorrelation renders a plain-language reading of an r/p pair.
func interpretCorrelation(r, p float64) string {
	absR := math.Abs(r)

	var strength string
	switch {
	case absR < 0.1:
		strength = "Negligible"
	case absR < 0.3:
		strength = "Weak"
	case absR < 0.5:
		strength = "Moderate"
	case absR < 0.7:
		strength = "Strong"
	default:
		strength = "Very strong"
	}

	direction := "no"
	if r > 0 {
		direction = "positive"
	} else if r < 0 {
		direction = "negative"
	}

	var significance string
	switch {
	case p < 0.01:
		significance = "highly significant (p < 0.01)"
	case p < 0.05:
		significance = "significant (p < 0.05)"
	case p < 0.1:
		significance = "marginally significant (p < 0.1)"
	default:
		significance = "not statistically significant"
	}

	return fmt.Sprintf("%s %s correlation, %s", strength, direction, significance)
}

func isConstant(series []float64) bool {
	for _, v := range series[1:] {
		if v != series[0] {
			return false
		}
	}
	return true
}

func roundTo(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}
