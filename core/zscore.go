package core

import (
	"math"

	"github.com/devpulse/devpulse/schema"
	"gonum.org/v1/gonum/stat"
)

// normalize reduces a (timeframe, population) sample pair to a MetricResult.
// An empty timeframe yields the zero result without touching the population.
// The population standard deviation uses ddof=1 semantics: NaN for a single
// observation and zero for a constant population, both of which normalize
// the z-score to exactly 0.0 rather than dividing by zero.
func normalize(timeframe, population []float64) schema.MetricResult {
	if len(timeframe) == 0 {
		return schema.MetricResult{}
	}

	meanValue := stat.Mean(timeframe, nil)

	populationMean := stat.Mean(population, nil)
	populationStd := stat.StdDev(population, nil)
	if math.IsNaN(populationMean) {
		populationMean = 0.0
	}
	if math.IsNaN(populationStd) || populationStd == 0 {
		populationStd = 0.0
	}

	var zScore float64
	if populationStd > 0 {
		zScore = (meanValue - populationMean) / populationStd
	}

	return schema.MetricResult{
		MeanValue:      meanValue,
		Observations:   len(timeframe),
		ZScore:         zScore,
		PopulationMean: populationMean,
		PopulationStd:  populationStd,
	}
}

// orSingleZero replaces an empty population with a single zero observation
// so the baseline is always defined.
func orSingleZero(population []float64) []float64 {
	if len(population) == 0 {
		return []float64{0.0}
	}
	return population
}
