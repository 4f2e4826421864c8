package thet

import "math"

// PopulationFractionsSumTolerance is the absolute tolerance allowed between
// the sum of a population-fraction vector and unity.
const PopulationFractionsSumTolerance = 1e-6

// PopulationFractions is the ordered vector of mixture weights, one per
// population. By convention the last index is the normal population. The
// vector is never auto-normalized: a vector that does not sum to 1 is a
// construction error.
type PopulationFractions []float64

// NewPopulationFractions validates and copies fractions.
func NewPopulationFractions(fractions []float64) (PopulationFractions, error) {
	if err := firstViolation(populationFractionsChecks(fractions)); err != nil {
		return nil, err
	}
	pf := make(PopulationFractions, len(fractions))
	copy(pf, fractions)
	return pf, nil
}

func populationFractionsChecks(fractions []float64) []check {
	return []check{
		{func() bool { return len(fractions) >= 2 }, "number of populations must be at least 2 (at least one variant and one normal)"},
		{func() bool {
			for _, f := range fractions {
				if f < 0 {
					return false
				}
			}
			return true
		}, "population fractions must be non-negative"},
		{func() bool {
			sum := 0.
			for _, f := range fractions {
				sum += f
			}
			return math.Abs(sum-1) <= PopulationFractionsSumTolerance
		}, "population fractions must sum to unity"},
	}
}

// PopulationIndicators is the ordered sequence of categorical draws assigning
// each sampled unit to a population. The empirical fraction of each value is
// an estimator distinct from the continuous PopulationFractions vector; the
// two are refreshed separately by the sampler and are never cross-validated
// here.
type PopulationIndicators []int

// NewPopulationIndicators validates and copies indicators. The upper bound on
// indicator values depends on the number of declared populations and is
// checked at state construction.
func NewPopulationIndicators(indicators []int) (PopulationIndicators, error) {
	if err := firstViolation(populationIndicatorsChecks(indicators)); err != nil {
		return nil, err
	}
	pi := make(PopulationIndicators, len(indicators))
	copy(pi, indicators)
	return pi, nil
}

func populationIndicatorsChecks(indicators []int) []check {
	return []check{
		{func() bool { return len(indicators) > 0 }, "population indicators must not be empty"},
		{func() bool {
			for _, i := range indicators {
				if i < 0 {
					return false
				}
			}
			return true
		}, "population indicators must be non-negative"},
	}
}
