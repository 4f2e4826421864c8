package thet

import "fmt"

// TumorHeterogeneityState is one point in the sampler's parameter space: the
// concentration parameter, the continuous population fractions, the discrete
// per-unit population indicators, and one genomic profile per variant
// population, together with a shared read-only reference to the model priors.
//
// A state is immutable once constructed and is never repaired or normalized;
// the sampler replaces it wholesale with the next candidate. All structural
// invariants are verified eagerly at construction, so a state that exists is
// valid and per-iteration queries never re-validate.
type TumorHeterogeneityState struct {
	doMetropolisStep     bool
	concentration        float64
	populationFractions  PopulationFractions
	populationIndicators PopulationIndicators
	variantProfiles      VariantProfileCollection
	priors               *TumorHeterogeneityPriorCollection
}

// NewTumorHeterogeneityState validates and assembles a state. Inputs are
// copied, so the caller may reuse its slices for the next proposal. On any
// structural violation the returned error wraps a ValidationError naming the
// violated invariant and no state is observable.
//
// The full invariant set is re-verified here even when the component values
// came from their own validated constructors: the component types are plain
// named slices and nothing stops a caller from building them directly.
func NewTumorHeterogeneityState(doMetropolisStep bool, concentration float64,
	populationFractions PopulationFractions, populationIndicators PopulationIndicators,
	variantProfiles VariantProfileCollection, priors *TumorHeterogeneityPriorCollection) (*TumorHeterogeneityState, error) {
	if err := firstViolation(stateChecks(concentration, populationFractions, populationIndicators, variantProfiles, priors)); err != nil {
		return nil, err
	}

	s := &TumorHeterogeneityState{
		doMetropolisStep:     doMetropolisStep,
		concentration:        concentration,
		populationFractions:  make(PopulationFractions, len(populationFractions)),
		populationIndicators: make(PopulationIndicators, len(populationIndicators)),
		variantProfiles:      make(VariantProfileCollection, len(variantProfiles)),
		priors:               priors,
	}
	copy(s.populationFractions, populationFractions)
	copy(s.populationIndicators, populationIndicators)
	for i, p := range variantProfiles {
		s.variantProfiles[i], _ = NewVariantProfile(p.variantSegmentFraction, p.variantIndicators, p.variantPloidyStateIndicators)
	}

	return s, nil
}

// stateChecks is the ordered list of structural invariants a candidate state
// must satisfy, evaluated left-to-right with short-circuit on first failure.
// Adding an invariant means appending a predicate+message pair; the
// construction control flow never changes.
func stateChecks(concentration float64, populationFractions PopulationFractions, populationIndicators PopulationIndicators,
	variantProfiles VariantProfileCollection, priors *TumorHeterogeneityPriorCollection) []check {
	checks := []check{
		{func() bool { return priors != nil }, "priors must be provided"},
		{func() bool { return concentration > 0 }, "concentration parameter must be positive"},
	}
	checks = append(checks, populationFractionsChecks(populationFractions)...)
	checks = append(checks, populationIndicatorsChecks(populationIndicators)...)
	checks = append(checks,
		check{func() bool {
			for _, i := range populationIndicators {
				if i >= len(populationFractions) {
					return false
				}
			}
			return true
		}, "population indicators must be consistent with the total number of populations"},
	)
	for i := range variantProfiles {
		p := variantProfiles[i]
		checks = append(checks, variantProfileChecks(p.variantSegmentFraction, p.variantIndicators, p.variantPloidyStateIndicators)...)
	}
	checks = append(checks, variantProfileCollectionChecks(variantProfiles)...)
	checks = append(checks,
		check{func() bool { return len(variantProfiles)+1 == len(populationFractions) }, "number of variant populations must be one less than the total number of populations"},
		check{func() bool {
			if priors == nil {
				return false
			}
			prior := priors.VariantPloidyStatePrior()
			for _, p := range variantProfiles {
				for _, stateIndex := range p.variantPloidyStateIndicators {
					if !prior.IsValidStateIndex(stateIndex) {
						return false
					}
				}
			}
			return true
		}, "variant ploidy-state indicators must be consistent with the number of states in the ploidy-state prior"},
	)
	return checks
}

// DoMetropolisStep reports whether the sampler should take a Metropolis step
// on the iteration this state was proposed for.
func (s *TumorHeterogeneityState) DoMetropolisStep() bool {
	return s.doMetropolisStep
}

// Concentration returns the concentration parameter.
func (s *TumorHeterogeneityState) Concentration() float64 {
	return s.concentration
}

// Priors returns the shared read-only prior bundle.
func (s *TumorHeterogeneityState) Priors() *TumorHeterogeneityPriorCollection {
	return s.priors
}

// NumPopulations returns the total number of populations, variant plus
// normal.
func (s *TumorHeterogeneityState) NumPopulations() int {
	return len(s.populationFractions)
}

// NumVariantPopulations returns the number of non-normal populations.
func (s *TumorHeterogeneityState) NumVariantPopulations() int {
	return len(s.variantProfiles)
}

// NumPopulationIndicators returns the number of sampled per-unit population
// assignments.
func (s *TumorHeterogeneityState) NumPopulationIndicators() int {
	return len(s.populationIndicators)
}

// NumSegments returns the common segment count of the variant profiles.
func (s *TumorHeterogeneityState) NumSegments() int {
	return s.variantProfiles.NumSegments()
}

// PopulationFraction returns the continuous mixture weight of
// populationIndex.
func (s *TumorHeterogeneityState) PopulationFraction(populationIndex int) float64 {
	s.validatePopulationIndex(populationIndex)
	return s.populationFractions[populationIndex]
}

// PopulationIndicator returns the population assigned to the sampled unit at
// indicatorIndex.
func (s *TumorHeterogeneityState) PopulationIndicator(indicatorIndex int) int {
	if indicatorIndex < 0 || indicatorIndex >= len(s.populationIndicators) {
		panic(fmt.Sprintf("population-indicator index %d out of range [0, %d)", indicatorIndex, len(s.populationIndicators)))
	}
	return s.populationIndicators[indicatorIndex]
}

// IsNormalPopulation reports whether populationIndex is the normal
// population, conventionally the last index.
func (s *TumorHeterogeneityState) IsNormalPopulation(populationIndex int) bool {
	s.validatePopulationIndex(populationIndex)
	return populationIndex == len(s.populationFractions)-1
}

// VariantSegmentFraction returns the variant-segment fraction of the variant
// population at populationIndex.
func (s *TumorHeterogeneityState) VariantSegmentFraction(populationIndex int) float64 {
	s.validateVariantPopulationIndex(populationIndex)
	return s.variantProfiles[populationIndex].VariantSegmentFraction()
}

// IsVariant reports whether the variant population at populationIndex is
// altered at segmentIndex.
func (s *TumorHeterogeneityState) IsVariant(populationIndex, segmentIndex int) bool {
	s.validateVariantPopulationIndex(populationIndex)
	s.validateSegmentIndex(segmentIndex)
	return s.variantProfiles[populationIndex].IsVariant(segmentIndex)
}

// VariantPloidyStateIndex returns the prior-support index of the altered
// ploidy state of the variant population at populationIndex in segmentIndex.
func (s *TumorHeterogeneityState) VariantPloidyStateIndex(populationIndex, segmentIndex int) int {
	s.validateVariantPopulationIndex(populationIndex)
	s.validateSegmentIndex(segmentIndex)
	return s.variantProfiles[populationIndex].VariantPloidyStateIndex(segmentIndex)
}

// CalculateFractionalLength returns the length of the segment at segmentIndex
// as a fraction of the total length across all segments. Both lengths are
// integers, so the result is the exact ratio and the fractions sum to unity
// across segments.
func (s *TumorHeterogeneityState) CalculateFractionalLength(data *TumorHeterogeneityData, segmentIndex int) float64 {
	return float64(data.Length(segmentIndex)) / float64(data.TotalLength())
}

// CalculatePopulationFractionFromCounts returns the empirical fraction of
// population indicators assigned to populationIndex. This estimator is
// distinct from the continuous PopulationFraction: the fractions are
// continuous parameters while the indicators are a discrete sub-sampled
// approximation refreshed separately by the sampler.
func (s *TumorHeterogeneityState) CalculatePopulationFractionFromCounts(populationIndex int) float64 {
	s.validatePopulationIndex(populationIndex)
	count := 0
	for _, i := range s.populationIndicators {
		if i == populationIndex {
			count++
		}
	}
	return float64(count) / float64(len(s.populationIndicators))
}

// CalculatePopulationAndGenomicAveragedPloidy returns the total copy number
// averaged jointly over segments, weighted by fractional length, and over
// populations, weighted by population fraction. The normal population
// contributes the normal state's total copy number everywhere; a variant
// population contributes the normal total in its unaltered segments and the
// total of its indexed variant state in its altered ones.
func (s *TumorHeterogeneityState) CalculatePopulationAndGenomicAveragedPloidy(data *TumorHeterogeneityData) float64 {
	if data.NumSegments() != s.NumSegments() {
		panic(fmt.Sprintf("data has %d segments, state has %d", data.NumSegments(), s.NumSegments()))
	}

	normalTotal := float64(s.priors.NormalPloidyState().Total())
	prior := s.priors.VariantPloidyStatePrior()

	ploidy := 0.
	for populationIndex := 0; populationIndex < s.NumPopulations(); populationIndex++ {
		populationPloidy := 0.
		for segmentIndex := 0; segmentIndex < data.NumSegments(); segmentIndex++ {
			contribution := normalTotal
			if populationIndex < s.NumVariantPopulations() && s.variantProfiles[populationIndex].IsVariant(segmentIndex) {
				stateIndex := s.variantProfiles[populationIndex].VariantPloidyStateIndex(segmentIndex)
				contribution = float64(prior.State(stateIndex).Total())
			}
			populationPloidy += s.CalculateFractionalLength(data, segmentIndex) * contribution
		}
		ploidy += s.populationFractions[populationIndex] * populationPloidy
	}
	return ploidy
}

func (s *TumorHeterogeneityState) validatePopulationIndex(populationIndex int) {
	if populationIndex < 0 || populationIndex >= len(s.populationFractions) {
		panic(fmt.Sprintf("population index %d out of range [0, %d)", populationIndex, len(s.populationFractions)))
	}
}

func (s *TumorHeterogeneityState) validateVariantPopulationIndex(populationIndex int) {
	if populationIndex < 0 || populationIndex >= len(s.variantProfiles) {
		panic(fmt.Sprintf("variant-population index %d out of range [0, %d)", populationIndex, len(s.variantProfiles)))
	}
}

func (s *TumorHeterogeneityState) validateSegmentIndex(segmentIndex int) {
	if segmentIndex < 0 || segmentIndex >= s.NumSegments() {
		panic(fmt.Sprintf("segment index %d out of range [0, %d)", segmentIndex, s.NumSegments()))
	}
}
