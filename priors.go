package thet

// TumorHeterogeneityPriorCollection bundles the fixed hyperparameters of the
// heterogeneity model. One collection is built up front and shared by
// reference across every state the sampler proposes; it is read-only after
// construction and deliberately not package-level state.
type TumorHeterogeneityPriorCollection struct {
	metropolisIterationFraction      float64
	normalPloidyState                PloidyState
	variantPloidyStatePrior          *PloidyStatePrior
	concentrationPriorAlpha          float64
	concentrationPriorBeta           float64
	variantSegmentFractionPriorAlpha float64
	variantSegmentFractionPriorBeta  float64
}

// NewTumorHeterogeneityPriorCollection validates and bundles the model
// hyperparameters. The variant ploidy-state prior enumerates altered states
// only, so it must not contain the normal state.
func NewTumorHeterogeneityPriorCollection(metropolisIterationFraction float64, normalPloidyState PloidyState, variantPloidyStatePrior *PloidyStatePrior,
	concentrationPriorAlpha, concentrationPriorBeta, variantSegmentFractionPriorAlpha, variantSegmentFractionPriorBeta float64) (*TumorHeterogeneityPriorCollection, error) {
	if err := firstViolation([]check{
		{func() bool { return metropolisIterationFraction >= 0 && metropolisIterationFraction <= 1 }, "Metropolis iteration fraction must be in [0, 1]"},
		{func() bool { return variantPloidyStatePrior != nil }, "variant ploidy-state prior must be provided"},
		{func() bool { return !variantPloidyStatePrior.Contains(normalPloidyState) }, "variant ploidy-state prior must not contain the normal ploidy state"},
		{func() bool { return concentrationPriorAlpha > 0 }, "alpha hyperparameter for the concentration prior must be positive"},
		{func() bool { return concentrationPriorBeta > 0 }, "beta hyperparameter for the concentration prior must be positive"},
		{func() bool { return variantSegmentFractionPriorAlpha > 0 }, "alpha hyperparameter for the variant-segment-fraction prior must be positive"},
		{func() bool { return variantSegmentFractionPriorBeta > 0 }, "beta hyperparameter for the variant-segment-fraction prior must be positive"},
	}); err != nil {
		return nil, err
	}

	return &TumorHeterogeneityPriorCollection{
		metropolisIterationFraction:      metropolisIterationFraction,
		normalPloidyState:                normalPloidyState,
		variantPloidyStatePrior:          variantPloidyStatePrior,
		concentrationPriorAlpha:          concentrationPriorAlpha,
		concentrationPriorBeta:           concentrationPriorBeta,
		variantSegmentFractionPriorAlpha: variantSegmentFractionPriorAlpha,
		variantSegmentFractionPriorBeta:  variantSegmentFractionPriorBeta,
	}, nil
}

// MetropolisIterationFraction returns the fraction of iterations on which the
// sampler takes a Metropolis step rather than a Gibbs step.
func (p *TumorHeterogeneityPriorCollection) MetropolisIterationFraction() float64 {
	return p.metropolisIterationFraction
}

// NormalPloidyState returns the ploidy state of the normal population.
func (p *TumorHeterogeneityPriorCollection) NormalPloidyState() PloidyState {
	return p.normalPloidyState
}

// VariantPloidyStatePrior returns the prior over altered ploidy states.
func (p *TumorHeterogeneityPriorCollection) VariantPloidyStatePrior() *PloidyStatePrior {
	return p.variantPloidyStatePrior
}

// ConcentrationPriorAlpha returns the alpha hyperparameter of the gamma prior
// on the concentration parameter.
func (p *TumorHeterogeneityPriorCollection) ConcentrationPriorAlpha() float64 {
	return p.concentrationPriorAlpha
}

// ConcentrationPriorBeta returns the beta hyperparameter of the gamma prior
// on the concentration parameter.
func (p *TumorHeterogeneityPriorCollection) ConcentrationPriorBeta() float64 {
	return p.concentrationPriorBeta
}

// VariantSegmentFractionPriorAlpha returns the alpha hyperparameter of the
// beta prior on variant-segment fractions.
func (p *TumorHeterogeneityPriorCollection) VariantSegmentFractionPriorAlpha() float64 {
	return p.variantSegmentFractionPriorAlpha
}

// VariantSegmentFractionPriorBeta returns the beta hyperparameter of the beta
// prior on variant-segment fractions.
func (p *TumorHeterogeneityPriorCollection) VariantSegmentFractionPriorBeta() float64 {
	return p.variantSegmentFractionPriorBeta
}
