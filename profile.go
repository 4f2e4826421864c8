package thet

// VariantIndicators flags, per segment, whether a variant population carries
// a copy-number alteration there.
type VariantIndicators []bool

// VariantPloidyStateIndicators holds, per segment, the index of the altered
// ploidy state within the shared variant ploidy-state prior's support.
type VariantPloidyStateIndicators []int

// VariantProfile is the genomic profile of one variant population: the
// fraction of its genome altered plus two parallel per-segment sequences
// describing where and to which ploidy state. Whether the ploidy-state
// indices are valid depends on the prior and is checked at state
// construction.
type VariantProfile struct {
	variantSegmentFraction       float64
	variantIndicators            VariantIndicators
	variantPloidyStateIndicators VariantPloidyStateIndicators
}

// NewVariantProfile validates and copies one variant profile.
func NewVariantProfile(variantSegmentFraction float64, variantIndicators VariantIndicators, variantPloidyStateIndicators VariantPloidyStateIndicators) (VariantProfile, error) {
	if err := firstViolation(variantProfileChecks(variantSegmentFraction, variantIndicators, variantPloidyStateIndicators)); err != nil {
		return VariantProfile{}, err
	}

	vp := VariantProfile{
		variantSegmentFraction:       variantSegmentFraction,
		variantIndicators:            make(VariantIndicators, len(variantIndicators)),
		variantPloidyStateIndicators: make(VariantPloidyStateIndicators, len(variantPloidyStateIndicators)),
	}
	copy(vp.variantIndicators, variantIndicators)
	copy(vp.variantPloidyStateIndicators, variantPloidyStateIndicators)
	return vp, nil
}

func variantProfileChecks(variantSegmentFraction float64, variantIndicators VariantIndicators, variantPloidyStateIndicators VariantPloidyStateIndicators) []check {
	return []check{
		{func() bool { return variantSegmentFraction >= 0 && variantSegmentFraction <= 1 }, "variant-segment fraction must be in [0, 1]"},
		{func() bool { return len(variantIndicators) > 0 }, "variant profile must cover at least one segment"},
		{func() bool { return len(variantIndicators) == len(variantPloidyStateIndicators) }, "number of segments must be the same for variant and ploidy-state indicators"},
	}
}

// VariantSegmentFraction returns the fraction of this population's genome
// that is altered.
func (vp VariantProfile) VariantSegmentFraction() float64 {
	return vp.variantSegmentFraction
}

// NumSegments returns the number of segments this profile spans.
func (vp VariantProfile) NumSegments() int {
	return len(vp.variantIndicators)
}

// IsVariant reports whether segmentIndex is altered in this profile.
func (vp VariantProfile) IsVariant(segmentIndex int) bool {
	return vp.variantIndicators[segmentIndex]
}

// VariantPloidyStateIndex returns the prior-support index of the altered
// ploidy state at segmentIndex.
func (vp VariantProfile) VariantPloidyStateIndex(segmentIndex int) int {
	return vp.variantPloidyStateIndicators[segmentIndex]
}

// VariantProfileCollection is the ordered set of variant-population profiles,
// one per non-normal population. The cross-profile equal-segment-count
// invariant lives here because no single profile can check it alone.
type VariantProfileCollection []VariantProfile

// NewVariantProfileCollection validates and copies profiles.
func NewVariantProfileCollection(profiles []VariantProfile) (VariantProfileCollection, error) {
	if err := firstViolation(variantProfileCollectionChecks(profiles)); err != nil {
		return nil, err
	}
	vpc := make(VariantProfileCollection, len(profiles))
	copy(vpc, profiles)
	return vpc, nil
}

func variantProfileCollectionChecks(profiles []VariantProfile) []check {
	return []check{
		{func() bool { return len(profiles) >= 1 }, "number of variant populations must be positive"},
		{func() bool {
			for _, p := range profiles {
				if p.NumSegments() != profiles[0].NumSegments() {
					return false
				}
			}
			return true
		}, "number of segments must be the same for all variant populations"},
	}
}

// NumSegments returns the common segment count shared by all profiles.
func (vpc VariantProfileCollection) NumSegments() int {
	if len(vpc) == 0 {
		return 0
	}
	return vpc[0].NumSegments()
}
