package thet

import (
	"math"
	"testing"
)

const epsilon = 1e-10

// Fixtures shared across the state tests: a normal (1, 1) ploidy state, a
// variant prior over (0, 0), (0, 1), (1, 2), three populations with fractions
// 0.1/0.2/0.7, and two segments spanning 1-25 and 26-100.

func testPriors(t *testing.T) *TumorHeterogeneityPriorCollection {
	t.Helper()

	normalPloidyState, err := NewPloidyState(1, 1)
	if err != nil {
		t.Fatal(err)
	}
	var states []PloidyState
	for _, counts := range [][2]int{{0, 0}, {0, 1}, {1, 2}} {
		state, err := NewPloidyState(counts[0], counts[1])
		if err != nil {
			t.Fatal(err)
		}
		states = append(states, state)
	}
	variantPloidyStatePrior, err := NewPloidyStatePrior(states, []float64{0, 0, 0})
	if err != nil {
		t.Fatal(err)
	}

	priors, err := NewTumorHeterogeneityPriorCollection(0.5, normalPloidyState, variantPloidyStatePrior, 1, 1, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	return priors
}

func testVariantProfile(t *testing.T, variantSegmentFraction float64, variantIndicators []bool, variantPloidyStateIndicators []int) VariantProfile {
	t.Helper()
	profile, err := NewVariantProfile(variantSegmentFraction, variantIndicators, variantPloidyStateIndicators)
	if err != nil {
		t.Fatal(err)
	}
	return profile
}

func testState(t *testing.T) *TumorHeterogeneityState {
	t.Helper()

	profile1 := testVariantProfile(t, 0.1, []bool{true, true}, []int{0, 1})
	profile2 := testVariantProfile(t, 0.3, []bool{true, false}, []int{2, 0})

	state, err := NewTumorHeterogeneityState(false, 1,
		PopulationFractions{0.1, 0.2, 0.7},
		PopulationIndicators{0, 1, 1, 2, 2, 2, 2, 2, 2, 2},
		VariantProfileCollection{profile1, profile2},
		testPriors(t))
	if err != nil {
		t.Fatal(err)
	}
	return state
}

func testData(t *testing.T) *TumorHeterogeneityData {
	t.Helper()

	data, err := NewTumorHeterogeneityData([]ModeledSegment{
		{Chromosome: "1", Start: 1, End: 25},
		{Chromosome: "1", Start: 26, End: 100},
	})
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestSinglePopulation(t *testing.T) {
	// Must have at least one variant and one normal population.
	_, err := NewTumorHeterogeneityState(false, 1, PopulationFractions{1}, PopulationIndicators{0}, VariantProfileCollection{}, testPriors(t))
	if err == nil {
		t.Error("expected construction to fail with a single population")
	}

	if _, err := NewPopulationFractions([]float64{1}); err == nil {
		t.Error("expected NewPopulationFractions to fail with a single population")
	}
}

func TestUnnormalizedPopulationFractions(t *testing.T) {
	profile := testVariantProfile(t, 0.1, []bool{true}, []int{0})
	_, err := NewTumorHeterogeneityState(false, 1, PopulationFractions{0.1, 0.1}, PopulationIndicators{0, 1}, VariantProfileCollection{profile}, testPriors(t))
	if err == nil {
		t.Error("expected construction to fail with fractions that do not sum to unity")
	}

	if _, err := NewPopulationFractions([]float64{0.1, 0.1}); err == nil {
		t.Error("expected NewPopulationFractions to fail with fractions that do not sum to unity")
	}
}

func TestNegativePopulationIndicators(t *testing.T) {
	profile := testVariantProfile(t, 0.1, []bool{true}, []int{0})
	_, err := NewTumorHeterogeneityState(false, 1, PopulationFractions{0.1, 0.9}, PopulationIndicators{0, -1}, VariantProfileCollection{profile}, testPriors(t))
	if err == nil {
		t.Error("expected construction to fail with a negative population indicator")
	}

	if _, err := NewPopulationIndicators([]int{0, -1}); err == nil {
		t.Error("expected NewPopulationIndicators to fail with a negative indicator")
	}
}

func TestInconsistentPopulationIndicators(t *testing.T) {
	// An indicator value of 2 implies at least three populations, but only
	// two are declared.
	profile := testVariantProfile(t, 0.1, []bool{true}, []int{0})
	_, err := NewTumorHeterogeneityState(false, 1, PopulationFractions{0.1, 0.9}, PopulationIndicators{2}, VariantProfileCollection{profile}, testPriors(t))
	if err == nil {
		t.Error("expected construction to fail with indicators inconsistent with the number of populations")
	}
}

func TestNoVariants(t *testing.T) {
	_, err := NewTumorHeterogeneityState(false, 1, PopulationFractions{0.1, 0.9}, PopulationIndicators{0, 1}, VariantProfileCollection{}, testPriors(t))
	if err == nil {
		t.Error("expected construction to fail with no variant populations")
	}
}

func TestBadVariantSegmentFraction(t *testing.T) {
	if _, err := NewVariantProfile(-0.1, []bool{true}, []int{0}); err == nil {
		t.Error("expected NewVariantProfile to fail with a negative variant-segment fraction")
	}
	if _, err := NewVariantProfile(1.1, []bool{true}, []int{0}); err == nil {
		t.Error("expected NewVariantProfile to fail with a variant-segment fraction above 1")
	}

	// Re-validated at state construction even when the profile is crafted
	// directly rather than through its constructor.
	profile := VariantProfile{variantSegmentFraction: -0.1, variantIndicators: VariantIndicators{true}, variantPloidyStateIndicators: VariantPloidyStateIndicators{0}}
	_, err := NewTumorHeterogeneityState(false, 1, PopulationFractions{0.1, 0.9}, PopulationIndicators{1}, VariantProfileCollection{profile}, testPriors(t))
	if err == nil {
		t.Error("expected construction to fail with a variant-segment fraction outside [0, 1]")
	}
}

func TestInconsistentNumbersOfPopulationsAndVariants(t *testing.T) {
	// Three populations declared but only one variant profile.
	profile := testVariantProfile(t, 0.1, []bool{true}, []int{0})
	_, err := NewTumorHeterogeneityState(false, 1, PopulationFractions{0.1, 0.2, 0.7}, PopulationIndicators{0}, VariantProfileCollection{profile}, testPriors(t))
	if err == nil {
		t.Error("expected construction to fail with numbers of populations and variants that disagree")
	}
}

func TestDifferentNumberOfSegmentsAcrossVariants(t *testing.T) {
	profile1 := testVariantProfile(t, 0.1, []bool{true}, []int{0})
	profile2 := testVariantProfile(t, 0.3, []bool{true, false}, []int{0, 1})
	_, err := NewTumorHeterogeneityState(false, 1, PopulationFractions{0.1, 0.2, 0.7}, PopulationIndicators{0}, VariantProfileCollection{profile1, profile2}, testPriors(t))
	if err == nil {
		t.Error("expected construction to fail with differing segment counts across variant profiles")
	}

	if _, err := NewVariantProfileCollection([]VariantProfile{profile1, profile2}); err == nil {
		t.Error("expected NewVariantProfileCollection to fail with differing segment counts")
	}
}

func TestDifferentNumberOfSegmentsWithinVariant(t *testing.T) {
	if _, err := NewVariantProfile(0.1, []bool{true}, []int{0, 1}); err == nil {
		t.Error("expected NewVariantProfile to fail with mismatched indicator lengths")
	}

	profile := VariantProfile{variantSegmentFraction: 0.1, variantIndicators: VariantIndicators{true}, variantPloidyStateIndicators: VariantPloidyStateIndicators{0, 1}}
	_, err := NewTumorHeterogeneityState(false, 1, PopulationFractions{0.1, 0.9}, PopulationIndicators{0}, VariantProfileCollection{profile}, testPriors(t))
	if err == nil {
		t.Error("expected construction to fail with mismatched indicator lengths within a profile")
	}
}

func TestInconsistentVariantPloidyStateIndicators(t *testing.T) {
	// The variant prior has three states, so index 3 is out of support.
	profile := testVariantProfile(t, 0.1, []bool{true}, []int{3})
	_, err := NewTumorHeterogeneityState(false, 1, PopulationFractions{0.1, 0.9}, PopulationIndicators{1}, VariantProfileCollection{profile}, testPriors(t))
	if err == nil {
		t.Error("expected construction to fail with a ploidy-state indicator outside the prior's support")
	}
}

func TestNonPositiveConcentration(t *testing.T) {
	profile := testVariantProfile(t, 0.1, []bool{true}, []int{0})
	_, err := NewTumorHeterogeneityState(false, 0, PopulationFractions{0.1, 0.9}, PopulationIndicators{1}, VariantProfileCollection{profile}, testPriors(t))
	if err == nil {
		t.Error("expected construction to fail with a non-positive concentration")
	}
}

func TestCalculateFractionalLength(t *testing.T) {
	state := testState(t)
	data := testData(t)

	// Lengths 25 and 75 of 100 total must give the exact ratios.
	if got := state.CalculateFractionalLength(data, 0); got != 0.25 {
		t.Errorf("Got %v, expected 0.25", got)
	}
	if got := state.CalculateFractionalLength(data, 1); got != 0.75 {
		t.Errorf("Got %v, expected 0.75", got)
	}

	sum := 0.
	for i := 0; i < data.NumSegments(); i++ {
		sum += state.CalculateFractionalLength(data, i)
	}
	if sum != 1 {
		t.Errorf("Got fractional lengths summing to %v, expected exactly 1", sum)
	}
}

func TestCalculatePopulationFractionFromCounts(t *testing.T) {
	state := testState(t)

	expected := []float64{0.1, 0.2, 0.7}
	for populationIndex, want := range expected {
		if got := state.CalculatePopulationFractionFromCounts(populationIndex); got != want {
			t.Errorf("Population %d: got %v, expected %v", populationIndex, got, want)
		}
	}
}

func TestCalculatePopulationAndGenomicAveragedPloidy(t *testing.T) {
	state := testState(t)
	data := testData(t)

	if got := state.CalculatePopulationAndGenomicAveragedPloidy(data); math.Abs(got-1.925) > epsilon {
		t.Errorf("Got %v, expected 1.925 within %v", got, epsilon)
	}
}

func TestRoundTrip(t *testing.T) {
	state := testState(t)

	if state.DoMetropolisStep() {
		t.Error("expected DoMetropolisStep to read back false")
	}
	if got := state.Concentration(); got != 1 {
		t.Errorf("Got concentration %v, expected 1", got)
	}
	if got := state.NumPopulations(); got != 3 {
		t.Errorf("Got %d populations, expected 3", got)
	}
	if got := state.NumVariantPopulations(); got != 2 {
		t.Errorf("Got %d variant populations, expected 2", got)
	}
	if got := state.NumPopulationIndicators(); got != 10 {
		t.Errorf("Got %d population indicators, expected 10", got)
	}
	if got := state.NumSegments(); got != 2 {
		t.Errorf("Got %d segments, expected 2", got)
	}

	wantFractions := []float64{0.1, 0.2, 0.7}
	for i, want := range wantFractions {
		if got := state.PopulationFraction(i); got != want {
			t.Errorf("Population %d: got fraction %v, expected %v", i, got, want)
		}
	}

	wantIndicators := []int{0, 1, 1, 2, 2, 2, 2, 2, 2, 2}
	for i, want := range wantIndicators {
		if got := state.PopulationIndicator(i); got != want {
			t.Errorf("Indicator %d: got %d, expected %d", i, got, want)
		}
	}

	if got := state.VariantSegmentFraction(0); got != 0.1 {
		t.Errorf("Got variant-segment fraction %v, expected 0.1", got)
	}
	if got := state.VariantSegmentFraction(1); got != 0.3 {
		t.Errorf("Got variant-segment fraction %v, expected 0.3", got)
	}

	wantVariant := [][]bool{{true, true}, {true, false}}
	wantStateIndex := [][]int{{0, 1}, {2, 0}}
	for populationIndex := range wantVariant {
		for segmentIndex := range wantVariant[populationIndex] {
			if got := state.IsVariant(populationIndex, segmentIndex); got != wantVariant[populationIndex][segmentIndex] {
				t.Errorf("IsVariant(%d, %d): got %v, expected %v", populationIndex, segmentIndex, got, wantVariant[populationIndex][segmentIndex])
			}
			if got := state.VariantPloidyStateIndex(populationIndex, segmentIndex); got != wantStateIndex[populationIndex][segmentIndex] {
				t.Errorf("VariantPloidyStateIndex(%d, %d): got %d, expected %d", populationIndex, segmentIndex, got, wantStateIndex[populationIndex][segmentIndex])
			}
		}
	}

	if !state.IsNormalPopulation(2) {
		t.Error("expected the last population to be normal")
	}
	if state.IsNormalPopulation(0) {
		t.Error("expected population 0 to be variant")
	}

	if state.Priors() == nil {
		t.Fatal("expected a priors reference")
	}
	if got := state.Priors().NormalPloidyState().Total(); got != 2 {
		t.Errorf("Got normal total copy number %d, expected 2", got)
	}
}

func TestDerivedStatisticsAreIdempotent(t *testing.T) {
	state := testState(t)
	data := testData(t)

	for i := 0; i < 3; i++ {
		if a, b := state.CalculatePopulationAndGenomicAveragedPloidy(data), state.CalculatePopulationAndGenomicAveragedPloidy(data); a != b {
			t.Errorf("Averaged ploidy not bit-identical across calls: %v vs %v", a, b)
		}
		if a, b := state.CalculateFractionalLength(data, 1), state.CalculateFractionalLength(data, 1); a != b {
			t.Errorf("Fractional length not bit-identical across calls: %v vs %v", a, b)
		}
		if a, b := state.CalculatePopulationFractionFromCounts(2), state.CalculatePopulationFractionFromCounts(2); a != b {
			t.Errorf("Empirical fraction not bit-identical across calls: %v vs %v", a, b)
		}
	}
}

func TestInputsAreCopied(t *testing.T) {
	fractions := PopulationFractions{0.1, 0.2, 0.7}
	indicators := PopulationIndicators{0, 1, 1, 2, 2, 2, 2, 2, 2, 2}
	profile1 := testVariantProfile(t, 0.1, []bool{true, true}, []int{0, 1})
	profile2 := testVariantProfile(t, 0.3, []bool{true, false}, []int{2, 0})

	state, err := NewTumorHeterogeneityState(false, 1, fractions, indicators, VariantProfileCollection{profile1, profile2}, testPriors(t))
	if err != nil {
		t.Fatal(err)
	}

	// Mutating the caller's slices must not reach into the state.
	fractions[0] = 0.9
	indicators[0] = 2

	if got := state.PopulationFraction(0); got != 0.1 {
		t.Errorf("Got fraction %v after caller mutation, expected 0.1", got)
	}
	if got := state.PopulationIndicator(0); got != 0 {
		t.Errorf("Got indicator %d after caller mutation, expected 0", got)
	}
}

func TestOutOfRangeAccessPanics(t *testing.T) {
	state := testState(t)

	cases := []struct {
		name string
		call func()
	}{
		{"population fraction", func() { state.PopulationFraction(3) }},
		{"population indicator", func() { state.PopulationIndicator(10) }},
		{"empirical fraction", func() { state.CalculatePopulationFractionFromCounts(-1) }},
		{"variant-segment fraction", func() { state.VariantSegmentFraction(2) }},
		{"variant indicator", func() { state.IsVariant(0, 2) }},
	}
	for _, c := range cases {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("%s: expected a panic on out-of-range access", c.name)
				}
			}()
			c.call()
		}()
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{msg: "population fractions must sum to unity"}
	if got := err.Error(); got != "invalid state: population fractions must sum to unity" {
		t.Errorf("Got %q", got)
	}
}
