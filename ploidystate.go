package thet

import (
	"fmt"

	"github.com/carbocation/pfx"
)

// PloidyState is a discrete allelic copy-number state: the number of copies
// of the major and minor homologs at a locus. It is an immutable value and
// compares by value, so it can key maps directly.
type PloidyState struct {
	major int
	minor int
}

// NewPloidyState returns the ploidy state with the given homolog counts.
func NewPloidyState(major, minor int) (PloidyState, error) {
	if major < 0 || minor < 0 {
		return PloidyState{}, pfx.Err(&ValidationError{msg: "ploidy-state allele counts must be non-negative"})
	}
	return PloidyState{major: major, minor: minor}, nil
}

// Major returns the major-homolog copy number.
func (ps PloidyState) Major() int {
	return ps.major
}

// Minor returns the minor-homolog copy number.
func (ps PloidyState) Minor() int {
	return ps.minor
}

// Total returns the total copy number, major + minor.
func (ps PloidyState) Total() int {
	return ps.major + ps.minor
}

func (ps PloidyState) String() string {
	return fmt.Sprintf("(%d, %d)", ps.major, ps.minor)
}

// PloidyStatePrior holds an unnormalized log probability for each state in a
// finite, ordered support. The order of the support is what gives meaning to
// the per-segment ploidy-state indicators held by variant profiles; only
// index validity and state lookup are consumed here, the probability mass
// belongs to the acceptance-ratio computation outside this package.
type PloidyStatePrior struct {
	states                       []PloidyState
	unnormalizedLogProbabilities map[PloidyState]float64
}

// NewPloidyStatePrior builds a prior over the given ordered support. The two
// slices are parallel: unnormalizedLogProbabilities[i] belongs to states[i].
func NewPloidyStatePrior(states []PloidyState, unnormalizedLogProbabilities []float64) (*PloidyStatePrior, error) {
	if err := firstViolation([]check{
		{func() bool { return len(states) > 0 }, "ploidy-state prior must contain at least one state"},
		{func() bool { return len(states) == len(unnormalizedLogProbabilities) }, "ploidy-state prior must have one log probability per state"},
	}); err != nil {
		return nil, err
	}

	prior := &PloidyStatePrior{
		states:                       make([]PloidyState, len(states)),
		unnormalizedLogProbabilities: make(map[PloidyState]float64, len(states)),
	}
	copy(prior.states, states)
	for i, state := range states {
		if _, seen := prior.unnormalizedLogProbabilities[state]; seen {
			return nil, pfx.Err(&ValidationError{msg: "ploidy-state prior must not contain duplicate states"})
		}
		prior.unnormalizedLogProbabilities[state] = unnormalizedLogProbabilities[i]
	}

	return prior, nil
}

// NumStates returns the size of the support.
func (p *PloidyStatePrior) NumStates() int {
	return len(p.states)
}

// IsValidStateIndex reports whether stateIndex addresses a state in the
// support.
func (p *PloidyStatePrior) IsValidStateIndex(stateIndex int) bool {
	return stateIndex >= 0 && stateIndex < len(p.states)
}

// State returns the state at stateIndex in the support's order. Passing an
// index outside the support is a programming error and panics.
func (p *PloidyStatePrior) State(stateIndex int) PloidyState {
	if !p.IsValidStateIndex(stateIndex) {
		panic(fmt.Sprintf("ploidy-state index %d out of range [0, %d)", stateIndex, len(p.states)))
	}
	return p.states[stateIndex]
}

// Contains reports whether state is in the support.
func (p *PloidyStatePrior) Contains(state PloidyState) bool {
	_, ok := p.unnormalizedLogProbabilities[state]
	return ok
}

// UnnormalizedLogProbability returns the unnormalized log probability of
// state. Querying a state outside the support is a programming error and
// panics.
func (p *PloidyStatePrior) UnnormalizedLogProbability(state PloidyState) float64 {
	logProb, ok := p.unnormalizedLogProbabilities[state]
	if !ok {
		panic(fmt.Sprintf("ploidy state %s is not in the prior's support", state))
	}
	return logProb
}
