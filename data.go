package thet

import (
	"fmt"

	"github.com/carbocation/pfx"
)

// PosteriorSummary carries the posterior location and credible bounds of one
// modeled per-segment quantity. It is pass-through here: the likelihood
// evaluator outside this package consumes it, this package only uses segment
// lengths.
type PosteriorSummary struct {
	Center  float64
	Lower   float64
	Upper   float64
	Deciles []float64
}

// ModeledSegment is one segmented genomic interval with its upstream
// posterior summaries. Coordinates are 1-based and inclusive, so a segment
// spanning 1-25 has length 25.
type ModeledSegment struct {
	Chromosome                          string
	Start                               int64
	End                                 int64
	SegmentMeanPosteriorSummary         PosteriorSummary
	MinorAlleleFractionPosteriorSummary PosteriorSummary
}

// Length returns the number of bases the segment spans.
func (s ModeledSegment) Length() int64 {
	return s.End - s.Start + 1
}

// TumorHeterogeneityData is the ordered, read-only sequence of per-segment
// observations the sampler evaluates states against. The total length is
// precomputed once so per-iteration fractional-length queries stay
// allocation-free.
type TumorHeterogeneityData struct {
	segments    []ModeledSegment
	totalLength int64
}

// NewTumorHeterogeneityData validates and copies segments.
func NewTumorHeterogeneityData(segments []ModeledSegment) (*TumorHeterogeneityData, error) {
	if len(segments) == 0 {
		return nil, pfx.Err(&ValidationError{msg: "data must contain at least one segment"})
	}
	for _, seg := range segments {
		if seg.Start < 1 || seg.End < seg.Start {
			return nil, pfx.Err(&ValidationError{msg: "segments must span positive 1-based inclusive intervals"})
		}
	}

	d := &TumorHeterogeneityData{
		segments: make([]ModeledSegment, len(segments)),
	}
	copy(d.segments, segments)
	for _, seg := range d.segments {
		d.totalLength += seg.Length()
	}
	return d, nil
}

// NumSegments returns the number of segments.
func (d *TumorHeterogeneityData) NumSegments() int {
	return len(d.segments)
}

// Segment returns the segment at segmentIndex. Passing an index outside the
// data is a programming error and panics.
func (d *TumorHeterogeneityData) Segment(segmentIndex int) ModeledSegment {
	d.validateSegmentIndex(segmentIndex)
	return d.segments[segmentIndex]
}

// Length returns the integer length of the segment at segmentIndex.
func (d *TumorHeterogeneityData) Length(segmentIndex int) int64 {
	d.validateSegmentIndex(segmentIndex)
	return d.segments[segmentIndex].Length()
}

// TotalLength returns the summed integer length across all segments.
func (d *TumorHeterogeneityData) TotalLength() int64 {
	return d.totalLength
}

func (d *TumorHeterogeneityData) validateSegmentIndex(segmentIndex int) {
	if segmentIndex < 0 || segmentIndex >= len(d.segments) {
		panic(fmt.Sprintf("segment index %d out of range [0, %d)", segmentIndex, len(d.segments)))
	}
}
