package histogram

import (
	"math"

	"github.com/Sumatoshi-tech/samplers/pkg/alg/stats"
)

// Result is the outcome of a histogram run: the moment summary of every
// observation and, unless the stream was empty, the filled histogram.
type Result struct {
	Histogram *Histogram
	Summary   stats.Summary
}

// Binner buffers a stream whose range is unknown, and bins it once the range is
// known. Moments are tracked as values arrive, so the summary needs no extra pass.
type Binner struct {
	moments   stats.Moments
	values    []float64
	finiteMin float64
	finiteMax float64
	finite    bool
	buckets   int
}

// NewBinner returns a Binner. A positive buckets fixes the bucket count;
// zero selects it from the number of observations with [AutoBuckets].
func NewBinner(buckets int) *Binner {
	return &Binner{buckets: buckets}
}

// Observe records v.
func (b *Binner) Observe(v float64) {
	b.moments.Add(v)
	b.values = append(b.values, v)

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}

	if !b.finite {
		b.finiteMin, b.finiteMax, b.finite = v, v, true

		return
	}

	b.finiteMin = min(b.finiteMin, v)
	b.finiteMax = max(b.finiteMax, v)
}

// Count returns the number of observations so far.
func (b *Binner) Count() uint64 {
	return b.moments.Count()
}

// Finish bins every buffered value over the observed finite range and releases
// the buffer. With no observations the result has a nil Histogram.
func (b *Binner) Finish() Result {
	result := Result{Summary: stats.Summarize(&b.moments)}

	switch {
	case b.moments.Count() == 0:
		return result
	case !b.finite:
		result.Histogram = empty()
	default:
		n := ResolveBuckets(b.buckets, b.moments.Count())

		// Bounds come from finite observed values and n >= 1, so New cannot fail.
		h, err := New(b.finiteMin, b.finiteMax, n)
		if err != nil {
			panic(err)
		}

		result.Histogram = h
	}

	for _, v := range b.values {
		result.Histogram.Observe(v)
	}

	b.values = nil

	return result
}

// Streamer fills a fixed-bounds histogram in a single pass while tracking moments.
type Streamer struct {
	hist    *Histogram
	moments stats.Moments
}

// DefaultStreamBuckets is the bucket count of a [Streamer] when none is requested;
// the observation count is unknown up front, so Sturges' rule cannot apply.
const DefaultStreamBuckets = 15

// NewStreamer returns a single-pass histogram over [lower, upper].
func NewStreamer(lower, upper float64, buckets int) (*Streamer, error) {
	if buckets <= 0 {
		buckets = DefaultStreamBuckets
	}

	h, err := New(lower, upper, ResolveBuckets(buckets, 0))
	if err != nil {
		return nil, err
	}

	return &Streamer{hist: h}, nil
}

// Observe records v.
func (s *Streamer) Observe(v float64) {
	s.moments.Add(v)
	s.hist.Observe(v)
}

// Count returns the number of observations so far.
func (s *Streamer) Count() uint64 {
	return s.moments.Count()
}

// Finish returns the summary and histogram. With no observations the
// histogram is omitted, matching [Binner.Finish].
func (s *Streamer) Finish() Result {
	result := Result{Summary: stats.Summarize(&s.moments)}
	if s.moments.Count() > 0 {
		result.Histogram = s.hist
	}

	return result
}
