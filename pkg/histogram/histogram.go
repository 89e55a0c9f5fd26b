// Package histogram bins a numeric stream into equal-width buckets and renders
// the result as proportional text bars.
//
// Two modes exist. [Histogram] has fixed bounds and ingests in a single pass.
// [Binner] does not know the range in advance, so it buffers every observation
// until [Binner.Finish]; this is the one place in samplers where memory grows
// with the input.
package histogram

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Sentinel construction errors.
var (
	ErrInvalidBounds      = errors.New("histogram upper bound is below lower bound")
	ErrNonFiniteBounds    = errors.New("histogram bounds must be finite")
	ErrInvalidBucketCount = errors.New("histogram needs at least one bucket")
)

// Histogram counts observations in equal-width buckets over [lower, upper],
// plus an underflow bucket below lower and an overflow bucket above upper.
//
// Bucket i covers [edges[i], edges[i+1]); the last bucket is closed so that
// upper itself is counted. NaN is counted as overflow.
type Histogram struct {
	edges     []float64
	counts    []uint64
	lower     float64
	upper     float64
	underflow uint64
	overflow  uint64
}

// New returns a histogram of buckets equal-width buckets spanning [lower, upper].
// When lower equals upper the histogram has a single bucket holding that value.
func New(lower, upper float64, buckets int) (*Histogram, error) {
	if math.IsNaN(lower) || math.IsNaN(upper) || math.IsInf(lower, 0) || math.IsInf(upper, 0) {
		return nil, fmt.Errorf("%w: [%v, %v]", ErrNonFiniteBounds, lower, upper)
	}

	if upper < lower {
		return nil, fmt.Errorf("%w: [%v, %v]", ErrInvalidBounds, lower, upper)
	}

	if buckets < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBucketCount, buckets)
	}

	if upper == lower {
		buckets = 1
	}

	h := &Histogram{
		edges:  make([]float64, buckets+1),
		counts: make([]uint64, buckets),
		lower:  lower,
		upper:  upper,
	}

	n := float64(buckets)

	width := (upper - lower) / n
	if math.IsInf(width, 0) {
		// The span itself overflows, e.g. [-1e308, 1e308]; split each bound first.
		width = upper/n - lower/n
	}

	for i := range buckets {
		h.edges[i] = lower + float64(i)*width
	}

	h.edges[buckets] = upper

	return h, nil
}

// empty returns a histogram with no regular buckets; every observation lands
// in a sentinel bucket.
func empty() *Histogram {
	return &Histogram{edges: []float64{}, counts: []uint64{}}
}

// Observe adds v to its bucket.
func (h *Histogram) Observe(v float64) {
	switch {
	case len(h.counts) == 0:
		if v < 0 {
			h.underflow++
		} else {
			h.overflow++
		}
	case v < h.lower:
		h.underflow++
	case v > h.upper, math.IsNaN(v):
		h.overflow++
	default:
		h.counts[h.index(v)]++
	}
}

// index maps an in-range value to its bucket: the first bucket whose upper
// edge lies above v, or the last bucket for upper itself.
func (h *Histogram) index(v float64) int {
	last := len(h.counts) - 1

	return sort.Search(last, func(i int) bool { return v < h.edges[i+1] })
}

// Buckets returns the number of regular buckets.
func (h *Histogram) Buckets() int {
	return len(h.counts)
}

// Edges returns the bucket boundaries, Buckets()+1 values in ascending order.
// It is empty when the histogram has no regular buckets.
func (h *Histogram) Edges() []float64 {
	if len(h.counts) == 0 {
		return nil
	}

	return append([]float64(nil), h.edges...)
}

// Counts returns the per-bucket totals.
func (h *Histogram) Counts() []uint64 {
	return append([]uint64(nil), h.counts...)
}

// Underflow returns the number of observations below the lower bound.
func (h *Histogram) Underflow() uint64 {
	return h.underflow
}

// Overflow returns the number of observations above the upper bound, plus NaNs.
func (h *Histogram) Overflow() uint64 {
	return h.overflow
}

// Total returns the number of observations in all buckets, sentinels included.
func (h *Histogram) Total() uint64 {
	total := h.underflow + h.overflow
	for _, c := range h.counts {
		total += c
	}

	return total
}

// Bucket is one rendered row: a lower edge and the number of values it holds.
type Bucket struct {
	Lower float64
	Upper float64
	Count uint64
}

// Rows returns the underflow bucket, every regular bucket and the overflow
// bucket, in ascending order.
func (h *Histogram) Rows() []Bucket {
	rows := make([]Bucket, 0, len(h.counts)+2)

	first, last := math.Inf(1), math.Inf(-1)
	if len(h.counts) > 0 {
		first, last = h.edges[0], h.edges[len(h.edges)-1]
	}

	rows = append(rows, Bucket{Lower: math.Inf(-1), Upper: first, Count: h.underflow})

	for i, c := range h.counts {
		rows = append(rows, Bucket{Lower: h.edges[i], Upper: h.edges[i+1], Count: c})
	}

	return append(rows, Bucket{Lower: last, Upper: math.Inf(1), Count: h.overflow})
}
