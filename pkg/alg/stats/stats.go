// Package stats provides single-pass statistical accumulators for numeric streams.
//
// The accumulator keeps the first four central moments using an online update,
// so a stream of any length is summarized in constant space. Derived statistics
// are returned as [Statistic] values that distinguish "undefined" from NaN.
package stats

import "cmp"

// Clamp restricts val to the range [lo, hi].
func Clamp[T cmp.Ordered](val, lo, hi T) T {
	return max(lo, min(val, hi))
}

// Of returns an accumulator that has observed every element of values in order.
func Of(values []float64) *Moments {
	m := &Moments{}

	for _, v := range values {
		m.Add(v)
	}

	return m
}
