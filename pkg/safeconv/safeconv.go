// Package safeconv provides integer conversions that never wrap around.
package safeconv

import "math"

// SaturateUint64ToInt64 converts v to int64, clamping values above
// math.MaxInt64. Observation counts use it for int64-only sinks such as
// OTel counters and humanized output.
func SaturateUint64ToInt64(v uint64) int64 {
	if v > math.MaxInt64 {
		return math.MaxInt64
	}

	return int64(v)
}
