package histogram

import (
	"math"

	"github.com/Sumatoshi-tech/samplers/pkg/alg/stats"
)

// Bucket count limits. MaxBuckets bounds the chart height.
const (
	MinBuckets = 1
	MaxBuckets = 64
)

// AutoBuckets picks a bucket count for count observations using Sturges' rule,
// ceil(log2(count)) + 1, clamped to [MinBuckets, MaxBuckets].
func AutoBuckets(count uint64) int {
	if count <= 1 {
		return MinBuckets
	}

	k := int(math.Ceil(math.Log2(float64(count)))) + 1

	return stats.Clamp(k, MinBuckets, MaxBuckets)
}

// ResolveBuckets returns requested clamped to the allowed range, or the
// Sturges estimate for count when requested is zero or negative.
func ResolveBuckets(requested int, count uint64) int {
	if requested <= 0 {
		return AutoBuckets(count)
	}

	return stats.Clamp(requested, MinBuckets, MaxBuckets)
}
