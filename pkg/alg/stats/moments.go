package stats

import "math"

// Minimum observation counts for the sample-adjusted shape statistics.
const (
	minSkewnessCount = 3
	minKurtosisCount = 4
)

// excessOffset turns the normalized fourth moment into excess kurtosis.
const excessOffset = 3.0

// Moments accumulates count, extrema and the first four central moments of a
// stream in O(1) space. The zero value is ready to use.
//
// The update is Welford's recurrence extended to the third and fourth moment:
// each observation adjusts the moments using its delta from the pre-update
// mean, so no power sums are ever subtracted from one another.
type Moments struct {
	count uint64
	min   float64
	max   float64
	mean  float64
	m2    float64
	m3    float64
	m4    float64
}

// Add incorporates x into the running statistics.
func (m *Moments) Add(x float64) {
	if m.count == 0 {
		m.min, m.max = x, x
	} else {
		m.min = min(m.min, x)
		m.max = max(m.max, x)
	}

	n1 := float64(m.count)
	m.count++
	n := float64(m.count)

	delta := x - m.mean
	deltaN := delta / n
	deltaN2 := deltaN * deltaN
	term1 := delta * deltaN * n1

	m.mean += deltaN
	m.m4 += term1*deltaN2*(n*n-3*n+3) + 6*deltaN2*m.m2 - 4*deltaN*m.m3
	m.m3 += term1*deltaN*(n-2) - 3*deltaN*m.m2
	m.m2 += term1
}

// Merge folds other into m as if every observation of other had been added to m.
func (m *Moments) Merge(other *Moments) {
	if other.count == 0 {
		return
	}

	if m.count == 0 {
		*m = *other

		return
	}

	na := float64(m.count)
	nb := float64(other.count)
	n := na + nb

	delta := other.mean - m.mean
	delta2 := delta * delta
	delta3 := delta2 * delta
	delta4 := delta2 * delta2

	mean := m.mean + delta*nb/n
	m2 := m.m2 + other.m2 + delta2*na*nb/n
	m3 := m.m3 + other.m3 +
		delta3*na*nb*(na-nb)/(n*n) +
		3*delta*(na*other.m2-nb*m.m2)/n
	m4 := m.m4 + other.m4 +
		delta4*na*nb*(na*na-na*nb+nb*nb)/(n*n*n) +
		6*delta2*(na*na*other.m2+nb*nb*m.m2)/(n*n) +
		4*delta*(na*other.m3-nb*m.m3)/n

	m.count += other.count
	m.min = min(m.min, other.min)
	m.max = max(m.max, other.max)
	m.mean, m.m2, m.m3, m.m4 = mean, m2, m3, m4
}

// Count returns the number of observations.
func (m *Moments) Count() uint64 {
	return m.count
}

// Min returns the smallest observation.
func (m *Moments) Min() Statistic {
	if m.count == 0 {
		return Undefined()
	}

	return Defined(m.min)
}

// Max returns the largest observation.
func (m *Moments) Max() Statistic {
	if m.count == 0 {
		return Undefined()
	}

	return Defined(m.max)
}

// Mean returns the arithmetic mean.
func (m *Moments) Mean() Statistic {
	if m.count == 0 {
		return Undefined()
	}

	return Defined(m.mean)
}

// Variance returns the sample variance (÷(n−1)).
// A single finite observation has a sample variance of exactly zero; a single
// NaN or ±Inf yields NaN, like the population variance.
func (m *Moments) Variance() Statistic {
	switch m.count {
	case 0:
		return Undefined()
	case 1:
		return Defined(m.m2)
	default:
		return Defined(m.m2 / float64(m.count-1))
	}
}

// PopulationVariance returns the population variance (÷n).
func (m *Moments) PopulationVariance() Statistic {
	if m.count == 0 {
		return Undefined()
	}

	return Defined(m.m2 / float64(m.count))
}

// StdDev returns the sample standard deviation.
func (m *Moments) StdDev() Statistic {
	return sqrt(m.Variance())
}

// PopulationStdDev returns the population standard deviation.
func (m *Moments) PopulationStdDev() Statistic {
	return sqrt(m.PopulationVariance())
}

// PopulationSkewness returns g1 = √n·M3 / M2^(3/2).
func (m *Moments) PopulationSkewness() Statistic {
	if m.count == 0 || m.m2 == 0 {
		return Undefined()
	}

	n := float64(m.count)

	return Defined(math.Sqrt(n) * m.m3 / math.Pow(m.m2, 1.5))
}

// Skewness returns the adjusted Fisher-Pearson sample skewness G1.
// It requires at least three observations.
func (m *Moments) Skewness() Statistic {
	if m.count < minSkewnessCount || m.m2 == 0 {
		return Undefined()
	}

	n := float64(m.count)
	s := math.Sqrt(m.m2 / (n - 1))

	return Defined(n / ((n - 1) * (n - 2)) * m.m3 / (s * s * s))
}

// PopulationKurtosis returns the excess kurtosis g2 = n·M4 / M2² − 3.
func (m *Moments) PopulationKurtosis() Statistic {
	if m.count == 0 || m.m2 == 0 {
		return Undefined()
	}

	n := float64(m.count)

	return Defined(n*m.m4/(m.m2*m.m2) - excessOffset)
}

// Kurtosis returns the sample excess kurtosis G2.
// It requires at least four observations.
func (m *Moments) Kurtosis() Statistic {
	if m.count < minKurtosisCount || m.m2 == 0 {
		return Undefined()
	}

	n := float64(m.count)
	s2 := m.m2 / (n - 1)

	scale := n * (n + 1) / ((n - 1) * (n - 2) * (n - 3))
	offset := excessOffset * (n - 1) * (n - 1) / ((n - 2) * (n - 3))

	return Defined(scale*m.m4/(s2*s2) - offset)
}

func sqrt(s Statistic) Statistic {
	if !s.Defined {
		return s
	}

	return Defined(math.Sqrt(s.Value))
}
