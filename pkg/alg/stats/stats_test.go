package stats

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

const tolerance = 1e-9

func TestClamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		val, lo, hi int
		expected    int
	}{
		{name: "within_range", val: 5, lo: 1, hi: 10, expected: 5},
		{name: "below_min", val: -1, lo: 1, hi: 10, expected: 1},
		{name: "above_max", val: 15, lo: 1, hi: 10, expected: 10},
		{name: "at_max", val: 10, lo: 1, hi: 10, expected: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, Clamp(tt.val, tt.lo, tt.hi))
		})
	}
}

func TestMoments_Empty(t *testing.T) {
	t.Parallel()

	m := &Moments{}
	s := Summarize(m)

	assert.Equal(t, uint64(0), s.Count)

	for _, f := range s.Fields()[1:] {
		assert.Equal(t, UndefinedText, f.Value, f.Label)
	}
}

func TestMoments_SingleObservation(t *testing.T) {
	t.Parallel()

	m := Of([]float64{8.25})

	assert.Equal(t, Defined(8.25), m.Min())
	assert.Equal(t, Defined(8.25), m.Max())
	assert.Equal(t, Defined(8.25), m.Mean())
	assert.Equal(t, Defined(0), m.Variance())
	assert.Equal(t, Defined(0), m.PopulationVariance())
	assert.Equal(t, Defined(0), m.StdDev())
	assert.Equal(t, Defined(0), m.PopulationStdDev())

	assert.False(t, m.Skewness().Defined)
	assert.False(t, m.Kurtosis().Defined)
	assert.False(t, m.PopulationSkewness().Defined)
	assert.False(t, m.PopulationKurtosis().Defined)
}

func TestMoments_SingleNonFiniteObservation(t *testing.T) {
	t.Parallel()

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		m := Of([]float64{v})

		for name, s := range map[string]Statistic{
			"variance":            m.Variance(),
			"population_variance": m.PopulationVariance(),
			"std_dev":             m.StdDev(),
			"population_std_dev":  m.PopulationStdDev(),
		} {
			require.True(t, s.Defined, "%v %s", v, name)
			assert.True(t, math.IsNaN(s.Value), "%v %s = %v", v, name, s.Value)
		}
	}
}

func TestMoments_KnownValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		input      []float64
		wantMean   float64
		wantPopVar float64
		wantVar    float64
	}{
		{name: "one_to_five", input: []float64{1, 2, 3, 4, 5}, wantMean: 3, wantPopVar: 2, wantVar: 2.5},
		{name: "two_values", input: []float64{8.25, -1.5}, wantMean: 3.375, wantPopVar: 23.765625, wantVar: 47.53125},
		{name: "three_values", input: []float64{-1.25, 6.25, 16}, wantMean: 7, wantPopVar: 49.875, wantVar: 74.8125},
		{name: "pair", input: []float64{4.2, -0.8}, wantMean: 1.7, wantPopVar: 6.25, wantVar: 12.5},
		{name: "one_to_six", input: []float64{1, 2, 3, 4, 5, 6}, wantMean: 3.5, wantPopVar: 105.0 / 36.0, wantVar: 3.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := Of(tt.input)

			assert.Equal(t, uint64(len(tt.input)), m.Count())
			assert.InDelta(t, tt.wantMean, m.Mean().Value, tolerance)
			assert.InDelta(t, tt.wantPopVar, m.PopulationVariance().Value, tolerance)
			assert.InDelta(t, tt.wantVar, m.Variance().Value, tolerance)
			assert.InDelta(t, math.Sqrt(tt.wantVar), m.StdDev().Value, tolerance)
			assert.InDelta(t, math.Sqrt(tt.wantPopVar), m.PopulationStdDev().Value, tolerance)
		})
	}
}

func TestMoments_ConstantStream(t *testing.T) {
	t.Parallel()

	m := Of([]float64{5, 5, 5})

	assert.Equal(t, Defined(5), m.Mean())
	assert.Equal(t, Defined(0), m.Variance())
	assert.Equal(t, Defined(0), m.PopulationVariance())
	assert.False(t, m.Skewness().Defined)
	assert.False(t, m.PopulationKurtosis().Defined)
}

func TestMoments_ShapeNeedsEnoughObservations(t *testing.T) {
	t.Parallel()

	two := Of([]float64{1, 3})
	assert.True(t, two.PopulationSkewness().Defined)
	assert.False(t, two.Skewness().Defined)

	three := Of([]float64{1, 3, 7})
	assert.True(t, three.Skewness().Defined)
	assert.False(t, three.Kurtosis().Defined)
	assert.True(t, three.PopulationKurtosis().Defined)

	four := Of([]float64{1, 3, 7, 8})
	assert.True(t, four.Kurtosis().Defined)
}

func TestMoments_MatchesTwoPassReference(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(1, 2))
	values := make([]float64, 2000)

	for i := range values {
		values[i] = rng.ExpFloat64()*3 - 1
	}

	m := Of(values)

	assert.InDelta(t, stat.Mean(values, nil), m.Mean().Value, tolerance)
	assert.InEpsilon(t, stat.Variance(values, nil), m.Variance().Value, tolerance)
	assert.InEpsilon(t, stat.PopVariance(values, nil), m.PopulationVariance().Value, tolerance)
	assert.InEpsilon(t, stat.Skew(values, nil), m.Skewness().Value, 1e-7)
	assert.InEpsilon(t, stat.ExKurtosis(values, nil), m.Kurtosis().Value, 1e-7)

	n := float64(len(values))
	wantPopSkew := stat.Skew(values, nil) * (n - 2) / math.Sqrt(n*(n-1))
	assert.InEpsilon(t, wantPopSkew, m.PopulationSkewness().Value, 1e-7)
}

func TestMoments_LargeOffsetIsStable(t *testing.T) {
	t.Parallel()

	const offset = 1e9

	m := Of([]float64{offset + 4, offset + 7, offset + 13, offset + 16})

	assert.InDelta(t, offset+10, m.Mean().Value, 1e-6)
	assert.InDelta(t, 30, m.Variance().Value, 1e-6)
	assert.InDelta(t, 22.5, m.PopulationVariance().Value, 1e-6)
}

func TestMoments_PopulationVarianceNotAboveSample(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(7, 11))

	for n := 2; n < 50; n++ {
		m := &Moments{}

		for range n {
			m.Add(rng.NormFloat64() * 10)
		}

		assert.LessOrEqual(t, m.PopulationVariance().Value, m.Variance().Value, "n=%d", n)
	}
}

func TestMoments_NonFinitePropagates(t *testing.T) {
	t.Parallel()

	t.Run("nan", func(t *testing.T) {
		t.Parallel()

		m := Of([]float64{1, math.NaN(), 3})

		require.True(t, m.Mean().Defined)
		assert.True(t, math.IsNaN(m.Mean().Value))
		assert.True(t, math.IsNaN(m.Min().Value))
		assert.True(t, math.IsNaN(m.Max().Value))
		assert.True(t, math.IsNaN(m.Variance().Value))
		assert.Equal(t, "NaN", m.Mean().String())
	})

	t.Run("inf", func(t *testing.T) {
		t.Parallel()

		m := Of([]float64{1, math.Inf(1)})

		assert.True(t, math.IsInf(m.Mean().Value, 1))
		assert.True(t, math.IsInf(m.Max().Value, 1))
		assert.Equal(t, Defined(1), m.Min())

		v := m.Variance()
		require.True(t, v.Defined)
		assert.True(t, math.IsInf(v.Value, 0) || math.IsNaN(v.Value))
	})
}

func TestMoments_Merge(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(3, 5))
	values := make([]float64, 501)

	for i := range values {
		values[i] = rng.NormFloat64()*4 + 2
	}

	whole := Of(values)

	left := Of(values[:123])
	left.Merge(Of(values[123:]))

	assert.Equal(t, whole.Count(), left.Count())
	assert.Equal(t, whole.Min(), left.Min())
	assert.Equal(t, whole.Max(), left.Max())
	assert.InDelta(t, whole.Mean().Value, left.Mean().Value, tolerance)
	assert.InEpsilon(t, whole.Variance().Value, left.Variance().Value, tolerance)
	assert.InDelta(t, whole.Skewness().Value, left.Skewness().Value, 1e-7)
	assert.InDelta(t, whole.Kurtosis().Value, left.Kurtosis().Value, 1e-7)

	t.Run("into_empty", func(t *testing.T) {
		t.Parallel()

		empty := &Moments{}
		empty.Merge(whole)
		assert.Equal(t, *whole, *empty)
	})

	t.Run("from_empty", func(t *testing.T) {
		t.Parallel()

		m := Of([]float64{1, 2})
		m.Merge(&Moments{})
		assert.Equal(t, uint64(2), m.Count())
		assert.Equal(t, Defined(1.5), m.Mean())
	})
}
