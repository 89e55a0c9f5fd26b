package stats

import (
	"fmt"
	"io"
	"strconv"
)

// Report labels, in output order.
const (
	LabelCount              = "Count"
	LabelMinimum            = "Minimum"
	LabelMaximum            = "Maximum"
	LabelMean               = "Mean"
	LabelVariance           = "Variance"
	LabelStdDev             = "Standard deviation"
	LabelSkewness           = "Skewness"
	LabelKurtosis           = "Kurtosis"
	LabelPopulationVariance = "Population variance"
	LabelPopulationStdDev   = "Population standard deviation"
	LabelPopulationSkewness = "Population skewness"
	LabelPopulationKurtosis = "Population kurtosis"
)

// Summary is a snapshot of every statistic derived from a [Moments].
type Summary struct {
	Count              uint64    `json:"count"                         yaml:"count"`
	Minimum            Statistic `json:"minimum"                       yaml:"minimum"`
	Maximum            Statistic `json:"maximum"                       yaml:"maximum"`
	Mean               Statistic `json:"mean"                          yaml:"mean"`
	Variance           Statistic `json:"variance"                      yaml:"variance"`
	StdDev             Statistic `json:"standard_deviation"            yaml:"standard_deviation"`
	Skewness           Statistic `json:"skewness"                      yaml:"skewness"`
	Kurtosis           Statistic `json:"kurtosis"                      yaml:"kurtosis"`
	PopulationVariance Statistic `json:"population_variance"           yaml:"population_variance"`
	PopulationStdDev   Statistic `json:"population_standard_deviation" yaml:"population_standard_deviation"`
	PopulationSkewness Statistic `json:"population_skewness"           yaml:"population_skewness"`
	PopulationKurtosis Statistic `json:"population_kurtosis"           yaml:"population_kurtosis"`
}

// Field is one labelled line of a summary report.
type Field struct {
	Label string
	Value string
}

// Summarize derives a Summary from m.
func Summarize(m *Moments) Summary {
	return Summary{
		Count:              m.Count(),
		Minimum:            m.Min(),
		Maximum:            m.Max(),
		Mean:               m.Mean(),
		Variance:           m.Variance(),
		StdDev:             m.StdDev(),
		Skewness:           m.Skewness(),
		Kurtosis:           m.Kurtosis(),
		PopulationVariance: m.PopulationVariance(),
		PopulationStdDev:   m.PopulationStdDev(),
		PopulationSkewness: m.PopulationSkewness(),
		PopulationKurtosis: m.PopulationKurtosis(),
	}
}

// Fields returns the summary as labelled, formatted values in report order.
func (s Summary) Fields() []Field {
	return []Field{
		{LabelCount, strconv.FormatUint(s.Count, 10)},
		{LabelMinimum, s.Minimum.String()},
		{LabelMaximum, s.Maximum.String()},
		{LabelMean, s.Mean.String()},
		{LabelVariance, s.Variance.String()},
		{LabelStdDev, s.StdDev.String()},
		{LabelSkewness, s.Skewness.String()},
		{LabelKurtosis, s.Kurtosis.String()},
		{LabelPopulationVariance, s.PopulationVariance.String()},
		{LabelPopulationStdDev, s.PopulationStdDev.String()},
		{LabelPopulationSkewness, s.PopulationSkewness.String()},
		{LabelPopulationKurtosis, s.PopulationKurtosis.String()},
	}
}

// WriteTo writes one "Label: value" line per statistic.
func (s Summary) WriteTo(w io.Writer) (int64, error) {
	var total int64

	for _, f := range s.Fields() {
		n, err := fmt.Fprintf(w, "%s: %s\n", f.Label, f.Value)
		total += int64(n)

		if err != nil {
			return total, fmt.Errorf("write %s: %w", f.Label, err)
		}
	}

	return total, nil
}
