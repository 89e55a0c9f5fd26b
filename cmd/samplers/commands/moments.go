package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/samplers/pkg/alg/stats"
)

// Variance flavours.
const (
	VariancePopulation = "population"
	VarianceSample     = "sample"
)

// ErrInvalidVarianceType is returned for a --type outside population and sample.
var ErrInvalidVarianceType = errors.New("unknown variance type")

// NewMeanCommand creates the mean command.
func NewMeanCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mean [file...]",
		Short: "Print the mean of the numbers in the files or on stdin",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return instrument(cmd, func(_ context.Context, _ *Runtime) (uint64, error) {
				m, err := accumulate(cmd, args)
				if err != nil {
					return m.Count(), err
				}

				return m.Count(), writeStatistic(cmd.OutOrStdout(), m.Mean())
			})
		},
	}
}

// VarianceCommand prints a single variance.
type VarianceCommand struct {
	kind string
}

// NewVarianceCommand creates the variance command.
func NewVarianceCommand() *cobra.Command {
	vc := &VarianceCommand{}

	cmd := &cobra.Command{
		Use:   "variance [file...]",
		Short: "Print the variance of the numbers in the files or on stdin",
		Args:  cobra.ArbitraryArgs,
		RunE:  vc.run,
	}

	cmd.Flags().StringVarP(&vc.kind, "type", "t", VariancePopulation, "Variance type: population, sample")

	return cmd
}

func (vc *VarianceCommand) run(cmd *cobra.Command, args []string) error {
	if !slices.Contains([]string{VariancePopulation, VarianceSample}, vc.kind) {
		return fmt.Errorf("%w: %q", ErrInvalidVarianceType, vc.kind)
	}

	return instrument(cmd, func(_ context.Context, _ *Runtime) (uint64, error) {
		m, err := accumulate(cmd, args)
		if err != nil {
			return m.Count(), err
		}

		v := m.PopulationVariance()
		if vc.kind == VarianceSample {
			v = m.Variance()
		}

		return m.Count(), writeStatistic(cmd.OutOrStdout(), v)
	})
}

func writeStatistic(w io.Writer, s stats.Statistic) error {
	_, err := fmt.Fprintln(w, s.String())
	if err != nil {
		return fmt.Errorf("write result: %w", err)
	}

	return nil
}
