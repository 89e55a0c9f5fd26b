package commands

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/samplers/pkg/sampler"
	"github.com/Sumatoshi-tech/samplers/pkg/stream"
)

// Uniform flavours.
const (
	UniformContinuous = "continuous"
	UniformDiscrete   = "discrete"
)

// ErrInvalidUniformType is returned for a --type outside continuous and discrete.
var ErrInvalidUniformType = errors.New("unknown uniform type")

const defaultNumExperiments = 1

// samplerFactory builds a sampler from the command's generator.
type samplerFactory func(src *sampler.Source) (sampler.Sampler, error)

// generator holds the flag shared by every sampling command.
type generator struct {
	num uint64
}

func (g *generator) bind(cmd *cobra.Command) {
	cmd.Flags().Uint64VarP(&g.num, "num-experiments", "N", defaultNumExperiments,
		"Number of values to draw (0 = until stdout closes)")
}

// run draws g.num values, or an unbounded stream for zero, and writes them to stdout.
func (g *generator) run(cmd *cobra.Command, build samplerFactory) error {
	return instrument(cmd, func(ctx context.Context, rt *Runtime) (uint64, error) {
		s, err := build(sampler.NewSource(rt.Config.Sampler.Seed))
		if err != nil {
			return 0, err
		}

		rt.Logger.DebugContext(ctx, "sampling", "num", g.num, "seed", rt.Config.Sampler.Seed)

		out := stream.NewWriter(cmd.OutOrStdout())
		emit := func() error { return out.WriteValue(s.Sample()) }

		if is, ok := s.(sampler.IntSampler); ok {
			emit = func() error { return out.WriteInt(is.SampleInt()) }
		}

		var drawn uint64

		for g.num == 0 || drawn < g.num {
			err = emit()
			if err != nil {
				return drawn, err
			}

			drawn++
		}

		return drawn, out.Flush()
	})
}

// NewGaussianCommand creates the gaussian command.
func NewGaussianCommand() *cobra.Command {
	var (
		gen      generator
		mean     float64
		variance float64
	)

	cmd := &cobra.Command{
		Use:   "gaussian",
		Short: "Draw from a normal distribution",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return gen.run(cmd, func(src *sampler.Source) (sampler.Sampler, error) {
				return src.Gaussian(mean, variance)
			})
		},
	}

	gen.bind(cmd)
	cmd.Flags().Float64VarP(&mean, "mean", "m", 0, "Mean")
	cmd.Flags().Float64VarP(&variance, "variance", "v", 1, "Variance")

	return cmd
}

// NewPoissonCommand creates the poisson command.
func NewPoissonCommand() *cobra.Command {
	var (
		gen    generator
		lambda float64
	)

	cmd := &cobra.Command{
		Use:   "poisson",
		Short: "Draw integers from a Poisson distribution",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return gen.run(cmd, func(src *sampler.Source) (sampler.Sampler, error) {
				return src.Poisson(lambda)
			})
		},
	}

	gen.bind(cmd)
	cmd.Flags().Float64VarP(&lambda, "lambda", "l", 1, "Rate")

	return cmd
}

// NewExponentialCommand creates the exponential command.
func NewExponentialCommand() *cobra.Command {
	var (
		gen    generator
		lambda float64
	)

	cmd := &cobra.Command{
		Use:   "exponential",
		Short: "Draw from an exponential distribution",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return gen.run(cmd, func(src *sampler.Source) (sampler.Sampler, error) {
				return src.Exponential(lambda)
			})
		},
	}

	gen.bind(cmd)
	cmd.Flags().Float64VarP(&lambda, "lambda", "l", 1, "Rate")

	return cmd
}

// NewUniformCommand creates the uniform command.
func NewUniformCommand() *cobra.Command {
	var (
		gen          generator
		lower, upper float64
		kind         string
	)

	cmd := &cobra.Command{
		Use:   "uniform",
		Short: "Draw from a continuous or discrete uniform distribution",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return gen.run(cmd, func(src *sampler.Source) (sampler.Sampler, error) {
				switch kind {
				case UniformContinuous:
					return src.Uniform(lower, upper)
				case UniformDiscrete:
					return discreteUniform(src, lower, upper)
				default:
					return nil, fmt.Errorf("%w: %q", ErrInvalidUniformType, kind)
				}
			})
		},
	}

	gen.bind(cmd)
	cmd.Flags().Float64VarP(&lower, "lower", "a", 0, "Lower bound")
	cmd.Flags().Float64VarP(&upper, "upper", "b", 1, "Upper bound")
	cmd.Flags().StringVarP(&kind, "type", "t", UniformContinuous, "Distribution type: continuous, discrete")

	return cmd
}

func discreteUniform(src *sampler.Source, lower, upper float64) (sampler.Sampler, error) {
	if !isInt64(lower) || !isInt64(upper) {
		return nil, fmt.Errorf("%w: discrete uniform bounds must be integers, got [%v, %v]",
			sampler.ErrInvalidParameter, lower, upper)
	}

	return src.DiscreteUniform(int64(lower), int64(upper))
}

func isInt64(v float64) bool {
	return v == math.Trunc(v) && v >= math.MinInt64 && v < math.MaxInt64
}

// NewBinomialCommand creates the binomial command.
func NewBinomialCommand() *cobra.Command {
	var (
		gen         generator
		trials      uint64
		probability float64
	)

	cmd := &cobra.Command{
		Use:   "binomial",
		Short: "Draw success counts from a binomial distribution",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return gen.run(cmd, func(src *sampler.Source) (sampler.Sampler, error) {
				return src.Binomial(trials, probability)
			})
		},
	}

	gen.bind(cmd)
	cmd.Flags().Uint64VarP(&trials, "num-trials", "n", 1, "Number of trials")
	cmd.Flags().Float64VarP(&probability, "probability", "p", 0.5, "Success probability")

	return cmd
}
