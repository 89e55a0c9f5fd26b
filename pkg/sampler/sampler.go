// Package sampler draws pseudo-random values from common distributions.
//
// Every draw goes through a caller-owned [Source]; there is no package-level
// generator, so two samplers built from the same seed emit the same stream.
package sampler

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// ErrInvalidParameter is returned for a distribution parameter outside its domain.
var ErrInvalidParameter = errors.New("invalid distribution parameter")

// Source is a seedable pseudo-random generator.
type Source struct {
	src rand.Source
	rng *rand.Rand
}

// NewSource returns a PCG-backed Source. A zero seed draws a random seed.
func NewSource(seed uint64) *Source {
	if seed == 0 {
		seed = rand.Uint64() | 1
	}

	src := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)

	return &Source{src: src, rng: rand.New(src)}
}

// Sampler produces one value per call.
type Sampler interface {
	Sample() float64
}

// IntSampler is a Sampler whose values are always whole numbers.
type IntSampler interface {
	Sampler
	SampleInt() int64
}

type continuous struct {
	rander interface{ Rand() float64 }
}

func (c continuous) Sample() float64 { return c.rander.Rand() }

type integral struct {
	draw func() int64
}

func (i integral) Sample() float64  { return float64(i.draw()) }
func (i integral) SampleInt() int64 { return i.draw() }

func roundedDraw(rander interface{ Rand() float64 }) func() int64 {
	return func() int64 { return int64(math.Round(rander.Rand())) }
}

// Gaussian samples N(mean, variance).
func (s *Source) Gaussian(mean, variance float64) (Sampler, error) {
	if !(variance >= 0) || math.IsInf(variance, 0) || !isFinite(mean) {
		return nil, fmt.Errorf("%w: gaussian requires finite mean and variance >= 0, got mean=%v variance=%v",
			ErrInvalidParameter, mean, variance)
	}

	return continuous{rander: distuv.Normal{Mu: mean, Sigma: math.Sqrt(variance), Src: s.src}}, nil
}

// Exponential samples Exp(lambda).
func (s *Source) Exponential(lambda float64) (Sampler, error) {
	if !(lambda > 0) || math.IsInf(lambda, 0) {
		return nil, fmt.Errorf("%w: exponential requires lambda > 0, got %v", ErrInvalidParameter, lambda)
	}

	return continuous{rander: distuv.Exponential{Rate: lambda, Src: s.src}}, nil
}

// Poisson samples Pois(lambda).
func (s *Source) Poisson(lambda float64) (Sampler, error) {
	if !(lambda > 0) || math.IsInf(lambda, 0) {
		return nil, fmt.Errorf("%w: poisson requires lambda > 0, got %v", ErrInvalidParameter, lambda)
	}

	return integral{draw: roundedDraw(distuv.Poisson{Lambda: lambda, Src: s.src})}, nil
}

// Binomial samples Bin(trials, probability).
func (s *Source) Binomial(trials uint64, probability float64) (Sampler, error) {
	if !(probability >= 0 && probability <= 1) {
		return nil, fmt.Errorf("%w: binomial requires 0 <= p <= 1, got %v", ErrInvalidParameter, probability)
	}

	return integral{draw: roundedDraw(distuv.Binomial{N: float64(trials), P: probability, Src: s.src})}, nil
}

// Uniform samples the continuous uniform distribution over [lower, upper).
func (s *Source) Uniform(lower, upper float64) (Sampler, error) {
	if !isFinite(lower) || !isFinite(upper) || !(lower < upper) {
		return nil, fmt.Errorf("%w: uniform requires finite lower < upper, got [%v, %v)",
			ErrInvalidParameter, lower, upper)
	}

	return continuous{rander: distuv.Uniform{Min: lower, Max: upper, Src: s.src}}, nil
}

// DiscreteUniform samples integers uniformly from {lower, ..., upper}.
func (s *Source) DiscreteUniform(lower, upper int64) (Sampler, error) {
	if lower > upper {
		return nil, fmt.Errorf("%w: discrete uniform requires lower <= upper, got [%d, %d]",
			ErrInvalidParameter, lower, upper)
	}

	span := uint64(upper - lower)
	rng := s.rng

	return integral{draw: func() int64 {
		if span == math.MaxUint64 {
			return int64(rng.Uint64())
		}

		return lower + int64(rng.Uint64N(span+1))
	}}, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
