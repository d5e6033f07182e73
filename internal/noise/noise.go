// Package noise wraps the go_rng generators behind the samplers the CRBM
// layer draws from.
package noise

import (
	"time"

	"github.com/chewxy/math32"
	rng "github.com/leesper/go_rng"
)

// Source draws every stochastic value used during sampling. It is not
// safe for concurrent use; sampling passes are serialized by the caller.
type Source struct {
	gauss *rng.GaussianGenerator
	uni   *rng.UniformGenerator
}

// New returns a Source seeded with seed, or from the clock when seed is 0.
func New(seed int64) *Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Source{
		gauss: rng.NewGaussianGenerator(seed),
		uni:   rng.NewUniformGenerator(seed + 1),
	}
}

// Bernoulli returns 1 with probability p, 0 otherwise.
func (s *Source) Bernoulli(p float32) float32 {
	if s.uni.Float32() < p {
		return 1
	}
	return 0
}

// Gaussian draws from a normal distribution around mean.
func (s *Source) Gaussian(mean, stddev float32) float32 {
	return float32(s.gauss.Gaussian(float64(mean), float64(stddev)))
}

// Normal perturbs mean with unit-variance gaussian noise.
func (s *Source) Normal(mean float32) float32 {
	return s.Gaussian(mean, 1)
}

// LogisticNoise perturbs x with gaussian noise whose spread is the
// logistic of x (the NReLU sampling rule of Nair & Hinton).
func (s *Source) LogisticNoise(x float32) float32 {
	return x + s.Gaussian(0, 1/(1+math32.Exp(-x)))
}

// Ranged adds uniform noise to x and clips the result to [0, r].
func (s *Source) Ranged(x, r float32) float32 {
	y := x + s.uni.Float32Range(-0.5, 0.5)
	if y < 0 {
		return 0
	}
	if y > r {
		return r
	}
	return y
}
