// Package crbm implements the computational core of a convolutional
// restricted Boltzmann machine: the visible-to-hidden and hidden-to-visible
// activation passes, the stochastic sampling used during training, and the
// energy functions used to monitor convergence. The contrastive divergence
// driver that updates the weights sits outside this package; it drives the
// activation entry points and reads the phase buffers.
package crbm

import (
	"github.com/chewxy/math32"
	"github.com/pkg/errors"
)

// UnitType is the distribution/activation family assumed for a layer's units.
type UnitType byte

const (
	Binary UnitType = iota
	Gaussian
	ReLU
	ReLU6
	ReLU1
)

func (u UnitType) String() string {
	switch u {
	case Binary:
		return "Binary"
	case Gaussian:
		return "Gaussian"
	case ReLU:
		return "ReLU"
	case ReLU6:
		return "ReLU6"
	case ReLU1:
		return "ReLU1"
	}
	return "Unknown"
}

// IsReLU reports whether u is one of the rectified linear families.
func (u UnitType) IsReLU() bool { return u == ReLU || u == ReLU6 || u == ReLU1 }

// checkUnits rejects unit pairings that no activation formula covers.
// Hidden units must be Binary or a ReLU family; visible units must be
// Binary or Gaussian.
func checkUnits(hidden, visible UnitType) error {
	if hidden != Binary && !hidden.IsReLU() {
		return errors.Errorf("crbm: invalid hidden unit type %v", hidden)
	}
	if visible != Binary && visible != Gaussian {
		return errors.Errorf("crbm: invalid visible unit type %v", visible)
	}
	return nil
}

// gaussianSigma is the assumed standard deviation of Gaussian visible
// units; hidden pre-activations are scaled by 1/σ².
const gaussianSigma = 0.1

func sigmoid(x float32) float32 {
	return 1 / (1 + math32.Exp(-x))
}

// softplus computes log(1+exp(x)). Large x shortcut keeps the float32
// exp from overflowing.
func softplus(x float32) float32 {
	if x > 30 {
		return x
	}
	return math32.Log1p(math32.Exp(x))
}
