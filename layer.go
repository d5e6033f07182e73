package crbm

import (
	"fmt"

	"github.com/gorgonia/crbm/internal/noise"
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// Layer is a single convolutional RBM layer, following the definition of
// a CRBM by Honglak Lee. It owns the weight and bias tensors and one set
// of phase buffers for a Gibbs chain; the training driver mutates the
// parameters, the activation engines only read them.
type Layer struct {
	Config

	W *tensor.Dense // shared filters (K, NC, nw1, nw2)
	B *tensor.Dense // hidden biases (K)
	C *tensor.Dense // visible biases (NC)

	// exclusive parameter copies for momentum rollback. Absent until
	// BackupParams is first called.
	bakW, bakB, bakC *tensor.Dense

	V1 *tensor.Dense // visible units

	H1A *tensor.Dense // hidden activation probabilities
	H1S *tensor.Dense // sampled hidden values

	V2A *tensor.Dense // reconstructed visible probabilities
	V2S *tensor.Dense // sampled reconstructed visible values

	H2A *tensor.Dense // reconstructed hidden probabilities
	H2S *tensor.Dense // sampled reconstructed hidden values

	nw1, nw2 int // filter dimensions, derived by Init

	src  *noise.Source
	grad *GradContext // shared with the training driver, not owned
}

// New returns an uninitialized layer. The unit pairing is checked here;
// no activation entry point can be reached with units that have no
// formula. Call Init to allocate and initialize the buffers.
func New(conf Config) (*Layer, error) {
	if err := checkUnits(conf.Hidden, conf.Visible); err != nil {
		return nil, err
	}
	if conf.BatchSize <= 0 {
		conf.BatchSize = 25
	}
	return &Layer{Config: conf}, nil
}

// Init derives the filter dimensions, allocates every parameter and phase
// buffer at its exact shape, and draws fresh initial parameters.
// Re-invoking reshapes and re-randomizes the layer.
func (l *Layer) Init() {
	l.nw1 = l.NV1 - l.NH1 + 1
	l.nw2 = l.NV2 - l.NH2 + 1

	l.src = noise.New(l.Seed)

	wb := make([]float32, l.K*l.NC*l.nw1*l.nw2)
	for i := range wb {
		wb[i] = l.src.Gaussian(0, 0.01)
	}
	bb := make([]float32, l.K)
	if !l.Hidden.IsReLU() {
		// a slightly negative hidden bias encourages sparse activation
		// of logistic units
		for i := range bb {
			bb[i] = -0.1
		}
	}
	cb := make([]float32, l.NC)

	l.W = tensor.New(tensor.WithShape(l.K, l.NC, l.nw1, l.nw2), tensor.WithBacking(wb))
	l.B = tensor.New(tensor.WithShape(l.K), tensor.WithBacking(bb))
	l.C = tensor.New(tensor.WithShape(l.NC), tensor.WithBacking(cb))

	l.V1 = l.OneInput()

	l.H1A = l.OneOutput()
	l.H1S = l.OneOutput()

	l.V2A = l.OneInput()
	l.V2S = l.OneInput()

	l.H2A = l.OneOutput()
	l.H2S = l.OneOutput()
}

// InputSize is the number of visible units.
func (l *Layer) InputSize() int { return l.NC * l.NV1 * l.NV2 }

// OutputSize is the number of hidden units.
func (l *Layer) OutputSize() int { return l.K * l.NH1 * l.NH2 }

// Parameters is the number of weights in the filter bank.
func (l *Layer) Parameters() int { return l.NC * l.K * l.nw1 * l.nw2 }

// KernelDims returns the derived filter dimensions.
func (l *Layer) KernelDims() (nw1, nw2 int) { return l.nw1, l.nw2 }

func (l *Layer) String() string {
	return fmt.Sprintf("CRBM(%v): %dx%dx%d -> (%dx%d) -> %dx%dx%d",
		l.Hidden, l.NV1, l.NV2, l.NC, l.nw1, l.nw2, l.NH1, l.NH2, l.K)
}

// BackupParams copies the parameters into the layer's backup buffers,
// creating them on first use. The copies never alias the live parameters.
func (l *Layer) BackupParams() {
	l.bakW = l.W.Clone().(*tensor.Dense)
	l.bakB = l.B.Clone().(*tensor.Dense)
	l.bakC = l.C.Clone().(*tensor.Dense)
}

// RestoreParams rolls the parameters back to the last backup.
func (l *Layer) RestoreParams() error {
	if l.bakW == nil {
		return errors.New("crbm: no parameter backup to restore")
	}
	copy(l.W.Data().([]float32), l.bakW.Data().([]float32))
	copy(l.B.Data().([]float32), l.bakB.Data().([]float32))
	copy(l.C.Data().([]float32), l.bakC.Data().([]float32))
	return nil
}
