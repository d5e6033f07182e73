package crbm

import (
	"github.com/gorgonia/crbm/internal/conv"
	"github.com/gorgonia/crbm/internal/parallel"
	"github.com/gorgonia/crbm/internal/timing"
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
	"gorgonia.org/vecf32"
)

// ActivateHidden computes the hidden activation probabilities for the
// visible tensor v into hA and, when hS is non-nil, a stochastic sample
// into hS. The probabilities are always computed before the sample; the
// sample is a function of them.
func (l *Layer) ActivateHidden(hA, hS, v *tensor.Dense) error {
	defer timing.Scope("crbm.activate_hidden")()

	va := v.Data().([]float32)
	ha := hA.Data().([]float32)
	if len(va) != l.InputSize() {
		return errors.Errorf("crbm: visible tensor has %d values, want %d", len(va), l.InputSize())
	}
	if len(ha) != l.OutputSize() {
		return errors.Errorf("crbm: hidden tensor has %d values, want %d", len(ha), l.OutputSize())
	}

	conv.ValidFlipped(ha, va, l.W.Data().([]float32), l.NC, l.NV1, l.NV2, l.K, l.nw1, l.nw2)
	l.hiddenProbs(ha)
	nanCheckDeep("hidden probabilities", ha)

	if hS != nil {
		hs := hS.Data().([]float32)
		l.sampleHidden(hs, ha)
		nanCheckDeep("hidden samples", hs)
	}
	return nil
}

// BatchActivateHidden is ActivateHidden over a leading batch axis. The
// per-sample passes are distributed over the worker pool unless the layer
// is configured serial; sampling is drawn serially afterwards.
func (l *Layer) BatchActivateHidden(hA, hS, v *tensor.Dense) error {
	defer timing.Scope("crbm.batch_activate_hidden")()

	batch := hA.Shape()[0]
	va := v.Data().([]float32)
	ha := hA.Data().([]float32)
	if len(va) != batch*l.InputSize() {
		return errors.Errorf("crbm: visible batch has %d values, want %d", len(va), batch*l.InputSize())
	}
	if len(ha) != batch*l.OutputSize() {
		return errors.Errorf("crbm: hidden batch has %d values, want %d", len(ha), batch*l.OutputSize())
	}

	w := l.W.Data().([]float32)
	in, out := l.InputSize(), l.OutputSize()
	parallel.For(batch, l.Serial, func(i int) {
		hai := ha[i*out : (i+1)*out]
		conv.ValidFlipped(hai, va[i*in:(i+1)*in], w, l.NC, l.NV1, l.NV2, l.K, l.nw1, l.nw2)
		l.hiddenProbs(hai)
	})
	nanCheckDeep("hidden probabilities", ha)

	if hS != nil {
		hs := hS.Data().([]float32)
		l.sampleHidden(hs, ha)
		nanCheckDeep("hidden samples", hs)
	}
	return nil
}

// hiddenProbs turns one sample's pre-activation into probabilities in
// place: hidden bias broadcast over the spatial dimensions, then the
// nonlinearity of the configured hidden unit family.
func (l *Layer) hiddenProbs(ha []float32) {
	bs := l.B.Data().([]float32)
	spatial := l.NH1 * l.NH2
	for q := 0; q < l.K; q++ {
		vecf32.Trans(ha[q*spatial:(q+1)*spatial], bs[q])
	}

	switch l.Hidden {
	case Binary:
		if l.Visible == Gaussian {
			// Gaussian visible units assume σ=0.1, so the pre-activation
			// is scaled by the precision 1/σ²
			vecf32.Scale(ha, 1/(gaussianSigma*gaussianSigma))
		}
		for i, x := range ha {
			ha[i] = sigmoid(x)
		}
	case ReLU:
		for i, x := range ha {
			if x < 0 {
				ha[i] = 0
			}
		}
	case ReLU6:
		clamp(ha, 6)
	case ReLU1:
		clamp(ha, 1)
	}
}

func (l *Layer) sampleHidden(hs, ha []float32) {
	switch l.Hidden {
	case Binary:
		for i := range hs {
			hs[i] = l.src.Bernoulli(ha[i])
		}
	case ReLU:
		// Noise is applied to the already rectified probability and
		// floored again: an approximation of the NReLU Gibbs step, not
		// the exact one.
		for i := range hs {
			if x := l.src.LogisticNoise(ha[i]); x > 0 {
				hs[i] = x
			} else {
				hs[i] = 0
			}
		}
	case ReLU6:
		for i := range hs {
			hs[i] = l.src.Ranged(ha[i], 6)
		}
	case ReLU1:
		for i := range hs {
			hs[i] = l.src.Ranged(ha[i], 1)
		}
	}
}

func clamp(xs []float32, hi float32) {
	for i, x := range xs {
		switch {
		case x < 0:
			xs[i] = 0
		case x > hi:
			xs[i] = hi
		}
	}
}
