package crbm

import (
	"github.com/gorgonia/crbm/internal/conv"
	"github.com/gorgonia/crbm/internal/parallel"
	"github.com/gorgonia/crbm/internal/timing"
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
	"gorgonia.org/vecf32"
)

// ActivateVisible reconstructs the visible units from the hidden sample
// hS: probabilities (or Gaussian means) into vA and, when vS is non-nil,
// a stochastic sample into vS.
func (l *Layer) ActivateVisible(vA, vS, hS *tensor.Dense) error {
	defer timing.Scope("crbm.activate_visible")()

	hs := hS.Data().([]float32)
	va := vA.Data().([]float32)
	if len(hs) != l.OutputSize() {
		return errors.Errorf("crbm: hidden tensor has %d values, want %d", len(hs), l.OutputSize())
	}
	if len(va) != l.InputSize() {
		return errors.Errorf("crbm: visible tensor has %d values, want %d", len(va), l.InputSize())
	}

	conv.Full(va, hs, l.W.Data().([]float32), l.K, l.NH1, l.NH2, l.NC, l.nw1, l.nw2)
	l.visibleProbs(va)
	nanCheckDeep("visible probabilities", va)

	if vS != nil {
		vs := vS.Data().([]float32)
		l.sampleVisible(vs, va)
		nanCheckDeep("visible samples", vs)
	}
	return nil
}

// BatchActivateVisible is ActivateVisible over a leading batch axis.
func (l *Layer) BatchActivateVisible(vA, vS, hS *tensor.Dense) error {
	defer timing.Scope("crbm.batch_activate_visible")()

	batch := hS.Shape()[0]
	hs := hS.Data().([]float32)
	va := vA.Data().([]float32)
	if len(hs) != batch*l.OutputSize() {
		return errors.Errorf("crbm: hidden batch has %d values, want %d", len(hs), batch*l.OutputSize())
	}
	if len(va) != batch*l.InputSize() {
		return errors.Errorf("crbm: visible batch has %d values, want %d", len(va), batch*l.InputSize())
	}

	w := l.W.Data().([]float32)
	in, out := l.InputSize(), l.OutputSize()
	parallel.For(batch, l.Serial, func(i int) {
		vai := va[i*in : (i+1)*in]
		conv.Full(vai, hs[i*out:(i+1)*out], w, l.K, l.NH1, l.NH2, l.NC, l.nw1, l.nw2)
		l.visibleProbs(vai)
	})
	nanCheckDeep("visible probabilities", va)

	if vS != nil {
		vs := vS.Data().([]float32)
		l.sampleVisible(vs, va)
		nanCheckDeep("visible samples", vs)
	}
	return nil
}

// visibleProbs turns one sample's reconstruction pre-activation into
// probabilities (Binary) or means (Gaussian) in place.
func (l *Layer) visibleProbs(va []float32) {
	cs := l.C.Data().([]float32)
	spatial := l.NV1 * l.NV2
	for c := 0; c < l.NC; c++ {
		vecf32.Trans(va[c*spatial:(c+1)*spatial], cs[c])
	}

	if l.Visible == Binary {
		for i, x := range va {
			va[i] = sigmoid(x)
		}
	}
	// Gaussian visible units keep the raw pre-activation as the mean
}

func (l *Layer) sampleVisible(vs, va []float32) {
	switch l.Visible {
	case Binary:
		for i := range vs {
			vs[i] = l.src.Bernoulli(va[i])
		}
	case Gaussian:
		for i := range vs {
			vs[i] = l.src.Normal(va[i])
		}
	}
}
