package crbm

import (
	"github.com/gorgonia/crbm/internal/conv"
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
	"gorgonia.org/vecf32"
)

// Energy computes the joint energy E(v, h) of a visible/hidden
// configuration. Closed forms exist for Binary/Binary and
// Gaussian(visible)/Binary(hidden) layers, following Honglak Lee:
//
//	E(v,h) = - Σ_k h_k·(W_k * v) - Σ_k b_k Σ h_k - c Σ v          (Binary)
//	E(v,h) = - Σ_k h_k·(W_k * v) - Σ_k b_k Σ h_k - Σ (v-c)²/2     (Gaussian)
//
// Every other pairing returns 0: no formula has been derived for it, and
// the value is not meaningful.
func (l *Layer) Energy(v, h *tensor.Dense) (float32, error) {
	vd, err := l.canonical(v)
	if err != nil {
		return 0, err
	}
	hd := h.Data().([]float32)
	if len(hd) != l.OutputSize() {
		return 0, errors.Errorf("crbm: hidden tensor has %d values, want %d", len(hd), l.OutputSize())
	}

	pre := make([]float32, l.OutputSize())
	conv.ValidFlipped(pre, vd, l.W.Data().([]float32), l.NC, l.NV1, l.NV2, l.K, l.nw1, l.nw2)

	switch {
	case l.Visible == Binary && l.Hidden == Binary:
		return -l.visibleBiasTerm(vd) - l.hiddenBiasTerm(hd) - dot(hd, pre), nil
	case l.Visible == Gaussian && l.Hidden == Binary:
		return -l.quadraticTerm(vd) - l.hiddenBiasTerm(hd) - dot(hd, pre), nil
	default:
		return 0, nil
	}
}

// FreeEnergy computes the marginal free energy F(v) analytically, summing
// the softplus of the hidden pre-activation instead of enumerating hidden
// states. Defined for the same two pairings as Energy, 0 otherwise.
func (l *Layer) FreeEnergy(v *tensor.Dense) (float32, error) {
	vd, err := l.canonical(v)
	if err != nil {
		return 0, err
	}
	return l.freeEnergy(vd), nil
}

// FreeEnergyV1 evaluates the free energy of the layer's own current
// visible buffer.
func (l *Layer) FreeEnergyV1() float32 {
	return l.freeEnergy(l.V1.Data().([]float32))
}

func (l *Layer) freeEnergy(vd []float32) float32 {
	pre := make([]float32, l.OutputSize())
	conv.ValidFlipped(pre, vd, l.W.Data().([]float32), l.NC, l.NV1, l.NV2, l.K, l.nw1, l.nw2)

	bs := l.B.Data().([]float32)
	spatial := l.NH1 * l.NH2
	for q := 0; q < l.K; q++ {
		vecf32.Trans(pre[q*spatial:(q+1)*spatial], bs[q])
	}

	var sp float64
	for _, x := range pre {
		sp += float64(softplus(x))
	}

	switch {
	case l.Visible == Binary && l.Hidden == Binary:
		return -l.visibleBiasTerm(vd) - float32(sp)
	case l.Visible == Gaussian && l.Hidden == Binary:
		return -l.quadraticTerm(vd) - float32(sp)
	default:
		return 0
	}
}

// canonical views v as one flat visible sample, whatever shape the caller
// stored it in.
func (l *Layer) canonical(v *tensor.Dense) ([]float32, error) {
	data, ok := v.Data().([]float32)
	if !ok {
		return nil, errors.Errorf("crbm: want float32 backing, got %T", v.Data())
	}
	if len(data) != l.InputSize() {
		return nil, errors.Errorf("crbm: input has %d values, want %d", len(data), l.InputSize())
	}
	return data, nil
}

// PrepareInput copies a flat sample into a canonically shaped
// (NC, NV1, NV2) tensor.
func (l *Layer) PrepareInput(data []float32) (*tensor.Dense, error) {
	if len(data) != l.InputSize() {
		return nil, errors.Errorf("crbm: input has %d values, want %d", len(data), l.InputSize())
	}
	backing := make([]float32, len(data))
	copy(backing, data)
	return tensor.New(tensor.WithShape(l.NC, l.NV1, l.NV2), tensor.WithBacking(backing)), nil
}

// visibleBiasTerm is Σ_c c_c · Σ_spatial v_c.
func (l *Layer) visibleBiasTerm(vd []float32) float32 {
	cs := l.C.Data().([]float32)
	spatial := l.NV1 * l.NV2
	var acc float64
	for c := 0; c < l.NC; c++ {
		var s float64
		for _, x := range vd[c*spatial : (c+1)*spatial] {
			s += float64(x)
		}
		acc += float64(cs[c]) * s
	}
	return float32(acc)
}

// hiddenBiasTerm is Σ_k b_k · Σ_spatial h_k.
func (l *Layer) hiddenBiasTerm(hd []float32) float32 {
	bs := l.B.Data().([]float32)
	spatial := l.NH1 * l.NH2
	var acc float64
	for q := 0; q < l.K; q++ {
		var s float64
		for _, x := range hd[q*spatial : (q+1)*spatial] {
			s += float64(x)
		}
		acc += float64(bs[q]) * s
	}
	return float32(acc)
}

// quadraticTerm is Σ (v - c)²/2, the Gaussian visible energy term.
func (l *Layer) quadraticTerm(vd []float32) float32 {
	cs := l.C.Data().([]float32)
	spatial := l.NV1 * l.NV2
	var acc float64
	for c := 0; c < l.NC; c++ {
		for _, x := range vd[c*spatial : (c+1)*spatial] {
			d := float64(x - cs[c])
			acc += d * d / 2
		}
	}
	return float32(acc)
}

func dot(a, b []float32) float32 {
	var acc float64
	for i := range a {
		acc += float64(a[i]) * float64(b[i])
	}
	return float32(acc)
}
