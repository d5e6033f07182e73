package crbm

import "gorgonia.org/tensor"

// Buffer factories. Every returned tensor is freshly allocated at the
// layer's resolved dimensions and exclusively owned by the caller.

// OneInput returns a visible-shaped buffer (NC, NV1, NV2).
func (l *Layer) OneInput() *tensor.Dense {
	return tensor.New(tensor.Of(tensor.Float32), tensor.WithShape(l.NC, l.NV1, l.NV2))
}

// OneOutput returns a hidden-shaped buffer (K, NH1, NH2).
func (l *Layer) OneOutput() *tensor.Dense {
	return tensor.New(tensor.Of(tensor.Float32), tensor.WithShape(l.K, l.NH1, l.NH2))
}

// Outputs returns n independent hidden-shaped buffers.
func (l *Layer) Outputs(n int) []*tensor.Dense {
	retVal := make([]*tensor.Dense, n)
	for i := range retVal {
		retVal[i] = l.OneOutput()
	}
	return retVal
}

// InputBatch returns a (b, NC, NV1, NV2) buffer. b defaults to the
// configured batch size when non-positive.
func (l *Layer) InputBatch(b int) *tensor.Dense {
	if b <= 0 {
		b = l.BatchSize
	}
	return tensor.New(tensor.Of(tensor.Float32), tensor.WithShape(b, l.NC, l.NV1, l.NV2))
}

// OutputBatch returns a (b, K, NH1, NH2) buffer. b defaults to the
// configured batch size when non-positive.
func (l *Layer) OutputBatch(b int) *tensor.Dense {
	if b <= 0 {
		b = l.BatchSize
	}
	return tensor.New(tensor.Of(tensor.Float32), tensor.WithShape(b, l.K, l.NH1, l.NH2))
}
