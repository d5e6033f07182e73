package crbm

import "gorgonia.org/tensor"

// GradContext holds the gradient and momentum buffers a training driver
// accumulates into between parameter updates. The layer never writes to
// it; it exists so the driver and the layer can be wired together by
// whoever composes the network.
type GradContext struct {
	DW, DB, DC *tensor.Dense // gradients, shaped like W, B, C
	VW, VB, VC *tensor.Dense // velocity, for momentum updates
}

// InitGradContext allocates a gradient context shaped for this layer's
// parameters and attaches it. The context is shared: the driver and the
// layer both hold it, and neither owns its lifetime exclusively.
func (l *Layer) InitGradContext() *GradContext {
	g := &GradContext{
		DW: tensor.New(tensor.Of(tensor.Float32), tensor.WithShape(l.K, l.NC, l.nw1, l.nw2)),
		DB: tensor.New(tensor.Of(tensor.Float32), tensor.WithShape(l.K)),
		DC: tensor.New(tensor.Of(tensor.Float32), tensor.WithShape(l.NC)),
		VW: tensor.New(tensor.Of(tensor.Float32), tensor.WithShape(l.K, l.NC, l.nw1, l.nw2)),
		VB: tensor.New(tensor.Of(tensor.Float32), tensor.WithShape(l.K)),
		VC: tensor.New(tensor.Of(tensor.Float32), tensor.WithShape(l.NC)),
	}
	l.grad = g
	return g
}

// GradCtx returns the attached gradient context, or nil before
// InitGradContext has been called.
func (l *Layer) GradCtx() *GradContext { return l.grad }
