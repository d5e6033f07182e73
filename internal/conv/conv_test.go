package conv

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	G "gorgonia.org/gorgonia"
	nnops "gorgonia.org/gorgonia/ops/nn"
	"gorgonia.org/tensor"
)

func TestValidFlippedHandComputed(t *testing.T) {
	// 1 channel, 3x3 input, 1 filter, 2x2 kernel
	in := []float32{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	}
	w := []float32{
		1, 0,
		0, 2,
	}
	out := make([]float32, 4)
	ValidFlipped(out, in, w, 1, 3, 3, 1, 2, 2)

	want := []float32{
		1 + 2*5, 2 + 2*6,
		4 + 2*8, 5 + 2*9,
	}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("valid correlation mismatch (-want +got):\n%s", diff)
	}
}

func TestFullHandComputed(t *testing.T) {
	// one 1x1 hidden map scatters the kernel scaled by its value
	h := []float32{2}
	w := []float32{
		1, 2,
		3, 4,
	}
	out := make([]float32, 4)
	Full(out, h, w, 1, 1, 1, 1, 2, 2)

	want := []float32{2, 4, 6, 8}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("full convolution mismatch (-want +got):\n%s", diff)
	}
}

// Full is the transpose of ValidFlipped: ⟨ValidFlipped(v), h⟩ must equal
// ⟨v, Full(h)⟩ for any v and h.
func TestFullIsAdjointOfValidFlipped(t *testing.T) {
	nc, nv1, nv2 := 2, 6, 5
	k, nw1, nw2 := 3, 3, 2
	nh1, nh2 := nv1-nw1+1, nv2-nw2+1

	r := rand.New(rand.NewSource(99))
	v := make([]float32, nc*nv1*nv2)
	for i := range v {
		v[i] = r.Float32() - 0.5
	}
	w := make([]float32, k*nc*nw1*nw2)
	for i := range w {
		w[i] = r.Float32() - 0.5
	}
	h := make([]float32, k*nh1*nh2)
	for i := range h {
		h[i] = r.Float32() - 0.5
	}

	fwd := make([]float32, k*nh1*nh2)
	ValidFlipped(fwd, v, w, nc, nv1, nv2, k, nw1, nw2)
	bwd := make([]float32, nc*nv1*nv2)
	Full(bwd, h, w, k, nh1, nh2, nc, nw1, nw2)

	var lhs, rhs float64
	for i := range fwd {
		lhs += float64(fwd[i]) * float64(h[i])
	}
	for i := range bwd {
		rhs += float64(bwd[i]) * float64(v[i])
	}
	if diff := lhs - rhs; diff > 1e-3 || diff < -1e-3 {
		t.Errorf("adjoint property violated: ⟨Wv,h⟩=%v ⟨v,Wᵀh⟩=%v", lhs, rhs)
	}
}

// Cross-check the hand-written kernel against gorgonia's Conv2d on a
// batch of one.
func TestValidFlippedMatchesGorgonia(t *testing.T) {
	nc, nv1, nv2 := 2, 5, 6
	k, nw1, nw2 := 3, 2, 3
	nh1, nh2 := nv1-nw1+1, nv2-nw2+1

	r := rand.New(rand.NewSource(1337))
	in := make([]float32, nc*nv1*nv2)
	for i := range in {
		in[i] = r.Float32() - 0.5
	}
	w := make([]float32, k*nc*nw1*nw2)
	for i := range w {
		w[i] = r.Float32() - 0.5
	}

	out := make([]float32, k*nh1*nh2)
	ValidFlipped(out, in, w, nc, nv1, nv2, k, nw1, nw2)

	g := G.NewGraph()
	vn := G.NewTensor(g, tensor.Float32, 4, G.WithShape(1, nc, nv1, nv2), G.WithName("v"))
	wn := G.NewTensor(g, tensor.Float32, 4, G.WithShape(k, nc, nw1, nw2), G.WithName("w"))
	cn, err := nnops.Conv2d(vn, wn, []int{nw1, nw2}, []int{0, 0}, []int{1, 1}, []int{1, 1})
	if err != nil {
		t.Fatalf("%+v", err)
	}

	vT := tensor.New(tensor.WithShape(1, nc, nv1, nv2), tensor.WithBacking(append([]float32(nil), in...)))
	wT := tensor.New(tensor.WithShape(k, nc, nw1, nw2), tensor.WithBacking(append([]float32(nil), w...)))
	if err := G.Let(vn, vT); err != nil {
		t.Fatal(err)
	}
	if err := G.Let(wn, wT); err != nil {
		t.Fatal(err)
	}

	m := G.NewTapeMachine(g)
	defer m.Close()
	if err := m.RunAll(); err != nil {
		t.Fatalf("%+v", err)
	}

	got := cn.Value().Data().([]float32)
	if diff := cmp.Diff(out, got, cmpopts.EquateApprox(0, 1e-4)); diff != "" {
		t.Errorf("conv mismatch vs gorgonia (-want +got):\n%s", diff)
	}
}
