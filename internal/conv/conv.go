// Package conv holds the two convolution kernels the CRBM layer is built
// on: the valid cross-correlation of the forward pass and its transpose,
// the full convolution of the reconstruction pass. All tensors are
// row-major []float32 slices.
package conv

// ValidFlipped computes the valid cross-correlation of a (nc, nv1, nv2)
// input with a (k, nc, nw1, nw2) filter bank into a (k, nh1, nh2) output,
// where nh = nv - nw + 1:
//
//	out[q][i][j] = Σ_c Σ_a Σ_b in[c][i+a][j+b] · w[q][c][a][b]
func ValidFlipped(out, in, w []float32, nc, nv1, nv2, k, nw1, nw2 int) {
	nh1 := nv1 - nw1 + 1
	nh2 := nv2 - nw2 + 1
	for q := 0; q < k; q++ {
		for i := 0; i < nh1; i++ {
			for j := 0; j < nh2; j++ {
				var acc float32
				for c := 0; c < nc; c++ {
					inPlane := in[c*nv1*nv2:]
					wPlane := w[(q*nc+c)*nw1*nw2:]
					for a := 0; a < nw1; a++ {
						row := inPlane[(i+a)*nv2+j:]
						wRow := wPlane[a*nw2:]
						for b := 0; b < nw2; b++ {
							acc += row[b] * wRow[b]
						}
					}
				}
				out[(q*nh1+i)*nh2+j] = acc
			}
		}
	}
}

// Full computes the full convolution of a (k, nh1, nh2) hidden tensor
// with the same (k, nc, nw1, nw2) filter bank into a (nc, nv1, nv2)
// output, where nv = nh + nw - 1:
//
//	out[c][x][y] = Σ_q Σ_i Σ_j h[q][i][j] · w[q][c][x-i][y-j]
//
// This is the transpose of ValidFlipped.
func Full(out, h, w []float32, k, nh1, nh2, nc, nw1, nw2 int) {
	nv1 := nh1 + nw1 - 1
	nv2 := nh2 + nw2 - 1
	for i := range out[:nc*nv1*nv2] {
		out[i] = 0
	}
	for q := 0; q < k; q++ {
		hPlane := h[q*nh1*nh2:]
		for c := 0; c < nc; c++ {
			wPlane := w[(q*nc+c)*nw1*nw2:]
			outPlane := out[c*nv1*nv2:]
			for i := 0; i < nh1; i++ {
				for j := 0; j < nh2; j++ {
					hv := hPlane[i*nh2+j]
					if hv == 0 {
						// binary samples are mostly zero
						continue
					}
					for a := 0; a < nw1; a++ {
						outRow := outPlane[(i+a)*nv2+j:]
						wRow := wPlane[a*nw2:]
						for b := 0; b < nw2; b++ {
							outRow[b] += hv * wRow[b]
						}
					}
				}
			}
		}
	}
}
