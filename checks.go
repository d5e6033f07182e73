package crbm

import (
	"fmt"

	"github.com/chewxy/math32"
)

// nanCheckDeep panics on the first NaN or Inf in a freshly computed
// tensor. It is a fail-fast development assertion against divergence
// (exploding weights), not a recoverable error path.
func nanCheckDeep(what string, xs []float32) {
	for i, x := range xs {
		if math32.IsNaN(x) || math32.IsInf(x, 0) {
			panic(fmt.Sprintf("crbm: %s: invalid value %v at index %d", what, x, i))
		}
	}
}
