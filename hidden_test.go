package crbm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomVisible(l *Layer) []float32 {
	v := l.V1.Data().([]float32)
	for i := range v {
		if i%3 == 0 {
			v[i] = 1
		} else {
			v[i] = 0
		}
	}
	return v
}

func TestHiddenProbsDeterministic(t *testing.T) {
	l := newLayer(t, DefaultConf(2, 8, 3, 5))
	randomVisible(l)

	a := l.OneOutput()
	b := l.OneOutput()
	require.NoError(t, l.ActivateHidden(a, l.H1S, l.V1))
	require.NoError(t, l.ActivateHidden(b, nil, l.V1))

	// only the samples depend on randomness
	assert.Equal(t, a.Data().([]float32), b.Data().([]float32))
}

func TestHiddenSampleBounds(t *testing.T) {
	cases := []struct {
		hidden UnitType
		lo, hi float64
	}{
		{Binary, 0, 1},
		{ReLU, 0, math.Inf(1)},
		{ReLU6, 0, 6},
		{ReLU1, 0, 1},
	}
	for _, c := range cases {
		conf := DefaultConf(1, 10, 4, 6)
		conf.Hidden = c.hidden
		l := newLayer(t, conf)
		randomVisible(l)

		require.NoError(t, l.ActivateHidden(l.H1A, l.H1S, l.V1))
		for i, s := range l.H1S.Data().([]float32) {
			if float64(s) < c.lo || float64(s) > c.hi {
				t.Fatalf("%v sample %d out of [%v, %v]: %v", c.hidden, i, c.lo, c.hi, s)
			}
			if c.hidden == Binary && s != 0 && s != 1 {
				t.Fatalf("binary sample %d not in {0,1}: %v", i, s)
			}
		}
	}
}

func TestHiddenConcreteScenario(t *testing.T) {
	// nc=1, nv=4x4, k=2, nh=3x3, so nw=2x2. With constant visible input
	// every valid cross-correlation window sums to 0.5·Σw.
	l := newLayer(t, DefaultConf(1, 4, 2, 3))

	copy(l.W.Data().([]float32), []float32{
		1, 0,
		0, 1, // filter 0, Σw = 2

		0.5, -0.25,
		0.25, 0.5, // filter 1, Σw = 1
	})
	bs := l.B.Data().([]float32)
	for i := range bs {
		bs[i] = 0
	}

	v := l.OneInput()
	vd := v.Data().([]float32)
	for i := range vd {
		vd[i] = 0.5
	}

	hA := l.OneOutput()
	require.NoError(t, l.ActivateHidden(hA, nil, v))

	ha := hA.Data().([]float32)
	pre := []float64{0.5 * 2, 0.5 * 1}
	for q := 0; q < 2; q++ {
		want := 1 / (1 + math.Exp(-pre[q]))
		for i := 0; i < 9; i++ {
			assert.InDelta(t, want, float64(ha[q*9+i]), 1e-6)
		}
	}
}

func TestBatchHiddenMatchesSingle(t *testing.T) {
	for _, serial := range []bool{true, false} {
		conf := DefaultConf(2, 9, 4, 7)
		conf.Serial = serial
		l := newLayer(t, conf)
		randomVisible(l)

		single := l.OneOutput()
		require.NoError(t, l.ActivateHidden(single, nil, l.V1))

		batchIn := l.InputBatch(1)
		copy(batchIn.Data().([]float32), l.V1.Data().([]float32))
		batchOut := l.OutputBatch(1)
		require.NoError(t, l.BatchActivateHidden(batchOut, nil, batchIn))

		assert.Equal(t, single.Data().([]float32), batchOut.Data().([]float32))
	}
}

func TestBatchHiddenParallelMatchesSerial(t *testing.T) {
	conf := DefaultConf(1, 12, 3, 8)
	l := newLayer(t, conf)

	batch := 16
	in := l.InputBatch(batch)
	ind := in.Data().([]float32)
	for i := range ind {
		if i%5 == 0 {
			ind[i] = 1
		}
	}

	parOut := l.OutputBatch(batch)
	require.NoError(t, l.BatchActivateHidden(parOut, nil, in))

	l.Serial = true
	serOut := l.OutputBatch(batch)
	require.NoError(t, l.BatchActivateHidden(serOut, nil, in))

	assert.Equal(t, serOut.Data().([]float32), parOut.Data().([]float32))
}

func TestGaussianVisibleScalesHiddenPreactivation(t *testing.T) {
	conf := DefaultConf(1, 4, 1, 3)
	conf.Visible = Gaussian
	l := newLayer(t, conf)

	copy(l.W.Data().([]float32), []float32{1, 0, 0, 1})
	bs := l.B.Data().([]float32)
	bs[0] = 0

	v := l.OneInput()
	vd := v.Data().([]float32)
	for i := range vd {
		vd[i] = 0.01
	}

	hA := l.OneOutput()
	require.NoError(t, l.ActivateHidden(hA, nil, v))

	// pre-activation 0.02, scaled by 1/σ² = 100
	want := 1 / (1 + math.Exp(-0.02*100))
	for _, x := range hA.Data().([]float32) {
		assert.InDelta(t, want, float64(x), 1e-5)
	}
}
