package noise

import "testing"

func TestBernoulliDomain(t *testing.T) {
	s := New(11)
	var ones int
	for i := 0; i < 1000; i++ {
		x := s.Bernoulli(0.7)
		if x != 0 && x != 1 {
			t.Fatalf("bernoulli sample not in {0,1}: %v", x)
		}
		if x == 1 {
			ones++
		}
	}
	if ones < 600 || ones > 800 {
		t.Errorf("bernoulli(0.7) produced %d ones out of 1000", ones)
	}
}

func TestRangedClips(t *testing.T) {
	s := New(12)
	for i := 0; i < 1000; i++ {
		x := s.Ranged(0.1, 1)
		if x < 0 || x > 1 {
			t.Fatalf("ranged sample out of [0,1]: %v", x)
		}
		y := s.Ranged(5.9, 6)
		if y < 0 || y > 6 {
			t.Fatalf("ranged sample out of [0,6]: %v", y)
		}
	}
}

func TestSeedDeterminism(t *testing.T) {
	a := New(77)
	b := New(77)
	for i := 0; i < 100; i++ {
		if x, y := a.Gaussian(0, 1), b.Gaussian(0, 1); x != y {
			t.Fatalf("same seed diverged at draw %d: %v vs %v", i, x, y)
		}
		if x, y := a.Bernoulli(0.5), b.Bernoulli(0.5); x != y {
			t.Fatalf("same seed diverged at draw %d", i)
		}
	}
}

func TestLogisticNoiseCentersOnInput(t *testing.T) {
	s := New(13)
	const x = 2.0
	var sum float64
	const n = 20000
	for i := 0; i < n; i++ {
		sum += float64(s.LogisticNoise(x))
	}
	mean := sum / n
	if mean < x-0.05 || mean > x+0.05 {
		t.Errorf("logistic noise mean drifted: %v", mean)
	}
}
