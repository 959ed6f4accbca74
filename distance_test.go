package dbscan

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

const floatTol = 1e-10

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// --- SquaredDistance tests ---

func TestSquaredDistance_HandComputed(t *testing.T) {
	d, err := SquaredDistance([]float64{0, 0}, []float64{3, 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != 25 {
		t.Errorf("expected 25, got %v", d)
	}
}

func TestSquaredDistance_Self(t *testing.T) {
	a := []float64{1.5, -2, 7}
	d, err := SquaredDistance(a, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != 0 {
		t.Errorf("expected 0, got %v", d)
	}
}

func TestSquaredDistance_Symmetric(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 100; trial++ {
		dims := 1 + rng.Intn(8)
		a := make([]float64, dims)
		b := make([]float64, dims)
		for i := range a {
			a[i] = rng.NormFloat64() * 10
			b[i] = rng.NormFloat64() * 10
		}
		ab, err1 := SquaredDistance(a, b)
		ba, err2 := SquaredDistance(b, a)
		if err1 != nil || err2 != nil {
			t.Fatalf("unexpected errors: %v, %v", err1, err2)
		}
		if ab != ba {
			t.Fatalf("trial %d: d(a,b)=%v != d(b,a)=%v", trial, ab, ba)
		}
	}
}

func TestSquaredDistance_DimensionMismatch(t *testing.T) {
	_, err := SquaredDistance([]float64{1, 2}, []float64{1, 2, 3})
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestSquaredDistance_ZeroDimensions(t *testing.T) {
	d, err := SquaredDistance(nil, []float64{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != 0 {
		t.Errorf("expected 0, got %v", d)
	}
}

// --- Metric tests ---

func TestEuclideanMetric(t *testing.T) {
	m := EuclideanMetric{}
	a := []float64{1, 2, 3}
	b := []float64{4, 6, 3}
	if d := m.Distance(a, b); !almostEqual(d, 5, floatTol) {
		t.Errorf("Distance: expected 5, got %v", d)
	}
	if rd := m.Reduced(a, b); rd != 25 {
		t.Errorf("Reduced: expected 25, got %v", rd)
	}
	if r := m.ReduceRadius(1.5); r != 2.25 {
		t.Errorf("ReduceRadius: expected 2.25, got %v", r)
	}
}

func TestManhattanMetric(t *testing.T) {
	m := ManhattanMetric{}
	a := []float64{1, 2, 3}
	b := []float64{4, 6, 3}
	// |4-1| + |6-2| + |3-3| = 7
	if d := m.Distance(a, b); d != 7 {
		t.Errorf("expected 7, got %v", d)
	}
	if m.Reduced(a, b) != m.Distance(a, b) {
		t.Error("Reduced should equal Distance")
	}
	if m.ReduceRadius(3) != 3 {
		t.Error("ReduceRadius should be the identity")
	}
}

func TestChebyshevMetric(t *testing.T) {
	m := ChebyshevMetric{}
	a := []float64{1, 2, 3}
	b := []float64{4, 6, 3}
	if d := m.Distance(a, b); d != 4 {
		t.Errorf("expected 4, got %v", d)
	}
}

func TestMinkowskiMetric_P2MatchesEuclidean(t *testing.T) {
	m := MinkowskiMetric{P: 2}
	e := EuclideanMetric{}
	a := []float64{1, 2, 3}
	b := []float64{4, 6, 3}
	if !almostEqual(m.Distance(a, b), e.Distance(a, b), floatTol) {
		t.Errorf("Minkowski(2)=%v, Euclidean=%v", m.Distance(a, b), e.Distance(a, b))
	}
	if !almostEqual(m.ReduceRadius(1.5), 2.25, floatTol) {
		t.Errorf("ReduceRadius: expected 2.25, got %v", m.ReduceRadius(1.5))
	}
}

// The reduced comparison must agree with comparing true distances.
func TestMetrics_ReducedComparisonMatchesDistance(t *testing.T) {
	metrics := []Metric{EuclideanMetric{}, ManhattanMetric{}, ChebyshevMetric{}, MinkowskiMetric{P: 3}}
	rng := rand.New(rand.NewSource(7))
	for _, m := range metrics {
		for trial := 0; trial < 200; trial++ {
			a := []float64{rng.Float64() * 4, rng.Float64() * 4}
			b := []float64{rng.Float64() * 4, rng.Float64() * 4}
			eps := rng.Float64() * 4
			d := m.Distance(a, b)
			// Skip pairs too close to the boundary for float rounding.
			if math.Abs(d-eps) < 1e-9 {
				continue
			}
			want := d <= eps
			got := m.Reduced(a, b) <= m.ReduceRadius(eps)
			if got != want {
				t.Fatalf("%T: d=%v eps=%v reduced comparison=%v, want %v", m, d, eps, got, want)
			}
		}
	}
}

func TestMetricByName(t *testing.T) {
	tests := []struct {
		name string
		want Metric
	}{
		{"", EuclideanMetric{}},
		{"euclidean", EuclideanMetric{}},
		{" L2 ", EuclideanMetric{}},
		{"manhattan", ManhattanMetric{}},
		{"cityblock", ManhattanMetric{}},
		{"chebyshev", ChebyshevMetric{}},
		{"minkowski:3", MinkowskiMetric{P: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MetricByName(tt.name)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestMetricByName_Invalid(t *testing.T) {
	for _, name := range []string{"cosine", "minkowski:", "minkowski:abc", "minkowski:0.5"} {
		if _, err := MetricByName(name); err == nil {
			t.Errorf("expected error for %q", name)
		}
	}
}
