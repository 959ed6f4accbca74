package dbscan

import (
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/TrevorS/dbscan/internal/errors"
)

// Metric measures point dissimilarity for neighbor queries. Neighborhoods
// are decided in reduced space: q is a neighbor of p when
// Reduced(p, q) <= ReduceRadius(eps). Reduced must be monotonic in the true
// distance so the comparison matches Distance(p, q) <= eps.
type Metric interface {
	Distance(a, b []float64) float64
	Reduced(a, b []float64) float64
	ReduceRadius(eps float64) float64
}

// SquaredDistance returns the squared Euclidean distance between a and b.
// It reports ErrDimensionMismatch when the two points have different lengths.
func SquaredDistance(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, errors.Mark(
			errors.Newf("dbscan: cannot compare %d-dimensional point with %d-dimensional point", len(a), len(b)),
			ErrDimensionMismatch)
	}
	return sumOfSquares(a, b), nil
}

// sumOfSquares assumes len(a) == len(b).
func sumOfSquares(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// EuclideanMetric computes the Euclidean (L2) distance.
// Reduced returns the squared distance and ReduceRadius squares eps, so
// neighbor queries never take a square root. Distance is scaled and does not
// overflow for large coordinates.
type EuclideanMetric struct{}

func (EuclideanMetric) Distance(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}

func (EuclideanMetric) Reduced(a, b []float64) float64 { return sumOfSquares(a, b) }

func (EuclideanMetric) ReduceRadius(eps float64) float64 { return eps * eps }

// ManhattanMetric computes the Manhattan (L1 / city-block) distance.
type ManhattanMetric struct{}

func (ManhattanMetric) Distance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += math.Abs(a[i] - b[i])
	}
	return sum
}

func (m ManhattanMetric) Reduced(a, b []float64) float64 { return m.Distance(a, b) }

func (ManhattanMetric) ReduceRadius(eps float64) float64 { return eps }

// ChebyshevMetric computes the Chebyshev (L-infinity) distance.
type ChebyshevMetric struct{}

func (ChebyshevMetric) Distance(a, b []float64) float64 {
	var maxVal float64
	for i := range a {
		if v := math.Abs(a[i] - b[i]); v > maxVal {
			maxVal = v
		}
	}
	return maxVal
}

func (m ChebyshevMetric) Reduced(a, b []float64) float64 { return m.Distance(a, b) }

func (ChebyshevMetric) ReduceRadius(eps float64) float64 { return eps }

// MinkowskiMetric computes the Minkowski distance parameterized by P.
// P must be >= 1; Config validation rejects smaller values.
// Reduced returns sum(|a[i]-b[i]|^P) without the final root.
type MinkowskiMetric struct {
	P float64
}

func (m MinkowskiMetric) Distance(a, b []float64) float64 {
	return math.Pow(m.Reduced(a, b), 1.0/m.P)
}

func (m MinkowskiMetric) Reduced(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += math.Pow(math.Abs(a[i]-b[i]), m.P)
	}
	return sum
}

func (m MinkowskiMetric) ReduceRadius(eps float64) float64 { return math.Pow(eps, m.P) }

// MetricByName resolves a metric name as used in configuration files:
// "euclidean", "manhattan", "chebyshev" or "minkowski:<p>".
func MetricByName(name string) (Metric, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "", "euclidean", "l2":
		return EuclideanMetric{}, nil
	case "manhattan", "l1", "cityblock":
		return ManhattanMetric{}, nil
	case "chebyshev", "linf":
		return ChebyshevMetric{}, nil
	}
	if rest, ok := strings.CutPrefix(name, "minkowski:"); ok {
		p, err := strconv.ParseFloat(rest, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "dbscan: invalid Minkowski exponent %q", rest)
		}
		if p < 1 {
			return nil, errors.Newf("dbscan: Minkowski exponent must be >= 1, got %v", p)
		}
		return MinkowskiMetric{P: p}, nil
	}
	return nil, errors.Newf("dbscan: unknown metric %q", name)
}
