package dbscan

import (
	"math"

	"github.com/TrevorS/dbscan/internal/errors"
)

// Neighbors returns the indices of every point of src within eps of point i,
// in ascending order. The result always contains i itself. A nil metric
// means EuclideanMetric.
//
// Each call scans the whole collection: O(n·D).
func Neighbors(src Source, i int, eps float64, metric Metric) ([]int, error) {
	if err := validateRadius(eps); err != nil {
		return nil, err
	}
	if metric == nil {
		metric = EuclideanMetric{}
	}
	if i < 0 || i >= src.Len() {
		return nil, errors.Newf("dbscan: point index %d out of range [0, %d)", i, src.Len())
	}
	if err := validateSource(src); err != nil {
		return nil, err
	}
	return appendNeighbors(nil, src, i, newBall(metric, eps)), nil
}

// ball decides epsilon-neighborhood membership. Comparisons normally run in
// reduced space; when eps is finite but its reduced form overflows (eps² for
// eps above ~1.3e154) they fall back to Metric.Distance against eps.
type ball struct {
	metric Metric
	eps    float64
	radius float64
	exact  bool
}

func newBall(metric Metric, eps float64) ball {
	radius := metric.ReduceRadius(eps)
	return ball{
		metric: metric,
		eps:    eps,
		radius: radius,
		exact:  math.IsInf(radius, 1) && !math.IsInf(eps, 1),
	}
}

func (b ball) contains(p, q []float64) bool {
	if b.exact {
		return b.metric.Distance(p, q) <= b.eps
	}
	return b.metric.Reduced(p, q) <= b.radius
}

// appendNeighbors appends to dst every index j whose point lies in b around
// point i. The source must have been validated.
func appendNeighbors(dst []int, src Source, i int, b ball) []int {
	p := src.At(i)
	n := src.Len()
	for j := 0; j < n; j++ {
		if b.contains(p, src.At(j)) {
			dst = append(dst, j)
		}
	}
	return dst
}
