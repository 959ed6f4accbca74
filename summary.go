package dbscan

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/TrevorS/dbscan/internal/errors"
)

// ClusterSummary describes one cluster of a Result.
type ClusterSummary struct {
	ID ClusterID

	// Size is the number of points labeled ID; Core counts the core points
	// among them.
	Size int
	Core int

	// Centroid is the coordinate-wise mean of the members.
	Centroid []float64

	// Min and Max bound the members along each dimension.
	Min []float64
	Max []float64
}

// Summarize computes per-cluster statistics for a run over src. Summaries
// are ordered by cluster ID; noise is not summarized. res must come from a
// run over src.
func Summarize(src Source, res *Result) ([]ClusterSummary, error) {
	if len(res.Labels) != src.Len() {
		return nil, errors.Newf("dbscan: result has %d labels for %d points", len(res.Labels), src.Len())
	}
	if res.NumClusters == 0 || src.Len() == 0 {
		return nil, nil
	}
	dims := len(src.At(0))

	out := make([]ClusterSummary, res.NumClusters)
	for k := range out {
		out[k] = ClusterSummary{
			ID:       ClusterID(k + 1),
			Centroid: make([]float64, dims),
			Min:      filled(dims, math.Inf(1)),
			Max:      filled(dims, math.Inf(-1)),
		}
	}

	for i, l := range res.Labels {
		if l == Noise {
			continue
		}
		if int(l) > res.NumClusters {
			return nil, errors.Newf("dbscan: point %d has label %d, want at most %d", i, l, res.NumClusters)
		}
		cs := &out[l-1]
		p := src.At(i)
		cs.Size++
		if res.IsCore(i) {
			cs.Core++
		}
		floats.Add(cs.Centroid, p)
		for d, v := range p {
			cs.Min[d] = math.Min(cs.Min[d], v)
			cs.Max[d] = math.Max(cs.Max[d], v)
		}
	}

	for k := range out {
		floats.Scale(1/float64(out[k].Size), out[k].Centroid)
	}
	return out, nil
}

func filled(n int, v float64) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = v
	}
	return s
}
