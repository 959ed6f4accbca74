package dbscan

import "math"

// ClusterID identifies a cluster found during one run. Noise is 0; clusters
// are numbered from 1 in the order the driver discovers them.
type ClusterID uint32

// Noise is the label of points that belong to no cluster.
const Noise ClusterID = 0

// Source gives read-only access to an ordered collection of points.
// Indices are stable for the duration of a run, and every point must have
// the same dimensionality. The slice returned by At must not be modified.
type Source interface {
	Len() int
	At(i int) []float64
}

// Point is a caller-owned point entity: coordinates plus the two slots that
// ClusterPoints fills in.
type Point struct {
	Coords  []float64
	Cluster ClusterID
	Visited bool
}

// IsNoise reports whether the point is unclaimed by any cluster.
func (p Point) IsNoise() bool { return p.Cluster == Noise }

// Points adapts a slice of Point entities to a Source.
type Points []Point

func (ps Points) Len() int           { return len(ps) }
func (ps Points) At(i int) []float64 { return ps[i].Coords }

// Dataset is a Source backed by a flat row-major coordinate array.
type Dataset struct {
	data []float64
	n    int
	dims int
}

// NewDataset copies rows into a Dataset. All rows must have the same length
// and every coordinate must be finite.
func NewDataset(rows [][]float64) (*Dataset, error) {
	n := len(rows)
	if n == 0 {
		return &Dataset{}, nil
	}

	dims := len(rows[0])
	flat := make([]float64, n*dims)
	for i, row := range rows {
		if len(row) != dims {
			return nil, dimensionMismatch(i, len(row), dims)
		}
		copy(flat[i*dims:], row)
	}

	ds := &Dataset{data: flat, n: n, dims: dims}
	if err := validateSource(ds); err != nil {
		return nil, err
	}
	return ds, nil
}

// NewDatasetFlat wraps flat row-major data with n rows of dims columns.
// The slice is used as-is, not copied.
func NewDatasetFlat(data []float64, n, dims int) (*Dataset, error) {
	if n < 0 || dims < 0 || len(data) != n*dims {
		return nil, dimensionMismatch(0, len(data), n*dims)
	}
	ds := &Dataset{data: data, n: n, dims: dims}
	if err := validateSource(ds); err != nil {
		return nil, err
	}
	return ds, nil
}

func (d *Dataset) Len() int { return d.n }

func (d *Dataset) At(i int) []float64 {
	return d.data[i*d.dims : (i+1)*d.dims : (i+1)*d.dims]
}

// Dims returns the dimensionality of every point.
func (d *Dataset) Dims() int { return d.dims }

// validateSource checks that every point of src has the dimensionality of
// the first point and only finite coordinates.
func validateSource(src Source) error {
	n := src.Len()
	if n == 0 {
		return nil
	}
	dims := len(src.At(0))
	for i := 0; i < n; i++ {
		p := src.At(i)
		if len(p) != dims {
			return dimensionMismatch(i, len(p), dims)
		}
		for j, v := range p {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return invalidCoordinate(i, j, v)
			}
		}
	}
	return nil
}
