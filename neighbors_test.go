package dbscan

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func mustDataset(t *testing.T, rows [][]float64) *Dataset {
	t.Helper()
	ds, err := NewDataset(rows)
	if err != nil {
		t.Fatalf("NewDataset: %v", err)
	}
	return ds
}

func TestNeighbors_IncludesSelf(t *testing.T) {
	ds := mustDataset(t, [][]float64{{0, 0}, {5, 5}, {10, 10}})
	for i := 0; i < ds.Len(); i++ {
		got, err := Neighbors(ds, i, 0, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(got, []int{i}) {
			t.Errorf("Neighbors(%d, eps=0) = %v, want [%d]", i, got, i)
		}
	}
}

func TestNeighbors_RadiusIsInclusive(t *testing.T) {
	ds := mustDataset(t, [][]float64{{0, 0}, {3, 4}, {3, 4.0001}})
	got, err := Neighbors(ds, 0, 5, EuclideanMetric{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []int{0, 1}) {
		t.Errorf("got %v, want [0 1]", got)
	}
}

func TestNeighbors_AscendingAndUnique(t *testing.T) {
	ds := mustDataset(t, [][]float64{{2}, {0}, {1}, {1}, {9}})
	got, err := Neighbors(ds, 2, 1, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{0, 1, 2, 3}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestNeighbors_ManhattanDiffersFromEuclidean(t *testing.T) {
	ds := mustDataset(t, [][]float64{{0, 0}, {1, 1}})
	e, _ := Neighbors(ds, 0, 1.5, EuclideanMetric{})
	m, _ := Neighbors(ds, 0, 1.5, ManhattanMetric{})
	if len(e) != 2 {
		t.Errorf("Euclidean: expected both points, got %v", e)
	}
	if len(m) != 1 {
		t.Errorf("Manhattan: expected only self, got %v", m)
	}
}

func TestNeighbors_Errors(t *testing.T) {
	ds := mustDataset(t, [][]float64{{0, 0}, {1, 1}})

	if _, err := Neighbors(ds, 0, -1, nil); !errors.Is(err, ErrInvalidRadius) {
		t.Errorf("negative eps: expected ErrInvalidRadius, got %v", err)
	}
	if _, err := Neighbors(ds, 2, 1, nil); err == nil {
		t.Error("out-of-range index: expected error")
	}

	ragged := Points{{Coords: []float64{0, 0}}, {Coords: []float64{1}}}
	if _, err := Neighbors(ragged, 0, 1, nil); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("ragged points: expected ErrDimensionMismatch, got %v", err)
	}
}

func TestNeighbors_LargeRadiusDoesNotOverflow(t *testing.T) {
	ds := mustDataset(t, [][]float64{{0}, {1e199}, {1e300}})
	got, err := Neighbors(ds, 0, 1e200, EuclideanMetric{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []int{0, 1}) {
		t.Errorf("got %v, want [0 1]", got)
	}
}

func TestCluster_LargeRadiusKeepsDistantPointsApart(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Eps = 1e200
	cfg.MinPts = 2
	result, err := Cluster([][]float64{{0}, {1e300}}, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.NumClusters != 0 {
		t.Errorf("expected 0 clusters, got %d (labels %v)", result.NumClusters, result.Labels)
	}

	// +Inf still means everything is a neighbor.
	cfg.Eps = math.Inf(1)
	result, err = Cluster([][]float64{{0}, {1e300}}, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(result.Labels, []ClusterID{1, 1}) {
		t.Errorf("eps=+Inf: got labels %v, want [1 1]", result.Labels)
	}
}
