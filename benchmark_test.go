package dbscan

import (
	"testing"
)

func benchCluster(b *testing.B, n int) {
	b.Helper()
	data := generateBlobs(b, 5, n/5, 2, 42)
	ds, err := NewDataset(data)
	if err != nil {
		b.Fatal(err)
	}
	cfg := DefaultConfig()
	cfg.Eps = 0.5
	cfg.MinPts = 5
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ClusterSource(ds, cfg); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCluster_100(b *testing.B)  { benchCluster(b, 100) }
func BenchmarkCluster_500(b *testing.B)  { benchCluster(b, 500) }
func BenchmarkCluster_1000(b *testing.B) { benchCluster(b, 1000) }
func BenchmarkCluster_2000(b *testing.B) { benchCluster(b, 2000) }

func benchNeighbors(b *testing.B, n int) {
	b.Helper()
	ds, err := NewDataset(generateBlobs(b, 5, n/5, 2, 42))
	if err != nil {
		b.Fatal(err)
	}
	ball := newBall(EuclideanMetric{}, 0.5)
	buf := make([]int, 0, n)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf = appendNeighbors(buf[:0], ds, i%ds.Len(), ball)
	}
}

func BenchmarkNeighbors_1000(b *testing.B)  { benchNeighbors(b, 1000) }
func BenchmarkNeighbors_10000(b *testing.B) { benchNeighbors(b, 10000) }
