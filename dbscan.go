package dbscan

import (
	"math"
	"time"

	"github.com/bits-and-blooms/bitset"
	"go.uber.org/zap"

	"github.com/TrevorS/dbscan/internal/errors"
)

// Config controls DBSCAN clustering behavior.
// Start with [DefaultConfig] and override the fields you need.
type Config struct {
	// Eps is the neighborhood radius. Two points are neighbors when their
	// distance is at most Eps (inclusive). Must be >= 0. Default: 0.5.
	Eps float64

	// MinPts is the minimum neighborhood size, counting the point itself,
	// for a point to be a core point. Must be >= 1. Default: 5.
	MinPts int

	// Metric is the distance used for neighbor queries.
	// Default: EuclideanMetric (squared distances compared against Eps²).
	Metric Metric

	// Logger receives one debug entry per run. Default: no-op.
	Logger *zap.Logger
}

// Result contains the output of one DBSCAN run.
type Result struct {
	// Labels assigns each point to a cluster ID in 1..NumClusters, or to
	// Noise (0).
	Labels []ClusterID

	// NumClusters is the number of clusters created.
	NumClusters int

	// NeighborQueries counts the epsilon-neighborhood scans performed.
	NeighborQueries int

	visited *bitset.BitSet
	core    *bitset.BitSet
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		Eps:    0.5,
		MinPts: 5,
		Metric: EuclideanMetric{},
	}
}

func validateRadius(eps float64) error {
	if eps < 0 || math.IsNaN(eps) {
		return invalidRadius(eps)
	}
	return nil
}

// validateConfig checks that cfg fields are valid and returns a descriptive error if not.
func validateConfig(cfg *Config) error {
	if err := validateRadius(cfg.Eps); err != nil {
		return err
	}
	if cfg.MinPts < 1 {
		return invalidThreshold(cfg.MinPts)
	}
	if m, ok := cfg.Metric.(MinkowskiMetric); ok && !(m.P >= 1) {
		return errors.Newf("dbscan: MinkowskiMetric.P must be >= 1, got %v", m.P)
	}
	return nil
}

// applyDefaults fills in nil config fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.Metric == nil {
		cfg.Metric = EuclideanMetric{}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
}

// Run clusters src with Euclidean distance, radius eps and core threshold
// minPts.
func Run(src Source, eps float64, minPts int) (*Result, error) {
	cfg := DefaultConfig()
	cfg.Eps = eps
	cfg.MinPts = minPts
	return ClusterSource(src, cfg)
}

// Cluster performs DBSCAN clustering on the given data.
// Each element is a point; all points must have the same dimensionality.
func Cluster(data [][]float64, cfg Config) (*Result, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	ds, err := NewDataset(data)
	if err != nil {
		return nil, err
	}
	return clusterValidated(ds, cfg), nil
}

// ClusterSource performs DBSCAN clustering over any Source. The source is
// read only; all labels are returned in the Result.
func ClusterSource(src Source, cfg Config) (*Result, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	if err := validateSource(src); err != nil {
		return nil, err
	}
	return clusterValidated(src, cfg), nil
}

// ClusterPoints clusters caller-owned entities and writes each point's
// Cluster and Visited fields in place. It returns the number of clusters.
// Previous values of those fields are ignored.
func ClusterPoints(points []Point, cfg Config) (int, error) {
	res, err := ClusterSource(Points(points), cfg)
	if err != nil {
		return 0, err
	}
	for i := range points {
		points[i].Cluster = res.Labels[i]
		points[i].Visited = res.Visited(i)
	}
	return res.NumClusters, nil
}

func clusterValidated(src Source, cfg Config) *Result {
	start := time.Now()

	s := newRunState(src, cfg.Metric, cfg.Eps, cfg.MinPts)
	numClusters := s.scan()

	res := &Result{
		Labels:          s.labels,
		NumClusters:     numClusters,
		NeighborQueries: s.queries,
		visited:         s.visited,
		core:            s.core,
	}

	if ce := cfg.Logger.Check(zap.DebugLevel, "dbscan run complete"); ce != nil {
		dims := 0
		if s.n > 0 {
			dims = len(src.At(0))
		}
		ce.Write(
			zap.Int("points", s.n),
			zap.Int("dims", dims),
			zap.Float64("eps", cfg.Eps),
			zap.Int("min_pts", cfg.MinPts),
			zap.Int("clusters", numClusters),
			zap.Int("noise", res.NumNoise()),
			zap.Int("neighbor_queries", s.queries),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
	return res
}

// IsCore reports whether point i had at least MinPts points in its
// neighborhood.
func (r *Result) IsCore(i int) bool { return r.core.Test(uint(i)) }

// Visited reports whether point i's neighborhood was queried during cluster
// expansion. Points never reached by any expansion remain unvisited.
func (r *Result) Visited(i int) bool { return r.visited.Test(uint(i)) }

// NumCore returns the number of core points.
func (r *Result) NumCore() int { return int(r.core.Count()) }

// NumNoise returns the number of points labeled Noise.
func (r *Result) NumNoise() int {
	count := 0
	for _, l := range r.Labels {
		if l == Noise {
			count++
		}
	}
	return count
}

// Sizes returns the number of points per label. Sizes()[0] is the noise
// count and Sizes()[id] the size of cluster id.
func (r *Result) Sizes() []int {
	sizes := make([]int, r.NumClusters+1)
	for _, l := range r.Labels {
		sizes[l]++
	}
	return sizes
}

// Members returns the indices of the points labeled id, in ascending order.
func (r *Result) Members(id ClusterID) []int {
	var members []int
	for i, l := range r.Labels {
		if l == id {
			members = append(members, i)
		}
	}
	return members
}
