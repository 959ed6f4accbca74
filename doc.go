// Package dbscan implements Density-Based Spatial Clustering of Applications
// with Noise (DBSCAN).
//
// Points that are mutually reachable through chains of dense
// epsilon-neighborhoods form one cluster. Points that belong to no such chain
// are noise. Cluster IDs start at 1; ID 0 ([Noise]) is reserved for noise.
//
// Basic usage:
//
//	cfg := dbscan.DefaultConfig()
//	cfg.Eps = 1.5
//	cfg.MinPts = 4
//	result, err := dbscan.Cluster(data, cfg)
//	// result.Labels[i] is the cluster ID for point i (0 = noise)
//	// result.NumClusters is the number of clusters found (IDs 1..NumClusters)
//
// Callers that keep their own point entities can cluster them in place:
//
//	points := []dbscan.Point{{Coords: []float64{0, 0}}, {Coords: []float64{0, 1}}}
//	n, err := dbscan.ClusterPoints(points, cfg)
//	// points[i].Cluster and points[i].Visited are now set
//
// # Complexity
//
// Neighborhoods are found by brute force: every neighbor query scans the whole
// collection, so a run costs O(n²·D). There is no spatial index.
//
// # Run state
//
// Coordinates are only read. Labels, visited flags and core flags belong to
// a single run and are returned in the [Result], so the same coordinates can
// be clustered again with different parameters without resetting anything.
//
// # Order dependence
//
// Core points always end up in the same clusters regardless of scan order.
// A border point within reach of core points from two different clusters is
// assigned to whichever cluster's expansion reaches it first.
package dbscan
