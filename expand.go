package dbscan

import "github.com/bits-and-blooms/bitset"

// runState is everything a single clustering run mutates. Coordinates are
// only read through src; all per-point state is indexed by point position.
type runState struct {
	src    Source
	n      int
	ball   ball
	minPts int

	labels  []ClusterID
	visited *bitset.BitSet
	core    *bitset.BitSet

	// frontier marks the members of worklist for the expansion in progress.
	frontier *bitset.BitSet
	worklist []int

	buf     []int
	queries int
}

func newRunState(src Source, metric Metric, eps float64, minPts int) *runState {
	n := src.Len()
	return &runState{
		src:      src,
		n:        n,
		ball:     newBall(metric, eps),
		minPts:   minPts,
		labels:   make([]ClusterID, n),
		visited:  bitset.New(uint(n)),
		core:     bitset.New(uint(n)),
		frontier: bitset.New(uint(n)),
	}
}

// neighbors returns the epsilon-neighborhood of point i. The returned slice
// is reused by the next call.
func (s *runState) neighbors(i int) []int {
	s.queries++
	s.buf = appendNeighbors(s.buf[:0], s.src, i, s.ball)
	return s.buf
}

// scan visits every point in order and returns the number of clusters.
// The driver never marks points visited; only expand does.
func (s *runState) scan() int {
	var c ClusterID
	for p := 0; p < s.n; p++ {
		if s.visited.Test(uint(p)) {
			continue
		}

		np := s.neighbors(p)
		if len(np) < s.minPts {
			// May still be claimed later as a border point.
			s.labels[p] = Noise
			continue
		}

		c++
		s.labels[p] = c
		s.expand(np, c)
	}
	return int(c)
}

// expand grows cluster c from seed, the neighborhood of a core point. The
// seed contains the core point itself, which is queried again here.
//
// The frontier is a FIFO worklist. Members appended while it is being
// traversed are processed before expand returns.
func (s *runState) expand(seed []int, c ClusterID) {
	s.worklist = s.worklist[:0]
	s.push(seed)

	for head := 0; head < len(s.worklist); head++ {
		q := s.worklist[head]

		// Unclaimed points join c even if already visited: a point the
		// driver labeled noise is rescued as a border point here.
		if s.labels[q] == Noise {
			s.labels[q] = c
		}
		if s.visited.Test(uint(q)) {
			continue
		}
		s.visited.Set(uint(q))

		nq := s.neighbors(q)
		if len(nq) >= s.minPts {
			s.core.Set(uint(q))
			s.push(nq)
		}
	}

	for _, q := range s.worklist {
		s.frontier.Clear(uint(q))
	}
}

// push adds the points of ns that are not yet in the frontier.
func (s *runState) push(ns []int) {
	for _, q := range ns {
		if s.frontier.Test(uint(q)) {
			continue
		}
		s.frontier.Set(uint(q))
		s.worklist = append(s.worklist, q)
	}
}
