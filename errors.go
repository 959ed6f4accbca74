package dbscan

import "github.com/TrevorS/dbscan/internal/errors"

// Contract violations reported by the engine. Returned errors carry a
// descriptive message and match these sentinels under errors.Is.
var (
	// ErrInvalidRadius reports an eps that is negative or NaN.
	ErrInvalidRadius = errors.New("dbscan: invalid radius")

	// ErrInvalidThreshold reports a minPts below 1.
	ErrInvalidThreshold = errors.New("dbscan: invalid threshold")

	// ErrDimensionMismatch reports points with different coordinate counts.
	ErrDimensionMismatch = errors.New("dbscan: dimension mismatch")

	// ErrInvalidCoordinate reports a NaN or infinite coordinate. Such a point
	// is not within any radius of itself.
	ErrInvalidCoordinate = errors.New("dbscan: invalid coordinate")
)

func invalidRadius(eps float64) error {
	return errors.Mark(errors.Newf("dbscan: eps must be a non-negative number, got %v", eps), ErrInvalidRadius)
}

func invalidThreshold(minPts int) error {
	return errors.Mark(errors.Newf("dbscan: minPts must be >= 1, got %d", minPts), ErrInvalidThreshold)
}

func dimensionMismatch(i, got, want int) error {
	return errors.Mark(errors.Newf("dbscan: point %d has %d dimensions, want %d", i, got, want), ErrDimensionMismatch)
}

func invalidCoordinate(i, dim int, v float64) error {
	return errors.Mark(errors.Newf("dbscan: point %d coordinate %d is %v", i, dim, v), ErrInvalidCoordinate)
}
