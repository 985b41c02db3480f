package stats

import "errors"

var (
	// ErrNoData is returned when a statistic needs at least one value
	ErrNoData = errors.New("insufficient data")
	// ErrInvalidBins is returned for a histogram bin count below one
	ErrInvalidBins = errors.New("bin count must be at least 1")
	// ErrInvariant signals inconsistent input produced by a caller bug
	ErrInvariant = errors.New("invariant violated")
)
