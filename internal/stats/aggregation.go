package stats

import (
	"fmt"
	"math"
	"sort"

	"github.com/jengzang/crime-analytics-go/internal/models"
)

// NumericValues keeps the finite numbers of raw and drops everything else
// (nil, strings, booleans, NaN, infinities).
func NumericValues(raw []interface{}) []float64 {
	values := make([]float64, 0, len(raw))
	for _, v := range raw {
		if f, ok := Numeric(v); ok {
			values = append(values, f)
		}
	}
	return values
}

// Numeric converts a stored value to a finite float64
func Numeric(v interface{}) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case float32:
		f = float64(n)
	case float64:
		f = n
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Mean calculates the arithmetic mean of a slice of float64 values. Sums
// that overflow are redone on values scaled into [-1, 1].
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	if !math.IsInf(sum, 0) {
		return sum / float64(len(values))
	}

	scale := maxAbs(values)
	var scaled float64
	for _, v := range values {
		scaled += v / scale
	}
	return scaled / float64(len(values)) * scale
}

// PopulationVariance calculates the variance dividing by N. It can exceed
// the float64 range for finite input; use PopulationStdDev when the
// result is reported.
func PopulationVariance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	mean := Mean(values)
	var sumSquaredDiff float64
	for _, v := range values {
		diff := v - mean
		sumSquaredDiff += diff * diff
	}

	return sumSquaredDiff / float64(len(values))
}

// PopulationStdDev calculates the population standard deviation. It stays
// finite for any finite input.
func PopulationStdDev(values []float64) float64 {
	if variance := PopulationVariance(values); !math.IsInf(variance, 0) && !math.IsNaN(variance) {
		return math.Sqrt(variance)
	}

	scale := maxAbs(values)
	scaled := make([]float64, len(values))
	for i, v := range values {
		scaled[i] = v / scale
	}
	return math.Sqrt(PopulationVariance(scaled)) * scale
}

func maxAbs(values []float64) float64 {
	m := 0.0
	for _, v := range values {
		m = math.Max(m, math.Abs(v))
	}
	if m == 0 {
		return 1
	}
	return m
}

// Median returns the element at index floor(N/2) of the sorted values.
// For even N this is the upper-middle element, not the average of the two
// middle elements.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := sortedCopy(values)
	return sorted[len(sorted)/2]
}

// Min returns the minimum value
func Min(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	min := values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

// Max returns the maximum value
func Max(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// Summarize computes mean, population std, min, max and median
func Summarize(values []float64) (models.NumericSummary, error) {
	if len(values) == 0 {
		return models.NumericSummary{}, ErrNoData
	}

	return models.NumericSummary{
		Mean:   Mean(values),
		Std:    PopulationStdDev(values),
		Min:    Min(values),
		Max:    Max(values),
		Median: Median(values),
		Count:  len(values),
	}, nil
}

// Histogram bins values into numBins equal-width buckets between their min
// and max. When every value is equal the result is a single bucket
// [min, max] regardless of numBins.
func Histogram(values []float64, numBins int) ([]models.HistogramBucket, error) {
	summary, err := Summarize(values)
	if err != nil {
		return nil, err
	}
	return HistogramFromSummary(values, summary, numBins)
}

// HistogramFromSummary bins values using the bounds of an earlier summary pass.
// A value equal to the max lands in the last bucket; values outside
// [min, max] are left out. When min equals max a single bucket holds
// everything. Boundaries are strictly increasing; a range too narrow to
// split into numBins distinct float64 boundaries is ErrInvalidBins.
func HistogramFromSummary(values []float64, summary models.NumericSummary, numBins int) ([]models.HistogramBucket, error) {
	if numBins < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBins, numBins)
	}
	if summary.Count == 0 {
		return nil, ErrNoData
	}

	min, max := summary.Min, summary.Max
	if max == min {
		count := 0
		for _, v := range values {
			if v == min {
				count++
			}
		}
		return []models.HistogramBucket{{BinStart: min, BinEnd: max, Count: count}}, nil
	}

	n := float64(numBins)
	width := (max - min) / n
	if math.IsInf(width, 0) {
		width = max/n - min/n
	}

	boundaries := make([]float64, numBins+1)
	boundaries[0] = min
	for i := 1; i < numBins; i++ {
		b := min + float64(i)*width
		if math.IsInf(b, 0) || math.IsInf(float64(i)*width, 0) {
			b = max - float64(numBins-i)*width
		}
		boundaries[i] = b
	}
	boundaries[numBins] = max

	for i := 1; i <= numBins; i++ {
		if boundaries[i] <= boundaries[i-1] {
			return nil, fmt.Errorf("%w: range [%g, %g] cannot be split into %d buckets", ErrInvalidBins, min, max, numBins)
		}
	}

	buckets := make([]models.HistogramBucket, numBins)
	for i := range buckets {
		buckets[i] = models.HistogramBucket{BinStart: boundaries[i], BinEnd: boundaries[i+1]}
	}

	for _, v := range values {
		if v < min || v > max {
			continue
		}
		buckets[bucketIndex(boundaries, v)].Count++
	}

	return buckets, nil
}

// bucketIndex finds i with boundaries[i] <= v < boundaries[i+1], the last
// bucket being closed on the right.
func bucketIndex(boundaries []float64, v float64) int {
	last := len(boundaries) - 2
	if v >= boundaries[last] {
		return last
	}
	return sort.Search(last, func(i int) bool { return boundaries[i+1] > v })
}

func sortedCopy(values []float64) []float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return sorted
}
