package stats

import (
	"fmt"
	"math"

	"github.com/jengzang/crime-analytics-go/internal/models"
)

// whiskerFactor scales the IQR to place the candidate whiskers
const whiskerFactor = 1.5

// Quantile calculates the p-th quantile (0 <= p <= 1) of values sorted in
// ascending order, interpolating linearly between closest ranks.
func Quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}

	index := float64(n-1) * p
	lower := int(math.Floor(index))
	upper := lower + 1
	if upper > n-1 {
		upper = n - 1
	}

	weight := index - float64(lower)
	if spread := sorted[upper] - sorted[lower]; !math.IsInf(spread, 0) {
		return sorted[lower] + spread*weight
	}
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Boxplot computes quartiles, IQR and outliers of values.
// Whiskers are the 1.5*IQR fences clamped to the observed min and max, and
// outliers are the values strictly outside the whiskers.
func Boxplot(values []float64) (models.BoxplotSummary, error) {
	if len(values) == 0 {
		return models.BoxplotSummary{}, ErrNoData
	}

	sorted := sortedCopy(values)
	observedMin := sorted[0]
	observedMax := sorted[len(sorted)-1]

	q1 := Quantile(sorted, 0.25)
	median := Quantile(sorted, 0.5)
	q3 := Quantile(sorted, 0.75)
	iqr := q3 - q1
	if math.IsInf(iqr, 0) {
		return models.BoxplotSummary{}, fmt.Errorf("%w: interquartile range of [%g, %g] overflows", ErrInvariant, q1, q3)
	}

	lower := math.Max(observedMin, q1-whiskerFactor*iqr)
	upper := math.Min(observedMax, q3+whiskerFactor*iqr)

	outliers := []float64{}
	for _, v := range sorted {
		if v < lower || v > upper {
			outliers = append(outliers, v)
		}
	}

	return models.BoxplotSummary{
		Count:        len(sorted),
		Min:          observedMin,
		Q1:           q1,
		Median:       median,
		Q3:           q3,
		Max:          observedMax,
		IQR:          iqr,
		LowerWhisker: lower,
		UpperWhisker: upper,
		Outliers:     outliers,
		Values:       sorted,
	}, nil
}
