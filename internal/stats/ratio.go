package stats

import (
	"fmt"
	"math"

	"github.com/jengzang/crime-analytics-go/internal/models"
)

// Ratio expresses filtered as a percentage of total, rounded to two decimals.
// A zero total gives 0%. filtered must not exceed total.
func Ratio(total, filtered int64) (models.RatioResult, error) {
	if total < 0 || filtered < 0 || filtered > total {
		return models.RatioResult{}, fmt.Errorf("%w: filtered=%d total=%d", ErrInvariant, filtered, total)
	}

	result := models.RatioResult{Total: total, Filtered: filtered}
	if total > 0 {
		result.Percentage = math.Round(float64(filtered)/float64(total)*100*100) / 100
	}
	return result, nil
}
