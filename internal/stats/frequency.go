package stats

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/jengzang/crime-analytics-go/internal/models"
)

// MergeCounts normalizes grouped values and merges groups holding the same
// value, so 3 and 3.0 count together and []byte values become strings.
// Groups keep first-seen order; nil values are dropped.
func MergeCounts(counts []models.CategoryCount) []models.CategoryCount {
	index := make(map[string]int)
	merged := []models.CategoryCount{}

	for _, c := range counts {
		if c.Value == nil {
			continue
		}
		v := normalizeValue(c.Value)
		key := groupKey(v)
		i, ok := index[key]
		if !ok {
			i = len(merged)
			index[key] = i
			merged = append(merged, models.CategoryCount{Value: v})
		}
		merged[i].Count += c.Count
	}

	return merged
}

// RankCounts stably sorts pre-grouped counts by descending count
func RankCounts(counts []models.CategoryCount) {
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
}

// TotalCount sums the counts
func TotalCount(counts []models.CategoryCount) int64 {
	var total int64
	for _, c := range counts {
		total += c.Count
	}
	return total
}

// FillBuckets maps grouped counts onto a fixed key set. Keys without a group
// get zero; groups outside the key set are dropped.
func FillBuckets(counts []models.CategoryCount, keys []string) map[string]int64 {
	filled := make(map[string]int64, len(keys))
	for _, k := range keys {
		filled[k] = 0
	}
	for _, c := range counts {
		if c.Value == nil {
			continue
		}
		k := ValueKey(c.Value)
		if _, ok := filled[k]; ok {
			filled[k] += c.Count
		}
	}
	return filled
}

// IntKeys returns the decimal keys from..to inclusive
func IntKeys(from, to int) []string {
	keys := make([]string, 0, to-from+1)
	for i := from; i <= to; i++ {
		keys = append(keys, strconv.Itoa(i))
	}
	return keys
}

// ValueKey renders a stored value as a bucket key. Numbers use their
// shortest decimal form so 3 and 3.0 share a key.
func ValueKey(v interface{}) string {
	switch n := normalizeValue(v).(type) {
	case int64:
		return strconv.FormatInt(n, 10)
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case string:
		return n
	default:
		return fmt.Sprint(n)
	}
}

// normalizeValue maps driver values onto int64, float64, bool or string
func normalizeValue(v interface{}) interface{} {
	switch n := v.(type) {
	case []byte:
		return string(n)
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case float32:
		return float64(n)
	case float64:
		if n == float64(int64(n)) {
			return int64(n)
		}
		return n
	default:
		return v
	}
}

func groupKey(v interface{}) string {
	switch v.(type) {
	case int64, float64:
		return "n:" + ValueKey(v)
	case bool:
		return "b:" + ValueKey(v)
	default:
		return "s:" + ValueKey(v)
	}
}
