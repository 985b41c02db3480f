package stats

import (
	"github.com/jengzang/crime-analytics-go/internal/models"
)

// RollUp attributes every record to its highest-ranked category label that
// belongs to the selection and counts records per label. Records without a
// selected label are excluded. An empty selection yields an empty result.
func RollUp(records []models.RankedLabels, selection []string) []models.TreeCount {
	result := []models.TreeCount{}
	if len(selection) == 0 {
		return result
	}

	selected := make(map[string]bool, len(selection))
	for _, s := range selection {
		selected[s] = true
	}

	index := make(map[string]int)
	counts := []models.CategoryCount{}
	for _, labels := range records {
		label, ok := resolveLabel(labels, selected)
		if !ok {
			continue
		}
		i, seen := index[label]
		if !seen {
			i = len(counts)
			index[label] = i
			counts = append(counts, models.CategoryCount{Value: label})
		}
		counts[i].Count++
	}

	RankCounts(counts)
	for _, c := range counts {
		result = append(result, models.TreeCount{Name: c.Value.(string), Count: c.Count})
	}
	return result
}

func resolveLabel(labels models.RankedLabels, selected map[string]bool) (string, bool) {
	for _, l := range labels {
		if l != nil && selected[*l] {
			return *l, true
		}
	}
	return "", false
}
