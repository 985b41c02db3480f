package spatial

import (
	"sort"

	"github.com/jengzang/crime-analytics-go/internal/models"
)

// ClusterCentroids groups members by their pre-assigned cluster id and
// returns one centroid per cluster, ordered by id.
//
// CountCrimes is copied from the first member of each cluster. The value is
// computed upstream and assumed uniform within a cluster; it is not checked.
// Matched carries the number of members actually grouped.
func ClusterCentroids(members []models.ClusterMember) []models.ClusterPoint {
	groups := make(map[int64][]Point)
	counts := make(map[int64]int64)
	var ids []int64

	for _, m := range members {
		if _, ok := groups[m.Cluster]; !ok {
			ids = append(ids, m.Cluster)
			counts[m.Cluster] = m.CountCrimes
		}
		groups[m.Cluster] = append(groups[m.Cluster], Point{Lat: m.Latitude, Lon: m.Longitude})
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	points := make([]models.ClusterPoint, 0, len(ids))
	for _, id := range ids {
		group := groups[id]
		c := Centroid(group)
		points = append(points, models.ClusterPoint{
			Cluster:      id,
			Latitude:     c.Lat,
			Longitude:    c.Lon,
			CountCrimes:  counts[id],
			Matched:      len(group),
			SpreadMeters: MaxDistance(c, group),
		})
	}
	return points
}
