package spatial

// Point represents a 2D point with latitude and longitude
type Point struct {
	Lat float64
	Lon float64
}

// Centroid returns the arithmetic mean of the coordinates
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}

	var sumLat, sumLon float64
	for _, p := range points {
		sumLat += p.Lat
		sumLon += p.Lon
	}

	return Point{
		Lat: sumLat / float64(len(points)),
		Lon: sumLon / float64(len(points)),
	}
}

// MaxDistance returns the largest great-circle distance in meters from
// origin to any of the points
func MaxDistance(origin Point, points []Point) float64 {
	var max float64
	for _, p := range points {
		if d := HaversineDistance(origin.Lat, origin.Lon, p.Lat, p.Lon); d > max {
			max = d
		}
	}
	return max
}
