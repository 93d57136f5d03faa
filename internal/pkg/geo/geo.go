package geo

import "math"

// earthRadiusM is the mean Earth radius in meters.
const earthRadiusM = 6371000

// DistanceMeters returns the great-circle distance between two WGS84
// coordinates in meters, using the Haversine formula.
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusM * c
}

// WithinRadius reports whether the point (lat, lon) lies inside the circular
// geofence centered at (centerLat, centerLon). The boundary is inclusive.
// The computed distance is returned so callers can persist it with the event.
func WithinRadius(lat, lon, centerLat, centerLon, radiusM float64) (bool, float64) {
	distance := DistanceMeters(lat, lon, centerLat, centerLon)
	return distance <= radiusM, distance
}
