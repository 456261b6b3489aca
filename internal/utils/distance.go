package utils

import (
	"math"
)

// CalculateDistance returns the great-circle distance between two
// coordinates in meters.
func CalculateDistance(lat1, lon1, lat2, lon2 float64) float64 {
	return haversineDistance(lat1, lon1, lat2, lon2)
}

func haversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	// Convert to radians
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180

	// Differences
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	// Haversine formula
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

// IsWithinRadius reports whether a point lies within radiusMeters of the
// center. A point exactly on the boundary counts as inside.
func IsWithinRadius(centerLat, centerLon, pointLat, pointLon, radiusMeters float64) bool {
	return CalculateDistance(centerLat, centerLon, pointLat, pointLon) <= radiusMeters
}
