package utils

import (
	"math"

	"github.com/center-assignment/internal/domain"
)

const (
	earthRadiusKm = 6371.0
	// KmPerDegree approximates the length of one degree of latitude.
	KmPerDegree = 111.0
)

// HaversineDistance returns the great-circle distance between two points in km
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// PointDistance is HaversineDistance over GeoPoints
func PointDistance(a, b domain.GeoPoint) float64 {
	return HaversineDistance(a.Lat, a.Lon, b.Lat, b.Lon)
}

// ValidateCoordinates checks WGS84 latitude/longitude ranges; NaN is rejected
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// ValidatePoints returns the index of the first invalid point, or -1
func ValidatePoints(points []domain.GeoPoint) int {
	for i, p := range points {
		if !ValidateCoordinates(p.Lat, p.Lon) {
			return i
		}
	}
	return -1
}
