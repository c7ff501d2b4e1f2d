package geo

import (
	"github.com/golang/geo/s2"
)

const earthRadiusKm = 6371.0

// HaversineKm is the great-circle distance between two points in kilometres.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	a := s2.LatLngFromDegrees(lat1, lng1)
	b := s2.LatLngFromDegrees(lat2, lng2)
	return a.Distance(b).Radians() * earthRadiusKm
}

// Valid reports whether lat/lng are finite and inside the usual degree ranges.
func Valid(lat, lng float64) bool {
	return s2.LatLngFromDegrees(lat, lng).IsValid()
}
