package utils

import (
	"fmt"
	"math"
)

const earthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance between two points in km.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}

func toRad(deg float64) float64 { return deg * math.Pi / 180 }

// RoundCoord quantizes a coordinate component to the given number of decimal
// places, producing stable cache-key fragments for nearby origins.
func RoundCoord(v float64, places int) string {
	return fmt.Sprintf("%.*f", places, v)
}

func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
