package utils

import "math"

// EarthRadiusKM is the mean earth radius used by HaversineKM.
const EarthRadiusKM = 6371.0

// HaversineKM returns the great-circle distance in kilometers between two lat/lon points.
func HaversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	la1 := lat1 * math.Pi / 180
	la2 := lat2 * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(la1)*math.Cos(la2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKM * c
}

// RoundMinutes rounds a fractional minute estimate to whole minutes, never below 1
// for a positive input.
func RoundMinutes(minutes float64) int {
	if minutes <= 0 {
		return 0
	}
	m := int(math.Round(minutes))
	if m < 1 {
		return 1
	}
	return m
}
