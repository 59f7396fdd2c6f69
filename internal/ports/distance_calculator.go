package ports

import "github.com/paulmach/orb"

// Contract for computing the distance between two points on the earth.
type DistanceCalculator interface {
	// Return the distance in kilometres between a and b ([lon, lat] degrees).
	DistanceKm(a, b orb.Point) float64
}
