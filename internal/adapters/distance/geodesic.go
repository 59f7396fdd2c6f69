package distance

import (
	"github.com/paulmach/orb"
	"github.com/tidwall/geodesic"
)

// GeodesicCalculator measures the shortest path between two points over the
// WGS84 ellipsoid (Karney's solution of the inverse geodesic problem).
// It stays accurate near the poles and for near-antipodal points, where
// spherical approximations drift.
type GeodesicCalculator struct {
	ellipsoid *geodesic.Ellipsoid
}

func NewGeodesicCalculator() *GeodesicCalculator {
	return &GeodesicCalculator{ellipsoid: geodesic.WGS84}
}

func (g *GeodesicCalculator) DistanceKm(a, b orb.Point) float64 {
	if a == b {
		return 0
	}

	var meters float64
	g.ellipsoid.Inverse(a.Lat(), a.Lon(), b.Lat(), b.Lon(), &meters, nil, nil)
	return meters / 1000
}
