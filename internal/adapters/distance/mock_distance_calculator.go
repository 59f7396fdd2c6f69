package distance

import "github.com/paulmach/orb"

type MockPair struct {
	From, To orb.Point
	Km       float64
}

// MockDistanceCalculator returns fixed distances for known point pairs,
// in either direction. Unknown pairs are reported as Fallback km.
type MockDistanceCalculator struct {
	m        map[[2]orb.Point]float64
	Fallback float64
}

func NewMockDistanceCalculator(pairs []MockPair, fallback float64) *MockDistanceCalculator {
	m := make(map[[2]orb.Point]float64, 2*len(pairs))
	for _, p := range pairs {
		m[[2]orb.Point{p.From, p.To}] = p.Km
		m[[2]orb.Point{p.To, p.From}] = p.Km
	}
	return &MockDistanceCalculator{m: m, Fallback: fallback}
}

func (c *MockDistanceCalculator) DistanceKm(a, b orb.Point) float64 {
	if a == b {
		return 0
	}
	if km, ok := c.m[[2]orb.Point{a, b}]; ok {
		return km
	}
	return c.Fallback
}
