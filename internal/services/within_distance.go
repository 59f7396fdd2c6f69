package services

import (
	"address-directory-service/internal/domain"
	"address-directory-service/internal/platform/obs"
	"address-directory-service/internal/ports"
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"
)

// WithinDistance returns every address whose geodesic distance from center is
// at most radiusKm. The boundary is inclusive.
//
// The search is a linear scan over one ListAddresses snapshot: O(N) distance
// computations per query, with no spatial index. That is fine into the tens of
// thousands of records; past that, a bounding-box pre-filter in the store is
// the natural next step. Results are ordered by id.
//
// A failed read fails the whole query; no partial result is returned.
func WithinDistance(
	ctx context.Context,
	repo ports.AddressRepository,
	calc ports.DistanceCalculator,
	center domain.Coordinates,
	radiusKm float64,
) (_ []domain.Address, err error) {
	defer obs.Time(ctx, "addresses.WithinDistance")(&err)

	if err := center.Validate(); err != nil {
		return nil, fmt.Errorf("within distance: center: %w", err)
	}
	if math.IsNaN(radiusKm) || math.IsInf(radiusKm, 0) || radiusKm < 0 {
		return nil, fmt.Errorf("within distance: %w: radius %v km must be a finite value >= 0", domain.ErrInvalidArgument, radiusKm)
	}

	addresses, err := repo.ListAddresses(ctx)
	if err != nil {
		return nil, fmt.Errorf("within distance: list addresses: %w", err)
	}

	origin := center.Point()
	matches := make([]domain.Address, 0, len(addresses))
	for _, a := range addresses {
		if calc.DistanceKm(origin, a.Coordinates().Point()) <= radiusKm {
			matches = append(matches, a)
		}
	}

	// Stores already return id order; sort anyway so the result never depends on it.
	slices.SortStableFunc(matches, func(a, b domain.Address) int { return cmp.Compare(a.ID, b.ID) })

	return matches, nil
}
