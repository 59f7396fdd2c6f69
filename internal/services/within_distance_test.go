package services

import (
	"address-directory-service/internal/adapters/distance"
	"address-directory-service/internal/adapters/repositories"
	"address-directory-service/internal/domain"
	"context"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	newYork    = domain.Address{ID: 1, Street: "350 5th Ave", City: "New York", State: "NY", Country: "USA", Latitude: 40.7128, Longitude: -74.0060}
	losAngeles = domain.Address{ID: 2, Street: "200 N Spring St", City: "Los Angeles", State: "CA", Country: "USA", Latitude: 34.0522, Longitude: -118.2437}
)

type unavailableRepo struct {
	*repositories.MemoryAddressRepository
}

func (unavailableRepo) ListAddresses(context.Context) ([]domain.Address, error) {
	return nil, domain.ErrStoreUnavailable
}

func seededRepo(t *testing.T, addrs ...domain.Address) *repositories.MemoryAddressRepository {
	t.Helper()
	repo := repositories.NewMemoryAddressRepository()
	for _, a := range addrs {
		require.NoError(t, repo.InsertAddress(context.Background(), a))
	}
	return repo
}

func ids(addrs []domain.Address) []int64 {
	out := make([]int64, 0, len(addrs))
	for _, a := range addrs {
		out = append(out, a.ID)
	}
	return out
}

func TestWithinDistanceNewYorkLosAngeles(t *testing.T) {
	ctx := context.Background()
	repo := seededRepo(t, losAngeles, newYork)
	calc := distance.NewGeodesicCalculator()
	center := domain.Coordinates{Lat: 40.7128, Lon: -74.0060}

	got, err := WithinDistance(ctx, repo, calc, center, 10)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids(got))

	got, err = WithinDistance(ctx, repo, calc, center, 5000)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, ids(got))
}

func TestWithinDistanceBoundaryIsInclusive(t *testing.T) {
	ctx := context.Background()
	center := domain.Coordinates{Lat: 0, Lon: 0}
	onEdge := domain.Address{ID: 5, Latitude: 1, Longitude: 1}
	outside := domain.Address{ID: 6, Latitude: 2, Longitude: 2}

	calc := distance.NewMockDistanceCalculator([]distance.MockPair{
		{From: center.Point(), To: onEdge.Coordinates().Point(), Km: 100},
		{From: center.Point(), To: outside.Coordinates().Point(), Km: 100.000001},
	}, math.MaxFloat64)

	got, err := WithinDistance(ctx, seededRepo(t, onEdge, outside), calc, center, 100)
	require.NoError(t, err)
	assert.Equal(t, []int64{5}, ids(got))
}

func TestWithinDistanceMatchesDistancePredicate(t *testing.T) {
	ctx := context.Background()
	calc := distance.NewGeodesicCalculator()
	rng := rand.New(rand.NewPCG(1, 2))

	var addrs []domain.Address
	for i := int64(1); i <= 200; i++ {
		addrs = append(addrs, domain.Address{
			ID:        i,
			Latitude:  rng.Float64()*180 - 90,
			Longitude: rng.Float64()*360 - 180,
		})
	}
	repo := seededRepo(t, addrs...)

	for q := 0; q < 20; q++ {
		center := domain.Coordinates{Lat: rng.Float64()*180 - 90, Lon: rng.Float64()*360 - 180}
		radius := rng.Float64() * 12000

		got, err := WithinDistance(ctx, repo, calc, center, radius)
		require.NoError(t, err)

		var want []int64
		for _, a := range addrs {
			if calc.DistanceKm(center.Point(), a.Coordinates().Point()) <= radius {
				want = append(want, a.ID)
			}
		}
		if want == nil {
			want = []int64{}
		}
		assert.Equal(t, want, ids(got), "center=%+v radius=%v", center, radius)
	}

	// A radius equal to a record's exact distance must include it.
	center := domain.Coordinates{Lat: 10, Lon: 20}
	target := addrs[17]
	exact := calc.DistanceKm(center.Point(), target.Coordinates().Point())
	got, err := WithinDistance(ctx, repo, calc, center, exact)
	require.NoError(t, err)
	assert.Contains(t, ids(got), target.ID)
}

func TestWithinDistanceZeroRadius(t *testing.T) {
	ctx := context.Background()
	here := domain.Address{ID: 1, Latitude: 51.5074, Longitude: -0.1278}
	alsoHere := domain.Address{ID: 3, Latitude: 51.5074, Longitude: -0.1278}
	nearby := domain.Address{ID: 2, Latitude: 51.5075, Longitude: -0.1278}

	got, err := WithinDistance(ctx, seededRepo(t, here, nearby, alsoHere), distance.NewGeodesicCalculator(),
		here.Coordinates(), 0)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, ids(got))
}

func TestWithinDistanceEmptyStore(t *testing.T) {
	got, err := WithinDistance(context.Background(), repositories.NewMemoryAddressRepository(),
		distance.NewGeodesicCalculator(), domain.Coordinates{}, 100)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestWithinDistanceRejectsInvalidArguments(t *testing.T) {
	repo := seededRepo(t, newYork)
	calc := distance.NewGeodesicCalculator()

	cases := []struct {
		name   string
		center domain.Coordinates
		radius float64
	}{
		{"negative radius", domain.Coordinates{}, -1},
		{"NaN radius", domain.Coordinates{}, math.NaN()},
		{"infinite radius", domain.Coordinates{}, math.Inf(1)},
		{"latitude out of range", domain.Coordinates{Lat: 90.1}, 10},
		{"longitude out of range", domain.Coordinates{Lon: -180.1}, 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := WithinDistance(context.Background(), repo, calc, tc.center, tc.radius)
			require.ErrorIs(t, err, domain.ErrInvalidArgument)
		})
	}
}

func TestWithinDistanceStoreFailureReturnsNothing(t *testing.T) {
	repo := unavailableRepo{repositories.NewMemoryAddressRepository()}

	got, err := WithinDistance(context.Background(), repo, distance.NewGeodesicCalculator(), domain.Coordinates{}, 10)
	require.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.Nil(t, got)
}
