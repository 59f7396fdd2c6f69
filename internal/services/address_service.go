package services

import (
	"address-directory-service/internal/domain"
	"address-directory-service/internal/platform/obs"
	"address-directory-service/internal/ports"
	"context"
	"fmt"
)

// AddressService is the entry point the transport calls into. It validates
// input, then passes CRUD straight through to the repository and proximity
// queries to WithinDistance.
type AddressService struct {
	Repo ports.AddressRepository
	Calc ports.DistanceCalculator
}

func NewAddressService(repo ports.AddressRepository, calc ports.DistanceCalculator) *AddressService {
	return &AddressService{Repo: repo, Calc: calc}
}

func (s *AddressService) List(ctx context.Context) (_ []domain.Address, err error) {
	defer obs.Time(ctx, "addresses.List")(&err)

	addresses, err := s.Repo.ListAddresses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	return addresses, nil
}

func (s *AddressService) Get(ctx context.Context, id int64) (_ domain.Address, err error) {
	defer obs.Time(ctx, "addresses.Get")(&err)

	return s.Repo.GetAddress(ctx, id)
}

func (s *AddressService) Create(ctx context.Context, a domain.Address) (err error) {
	defer obs.Time(ctx, "addresses.Create")(&err)

	if err := a.Validate(); err != nil {
		return fmt.Errorf("create address: %w", err)
	}
	return s.Repo.InsertAddress(ctx, a)
}

// Update overwrites the address stored under id. Any id carried in a is ignored.
func (s *AddressService) Update(ctx context.Context, id int64, a domain.Address) (err error) {
	defer obs.Time(ctx, "addresses.Update")(&err)

	a.ID = id
	if err := a.Validate(); err != nil {
		return fmt.Errorf("update address: %w", err)
	}
	return s.Repo.UpdateAddress(ctx, id, a)
}

func (s *AddressService) Delete(ctx context.Context, id int64) (err error) {
	defer obs.Time(ctx, "addresses.Delete")(&err)

	return s.Repo.DeleteAddress(ctx, id)
}

func (s *AddressService) WithinDistance(ctx context.Context, center domain.Coordinates, radiusKm float64) ([]domain.Address, error) {
	return WithinDistance(ctx, s.Repo, s.Calc, center, radiusKm)
}
