package ports

import (
	"address-directory-service/internal/domain"
	"context"
)

// Port: the durable keyed record store holding address records.
// Each method is a single atomic operation; no partial writes are observable.
type AddressRepository interface {
	// Return every live record ordered by id.
	ListAddresses(ctx context.Context) ([]domain.Address, error)
	// Return one record, or domain.ErrNotFound.
	GetAddress(ctx context.Context, id int64) (domain.Address, error)
	// Create a record; domain.ErrDuplicateKey when the id is taken.
	InsertAddress(ctx context.Context, a domain.Address) error
	// Overwrite all fields except id; domain.ErrNotFound when absent.
	UpdateAddress(ctx context.Context, id int64, a domain.Address) error
	// Remove a record. Deleting an absent id is not an error.
	DeleteAddress(ctx context.Context, id int64) error
}
