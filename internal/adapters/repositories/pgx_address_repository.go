package repositories

import (
	"address-directory-service/internal/domain"
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createAddressTablePgx = `
CREATE TABLE IF NOT EXISTS addresses (
	id BIGINT PRIMARY KEY,
	street TEXT NOT NULL,
	city TEXT NOT NULL,
	state TEXT NOT NULL,
	country TEXT NOT NULL,
	latitude DOUBLE PRECISION NOT NULL,
	longitude DOUBLE PRECISION NOT NULL
);
`

// PostgreSQL implementation of the AddressRepository port on a pgx pool.
// Every method is one statement, so each runs in its own implicit transaction
// and concurrent writers to the same id are serialized by row locks.
type PgxAddressRepository struct {
	Pool *pgxpool.Pool
}

func NewPgxAddressRepository(pool *pgxpool.Pool) *PgxAddressRepository {
	return &PgxAddressRepository{Pool: pool}
}

// Create the addresses table if it does not exist.
func InitPostgresSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if pool == nil {
		return errors.New("init postgres schema: pool is nil")
	}

	if _, err := pool.Exec(ctx, createAddressTablePgx); err != nil {
		return fmt.Errorf("init postgres schema: create addresses table: %w", err)
	}

	return nil
}

func (r *PgxAddressRepository) ListAddresses(ctx context.Context) ([]domain.Address, error) {
	if r.Pool == nil {
		return nil, storeErr("list addresses", errors.New("pgx address repository: pool is nil"))
	}

	rows, err := r.Pool.Query(ctx, `
	SELECT id, street, city, state, country, latitude, longitude
	FROM addresses
	ORDER BY id;
	`)
	if err != nil {
		return nil, storeErr("list addresses: query addresses table", err)
	}

	addresses, err := pgx.CollectRows(rows, pgx.RowToStructByPos[domain.Address])
	if err != nil {
		return nil, storeErr("list addresses: collect rows", err)
	}

	return addresses, nil
}

func (r *PgxAddressRepository) GetAddress(ctx context.Context, id int64) (domain.Address, error) {
	if r.Pool == nil {
		return domain.Address{}, storeErr("get address", errors.New("pgx address repository: pool is nil"))
	}

	var a domain.Address
	err := r.Pool.QueryRow(ctx, `
	SELECT id, street, city, state, country, latitude, longitude
	FROM addresses
	WHERE id = $1;
	`, id).Scan(&a.ID, &a.Street, &a.City, &a.State, &a.Country, &a.Latitude, &a.Longitude)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Address{}, fmt.Errorf("get address id=%d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Address{}, storeErr(fmt.Sprintf("get address id=%d", id), err)
	}

	return a, nil
}

func (r *PgxAddressRepository) InsertAddress(ctx context.Context, a domain.Address) error {
	if r.Pool == nil {
		return storeErr("insert address", errors.New("pgx address repository: pool is nil"))
	}

	tag, err := r.Pool.Exec(ctx, `
	INSERT INTO addresses (id, street, city, state, country, latitude, longitude)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (id) DO NOTHING;
	`, a.ID, a.Street, a.City, a.State, a.Country, a.Latitude, a.Longitude)
	if err != nil {
		return storeErr(fmt.Sprintf("insert address id=%d", a.ID), err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("insert address id=%d: %w", a.ID, domain.ErrDuplicateKey)
	}

	return nil
}

func (r *PgxAddressRepository) UpdateAddress(ctx context.Context, id int64, a domain.Address) error {
	if r.Pool == nil {
		return storeErr("update address", errors.New("pgx address repository: pool is nil"))
	}

	tag, err := r.Pool.Exec(ctx, `
	UPDATE addresses
	SET street = $1,
		city = $2,
		state = $3,
		country = $4,
		latitude = $5,
		longitude = $6
	WHERE id = $7;
	`, a.Street, a.City, a.State, a.Country, a.Latitude, a.Longitude, id)
	if err != nil {
		return storeErr(fmt.Sprintf("update address id=%d", id), err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update address id=%d: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *PgxAddressRepository) DeleteAddress(ctx context.Context, id int64) error {
	if r.Pool == nil {
		return storeErr("delete address", errors.New("pgx address repository: pool is nil"))
	}

	if _, err := r.Pool.Exec(ctx, `DELETE FROM addresses WHERE id = $1;`, id); err != nil {
		return storeErr(fmt.Sprintf("delete address id=%d", id), err)
	}

	return nil
}
