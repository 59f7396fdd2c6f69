package repositories

import (
	"address-directory-service/internal/domain"
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQLite-backed implementation of the AddressRepository port.
// The handle is expected to be opened by db.OpenSQLite, which limits the
// pool to a single connection so writes are serialized by the database.
type SqliteAddressRepository struct{ DB *sql.DB }

func NewSqliteAddressRepository(db *sql.DB) *SqliteAddressRepository {
	return &SqliteAddressRepository{DB: db}
}

// Return all addresses stored in the database, ordered by id.
func (s *SqliteAddressRepository) ListAddresses(ctx context.Context) ([]domain.Address, error) {
	if s.DB == nil {
		return nil, storeErr("list addresses", errors.New("sqlite address repository: DB is nil"))
	}

	query := `
	SELECT
		id,
		street,
		city,
		state,
		country,
		latitude,
		longitude
	FROM addresses
	ORDER BY id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, storeErr("list addresses: query addresses table", err)
	}
	defer rows.Close()

	addresses := make([]domain.Address, 0, 64)
	for rows.Next() {
		var a domain.Address
		if err := rows.Scan(&a.ID, &a.Street, &a.City, &a.State, &a.Country, &a.Latitude, &a.Longitude); err != nil {
			return nil, storeErr("list addresses: scan row", err)
		}
		addresses = append(addresses, a)
	}

	if err := rows.Err(); err != nil {
		return nil, storeErr("list addresses: row iteration", err)
	}

	return addresses, nil
}

func (s *SqliteAddressRepository) GetAddress(ctx context.Context, id int64) (domain.Address, error) {
	if s.DB == nil {
		return domain.Address{}, storeErr("get address", errors.New("sqlite address repository: DB is nil"))
	}

	query := `
	SELECT
		id,
		street,
		city,
		state,
		country,
		latitude,
		longitude
	FROM addresses
	WHERE id = ?;
	`
	var a domain.Address
	err := s.DB.QueryRowContext(ctx, query, id).
		Scan(&a.ID, &a.Street, &a.City, &a.State, &a.Country, &a.Latitude, &a.Longitude)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Address{}, fmt.Errorf("get address id=%d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Address{}, storeErr(fmt.Sprintf("get address id=%d", id), err)
	}

	return a, nil
}

// Insert a new address. A conflicting id leaves the stored row untouched.
func (s *SqliteAddressRepository) InsertAddress(ctx context.Context, a domain.Address) error {
	if s.DB == nil {
		return storeErr("insert address", errors.New("sqlite address repository: DB is nil"))
	}

	query := `
	INSERT INTO addresses (
		id,
		street,
		city,
		state,
		country,
		latitude,
		longitude
	)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (id) DO NOTHING;
	`
	res, err := s.DB.ExecContext(ctx, query, a.ID, a.Street, a.City, a.State, a.Country, a.Latitude, a.Longitude)
	if err != nil {
		return storeErr(fmt.Sprintf("insert address id=%d", a.ID), err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return storeErr(fmt.Sprintf("insert address id=%d: rows affected", a.ID), err)
	}
	if n == 0 {
		return fmt.Errorf("insert address id=%d: %w", a.ID, domain.ErrDuplicateKey)
	}

	return nil
}

// Overwrite every field except id.
func (s *SqliteAddressRepository) UpdateAddress(ctx context.Context, id int64, a domain.Address) error {
	if s.DB == nil {
		return storeErr("update address", errors.New("sqlite address repository: DB is nil"))
	}

	query := `
	UPDATE addresses
	SET street = ?,
		city = ?,
		state = ?,
		country = ?,
		latitude = ?,
		longitude = ?
	WHERE id = ?;
	`
	res, err := s.DB.ExecContext(ctx, query, a.Street, a.City, a.State, a.Country, a.Latitude, a.Longitude, id)
	if err != nil {
		return storeErr(fmt.Sprintf("update address id=%d", id), err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return storeErr(fmt.Sprintf("update address id=%d: rows affected", id), err)
	}
	if n == 0 {
		return fmt.Errorf("update address id=%d: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (s *SqliteAddressRepository) DeleteAddress(ctx context.Context, id int64) error {
	if s.DB == nil {
		return storeErr("delete address", errors.New("sqlite address repository: DB is nil"))
	}

	if _, err := s.DB.ExecContext(ctx, `DELETE FROM addresses WHERE id = ?;`, id); err != nil {
		return storeErr(fmt.Sprintf("delete address id=%d", id), err)
	}

	return nil
}
