package repositories

import (
	"address-directory-service/internal/platform/db"
	"address-directory-service/internal/ports"
	"context"
	"fmt"
)

// StoreOptions selects and locates the backing store.
type StoreOptions struct {
	Driver      string // sqlite, postgres or memory
	DBPath      string
	DatabaseURL string
}

// Open connects to the configured store, creates the schema if absent and
// returns the repository with a close function to run at process exit.
func Open(ctx context.Context, opts StoreOptions) (ports.AddressRepository, func(), error) {
	switch opts.Driver {
	case "sqlite", "":
		sqlDB, err := db.OpenSQLite(opts.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open store: %w", err)
		}
		if err := InitSchema(sqlDB); err != nil {
			sqlDB.Close()
			return nil, nil, fmt.Errorf("open store: %w", err)
		}
		return NewSqliteAddressRepository(sqlDB), func() { _ = sqlDB.Close() }, nil

	case "postgres":
		pool, err := db.OpenPostgres(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open store: %w", err)
		}
		if err := InitPostgresSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("open store: %w", err)
		}
		return NewPgxAddressRepository(pool), pool.Close, nil

	case "memory":
		return NewMemoryAddressRepository(), func() {}, nil
	}

	return nil, nil, fmt.Errorf("open store: unknown driver %q", opts.Driver)
}
