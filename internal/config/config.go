package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds process settings read from the environment.
type Config struct {
	Port        string
	StoreDriver string
	DBPath      string
	DatabaseURL string
	SeedPath    string
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// NormalizeDriver folds case and surrounding space so "Postgres " selects postgres.
func NormalizeDriver(driver string) string {
	return strings.ToLower(strings.TrimSpace(driver))
}

// Load reads an optional .env file, then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg := Config{
		Port:        Get("PORT", "8080"),
		StoreDriver: NormalizeDriver(Get("STORE_DRIVER", DriverSQLite)),
		DBPath:      Get("DB_PATH", "data/address_book.db"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		SeedPath:    os.Getenv("SEED_PATH"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.StoreDriver {
	case DriverSQLite:
		if strings.TrimSpace(c.DBPath) == "" {
			return fmt.Errorf("config: DB_PATH is required for driver %q", c.StoreDriver)
		}
	case DriverPostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return fmt.Errorf("config: DATABASE_URL is required for driver %q", c.StoreDriver)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("config: unknown STORE_DRIVER %q (want sqlite, postgres or memory)", c.StoreDriver)
	}

	return nil
}
