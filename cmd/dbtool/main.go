package main

import (
	"address-directory-service/internal/adapters/repositories"
	"address-directory-service/internal/config"
	"address-directory-service/internal/ports"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	Driver      string
	DBPath      string
	DatabaseURL string
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		log.Println(err)
		stop()
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "dbtool",
		Short:         "Manage the address directory database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.Driver, "driver", config.Get("STORE_DRIVER", config.DriverSQLite), "store driver: sqlite or postgres")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", config.Get("DB_PATH", "data/address_book.db"), "path to SQLite database")
	cmd.PersistentFlags().StringVar(&opts.DatabaseURL, "database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection URL")

	cmd.AddCommand(newInitCommand(opts), newSeedCommand(opts))
	return cmd
}

func newInitCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the addresses table if it does not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Println("Initializing database schema...")
			_, closeStore, err := openStore(cmd.Context(), opts)
			if err != nil {
				return err
			}
			closeStore()
			log.Println("Schema ready.")
			return nil
		},
	}
}

func newSeedCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file>",
		Short: "Load addresses from a JSON or YAML file",
		Long: `Load addresses from a JSON or YAML file, creating the schema first.

Existing ids are overwritten, so seeding the same file twice is safe.

Example:
  dbtool seed data/seeds/addresses.json
  dbtool --driver postgres --database-url postgres://localhost/addresses seed seeds.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, closeStore, err := openStore(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer closeStore()

			log.Println("Seeding database...")
			n, err := repositories.SeedFromFile(cmd.Context(), repo, args[0])
			if err != nil {
				return err
			}
			log.Printf("Seeding complete. count=%d", n)
			return nil
		},
	}
}

// storeConfig resolves the flags into a validated config. The memory driver
// is refused: anything written to it would be lost when dbtool exits.
func storeConfig(opts *rootOptions) (config.Config, error) {
	cfg := config.Config{
		StoreDriver: config.NormalizeDriver(opts.Driver),
		DBPath:      opts.DBPath,
		DatabaseURL: opts.DatabaseURL,
	}
	if cfg.StoreDriver == config.DriverMemory {
		return config.Config{}, fmt.Errorf("dbtool: driver %q is not persistent (want sqlite or postgres)", cfg.StoreDriver)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

func openStore(ctx context.Context, opts *rootOptions) (ports.AddressRepository, func(), error) {
	cfg, err := storeConfig(opts)
	if err != nil {
		return nil, nil, err
	}

	return repositories.Open(ctx, repositories.StoreOptions{
		Driver:      cfg.StoreDriver,
		DBPath:      cfg.DBPath,
		DatabaseURL: cfg.DatabaseURL,
	})
}
