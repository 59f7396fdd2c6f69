package main

import (
	"address-directory-service/internal/adapters/distance"
	"address-directory-service/internal/adapters/repositories"
	"address-directory-service/internal/api"
	"address-directory-service/internal/config"
	"address-directory-service/internal/services"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// main is the application composition root.
// It wires the configured record store and the geodesic calculator behind
// ports and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeStore, err := repositories.Open(ctx, repositories.StoreOptions{
		Driver:      cfg.StoreDriver,
		DBPath:      cfg.DBPath,
		DatabaseURL: cfg.DatabaseURL,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer closeStore()

	// Optional demo data for local runs.
	if cfg.SeedPath != "" {
		n, err := repositories.SeedFromFile(ctx, repo, cfg.SeedPath)
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("Seeded addresses count=%d path=%s", n, cfg.SeedPath)
	}

	svc := services.NewAddressService(repo, distance.NewGeodesicCalculator())
	router := api.NewRouter(svc)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server listening addr=:%s store=%s", cfg.Port, cfg.StoreDriver)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server failed: %v", err)
		}
	case <-ctx.Done():
		log.Println("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown failed: %v", err)
		}
	}
}
