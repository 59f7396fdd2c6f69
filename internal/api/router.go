package api

import (
	"address-directory-service/internal/api/handlers"
	"net/http"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(svc handlers.AddressService) http.Handler {
	mux := http.NewServeMux()

	addrHandler := &handlers.AddressHandler{Service: svc}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/addresses", addrHandler.Collection)
	mux.HandleFunc("/addresses/addresses_within_distance", addrHandler.WithinDistance)
	mux.HandleFunc("/addresses/{id}", addrHandler.Item)

	return requestIDMiddleware(loggingMiddleware(mux))
}
