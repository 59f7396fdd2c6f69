package handlers

import (
	"address-directory-service/internal/api/dto"
	"address-directory-service/internal/domain"
	"address-directory-service/internal/services"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
)

// AddressService is the subset of services.AddressService the handlers use.
type AddressService interface {
	List(ctx context.Context) ([]domain.Address, error)
	Get(ctx context.Context, id int64) (domain.Address, error)
	Create(ctx context.Context, a domain.Address) error
	Update(ctx context.Context, id int64, a domain.Address) error
	Delete(ctx context.Context, id int64) error
	WithinDistance(ctx context.Context, center domain.Coordinates, radiusKm float64) ([]domain.Address, error)
}

var _ AddressService = (*services.AddressService)(nil)

// AddressHandler maps the address directory operations onto HTTP.
type AddressHandler struct {
	Service AddressService
}

// Collection serves GET (list) and POST (create) on /addresses.
func (h *AddressHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		methodNotAllowed(w, r, "GET, POST")
	}
}

// Item serves GET, PUT and DELETE on /addresses/{id}.
func (h *AddressHandler) Item(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "id must be an integer")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		methodNotAllowed(w, r, "GET, PUT, DELETE")
	}
}

// WithinDistance serves the proximity search:
// GET /addresses/addresses_within_distance?latitude=..&longitude=..&distance=..
func (h *AddressHandler) WithinDistance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}

	q := r.URL.Query()
	lat, err := parseFloatParam(q.Get("latitude"), "latitude")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	lon, err := parseFloatParam(q.Get("longitude"), "longitude")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	radius, err := parseFloatParam(q.Get("distance"), "distance")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	addrs, err := h.Service.WithinDistance(r.Context(), domain.Coordinates{Lat: lat, Lon: lon}, radius)
	if err != nil {
		writeServiceError(w, r, "addresses within distance", err)
		return
	}

	writeAddresses(w, r, addrs)
}

func (h *AddressHandler) list(w http.ResponseWriter, r *http.Request) {
	addrs, err := h.Service.List(r.Context())
	if err != nil {
		writeServiceError(w, r, "list addresses", err)
		return
	}

	writeAddresses(w, r, addrs)
}

func (h *AddressHandler) get(w http.ResponseWriter, r *http.Request, id int64) {
	a, err := h.Service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, "get address", err)
		return
	}

	writeJSON(w, r, http.StatusOK, toResponse(a))
}

func (h *AddressHandler) create(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeAddress(w, r)
	if !ok {
		return
	}
	if req.ID == nil {
		writeError(w, r, http.StatusBadRequest, "id is required")
		return
	}

	if err := h.Service.Create(r.Context(), toDomain(*req.ID, req)); err != nil {
		writeServiceError(w, r, "create address", err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.MessageResponse{Message: "Address created successfully"})
}

func (h *AddressHandler) update(w http.ResponseWriter, r *http.Request, id int64) {
	req, ok := decodeAddress(w, r)
	if !ok {
		return
	}

	if err := h.Service.Update(r.Context(), id, toDomain(id, req)); err != nil {
		writeServiceError(w, r, "update address", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.MessageResponse{
		Message: fmt.Sprintf("Address with id %d updated successfully", id),
	})
}

func (h *AddressHandler) delete(w http.ResponseWriter, r *http.Request, id int64) {
	if err := h.Service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, "delete address", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.MessageResponse{
		Message: fmt.Sprintf("Address with id %d deleted successfully", id),
	})
}

// decodeAddress reads exactly one JSON object and checks that both
// coordinates are present. It writes the 400 itself on failure.
func decodeAddress(w http.ResponseWriter, r *http.Request) (dto.AddressRequest, bool) {
	var req dto.AddressRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return req, false
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return req, false
	}

	if req.Latitude == nil || req.Longitude == nil {
		writeError(w, r, http.StatusBadRequest, "latitude and longitude are required")
		return req, false
	}

	return req, true
}

func parseFloatParam(raw, name string) (float64, error) {
	if raw == "" {
		return 0, fmt.Errorf("%s is required", name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", name)
	}
	return v, nil
}

func toDomain(id int64, req dto.AddressRequest) domain.Address {
	return domain.Address{
		ID:        id,
		Street:    req.Street,
		City:      req.City,
		State:     req.State,
		Country:   req.Country,
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
	}
}

func toResponse(a domain.Address) dto.AddressResponse {
	return dto.AddressResponse{
		ID:        a.ID,
		Street:    a.Street,
		City:      a.City,
		State:     a.State,
		Country:   a.Country,
		Latitude:  a.Latitude,
		Longitude: a.Longitude,
	}
}

func writeAddresses(w http.ResponseWriter, r *http.Request, addrs []domain.Address) {
	if wantsGeoJSON(r) {
		writeBody(w, r, geoJSONContentType, http.StatusOK, toFeatureCollection(addrs))
		return
	}

	res := make([]dto.AddressResponse, 0, len(addrs))
	for _, a := range addrs {
		res = append(res, toResponse(a))
	}
	writeJSON(w, r, http.StatusOK, res)
}
