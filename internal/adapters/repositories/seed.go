package repositories

import (
	"address-directory-service/internal/domain"
	"address-directory-service/internal/ports"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type AddressSeed struct {
	ID        int64   `json:"id" yaml:"id"`
	Street    string  `json:"street" yaml:"street"`
	City      string  `json:"city" yaml:"city"`
	State     string  `json:"state" yaml:"state"`
	Country   string  `json:"country" yaml:"country"`
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// Parse a seed document. The format is picked from the file extension:
// .yaml and .yml are YAML, anything else is JSON.
func ParseSeed(path string, data []byte) ([]domain.Address, error) {
	var items []AddressSeed

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("parse seed: yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("parse seed: json: %w", err)
		}
	}

	out := make([]domain.Address, 0, len(items))
	for i, item := range items {
		a := domain.Address{
			ID:        item.ID,
			Street:    item.Street,
			City:      item.City,
			State:     item.State,
			Country:   item.Country,
			Latitude:  item.Latitude,
			Longitude: item.Longitude,
		}
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("parse seed: item at index %d: %w", i+1, err)
		}
		out = append(out, a)
	}

	return out, nil
}

// Populate the repository from a JSON or YAML seed file.
// Existing ids are overwritten, so seeding is repeatable.
func SeedFromFile(ctx context.Context, repo ports.AddressRepository, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("seed addresses: read %q: %w", path, err)
	}

	addresses, err := ParseSeed(path, data)
	if err != nil {
		return 0, fmt.Errorf("seed addresses: %w", err)
	}

	for _, a := range addresses {
		err := repo.InsertAddress(ctx, a)
		if errors.Is(err, domain.ErrDuplicateKey) {
			err = repo.UpdateAddress(ctx, a.ID, a)
		}
		if err != nil {
			return 0, fmt.Errorf("seed addresses: id=%d: %w", a.ID, err)
		}
	}

	return len(addresses), nil
}
