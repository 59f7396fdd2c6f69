package repositories

import (
	"address-directory-service/internal/domain"
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
)

// In-process implementation of the AddressRepository port.
// Writers take the exclusive lock; ListAddresses copies the map under the
// read lock, so every read is a snapshot of one point in time.
type MemoryAddressRepository struct {
	mu        sync.RWMutex
	addresses map[int64]domain.Address
}

func NewMemoryAddressRepository() *MemoryAddressRepository {
	return &MemoryAddressRepository{addresses: make(map[int64]domain.Address)}
}

func (m *MemoryAddressRepository) ListAddresses(ctx context.Context) ([]domain.Address, error) {
	if err := ctx.Err(); err != nil {
		return nil, storeErr("list addresses", err)
	}

	m.mu.RLock()
	out := make([]domain.Address, 0, len(m.addresses))
	for _, a := range m.addresses {
		out = append(out, a)
	}
	m.mu.RUnlock()

	slices.SortFunc(out, func(a, b domain.Address) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (m *MemoryAddressRepository) GetAddress(ctx context.Context, id int64) (domain.Address, error) {
	if err := ctx.Err(); err != nil {
		return domain.Address{}, storeErr("get address", err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.addresses[id]
	if !ok {
		return domain.Address{}, fmt.Errorf("get address id=%d: %w", id, domain.ErrNotFound)
	}
	return a, nil
}

func (m *MemoryAddressRepository) InsertAddress(ctx context.Context, a domain.Address) error {
	if err := ctx.Err(); err != nil {
		return storeErr("insert address", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.addresses[a.ID]; ok {
		return fmt.Errorf("insert address id=%d: %w", a.ID, domain.ErrDuplicateKey)
	}
	m.addresses[a.ID] = a
	return nil
}

func (m *MemoryAddressRepository) UpdateAddress(ctx context.Context, id int64, a domain.Address) error {
	if err := ctx.Err(); err != nil {
		return storeErr("update address", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.addresses[id]; !ok {
		return fmt.Errorf("update address id=%d: %w", id, domain.ErrNotFound)
	}
	a.ID = id
	m.addresses[id] = a
	return nil
}

func (m *MemoryAddressRepository) DeleteAddress(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return storeErr("delete address", err)
	}

	m.mu.Lock()
	delete(m.addresses, id)
	m.mu.Unlock()
	return nil
}
