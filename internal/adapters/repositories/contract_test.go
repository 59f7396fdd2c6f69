package repositories

import (
	"address-directory-service/internal/domain"
	"address-directory-service/internal/ports"
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	newYork = domain.Address{
		ID: 1, Street: "350 5th Ave", City: "New York", State: "NY", Country: "USA",
		Latitude: 40.7128, Longitude: -74.0060,
	}
	losAngeles = domain.Address{
		ID: 2, Street: "200 N Spring St", City: "Los Angeles", State: "CA", Country: "USA",
		Latitude: 34.0522, Longitude: -118.2437,
	}
)

// runRepositoryContract exercises the behaviour every AddressRepository must share.
// newRepo must return an empty repository.
func runRepositoryContract(t *testing.T, newRepo func(t *testing.T) ports.AddressRepository) {
	ctx := context.Background()

	t.Run("insert then list round-trips", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.InsertAddress(ctx, newYork))

		got, err := repo.ListAddresses(ctx)
		require.NoError(t, err)
		require.Equal(t, []domain.Address{newYork}, got)
	})

	t.Run("list is empty and ordered by id", func(t *testing.T) {
		repo := newRepo(t)

		got, err := repo.ListAddresses(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)

		require.NoError(t, repo.InsertAddress(ctx, losAngeles))
		require.NoError(t, repo.InsertAddress(ctx, newYork))

		got, err = repo.ListAddresses(ctx)
		require.NoError(t, err)
		assert.Equal(t, []domain.Address{newYork, losAngeles}, got)
	})

	t.Run("duplicate insert fails and keeps original", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.InsertAddress(ctx, newYork))

		dup := losAngeles
		dup.ID = newYork.ID
		err := repo.InsertAddress(ctx, dup)
		require.ErrorIs(t, err, domain.ErrDuplicateKey)

		got, err := repo.GetAddress(ctx, newYork.ID)
		require.NoError(t, err)
		assert.Equal(t, newYork, got)
	})

	t.Run("update overwrites all fields but id", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.InsertAddress(ctx, newYork))

		changed := losAngeles
		changed.ID = 999
		require.NoError(t, repo.UpdateAddress(ctx, newYork.ID, changed))

		got, err := repo.GetAddress(ctx, newYork.ID)
		require.NoError(t, err)

		want := losAngeles
		want.ID = newYork.ID
		assert.Equal(t, want, got)

		_, err = repo.GetAddress(ctx, 999)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("update with unchanged values succeeds", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.InsertAddress(ctx, newYork))
		require.NoError(t, repo.UpdateAddress(ctx, newYork.ID, newYork))
	})

	t.Run("update of missing id is not found", func(t *testing.T) {
		repo := newRepo(t)
		err := repo.UpdateAddress(ctx, 42, newYork)
		require.ErrorIs(t, err, domain.ErrNotFound)

		got, err := repo.ListAddresses(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.InsertAddress(ctx, newYork))
		require.NoError(t, repo.InsertAddress(ctx, losAngeles))

		require.NoError(t, repo.DeleteAddress(ctx, newYork.ID))
		require.NoError(t, repo.DeleteAddress(ctx, newYork.ID))
		require.NoError(t, repo.DeleteAddress(ctx, 12345))

		got, err := repo.ListAddresses(ctx)
		require.NoError(t, err)
		assert.Equal(t, []domain.Address{losAngeles}, got)
	})

	t.Run("get of missing id is not found", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.GetAddress(ctx, 7)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("zero and negative ids round-trip", func(t *testing.T) {
		repo := newRepo(t)

		zero := newYork
		zero.ID = 0
		negative := losAngeles
		negative.ID = -42
		require.NoError(t, repo.InsertAddress(ctx, zero))
		require.NoError(t, repo.InsertAddress(ctx, negative))

		got, err := repo.ListAddresses(ctx)
		require.NoError(t, err)
		assert.Equal(t, []domain.Address{negative, zero}, got)

		require.ErrorIs(t, repo.InsertAddress(ctx, zero), domain.ErrDuplicateKey)

		moved := zero
		moved.City = "Brooklyn"
		require.NoError(t, repo.UpdateAddress(ctx, 0, moved))
		one, err := repo.GetAddress(ctx, 0)
		require.NoError(t, err)
		assert.Equal(t, moved, one)

		require.NoError(t, repo.DeleteAddress(ctx, -42))
		require.NoError(t, repo.DeleteAddress(ctx, -42))
		_, err = repo.GetAddress(ctx, -42)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("concurrent inserts of one id have a single winner", func(t *testing.T) {
		repo := newRepo(t)

		const writers = 8
		var wins atomic.Int32
		var wg sync.WaitGroup
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				a := newYork
				a.Street = string(rune('A' + n))
				if err := repo.InsertAddress(ctx, a); err == nil {
					wins.Add(1)
				} else {
					assert.ErrorIs(t, err, domain.ErrDuplicateKey)
				}
			}(i)
		}
		wg.Wait()

		assert.Equal(t, int32(1), wins.Load())

		got, err := repo.ListAddresses(ctx)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("concurrent updates of one id leave one full record", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.InsertAddress(ctx, newYork))

		const writers = 8
		versions := make([]domain.Address, writers)
		for i := range versions {
			versions[i] = writerVersion(newYork.ID, i)
		}

		var wg sync.WaitGroup
		for _, v := range versions {
			wg.Add(1)
			go func(v domain.Address) {
				defer wg.Done()
				assert.NoError(t, repo.UpdateAddress(ctx, v.ID, v))
			}(v)
		}
		wg.Wait()

		got, err := repo.GetAddress(ctx, newYork.ID)
		require.NoError(t, err)
		assert.Contains(t, versions, got)
	})

	t.Run("list during writes never sees a mixed row", func(t *testing.T) {
		repo := newRepo(t)
		a := writerVersion(newYork.ID, 0)
		b := writerVersion(newYork.ID, 1)
		require.NoError(t, repo.InsertAddress(ctx, a))

		done := make(chan struct{})
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				v := a
				if i%2 == 0 {
					v = b
				}
				assert.NoError(t, repo.UpdateAddress(ctx, v.ID, v))
			}
			close(done)
		}()

		for reading := true; reading; {
			select {
			case <-done:
				reading = false
			default:
			}

			got, err := repo.ListAddresses(ctx)
			require.NoError(t, err)
			require.Len(t, got, 1)
			if got[0] != a && got[0] != b {
				t.Fatalf("list returned a mixed row: %+v", got[0])
			}
		}
		wg.Wait()
	})
}

// writerVersion builds a record whose every field identifies writer n.
func writerVersion(id int64, n int) domain.Address {
	return domain.Address{
		ID:        id,
		Street:    fmt.Sprintf("%d Writer St", n),
		City:      fmt.Sprintf("City %d", n),
		State:     fmt.Sprintf("S%d", n),
		Country:   fmt.Sprintf("Country %d", n),
		Latitude:  float64(n),
		Longitude: float64(-n),
	}
}
