package repositories

import (
	"address-directory-service/internal/domain"
	"fmt"
)

// storeErr marks a driver failure as domain.ErrStoreUnavailable while keeping
// the underlying cause inspectable.
func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
}
