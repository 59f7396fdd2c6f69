package domain

import "errors"

var (
	// Malformed or out-of-range input. Never retried.
	ErrInvalidArgument = errors.New("invalid argument")
	// Insert of an id that already exists.
	ErrDuplicateKey = errors.New("duplicate key")
	// Referenced id is absent.
	ErrNotFound = errors.New("not found")
	// Infrastructure fault in the record store; safe to retry with backoff.
	ErrStoreUnavailable = errors.New("store unavailable")
)
