package store

import "context"

// Adapter defines the interface for persistence backends.
// Implementations must be thread-safe.
type Adapter interface {
	// Get retrieves a value by key. Returns nil, false, nil if not found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value by key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes a key. No error if key doesn't exist.
	Delete(ctx context.Context, key string) error

	// Keys returns all keys in ascending order.
	Keys(ctx context.Context) ([]string, error)

	// Close releases resources held by the adapter.
	Close() error
}
