package metadata

import "context"

// Repository is a small key/value store for client-side bookkeeping such as
// the last synced identity and the last successful sync time.
type Repository interface {
	// Get returns the value for key or sql.ErrNoRows.
	Get(ctx context.Context, key string) (string, error)

	// Set inserts or replaces the value for key.
	Set(ctx context.Context, key, value string) error
}
