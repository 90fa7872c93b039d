// Package metadata persists the client's durable key/value slots (session
// token, username, encryption key, preferences) in the local database.
package metadata

import (
	"context"
)

// Repository is a single-slot-per-key store. Get returns (nil, nil) for a key
// that has never been set or was deleted, and a non-nil (possibly empty)
// slice for a key that was set. Set overwrites.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
