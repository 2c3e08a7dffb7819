// Package kvstore persists small pieces of client state (token, profile,
// secondary-password hash) as string-keyed blobs in the local sqlite
// database.
package kvstore

import "context"

type Repository interface {
	// Get returns the stored value, or nil when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
