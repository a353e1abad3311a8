// Package metadata persists small key/value items for the client, most
// importantly the session credentials (bearer token and cached identity).
package metadata

import "context"

// Repository is a durable key/value store.
//
// SetAll and DeleteAll apply all of their writes in a single transaction;
// the session layer relies on this to keep the token and the cached
// identity consistent with each other.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	SetAll(ctx context.Context, items map[string][]byte) error
	DeleteAll(ctx context.Context, keys ...string) error
}
