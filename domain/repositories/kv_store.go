package repositories

import "context"

// KeyValueStore is the persistent string store behind the directory.
// A Set is treated as atomic and durable once it returns nil.
type KeyValueStore interface {
	// Get returns the value under key; found is false when the key is absent.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}
