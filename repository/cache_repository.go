package repository

import "context"

// CacheRepository stores serialized simulation results by key.
// A failed Get is reported as a miss.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string) error
}
