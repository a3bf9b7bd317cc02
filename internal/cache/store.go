// Package cache provides the small key/value store used for token revocation
package cache

import (
	"context"
	"time"
)

// Store is a key/value store with per-key expiry
type Store interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
