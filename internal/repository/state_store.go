package repository

import (
	"context"
	"time"
)

// StateStore is a small key-value cache with per-key TTL. A missing or expired key reads as
// (nil, nil). Backends: Redis (shared across replicas) or in-memory (single instance, dev, tests).
type StateStore interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}
