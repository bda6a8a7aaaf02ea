package cache

import (
	"context"
	"time"
)

// Cache is the contract for the response cache (Redis in production).
type Cache interface {
	// Get unmarshals the cached value into dest.
	// found=false means a miss and dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value with the given TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Ping checks the connection.
	Ping(ctx context.Context) error
}
