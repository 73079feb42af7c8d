// Package distlock provides short-lived locks shared by every console
// instance through Redis.
package distlock

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// DistLock is the interface for distributed locking.
// A lock value is owned by the instance that created it; use a new lock
// per key and per attempt.
type DistLock interface {
	// Acquire tries to take the lock. Returns true if successful.
	Acquire(ctx context.Context) (bool, error)
	// Release releases the lock if we still own it.
	Release(ctx context.Context) error
}

// Factory returns a constructor bound to one Redis client, suitable for
// services that take a lock per operation.
func Factory(client *redis.Client) func(key string, ttl time.Duration) DistLock {
	return func(key string, ttl time.Duration) DistLock {
		return NewRedisLock(client, key, ttl)
	}
}
