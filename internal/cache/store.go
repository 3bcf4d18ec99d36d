// Package cache provides the shared key/value store used for rate limiting counters.
package cache

import (
	"context"
	"time"
)

// Store is a shared counter store. Counters reset once their window elapses.
type Store interface {
	IncrementWithTTL(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

func ensureContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
