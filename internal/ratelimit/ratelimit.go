// Package ratelimit provides fixed-window request limiting for the login
// endpoint, in-process by default and Redis-backed when configured.
package ratelimit

import (
	"context"
	"time"
)

// Decision reports the outcome of one Allow call.
type Decision struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// Limiter counts events per key within a fixed window.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (Decision, error)
}
