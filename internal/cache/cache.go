package cache

import (
	"context"
	"time"
)

// TokenCache remembers one issued token per username until it expires.
type TokenCache interface {
	// Get returns the cached token for username, if one is still live.
	Get(ctx context.Context, username string) (token string, ok bool, err error)
	// SetIfAbsent stores token for ttl unless a live token already exists.
	// It reports whether the token was stored.
	SetIfAbsent(ctx context.Context, username, token string, ttl time.Duration) (bool, error)
}
