// Package cache provides the TTL key/value stores backing sessions and
// cached upstream tokens.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when a key is absent or expired
var ErrCacheMiss = errors.New("cache: key not found")

// Store is a byte-oriented key/value store with per-key expiry
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Prefixed scopes every key of a Store under a fixed prefix so several
// consumers can share one Redis database.
type Prefixed struct {
	store  Store
	prefix string
}

// NewPrefixed wraps store so every key is prefixed
func NewPrefixed(store Store, prefix string) *Prefixed {
	return &Prefixed{store: store, prefix: prefix}
}

// Get implements Store
func (p *Prefixed) Get(ctx context.Context, key string) ([]byte, error) {
	return p.store.Get(ctx, p.prefix+key)
}

// Set implements Store
func (p *Prefixed) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return p.store.Set(ctx, p.prefix+key, value, ttl)
}

// Delete implements Store
func (p *Prefixed) Delete(ctx context.Context, key string) error {
	return p.store.Delete(ctx, p.prefix+key)
}

// Close is a no-op; the wrapped store is owned by whoever created it
func (p *Prefixed) Close() error {
	return nil
}

var _ Store = (*Prefixed)(nil)
