// FILE: internal/server/cache/cache.go

// Package cache provides the advisory read cache for ranked views. Entries
// are never authoritative: any entry may be dropped at any time and rebuilt
// from the store, and every entry expires after its TTL even if an
// invalidation is missed.
package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	// TopPrefix covers every cached top-N view; a submission invalidates the
	// whole prefix because any write can shift any rank
	TopPrefix = "lb:top:"

	// rankPrefix covers per-competitor rank entries
	rankPrefix = "lb:rank:"
)

// TopKey returns the cache key for a top-N request shape
func TopKey(n int64) string {
	return fmt.Sprintf("%s%d", TopPrefix, n)
}

// RankKey returns the cache key for one competitor's rank entry
func RankKey(competitorID string) string {
	return rankPrefix + competitorID
}

// Cache is a key-value store with per-entry TTL. Implementations must treat
// concurrent writers to the same key as last-writer-wins.
type Cache interface {
	// Get returns the value for key, or ok=false on a miss
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Put stores value under key for at most ttl
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Invalidate drops a single key; absent keys are not an error
	Invalidate(ctx context.Context, key string) error

	// InvalidateByPrefix drops every key beginning with prefix
	InvalidateByPrefix(ctx context.Context, prefix string) error

	// Close releases backend resources
	Close() error
}
