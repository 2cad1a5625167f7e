// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cache provides caching infrastructure: an in-memory backend,
// an optional Redis backend, typed wrappers and the navigation and
// active-record caches built on top of them.
package cache

import (
	"context"
	"time"
)

// Cacher defines the interface for cache backends. All implementations
// must be safe for concurrent use. Values are []byte so the same
// interface serves both the in-memory and Redis backends.
type Cacher interface {
	// Get retrieves a value. Returns ErrCacheMiss if the key is absent
	// or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the specified TTL. A zero TTL uses the
	// backend's default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key.
	Delete(ctx context.Context, key string) error

	// Clear removes all entries.
	Clear(ctx context.Context) error

	// Has checks if a key exists and is not expired.
	Has(ctx context.Context, key string) (bool, error)

	// Close releases any resources held by the cache.
	Close() error
}

// StatsProvider is an optional interface for backends that track statistics.
type StatsProvider interface {
	Stats() CacheStats
	ResetStats()
}

// CacheStats holds hit/miss counters for a cache backend.
type CacheStats struct {
	Hits    int64
	Misses  int64
	Sets    int64
	Items   int
	HitRate float64
	Size    int64
}

// Error represents an error type for cache operations.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrCacheMiss indicates the key was not found in cache or has expired.
	ErrCacheMiss Error = "cache miss"

	// ErrCacheClosed indicates the cache has been closed.
	ErrCacheClosed Error = "cache closed"
)
