// Package store provides cache backends for persisted lookup results.
//
// This package defines the Store interface with implementations for
// different backends:
//   - file: File-based storage for CLI and library usage (the default)
//   - memory: In-memory storage for development/testing
//   - null: No-op storage when persistence is disabled
//   - redis: Redis-backed storage for shared deployments
//   - mongo: MongoDB-backed storage for document-oriented deployments
//
// Entries are written only on explicit request (Response.Cache); no
// backend is consulted automatically before a network call. Keys are
// derived from the looked-up IP and the requested field shape, so a
// filtered result never shadows a full one.
package store

import (
	"context"
	"time"
)

// Store is the interface for cache storage backends.
type Store interface {
	// Get retrieves a value by key.
	// Returns ok=false if the key doesn't exist or the entry has expired.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set stores a value under key. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}
