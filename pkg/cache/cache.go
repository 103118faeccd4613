// Package cache stores computed Reeb graphs keyed by their full input: mesh
// content, scalar field selection and simplification threshold. Rebuilding a
// graph is pure, so a hit can be served without touching the constructor.
//
// Backends:
//   - file: directory of JSON entries, the CLI default
//   - redis: shared cache for server deployments
//   - mongo: document store, doubles as a graph archive
//   - null: caching disabled
package cache

import (
	"context"
	"time"
)

// Cache is the interface all backends implement. Values are opaque bytes;
// callers serialize graphs before storing them.
type Cache interface {
	// Get retrieves a value. The second result reports whether the key was
	// present and fresh.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
