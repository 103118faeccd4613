// Package observability provides hooks for metrics, tracing, and logging.
//
// The core library stays free of observability back-ends; consumers register
// hook implementations at startup and receive events about graph
// construction, simplification and cache operations. Every hook has a no-op
// default, so instrumentation is strictly optional.
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetBuildHooks(&myBuildHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
package observability

import (
	"context"
	"sync"
	"time"
)

// BuildHooks receives events from Reeb graph construction.
type BuildHooks interface {
	// OnBuildStart records the beginning of a construction run.
	OnBuildStart(ctx context.Context, kind string, cellCount int)

	// OnBuildComplete records the end of a construction run with the
	// resulting graph size.
	OnBuildComplete(ctx context.Context, kind string, nodes, arcs int, duration time.Duration, err error)
}

// SimplifyHooks receives events from topological simplification.
type SimplifyHooks interface {
	// OnSimplifyStart records the beginning of a simplification pass.
	OnSimplifyStart(ctx context.Context, threshold float64)

	// OnSimplifyComplete records the end of a pass and how many arcs it
	// removed.
	OnSimplifyComplete(ctx context.Context, threshold float64, arcsRemoved int, duration time.Duration)
}

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// NoopBuildHooks is a no-op implementation of BuildHooks.
type NoopBuildHooks struct{}

func (NoopBuildHooks) OnBuildStart(context.Context, string, int) {}
func (NoopBuildHooks) OnBuildComplete(context.Context, string, int, int, time.Duration, error) {
}

// NoopSimplifyHooks is a no-op implementation of SimplifyHooks.
type NoopSimplifyHooks struct{}

func (NoopSimplifyHooks) OnSimplifyStart(context.Context, float64)                        {}
func (NoopSimplifyHooks) OnSimplifyComplete(context.Context, float64, int, time.Duration) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

var (
	buildHooks    BuildHooks    = NoopBuildHooks{}
	simplifyHooks SimplifyHooks = NoopSimplifyHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	hooksMu       sync.RWMutex
)

// SetBuildHooks registers custom build hooks. Call once at startup before
// any construction runs.
func SetBuildHooks(h BuildHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		buildHooks = h
	}
}

// SetSimplifyHooks registers custom simplification hooks.
func SetSimplifyHooks(h SimplifyHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		simplifyHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Build returns the registered build hooks.
func Build() BuildHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return buildHooks
}

// Simplify returns the registered simplification hooks.
func Simplify() SimplifyHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return simplifyHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults. Primarily for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	buildHooks = NoopBuildHooks{}
	simplifyHooks = NoopSimplifyHooks{}
	cacheHooks = NoopCacheHooks{}
}
