// Package observability provides hooks for render and cache instrumentation.
//
// Libraries call the registered hooks; main (or the render service) installs
// a real implementation at startup. Until then every hook is a no-op, so the
// core packages never depend on a metrics backend.
//
//	observability.SetRenderHooks(metrics)
//	observability.SetCacheHooks(metrics)
//
// Emitting events:
//
//	observability.Render().OnRenderStart(ctx, formats)
//	// ... draw and export ...
//	observability.Render().OnRenderComplete(ctx, formats, nodes, time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// RenderHooks receives events from the render pipeline.
type RenderHooks interface {
	// Document decoding
	OnDecode(ctx context.Context, syntax string, ops int, err error)

	// Whole render requests
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, nodes int, duration time.Duration, err error)

	// OnExport records one SVG conversion to format.
	OnExport(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// CacheHooks receives events from artifact cache lookups.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, format string)
	OnCacheMiss(ctx context.Context, format string)
	OnCacheSet(ctx context.Context, format string, size int)
}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnDecode(context.Context, string, int, error)                          {}
func (NoopRenderHooks) OnRenderStart(context.Context, []string)                               {}
func (NoopRenderHooks) OnRenderComplete(context.Context, []string, int, time.Duration, error) {}
func (NoopRenderHooks) OnExport(context.Context, string, int, time.Duration, error)           {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

var (
	renderHooks RenderHooks = NoopRenderHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	hooksMu     sync.RWMutex
)

// SetRenderHooks registers render hooks. A nil value is ignored.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// SetCacheHooks registers cache hooks. A nil value is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores the no-op defaults.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	renderHooks = NoopRenderHooks{}
	cacheHooks = NoopCacheHooks{}
}
