// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup to
// receive events about constraint activation, batch mutations, and rendering.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetApplierHooks(&myApplierHooks{})
//	    observability.SetBatchHooks(&myBatchHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Batch().OnBatchStart("apply", container, len(targets))
//	// ... mutate ...
//	observability.Batch().OnBatchComplete("apply", container, done, duration, err)
//
// Applier and batch events carry no context: those operations are synchronous
// and cannot be cancelled. Render events do, because rendering does.
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Applier Hooks
// =============================================================================

// ApplierHooks receives events from constraint activation and deactivation.
// Constraints are passed in their printed form.
type ApplierHooks interface {
	// OnActivate records a constraint becoming active on container.
	OnActivate(constraint, container string)

	// OnDeactivate records a constraint being removed from container.
	OnDeactivate(constraint, container string)

	// OnRejected records a failed apply or remove, with its error.
	OnRejected(op, constraint string, err error)
}

// =============================================================================
// Batch Hooks
// =============================================================================

// BatchHooks receives events from batch mutations. op is "apply" or "remove".
type BatchHooks interface {
	OnBatchStart(op, container string, targets int)
	OnBatchComplete(op, container string, completed int, duration time.Duration, err error)
}

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from hierarchy rendering.
type RenderHooks interface {
	OnRenderStart(ctx context.Context, format string, nodeCount int)
	OnRenderComplete(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopApplierHooks is a no-op implementation of ApplierHooks.
type NoopApplierHooks struct{}

func (NoopApplierHooks) OnActivate(string, string)        {}
func (NoopApplierHooks) OnDeactivate(string, string)      {}
func (NoopApplierHooks) OnRejected(string, string, error) {}

// NoopBatchHooks is a no-op implementation of BatchHooks.
type NoopBatchHooks struct{}

func (NoopBatchHooks) OnBatchStart(string, string, int)                            {}
func (NoopBatchHooks) OnBatchComplete(string, string, int, time.Duration, error) {}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(context.Context, string, int)                         {}
func (NoopRenderHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	applierHooks ApplierHooks = NoopApplierHooks{}
	batchHooks   BatchHooks   = NoopBatchHooks{}
	renderHooks  RenderHooks  = NoopRenderHooks{}
	hooksMu      sync.RWMutex
)

// SetApplierHooks registers custom applier hooks.
// This should be called once at application startup before any constraint is applied.
func SetApplierHooks(h ApplierHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		applierHooks = h
	}
}

// SetBatchHooks registers custom batch hooks.
func SetBatchHooks(h BatchHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		batchHooks = h
	}
}

// SetRenderHooks registers custom render hooks.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// Applier returns the registered applier hooks.
func Applier() ApplierHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return applierHooks
}

// Batch returns the registered batch hooks.
func Batch() BatchHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return batchHooks
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	applierHooks = NoopApplierHooks{}
	batchHooks = NoopBatchHooks{}
	renderHooks = NoopRenderHooks{}
}
