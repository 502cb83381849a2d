// Package observability lets g6conv report what it is doing to whatever
// metrics or tracing system the embedding program uses.
//
// Three event families are emitted: conversion runs ([PipelineHooks]),
// result cache lookups ([CacheHooks]) and served HTTP requests
// ([HTTPHooks]). Each family has a no-op default, so instrumentation costs
// nothing until a program installs its own implementation:
//
//	observability.SetPipelineHooks(promPipelineHooks{})
//	defer observability.Reset()
//
// Emitters fetch the current implementation at the call site:
//
//	observability.Pipeline().OnLineComplete(ctx, idx, "dot", elapsed, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives events from the line conversion pipeline.
type PipelineHooks interface {
	// OnRunStart fires before the first line of a run is read.
	OnRunStart(ctx context.Context, inputFormat, outputFormat string)

	// OnLineComplete fires once per attempted line; err is nil on success.
	OnLineComplete(ctx context.Context, index int, outputFormat string, duration time.Duration, err error)

	// OnRunComplete fires when a run ends, successfully or not.
	OnRunComplete(ctx context.Context, converted, failed int, duration time.Duration, err error)
}

// CacheHooks receives result cache events. keyType names what was looked
// up, currently always "conversion".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	// OnCacheSet reports a stored value of size bytes.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives events from the HTTP server.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, path string)
	// OnResponse fires after the handler returns, with the written status.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// NoopPipelineHooks discards pipeline events. Embed it to implement only
// the events you need.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnRunStart(context.Context, string, string)                        {}
func (NoopPipelineHooks) OnLineComplete(context.Context, int, string, time.Duration, error) {}
func (NoopPipelineHooks) OnRunComplete(context.Context, int, int, time.Duration, error)     {}

// NoopCacheHooks discards cache events.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks discards HTTP events.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// slot holds the installed implementation of one hook family.
type slot[T any] struct {
	mu   sync.RWMutex
	cur  T
	noop T
}

func newSlot[T any](noop T) *slot[T] {
	return &slot[T]{cur: noop, noop: noop}
}

func (s *slot[T]) load() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

func (s *slot[T]) store(h T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = h
}

func (s *slot[T]) reset() { s.store(s.noop) }

var (
	pipelineSlot = newSlot[PipelineHooks](NoopPipelineHooks{})
	cacheSlot    = newSlot[CacheHooks](NoopCacheHooks{})
	httpSlot     = newSlot[HTTPHooks](NoopHTTPHooks{})
)

// SetPipelineHooks installs h for all subsequent runs. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		pipelineSlot.store(h)
	}
}

// SetCacheHooks installs h for all subsequent cache lookups. A nil h is
// ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cacheSlot.store(h)
	}
}

// SetHTTPHooks installs h for all subsequent requests. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		httpSlot.store(h)
	}
}

// Pipeline returns the installed pipeline hooks.
func Pipeline() PipelineHooks { return pipelineSlot.load() }

// Cache returns the installed cache hooks.
func Cache() CacheHooks { return cacheSlot.load() }

// HTTP returns the installed HTTP hooks.
func HTTP() HTTPHooks { return httpSlot.load() }

// Reset reinstalls the no-op hooks of every family.
func Reset() {
	pipelineSlot.reset()
	cacheSlot.reset()
	httpSlot.reset()
}
