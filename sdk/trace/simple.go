// Copyright The OpenTelemetry Authors
// SPDX-License-Identifier: Apache-2.0

package trace // import "github.com/kudlatyamroth/otelpipeline/sdk/trace"

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/kudlatyamroth/otelpipeline/internal/global"
	"github.com/kudlatyamroth/otelpipeline/internal/perr"
	"github.com/kudlatyamroth/otelpipeline/sdk/resource"
	traceapi "github.com/kudlatyamroth/otelpipeline/trace"
)

// Compile-time check SimpleSpanProcessor implements SpanProcessor.
var _ SpanProcessor = (*SimpleSpanProcessor)(nil)

// SimpleSpanProcessor exports each sampled span synchronously as it ends,
// serialized behind a mutex. It exists to drive an exporter
// deterministically (debugging, testing); producers pay the full export
// latency, so it should only be used when that is acceptable.
type SimpleSpanProcessor struct {
	mu       sync.Mutex
	exporter Exporter
	stopped  atomic.Bool
}

// NewSimpleSpanProcessor decorates exporter so every ended sampled span is
// exported immediately, one at a time.
func NewSimpleSpanProcessor(exporter Exporter) *SimpleSpanProcessor {
	if exporter == nil {
		exporter = defaultNoopExporter
	}
	return &SimpleSpanProcessor{exporter: exporter}
}

// OnEnd exports s synchronously if it was sampled.
func (sp *SimpleSpanProcessor) OnEnd(s traceapi.Record) {
	if !s.SpanContext.Sampled {
		return
	}
	if sp.stopped.Load() {
		global.Info("SimpleSpanProcessor.OnEnd.Shutdown", "message", "processor shut down, dropping span")
		return
	}

	err := sp.withLock(func() error {
		return sp.exporter.ExportSpans(context.Background(), []traceapi.Record{s})
	})
	if err != nil {
		global.Debug("SimpleSpanProcessor.OnEnd.Error", "reason", err)
	}
}

// ForceFlush is a no-op: SimpleSpanProcessor holds nothing to drain.
func (sp *SimpleSpanProcessor) ForceFlush(context.Context) error { return nil }

// Shutdown shuts down the decorated exporter. Shutdown is safe to call
// more than once: only the first call shuts down the exporter, later calls
// return nil.
func (sp *SimpleSpanProcessor) Shutdown(ctx context.Context) error {
	if sp.stopped.Swap(true) {
		return nil
	}
	return sp.withLock(func() error {
		return sp.exporter.Shutdown(ctx)
	})
}

// SetResource forwards resource to the decorated exporter.
func (sp *SimpleSpanProcessor) SetResource(res *resource.Resource) {
	_ = sp.withLock(func() error {
		sp.exporter.SetResource(res)
		return nil
	})
}

// withLock runs fn while holding the exporter mutex, converting a panic
// inside fn into a MutexPoisoned error instead of crashing the process.
func (sp *SimpleSpanProcessor) withLock(fn func() error) (err error) {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			err = &perr.MutexPoisoned{Processor: "SimpleSpanProcessor"}
			global.Debug("SimpleSpanProcessor.MutexPoisoned", "recovered", fmt.Sprint(r))
		}
	}()
	return fn()
}
