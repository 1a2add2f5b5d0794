// Copyright The OpenTelemetry Authors
// SPDX-License-Identifier: Apache-2.0

package log // import "github.com/kudlatyamroth/otelpipeline/sdk/log"

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/kudlatyamroth/otelpipeline/internal/global"
	"github.com/kudlatyamroth/otelpipeline/internal/perr"
	logapi "github.com/kudlatyamroth/otelpipeline/log"
	"github.com/kudlatyamroth/otelpipeline/sdk/resource"
)

// Compile-time check SimpleProcessor implements Processor.
var _ Processor = (*SimpleProcessor)(nil)

// SimpleProcessor exports each log record synchronously as it is emitted,
// serialized behind a mutex. It exists to drive an exporter
// deterministically (debugging, testing); producers pay the full export
// latency, so it should only be used when that is acceptable.
type SimpleProcessor struct {
	mu       sync.Mutex
	exporter Exporter
	stopped  atomic.Bool
}

// NewSimpleProcessor decorates exporter so every emitted record is
// exported immediately, one at a time.
func NewSimpleProcessor(exporter Exporter) *SimpleProcessor {
	if exporter == nil {
		exporter = defaultNoopExporter
	}
	return &SimpleProcessor{exporter: exporter}
}

// OnEmit exports r synchronously on the caller's context.
func (p *SimpleProcessor) OnEmit(ctx context.Context, r logapi.Record) error {
	if p.stopped.Load() {
		global.Info("SimpleProcessor.OnEmit.Shutdown", "message", "processor shut down, dropping record")
		return nil
	}

	err := p.withLock(func() error {
		return p.exporter.Export(ctx, []logapi.Record{r})
	})
	if err != nil {
		global.Debug("SimpleProcessor.OnEmit.Error", "reason", err)
	}
	return nil
}

// Enabled reports whether the processor is still accepting records.
func (p *SimpleProcessor) Enabled(context.Context, logapi.Record) bool {
	return !p.stopped.Load()
}

// ForceFlush is a no-op: SimpleProcessor holds nothing to drain.
func (p *SimpleProcessor) ForceFlush(context.Context) error { return nil }

// Shutdown shuts down the decorated exporter. Shutdown is safe to call
// more than once: only the first call shuts down the exporter, later calls
// return nil.
func (p *SimpleProcessor) Shutdown(ctx context.Context) error {
	if p.stopped.Swap(true) {
		return nil
	}
	return p.withLock(func() error {
		return p.exporter.Shutdown(ctx)
	})
}

// SetResource forwards resource to the decorated exporter.
func (p *SimpleProcessor) SetResource(res *resource.Resource) {
	_ = p.withLock(func() error {
		p.exporter.SetResource(res)
		return nil
	})
}

// withLock runs fn while holding the exporter mutex, converting a panic
// inside fn into a MutexPoisoned error instead of crashing the process
// (Go mutexes, unlike Rust's, do not poison themselves on panic).
func (p *SimpleProcessor) withLock(fn func() error) (err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			err = &perr.MutexPoisoned{Processor: "SimpleProcessor"}
			global.Debug("SimpleProcessor.MutexPoisoned", "recovered", fmt.Sprint(r))
		}
	}()
	return fn()
}
