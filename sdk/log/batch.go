// Copyright The OpenTelemetry Authors
// SPDX-License-Identifier: Apache-2.0

package log // import "github.com/kudlatyamroth/otelpipeline/sdk/log"

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/kudlatyamroth/otelpipeline/internal/global"
	"github.com/kudlatyamroth/otelpipeline/internal/perr"
	rt "github.com/kudlatyamroth/otelpipeline/internal/runtime"
	logapi "github.com/kudlatyamroth/otelpipeline/log"
	"github.com/kudlatyamroth/otelpipeline/sdk/resource"
)

// Compile-time check BatchProcessor implements Processor.
var _ Processor = (*BatchProcessor)(nil)

// batchMessage is the tagged control message the façade sends the worker.
// Only one goroutine (the worker) ever receives from the channel, so the
// worker's own state needs no further synchronization.
type batchMessage interface{ isBatchMessage() }

type msgExportRecord struct{ record logapi.Record }
type msgFlush struct{ reply chan error }
type msgShutdown struct{ reply chan error }
type msgSetResource struct{ resource *resource.Resource }

func (msgExportRecord) isBatchMessage() {}
func (msgFlush) isBatchMessage()        {}
func (msgShutdown) isBatchMessage()     {}
func (msgSetResource) isBatchMessage()  {}

// BatchProcessor queues emitted log records on a bounded channel and drives
// a background worker that aggregates them into batches, exporting either
// when a batch fills up, when the scheduled delay elapses, or on demand via
// ForceFlush/Shutdown.
type BatchProcessor struct {
	sender  chan batchMessage
	stopped atomic.Bool
}

// NewBatchProcessor decorates exporter so log records are buffered and
// exported in batches. Construction spawns the worker goroutine.
func NewBatchProcessor(exporter Exporter, opts ...BatchOption) *BatchProcessor {
	return newBatchProcessor(exporter, rt.NewGo[batchMessage](), opts)
}

func newBatchProcessor(exporter Exporter, runtime rt.Runtime[batchMessage], opts []BatchOption) *BatchProcessor {
	cfg := newBatchConfig(opts)
	if exporter == nil {
		exporter = defaultNoopExporter
	}

	sender := runtime.MessageChannel(cfg.maxQueueSize)
	w := &worker{exporter: exporter, config: cfg, runtime: runtime}
	runtime.Spawn(func() { w.run(sender) })

	return &BatchProcessor{sender: sender}
}

// OnEmit enqueues r for export. It never blocks: if the queue is full or
// the processor has already been shut down, r is dropped and a diagnostic
// is emitted.
func (p *BatchProcessor) OnEmit(_ context.Context, r logapi.Record) error {
	if p.stopped.Load() {
		global.Error(perr.ErrAlreadyShutDown, "BatchProcessor.OnEmit.AlreadyShutDown")
		return nil
	}
	select {
	case p.sender <- msgExportRecord{record: r}:
	default:
		global.Error(perr.ErrQueueFull, "BatchProcessor.OnEmit.QueueFull")
	}
	return nil
}

// Enabled reports whether the processor is still accepting records.
func (p *BatchProcessor) Enabled(context.Context, logapi.Record) bool {
	return !p.stopped.Load()
}

// ForceFlush drains the current buffer and waits for the export result.
func (p *BatchProcessor) ForceFlush(ctx context.Context) error {
	if p.stopped.Load() {
		return nil
	}
	reply := make(chan error, 1)
	select {
	case p.sender <- msgFlush{reply: reply}:
	default:
		return perr.ErrQueueFull
	}
	select {
	case err := <-reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown drains the buffer, shuts down the exporter and stops the
// worker. Shutdown is idempotent: a second call returns nil immediately.
func (p *BatchProcessor) Shutdown(ctx context.Context) error {
	if p.stopped.Swap(true) {
		return nil
	}
	reply := make(chan error, 1)
	p.sender <- msgShutdown{reply: reply}

	select {
	case err := <-reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SetResource forwards resource to the worker's exporter. Propagation is
// best-effort: if the queue is full or the processor has been shut down,
// the call is silently dropped.
func (p *BatchProcessor) SetResource(res *resource.Resource) {
	if p.stopped.Load() {
		return
	}
	select {
	case p.sender <- msgSetResource{resource: res}:
	default:
	}
}

type worker struct {
	buffer   []logapi.Record
	exporter Exporter
	config   BatchConfig
	runtime  rt.Runtime[batchMessage]
}

func (w *worker) run(messages <-chan batchMessage) {
	ticks, stop := w.runtime.Interval(w.config.scheduledDelay)
	defer stop()

	for {
		select {
		case <-ticks:
			w.export(nil)
		case msg, ok := <-messages:
			if !ok {
				w.export(nil)
				_ = w.exporter.Shutdown(context.Background())
				return
			}
			if !w.process(msg) {
				return
			}
		}
	}
}

// process handles a single message and reports whether the worker should
// keep running.
func (w *worker) process(msg batchMessage) bool {
	switch m := msg.(type) {
	case msgExportRecord:
		w.buffer = append(w.buffer, m.record)
		if len(w.buffer) == w.config.maxExportBatchSize {
			w.export(nil)
		}
	case msgFlush:
		w.export(m.reply)
	case msgShutdown:
		flushed := make(chan error, 1)
		w.export(flushed)
		err := errors.Join(<-flushed, w.exporter.Shutdown(context.Background()))
		if m.reply != nil {
			m.reply <- err
		}
		return false
	case msgSetResource:
		w.exporter.SetResource(m.resource)
	}
	return true
}

// export takes the entire buffer and exports it under the configured
// timeout, reporting the result on reply if present, otherwise as a
// diagnostic.
func (w *worker) export(reply chan error) {
	batch := w.buffer
	w.buffer = nil

	err := w.timedExport(batch)
	if reply != nil {
		reply <- err
		return
	}
	if err != nil {
		global.Error(err, "BatchProcessor.Export.Error")
	}
}

// timedExport races the export call against the configured timeout. The
// loser is abandoned: a timed-out export's context is canceled so the
// exporter can stop early on a best-effort basis, but its goroutine is
// never force-killed.
func (w *worker) timedExport(batch []logapi.Record) error {
	if len(batch) == 0 {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.exporter.Export(ctx, batch) }()

	select {
	case err := <-done:
		if err != nil {
			return &perr.ExportFailed{Err: err}
		}
		return nil
	case <-w.runtime.Delay(w.config.maxExportTimeout):
		return &perr.ExportTimedOut{Duration: w.config.maxExportTimeout}
	}
}
