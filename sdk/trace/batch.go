// Copyright The OpenTelemetry Authors
// SPDX-License-Identifier: Apache-2.0

package trace // import "github.com/kudlatyamroth/otelpipeline/sdk/trace"

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/kudlatyamroth/otelpipeline/internal/global"
	"github.com/kudlatyamroth/otelpipeline/internal/perr"
	rt "github.com/kudlatyamroth/otelpipeline/internal/runtime"
	"github.com/kudlatyamroth/otelpipeline/sdk/resource"
	traceapi "github.com/kudlatyamroth/otelpipeline/trace"
)

// Compile-time check BatchSpanProcessor implements SpanProcessor.
var _ SpanProcessor = (*BatchSpanProcessor)(nil)

// batchMessage is the tagged control message the façade sends the worker.
type batchMessage interface{ isBatchMessage() }

type msgExportSpan struct{ record traceapi.Record }
type msgFlush struct{ reply chan error }
type msgShutdown struct{ reply chan error }
type msgSetResource struct{ resource *resource.Resource }

func (msgExportSpan) isBatchMessage()  {}
func (msgFlush) isBatchMessage()       {}
func (msgShutdown) isBatchMessage()    {}
func (msgSetResource) isBatchMessage() {}

// BatchSpanProcessor queues sampled spans on a bounded channel and drives a
// background worker that aggregates them into batches, exporting either
// when a batch fills up, when the scheduled delay elapses, or on demand
// via ForceFlush/Shutdown. When configured with WithMaxConcurrentExports
// greater than one, fill- and tick-triggered exports run concurrently up
// to that cap; ForceFlush and Shutdown always wait for their own export to
// finish.
type BatchSpanProcessor struct {
	sender  chan batchMessage
	stopped atomic.Bool
}

// NewBatchSpanProcessor decorates exporter so sampled spans are buffered
// and exported in batches. Construction spawns the worker goroutine.
func NewBatchSpanProcessor(exporter Exporter, opts ...BatchOption) *BatchSpanProcessor {
	return newBatchSpanProcessor(exporter, rt.NewGo[batchMessage](), opts)
}

func newBatchSpanProcessor(exporter Exporter, runtime rt.Runtime[batchMessage], opts []BatchOption) *BatchSpanProcessor {
	cfg := newBatchConfig(opts)
	if exporter == nil {
		exporter = defaultNoopExporter
	}

	sender := runtime.MessageChannel(cfg.maxQueueSize)
	w := &worker{exporter: exporter, config: cfg, runtime: runtime}
	w.sem = make(chan struct{}, cfg.maxConcurrentExport)
	runtime.Spawn(func() { w.run(sender) })

	return &BatchSpanProcessor{sender: sender}
}

// OnEnd enqueues s for export if it was sampled. It never blocks: if the
// queue is full or the processor has already been shut down, s is dropped
// and a diagnostic is emitted.
func (p *BatchSpanProcessor) OnEnd(s traceapi.Record) {
	if !s.SpanContext.Sampled {
		return
	}
	if p.stopped.Load() {
		global.Error(perr.ErrAlreadyShutDown, "BatchSpanProcessor.OnEnd.AlreadyShutDown")
		return
	}
	select {
	case p.sender <- msgExportSpan{record: s}:
	default:
		global.Error(perr.ErrQueueFull, "BatchSpanProcessor.OnEnd.QueueFull")
	}
}

// ForceFlush drains the current buffer and waits for the export result.
func (p *BatchSpanProcessor) ForceFlush(ctx context.Context) error {
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

// Shutdown drains the buffer, waits for any still in-flight exports, shuts
// down the exporter and stops the worker. Shutdown is idempotent.
func (p *BatchSpanProcessor) Shutdown(ctx context.Context) error {
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
func (p *BatchSpanProcessor) SetResource(res *resource.Resource) {
	if p.stopped.Load() {
		return
	}
	select {
	case p.sender <- msgSetResource{resource: res}:
	default:
	}
}

type worker struct {
	buffer   []traceapi.Record
	exporter Exporter
	config   BatchConfig
	runtime  rt.Runtime[batchMessage]

	// sem bounds the number of concurrently in-flight exports. Sized to
	// config.maxConcurrentExport, including the default of 1: a capacity-1
	// semaphore is what makes triggerExport's fire-and-forget goroutines
	// serialize instead of racing ahead unbounded.
	sem chan struct{}
	wg  sync.WaitGroup
}

func (w *worker) run(messages <-chan batchMessage) {
	ticks, stop := w.runtime.Interval(w.config.scheduledDelay)
	defer stop()

	for {
		select {
		case <-ticks:
			w.triggerExport()
		case msg, ok := <-messages:
			if !ok {
				w.finalExport(nil)
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
	case msgExportSpan:
		w.buffer = append(w.buffer, m.record)
		if len(w.buffer) == w.config.maxExportBatchSize {
			w.triggerExport()
		}
	case msgFlush:
		w.finalExport(m.reply)
	case msgShutdown:
		flushed := make(chan error, 1)
		w.finalExport(flushed)
		w.wg.Wait()
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

// triggerExport hands the buffer off for export without waiting for the
// result: the caller (buffer-fill or periodic tick) has nobody to report
// to. The export always runs on its own goroutine, concurrently with the
// worker's message loop; the semaphore limits how many such exports run
// at once to maxConcurrentExport. Any error is reported as a diagnostic.
func (w *worker) triggerExport() {
	batch := w.buffer
	w.buffer = nil
	if len(batch) == 0 {
		return
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.sem <- struct{}{}
		defer func() { <-w.sem }()
		if err := w.timedExport(batch); err != nil {
			global.Error(err, "BatchSpanProcessor.Export.Error")
		}
	}()
}

// finalExport exports the buffer and blocks for the result, as ForceFlush
// and Shutdown require. It respects maxConcurrentExport by acquiring the
// same semaphore triggerExport does.
func (w *worker) finalExport(reply chan error) {
	batch := w.buffer
	w.buffer = nil

	w.sem <- struct{}{}
	defer func() { <-w.sem }()
	err := w.timedExport(batch)
	if reply != nil {
		reply <- err
	} else if err != nil {
		global.Error(err, "BatchSpanProcessor.Flush.Error")
	}
}

// timedExport races the export call against the configured timeout. The
// loser is abandoned: a timed-out export's context is canceled so the
// exporter can stop early on a best-effort basis, but its goroutine is
// never force-killed.
func (w *worker) timedExport(batch []traceapi.Record) error {
	if len(batch) == 0 {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.exporter.ExportSpans(ctx, batch) }()

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
