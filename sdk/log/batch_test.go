// Copyright The OpenTelemetry Authors
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kudlatyamroth/otelpipeline/attribute"
	"github.com/kudlatyamroth/otelpipeline/internal/perr"
	rt "github.com/kudlatyamroth/otelpipeline/internal/runtime"
	logapi "github.com/kudlatyamroth/otelpipeline/log"
	"github.com/kudlatyamroth/otelpipeline/sdk/resource"
)

type testExporter struct {
	mu            sync.Mutex
	records       [][]logapi.Record
	exportN       int
	shutdownN     int
	exportErr     error
	ExportTrigger chan struct{}
}

func newTestExporter(err error) *testExporter {
	return &testExporter{exportErr: err}
}

func (e *testExporter) Export(ctx context.Context, recs []logapi.Record) error {
	if e.ExportTrigger != nil {
		select {
		case <-e.ExportTrigger:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.exportN++
	cp := make([]logapi.Record, len(recs))
	copy(cp, recs)
	e.records = append(e.records, cp)
	return e.exportErr
}

func (e *testExporter) Shutdown(context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.shutdownN++
	return e.exportErr
}

func (e *testExporter) SetResource(*resource.Resource) {}

func (e *testExporter) ExportN() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.exportN
}

func (e *testExporter) ShutdownN() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.shutdownN
}

func (e *testExporter) Records() [][]logapi.Record {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([][]logapi.Record, len(e.records))
	copy(out, e.records)
	return out
}

func newTestBatchProcessor(e Exporter, opts ...BatchOption) *BatchProcessor {
	return newBatchProcessor(e, rt.NewGo[batchMessage](), opts)
}

func TestBatchProcessor(t *testing.T) {
	ctx := context.Background()

	t.Run("Polling", func(t *testing.T) {
		e := newTestExporter(nil)
		const size = 15
		b := newTestBatchProcessor(
			e,
			WithMaxQueueSize(2*size),
			WithMaxExportBatchSize(2*size),
			WithScheduledDelay(time.Millisecond),
			WithExportTimeout(time.Hour),
		)
		for i := 0; i < size; i++ {
			assert.NoError(t, b.OnEmit(ctx, logapi.Record{}))
		}

		assert.Eventually(t, func() bool {
			got := 0
			for _, r := range e.Records() {
				got += len(r)
			}
			return got == size
		}, 2*time.Second, time.Millisecond)
		_ = b.Shutdown(ctx)
	})

	t.Run("OnEmit", func(t *testing.T) {
		e := newTestExporter(nil)
		b := newTestBatchProcessor(
			e,
			WithMaxQueueSize(100),
			WithMaxExportBatchSize(5),
			WithScheduledDelay(time.Hour),
			WithExportTimeout(time.Hour),
		)
		for i := 0; i < 15; i++ {
			assert.NoError(t, b.OnEmit(ctx, logapi.Record{}))
		}
		assert.NoError(t, b.Shutdown(ctx))

		// Three full batches of 5, triggered on fill; the remainder (none
		// here, 15 is a multiple of 5) is flushed at Shutdown.
		assert.Equal(t, 3, e.ExportN())
	})

	t.Run("QueueFull", func(t *testing.T) {
		e := newTestExporter(nil)
		e.ExportTrigger = make(chan struct{})
		b := newTestBatchProcessor(
			e,
			WithMaxQueueSize(1),
			WithMaxExportBatchSize(1),
			WithScheduledDelay(time.Hour),
			WithExportTimeout(time.Hour),
		)
		t.Cleanup(func() { _ = b.Shutdown(ctx) })
		t.Cleanup(func() { close(e.ExportTrigger) })

		// Every OnEmit returns nil even once the channel is saturated:
		// overflow is dropped with a diagnostic, never blocks the caller.
		for i := 0; i < 10; i++ {
			assert.NoError(t, b.OnEmit(ctx, logapi.Record{}))
		}
	})

	t.Run("Enabled", func(t *testing.T) {
		b := newTestBatchProcessor(defaultNoopExporter)
		assert.True(t, b.Enabled(ctx, logapi.Record{}))

		_ = b.Shutdown(ctx)
		assert.False(t, b.Enabled(ctx, logapi.Record{}))
	})

	t.Run("Shutdown", func(t *testing.T) {
		t.Run("Error", func(t *testing.T) {
			e := newTestExporter(assert.AnError)
			b := newTestBatchProcessor(e)
			assert.ErrorIs(t, b.Shutdown(ctx), assert.AnError, "exporter error not returned")
			assert.NoError(t, b.Shutdown(ctx))
		})

		t.Run("Multiple", func(t *testing.T) {
			e := newTestExporter(nil)
			b := newTestBatchProcessor(e)

			const shutdowns = 3
			for i := 0; i < shutdowns; i++ {
				assert.NoError(t, b.Shutdown(ctx))
			}
			assert.Equal(t, 1, e.ShutdownN(), "exporter Shutdown calls")
		})

		t.Run("OnEmit", func(t *testing.T) {
			e := newTestExporter(nil)
			b := newTestBatchProcessor(e)
			assert.NoError(t, b.Shutdown(ctx))

			want := e.ExportN()
			assert.NoError(t, b.OnEmit(ctx, logapi.Record{}))
			assert.Equal(t, want, e.ExportN(), "Export called after shutdown")
		})

		t.Run("ForceFlush", func(t *testing.T) {
			e := newTestExporter(nil)
			b := newTestBatchProcessor(e)

			assert.NoError(t, b.OnEmit(ctx, logapi.Record{}))
			assert.NoError(t, b.Shutdown(ctx))

			assert.NoError(t, b.ForceFlush(ctx))
		})

		t.Run("CanceledContext", func(t *testing.T) {
			e := newTestExporter(nil)
			e.ExportTrigger = make(chan struct{})
			t.Cleanup(func() { close(e.ExportTrigger) })
			b := newTestBatchProcessor(e)

			require.NoError(t, b.OnEmit(ctx, logapi.Record{}))

			c, cancel := context.WithCancel(ctx)
			cancel()
			assert.ErrorIs(t, b.Shutdown(c), context.Canceled)
		})
	})

	t.Run("ForceFlush", func(t *testing.T) {
		t.Run("Flush", func(t *testing.T) {
			e := newTestExporter(assert.AnError)
			b := newTestBatchProcessor(
				e,
				WithMaxQueueSize(100),
				WithMaxExportBatchSize(10),
				WithScheduledDelay(time.Hour),
				WithExportTimeout(time.Hour),
			)
			t.Cleanup(func() { _ = b.Shutdown(ctx) })

			var r logapi.Record
			r.SetBody(attribute.BoolValue(true))
			require.NoError(t, b.OnEmit(ctx, r))

			assert.ErrorIs(t, b.ForceFlush(ctx), assert.AnError, "exporter error not returned")
			if assert.Equal(t, 1, e.ExportN(), "exporter Export calls") {
				got := e.Records()
				if assert.Len(t, got[0], 1, "records received") {
					assert.Equal(t, r, got[0][0])
				}
			}
		})

		t.Run("CanceledContext", func(t *testing.T) {
			e := newTestExporter(nil)
			e.ExportTrigger = make(chan struct{})
			b := newTestBatchProcessor(e)
			t.Cleanup(func() { _ = b.Shutdown(ctx) })
			t.Cleanup(func() { close(e.ExportTrigger) })

			var r logapi.Record
			r.SetBody(attribute.BoolValue(true))
			require.NoError(t, b.OnEmit(ctx, r))

			c, cancel := context.WithCancel(ctx)
			cancel()
			assert.ErrorIs(t, b.ForceFlush(c), context.Canceled)
		})
	})

	t.Run("ExportTimeout", func(t *testing.T) {
		e := newTestExporter(nil)
		e.ExportTrigger = make(chan struct{})
		t.Cleanup(func() { close(e.ExportTrigger) })
		b := newTestBatchProcessor(
			e,
			WithMaxQueueSize(100),
			WithMaxExportBatchSize(10),
			WithScheduledDelay(time.Hour),
			WithExportTimeout(time.Millisecond),
		)
		t.Cleanup(func() { _ = b.Shutdown(ctx) })

		require.NoError(t, b.OnEmit(ctx, logapi.Record{}))
		err := b.ForceFlush(ctx)
		require.Error(t, err)
		assert.IsType(t, &perr.ExportTimedOut{}, err)
	})

	t.Run("ConcurrentSafe", func(t *testing.T) {
		const goRoutines = 10

		e := newTestExporter(nil)
		b := newTestBatchProcessor(e)
		stop := make(chan struct{})
		var wg sync.WaitGroup
		for i := 0; i < goRoutines-1; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for {
					select {
					case <-stop:
						return
					default:
						assert.NoError(t, b.OnEmit(ctx, logapi.Record{}))
						assert.NoError(t, b.ForceFlush(ctx))
					}
				}
			}()
		}

		require.Eventually(t, func() bool {
			return e.ExportN() > 0
		}, 2*time.Second, time.Microsecond, "export before shutdown")

		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, b.Shutdown(ctx))
			close(stop)
		}()

		wg.Wait()
	})
}
