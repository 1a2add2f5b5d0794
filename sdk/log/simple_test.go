// Copyright The OpenTelemetry Authors
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kudlatyamroth/otelpipeline/attribute"
	logapi "github.com/kudlatyamroth/otelpipeline/log"
	"github.com/kudlatyamroth/otelpipeline/sdk/resource"
)

// mutatingExporter stands in for a first processor in a chain: it adds a
// "processed_by" attribute and replaces the body of every record it sees,
// then keeps the mutated copy so a test can hand it on to the next
// processor in the chain.
type mutatingExporter struct {
	mu   sync.Mutex
	seen []logapi.Record
}

func (e *mutatingExporter) Export(_ context.Context, recs []logapi.Record) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, r := range recs {
		r.AddAttributes(attribute.String("processed_by", "FirstProcessor"))
		r.SetBody(attribute.StringValue("Updated by FirstProcessor"))
		e.seen = append(e.seen, r)
	}
	return nil
}

func (e *mutatingExporter) Shutdown(context.Context) error { return nil }
func (e *mutatingExporter) SetResource(*resource.Resource) {}

func TestSimpleProcessor(t *testing.T) {
	ctx := context.Background()

	t.Run("ExportsRecords", func(t *testing.T) {
		e := newTestExporter(nil)
		p := NewSimpleProcessor(e)
		assert.NoError(t, p.OnEmit(ctx, logapi.Record{}))
		assert.Equal(t, 1, e.ExportN())
	})

	t.Run("Enabled", func(t *testing.T) {
		e := newTestExporter(nil)
		p := NewSimpleProcessor(e)
		assert.True(t, p.Enabled(ctx, logapi.Record{}))
		assert.NoError(t, p.Shutdown(ctx))
		assert.False(t, p.Enabled(ctx, logapi.Record{}))
	})

	t.Run("ForceFlushIsNoop", func(t *testing.T) {
		p := NewSimpleProcessor(defaultNoopExporter)
		assert.NoError(t, p.ForceFlush(ctx))
	})

	t.Run("ShutdownIdempotent", func(t *testing.T) {
		e := newTestExporter(nil)
		p := NewSimpleProcessor(e)
		assert.NoError(t, p.Shutdown(ctx))
		assert.NoError(t, p.Shutdown(ctx))
		assert.Equal(t, 1, e.ShutdownN())
	})

	t.Run("DropsRecordsAfterShutdown", func(t *testing.T) {
		e := newTestExporter(nil)
		p := NewSimpleProcessor(e)
		assert.NoError(t, p.Shutdown(ctx))
		assert.NoError(t, p.OnEmit(ctx, logapi.Record{}))
		assert.Equal(t, 0, e.ExportN())
	})

	// Two processors chained as a provider would chain them: the first
	// mutates the record (adds an attribute, replaces the body) and the
	// second must observe that mutation, not the original record.
	t.Run("MultiProcessorChain", func(t *testing.T) {
		first := &mutatingExporter{}
		firstProcessor := NewSimpleProcessor(first)

		second := newTestExporter(nil)
		secondProcessor := NewSimpleProcessor(second)

		var r logapi.Record
		r.SetBody(attribute.StringValue("original"))

		require.NoError(t, firstProcessor.OnEmit(ctx, r))
		require.Len(t, first.seen, 1)

		require.NoError(t, secondProcessor.OnEmit(ctx, first.seen[0]))
		require.Equal(t, 1, second.ExportN())

		got := second.Records()[0][0]
		assert.Equal(t, attribute.StringValue("Updated by FirstProcessor"), got.Body)
		assert.Contains(t, got.Attributes, attribute.String("processed_by", "FirstProcessor"))
	})
}
