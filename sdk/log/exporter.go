// Copyright The OpenTelemetry Authors
// SPDX-License-Identifier: Apache-2.0

package log // import "github.com/kudlatyamroth/otelpipeline/sdk/log"

import (
	"context"

	logapi "github.com/kudlatyamroth/otelpipeline/log"
	"github.com/kudlatyamroth/otelpipeline/sdk/resource"
)

// Exporter converts a batch of log records into the exporter's wire
// representation. Export may be invoked concurrently only if the
// processor's concurrency allows it; implementations must tolerate being
// abandoned mid-flight if their export loses the race against a timeout.
type Exporter interface {
	// Export sends a batch of records. A nil or empty batch returns nil
	// immediately without contacting the backend.
	Export(ctx context.Context, records []logapi.Record) error

	// Shutdown releases any resources held by the exporter. It is
	// called at most once, after the last Export.
	Shutdown(ctx context.Context) error

	// SetResource associates the resource describing the producing
	// entity with the exporter. It may be called multiple times; the
	// last call wins.
	SetResource(*resource.Resource)
}

// noopExporter discards every record. It backs a BatchProcessor or
// SimpleProcessor constructed with a nil Exporter so neither ever need a
// nil check in their hot path.
type noopExporter struct{}

func (noopExporter) Export(context.Context, []logapi.Record) error { return nil }
func (noopExporter) Shutdown(context.Context) error                { return nil }
func (noopExporter) SetResource(*resource.Resource)                {}

var defaultNoopExporter Exporter = noopExporter{}
