// Copyright The OpenTelemetry Authors
// SPDX-License-Identifier: Apache-2.0

package trace // import "github.com/kudlatyamroth/otelpipeline/sdk/trace"

import (
	"context"

	"github.com/kudlatyamroth/otelpipeline/sdk/resource"
	traceapi "github.com/kudlatyamroth/otelpipeline/trace"
)

// Exporter converts a batch of finished spans into the exporter's wire
// representation. Export may be invoked concurrently when a processor's
// concurrency setting allows more than one in-flight export;
// implementations must tolerate being abandoned mid-flight if their export
// loses the race against a timeout.
type Exporter interface {
	// ExportSpans sends a batch of spans. A nil or empty batch returns
	// nil immediately without contacting the backend.
	ExportSpans(ctx context.Context, spans []traceapi.Record) error

	// Shutdown releases any resources held by the exporter. It is called
	// at most once, after the last ExportSpans.
	Shutdown(ctx context.Context) error

	// SetResource associates the resource describing the producing
	// entity with the exporter. It may be called multiple times; the
	// last call wins.
	SetResource(*resource.Resource)
}

type noopExporter struct{}

func (noopExporter) ExportSpans(context.Context, []traceapi.Record) error { return nil }
func (noopExporter) Shutdown(context.Context) error                      { return nil }
func (noopExporter) SetResource(*resource.Resource)                      {}

var defaultNoopExporter Exporter = noopExporter{}
