// Copyright The OpenTelemetry Authors
// SPDX-License-Identifier: Apache-2.0

package trace // import "github.com/kudlatyamroth/otelpipeline/sdk/trace"

import (
	"context"

	"github.com/kudlatyamroth/otelpipeline/sdk/resource"
	traceapi "github.com/kudlatyamroth/otelpipeline/trace"
)

// SpanProcessor is the capability shared by SimpleSpanProcessor and
// BatchSpanProcessor: ingest a finished span, force a drain, and shut
// down.
type SpanProcessor interface {
	// OnEnd is called once for every span as it finishes, after sampling
	// has already been decided. It must never block waiting on the
	// exporter.
	OnEnd(s traceapi.Record)

	// ForceFlush exports any buffered spans and waits for the result.
	ForceFlush(ctx context.Context) error

	// Shutdown drains any buffered spans, shuts down the exporter and
	// releases the processor's resources. Shutdown is idempotent: a
	// second call returns nil without re-invoking the exporter.
	Shutdown(ctx context.Context) error

	// SetResource propagates the resource describing the producing
	// entity to the exporter.
	SetResource(*resource.Resource)
}
