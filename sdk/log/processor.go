// Copyright The OpenTelemetry Authors
// SPDX-License-Identifier: Apache-2.0

package log // import "github.com/kudlatyamroth/otelpipeline/sdk/log"

import (
	"context"

	logapi "github.com/kudlatyamroth/otelpipeline/log"
	"github.com/kudlatyamroth/otelpipeline/sdk/resource"
)

// Processor is the capability shared by SimpleProcessor and
// BatchProcessor: ingest a finished record, force a drain, shut down, and
// propagate the resource describing the producing entity.
type Processor interface {
	// OnEmit is called for every finished log record. It must never
	// block waiting on the exporter.
	OnEmit(ctx context.Context, r logapi.Record) error

	// Enabled reports whether the processor will do anything with r. It
	// returns false once the processor has been shut down.
	Enabled(ctx context.Context, r logapi.Record) bool

	// ForceFlush exports any buffered records and waits for the result.
	ForceFlush(ctx context.Context) error

	// Shutdown drains any buffered records, shuts down the exporter and
	// releases the processor's resources. Shutdown is idempotent: a
	// second call returns nil without re-invoking the exporter.
	Shutdown(ctx context.Context) error

	// SetResource propagates the resource describing the producing
	// entity to the exporter.
	SetResource(*resource.Resource)
}
