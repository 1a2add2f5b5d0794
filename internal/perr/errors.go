// Copyright The OpenTelemetry Authors
// SPDX-License-Identifier: Apache-2.0

// Package perr defines the error kinds shared by the span and log batch
// and simple processors: a timed-out export, a failed export, a
// post-shutdown operation, and a poisoned exporter lock.
package perr // import "github.com/kudlatyamroth/otelpipeline/internal/perr"

import (
	"errors"
	"fmt"
	"time"
)

// ExportTimedOut is returned when an export lost the race against its
// per-attempt deadline.
type ExportTimedOut struct {
	Duration time.Duration
}

func (e *ExportTimedOut) Error() string {
	return fmt.Sprintf("export timed out after %s", e.Duration)
}

// ExportFailed wraps an error returned by the exporter itself.
type ExportFailed struct {
	Err error
}

func (e *ExportFailed) Error() string { return fmt.Sprintf("export failed: %v", e.Err) }
func (e *ExportFailed) Unwrap() error { return e.Err }

// ErrAlreadyShutDown is reported as a diagnostic when a record reaches a
// batch processor after Shutdown. ForceFlush and Shutdown on a processor
// that is already shut down return nil, not this error.
var ErrAlreadyShutDown = errors.New("processor already shut down")

// ErrQueueFull is reported as a diagnostic when OnEmit cannot enqueue a
// record because the processor's channel is full.
var ErrQueueFull = errors.New("processor queue full, dropping record")

// MutexPoisoned indicates a Simple processor's exporter lock was poisoned
// by a panic while held. Processor names the processor that observed it.
type MutexPoisoned struct {
	Processor string
}

func (e *MutexPoisoned) Error() string {
	return fmt.Sprintf("%s: exporter mutex poisoned", e.Processor)
}
