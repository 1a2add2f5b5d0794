// Copyright The OpenTelemetry Authors
// SPDX-License-Identifier: Apache-2.0

// Package log defines the shape of a finished log record as it is handed
// to a processor: body, attributes, severity and the instrumentation
// scope that produced it.
package log // import "github.com/kudlatyamroth/otelpipeline/log"

import (
	"time"

	"github.com/kudlatyamroth/otelpipeline/attribute"
)

// Severity is the log record's severity level, ordered so that a higher
// value means more severe (mirroring the OpenTelemetry log data model).
type Severity int

const (
	SeverityUnspecified Severity = iota
	SeverityTrace
	SeverityDebug
	SeverityInfo
	SeverityWarn
	SeverityError
	SeverityFatal
)

// Scope identifies the instrumentation library that produced a Record.
type Scope struct {
	Name    string
	Version string
}

// Record is an already-finalized log entry. The processor treats it as
// opaque: it neither inspects Body/Attributes nor blocks on them.
type Record struct {
	Timestamp         time.Time
	ObservedTimestamp time.Time
	Severity          Severity
	SeverityText      string
	Body              attribute.Value
	Attributes        []attribute.KeyValue
	Scope             Scope
}

// SetBody sets the record's body value.
func (r *Record) SetBody(v attribute.Value) { r.Body = v }

// AddAttributes appends attrs to the record's attribute set.
func (r *Record) AddAttributes(attrs ...attribute.KeyValue) {
	r.Attributes = append(r.Attributes, attrs...)
}
