// Copyright The OpenTelemetry Authors
// SPDX-License-Identifier: Apache-2.0

// Package trace defines the shape of a finished span as it is handed to a
// processor. Sampling itself is out of scope here: the processor only
// ever inspects the Sampled flag already decided upstream.
package trace // import "github.com/kudlatyamroth/otelpipeline/trace"

import (
	"encoding/hex"
	"time"

	"github.com/kudlatyamroth/otelpipeline/attribute"
)

// TraceID uniquely identifies a trace.
type TraceID [16]byte

func (t TraceID) String() string { return hex.EncodeToString(t[:]) }

// IsValid reports whether t is not the zero value.
func (t TraceID) IsValid() bool { return t != [16]byte{} }

// SpanID uniquely identifies a span within a trace.
type SpanID [8]byte

func (s SpanID) String() string { return hex.EncodeToString(s[:]) }

// IsValid reports whether s is not the zero value.
func (s SpanID) IsValid() bool { return s != [8]byte{} }

// SpanContext identifies a span and carries the sampling decision made for
// it upstream of the processor.
type SpanContext struct {
	TraceID    TraceID
	SpanID     SpanID
	TraceFlags byte
	Sampled    bool
}

// Kind describes a span's relationship to its parent and children.
type Kind int

const (
	KindUnspecified Kind = iota
	KindInternal
	KindServer
	KindClient
	KindProducer
	KindConsumer
)

// StatusCode describes the success or failure of the operation a span
// represents.
type StatusCode int

const (
	StatusUnset StatusCode = iota
	StatusOK
	StatusError
)

// Status is the span's outcome, set by the instrumented code.
type Status struct {
	Code        StatusCode
	Description string
}

// Event is a timestamped annotation recorded on a span.
type Event struct {
	Name       string
	Time       time.Time
	Attributes []attribute.KeyValue
}

// Link associates this span with another span, possibly in a different
// trace.
type Link struct {
	SpanContext SpanContext
	Attributes  []attribute.KeyValue
}

// Scope identifies the instrumentation library that created the span.
type Scope struct {
	Name    string
	Version string
}

// Record is an already-finished span, as handed to a Processor's OnEnd.
type Record struct {
	SpanContext      SpanContext
	ParentSpanID     SpanID
	Name             string
	Kind             Kind
	StartTime        time.Time
	EndTime          time.Time
	Attributes       []attribute.KeyValue
	DroppedAttrCount int
	Events           []Event
	Links            []Link
	Status           Status
	Scope            Scope
}
