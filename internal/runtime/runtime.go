// Copyright The OpenTelemetry Authors
// SPDX-License-Identifier: Apache-2.0

// Package runtime provides the scheduling primitives the batch processors
// are built on: spawning the worker goroutine, a bounded message channel,
// a periodic ticker and a one-shot delay timer. It is the Go rendering of
// the RuntimeChannel trait the upstream Rust SDK abstracts over so the
// processor is agnostic to tokio/async-std/etc; here the one
// implementation is goroutines, but the seam is kept so tests can swap in
// a mock clock and so a future runtime (e.g. one backed by an external
// work queue) only needs to implement Runtime[M].
package runtime // import "github.com/kudlatyamroth/otelpipeline/internal/runtime"

import (
	"time"

	"github.com/benbjohnson/clock"
)

// Runtime is the set of scheduling primitives a batch processor needs,
// parameterized over its control-message type M.
type Runtime[M any] interface {
	// Spawn runs fn on its own goroutine.
	Spawn(fn func())

	// MessageChannel allocates the bounded MPSC channel records and
	// control messages travel over.
	MessageChannel(capacity int) chan M

	// Interval returns a channel that receives a tick every d, and a
	// stop function to release the timer. Unlike a raw time.Ticker,
	// implementations must fire only after a full period has elapsed
	// (never immediately), matching the upstream SDK's requirement to
	// skip the first immediate tick.
	Interval(d time.Duration) (ticks <-chan time.Time, stop func())

	// Delay returns a channel that receives exactly one value after d.
	Delay(d time.Duration) <-chan time.Time
}

// Go is the default Runtime, implemented with goroutines and the standard
// (or a faked) clock.
type Go[M any] struct {
	Clock clock.Clock
}

// NewGo returns a Go runtime using the real wall clock.
func NewGo[M any]() Go[M] {
	return Go[M]{Clock: clock.New()}
}

// NewGoWithClock returns a Go runtime using the provided clock, letting
// tests substitute a clock.Mock to drive ticks and timeouts deterministically.
func NewGoWithClock[M any](c clock.Clock) Go[M] {
	return Go[M]{Clock: c}
}

func (g Go[M]) Spawn(fn func()) {
	go fn()
}

func (g Go[M]) MessageChannel(capacity int) chan M {
	if capacity < 0 {
		capacity = 0
	}
	return make(chan M, capacity)
}

func (g Go[M]) Interval(d time.Duration) (<-chan time.Time, func()) {
	t := g.Clock.Ticker(d)
	return t.C, t.Stop
}

func (g Go[M]) Delay(d time.Duration) <-chan time.Time {
	return g.Clock.After(d)
}
