// Copyright The OpenTelemetry Authors
// SPDX-License-Identifier: Apache-2.0

// Package global holds the process-wide diagnostic sink used by every
// processor in this module: a logr.Logger that Error, Info and Debug write
// to (a dropped record, a send on a full channel, a failed background
// export), and an ErrorHandler that Handle passes errors to.
package global // import "github.com/kudlatyamroth/otelpipeline/internal/global"

import (
	"log"
	"sync"
	"sync/atomic"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
)

// ErrorHandler reacts to an error that has no meaningful caller to surface
// to. The default handler logs the error via the configured Logger.
type ErrorHandler interface {
	Handle(error)
}

// ErrorHandlerFunc is a function adapter implementing ErrorHandler.
type ErrorHandlerFunc func(error)

// Handle implements ErrorHandler.
func (f ErrorHandlerFunc) Handle(err error) { f(err) }

type errorHandlerHolder struct {
	h ErrorHandler
}

var (
	loggerMu sync.Mutex
	logger   logr.Logger = stdr.New(log.Default())

	errHandler atomic.Pointer[errorHandlerHolder]
)

func init() {
	errHandler.Store(&errorHandlerHolder{h: ErrorHandlerFunc(defaultHandle)})
}

func defaultHandle(err error) {
	if err == nil {
		return
	}
	loggerMu.Lock()
	l := logger
	loggerMu.Unlock()
	l.Error(err, "otelpipeline")
}

// SetLogger sets the Logger used for diagnostic output. It is intended to
// be called once, early in process startup.
func SetLogger(l logr.Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = l
}

// GetLogger returns the currently configured Logger.
func GetLogger() logr.Logger {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	return logger
}

// SetErrorHandler sets the ErrorHandler invoked by Handle and Error.
func SetErrorHandler(h ErrorHandler) {
	errHandler.Store(&errorHandlerHolder{h: h})
}

// Handle passes err to the configured ErrorHandler. A nil err is a no-op.
func Handle(err error) {
	if err == nil {
		return
	}
	errHandler.Load().h.Handle(err)
}

// Error logs a structured diagnostic: an error plus a stable name and
// key-value context (e.g. "BatchLogProcessor.Export.Error"). It does not
// go through the ErrorHandler: Error is for informational/debug
// diagnostics the worker continues past, Handle is for errors a caller
// configured a sink for.
func Error(err error, name string, keysAndValues ...interface{}) {
	if err == nil {
		return
	}
	GetLogger().Error(err, name, keysAndValues...)
}

// Info logs an informational diagnostic.
func Info(name string, keysAndValues ...interface{}) {
	GetLogger().Info(name, keysAndValues...)
}

// Debug logs a debug-level diagnostic (e.g. a recovered mutex panic that is
// not user-actionable).
func Debug(name string, keysAndValues ...interface{}) {
	GetLogger().V(1).Info(name, keysAndValues...)
}
