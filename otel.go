// Copyright The OpenTelemetry Authors
// SPDX-License-Identifier: Apache-2.0

// Package otelpipeline re-exports the diagnostic entry points used
// throughout sdk/trace and sdk/log.
package otelpipeline // import "github.com/kudlatyamroth/otelpipeline"

import (
	"github.com/go-logr/logr"

	"github.com/kudlatyamroth/otelpipeline/internal/global"
)

// Handle passes err to the configured ErrorHandler, logging it by default.
var Handle = global.Handle

// ErrorHandler reacts to errors with no caller to surface them to.
type ErrorHandler = global.ErrorHandler

// ErrorHandlerFunc is a function adapter implementing ErrorHandler.
type ErrorHandlerFunc = global.ErrorHandlerFunc

// SetErrorHandler sets the ErrorHandler used by Handle.
func SetErrorHandler(h ErrorHandler) { global.SetErrorHandler(h) }

// SetLogger sets the Logger used for diagnostic output across the module.
func SetLogger(l logr.Logger) { global.SetLogger(l) }
