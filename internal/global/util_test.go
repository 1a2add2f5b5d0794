// Copyright The OpenTelemetry Authors
// SPDX-License-Identifier: Apache-2.0

package global

import (
	"testing"
)

// ResetForTest restores the default logger and error handler during the
// test's Cleanup step, so tests that call SetLogger/SetErrorHandler do not
// leak global state into later tests.
func ResetForTest(t testing.TB) {
	prevLogger := GetLogger()
	t.Cleanup(func() {
		SetLogger(prevLogger)
		errHandler.Store(&errorHandlerHolder{h: ErrorHandlerFunc(defaultHandle)})
	})
}
