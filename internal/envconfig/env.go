// Copyright The OpenTelemetry Authors
// SPDX-License-Identifier: Apache-2.0

// Package envconfig resolves the OTEL_B{S,LR}P_* environment variables
// used by the batch processors' default configuration.
package envconfig // import "github.com/kudlatyamroth/otelpipeline/internal/envconfig"

import "os"

// lookupEnv returns the environment variable's value and whether it was
// set to a non-empty string.
func lookupEnv(key string) (string, bool) {
	v := os.Getenv(key)
	if v == "" {
		return "", false
	}
	return v, true
}
