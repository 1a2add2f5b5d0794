// Copyright The OpenTelemetry Authors
// SPDX-License-Identifier: Apache-2.0

package envconfig

import (
	"strconv"
	"time"

	"github.com/kudlatyamroth/otelpipeline/internal/global"
)

// Setting holds a configuration value together with whether it has been
// explicitly set. Resolve folds a pipeline of Resolvers over it: a default
// config starts with every Setting unset, and each step of the pipeline
// (env-var lookup, invariant clamp, hard-coded fallback) may fill it in or
// clear it, the way sdk/trace.BatchConfig and sdk/log.BatchConfig resolve
// their fields.
type Setting[T any] struct {
	Value T
	Set   bool
}

// NewSetting returns a Setting holding v, marked as explicitly set.
func NewSetting[T any](v T) Setting[T] {
	return Setting[T]{Value: v, Set: true}
}

// Resolver transforms a Setting, typically filling it in if unset or
// clearing it if it holds an invalid value.
type Resolver[T any] func(Setting[T]) Setting[T]

// Resolve applies each Resolver in order and returns the result.
func (s Setting[T]) Resolve(resolvers ...Resolver[T]) Setting[T] {
	for _, r := range resolvers {
		s = r(s)
	}
	return s
}

// Fallback fills in an unset Setting with v.
func Fallback[T any](v T) Resolver[T] {
	return func(s Setting[T]) Setting[T] {
		if s.Set {
			return s
		}
		return NewSetting(v)
	}
}

// ClearLessThanOneInt clears an int Setting whose value is less than one,
// so a later Fallback can supply the default.
func ClearLessThanOneInt() Resolver[int] {
	return func(s Setting[int]) Setting[int] {
		if s.Set && s.Value < 1 {
			return Setting[int]{}
		}
		return s
	}
}

// ClearLessThanOneDuration clears a Duration Setting whose value is less
// than one, so a later Fallback can supply the default.
func ClearLessThanOneDuration() Resolver[time.Duration] {
	return func(s Setting[time.Duration]) Setting[time.Duration] {
		if s.Set && s.Value < 1 {
			return Setting[time.Duration]{}
		}
		return s
	}
}

// ClearNegativeDuration clears a Duration Setting whose value is negative,
// so a later Fallback can supply the default. Unlike
// ClearLessThanOneDuration, zero is preserved: a zero export timeout is a
// legal (immediate-timeout) value when set explicitly.
func ClearNegativeDuration() Resolver[time.Duration] {
	return func(s Setting[time.Duration]) Setting[time.Duration] {
		if s.Set && s.Value < 0 {
			return Setting[time.Duration]{}
		}
		return s
	}
}

// GetEnvInt reads key as a base-10 integer and fills in s if it is not
// already explicitly set, so a builder override always outranks the
// environment. An unparseable (non-empty) value is reported as a
// diagnostic and otherwise ignored, leaving the Setting unset for a
// later Fallback.
func GetEnvInt(key string) Resolver[int] {
	return func(s Setting[int]) Setting[int] {
		if s.Set {
			return s
		}
		v, ok := lookupEnv(key)
		if !ok {
			return s
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			global.Error(err, "parse int", "environment variable", key, "value", v)
			return s
		}
		return NewSetting(n)
	}
}

// GetEnvDuration reads key as a number of milliseconds and fills in s if
// it is not already explicitly set, so a builder override always
// outranks the environment. An unparseable (non-empty) value is reported
// as a diagnostic and otherwise ignored.
func GetEnvDuration(key string) Resolver[time.Duration] {
	return func(s Setting[time.Duration]) Setting[time.Duration] {
		if s.Set {
			return s
		}
		v, ok := lookupEnv(key)
		if !ok {
			return s
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			global.Error(err, "parse int", "environment variable", key, "value", v)
			return s
		}
		return NewSetting(time.Duration(n) * time.Millisecond)
	}
}
