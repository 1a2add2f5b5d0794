// Copyright The OpenTelemetry Authors
// SPDX-License-Identifier: Apache-2.0

package log // import "github.com/kudlatyamroth/otelpipeline/sdk/log"

import (
	"time"

	"github.com/kudlatyamroth/otelpipeline/internal/envconfig"
)

const (
	dfltMaxQSize        = 2048
	dfltExpInterval     = time.Second
	dfltExpTimeout      = 30 * time.Second
	dfltExpMaxBatchSize = 512

	envarMaxQSize        = "OTEL_BLRP_MAX_QUEUE_SIZE"
	envarExpInterval     = "OTEL_BLRP_SCHEDULE_DELAY"
	envarExpTimeout      = "OTEL_BLRP_EXPORT_TIMEOUT"
	envarExpMaxBatchSize = "OTEL_BLRP_MAX_EXPORT_BATCH_SIZE"
)

// BatchConfig configures a BatchProcessor. It is resolved from the
// BatchOptions, the environment and the defaults when the processor is
// constructed; the zero value is never valid on its own.
type BatchConfig struct {
	maxQueueSize       int
	scheduledDelay     time.Duration
	maxExportBatchSize int
	maxExportTimeout   time.Duration
}

// BatchOption applies a configuration value to a BatchProcessor.
type BatchOption interface {
	apply(batchSettings) batchSettings
}

type batchOptionFunc func(batchSettings) batchSettings

func (f batchOptionFunc) apply(s batchSettings) batchSettings { return f(s) }

type batchSettings struct {
	maxQueueSize       envconfig.Setting[int]
	scheduledDelay     envconfig.Setting[time.Duration]
	maxExportBatchSize envconfig.Setting[int]
	maxExportTimeout   envconfig.Setting[time.Duration]
}

// WithMaxQueueSize sets the maximum number of buffered records. Once full,
// further records are dropped with a diagnostic.
//
// If OTEL_BLRP_MAX_QUEUE_SIZE is set and this option is not passed, that
// value is used. Otherwise the default is 2048. Values less than one are
// treated as unset.
func WithMaxQueueSize(size int) BatchOption {
	return batchOptionFunc(func(s batchSettings) batchSettings {
		s.maxQueueSize = envconfig.NewSetting(size)
		return s
	})
}

// WithScheduledDelay sets the interval between periodic flushes.
//
// If OTEL_BLRP_SCHEDULE_DELAY (ms) is set and this option is not passed,
// that value is used. Otherwise the default is 1s.
func WithScheduledDelay(d time.Duration) BatchOption {
	return batchOptionFunc(func(s batchSettings) batchSettings {
		s.scheduledDelay = envconfig.NewSetting(d)
		return s
	})
}

// WithMaxExportBatchSize sets the maximum number of records per export
// call; it is clamped to at most the max queue size at construction.
//
// If OTEL_BLRP_MAX_EXPORT_BATCH_SIZE is set and this option is not passed,
// that value is used. Otherwise the default is 512.
func WithMaxExportBatchSize(size int) BatchOption {
	return batchOptionFunc(func(s batchSettings) batchSettings {
		s.maxExportBatchSize = envconfig.NewSetting(size)
		return s
	})
}

// WithExportTimeout sets the per-export deadline.
//
// If OTEL_BLRP_EXPORT_TIMEOUT (ms) is set and this option is not passed,
// that value is used. Otherwise the default is 30s. Zero is a valid
// (immediate timeout) value, whether it comes from this option or from the
// env var; negative values are treated as unset.
func WithExportTimeout(d time.Duration) BatchOption {
	return batchOptionFunc(func(s batchSettings) batchSettings {
		s.maxExportTimeout = envconfig.NewSetting(d)
		return s
	})
}

func newBatchConfig(opts []BatchOption) BatchConfig {
	var s batchSettings
	for _, o := range opts {
		s = o.apply(s)
	}

	s.maxQueueSize = s.maxQueueSize.Resolve(
		envconfig.ClearLessThanOneInt(),
		envconfig.GetEnvInt(envarMaxQSize),
		envconfig.ClearLessThanOneInt(),
		envconfig.Fallback(dfltMaxQSize),
	)
	s.scheduledDelay = s.scheduledDelay.Resolve(
		envconfig.ClearLessThanOneDuration(),
		envconfig.GetEnvDuration(envarExpInterval),
		envconfig.ClearLessThanOneDuration(),
		envconfig.Fallback(dfltExpInterval),
	)
	s.maxExportTimeout = s.maxExportTimeout.Resolve(
		envconfig.ClearNegativeDuration(),
		envconfig.GetEnvDuration(envarExpTimeout),
		envconfig.ClearNegativeDuration(),
		envconfig.Fallback(dfltExpTimeout),
	)
	s.maxExportBatchSize = s.maxExportBatchSize.Resolve(
		envconfig.ClearLessThanOneInt(),
		envconfig.GetEnvInt(envarExpMaxBatchSize),
		envconfig.ClearLessThanOneInt(),
		envconfig.Fallback(dfltExpMaxBatchSize),
	)

	cfg := BatchConfig{
		maxQueueSize:       s.maxQueueSize.Value,
		scheduledDelay:     s.scheduledDelay.Value,
		maxExportBatchSize: s.maxExportBatchSize.Value,
		maxExportTimeout:   s.maxExportTimeout.Value,
	}
	// I1: max_export_batch_size <= max_queue_size, enforced by clamping down.
	if cfg.maxExportBatchSize > cfg.maxQueueSize {
		cfg.maxExportBatchSize = cfg.maxQueueSize
	}
	return cfg
}
