// Copyright The OpenTelemetry Authors
// SPDX-License-Identifier: Apache-2.0

package trace // import "github.com/kudlatyamroth/otelpipeline/sdk/trace"

import (
	"time"

	"github.com/kudlatyamroth/otelpipeline/internal/envconfig"
)

const (
	dfltMaxQSize            = 2048
	dfltExpInterval         = 5 * time.Second
	dfltExpTimeout          = 30 * time.Second
	dfltExpMaxBatchSize     = 512
	dfltMaxConcurrentExport = 1

	envarMaxQSize           = "OTEL_BSP_MAX_QUEUE_SIZE"
	envarExpInterval        = "OTEL_BSP_SCHEDULE_DELAY"
	envarExpTimeout         = "OTEL_BSP_EXPORT_TIMEOUT"
	envarExpMaxBatchSize    = "OTEL_BSP_MAX_EXPORT_BATCH_SIZE"
	envarMaxConcurrentExprt = "OTEL_BSP_MAX_CONCURRENT_EXPORTS"
)

// BatchConfig configures a BatchSpanProcessor.
type BatchConfig struct {
	maxQueueSize        int
	scheduledDelay      time.Duration
	maxExportBatchSize  int
	maxExportTimeout    time.Duration
	maxConcurrentExport int
}

// BatchOption applies a configuration value to a BatchSpanProcessor.
type BatchOption interface {
	apply(batchSettings) batchSettings
}

type batchOptionFunc func(batchSettings) batchSettings

func (f batchOptionFunc) apply(s batchSettings) batchSettings { return f(s) }

type batchSettings struct {
	maxQueueSize        envconfig.Setting[int]
	scheduledDelay      envconfig.Setting[time.Duration]
	maxExportBatchSize  envconfig.Setting[int]
	maxExportTimeout    envconfig.Setting[time.Duration]
	maxConcurrentExport envconfig.Setting[int]
}

// WithMaxQueueSize sets the maximum number of buffered spans. Once full,
// further spans are dropped with a diagnostic.
//
// If OTEL_BSP_MAX_QUEUE_SIZE is set and this option is not passed, that
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
// If OTEL_BSP_SCHEDULE_DELAY (ms) is set and this option is not passed,
// that value is used. Otherwise the default is 5s.
func WithScheduledDelay(d time.Duration) BatchOption {
	return batchOptionFunc(func(s batchSettings) batchSettings {
		s.scheduledDelay = envconfig.NewSetting(d)
		return s
	})
}

// WithMaxExportBatchSize sets the maximum number of spans per export call;
// it is clamped to at most the max queue size at construction.
//
// If OTEL_BSP_MAX_EXPORT_BATCH_SIZE is set and this option is not passed,
// that value is used. Otherwise the default is 512.
func WithMaxExportBatchSize(size int) BatchOption {
	return batchOptionFunc(func(s batchSettings) batchSettings {
		s.maxExportBatchSize = envconfig.NewSetting(size)
		return s
	})
}

// WithExportTimeout sets the per-export deadline.
//
// If OTEL_BSP_EXPORT_TIMEOUT (ms) is set and this option is not passed,
// that value is used. Otherwise the default is 30s. Zero is a valid
// (immediate timeout) value.
func WithExportTimeout(d time.Duration) BatchOption {
	return batchOptionFunc(func(s batchSettings) batchSettings {
		s.maxExportTimeout = envconfig.NewSetting(d)
		return s
	})
}

// WithMaxConcurrentExports sets the maximum number of ExportSpans calls
// that may be in flight at once. The default, 1, runs one export at a
// time; batches waiting for that slot are not guaranteed to be exported in
// the order they were formed.
//
// If OTEL_BSP_MAX_CONCURRENT_EXPORTS is set and this option is not
// passed, that value is used.
func WithMaxConcurrentExports(n int) BatchOption {
	return batchOptionFunc(func(s batchSettings) batchSettings {
		s.maxConcurrentExport = envconfig.NewSetting(n)
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
	s.maxConcurrentExport = s.maxConcurrentExport.Resolve(
		envconfig.ClearLessThanOneInt(),
		envconfig.GetEnvInt(envarMaxConcurrentExprt),
		envconfig.ClearLessThanOneInt(),
		envconfig.Fallback(dfltMaxConcurrentExport),
	)

	cfg := BatchConfig{
		maxQueueSize:        s.maxQueueSize.Value,
		scheduledDelay:      s.scheduledDelay.Value,
		maxExportBatchSize:  s.maxExportBatchSize.Value,
		maxExportTimeout:    s.maxExportTimeout.Value,
		maxConcurrentExport: s.maxConcurrentExport.Value,
	}
	// I1: max_export_batch_size <= max_queue_size, enforced by clamping down.
	if cfg.maxExportBatchSize > cfg.maxQueueSize {
		cfg.maxExportBatchSize = cfg.maxQueueSize
	}
	return cfg
}
