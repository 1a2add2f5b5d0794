// Copyright The OpenTelemetry Authors
// SPDX-License-Identifier: Apache-2.0

package trace

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewBatchConfig(t *testing.T) {
	testcases := []struct {
		name    string
		envars  map[string]string
		options []BatchOption
		want    BatchConfig
	}{
		{
			name: "Defaults",
			want: BatchConfig{
				maxQueueSize:        dfltMaxQSize,
				scheduledDelay:      dfltExpInterval,
				maxExportTimeout:    dfltExpTimeout,
				maxExportBatchSize:  dfltExpMaxBatchSize,
				maxConcurrentExport: dfltMaxConcurrentExport,
			},
		},
		{
			name: "Options",
			options: []BatchOption{
				WithMaxQueueSize(100),
				WithScheduledDelay(time.Microsecond),
				WithExportTimeout(time.Hour),
				WithMaxExportBatchSize(2),
				WithMaxConcurrentExports(4),
			},
			want: BatchConfig{
				maxQueueSize:        100,
				scheduledDelay:      time.Microsecond,
				maxExportTimeout:    time.Hour,
				maxExportBatchSize:  2,
				maxConcurrentExport: 4,
			},
		},
		{
			name: "Environment",
			envars: map[string]string{
				envarMaxQSize:           strconv.Itoa(100),
				envarExpInterval:        strconv.Itoa(100),
				envarExpTimeout:         strconv.Itoa(1000),
				envarExpMaxBatchSize:    strconv.Itoa(10),
				envarMaxConcurrentExprt: strconv.Itoa(4),
			},
			want: BatchConfig{
				maxQueueSize:        100,
				scheduledDelay:      100 * time.Millisecond,
				maxExportTimeout:    1000 * time.Millisecond,
				maxExportBatchSize:  10,
				maxConcurrentExport: 4,
			},
		},
		{
			name: "ClampBatchSizeToQueueSize",
			options: []BatchOption{
				WithMaxQueueSize(10),
				WithMaxExportBatchSize(500),
			},
			want: BatchConfig{
				maxQueueSize:        10,
				scheduledDelay:      dfltExpInterval,
				maxExportTimeout:    dfltExpTimeout,
				maxExportBatchSize:  10,
				maxConcurrentExport: dfltMaxConcurrentExport,
			},
		},
		{
			name: "InvalidConcurrentExportsFallsBackToDefault",
			options: []BatchOption{
				WithMaxConcurrentExports(-1),
			},
			want: BatchConfig{
				maxQueueSize:        dfltMaxQSize,
				scheduledDelay:      dfltExpInterval,
				maxExportTimeout:    dfltExpTimeout,
				maxExportBatchSize:  dfltExpMaxBatchSize,
				maxConcurrentExport: dfltMaxConcurrentExport,
			},
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			for key, value := range tc.envars {
				t.Setenv(key, value)
			}
			assert.Equal(t, tc.want, newBatchConfig(tc.options))
		})
	}
}
