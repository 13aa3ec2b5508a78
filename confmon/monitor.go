/*
 * MIT License
 *
 * Copyright (c) 2022-2025  Arsene Tochemey Gandote
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package confmon

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/flowchartsman/retry"
	"github.com/reugn/go-quartz/job"
	quartzlogger "github.com/reugn/go-quartz/logger"
	"github.com/reugn/go-quartz/quartz"
	"go.uber.org/atomic"

	"github.com/tochemey/rpchub/log"
)

const (
	defaultRefreshInterval = 30 * time.Second
	defaultLoadRetries     = 5
	defaultStopTimeout     = 3 * time.Second
)

// Monitor periodically refreshes the throttling-relevant cluster
// configuration and caches the last good value. Reads never block on a
// refresh in flight; a failed refresh keeps the previous value.
type Monitor struct {
	mu              sync.Mutex
	source          Source
	refreshInterval time.Duration
	loadRetries     int
	logger          log.Logger
	cached          *atomic.Pointer[Config]
	quartzScheduler quartz.Scheduler
	started         *atomic.Bool
}

// NewMonitor creates an instance of Monitor polling the given source
func NewMonitor(source Source, opts ...Option) *Monitor {
	// create an instance of quartz scheduler with logger off
	quartzScheduler, _ := quartz.NewStdScheduler(quartz.WithLogger(quartzlogger.NewSimpleLogger(nil, quartzlogger.LevelOff)))

	monitor := &Monitor{
		source:          source,
		refreshInterval: defaultRefreshInterval,
		loadRetries:     defaultLoadRetries,
		logger:          log.DefaultLogger,
		cached:          atomic.NewPointer[Config](nil),
		quartzScheduler: quartzScheduler,
		started:         atomic.NewBool(false),
	}

	for _, opt := range opts {
		opt(monitor)
	}
	return monitor
}

// Start performs the initial load, retrying transient failures, and
// schedules the periodic refresh. Subsequent calls are no-ops.
func (x *Monitor) Start(ctx context.Context) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.started.Load() {
		return nil
	}

	var config *Config
	retrier := retry.NewRetrier(x.loadRetries, 100*time.Millisecond, time.Second)
	err := retrier.RunContext(ctx, func(ctx context.Context) error {
		var err error
		config, err = x.source.Load(ctx)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to load cluster configuration: %w", err)
	}
	x.cached.Store(config)

	x.quartzScheduler.Start(ctx)
	x.started.Store(x.quartzScheduler.IsStarted())

	refresh := job.NewFunctionJob[bool](func(ctx context.Context) (bool, error) {
		x.refresh(ctx)
		return true, nil
	})
	detail := quartz.NewJobDetail(refresh, quartz.NewJobKey("cluster-configuration-refresh"))
	return x.quartzScheduler.ScheduleJob(detail, quartz.NewSimpleTrigger(x.refreshInterval))
}

// Stop stops the periodic refresh. The cached configuration stays
// readable after Stop.
func (x *Monitor) Stop(ctx context.Context) error {
	if !x.started.Load() {
		return nil
	}

	x.mu.Lock()
	defer x.mu.Unlock()
	err := x.quartzScheduler.Clear()
	x.quartzScheduler.Stop()
	x.started.Store(x.quartzScheduler.IsStarted())

	ctx, cancel := context.WithTimeout(ctx, defaultStopTimeout)
	defer cancel()
	x.quartzScheduler.Wait(ctx)
	return err
}

// StorageTeamSize returns the cached number of storage replicas per data shard
func (x *Monitor) StorageTeamSize() int {
	if config := x.cached.Load(); config != nil {
		return config.StorageTeamSize
	}
	return 0
}

// BlobStorageEnabled reports whether the external blob storage tier is active
func (x *Monitor) BlobStorageEnabled() bool {
	if config := x.cached.Load(); config != nil {
		return config.BlobStorageEnabled
	}
	return false
}

// Config returns a copy of the cached configuration
func (x *Monitor) Config() Config {
	if config := x.cached.Load(); config != nil {
		return *config
	}
	return Config{}
}

func (x *Monitor) refresh(ctx context.Context) {
	config, err := x.source.Load(ctx)
	if err != nil {
		// keep serving the previous value
		x.logger.Warnf("failed to refresh cluster configuration: %v", err)
		return
	}
	x.cached.Store(config)
}
