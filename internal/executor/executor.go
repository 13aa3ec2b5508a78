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

// Package executor offloads blocking operations to background workers so
// they never stall the goroutine that drives a lifecycle loop. Each
// submission resolves a future once the operation returns.
package executor

import (
	"errors"

	"go.uber.org/atomic"

	"github.com/tochemey/rpchub/internal/future"
	"github.com/tochemey/rpchub/internal/types"
)

// ErrNotRunning is returned by Submit when the executor has not been
// started or has been stopped.
var ErrNotRunning = errors.New("executor is not running")

const defaultWorkers = 2

// task pairs a blocking operation with the promise observing its outcome
type task struct {
	op      func() error
	promise *future.Promise[types.Unit]
}

// Executor runs submitted blocking operations on a fixed set of worker
// goroutines. Operations submitted from the same goroutine are executed in
// submission order when the executor runs a single worker.
type Executor struct {
	workers int
	tasks   chan *task
	started *atomic.Bool
	stopped *atomic.Bool
	drained chan types.Unit
}

// New creates an instance of Executor
func New(opts ...Option) *Executor {
	x := &Executor{
		workers: defaultWorkers,
		started: atomic.NewBool(false),
		stopped: atomic.NewBool(false),
		drained: make(chan types.Unit),
	}
	for _, opt := range opts {
		opt(x)
	}
	x.tasks = make(chan *task, x.workers)
	return x
}

// Start spins up the worker goroutines. Subsequent calls are no-ops.
func (x *Executor) Start() {
	if !x.started.CompareAndSwap(false, true) {
		return
	}
	go x.run()
}

// Submit schedules the blocking operation on a background worker and
// returns a future resolved once the operation completes. The operation
// cannot be canceled once submitted.
func (x *Executor) Submit(op func() error) future.Future[types.Unit] {
	promise := future.NewPromise[types.Unit]()
	if !x.started.Load() || x.stopped.Load() {
		promise.Reject(ErrNotRunning)
		return promise.Future()
	}
	x.tasks <- &task{op: op, promise: promise}
	return promise.Future()
}

// Stop shuts the executor down, waiting for in-flight and queued
// operations to finish. Submit must not be called concurrently with Stop.
func (x *Executor) Stop() {
	if !x.started.Load() {
		return
	}
	if !x.stopped.CompareAndSwap(false, true) {
		return
	}
	close(x.tasks)
	<-x.drained
}

func (x *Executor) run() {
	pending := make(chan *task, x.workers)
	done := make(chan types.Unit, x.workers)
	for range x.workers {
		go func() {
			for t := range pending {
				if err := t.op(); err != nil {
					t.promise.Reject(err)
					continue
				}
				t.promise.Resolve(types.Unit{})
			}
			done <- types.Unit{}
		}()
	}

	for t := range x.tasks {
		pending <- t
	}
	close(pending)
	for range x.workers {
		<-done
	}
	close(x.drained)
}
