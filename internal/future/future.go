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

package future

import (
	"errors"
	"sync"
	"time"

	"github.com/tochemey/rpchub/internal/types"
)

// ErrFutureTimeout is returned when the future times out
var ErrFutureTimeout = errors.New("future timeout")

// Result defines the future result
type Result[T any] interface {
	// Success returns the successful result of the future
	Success() T
	// Failure returns the error
	Failure() error
}

type result[T any] struct {
	success T
	failure error
}

// Success returns the successful result of the future
func (x *result[T]) Success() T {
	return x.success
}

// Failure returns the error
func (x *result[T]) Failure() error {
	return x.failure
}

// Future defines the read side of a deferred result
type Future[T any] interface {
	// Await returns the result within the expected time period
	Await(timeout time.Duration) Result[T]
	// AwaitUninterruptible waits till the future is completed
	AwaitUninterruptible() Result[T]
}

// Promise is the write side of a Future. It is completed at most once;
// subsequent completions are ignored.
type Promise[T any] struct {
	once   sync.Once
	result *result[T]
	wait   chan types.Unit
}

var _ Future[types.Unit] = (*Promise[types.Unit])(nil)

// NewPromise creates an incomplete Promise
func NewPromise[T any]() *Promise[T] {
	return &Promise[T]{
		result: new(result[T]),
		wait:   make(chan types.Unit),
	}
}

// Resolve completes the promise successfully
func (x *Promise[T]) Resolve(value T) {
	x.once.Do(func() {
		x.result.success = value
		close(x.wait)
	})
}

// Reject completes the promise with the given error
func (x *Promise[T]) Reject(err error) {
	x.once.Do(func() {
		x.result.failure = err
		close(x.wait)
	})
}

// Future returns the read side of the promise
func (x *Promise[T]) Future() Future[T] {
	return x
}

// Await returns the result within the expected time period
func (x *Promise[T]) Await(timeout time.Duration) Result[T] {
	select {
	case <-x.wait:
		return x.result
	case <-time.After(timeout):
		return &result[T]{failure: ErrFutureTimeout}
	}
}

// AwaitUninterruptible awaits till the future is completed
func (x *Promise[T]) AwaitUninterruptible() Result[T] {
	<-x.wait
	return x.result
}
