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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestPromise_AwaitUninterruptible(t *testing.T) {
	t.Run("With Success", func(t *testing.T) {
		promise := NewPromise[string]()
		go func() {
			time.Sleep(10 * time.Millisecond)
			promise.Resolve("done")
		}()

		result := promise.Future().AwaitUninterruptible()
		require.NotNil(t, result)
		require.NoError(t, result.Failure())
		assert.Equal(t, "done", result.Success())
	})
	t.Run("With Failure", func(t *testing.T) {
		promise := NewPromise[string]()
		go func() {
			time.Sleep(10 * time.Millisecond)
			promise.Reject(errors.New("something went wrong"))
		}()

		result := promise.Future().AwaitUninterruptible()
		require.NotNil(t, result)
		require.Error(t, result.Failure())
		assert.Empty(t, result.Success())
	})
}

func TestPromise_Await(t *testing.T) {
	t.Run("With Success", func(t *testing.T) {
		promise := NewPromise[int]()
		go promise.Resolve(42)

		result := promise.Future().Await(time.Second)
		require.NoError(t, result.Failure())
		assert.Equal(t, 42, result.Success())
	})
	t.Run("With Timeout", func(t *testing.T) {
		promise := NewPromise[int]()

		result := promise.Future().Await(20 * time.Millisecond)
		require.Error(t, result.Failure())
		assert.ErrorIs(t, result.Failure(), ErrFutureTimeout)
	})
}

func TestPromise_CompleteOnce(t *testing.T) {
	promise := NewPromise[string]()
	promise.Resolve("first")
	promise.Reject(errors.New("ignored"))
	promise.Resolve("ignored too")

	result := promise.Future().AwaitUninterruptible()
	require.NoError(t, result.Failure())
	assert.Equal(t, "first", result.Success())
}
