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

package executor

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestExecutor_Submit(t *testing.T) {
	t.Run("With Success", func(t *testing.T) {
		exec := New(WithWorkers(1))
		exec.Start()
		defer exec.Stop()

		ran := atomic.NewBool(false)
		fut := exec.Submit(func() error {
			time.Sleep(10 * time.Millisecond)
			ran.Store(true)
			return nil
		})

		result := fut.AwaitUninterruptible()
		require.NoError(t, result.Failure())
		assert.True(t, ran.Load())
	})
	t.Run("With Failure", func(t *testing.T) {
		exec := New(WithWorkers(1))
		exec.Start()
		defer exec.Stop()

		fut := exec.Submit(func() error {
			return errors.New("bind failed")
		})

		result := fut.AwaitUninterruptible()
		require.EqualError(t, result.Failure(), "bind failed")
	})
	t.Run("With executor not started", func(t *testing.T) {
		exec := New()
		fut := exec.Submit(func() error { return nil })

		result := fut.AwaitUninterruptible()
		require.ErrorIs(t, result.Failure(), ErrNotRunning)
	})
	t.Run("With executor stopped", func(t *testing.T) {
		exec := New()
		exec.Start()
		exec.Stop()

		fut := exec.Submit(func() error { return nil })
		result := fut.AwaitUninterruptible()
		require.ErrorIs(t, result.Failure(), ErrNotRunning)
	})
}

func TestExecutor_SubmissionOrder(t *testing.T) {
	exec := New(WithWorkers(1))
	exec.Start()

	var order []int
	first := exec.Submit(func() error {
		time.Sleep(20 * time.Millisecond)
		order = append(order, 1)
		return nil
	})
	second := exec.Submit(func() error {
		order = append(order, 2)
		return nil
	})

	require.NoError(t, first.AwaitUninterruptible().Failure())
	require.NoError(t, second.AwaitUninterruptible().Failure())
	assert.Equal(t, []int{1, 2}, order)

	exec.Stop()
}

func TestExecutor_StopDrains(t *testing.T) {
	exec := New(WithWorkers(2))
	exec.Start()

	counter := atomic.NewInt32(0)
	for range 5 {
		exec.Submit(func() error {
			time.Sleep(5 * time.Millisecond)
			counter.Inc()
			return nil
		})
	}

	exec.Stop()
	assert.EqualValues(t, 5, counter.Load())
}
