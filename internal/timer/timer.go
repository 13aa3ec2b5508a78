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

package timer

import (
	"sync"
	"time"
)

// Timer provides a thread-safe, resettable one-shot timer.
// It wraps time.Timer and drains the underlying channel on Stop and Reset
// so that a stale expiry is never observed after a reset.
type Timer struct {
	mu      sync.Mutex
	timer   *time.Timer
	running bool
}

// New creates a new Timer. The timer is created inert: its channel does not
// fire until Reset is called.
func New() *Timer {
	t := &Timer{
		timer: time.NewTimer(time.Hour),
	}
	t.timer.Stop()
	t.drain()
	return t
}

// Reset arms the timer to fire after the given duration, discarding any
// earlier pending expiry. Calling Reset repeatedly slides the deadline.
func (t *Timer) Reset(duration time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.timer.Stop()
	t.drain()
	t.timer.Reset(duration)
	t.running = true
}

// Stop disarms the timer. Returns true if the timer was armed.
func (t *Timer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running {
		return false
	}
	t.timer.Stop()
	t.drain()
	t.running = false
	return true
}

// Running returns true when the timer is armed
func (t *Timer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// C returns the expiry channel. It behaves the same as time.Timer.C.
func (t *Timer) C() <-chan time.Time {
	return t.timer.C
}

func (t *Timer) drain() {
	select {
	case <-t.timer.C:
	default:
	}
}
