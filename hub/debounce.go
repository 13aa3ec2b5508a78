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

package hub

import (
	"time"

	"github.com/tochemey/rpchub/internal/timer"
)

// DefaultDebounceWindow is the sliding delay after the last registry change
// before a restart is executed. Tunable via WithDebounceWindow.
const DefaultDebounceWindow = 2 * time.Second

// debouncer coalesces a burst of registry changes into a single delayed
// restart signal. Every Arm call slides the deadline by a full window, so no
// upper bound on deferral exists under continuous churn.
type debouncer struct {
	window time.Duration
	timer  *timer.Timer
}

func newDebouncer(window time.Duration) *debouncer {
	return &debouncer{
		window: window,
		timer:  timer.New(),
	}
}

// Arm (re)starts the window. A pending expiry is discarded.
func (x *debouncer) Arm() {
	x.timer.Reset(x.window)
}

// Disarm cancels any pending expiry
func (x *debouncer) Disarm() {
	x.timer.Stop()
}

// C returns the expiry channel delivering the "restart due" event
func (x *debouncer) C() <-chan time.Time {
	return x.timer.C()
}
